package schema

import (
	"encoding/binary"
	"fmt"
	"math"
)

// FormatField renders a single field's current value from raw
// component bytes as a human-readable string, used by inspection and
// the live-entity writer. Out-of-range or unknown fields render as "?".
func FormatField(f *FieldDesc, raw []byte) string {
	if f.Offset < 0 || f.Offset+f.Size > len(raw) {
		return "?"
	}
	b := raw[f.Offset:]

	switch f.Type {
	case FieldInt:
		return fmt.Sprintf("%d", int32(binary.LittleEndian.Uint32(b)))
	case FieldUint:
		return fmt.Sprintf("%d", binary.LittleEndian.Uint32(b))
	case FieldFloat:
		return fmt.Sprintf("%g", math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case FieldDouble:
		return fmt.Sprintf("%g", math.Float64frombits(binary.LittleEndian.Uint64(b)))
	case FieldBool:
		if b[0] != 0 {
			return "true"
		}
		return "false"
	case FieldVec2:
		return fmt.Sprintf("(%g, %g)",
			math.Float32frombits(binary.LittleEndian.Uint32(b)),
			math.Float32frombits(binary.LittleEndian.Uint32(b[4:])))
	case FieldVec3:
		return fmt.Sprintf("(%g, %g, %g)",
			math.Float32frombits(binary.LittleEndian.Uint32(b)),
			math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(b[8:])))
	case FieldVec4:
		return fmt.Sprintf("(%g, %g, %g, %g)",
			math.Float32frombits(binary.LittleEndian.Uint32(b)),
			math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
			math.Float32frombits(binary.LittleEndian.Uint32(b[12:])))
	case FieldString:
		return fmt.Sprintf("str#%d", binary.LittleEndian.Uint32(b))
	case FieldEntity:
		return fmt.Sprintf("entity#%d", binary.LittleEndian.Uint64(b))
	case FieldInt8:
		return fmt.Sprintf("%d", int8(b[0]))
	case FieldInt16:
		return fmt.Sprintf("%d", int16(binary.LittleEndian.Uint16(b)))
	case FieldInt64:
		return fmt.Sprintf("%d", int64(binary.LittleEndian.Uint64(b)))
	case FieldUint8:
		return fmt.Sprintf("%d", b[0])
	case FieldUint16:
		return fmt.Sprintf("%d", binary.LittleEndian.Uint16(b))
	case FieldUint64:
		return fmt.Sprintf("%d", binary.LittleEndian.Uint64(b))
	}
	return "?"
}

// FormatComponent renders every field of a component record as
// "name=value" pairs for debug output
func FormatComponent(m *ComponentMeta, raw []byte) string {
	out := m.Name + "{"
	for i := range m.Fields {
		if i > 0 {
			out += ", "
		}
		out += m.Fields[i].Name + "=" + FormatField(&m.Fields[i], raw)
	}
	return out + "}"
}
