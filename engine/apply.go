package engine

import (
	"encoding/binary"
	"math"

	"github.com/lixenwraith/scenekit/prefab"
	"github.com/lixenwraith/scenekit/schema"
)

// ApplyField writes a parsed literal into buf at the field's offset,
// coercing per the field's semantic type. A type mismatch fails only
// this one assignment (the field keeps its zeroed default) and returns
// false; the caller decides whether to surface a diagnostic.
//
// Coercions: integer fields take int or float literals (float
// truncated toward zero); float/double fields take either numeric
// literal; bool and vector fields are exact; string fields take string
// or identifier literals, stored as an interned handle so the value
// outlives the prefab tree.
func ApplyField(buf []byte, f *schema.FieldDesc, v prefab.Value, strings *StringTable) bool {
	size := f.Type.Size()
	if size == 0 || f.Offset < 0 || f.Offset+size > len(buf) {
		return false
	}
	b := buf[f.Offset:]

	switch f.Type {
	case schema.FieldInt, schema.FieldUint:
		n, ok := v.AsInt()
		if !ok {
			return false
		}
		binary.LittleEndian.PutUint32(b, uint32(n))

	case schema.FieldInt8, schema.FieldUint8:
		n, ok := v.AsInt()
		if !ok {
			return false
		}
		b[0] = byte(n)

	case schema.FieldInt16, schema.FieldUint16:
		n, ok := v.AsInt()
		if !ok {
			return false
		}
		binary.LittleEndian.PutUint16(b, uint16(n))

	case schema.FieldInt64, schema.FieldUint64:
		n, ok := v.AsInt()
		if !ok {
			return false
		}
		binary.LittleEndian.PutUint64(b, uint64(n))

	case schema.FieldFloat:
		fl, ok := v.AsFloat()
		if !ok {
			return false
		}
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(fl)))

	case schema.FieldDouble:
		fl, ok := v.AsFloat()
		if !ok {
			return false
		}
		binary.LittleEndian.PutUint64(b, math.Float64bits(fl))

	case schema.FieldBool:
		if v.Kind != prefab.ValueBool {
			return false
		}
		if v.Bool {
			b[0] = 1
		} else {
			b[0] = 0
		}

	case schema.FieldVec2:
		if v.Kind != prefab.ValueVec2 {
			return false
		}
		putVec(b, v, 2)

	case schema.FieldVec3:
		if v.Kind != prefab.ValueVec3 {
			return false
		}
		putVec(b, v, 3)

	case schema.FieldVec4:
		if v.Kind != prefab.ValueVec4 {
			return false
		}
		putVec(b, v, 4)

	case schema.FieldString:
		if v.Kind != prefab.ValueString && v.Kind != prefab.ValueIdent {
			return false
		}
		if strings == nil {
			return false
		}
		binary.LittleEndian.PutUint32(b, strings.Intern(v.Str))

	case schema.FieldEntity:
		n, ok := v.AsInt()
		if !ok {
			return false
		}
		binary.LittleEndian.PutUint64(b, uint64(n))

	default:
		return false
	}
	return true
}

func putVec(b []byte, v prefab.Value, arity int) {
	comps := [4]float64{v.Vec.X, v.Vec.Y, v.Vec.Z, v.Vec.W}
	for i := 0; i < arity; i++ {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(float32(comps[i])))
	}
}
