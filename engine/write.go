package engine

import (
	"encoding/binary"
	"math"

	"github.com/lixenwraith/scenekit/prefab"
	"github.com/lixenwraith/scenekit/schema"
	"github.com/lixenwraith/scenekit/vmath"
)

// WriteEntity renders a live entity subtree back to definition-language
// source, sourcing field values from the collaborator's raw component
// bytes via the schema registry. Components with no registered metadata
// are skipped; the position component feeds the header instead of the
// body.
func WriteEntity(w World, reg *schema.Registry, e Entity) string {
	node := EntityToPrefab(w, reg, e)
	if node == nil {
		return ""
	}
	return prefab.Write(node)
}

// EntityToPrefab reconstructs a prefab tree from a live entity and its
// descendants, nil if the entity is not alive
func EntityToPrefab(w World, reg *schema.Registry, e Entity) *prefab.Prefab {
	if !w.Alive(e) {
		return nil
	}

	node := &prefab.Prefab{Name: w.Name(e)}

	posMeta := reg.ByName(PositionComponent)
	for _, id := range w.Components(e) {
		meta := reg.ByID(id)
		if meta == nil {
			continue // unregistered, nothing to render
		}
		raw, ok := w.Component(e, id)
		if !ok {
			continue
		}
		if posMeta != nil && meta.ID == posMeta.ID {
			node.Position = decodePosition(meta, raw)
			continue
		}
		node.Components = append(node.Components, decodeConfig(w, meta, raw))
	}

	for _, child := range w.Children(e) {
		if childNode := EntityToPrefab(w, reg, child); childNode != nil {
			node.Children = append(node.Children, childNode)
		}
	}
	return node
}

// decodeConfig rebuilds a component config from raw bytes. Components
// with exactly one field fold back into the single-field shorthand.
func decodeConfig(w World, meta *schema.ComponentMeta, raw []byte) prefab.ComponentConfig {
	cfg := prefab.ComponentConfig{Name: meta.Name}

	if len(meta.Fields) == 1 {
		if v, ok := decodeField(w, &meta.Fields[0], raw); ok {
			cfg.Fields = append(cfg.Fields, prefab.FieldAssign{Name: prefab.ShorthandField, Value: v})
		}
		return cfg
	}
	for i := range meta.Fields {
		f := &meta.Fields[i]
		if v, ok := decodeField(w, f, raw); ok {
			cfg.Fields = append(cfg.Fields, prefab.FieldAssign{Name: f.Name, Value: v})
		}
	}
	return cfg
}

// decodeField reads one field's raw bytes back into a literal value
func decodeField(w World, f *schema.FieldDesc, raw []byte) (prefab.Value, bool) {
	size := f.Type.Size()
	if size == 0 || f.Offset < 0 || f.Offset+size > len(raw) {
		return prefab.Value{}, false
	}
	b := raw[f.Offset:]

	switch f.Type {
	case schema.FieldInt:
		return prefab.IntValue(int64(int32(binary.LittleEndian.Uint32(b)))), true
	case schema.FieldUint:
		return prefab.IntValue(int64(binary.LittleEndian.Uint32(b))), true
	case schema.FieldInt8:
		return prefab.IntValue(int64(int8(b[0]))), true
	case schema.FieldUint8:
		return prefab.IntValue(int64(b[0])), true
	case schema.FieldInt16:
		return prefab.IntValue(int64(int16(binary.LittleEndian.Uint16(b)))), true
	case schema.FieldUint16:
		return prefab.IntValue(int64(binary.LittleEndian.Uint16(b))), true
	case schema.FieldInt64, schema.FieldUint64:
		return prefab.IntValue(int64(binary.LittleEndian.Uint64(b))), true
	case schema.FieldFloat:
		return prefab.FloatValue(float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))), true
	case schema.FieldDouble:
		return prefab.FloatValue(math.Float64frombits(binary.LittleEndian.Uint64(b))), true
	case schema.FieldBool:
		return prefab.BoolValue(b[0] != 0), true
	case schema.FieldVec2:
		return prefab.Vec2Value(vmath.Vec2{
			X: float64(math.Float32frombits(binary.LittleEndian.Uint32(b))),
			Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
		}), true
	case schema.FieldVec3:
		return prefab.Vec3Value(vmath.Vec3{
			X: float64(math.Float32frombits(binary.LittleEndian.Uint32(b))),
			Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
			Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
		}), true
	case schema.FieldVec4:
		return prefab.Vec4Value(vmath.Vec4{
			X: float64(math.Float32frombits(binary.LittleEndian.Uint32(b))),
			Y: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))),
			Z: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))),
			W: float64(math.Float32frombits(binary.LittleEndian.Uint32(b[12:]))),
		}), true
	case schema.FieldString:
		h := binary.LittleEndian.Uint32(b)
		if s, ok := w.Strings().Lookup(h); ok {
			return prefab.StringValue(s), true
		}
		return prefab.Value{}, false
	case schema.FieldEntity:
		return prefab.IntValue(int64(binary.LittleEndian.Uint64(b))), true
	}
	return prefab.Value{}, false
}

// decodePosition extracts the x/y pair the spawner wrote
func decodePosition(meta *schema.ComponentMeta, raw []byte) vmath.Vec2 {
	fx, fy := positionFields(meta)
	if fx == nil || fy == nil {
		return vmath.Vec2{}
	}
	var pos vmath.Vec2
	if v, ok := readFloatField(fx, raw); ok {
		pos.X = v
	}
	if v, ok := readFloatField(fy, raw); ok {
		pos.Y = v
	}
	return pos
}

func readFloatField(f *schema.FieldDesc, raw []byte) (float64, bool) {
	size := f.Type.Size()
	if f.Offset < 0 || f.Offset+size > len(raw) {
		return 0, false
	}
	b := raw[f.Offset:]
	switch f.Type {
	case schema.FieldFloat:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b))), true
	case schema.FieldDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), true
	}
	return 0, false
}
