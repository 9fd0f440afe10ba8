package schema

// FieldType is the semantic type tag of a reflected component field
type FieldType int

const (
	FieldUnknown FieldType = iota
	FieldInt               // int32
	FieldUint              // uint32
	FieldFloat             // float32
	FieldDouble            // float64
	FieldBool              // one byte, 0/1
	FieldVec2              // 2 x float32
	FieldVec3              // 3 x float32
	FieldVec4              // 4 x float32
	FieldString            // uint32 string-table handle
	FieldEntity            // uint64 entity reference
	FieldInt8
	FieldInt16
	FieldInt64
	FieldUint8
	FieldUint16
	FieldUint64
)

// Size returns the natural byte size of the field type, 0 for unknown
func (t FieldType) Size() int {
	switch t {
	case FieldInt, FieldUint, FieldFloat, FieldString:
		return 4
	case FieldDouble, FieldVec2, FieldEntity, FieldInt64, FieldUint64:
		return 8
	case FieldVec3:
		return 12
	case FieldVec4:
		return 16
	case FieldBool, FieldInt8, FieldUint8:
		return 1
	case FieldInt16, FieldUint16:
		return 2
	}
	return 0
}

func (t FieldType) String() string {
	switch t {
	case FieldInt:
		return "int"
	case FieldUint:
		return "uint"
	case FieldFloat:
		return "float"
	case FieldDouble:
		return "double"
	case FieldBool:
		return "bool"
	case FieldVec2:
		return "vec2"
	case FieldVec3:
		return "vec3"
	case FieldVec4:
		return "vec4"
	case FieldString:
		return "string"
	case FieldEntity:
		return "entity"
	case FieldInt8:
		return "int8"
	case FieldInt16:
		return "int16"
	case FieldInt64:
		return "int64"
	case FieldUint8:
		return "uint8"
	case FieldUint16:
		return "uint16"
	case FieldUint64:
		return "uint64"
	}
	return "unknown"
}

// ParseFieldType maps a type name to its tag, FieldUnknown when the
// name is not recognized
func ParseFieldType(name string) FieldType {
	switch name {
	case "int", "int32":
		return FieldInt
	case "uint", "uint32":
		return FieldUint
	case "float", "float32":
		return FieldFloat
	case "double", "float64":
		return FieldDouble
	case "bool":
		return FieldBool
	case "vec2":
		return FieldVec2
	case "vec3":
		return FieldVec3
	case "vec4":
		return FieldVec4
	case "string":
		return FieldString
	case "entity":
		return FieldEntity
	case "int8":
		return FieldInt8
	case "int16":
		return FieldInt16
	case "int64":
		return FieldInt64
	case "uint8":
		return FieldUint8
	case "uint16":
		return FieldUint16
	case "uint64":
		return FieldUint64
	}
	return FieldUnknown
}

// FieldDesc describes one field within a component's byte layout
type FieldDesc struct {
	Name   string
	Type   FieldType
	Offset int // byte offset within the component record
	Size   int // byte size of the field
}

// ComponentMeta describes a component's identity and full byte layout
type ComponentMeta struct {
	ID     uint32
	Name   string
	Size   int // total record size in bytes
	Fields []FieldDesc
}

// Field returns the descriptor with the given name, or nil
func (m *ComponentMeta) Field(name string) *FieldDesc {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i]
		}
	}
	return nil
}
