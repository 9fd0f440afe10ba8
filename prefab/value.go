package prefab

import (
	"fmt"

	"github.com/lixenwraith/scenekit/vmath"
)

// ValueKind discriminates the Value tagged union
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
	ValueString // quoted string
	ValueIdent  // bare identifier, enum-like tag
	ValueVec2
	ValueVec3
	ValueVec4
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueInt:
		return "int"
	case ValueFloat:
		return "float"
	case ValueBool:
		return "bool"
	case ValueString:
		return "string"
	case ValueIdent:
		return "ident"
	case ValueVec2:
		return "vec2"
	case ValueVec3:
		return "vec3"
	case ValueVec4:
		return "vec4"
	}
	return "unknown"
}

// Value is a tagged union over the literal kinds the definition
// language can express. Exactly one member is meaningful per Kind;
// quoted strings and bare identifiers both use Str.
type Value struct {
	Kind ValueKind
	Int  int64
	F    float64
	Bool bool
	Str  string
	Vec  vmath.Vec4 // vec2/3/4 share storage, arity given by Kind
}

func IntValue(n int64) Value     { return Value{Kind: ValueInt, Int: n} }
func FloatValue(f float64) Value { return Value{Kind: ValueFloat, F: f} }
func BoolValue(b bool) Value     { return Value{Kind: ValueBool, Bool: b} }
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }
func IdentValue(s string) Value  { return Value{Kind: ValueIdent, Str: s} }
func Vec2Value(v vmath.Vec2) Value {
	return Value{Kind: ValueVec2, Vec: vmath.Vec4{X: v.X, Y: v.Y}}
}
func Vec3Value(v vmath.Vec3) Value {
	return Value{Kind: ValueVec3, Vec: vmath.Vec4{X: v.X, Y: v.Y, Z: v.Z}}
}
func Vec4Value(v vmath.Vec4) Value { return Value{Kind: ValueVec4, Vec: v} }

// Vec2 returns the vector interpreted at arity 2
func (v Value) Vec2() vmath.Vec2 {
	return vmath.Vec2{X: v.Vec.X, Y: v.Vec.Y}
}

// Vec3 returns the vector interpreted at arity 3
func (v Value) Vec3() vmath.Vec3 {
	return vmath.Vec3{X: v.Vec.X, Y: v.Vec.Y, Z: v.Vec.Z}
}

// AsFloat converts int or float values to float64
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case ValueInt:
		return float64(v.Int), true
	case ValueFloat:
		return v.F, true
	}
	return 0, false
}

// AsInt converts int or float values to int64, truncating toward zero
func (v Value) AsInt() (int64, bool) {
	switch v.Kind {
	case ValueInt:
		return v.Int, true
	case ValueFloat:
		return int64(v.F), true
	}
	return 0, false
}

// Equal compares two values for kind and payload equality
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValueNull:
		return true
	case ValueInt:
		return v.Int == o.Int
	case ValueFloat:
		return v.F == o.F
	case ValueBool:
		return v.Bool == o.Bool
	case ValueString, ValueIdent:
		return v.Str == o.Str
	case ValueVec2:
		return v.Vec.X == o.Vec.X && v.Vec.Y == o.Vec.Y
	case ValueVec3:
		return v.Vec.X == o.Vec.X && v.Vec.Y == o.Vec.Y && v.Vec.Z == o.Vec.Z
	case ValueVec4:
		return v.Vec == o.Vec
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case ValueNull:
		return "null"
	case ValueInt:
		return fmt.Sprintf("%d", v.Int)
	case ValueFloat:
		return formatFloat(v.F)
	case ValueBool:
		return fmt.Sprintf("%t", v.Bool)
	case ValueString:
		return fmt.Sprintf("%q", v.Str)
	case ValueIdent:
		return v.Str
	case ValueVec2:
		return fmt.Sprintf("(%s, %s)", formatFloat(v.Vec.X), formatFloat(v.Vec.Y))
	case ValueVec3:
		return fmt.Sprintf("(%s, %s, %s)", formatFloat(v.Vec.X), formatFloat(v.Vec.Y), formatFloat(v.Vec.Z))
	case ValueVec4:
		return fmt.Sprintf("(%s, %s, %s, %s)", formatFloat(v.Vec.X), formatFloat(v.Vec.Y), formatFloat(v.Vec.Z), formatFloat(v.Vec.W))
	}
	return "?"
}
