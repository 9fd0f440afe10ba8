package prefab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// requireTreeEqual compares two trees structurally: names, positions,
// component/field counts and field values, recursively
func requireTreeEqual(t *testing.T, want, got *Prefab) {
	t.Helper()
	require.Equal(t, want.Name, got.Name)
	require.Equal(t, want.Position, got.Position)
	require.Equal(t, want.Base, got.Base)
	require.Len(t, got.Components, len(want.Components))
	for i := range want.Components {
		require.Equal(t, want.Components[i].Name, got.Components[i].Name)
		require.Len(t, got.Components[i].Fields, len(want.Components[i].Fields))
		for j := range want.Components[i].Fields {
			require.Equal(t, want.Components[i].Fields[j].Name, got.Components[i].Fields[j].Name)
			require.True(t, want.Components[i].Fields[j].Value.Equal(got.Components[i].Fields[j].Value),
				"field %s: %v != %v", want.Components[i].Fields[j].Name,
				want.Components[i].Fields[j].Value, got.Components[i].Fields[j].Value)
		}
	}
	require.Len(t, got.Children, len(want.Children))
	for i := range want.Children {
		requireTreeEqual(t, want.Children[i], got.Children[i])
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	src := []byte(`Player @(10, 20.5) {
	prefab: "base/actor.prefab"
	Health: 50
	Sprite: { path: "art/hero.png", layer: 2, visible: true, tint: (1, 0.5, 0.25, 1) }
	Tag: fire

	Weapon @(5, 0) {
		Damage: { amount: 3.5, kind: slash }
	}
	{ }
}`)

	first, err := Parse("test", src)
	require.NoError(t, err)

	text := Write(first)
	second, err := Parse("roundtrip", []byte(text))
	require.NoError(t, err)
	requireTreeEqual(t, first, second)

	// Writing again yields identical text (idempotent after one trip)
	require.Equal(t, text, Write(second))
}

func TestWriteScene_RoundTrip(t *testing.T) {
	src := []byte(`
A @(1, 2) { Health: 1 }
B { Health: 2 }
`)
	first, err := ParseScene("test", src)
	require.NoError(t, err)

	text := WriteScene(first)
	second, err := ParseScene("roundtrip", []byte(text))
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		requireTreeEqual(t, first[i], second[i])
	}
}

func TestWrite_StringEscaping(t *testing.T) {
	root := &Prefab{
		Name: "E",
		Components: []ComponentConfig{{
			Name: "Text",
			Fields: []FieldAssign{{
				Name:  ShorthandField,
				Value: StringValue("line1\nline2\t\"quoted\" \\end"),
			}},
		}},
	}
	text := Write(root)
	back, err := Parse("test", []byte(text))
	require.NoError(t, err)
	require.Equal(t, "line1\nline2\t\"quoted\" \\end", back.Components[0].Fields[0].Value.Str)
}

func TestWrite_FloatFormatting(t *testing.T) {
	// Integral floats print with one decimal so they re-parse as floats
	require.Equal(t, "10.0", formatFloat(10))
	require.Equal(t, "-3.0", formatFloat(-3))
	require.Equal(t, "0.5", formatFloat(0.5))

	root := &Prefab{
		Name: "E",
		Components: []ComponentConfig{{
			Name:   "C",
			Fields: []FieldAssign{{Name: ShorthandField, Value: FloatValue(4)}},
		}},
	}
	back, err := Parse("test", []byte(Write(root)))
	require.NoError(t, err)
	require.Equal(t, ValueFloat, back.Components[0].Fields[0].Value.Kind)
	require.Equal(t, 4.0, back.Components[0].Fields[0].Value.F)
}

func TestWrite_IdentQuotingFallback(t *testing.T) {
	// An identifier value that would not survive the lexer as a bare
	// token is emitted quoted instead
	root := &Prefab{
		Name: "E",
		Components: []ComponentConfig{{
			Name:   "C",
			Fields: []FieldAssign{{Name: ShorthandField, Value: IdentValue("two words")}},
		}},
	}
	back, err := Parse("test", []byte(Write(root)))
	require.NoError(t, err)
	require.Equal(t, ValueString, back.Components[0].Fields[0].Value.Kind)
	require.Equal(t, "two words", back.Components[0].Fields[0].Value.Str)
}

func TestWrite_ShorthandForm(t *testing.T) {
	root, err := Parse("test", []byte(`E { Health: 100 }`))
	require.NoError(t, err)
	text := Write(root)
	require.Contains(t, text, "Health: 100\n")

	root, err = Parse("test", []byte(`E { Health: { current: 1, max: 2 } }`))
	require.NoError(t, err)
	text = Write(root)
	require.Contains(t, text, "Health: { current: 1, max: 2 }")
}

func TestLegacyKeywordRoundTrip(t *testing.T) {
	legacy, err := Parse("test", []byte(`Entity Player { Health: 1 }`))
	require.NoError(t, err)
	// The writer drops the legacy keyword; re-parse is equivalent
	back, err := Parse("test", []byte(Write(legacy)))
	require.NoError(t, err)
	requireTreeEqual(t, legacy, back)
}
