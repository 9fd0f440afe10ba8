package schema

import (
	"encoding/binary"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testMeta(id uint32, name string) ComponentMeta {
	return ComponentMeta{
		ID:   id,
		Name: name,
		Size: 8,
		Fields: []FieldDesc{
			{Name: "x", Type: FieldFloat, Offset: 0, Size: 4},
			{Name: "y", Type: FieldFloat, Offset: 4, Size: 4},
		},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testMeta(1, "Position")))
	require.NoError(t, r.Register(testMeta(2, "Velocity")))
	require.Equal(t, 2, r.Count())

	m := r.ByID(1)
	require.NotNil(t, m)
	require.Equal(t, "Position", m.Name)

	m = r.ByName("Velocity")
	require.NotNil(t, m)
	require.Equal(t, uint32(2), m.ID)

	require.Nil(t, r.ByID(99))
	require.Nil(t, r.ByName("Missing"))
}

func TestRegistry_DuplicateIDRejected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(testMeta(7, "First")))

	err := r.Register(testMeta(7, "Second"))
	require.ErrorIs(t, err, ErrDuplicateID)

	// The first entry is not overwritten
	m := r.ByID(7)
	require.NotNil(t, m)
	require.Equal(t, "First", m.Name)
	require.Equal(t, 1, r.Count())
}

func TestRegistry_FieldLimit(t *testing.T) {
	meta := ComponentMeta{ID: 1, Name: "Wide", Size: 4 * (MaxFields + 1)}
	for i := 0; i <= MaxFields; i++ {
		meta.Fields = append(meta.Fields, FieldDesc{
			Name: fmt.Sprintf("f%d", i), Type: FieldInt, Offset: i * 4, Size: 4,
		})
	}
	r := NewRegistry()
	require.ErrorIs(t, r.Register(meta), ErrTooManyFields)
}

func TestRegistry_Full(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < MaxComponents; i++ {
		require.NoError(t, r.Register(testMeta(uint32(i+1), fmt.Sprintf("C%d", i))))
	}
	require.ErrorIs(t, r.Register(testMeta(9999, "Overflow")), ErrRegistryFull)
}

func TestRegistry_ProbeCollisions(t *testing.T) {
	// A filled registry exercises linear probing; every id must still
	// resolve to its own metadata
	r := NewRegistry()
	for i := 0; i < MaxComponents; i++ {
		require.NoError(t, r.Register(testMeta(uint32(i*977+13), fmt.Sprintf("C%d", i))))
	}
	for i := 0; i < MaxComponents; i++ {
		m := r.ByID(uint32(i*977 + 13))
		require.NotNil(t, m)
		require.Equal(t, fmt.Sprintf("C%d", i), m.Name)
	}
}

func TestFormatField(t *testing.T) {
	raw := make([]byte, 16)
	binary.LittleEndian.PutUint32(raw[0:], math.Float32bits(1.5))
	neg := int32(-42)
	binary.LittleEndian.PutUint32(raw[4:], uint32(neg))
	raw[8] = 1
	binary.LittleEndian.PutUint32(raw[9:], 3)

	cases := []struct {
		desc FieldDesc
		want string
	}{
		{FieldDesc{Name: "f", Type: FieldFloat, Offset: 0, Size: 4}, "1.5"},
		{FieldDesc{Name: "i", Type: FieldInt, Offset: 4, Size: 4}, "-42"},
		{FieldDesc{Name: "b", Type: FieldBool, Offset: 8, Size: 1}, "true"},
		{FieldDesc{Name: "s", Type: FieldString, Offset: 9, Size: 4}, "str#3"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatField(&tc.desc, raw))
	}

	// Out of range renders as "?"
	oob := FieldDesc{Name: "o", Type: FieldInt, Offset: 14, Size: 4}
	require.Equal(t, "?", FormatField(&oob, raw))
}
