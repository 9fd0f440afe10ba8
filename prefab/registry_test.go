package prefab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempPrefab(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRegistry_LoadOnce(t *testing.T) {
	path := writeTempPrefab(t, "goblin.prefab", `Goblin { Health: 7 }`)

	r := NewRegistry()
	first, err := r.Load(path)
	require.NoError(t, err)
	require.Equal(t, "Goblin", first.Name)

	// Rewrite the file; the cached tree must come back untouched
	require.NoError(t, os.WriteFile(path, []byte(`Orc { Health: 9 }`), 0o644))
	second, err := r.Load(path)
	require.NoError(t, err)
	require.Same(t, first, second)
	require.Equal(t, 1, r.Len())
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	require.Nil(t, r.Lookup("never-loaded"))

	path := writeTempPrefab(t, "a.prefab", `A { }`)
	root, err := r.Load(path)
	require.NoError(t, err)
	require.Same(t, root, r.Lookup(path))
}

func TestRegistry_ParseFailureNotCached(t *testing.T) {
	path := writeTempPrefab(t, "bad.prefab", `A { C: }`)

	r := NewRegistry()
	_, err := r.Load(path)
	require.Error(t, err)
	require.Equal(t, 0, r.Len())

	// A fixed file parses on the next attempt
	require.NoError(t, os.WriteFile(path, []byte(`A { }`), 0o644))
	root, err := r.Load(path)
	require.NoError(t, err)
	require.Equal(t, "A", root.Name)
}

func TestRegistry_MissingFile(t *testing.T) {
	r := NewRegistry()
	_, err := r.Load(filepath.Join(t.TempDir(), "absent.prefab"))
	require.Error(t, err)
}

func TestRegistry_LoadString(t *testing.T) {
	r := NewRegistry()
	root, err := r.LoadString("mem:turret", `Turret { Damage: 4 }`)
	require.NoError(t, err)
	require.Equal(t, "Turret", root.Name)
	require.Same(t, root, r.Lookup("mem:turret"))
}

func TestRegistry_CapacityBound(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < MaxCachedPrefabs; i++ {
		_, err := r.LoadString(string(rune('a'+i%26))+string(rune('0'+i/26)), `A { }`)
		require.NoError(t, err)
	}
	_, err := r.LoadString("overflow", `A { }`)
	require.ErrorIs(t, err, ErrRegistryFull)
}
