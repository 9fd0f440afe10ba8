package prefab

import (
	"errors"
	"fmt"
	"os"
)

// Registry cache sizing
const MaxCachedPrefabs = 128

var (
	ErrRegistryFull = errors.New("prefab registry full")
	ErrNotFound     = errors.New("prefab not found")
)

type cacheEntry struct {
	path string
	root *Prefab
}

// Registry is a path-keyed prefab cache: each file is read and parsed
// at most once per registry instance, repeated loads return the cached
// tree. Lookup is a linear scan; the cache is small and bounded.
type Registry struct {
	entries []cacheEntry
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make([]cacheEntry, 0, 16),
	}
}

// Load returns the cached tree for path, reading and parsing the file
// on first use. A full registry or a parse failure returns an error
// without caching.
func (r *Registry) Load(path string) (*Prefab, error) {
	if root := r.Lookup(path); root != nil {
		return root, nil
	}
	if len(r.entries) >= MaxCachedPrefabs {
		return nil, fmt.Errorf("%w (limit %d)", ErrRegistryFull, MaxCachedPrefabs)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load prefab %s: %w", path, err)
	}
	root, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	r.entries = append(r.entries, cacheEntry{path: path, root: root})
	return root, nil
}

// LoadString parses an in-memory prefab source under a synthetic name
// and caches it like a file-born prefab, keyed by that name
func (r *Registry) LoadString(name string, src string) (*Prefab, error) {
	if root := r.Lookup(name); root != nil {
		return root, nil
	}
	if len(r.entries) >= MaxCachedPrefabs {
		return nil, fmt.Errorf("%w (limit %d)", ErrRegistryFull, MaxCachedPrefabs)
	}
	root, err := Parse(name, []byte(src))
	if err != nil {
		return nil, err
	}
	r.entries = append(r.entries, cacheEntry{path: name, root: root})
	return root, nil
}

// Lookup is a pure cache read, nil if path was never loaded
func (r *Registry) Lookup(path string) *Prefab {
	for i := range r.entries {
		if r.entries[i].path == path {
			return r.entries[i].root
		}
	}
	return nil
}

// Len returns the number of cached prefabs
func (r *Registry) Len() int {
	return len(r.entries)
}
