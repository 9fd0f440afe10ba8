package engine

import "sync"

// Entity is a unique identifier for an entity; 0 is never a valid id
type Entity uint64

// World is the entity-storage collaborator the core requires. The
// storage engine itself lives outside this module; the spawner, scene
// manager and live-entity writer only call through this surface.
type World interface {
	// CreateEntity creates a new, optionally named entity.
	// Returns 0 on failure.
	CreateEntity(name string) Entity
	// DeleteEntity removes an entity. Children are detached, not
	// deleted.
	DeleteEntity(e Entity)
	// Alive reports whether e currently exists
	Alive(e Entity) bool

	// SetComponent writes a component's raw bytes under its numeric id
	SetComponent(e Entity, id uint32, data []byte) bool
	// Component returns a component's raw bytes, or false
	Component(e Entity, id uint32) ([]byte, bool)
	// Components returns the ids of every component on e
	Components(e Entity) []uint32

	// SetParent links child under parent
	SetParent(child, parent Entity) bool
	// Parent returns the parent of e, 0 if none
	Parent(e Entity) Entity
	// Children returns the children of e in link order
	Children(e Entity) []Entity

	// Name returns the entity's name, "" if unnamed
	Name(e Entity) string
	// EntityCount returns the number of live entities
	EntityCount() int

	// Strings returns the world's interned string table. Component
	// string fields hold handles into it instead of raw pointers, so
	// spawned values outlive the prefab tree that produced them.
	Strings() *StringTable
}

// StringTable interns strings and hands out stable uint32 handles.
// Handle 0 is reserved and means "no string".
type StringTable struct {
	mu      sync.RWMutex
	strings []string
	handles map[string]uint32
}

func NewStringTable() *StringTable {
	return &StringTable{
		handles: make(map[string]uint32),
	}
}

// Intern returns the handle for s, allocating one on first use
func (t *StringTable) Intern(s string) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if h, ok := t.handles[s]; ok {
		return h
	}
	t.strings = append(t.strings, s)
	h := uint32(len(t.strings)) // 1-based, 0 stays "no string"
	t.handles[s] = h
	return h
}

// Lookup resolves a handle back to its string
func (t *StringTable) Lookup(h uint32) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if h == 0 || int(h) > len(t.strings) {
		return "", false
	}
	return t.strings[h-1], true
}

// Len returns the number of interned strings
func (t *StringTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.strings)
}
