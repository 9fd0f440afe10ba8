package engine

import "sync"

// entityRecord is the in-memory backing state for one entity
type entityRecord struct {
	name       string
	parent     Entity
	children   []Entity
	components map[uint32][]byte
	order      []uint32 // component ids in write order
}

// MemoryWorld is the reference in-process World implementation, used
// by tests and the CLI. Production hosts plug their own storage engine
// in behind the World interface.
type MemoryWorld struct {
	mu           sync.RWMutex
	nextEntityID Entity
	entities     map[Entity]*entityRecord
	strings      *StringTable
}

func NewMemoryWorld() *MemoryWorld {
	return &MemoryWorld{
		nextEntityID: 1,
		entities:     make(map[Entity]*entityRecord),
		strings:      NewStringTable(),
	}
}

func (w *MemoryWorld) CreateEntity(name string) Entity {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextEntityID
	w.nextEntityID++
	w.entities[id] = &entityRecord{
		name:       name,
		components: make(map[uint32][]byte),
	}
	return id
}

func (w *MemoryWorld) DeleteEntity(e Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, ok := w.entities[e]
	if !ok {
		return
	}

	// Detach from parent
	if parent, ok := w.entities[rec.parent]; ok {
		for i, c := range parent.children {
			if c == e {
				parent.children = append(parent.children[:i], parent.children[i+1:]...)
				break
			}
		}
	}
	// Orphan children rather than cascading; the scene manager deletes
	// tracked entities individually in reverse creation order
	for _, c := range rec.children {
		if child, ok := w.entities[c]; ok {
			child.parent = 0
		}
	}

	delete(w.entities, e)
}

func (w *MemoryWorld) Alive(e Entity) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.entities[e]
	return ok
}

func (w *MemoryWorld) SetComponent(e Entity, id uint32, data []byte) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	rec, ok := w.entities[e]
	if !ok {
		return false
	}
	if _, exists := rec.components[id]; !exists {
		rec.order = append(rec.order, id)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	rec.components[id] = buf
	return true
}

func (w *MemoryWorld) Component(e Entity, id uint32) ([]byte, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	rec, ok := w.entities[e]
	if !ok {
		return nil, false
	}
	data, ok := rec.components[id]
	return data, ok
}

func (w *MemoryWorld) Components(e Entity) []uint32 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	rec, ok := w.entities[e]
	if !ok {
		return nil
	}
	out := make([]uint32, len(rec.order))
	copy(out, rec.order)
	return out
}

func (w *MemoryWorld) SetParent(child, parent Entity) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	childRec, ok := w.entities[child]
	if !ok {
		return false
	}
	parentRec, ok := w.entities[parent]
	if !ok {
		return false
	}
	childRec.parent = parent
	parentRec.children = append(parentRec.children, child)
	return true
}

func (w *MemoryWorld) Parent(e Entity) Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if rec, ok := w.entities[e]; ok {
		return rec.parent
	}
	return 0
}

func (w *MemoryWorld) Children(e Entity) []Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()

	rec, ok := w.entities[e]
	if !ok {
		return nil
	}
	out := make([]Entity, len(rec.children))
	copy(out, rec.children)
	return out
}

func (w *MemoryWorld) Name(e Entity) string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if rec, ok := w.entities[e]; ok {
		return rec.name
	}
	return ""
}

func (w *MemoryWorld) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}

func (w *MemoryWorld) Strings() *StringTable {
	return w.strings
}
