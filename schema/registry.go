package schema

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Registry capacity limits
const (
	MaxComponents = 256
	MaxFields     = 32
	indexSize     = 512 // 2 * MaxComponents, power of two for mask probing
)

var (
	ErrRegistryFull  = errors.New("schema registry full")
	ErrDuplicateID   = errors.New("component id already registered")
	ErrTooManyFields = errors.New("too many fields")
)

// Registry is the runtime catalogue of component layouts. It is
// populated once at startup by the host and read-only afterwards from
// the parser, spawner and writer. The numeric-id index is an
// open-addressing hash table with linear probing; name lookup is a
// linear scan over the insertion list (bounded and small).
type Registry struct {
	metas []ComponentMeta
	index [indexSize]int32 // slot -> metas position + 1, 0 means empty
}

func NewRegistry() *Registry {
	return &Registry{
		metas: make([]ComponentMeta, 0, 32),
	}
}

func hashID(id uint32) uint64 {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], id)
	return xxhash.Sum64(buf[:])
}

// Register stores a component layout under its numeric id and name.
// It fails when the table is full, the field list is out of bounds, or
// the id is already present; the first registration always wins.
func (r *Registry) Register(meta ComponentMeta) error {
	if len(r.metas) >= MaxComponents {
		return fmt.Errorf("%w (limit %d)", ErrRegistryFull, MaxComponents)
	}
	if len(meta.Fields) > MaxFields {
		return fmt.Errorf("component %q: %w (%d > %d)", meta.Name, ErrTooManyFields, len(meta.Fields), MaxFields)
	}
	if r.ByID(meta.ID) != nil {
		return fmt.Errorf("component %q: %w (id %d)", meta.Name, ErrDuplicateID, meta.ID)
	}

	r.metas = append(r.metas, meta)
	pos := int32(len(r.metas)) // 1-based

	slot := hashID(meta.ID) & (indexSize - 1)
	for r.index[slot] != 0 {
		slot = (slot + 1) & (indexSize - 1)
	}
	r.index[slot] = pos
	return nil
}

// ByID returns the metadata registered under id, or nil
func (r *Registry) ByID(id uint32) *ComponentMeta {
	slot := hashID(id) & (indexSize - 1)
	for {
		pos := r.index[slot]
		if pos == 0 {
			return nil
		}
		m := &r.metas[pos-1]
		if m.ID == id {
			return m
		}
		slot = (slot + 1) & (indexSize - 1)
	}
}

// ByName returns the metadata registered under name, or nil.
// Linear in registered-component count.
func (r *Registry) ByName(name string) *ComponentMeta {
	for i := range r.metas {
		if r.metas[i].Name == name {
			return &r.metas[i]
		}
	}
	return nil
}

// Count returns the number of registered components
func (r *Registry) Count() int {
	return len(r.metas)
}

// All returns the registered metadata in insertion order.
// The returned slice is the registry's own storage; callers must not
// mutate it.
func (r *Registry) All() []ComponentMeta {
	return r.metas
}
