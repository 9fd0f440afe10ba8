package scene

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/scenekit/engine"
	"github.com/lixenwraith/scenekit/prefab"
)

// State is the scene lifecycle state machine:
// unloaded -> parsed -> instantiated, with a transient unloading
// state while tracked entities are being deleted.
type State int

const (
	StateUnloaded State = iota
	StateParsed
	StateInstantiated
	StateUnloading
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateParsed:
		return "parsed"
	case StateInstantiated:
		return "instantiated"
	case StateUnloading:
		return "unloading"
	}
	return "invalid"
}

// Scene is one or more root prefab trees parsed together and managed
// as a single instantiable level. It owns its parsed trees and the
// flat list of entity ids it spawned; the entities themselves belong
// to the collaborator world.
type Scene struct {
	ID   uuid.UUID
	Path string // source file, "" for in-memory scenes
	Name string

	state State
	roots []*prefab.Prefab

	entities     []engine.Entity // every spawned entity, insertion order
	rootEntities []engine.Entity // the root subset

	assets []AssetRef // deduplicated referenced asset paths
}

func newScene(path, name string, roots []*prefab.Prefab) *Scene {
	return &Scene{
		ID:     uuid.New(),
		Path:   path,
		Name:   name,
		state:  StateParsed,
		roots:  roots,
		assets: ExtractAssets(roots),
	}
}

// State returns the current lifecycle state
func (s *Scene) State() State {
	return s.state
}

// Roots returns the parsed root prefab trees
func (s *Scene) Roots() []*prefab.Prefab {
	return s.roots
}

// Entities returns every entity the scene spawned, in creation order.
// Empty unless the scene is instantiated.
func (s *Scene) Entities() []engine.Entity {
	return s.entities
}

// RootEntities returns the spawned root entities
func (s *Scene) RootEntities() []engine.Entity {
	return s.rootEntities
}

// EntityCount returns the number of tracked entities
func (s *Scene) EntityCount() int {
	return len(s.entities)
}

// Assets returns the deduplicated referenced asset paths
func (s *Scene) Assets() []AssetRef {
	return s.assets
}

// NodeCount returns the total prefab node count across all root trees
func (s *Scene) NodeCount() int {
	n := 0
	for _, root := range s.roots {
		n += root.Count()
	}
	return n
}

// Write renders the scene's parsed trees back to source text
func (s *Scene) Write() string {
	return prefab.WriteScene(s.roots)
}
