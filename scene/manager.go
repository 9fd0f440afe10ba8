package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/lixenwraith/scenekit/engine"
	"github.com/lixenwraith/scenekit/prefab"
	"github.com/lixenwraith/scenekit/schema"
)

// Scene cache sizing
const MaxCachedScenes = 32

var (
	ErrCacheFull = errors.New("scene cache full")
	ErrBadState  = errors.New("invalid scene state")
)

// Manager owns zero or more loaded scenes, tracks the one currently
// active, and drives the lifecycle transitions between them. It is
// single-threaded like the rest of the core; callers serialize access.
type Manager struct {
	schema  *schema.Registry
	prefabs *prefab.Registry
	scenes  []*Scene // path-keyed cache, linear scan
	active  *Scene
	log     *zap.Logger
}

// NewManager creates a scene manager over the given registries.
// The logger may be nil.
func NewManager(reg *schema.Registry, prefabs *prefab.Registry, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		schema:  reg,
		prefabs: prefabs,
		log:     log,
	}
}

// Active returns the currently active scene, nil if none
func (m *Manager) Active() *Scene {
	return m.active
}

// Load parses a scene file into state parsed, returning the cached
// scene on repeated loads of the same path
func (m *Manager) Load(path string) (*Scene, error) {
	for _, s := range m.scenes {
		if s.Path == path {
			return s, nil
		}
	}
	if len(m.scenes) >= MaxCachedScenes {
		return nil, fmt.Errorf("%w (limit %d)", ErrCacheFull, MaxCachedScenes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	roots, err := prefab.ParseScene(path, data)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s := newScene(path, name, roots)
	m.scenes = append(m.scenes, s)
	m.log.Info("scene loaded",
		zap.String("scene", s.Name),
		zap.String("path", path),
		zap.Int("roots", len(roots)),
		zap.Int("nodes", s.NodeCount()))
	return s, nil
}

// LoadString parses an in-memory scene source. String-born scenes are
// never cached; the caller owns the returned scene.
func (m *Manager) LoadString(name, src string) (*Scene, error) {
	roots, err := prefab.ParseScene(name, []byte(src))
	if err != nil {
		return nil, err
	}
	return newScene("", name, roots), nil
}

// Instantiate spawns every root tree into the world and records each
// spawned entity. Valid only from state parsed; re-invoking on an
// instantiated scene is rejected. On a root spawn failure the partial
// spawn is torn down again and the scene stays parsed.
func (m *Manager) Instantiate(s *Scene, w engine.World, diag *engine.Diagnostics) error {
	if s.state != StateParsed {
		return fmt.Errorf("%w: instantiate from %s", ErrBadState, s.state)
	}

	for _, root := range s.roots {
		e := engine.Spawn(root, engine.SpawnContext{
			World:   w,
			Schema:  m.schema,
			Prefabs: m.prefabs,
			Diag:    diag,
			Log:     m.log,
		})
		if e == 0 {
			m.teardown(s, w)
			return fmt.Errorf("scene %s: root %q failed to spawn", s.Name, root.Name)
		}
		s.rootEntities = append(s.rootEntities, e)
		// Track the root and every descendant by walking the world's
		// child links, in creation order
		recordSubtree(s, w, e)
	}

	s.state = StateInstantiated
	m.log.Info("scene instantiated",
		zap.String("scene", s.Name),
		zap.Int("entities", len(s.entities)))
	return nil
}

// Uninstantiate deletes every tracked entity in reverse creation order
// (children before parents, tolerating already-deleted ones) and
// returns the scene to parsed
func (m *Manager) Uninstantiate(s *Scene, w engine.World) error {
	if s.state != StateInstantiated {
		return fmt.Errorf("%w: uninstantiate from %s", ErrBadState, s.state)
	}
	s.state = StateUnloading
	m.teardown(s, w)
	s.state = StateParsed
	m.log.Info("scene uninstantiated", zap.String("scene", s.Name))
	return nil
}

// teardown deletes tracked entities in reverse order and clears the
// tracking lists
func (m *Manager) teardown(s *Scene, w engine.World) {
	for i := len(s.entities) - 1; i >= 0; i-- {
		if w.Alive(s.entities[i]) {
			w.DeleteEntity(s.entities[i])
		}
	}
	s.entities = nil
	s.rootEntities = nil
}

// Transition loads the scene at path first, so a bad new scene never
// destroys the current one, then swaps: uninstantiate the active
// scene, instantiate the new one. If the new scene fails to
// instantiate the previous scene is re-instantiated best-effort and
// the active pointer is left unchanged.
func (m *Manager) Transition(path string, w engine.World) (*Scene, error) {
	next, err := m.Load(path)
	if err != nil {
		return nil, err
	}

	prev := m.active
	if prev != nil && prev.state == StateInstantiated {
		if err := m.Uninstantiate(prev, w); err != nil {
			return nil, err
		}
	}

	if err := m.Instantiate(next, w, nil); err != nil {
		if prev != nil && prev.state == StateParsed {
			if rbErr := m.Instantiate(prev, w, nil); rbErr != nil {
				m.log.Warn("rollback re-instantiation failed",
					zap.String("scene", prev.Name), zap.Error(rbErr))
			}
		}
		return nil, err
	}

	m.active = next
	m.log.Info("scene transition", zap.String("scene", next.Name))
	return next, nil
}

// Release drops a scene from the manager, implicitly uninstantiating
// it first if needed. The parsed trees are released with it.
func (m *Manager) Release(s *Scene, w engine.World) {
	if s.state == StateInstantiated {
		_ = m.Uninstantiate(s, w)
	}
	s.state = StateUnloaded
	s.roots = nil
	for i, cached := range m.scenes {
		if cached == s {
			m.scenes = append(m.scenes[:i], m.scenes[i+1:]...)
			break
		}
	}
	if m.active == s {
		m.active = nil
	}
}

// FindEntity scans a scene's tracked entities for one whose world name
// matches, skipping dead entities. Returns 0 when not found.
func (m *Manager) FindEntity(s *Scene, w engine.World, name string) engine.Entity {
	for _, e := range s.entities {
		if !w.Alive(e) {
			continue
		}
		if w.Name(e) == name {
			return e
		}
	}
	return 0
}

// recordSubtree appends e and all its descendants to the scene's flat
// entity list, depth-first in link order
func recordSubtree(s *Scene, w engine.World, e engine.Entity) {
	s.entities = append(s.entities, e)
	for _, child := range w.Children(e) {
		recordSubtree(s, w, child)
	}
}
