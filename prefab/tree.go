package prefab

import "github.com/lixenwraith/scenekit/vmath"

// Capacity limits for a single definition block. Exceeding one is a
// parse error, never silent truncation.
const (
	MaxFields     = 32 // field assignments per component
	MaxComponents = 32 // component configs per prefab node
	MaxChildren   = 64 // child nodes per prefab node
)

// ShorthandField is the synthesized field name for the single-scalar
// component form `Name: value`; the spawner binds it to the matched
// component's first declared field.
const ShorthandField = "value"

// FieldAssign is one `name: value` pair inside a component block
type FieldAssign struct {
	Name  string
	Value Value
}

// ComponentConfig is a named component plus its ordered field
// assignments as written in the source
type ComponentConfig struct {
	Name   string
	Fields []FieldAssign
}

// Field returns the assignment with the given name, or nil
func (c *ComponentConfig) Field(name string) *FieldAssign {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i]
		}
	}
	return nil
}

// Prefab is one node of a parsed definition tree. Each node
// exclusively owns its components and children; trees are acyclic and
// nodes are never shared between parents.
type Prefab struct {
	Name       string
	Position   vmath.Vec2
	Components []ComponentConfig
	Children   []*Prefab
	Base       string // referenced base prefab path/name, resolved at spawn time
}

// Component returns the config with the given name, or nil
func (p *Prefab) Component(name string) *ComponentConfig {
	for i := range p.Components {
		if p.Components[i].Name == name {
			return &p.Components[i]
		}
	}
	return nil
}

// Count returns the total number of nodes in the tree rooted at p
func (p *Prefab) Count() int {
	n := 1
	for _, c := range p.Children {
		n += c.Count()
	}
	return n
}

// Walk visits p and every descendant in depth-first declaration order
func (p *Prefab) Walk(fn func(*Prefab)) {
	fn(p)
	for _, c := range p.Children {
		c.Walk(fn)
	}
}
