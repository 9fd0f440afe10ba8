package schema

import (
	"fmt"

	"github.com/lixenwraith/scenekit/prefab"
)

// Compatible reports whether a literal of the given kind can be
// applied to a field of the given type under the coercion rules:
// numeric fields accept either numeric literal, string fields accept
// strings and identifiers, bool and vector fields are exact, entity
// fields take a raw id.
func Compatible(ft FieldType, vk prefab.ValueKind) bool {
	switch ft {
	case FieldInt, FieldUint, FieldFloat, FieldDouble,
		FieldInt8, FieldInt16, FieldInt64,
		FieldUint8, FieldUint16, FieldUint64:
		return vk == prefab.ValueInt || vk == prefab.ValueFloat
	case FieldBool:
		return vk == prefab.ValueBool
	case FieldVec2:
		return vk == prefab.ValueVec2
	case FieldVec3:
		return vk == prefab.ValueVec3
	case FieldVec4:
		return vk == prefab.ValueVec4
	case FieldString:
		return vk == prefab.ValueString || vk == prefab.ValueIdent
	case FieldEntity:
		return vk == prefab.ValueInt
	}
	return false
}

// Validate walks a prefab tree against the registry and returns one
// warning per unknown component, unknown field, or type-mismatched
// value. These are exactly the conditions instantiation skips
// silently; validation makes them visible without changing behavior.
func Validate(r *Registry, root *prefab.Prefab) []string {
	var warnings []string
	root.Walk(func(node *prefab.Prefab) {
		label := node.Name
		if label == "" {
			label = "<anonymous>"
		}
		for i := range node.Components {
			cfg := &node.Components[i]
			meta := r.ByName(cfg.Name)
			if meta == nil {
				warnings = append(warnings, fmt.Sprintf("%s: unknown component %q", label, cfg.Name))
				continue
			}
			for j := range cfg.Fields {
				fa := &cfg.Fields[j]
				desc := meta.Field(fa.Name)
				if desc == nil && fa.Name == prefab.ShorthandField && len(meta.Fields) > 0 {
					desc = &meta.Fields[0]
				}
				if desc == nil {
					warnings = append(warnings, fmt.Sprintf("%s: component %q has no field %q", label, cfg.Name, fa.Name))
					continue
				}
				if !Compatible(desc.Type, fa.Value.Kind) {
					warnings = append(warnings, fmt.Sprintf("%s: %s.%s: cannot apply %s to %s field",
						label, cfg.Name, desc.Name, fa.Value.Kind, desc.Type))
				}
			}
		}
	})
	return warnings
}
