package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/scenekit/prefab"
	"github.com/lixenwraith/scenekit/schema"
	"github.com/lixenwraith/scenekit/vmath"
)

// PositionComponent is the component name the spawner writes entity
// positions into. It is added unconditionally to every spawned entity
// when registered, whether or not the node declared it.
const PositionComponent = "Position"

// Diagnostics collects the soft failures instantiation skips silently
// by default: unknown components, unknown fields, type mismatches.
// A nil sink keeps the default lenient behavior.
type Diagnostics struct {
	Warnings []string
}

func (d *Diagnostics) warnf(format string, args ...any) {
	if d == nil {
		return
	}
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// SpawnContext carries everything one instantiation pass needs
type SpawnContext struct {
	World   World
	Schema  *schema.Registry
	Prefabs *prefab.Registry // base-prefab resolution, optional
	Offset  vmath.Vec2       // world offset applied to this node's position
	Parent  Entity           // link target, 0 for roots
	Diag    *Diagnostics     // optional warning sink
	Log     *zap.Logger      // optional, nop when nil
}

// Spawn walks a prefab tree and creates one live entity per node.
// Base-prefab components are merged first (single level, a base's own
// base is ignored), then the node's own configs override, then the
// position component receives Offset + node.Position. Children spawn
// relative to their parent entity, so their declared offset is applied
// exactly once, with no further accumulation of the root offset.
//
// An entity-creation failure aborts that branch and returns 0;
// already-created siblings and ancestors persist.
func Spawn(node *prefab.Prefab, ctx SpawnContext) Entity {
	log := ctx.Log
	if log == nil {
		log = zap.NewNop()
	}

	e := ctx.World.CreateEntity(node.Name)
	if e == 0 {
		log.Warn("entity creation failed", zap.String("prefab", node.Name))
		return 0
	}
	if ctx.Parent != 0 {
		ctx.World.SetParent(e, ctx.Parent)
	}

	if ctx.Schema != nil {
		if node.Base != "" {
			applyBase(node, ctx, e)
		}
		for i := range node.Components {
			applyConfig(ctx, e, &node.Components[i])
		}
		writePosition(ctx, e, ctx.Offset.Add(node.Position))
	}

	log.Debug("spawned entity",
		zap.Uint64("entity", uint64(e)),
		zap.String("name", node.Name),
		zap.Int("components", len(node.Components)))

	for _, child := range node.Children {
		childCtx := ctx
		childCtx.Offset = vmath.Vec2{}
		childCtx.Parent = e
		Spawn(child, childCtx)
	}
	return e
}

// applyBase merges the referenced base prefab's component configs.
// Resolution happens lazily here, not at parse time, and only one
// level deep: the base's own base reference is not followed.
func applyBase(node *prefab.Prefab, ctx SpawnContext, e Entity) {
	if ctx.Prefabs == nil {
		ctx.Diag.warnf("%s: base prefab %q: no prefab registry in context", node.Name, node.Base)
		return
	}
	base, err := ctx.Prefabs.Load(node.Base)
	if err != nil {
		ctx.Diag.warnf("%s: base prefab %q: %v", node.Name, node.Base, err)
		return
	}
	for i := range base.Components {
		applyConfig(ctx, e, &base.Components[i])
	}
}

// applyConfig builds a zeroed scratch record for the component, applies
// every field assignment, and writes the record onto the entity.
// Unknown components and fields are skipped, never errors.
func applyConfig(ctx SpawnContext, e Entity, cfg *prefab.ComponentConfig) {
	meta := ctx.Schema.ByName(cfg.Name)
	if meta == nil {
		ctx.Diag.warnf("unknown component %q", cfg.Name)
		return
	}

	buf := make([]byte, meta.Size)
	for i := range cfg.Fields {
		fa := &cfg.Fields[i]
		desc := meta.Field(fa.Name)
		if desc == nil && fa.Name == prefab.ShorthandField && len(meta.Fields) > 0 {
			// Single-field shorthand binds to the first declared field
			desc = &meta.Fields[0]
		}
		if desc == nil {
			ctx.Diag.warnf("component %q has no field %q", cfg.Name, fa.Name)
			continue
		}
		if !ApplyField(buf, desc, fa.Value, ctx.World.Strings()) {
			ctx.Diag.warnf("%s.%s: cannot apply %s value", cfg.Name, desc.Name, fa.Value.Kind)
		}
	}
	ctx.World.SetComponent(e, meta.ID, buf)
}

// writePosition writes pos into the position component, preserving any
// other fields the node's own config already set
func writePosition(ctx SpawnContext, e Entity, pos vmath.Vec2) {
	meta := ctx.Schema.ByName(PositionComponent)
	if meta == nil {
		return
	}

	buf := make([]byte, meta.Size)
	if existing, ok := ctx.World.Component(e, meta.ID); ok && len(existing) == meta.Size {
		copy(buf, existing)
	}

	fx, fy := positionFields(meta)
	if fx == nil || fy == nil {
		return
	}
	ApplyField(buf, fx, prefab.FloatValue(pos.X), ctx.World.Strings())
	ApplyField(buf, fy, prefab.FloatValue(pos.Y), ctx.World.Strings())
	ctx.World.SetComponent(e, meta.ID, buf)
}

// positionFields resolves the x/y descriptors by name, falling back to
// the first two declared fields
func positionFields(meta *schema.ComponentMeta) (*schema.FieldDesc, *schema.FieldDesc) {
	fx := meta.Field("x")
	fy := meta.Field("y")
	if fx != nil && fy != nil {
		return fx, fy
	}
	if len(meta.Fields) >= 2 {
		return &meta.Fields[0], &meta.Fields[1]
	}
	return nil, nil
}
