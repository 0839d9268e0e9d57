package entity

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
)

// NewBoss attaches an encounter's state to a new entity so physics and
// presentation can find it. The encounter keeps mutating the same state and
// transform.
func NewBoss(w *ecs.World, state *component.BossState, tr *component.Transform) (ecs.Entity, error) {
	return build(w, "boss", func(e ecs.Entity) error {
		if err := add(w, e, component.TransformComponent, tr); err != nil {
			return err
		}
		if err := add(w, e, component.ColliderComponent, &component.Collider{
			Shape:  component.ColliderBox,
			Width:  state.Width,
			Height: state.Height,
		}); err != nil {
			return err
		}
		return add(w, e, component.BossComponent, state)
	})
}
