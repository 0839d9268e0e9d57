package entity

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/tuning"
)

func NewPlayer(w *ecs.World, spec tuning.PlayerSpec) (ecs.Entity, error) {
	return build(w, "player", func(e ecs.Entity) error {
		if err := add(w, e, component.TransformComponent, &component.Transform{X: spec.X, Y: spec.StartY}); err != nil {
			return err
		}
		if err := add(w, e, component.VelocityComponent, &component.Velocity{}); err != nil {
			return err
		}
		if err := add(w, e, component.ColliderComponent, &component.Collider{Shape: component.ColliderCircle, Radius: spec.Radius}); err != nil {
			return err
		}
		state := component.NewPlayerState(spec.MaxHealth, spec.InvulnerableMs)
		return add(w, e, component.PlayerComponent, &state)
	})
}
