package entity

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
)

type ProjectileParams struct {
	X, Y       float64
	VX, VY     float64
	Radius     float64
	Owner      component.ProjectileOwner
	Kind       string
	LifetimeMs float64
	Damage     int
	Tint       uint32
}

// NewProjectile spawns a free-flying projectile. It does not scroll with the stage.
func NewProjectile(w *ecs.World, p ProjectileParams) (ecs.Entity, error) {
	return build(w, "projectile", func(e ecs.Entity) error {
		if err := add(w, e, component.TransformComponent, &component.Transform{X: p.X, Y: p.Y}); err != nil {
			return err
		}
		if err := add(w, e, component.VelocityComponent, &component.Velocity{X: p.VX, Y: p.VY}); err != nil {
			return err
		}
		if err := add(w, e, component.ColliderComponent, &component.Collider{Shape: component.ColliderCircle, Radius: p.Radius}); err != nil {
			return err
		}
		return add(w, e, component.ProjectileComponent, &component.Projectile{
			Owner:      p.Owner,
			Kind:       p.Kind,
			LifetimeMs: p.LifetimeMs,
			Damage:     p.Damage,
			Tint:       p.Tint,
		})
	})
}
