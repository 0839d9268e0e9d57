package system

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
)

// ProjectileSystem expires projectiles after their lifetime.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem { return &ProjectileSystem{} }

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Dt()
	ecs.ForEach(w, component.ProjectileComponent, func(e ecs.Entity, p *component.Projectile) {
		p.LifetimeMs -= dt
		if p.LifetimeMs <= 0 {
			w.DestroyEntity(e)
		}
	})
}
