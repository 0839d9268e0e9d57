package system

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/progression"
	"github.com/milk9111/skyflap/tuning"
)

// CleanupSystem destroys entities that left the field. A token leaving
// uncollected breaks the combo.
type CleanupSystem struct {
	field  tuning.FieldSpec
	ledger *progression.Ledger
}

func NewCleanupSystem(field tuning.FieldSpec, ledger *progression.Ledger) *CleanupSystem {
	return &CleanupSystem{field: field, ledger: ledger}
}

func (s *CleanupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	margin := s.field.ExitMargin

	ecs.ForEach2(w, component.ScrollComponent, component.TransformComponent, func(e ecs.Entity, _ *component.Scroll, t *component.Transform) {
		half := 0.0
		if col, ok := ecs.Get(w, e, component.ColliderComponent); ok {
			half = col.Width/2 + col.Radius
		}
		if t.X+half >= -margin {
			return
		}
		if ecs.Has(w, e, component.TokenComponent) && s.ledger != nil {
			s.ledger.BreakCombo()
		}
		w.DestroyEntity(e)
	})

	ecs.ForEach2(w, component.ProjectileComponent, component.TransformComponent, func(e ecs.Entity, _ *component.Projectile, t *component.Transform) {
		if t.X < -margin || t.X > s.field.Width+margin || t.Y < -margin || t.Y > s.field.Height+margin {
			w.DestroyEntity(e)
		}
	})
}
