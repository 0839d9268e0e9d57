package system

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
)

// MovementSystem integrates velocity into position for everything except
// the player, whose body is integrated by physics.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	step := w.Dt() / 1000
	ecs.ForEach2(w, component.VelocityComponent, component.TransformComponent, func(e ecs.Entity, v *component.Velocity, t *component.Transform) {
		if ecs.Has(w, e, component.PlayerComponent) {
			return
		}
		t.X += v.X * step
		t.Y += v.Y * step
	})
}
