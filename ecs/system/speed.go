package system

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
)

// ApplyScrollSpeed rewrites the horizontal velocity of every scrolling entity.
// Tokens held by the magnet keep their steered velocity.
func ApplyScrollSpeed(w *ecs.World, speed float64) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.ScrollComponent, component.VelocityComponent, func(e ecs.Entity, s *component.Scroll, v *component.Velocity) {
		if tok, ok := ecs.Get(w, e, component.TokenComponent); ok && tok.Magnetized {
			return
		}
		v.X = -speed * s.Factor
	})
}
