package entity

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
)

type TokenParams struct {
	X, Y      float64
	Radius    float64
	Speed     float64
	Kind      component.TokenKind
	HighValue bool
	Pattern   component.TokenPattern
	// Oscillator is optional; oscillating tokens move vertically around its BaseY.
	Oscillator *component.Oscillator
}

func NewToken(w *ecs.World, p TokenParams) (ecs.Entity, error) {
	return build(w, "token", func(e ecs.Entity) error {
		col := component.Collider{Shape: component.ColliderCircle, Radius: p.Radius}
		if err := scrolling(w, e, p.X, p.Y, p.Speed, 1, col); err != nil {
			return err
		}
		if p.Oscillator != nil {
			osc := *p.Oscillator
			if err := add(w, e, component.OscillatorComponent, &osc); err != nil {
				return err
			}
		}
		return add(w, e, component.TokenComponent, &component.Token{
			Kind:      p.Kind,
			HighValue: p.HighValue,
			Pattern:   p.Pattern,
		})
	})
}
