package entity

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
)

type PowerUpParams struct {
	X, Y         float64
	Radius       float64
	Speed        float64
	Kind         component.PowerUpKind
	BobAmplitude float64
	BobPeriodMs  float64
}

func NewPowerUp(w *ecs.World, p PowerUpParams) (ecs.Entity, error) {
	return build(w, "power_up", func(e ecs.Entity) error {
		col := component.Collider{Shape: component.ColliderCircle, Radius: p.Radius}
		if err := scrolling(w, e, p.X, p.Y, p.Speed, 1, col); err != nil {
			return err
		}
		if p.BobAmplitude > 0 && p.BobPeriodMs > 0 {
			osc := &component.Oscillator{BaseY: p.Y, Amplitude: p.BobAmplitude, PeriodMs: p.BobPeriodMs}
			if err := add(w, e, component.OscillatorComponent, osc); err != nil {
				return err
			}
		}
		return add(w, e, component.PowerUpComponent, &component.PowerUp{Kind: p.Kind})
	})
}
