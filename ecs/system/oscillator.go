package system

import (
	"math"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
)

type OscillatorSystem struct{}

func NewOscillatorSystem() *OscillatorSystem { return &OscillatorSystem{} }

func (s *OscillatorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Dt()
	ecs.ForEach2(w, component.OscillatorComponent, component.TransformComponent, func(_ ecs.Entity, o *component.Oscillator, t *component.Transform) {
		if o.PeriodMs <= 0 {
			return
		}
		o.Phase = math.Mod(o.Phase+2*math.Pi*dt/o.PeriodMs, 2*math.Pi)
		t.Y = o.BaseY + o.Amplitude*math.Sin(o.Phase)
	})
}
