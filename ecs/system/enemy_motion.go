package system

import (
	"math"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/tuning"
)

// EnemyMotionSystem bobs normal enemies and swings patrol enemies.
type EnemyMotionSystem struct {
	spec tuning.EnemySpec
}

func NewEnemyMotionSystem(spec tuning.EnemySpec) *EnemyMotionSystem {
	return &EnemyMotionSystem{spec: spec}
}

func (s *EnemyMotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Dt()
	ecs.ForEach2(w, component.EnemyComponent, component.TransformComponent, func(_ ecs.Entity, en *component.Enemy, t *component.Transform) {
		amp, period := s.spec.BobAmplitude, s.spec.BobPeriodMs
		if en.Behavior == component.BehaviorPatrol {
			amp, period = s.spec.PatrolRange, s.spec.PatrolPeriodMs
		}
		if period <= 0 {
			return
		}
		en.BobPhase = math.Mod(en.BobPhase+2*math.Pi*dt/period, 2*math.Pi)
		t.Y = en.BaseY + amp*math.Sin(en.BobPhase)
	})
}
