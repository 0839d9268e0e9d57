package system

import (
	"math"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/progression"
	"github.com/milk9111/skyflap/tuning"
)

// PassSystem scores each obstacle once, the first tick the player is past it,
// and awards near misses on the approach.
type PassSystem struct {
	spec   *tuning.GameplaySpec
	ledger *progression.Ledger
}

func NewPassSystem(spec *tuning.GameplaySpec, ledger *progression.Ledger) *PassSystem {
	return &PassSystem{spec: spec, ledger: ledger}
}

func (s *PassSystem) Update(w *ecs.World) {
	if w == nil || s.ledger == nil {
		return
	}
	if st := playerState(w); st == nil || st.IsDead {
		return
	}
	px, py, ok := playerPosition(w)
	if !ok {
		return
	}
	scoring := s.spec.Scoring

	ecs.ForEach2(w, component.ObstacleComponent, component.TransformComponent, func(_ ecs.Entity, o *component.ObstaclePair, t *component.Transform) {
		if o.Scored {
			return
		}
		if px > t.X+s.spec.Obstacle.PassOffset {
			o.Scored = true
			s.ledger.RegisterPass(py, o.GapTop, o.GapBottom)
			return
		}
		if o.NearMissRegistered || math.Abs(px-t.X) > scoring.NearMissWindowX {
			return
		}
		if py < o.GapTop || py > o.GapBottom {
			return
		}
		if math.Min(py-o.GapTop, o.GapBottom-py) < scoring.NearMissDistance {
			o.NearMissRegistered = true
			s.ledger.RegisterNearMiss()
		}
	})
}
