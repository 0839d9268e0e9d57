package system

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/tuning"
)

// PlayerSystem ticks post-hit invulnerability and reports leaving the
// vertical bounds of the field.
type PlayerSystem struct {
	spec *tuning.GameplaySpec

	// OnLeaveField runs once when the player crosses the top or bottom edge.
	OnLeaveField func()
}

func NewPlayerSystem(spec *tuning.GameplaySpec) *PlayerSystem {
	return &PlayerSystem{spec: spec}
}

func (s *PlayerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	st := playerState(w)
	if st == nil || st.IsDead {
		return
	}
	st.Tick(w.Dt())

	_, y, ok := playerPosition(w)
	if !ok {
		return
	}
	r := s.spec.Player.Radius
	if y-r < 0 || y+r > s.spec.Field.Height {
		if s.OnLeaveField != nil {
			s.OnLeaveField()
		}
	}
}
