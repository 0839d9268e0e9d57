package system

import (
	"math"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/tuning"
)

// MagnetSystem pulls tokens near the player straight toward it every tick
// while the magnet is active.
type MagnetSystem struct {
	spec     tuning.PowerUpSpec
	powerups *PowerUpController
}

func NewMagnetSystem(spec tuning.PowerUpSpec, powerups *PowerUpController) *MagnetSystem {
	return &MagnetSystem{spec: spec, powerups: powerups}
}

func (s *MagnetSystem) Update(w *ecs.World) {
	if w == nil || !s.powerups.MagnetActive() {
		return
	}
	px, py, ok := playerPosition(w)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.TokenComponent, component.TransformComponent, func(e ecs.Entity, tok *component.Token, t *component.Transform) {
		dx := px - t.X
		dy := py - t.Y
		dist := math.Hypot(dx, dy)
		if dist > s.spec.MagnetRadius || dist == 0 {
			return
		}
		v, ok := ecs.Get(w, e, component.VelocityComponent)
		if !ok {
			return
		}
		if !tok.Magnetized {
			tok.Magnetized = true
			ecs.Remove(w, e, component.OscillatorComponent)
		}
		v.X = dx / dist * s.spec.MagnetSpeed
		v.Y = dy / dist * s.spec.MagnetSpeed
	})
}

func playerPosition(w *ecs.World) (x, y float64, ok bool) {
	e, _, ok := ecs.First(w, component.PlayerComponent)
	if !ok {
		return 0, 0, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return 0, 0, false
	}
	return t.X, t.Y, true
}

func playerState(w *ecs.World) *component.PlayerState {
	_, st, ok := ecs.First(w, component.PlayerComponent)
	if !ok {
		return nil
	}
	return st
}
