package system

import (
	"github.com/milk9111/skyflap/boss"
	"github.com/milk9111/skyflap/ecs"
)

// BossSystem drives the active encounter, aiming at the player.
type BossSystem struct {
	Encounter *boss.Encounter
}

func NewBossSystem() *BossSystem { return &BossSystem{} }

func (s *BossSystem) Update(w *ecs.World) {
	if s.Encounter == nil || w == nil {
		return
	}
	px, py, _ := playerPosition(w)
	s.Encounter.Update(w.Dt(), px, py)
	if s.Encounter.Removed() && w.IsAlive(s.Encounter.Entity()) {
		w.DestroyEntity(s.Encounter.Entity())
	}
}
