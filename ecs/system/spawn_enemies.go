package system

import (
	"math"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/ecs/entity"
)

type formationSlot struct {
	dx, dy   float64
	behavior component.EnemyBehavior
	phase    float64
}

var formations = map[component.Formation][]formationSlot{
	component.FormationSingle: {{}},
	component.FormationLine:   {{}, {dx: 100, dy: 15}, {dx: 200, dy: 30}},
	component.FormationVerticalPatrol: {
		{dy: -50, behavior: component.BehaviorPatrol},
		{dy: 50, behavior: component.BehaviorPatrol, phase: math.Pi},
	},
	component.FormationV: {{}, {dx: 80, dy: -30}, {dx: 80, dy: 30}},
	component.FormationCluster: {
		{}, {dx: 40, dy: -35}, {dx: 40, dy: 35}, {dx: 80}, {dx: 120, dy: -20},
	},
}

// formationWeights shifts the mix toward larger formations as the level rises.
func formationWeights(level int) [5]float64 {
	l := float64(level)
	w := [5]float64{40 - 3*l, 20 + l, 15 + l, 15 + 2*l, 10 + 2*l}
	for i := range w {
		if w[i] < 0 {
			w[i] = 0
		}
	}
	return w
}

func (s *SpawnScheduler) pickFormation(level int) component.Formation {
	weights := formationWeights(level)
	total := 0.0
	for _, v := range weights {
		total += v
	}
	r := s.rng.Float64() * total
	for i, v := range weights {
		if r < v {
			return component.Formation(i)
		}
		r -= v
	}
	return component.FormationCluster
}

// enemyAnchorY picks a height clear of the gap by the avoid buffer, or false
// if the field has no room on either side.
func (s *SpawnScheduler) enemyAnchorY(gapTop, gapBottom float64) (float64, bool) {
	es := s.spec.Enemies
	minY := es.Radius
	maxY := s.spec.Field.Height - es.Radius

	aboveHi := gapTop - es.AvoidGapBuffer
	belowLo := gapBottom + es.AvoidGapBuffer
	above := math.Max(0, aboveHi-minY)
	below := math.Max(0, maxY-belowLo)
	if above+below <= 0 {
		return 0, false
	}
	r := s.rng.Float64() * (above + below)
	if r < above {
		return minY + r, true
	}
	return belowLo + (r - above), true
}

func (s *SpawnScheduler) placeFormation(w *ecs.World, f component.Formation, x, gapTop, gapBottom, speed float64) (int, error) {
	y, ok := s.enemyAnchorY(gapTop, gapBottom)
	if !ok {
		return 0, nil
	}
	slots := formations[f]
	if f == component.FormationCluster {
		slots = slots[:4+s.rng.Intn(2)]
	}
	es := s.spec.Enemies
	placed := 0
	for _, slot := range slots {
		ey := clamp(y+slot.dy, es.Radius, s.spec.Field.Height-es.Radius)
		if _, err := entity.NewEnemy(w, entity.EnemyParams{
			X:         x + slot.dx,
			Y:         ey,
			Radius:    es.Radius,
			Speed:     speed,
			Formation: f,
			Behavior:  slot.behavior,
			BobPhase:  slot.phase,
		}); err != nil {
			return placed, err
		}
		placed++
	}
	return placed, nil
}
