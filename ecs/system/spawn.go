package system

import (
	"log"
	"math/rand"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/ecs/entity"
	"github.com/milk9111/skyflap/tuning"
)

type SpawnState int

const (
	SpawnIdle SpawnState = iota
	SpawnArmed
)

func (s SpawnState) String() string {
	if s == SpawnArmed {
		return "armed"
	}
	return "idle"
}

// Wave records what one firing of the scheduler placed.
type Wave struct {
	Obstacle ecs.Entity
	GapTop   float64
	GapSize  float64

	PowerUp    bool
	PowerUpKind component.PowerUpKind

	Tokens  int
	Pattern component.TokenPattern

	Enemies   int
	Formation component.Formation
}

// SpawnScheduler is a self-rearming timer. Each firing places one obstacle
// pair plus rolled extras, then arms again with a fresh jittered delay.
// Cancel stops future firings; entities already placed are left alone.
type SpawnScheduler struct {
	spec       *tuning.GameplaySpec
	rng        *rand.Rand
	powerups   *PowerUpController
	difficulty func() Difficulty

	state SpawnState
	timer component.Timer
	fired int

	// OnWave runs after every firing.
	OnWave func(Wave)
}

func NewSpawnScheduler(spec *tuning.GameplaySpec, rng *rand.Rand, powerups *PowerUpController, difficulty func() Difficulty) *SpawnScheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &SpawnScheduler{spec: spec, rng: rng, powerups: powerups, difficulty: difficulty}
}

// Start arms the scheduler for its first firing.
func (s *SpawnScheduler) Start() {
	s.state = SpawnArmed
	s.timer.Start(s.nextDelay())
}

// Cancel returns to Idle and drops the pending firing.
func (s *SpawnScheduler) Cancel() {
	s.state = SpawnIdle
	s.timer.Stop()
}

// Rearm restarts the pending delay with the current interval. No-op while idle.
func (s *SpawnScheduler) Rearm() {
	if s.state != SpawnArmed {
		return
	}
	s.timer.Start(s.nextDelay())
}

func (s *SpawnScheduler) State() SpawnState { return s.state }
func (s *SpawnScheduler) Remaining() float64 { return s.timer.Remaining() }
func (s *SpawnScheduler) Fired() int { return s.fired }

func (s *SpawnScheduler) Update(w *ecs.World) {
	if s == nil || w == nil || s.state != SpawnArmed {
		return
	}
	if !s.timer.Tick(w.Dt()) {
		return
	}
	if _, err := s.Fire(w); err != nil {
		log.Printf("spawn: %v", err)
	}
	if s.state == SpawnArmed {
		s.timer.Start(s.nextDelay())
	}
}

// nextDelay is the spawn interval plus or minus half the jitter.
func (s *SpawnScheduler) nextDelay() float64 {
	d := s.current()
	jitter := (s.rng.Float64() - 0.5) * s.spec.Difficulty.JitterMs
	delay := d.SpawnIntervalMs + jitter
	if delay < 1 {
		delay = 1
	}
	return delay
}

func (s *SpawnScheduler) current() Difficulty {
	if s.difficulty == nil {
		return ComputeDifficulty(s.spec, 0, 0)
	}
	return s.difficulty()
}

// Fire places one wave immediately.
func (s *SpawnScheduler) Fire(w *ecs.World) (Wave, error) {
	d := s.current()
	stacks := s.powerups.Stacks()
	x := s.spec.Field.Width + s.spec.Obstacle.SpawnOffset

	gapTop, gapSize := s.placeGap(d.GapSize, stacks)
	color := component.ColorNormal
	if stacks > 0 {
		color = component.ColorCycling
	}
	kind := component.PipeCopper
	if s.rng.Intn(2) == 1 {
		kind = component.PipeJade
	}

	obstacle, err := entity.NewObstaclePair(w, entity.ObstacleParams{
		X:       x,
		GapTop:  gapTop,
		GapSize: gapSize,
		Width:   s.spec.Obstacle.Width,
		Kind:    kind,
		Color:   color,
		Speed:   d.ScrollSpeed,
	})
	if err != nil {
		return Wave{}, err
	}
	s.fired++

	wave := Wave{Obstacle: obstacle, GapTop: gapTop, GapSize: gapSize}
	center := gapTop + gapSize/2

	pu := s.spec.PowerUps
	switch {
	case s.rng.Float64() < s.hatChance(stacks):
		err = s.placePowerUp(w, component.PowerUpHat, x+pu.HatOffsetX, center, d.ScrollSpeed)
		wave.PowerUp, wave.PowerUpKind = err == nil, component.PowerUpHat
	case s.rng.Float64() < pu.MagnetChance:
		err = s.placePowerUp(w, component.PowerUpMagnet, x+pu.MagnetOffsetX, center, d.ScrollSpeed)
		wave.PowerUp, wave.PowerUpKind = err == nil, component.PowerUpMagnet
	case s.rng.Float64() < pu.TokenChance:
		wave.Pattern = component.TokenPattern(s.rng.Intn(5))
		wave.Tokens, err = s.placeTokens(w, wave.Pattern, x, gapTop, gapSize, d.ScrollSpeed)
	}
	if err != nil {
		log.Printf("spawn: extras: %v", err)
	}

	if s.rng.Float64() < d.EnemySpawnChance {
		wave.Formation = s.pickFormation(d.Level)
		wave.Enemies, err = s.placeFormation(w, wave.Formation, x+s.spec.Enemies.OffsetX, gapTop, gapTop+gapSize, d.ScrollSpeed)
		if err != nil {
			log.Printf("spawn: %s formation: %v", wave.Formation, err)
		}
	}

	if s.OnWave != nil {
		s.OnWave(wave)
	}
	return wave, nil
}

// placeGap picks the gap. With the hat on the gap is widened and pulled
// toward the middle of the field.
func (s *SpawnScheduler) placeGap(gap float64, stacks int) (top, size float64) {
	field := s.spec.Field
	margin := s.spec.Obstacle.SafeMargin
	maxGap := s.spec.MaxGap()

	if stacks > 0 {
		gap *= s.spec.Obstacle.HatGapBase + s.spec.Obstacle.HatGapPerStack*float64(stacks)
	}
	gap = clamp(gap, s.spec.Difficulty.MinGap, maxGap)

	lo := margin
	hi := field.Height - margin - gap
	if hi < lo {
		hi = lo
	}
	if stacks > 0 {
		band := s.spec.Obstacle.HatCenterBand
		center := field.Height/2 + (s.rng.Float64()*2-1)*band
		return clamp(center-gap/2, lo, hi), gap
	}
	return lo + s.rng.Float64()*(hi-lo), gap
}

func (s *SpawnScheduler) hatChance(stacks int) float64 {
	table := s.spec.PowerUps.HatChance
	if len(table) == 0 {
		return 0
	}
	if stacks >= len(table) {
		stacks = len(table) - 1
	}
	return table[stacks]
}

func (s *SpawnScheduler) placePowerUp(w *ecs.World, kind component.PowerUpKind, x, y, speed float64) error {
	pu := s.spec.PowerUps
	_, err := entity.NewPowerUp(w, entity.PowerUpParams{
		X:            x,
		Y:            y,
		Radius:       pu.Radius,
		Speed:        speed,
		Kind:         kind,
		BobAmplitude: pu.BobAmplitude,
		BobPeriodMs:  pu.BobPeriodMs,
	})
	return err
}
