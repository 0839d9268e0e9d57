package system

import (
	"math"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/progression"
	"github.com/milk9111/skyflap/tuning"
)

// Difficulty is the stream tuning in effect for newly spawned entities.
type Difficulty struct {
	Level            int
	ScrollSpeed      float64
	GapSize          float64
	SpawnIntervalMs  float64
	EnemySpawnChance float64
}

// ComputeDifficulty derives the difficulty from active play time and passed
// obstacles. It has no side effects.
func ComputeDifficulty(spec *tuning.GameplaySpec, elapsedMs float64, passed int) Difficulty {
	d := spec.Difficulty
	if passed < 0 {
		passed = 0
	}
	interval := d.LevelInterval
	if interval < 1 {
		interval = 1
	}
	level := passed / interval

	speed := d.BaseSpeed + float64(level)*d.SpeedPerLevel
	if d.TimePressureIntervalMs > 0 && elapsedMs > 0 {
		speed += math.Floor(elapsedMs/d.TimePressureIntervalMs) * d.TimePressureSpeed
	}

	gap := math.Max(d.BaseGap-float64(level)*d.GapPerLevel, d.MinGap)
	for _, step := range d.IntroEasing {
		if passed < step.Below {
			gap *= step.Factor
			break
		}
	}
	gap = clamp(gap, d.MinGap, spec.MaxGap())

	spawnInterval := math.Max(d.BaseIntervalMs-float64(level)*d.IntervalPerLevelMs, d.MinIntervalMs)

	chance := d.EnemyBaseChance + float64(level)*d.EnemyChancePerLevel
	chance = clamp(chance, 0, d.EnemyMaxChance)

	return Difficulty{
		Level:            level,
		ScrollSpeed:      speed,
		GapSize:          gap,
		SpawnIntervalMs:  spawnInterval,
		EnemySpawnChance: chance,
	}
}

// Scaled applies power-up and cross-run multipliers to speed and interval.
// Non-positive multipliers are treated as 1.
func (d Difficulty) Scaled(speedMul, intervalMul float64) Difficulty {
	if speedMul > 0 {
		d.ScrollSpeed *= speedMul
	}
	if intervalMul > 0 {
		d.SpawnIntervalMs *= intervalMul
	}
	return d
}

// DifficultySystem tracks active play time, recomputes the difficulty every
// tick and pushes speed changes onto every scrolling entity in the same tick.
type DifficultySystem struct {
	spec     *tuning.GameplaySpec
	ledger   *progression.Ledger
	powerups *PowerUpController

	// SpeedMultiplier is the cross-run carry multiplier; read-only here.
	SpeedMultiplier float64
	// HoldClock stops time pressure from accruing, e.g. while a boss is up.
	HoldClock bool

	elapsedMs    float64
	current      Difficulty
	appliedSpeed float64
}

func NewDifficultySystem(spec *tuning.GameplaySpec, ledger *progression.Ledger, powerups *PowerUpController, speedMultiplier float64) *DifficultySystem {
	ds := &DifficultySystem{
		spec:            spec,
		ledger:          ledger,
		powerups:        powerups,
		SpeedMultiplier: speedMultiplier,
	}
	ds.current = ds.compute()
	return ds
}

func (ds *DifficultySystem) Update(w *ecs.World) {
	if ds == nil || w == nil {
		return
	}
	if !ds.HoldClock {
		ds.elapsedMs += w.Dt()
	}
	ds.Refresh(w)
}

// Refresh recomputes without advancing time. Called when a multiplier changes
// mid-tick, e.g. on hat pickup or expiry.
func (ds *DifficultySystem) Refresh(w *ecs.World) {
	if ds == nil {
		return
	}
	ds.current = ds.compute()
	if ds.ledger != nil {
		ds.ledger.SetDifficultyLevel(ds.current.Level)
	}
	if w != nil && ds.current.ScrollSpeed != ds.appliedSpeed {
		ApplyScrollSpeed(w, ds.current.ScrollSpeed)
		ds.appliedSpeed = ds.current.ScrollSpeed
	}
}

// Reapply recomputes and rewrites every scrolling velocity even if the speed
// did not change.
func (ds *DifficultySystem) Reapply(w *ecs.World) {
	if ds == nil {
		return
	}
	ds.appliedSpeed = math.NaN()
	ds.Refresh(w)
}

func (ds *DifficultySystem) compute() Difficulty {
	passed := 0
	if ds.ledger != nil {
		passed = ds.ledger.ObstaclesPassed
	}
	speedMul := ds.SpeedMultiplier
	if speedMul <= 0 {
		speedMul = 1
	}
	intervalMul := 1.0
	if ds.powerups != nil {
		speedMul *= ds.powerups.SpeedMultiplier()
		intervalMul = ds.powerups.IntervalMultiplier()
	}
	return ComputeDifficulty(ds.spec, ds.elapsedMs, passed).Scaled(speedMul, intervalMul)
}

// Current is the scaled difficulty as of the last refresh.
func (ds *DifficultySystem) Current() Difficulty {
	if ds == nil {
		return Difficulty{}
	}
	return ds.current
}

// Elapsed is the active play time in milliseconds.
func (ds *DifficultySystem) Elapsed() float64 {
	if ds == nil {
		return 0
	}
	return ds.elapsedMs
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
