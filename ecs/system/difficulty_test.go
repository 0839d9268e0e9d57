package system

import (
	"testing"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/ecs/entity"
	"github.com/milk9111/skyflap/event"
	"github.com/milk9111/skyflap/progression"
)

func TestComputeDifficulty(t *testing.T) {
	spec := loadSpec(t)

	cases := []struct {
		name     string
		elapsed  float64
		passed   int
		level    int
		speed    float64
		gap      float64
		interval float64
		chance   float64
	}{
		{name: "fresh run eases gap", level: 0, speed: 220, gap: 330, interval: 1800, chance: 0.1},
		{name: "second easing band", passed: 4, level: 0, speed: 220, gap: 275, interval: 1800, chance: 0.1},
		{name: "easing over", passed: 6, level: 0, speed: 220, gap: 220, interval: 1800, chance: 0.1},
		{name: "level two", passed: 25, level: 2, speed: 260, gap: 200, interval: 1600, chance: 0.16},
		{name: "floors hold", passed: 200, level: 20, speed: 620, gap: 150, interval: 1000, chance: 0.4},
		{name: "time pressure", elapsed: 31000, passed: 10, level: 1, speed: 250, gap: 210, interval: 1700, chance: 0.13},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := ComputeDifficulty(spec, tc.elapsed, tc.passed)
			if d.Level != tc.level {
				t.Fatalf("level = %d, want %d", d.Level, tc.level)
			}
			if !approx(d.ScrollSpeed, tc.speed) || !approx(d.GapSize, tc.gap) || !approx(d.SpawnIntervalMs, tc.interval) {
				t.Fatalf("got %+v", d)
			}
			if d.EnemySpawnChance-tc.chance > 1e-9 || tc.chance-d.EnemySpawnChance > 1e-9 {
				t.Fatalf("enemy chance = %v, want %v", d.EnemySpawnChance, tc.chance)
			}
			if d.GapSize < spec.Difficulty.MinGap {
				t.Fatalf("gap below minimum")
			}
		})
	}
}

func TestDifficultyScaled(t *testing.T) {
	spec := loadSpec(t)
	d := ComputeDifficulty(spec, 0, 10).Scaled(2, 0.35)
	if !approx(d.ScrollSpeed, 480) || !approx(d.SpawnIntervalMs, 1700*0.35) {
		t.Fatalf("scaled = %+v", d)
	}
	if same := ComputeDifficulty(spec, 0, 10).Scaled(0, -1); !approx(same.ScrollSpeed, 240) || !approx(same.SpawnIntervalMs, 1700) {
		t.Fatalf("non-positive multipliers must be ignored: %+v", same)
	}
}

func TestDifficultySystemAppliesSpeedInBulk(t *testing.T) {
	spec := loadSpec(t)
	q := &event.Queue{}
	w := ecs.NewWorld(ecs.DefaultDtMs, q)
	ledger := progression.NewLedger(spec.Scoring, spec.Tokens, nil, q)
	pc := NewPowerUpController(spec.PowerUps, q)
	ds := NewDifficultySystem(spec, ledger, pc, 1.5)
	pc.OnChange = ds.Reapply

	obstacle, _ := entity.NewObstaclePair(w, entity.ObstacleParams{X: 900, GapTop: 200, GapSize: 200, Width: 90, Speed: 1})
	ds.Update(w)
	v, _ := ecs.Get(w, obstacle, component.VelocityComponent)
	if !approx(v.X, -220*1.5) {
		t.Fatalf("carry multiplier not applied: %v", v.X)
	}

	pc.CollectHat()
	ds.Refresh(w)
	if !approx(v.X, -220*1.5*2) {
		t.Fatalf("hat multiplier not applied: %v", v.X)
	}

	ledger.RegisterPass(300, 200, 400)
	for i := 0; i < 9; i++ {
		ledger.RegisterPass(300, 200, 400)
	}
	ds.Refresh(w)
	if ds.Current().Level != 1 || ledger.DifficultyLevel != 1 {
		t.Fatalf("level should follow passes, got %d", ds.Current().Level)
	}
	if q.Count(event.DifficultyIncreased) != 1 {
		t.Fatalf("level increase should be announced once")
	}
}

func TestDifficultyClockHold(t *testing.T) {
	spec := loadSpec(t)
	w := ecs.NewWorld(ecs.DefaultDtMs, &event.Queue{})
	ds := NewDifficultySystem(spec, nil, nil, 1)

	ds.Update(w)
	elapsed := ds.Elapsed()
	if !approx(elapsed, w.Dt()) {
		t.Fatalf("elapsed = %v, want %v", elapsed, w.Dt())
	}

	ds.HoldClock = true
	for i := 0; i < 10; i++ {
		ds.Update(w)
	}
	if ds.Elapsed() != elapsed {
		t.Fatalf("held clock advanced to %v", ds.Elapsed())
	}

	ds.HoldClock = false
	ds.Update(w)
	if !approx(ds.Elapsed(), elapsed+w.Dt()) {
		t.Fatalf("clock should resume from %v, got %v", elapsed, ds.Elapsed())
	}
}
