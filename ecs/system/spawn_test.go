package system

import (
	"testing"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/event"
)

func newScheduler(t *testing.T, stacks int, d func() Difficulty) (*SpawnScheduler, *ecs.World) {
	t.Helper()
	spec := loadSpec(t)
	q := &event.Queue{}
	w := ecs.NewWorld(ecs.DefaultDtMs, q)
	pc := NewPowerUpController(spec.PowerUps, q)
	for i := 0; i < stacks; i++ {
		pc.CollectHat()
	}
	if d == nil {
		d = func() Difficulty { return ComputeDifficulty(spec, 0, 10) }
	}
	return NewSpawnScheduler(spec, newRand(), pc, d), w
}

func TestSpawnGapInvariant(t *testing.T) {
	for _, stacks := range []int{0, 1, 3} {
		s, w := newScheduler(t, stacks, nil)
		spec := s.spec
		for i := 0; i < 300; i++ {
			wave, err := s.Fire(w)
			if err != nil {
				t.Fatalf("fire: %v", err)
			}
			o, ok := ecs.Get(w, wave.Obstacle, component.ObstacleComponent)
			if !ok {
				t.Fatalf("obstacle missing")
			}
			if !approx(o.GapBottom-o.GapTop, wave.GapSize) || o.GapSize() < spec.Difficulty.MinGap {
				t.Fatalf("stacks %d: bad gap %+v", stacks, o)
			}
			if o.GapTop < spec.Obstacle.SafeMargin-1e-9 || o.GapBottom > spec.Field.Height-spec.Obstacle.SafeMargin+1e-9 {
				t.Fatalf("stacks %d: gap outside safe margins %+v", stacks, o)
			}
			if stacks > 0 {
				if o.Color != component.ColorCycling {
					t.Fatalf("hat obstacles should cycle color")
				}
				if c := o.GapCenter(); c < spec.Field.Height/2-spec.Obstacle.HatCenterBand-1e-9 || c > spec.Field.Height/2+spec.Obstacle.HatCenterBand+1e-9 {
					t.Fatalf("hat gap center %v outside band", c)
				}
			}
			tr, _ := ecs.Get(w, wave.Obstacle, component.TransformComponent)
			if tr.X != spec.Field.Width+spec.Obstacle.SpawnOffset {
				t.Fatalf("obstacle spawned at x=%v", tr.X)
			}
		}
	}
}

func TestNoHatAtMaxStacks(t *testing.T) {
	s, w := newScheduler(t, 3, nil)
	for i := 0; i < 500; i++ {
		wave, err := s.Fire(w)
		if err != nil {
			t.Fatalf("fire: %v", err)
		}
		if wave.PowerUp && wave.PowerUpKind == component.PowerUpHat {
			t.Fatalf("hat spawned at max stacks")
		}
	}
}

func TestSpawnRollsExtras(t *testing.T) {
	spec := loadSpec(t)
	s, w := newScheduler(t, 0, func() Difficulty {
		d := ComputeDifficulty(spec, 0, 10)
		d.EnemySpawnChance = 1
		return d
	})
	patterns := map[component.TokenPattern]bool{}
	formationsSeen := map[component.Formation]bool{}
	powerUps := 0
	for i := 0; i < 400; i++ {
		wave, err := s.Fire(w)
		if err != nil {
			t.Fatalf("fire: %v", err)
		}
		if wave.Tokens > 0 {
			patterns[wave.Pattern] = true
		}
		if wave.Enemies > 0 {
			formationsSeen[wave.Formation] = true
		}
		if wave.PowerUp {
			powerUps++
		}
	}
	if len(patterns) != 5 {
		t.Fatalf("expected all 5 token patterns, saw %v", patterns)
	}
	if len(formationsSeen) != 5 {
		t.Fatalf("expected all 5 formations, saw %v", formationsSeen)
	}
	if powerUps == 0 {
		t.Fatalf("no power-ups in 400 waves")
	}
	if ecs.Count(w, component.EnemyComponent) == 0 || ecs.Count(w, component.TokenComponent) == 0 {
		t.Fatalf("extras were not placed into the world")
	}
}

func TestEnemyAnchorAvoidsGap(t *testing.T) {
	s, _ := newScheduler(t, 0, nil)
	buffer := s.spec.Enemies.AvoidGapBuffer
	for i := 0; i < 500; i++ {
		y, ok := s.enemyAnchorY(250, 450)
		if !ok {
			t.Fatalf("field has room on both sides")
		}
		if y > 250-buffer && y < 450+buffer {
			t.Fatalf("anchor %v inside the gap buffer", y)
		}
	}
	if _, ok := s.enemyAnchorY(50, 700); ok {
		t.Fatalf("no room should be reported when the gap fills the field")
	}
}

func TestFormationWeights(t *testing.T) {
	cases := []struct {
		level int
		want  [5]float64
	}{
		{level: 0, want: [5]float64{40, 20, 15, 15, 10}},
		{level: 5, want: [5]float64{25, 25, 20, 25, 20}},
		{level: 20, want: [5]float64{0, 40, 35, 55, 50}},
	}
	for _, tc := range cases {
		if got := formationWeights(tc.level); got != tc.want {
			t.Fatalf("level %d: got %v want %v", tc.level, got, tc.want)
		}
	}
}

func TestSchedulerLifecycle(t *testing.T) {
	s, w := newScheduler(t, 0, nil)
	spec := s.spec
	interval := ComputeDifficulty(spec, 0, 10).SpawnIntervalMs
	half := spec.Difficulty.JitterMs / 2

	if s.State() != SpawnIdle {
		t.Fatalf("new scheduler should be idle")
	}
	s.Update(w)
	if s.Fired() != 0 {
		t.Fatalf("idle scheduler fired")
	}

	s.Start()
	if s.State() != SpawnArmed {
		t.Fatalf("start should arm")
	}
	if r := s.Remaining(); r < interval-half || r > interval+half {
		t.Fatalf("first delay %v outside %v±%v", r, interval, half)
	}

	for i := 0; i < 600; i++ {
		s.Update(w)
	}
	fired := s.Fired()
	if fired < 4 || fired > 7 {
		t.Fatalf("expected a self-rearming loop over 10s, fired %d", fired)
	}
	if r := s.Remaining(); r <= 0 || r > interval+half {
		t.Fatalf("scheduler should stay armed, remaining %v", r)
	}

	count := ecs.Count(w, component.ObstacleComponent)
	s.Cancel()
	for i := 0; i < 600; i++ {
		s.Update(w)
	}
	if s.Fired() != fired || s.State() != SpawnIdle {
		t.Fatalf("cancelled scheduler kept firing")
	}
	if ecs.Count(w, component.ObstacleComponent) != count {
		t.Fatalf("cancel must not drop spawned entities")
	}

	s.Rearm()
	if s.State() != SpawnIdle {
		t.Fatalf("rearm must not start an idle scheduler")
	}
}
