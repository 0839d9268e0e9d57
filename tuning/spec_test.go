package tuning

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadEmbeddedGameplay(t *testing.T) {
	SetDir("")
	defer SetDir(DefaultDir)

	spec, err := LoadGameplay()
	if err != nil {
		t.Fatalf("load gameplay: %v", err)
	}
	if spec.Difficulty.MinGap <= 0 || spec.Difficulty.BaseGap < spec.Difficulty.MinGap {
		t.Fatalf("unexpected gap config: %+v", spec.Difficulty)
	}
	if len(spec.Scoring.Streaks) != 12 {
		t.Fatalf("expected 12 streak steps, got %d", len(spec.Scoring.Streaks))
	}
	if got := spec.PowerUps.HatChance[spec.PowerUps.MaxStacks]; got != 0 {
		t.Fatalf("hat chance at max stacks should be 0, got %v", got)
	}
}

func TestLoadEmbeddedBosses(t *testing.T) {
	SetDir("")
	defer SetDir(DefaultDir)

	roster, err := LoadBosses()
	if err != nil {
		t.Fatalf("load bosses: %v", err)
	}
	if len(roster.Bosses) < 2 {
		t.Fatalf("expected at least two bosses, got %d", len(roster.Bosses))
	}
	gary := roster.Bosses[0]
	if gary.MaxHealth != 300 {
		t.Fatalf("expected 300 max health, got %d", gary.MaxHealth)
	}
	if got := gary.Phases[1].Routine.Tint.RGB(); got != 0xff6600 {
		t.Fatalf("expected phase 2 tint 0xff6600, got %#x", got)
	}
	for i := 1; i < len(gary.Phases); i++ {
		if gary.Phases[i].CooldownMs >= gary.Phases[i-1].CooldownMs {
			t.Fatalf("cooldown should shorten each phase: %+v", gary.Phases)
		}
		if gary.Phases[i].MoveSpeed <= gary.Phases[i-1].MoveSpeed {
			t.Fatalf("move speed should rise each phase: %+v", gary.Phases)
		}
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	SetDir(dir)
	defer SetDir(DefaultDir)

	override := []byte("boss:\n  first_score: 7\n")
	if err := os.WriteFile(filepath.Join(dir, GameplayFile), override, 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	spec, err := LoadGameplay()
	if err != nil {
		t.Fatalf("load gameplay: %v", err)
	}
	if spec.Boss.FirstScore != 7 {
		t.Fatalf("expected override first_score 7, got %d", spec.Boss.FirstScore)
	}
	if _, ok := ModTime(GameplayFile); !ok {
		t.Fatalf("expected mod time for override file")
	}
}

func TestNormalizeClamps(t *testing.T) {
	spec := GameplaySpec{
		Field:    FieldSpec{Width: 800, Height: 600},
		Obstacle: ObstacleSpec{SafeMargin: 150},
		Difficulty: DifficultySpec{
			BaseGap:        100,
			MinGap:         400,
			BaseIntervalMs: 200,
			MinIntervalMs:  900,
		},
		PowerUps: PowerUpSpec{MaxStacks: 9, HatChance: []float64{0.1, 0.1, 0.1, 0.1, 0.1}},
		Scoring: ScoringSpec{Streaks: []StreakStep{
			{Streak: 5, Bonus: 5},
			{Streak: 3, Bonus: 2},
			{Streak: 7, Bonus: 4},
		}},
	}
	spec.Normalize()

	if spec.Difficulty.MinGap != 300 {
		t.Fatalf("min gap should clamp to field fit 300, got %v", spec.Difficulty.MinGap)
	}
	if spec.Difficulty.BaseGap != 300 {
		t.Fatalf("base gap should rise to min gap, got %v", spec.Difficulty.BaseGap)
	}
	if spec.Difficulty.BaseIntervalMs != 900 {
		t.Fatalf("base interval should rise to min interval, got %v", spec.Difficulty.BaseIntervalMs)
	}
	if spec.Difficulty.LevelInterval != 1 {
		t.Fatalf("level interval should clamp to 1, got %d", spec.Difficulty.LevelInterval)
	}
	if spec.PowerUps.MaxStacks != 3 || len(spec.PowerUps.HatChance) != 4 || spec.PowerUps.HatChance[3] != 0 {
		t.Fatalf("unexpected power-up clamp: %+v", spec.PowerUps)
	}
	want := []StreakStep{{3, 2}, {5, 5}, {7, 6}}
	for i, step := range spec.Scoring.Streaks {
		if step != want[i] {
			t.Fatalf("streak %d: got %+v want %+v", i, step, want[i])
		}
	}
}

func TestRosterValidate(t *testing.T) {
	phase := PhaseSpec{Routine: RoutineSpec{Kind: "aimed", Projectile: "laser"}}
	cases := []struct {
		name   string
		roster BossRosterSpec
		ok     bool
	}{
		{"empty", BossRosterSpec{}, false},
		{"two phases", BossRosterSpec{
			Projectiles: map[string]ProjectileSpec{"laser": {}},
			Bosses:      []BossSpec{{Name: "a", MaxHealth: 300, Phases: []PhaseSpec{phase, phase}}},
		}, false},
		{"unknown projectile", BossRosterSpec{
			Bosses: []BossSpec{{Name: "a", MaxHealth: 300, Phases: []PhaseSpec{phase, phase, phase}}},
		}, false},
		{"script without file", BossRosterSpec{
			Projectiles: map[string]ProjectileSpec{"laser": {}},
			Bosses: []BossSpec{{Name: "a", MaxHealth: 300, Phases: []PhaseSpec{
				phase, phase, {Routine: RoutineSpec{Kind: "script"}},
			}}},
		}, false},
		{"valid", BossRosterSpec{
			Projectiles: map[string]ProjectileSpec{"laser": {}},
			Bosses:      []BossSpec{{Name: "a", MaxHealth: 300, Phases: []PhaseSpec{phase, phase, phase}}},
		}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.roster.Validate()
			if c.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		want    uint32
		alpha   uint8
		wantErr bool
	}{
		{`"#ff6600"`, 0xff6600, 255, false},
		{`"9900ff80"`, 0x9900ff, 0x80, false},
		{`"#fff"`, 0, 0, true},
		{`[1, 2]`, 0, 0, true},
	}
	for _, c := range cases {
		var col YAMLColor
		err := yaml.Unmarshal([]byte(c.in), &col)
		if c.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: %v", c.in, err)
			continue
		}
		if col.RGB() != c.want || col.A != c.alpha {
			t.Errorf("%s: got %#x alpha %d", c.in, col.RGB(), col.A)
		}
	}
}

func TestLoadScript(t *testing.T) {
	SetDir("")
	defer SetDir(DefaultDir)

	for _, name := range []string{"ember_finale.tengo", "scripts/ember_finale.tengo", "tuning/scripts/ember_finale.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
	}
}

func TestIsTuningFile(t *testing.T) {
	cases := map[string]bool{
		"gameplay.yaml":   true,
		"x/bosses.YML":    true,
		"scripts/a.tengo": true,
		"notes.txt":       false,
	}
	for path, want := range cases {
		if got := IsTuningFile(path); got != want {
			t.Errorf("%s: got %v want %v", path, got, want)
		}
	}
}
