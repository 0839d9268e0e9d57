package tuning

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("tuning: invalid spec")

const (
	GameplayFile = "gameplay.yaml"
	BossesFile   = "bosses.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("tuning: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("tuning: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadGameplay loads gameplay.yaml and clamps it into a playable range.
func LoadGameplay() (*GameplaySpec, error) {
	spec, err := LoadSpec[GameplaySpec](GameplayFile)
	if err != nil {
		return nil, err
	}
	spec.Normalize()
	return &spec, nil
}

// LoadBosses loads the boss roster and validates its phase tables.
func LoadBosses() (*BossRosterSpec, error) {
	spec, err := LoadSpec[BossRosterSpec](BossesFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("tuning: %s: %w", BossesFile, err)
	}
	return &spec, nil
}

type GameplaySpec struct {
	Field      FieldSpec       `yaml:"field"`
	Player     PlayerSpec      `yaml:"player"`
	Obstacle   ObstacleSpec    `yaml:"obstacle"`
	Difficulty DifficultySpec  `yaml:"difficulty"`
	PowerUps   PowerUpSpec     `yaml:"power_ups"`
	Tokens     TokenSpec       `yaml:"tokens"`
	Enemies    EnemySpec       `yaml:"enemies"`
	Scoring    ScoringSpec     `yaml:"scoring"`
	Boss       BossTriggerSpec `yaml:"boss"`
	Missile    MissileSpec     `yaml:"missile"`
}

type FieldSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	ExitMargin float64 `yaml:"exit_margin"`
}

type PlayerSpec struct {
	X              float64 `yaml:"x"`
	StartY         float64 `yaml:"start_y"`
	Radius         float64 `yaml:"radius"`
	Gravity        float64 `yaml:"gravity"`
	FlapVelocity   float64 `yaml:"flap_velocity"`
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`
	MaxHealth      int     `yaml:"max_health"`
	InvulnerableMs float64 `yaml:"invulnerable_ms"`
	HatFlapBoost   float64 `yaml:"hat_flap_boost"`
}

type ObstacleSpec struct {
	Width          float64 `yaml:"width"`
	SpawnOffset    float64 `yaml:"spawn_offset"`
	SafeMargin     float64 `yaml:"safe_margin"`
	PassOffset     float64 `yaml:"pass_offset"`
	HatCenterBand  float64 `yaml:"hat_center_band"`
	HatGapBase     float64 `yaml:"hat_gap_base"`
	HatGapPerStack float64 `yaml:"hat_gap_per_stack"`
}

type EasingStep struct {
	Below  int     `yaml:"below"`
	Factor float64 `yaml:"factor"`
}

type DifficultySpec struct {
	LevelInterval          int          `yaml:"level_interval"`
	BaseSpeed              float64      `yaml:"base_speed"`
	SpeedPerLevel          float64      `yaml:"speed_per_level"`
	BaseGap                float64      `yaml:"base_gap"`
	GapPerLevel            float64      `yaml:"gap_per_level"`
	MinGap                 float64      `yaml:"min_gap"`
	BaseIntervalMs         float64      `yaml:"base_interval_ms"`
	IntervalPerLevelMs     float64      `yaml:"interval_per_level_ms"`
	MinIntervalMs          float64      `yaml:"min_interval_ms"`
	JitterMs               float64      `yaml:"jitter_ms"`
	TimePressureIntervalMs float64      `yaml:"time_pressure_interval_ms"`
	TimePressureSpeed      float64      `yaml:"time_pressure_speed"`
	IntroEasing            []EasingStep `yaml:"intro_easing"`
	EnemyBaseChance        float64      `yaml:"enemy_base_chance"`
	EnemyChancePerLevel    float64      `yaml:"enemy_chance_per_level"`
	EnemyMaxChance         float64      `yaml:"enemy_max_chance"`
}

type PowerUpSpec struct {
	MaxStacks        int       `yaml:"max_stacks"`
	HatDurationMs    float64   `yaml:"hat_duration_ms"`
	MagnetDurationMs float64   `yaml:"magnet_duration_ms"`
	HatChance        []float64 `yaml:"hat_chance"`
	MagnetChance     float64   `yaml:"magnet_chance"`
	TokenChance      float64   `yaml:"token_chance"`
	HatOffsetX       float64   `yaml:"hat_offset_x"`
	MagnetOffsetX    float64   `yaml:"magnet_offset_x"`
	MagnetRadius     float64   `yaml:"magnet_radius"`
	MagnetSpeed      float64   `yaml:"magnet_speed"`
	Radius           float64   `yaml:"radius"`
	BobAmplitude     float64   `yaml:"bob_amplitude"`
	BobPeriodMs      float64   `yaml:"bob_period_ms"`
	SpeedBase        float64   `yaml:"speed_base"`
	SpeedPerStack    float64   `yaml:"speed_per_stack"`
	IntervalBase     float64   `yaml:"interval_base"`
	IntervalPerStack float64   `yaml:"interval_per_stack"`
	IntervalFloor    float64   `yaml:"interval_floor"`
}

type TokenSpec struct {
	Radius              float64 `yaml:"radius"`
	CommonPoints        int     `yaml:"common_points"`
	RarePoints          int     `yaml:"rare_points"`
	HighValueMultiplier float64 `yaml:"high_value_multiplier"`
	RareChance          float64 `yaml:"rare_chance"`
	HighValueChance     float64 `yaml:"high_value_chance"`
	ComboStep           int     `yaml:"combo_step"`
	ComboTierBonus      float64 `yaml:"combo_tier_bonus"`
	EdgeOffset          float64 `yaml:"edge_offset"`
	RiskyPairChance     float64 `yaml:"risky_pair_chance"`
	RiskyPairSpacing    float64 `yaml:"risky_pair_spacing"`
	TrailSpacing        float64 `yaml:"trail_spacing"`
	WiggleAmplitude     float64 `yaml:"wiggle_amplitude"`
	OscillationPeriodMs float64 `yaml:"oscillation_period_ms"`
	OscillationInset    float64 `yaml:"oscillation_inset"`
}

type EnemySpec struct {
	OffsetX        float64 `yaml:"offset_x"`
	AvoidGapBuffer float64 `yaml:"avoid_gap_buffer"`
	Radius         float64 `yaml:"radius"`
	BobAmplitude   float64 `yaml:"bob_amplitude"`
	BobPeriodMs    float64 `yaml:"bob_period_ms"`
	PatrolRange    float64 `yaml:"patrol_range"`
	PatrolPeriodMs float64 `yaml:"patrol_period_ms"`
	DefeatPoints   int     `yaml:"defeat_points"`
}

type StreakStep struct {
	Streak int `yaml:"streak"`
	Bonus  int `yaml:"bonus"`
}

type ScoringSpec struct {
	PassPoints       int          `yaml:"pass_points"`
	PerfectTolerance float64      `yaml:"perfect_tolerance"`
	PerfectBonus     float64      `yaml:"perfect_bonus"`
	NearMissPoints   int          `yaml:"near_miss_points"`
	NearMissDistance float64      `yaml:"near_miss_distance"`
	NearMissWindowX  float64      `yaml:"near_miss_window_x"`
	Streaks          []StreakStep `yaml:"streaks"`
	Milestones       []int        `yaml:"milestones"`
}

type BossTriggerSpec struct {
	FirstScore     int     `yaml:"first_score"`
	ScoreIncrement int     `yaml:"score_increment"`
	TransitionMs   float64 `yaml:"transition_ms"`
	VictoryBonus   int     `yaml:"victory_bonus"`
	SpeedIncrement float64 `yaml:"speed_increment"`
}

type MissileSpec struct {
	Speed      float64   `yaml:"speed"`
	LifetimeMs float64   `yaml:"lifetime_ms"`
	Damage     int       `yaml:"damage"`
	CooldownMs float64   `yaml:"cooldown_ms"`
	Radius     float64   `yaml:"radius"`
	Tint       YAMLColor `yaml:"tint"`
}

// Normalize clamps values that would break gameplay invariants. It never fails.
func (s *GameplaySpec) Normalize() {
	if s == nil {
		return
	}
	if s.Field.Width <= 0 {
		s.Field.Width = 1280
	}
	if s.Field.Height <= 0 {
		s.Field.Height = 720
	}
	if s.Player.MaxHealth <= 0 {
		s.Player.MaxHealth = 1
	}
	if s.Player.HatFlapBoost <= 0 {
		s.Player.HatFlapBoost = 1
	}

	d := &s.Difficulty
	if d.LevelInterval < 1 {
		d.LevelInterval = 1
	}
	maxGap := s.MaxGap()
	if d.MinGap <= 0 || d.MinGap > maxGap {
		d.MinGap = maxGap
	}
	if d.BaseGap < d.MinGap {
		d.BaseGap = d.MinGap
	}
	if d.MinIntervalMs <= 0 {
		d.MinIntervalMs = 1
	}
	if d.BaseIntervalMs < d.MinIntervalMs {
		d.BaseIntervalMs = d.MinIntervalMs
	}
	if d.JitterMs < 0 {
		d.JitterMs = 0
	}
	if d.JitterMs > d.MinIntervalMs {
		d.JitterMs = d.MinIntervalMs
	}
	if d.EnemyMaxChance > 1 {
		d.EnemyMaxChance = 1
	}
	sort.Slice(d.IntroEasing, func(i, j int) bool { return d.IntroEasing[i].Below < d.IntroEasing[j].Below })

	p := &s.PowerUps
	if p.MaxStacks < 1 || p.MaxStacks > 3 {
		p.MaxStacks = 3
	}
	for len(p.HatChance) < p.MaxStacks+1 {
		p.HatChance = append(p.HatChance, 0)
	}
	p.HatChance = p.HatChance[:p.MaxStacks+1]
	p.HatChance[p.MaxStacks] = 0
	if p.IntervalFloor <= 0 {
		p.IntervalFloor = 0.18
	}

	if s.Tokens.ComboStep < 1 {
		s.Tokens.ComboStep = 3
	}
	if s.Tokens.HighValueMultiplier < 1 {
		s.Tokens.HighValueMultiplier = 1
	}

	sort.Slice(s.Scoring.Streaks, func(i, j int) bool { return s.Scoring.Streaks[i].Streak < s.Scoring.Streaks[j].Streak })
	for i := 1; i < len(s.Scoring.Streaks); i++ {
		if prev := s.Scoring.Streaks[i-1].Bonus; s.Scoring.Streaks[i].Bonus <= prev {
			s.Scoring.Streaks[i].Bonus = prev + 1
		}
	}
	sort.Ints(s.Scoring.Milestones)

	if s.Boss.ScoreIncrement < 1 {
		s.Boss.ScoreIncrement = 1
	}
}

// MaxGap is the largest gap that still fits between the safe margins.
func (s *GameplaySpec) MaxGap() float64 {
	return s.Field.Height - 2*s.Obstacle.SafeMargin
}

type BossRosterSpec struct {
	Projectiles map[string]ProjectileSpec `yaml:"projectiles"`
	Bosses      []BossSpec                `yaml:"bosses"`
}

type ProjectileSpec struct {
	Speed      float64 `yaml:"speed"`
	Slope      float64 `yaml:"slope"`
	LifetimeMs float64 `yaml:"lifetime_ms"`
	Radius     float64 `yaml:"radius"`
	Damage     int     `yaml:"damage"`
}

type BossSpec struct {
	Name            string      `yaml:"name"`
	MaxHealth       int         `yaml:"max_health"`
	X               float64     `yaml:"x"`
	BaseY           float64     `yaml:"base_y"`
	Width           float64     `yaml:"width"`
	Height          float64     `yaml:"height"`
	MoveRange       float64     `yaml:"move_range"`
	TransitionMs    float64     `yaml:"transition_ms"`
	FlashIntervalMs float64     `yaml:"flash_interval_ms"`
	ExplosionMs     float64     `yaml:"explosion_ms"`
	ContactDamage   int         `yaml:"contact_damage"`
	Phases          []PhaseSpec `yaml:"phases"`
}

type PhaseSpec struct {
	CooldownMs float64     `yaml:"cooldown_ms"`
	MoveSpeed  float64     `yaml:"move_speed"`
	Routine    RoutineSpec `yaml:"routine"`
}

type Offset struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RoutineSpec struct {
	Kind          string    `yaml:"kind"`
	Projectile    string    `yaml:"projectile"`
	Origin        Offset    `yaml:"origin"`
	TargetOffsets []float64 `yaml:"target_offsets"`
	AngleOffsets  []float64 `yaml:"angle_offsets"`
	Tint          YAMLColor `yaml:"tint"`
	Script        string    `yaml:"script"`
}

// Validate checks that every boss has three phases whose routines reference known projectiles.
func (r *BossRosterSpec) Validate() error {
	if r == nil || len(r.Bosses) == 0 {
		return fmt.Errorf("%w: no bosses", ErrInvalidSpec)
	}
	for _, b := range r.Bosses {
		if b.MaxHealth <= 0 {
			return fmt.Errorf("%w: boss %q max_health must be positive", ErrInvalidSpec, b.Name)
		}
		if len(b.Phases) != 3 {
			return fmt.Errorf("%w: boss %q needs 3 phases, has %d", ErrInvalidSpec, b.Name, len(b.Phases))
		}
		for i, p := range b.Phases {
			if p.Routine.Kind == "script" {
				if p.Routine.Script == "" {
					return fmt.Errorf("%w: boss %q phase %d script routine without script", ErrInvalidSpec, b.Name, i+1)
				}
				continue
			}
			if _, ok := r.Projectiles[p.Routine.Projectile]; !ok {
				return fmt.Errorf("%w: boss %q phase %d unknown projectile %q", ErrInvalidSpec, b.Name, i+1, p.Routine.Projectile)
			}
		}
	}
	return nil
}

type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		if a, err = parse(6); err != nil {
			return err
		}
	}

	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// RGB packs the color as 0xRRGGBB.
func (c YAMLColor) RGB() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
