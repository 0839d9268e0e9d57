package progression

import (
	"math"
	"strconv"

	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/event"
	"github.com/milk9111/skyflap/tuning"
)

type Category int

const (
	CategoryObstacle Category = iota
	CategoryPerfect
	CategoryStreak
	CategoryToken
	CategoryNearMiss
	CategoryEnemy
	CategoryBoss
)

// PassResult describes one scored obstacle.
type PassResult struct {
	Success     bool
	Perfect     bool
	Points      int
	Bonus       int
	StreakBonus int
}

// TokenResult describes one collected token.
type TokenResult struct {
	Points     int
	Combo      int
	Multiplier float64
}

// External supplies state owned by other components for achievement checks.
type External struct {
	HatActive      bool
	HatStacks      int
	BossesDefeated int
}

// Ledger accumulates score, streak, combo and per-category totals for one run.
// Score only grows within a run; streak and combo reset on a miss.
type Ledger struct {
	scoring tuning.ScoringSpec
	tokens  tuning.TokenSpec
	events  *event.Queue

	achievements *Achievements

	Score            int
	StartScore       int
	TokensByKind     map[component.TokenKind]int
	PointsByCategory map[Category]int
	ObstaclesPassed  int
	Misses           int
	Streak           int
	BestStreak       int
	Combo            int
	BestCombo        int
	PerfectPasses    int
	NearMisses       int
	EnemiesDefeated  int
	DifficultyLevel  int

	LifetimeTokens int
	LifetimeRare   int

	milestone int

	// OnScore runs after every score change with the new total.
	OnScore func(score int)
	// External is consulted when evaluating achievements.
	External func() External
}

func NewLedger(scoring tuning.ScoringSpec, tokens tuning.TokenSpec, achievements *Achievements, events *event.Queue) *Ledger {
	if achievements == nil {
		achievements = NewAchievements()
	}
	l := &Ledger{
		scoring:      scoring,
		tokens:       tokens,
		events:       events,
		achievements: achievements,
	}
	l.ResetRun(0)
	return l
}

// ResetRun clears per-run counters. startScore is the carried score from a boss victory.
func (l *Ledger) ResetRun(startScore int) {
	if startScore < 0 {
		startScore = 0
	}
	l.Score = startScore
	l.StartScore = startScore
	l.TokensByKind = make(map[component.TokenKind]int)
	l.PointsByCategory = make(map[Category]int)
	l.ObstaclesPassed = 0
	l.Misses = 0
	l.Streak = 0
	l.BestStreak = 0
	l.Combo = 0
	l.BestCombo = 0
	l.PerfectPasses = 0
	l.NearMisses = 0
	l.EnemiesDefeated = 0
	l.DifficultyLevel = 0
	l.milestone = 0
	for l.milestone < len(l.scoring.Milestones) && l.scoring.Milestones[l.milestone] <= startScore {
		l.milestone++
	}
}

func (l *Ledger) Achievements() *Achievements {
	return l.achievements
}

// RegisterPass scores an obstacle the player just flew past. The pass only
// counts when playerY is inside the gap at this instant.
func (l *Ledger) RegisterPass(playerY, gapTop, gapBottom float64) PassResult {
	if playerY < gapTop || playerY > gapBottom {
		l.Misses++
		l.events.Emit(event.ObstacleMissed, l.Streak)
		l.breakStreak()
		l.evaluate()
		return PassResult{}
	}

	res := PassResult{Success: true, Points: l.scoring.PassPoints}
	l.ObstaclesPassed++
	l.Streak++
	if l.Streak > l.BestStreak {
		l.BestStreak = l.Streak
	}

	gap := gapBottom - gapTop
	center := gapTop + gap/2
	if math.Abs(playerY-center) <= gap*l.scoring.PerfectTolerance {
		res.Perfect = true
		res.Bonus = int(math.Round(float64(res.Points) * l.scoring.PerfectBonus))
		l.PerfectPasses++
	}

	l.add(CategoryObstacle, res.Points)
	l.events.Push(event.Event{Kind: event.ObstaclePassed, Value: res.Points, Label: passLabel(res.Perfect)})
	if res.Perfect {
		l.add(CategoryPerfect, res.Bonus)
		l.events.Emit(event.PerfectPass, res.Bonus)
	}

	if bonus, ok := StreakBonus(l.scoring.Streaks, l.Streak); ok {
		res.StreakBonus = bonus
		l.add(CategoryStreak, bonus)
		l.events.Push(event.Event{Kind: event.StreakBonus, Value: bonus, Label: strconv.Itoa(l.Streak)})
	}

	l.evaluate()
	return res
}

func passLabel(perfect bool) string {
	if perfect {
		return "perfect"
	}
	return "clean"
}

// RegisterCollision breaks the streak without scoring.
func (l *Ledger) RegisterCollision() {
	l.breakStreak()
}

func (l *Ledger) breakStreak() {
	if l.Streak > 0 {
		l.events.Emit(event.StreakLost, l.Streak)
	}
	l.Streak = 0
}

// BreakCombo resets the token combo; called when a token leaves the field uncollected.
func (l *Ledger) BreakCombo() {
	if l.Combo > 0 {
		l.events.Emit(event.ComboBroken, l.Combo)
	}
	l.Combo = 0
}

// CollectToken scores a token with the high-value and combo multipliers applied.
func (l *Ledger) CollectToken(kind component.TokenKind, highValue bool) TokenResult {
	base := l.tokens.CommonPoints
	if kind == component.TokenRare {
		base = l.tokens.RarePoints
	}
	if highValue {
		base = int(math.Floor(float64(base) * l.tokens.HighValueMultiplier))
	}

	l.Combo++
	if l.Combo > l.BestCombo {
		l.BestCombo = l.Combo
	}
	mult := ComboMultiplier(l.Combo, l.tokens.ComboStep, l.tokens.ComboTierBonus)
	points := int(math.Floor(float64(base) * mult))

	l.TokensByKind[kind]++
	l.LifetimeTokens++
	if kind == component.TokenRare {
		l.LifetimeRare++
	}

	l.add(CategoryToken, points)
	l.events.Push(event.Event{Kind: event.TokenCollected, Value: points, Label: kind.String()})
	l.evaluate()
	return TokenResult{Points: points, Combo: l.Combo, Multiplier: mult}
}

// RegisterNearMiss awards the near-miss bonus.
func (l *Ledger) RegisterNearMiss() int {
	l.NearMisses++
	l.add(CategoryNearMiss, l.scoring.NearMissPoints)
	l.events.Emit(event.NearMiss, l.scoring.NearMissPoints)
	l.evaluate()
	return l.scoring.NearMissPoints
}

// RegisterEnemyDefeat awards points for an enemy destroyed by hat contact.
func (l *Ledger) RegisterEnemyDefeat(points int) int {
	l.EnemiesDefeated++
	l.add(CategoryEnemy, points)
	l.events.Emit(event.EnemyDefeated, points)
	l.evaluate()
	return points
}

// AddBonus adds a fixed bonus such as the boss victory award.
func (l *Ledger) AddBonus(cat Category, points int) {
	l.add(cat, points)
	l.evaluate()
}

// SetDifficultyLevel records the current level, announcing increases.
func (l *Ledger) SetDifficultyLevel(level int) {
	if level <= l.DifficultyLevel {
		return
	}
	l.DifficultyLevel = level
	l.events.Emit(event.DifficultyIncreased, level)
}

// Tokens returns collected tokens of one kind this run.
func (l *Ledger) Tokens(kind component.TokenKind) int {
	return l.TokensByKind[kind]
}

// RunScore is the score earned in this run, excluding carried score.
func (l *Ledger) RunScore() int {
	return l.Score - l.StartScore
}

// Stats snapshots the ledger for achievement evaluation.
func (l *Ledger) Stats() Stats {
	s := Stats{
		Score:           l.Score,
		ObstaclesPassed: l.ObstaclesPassed,
		Streak:          l.Streak,
		PerfectPasses:   l.PerfectPasses,
		Combo:           l.Combo,
		CommonTokensRun: l.TokensByKind[component.TokenCommon],
		RareTokensRun:   l.TokensByKind[component.TokenRare],
		TokensLifetime:  l.LifetimeTokens,
		RareLifetime:    l.LifetimeRare,
	}
	if l.External != nil {
		ext := l.External()
		s.HatActive = ext.HatActive
		s.HatStacks = ext.HatStacks
		s.BossesDefeated = ext.BossesDefeated
	}
	return s
}

// CheckAchievements evaluates achievements outside a scoring call, e.g. after a hat pickup.
func (l *Ledger) CheckAchievements() {
	l.evaluate()
}

func (l *Ledger) add(cat Category, points int) {
	if points <= 0 {
		return
	}
	l.Score += points
	l.PointsByCategory[cat] += points

	for l.milestone < len(l.scoring.Milestones) && l.Score >= l.scoring.Milestones[l.milestone] {
		l.events.Emit(event.ScoreMilestone, l.scoring.Milestones[l.milestone])
		l.milestone++
	}
	if l.OnScore != nil {
		l.OnScore(l.Score)
	}
}

func (l *Ledger) evaluate() {
	for _, a := range l.achievements.Evaluate(l.Stats()) {
		l.events.Push(event.Event{Kind: event.AchievementUnlocked, Label: a.ID})
	}
}
