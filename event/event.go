package event

// Kind identifies an event. Payload fields on Event are interpreted per kind.
type Kind int

const (
	RunStarted Kind = iota + 1
	RunPaused
	RunResumed
	GameOver

	ObstaclePassed
	ObstacleMissed
	PerfectPass
	NearMiss
	StreakBonus
	StreakLost
	ComboBroken
	TokenCollected
	ScoreMilestone
	AchievementUnlocked
	DifficultyIncreased

	HatActivated
	HatMaxed
	HatExpired
	MagnetActivated
	MagnetExpired

	PlayerDamaged
	PlayerDied
	EnemyDefeated

	BossTriggered
	BossStarted
	BossDamaged
	BossHitRejected
	BossPhaseChanged
	BossTransitionEnded
	BossDefeated
	BossRemoved
	BossVictory
)

var kindNames = map[Kind]string{
	RunStarted:          "run_started",
	RunPaused:           "run_paused",
	RunResumed:          "run_resumed",
	GameOver:            "game_over",
	ObstaclePassed:      "obstacle_passed",
	ObstacleMissed:      "obstacle_missed",
	PerfectPass:         "perfect_pass",
	NearMiss:            "near_miss",
	StreakBonus:         "streak_bonus",
	StreakLost:          "streak_lost",
	ComboBroken:         "combo_broken",
	TokenCollected:      "token_collected",
	ScoreMilestone:      "score_milestone",
	AchievementUnlocked: "achievement_unlocked",
	DifficultyIncreased: "difficulty_increased",
	HatActivated:        "hat_activated",
	HatMaxed:            "hat_maxed",
	HatExpired:          "hat_expired",
	MagnetActivated:     "magnet_activated",
	MagnetExpired:       "magnet_expired",
	PlayerDamaged:       "player_damaged",
	PlayerDied:          "player_died",
	EnemyDefeated:       "enemy_defeated",
	BossTriggered:       "boss_triggered",
	BossStarted:         "boss_started",
	BossDamaged:         "boss_damaged",
	BossHitRejected:     "boss_hit_rejected",
	BossPhaseChanged:    "boss_phase_changed",
	BossTransitionEnded: "boss_transition_ended",
	BossDefeated:        "boss_defeated",
	BossRemoved:         "boss_removed",
	BossVictory:         "boss_victory",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a notification for presentation and audio collaborators.
// Value carries the primary integer payload (points, streak, phase, level),
// Label a name (achievement id, boss name) and X/Y a world position.
type Event struct {
	Kind  Kind
	Value int
	Label string
	X, Y  float64
}

// Queue is a FIFO of events drained once per frame by the presentation layer.
type Queue struct {
	items []Event
}

// Push adds an event.
func (q *Queue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Emit is shorthand for pushing an event with only a kind and value.
func (q *Queue) Emit(kind Kind, value int) {
	q.Push(Event{Kind: kind, Value: value})
}

// Drain returns all events and clears the queue.
func (q *Queue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of pending events.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Count returns how many pending events have the given kind.
func (q *Queue) Count(kind Kind) int {
	if q == nil {
		return 0
	}
	n := 0
	for _, evt := range q.items {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}
