package session

// CrossRunCarry is what a boss victory hands to the next run. Only the
// session writes it; everything else gets copies.
type CrossRunCarry struct {
	SpeedMultiplier  float64
	AccumulatedScore int
	BossesDefeated   int
	LastVictoryScore int
}

func DefaultCarry() CrossRunCarry {
	return CrossRunCarry{SpeedMultiplier: 1}
}

const (
	keyBestScore        = "best_score"
	keyLifetimeTokens   = "lifetime_tokens"
	keyLifetimeRare     = "lifetime_rare_tokens"
	keyAchievements     = "achievements"
	keySpeedMultiplier  = "carry.speed_multiplier"
	keyAccumulatedScore = "carry.accumulated_score"
	keyBossesDefeated   = "carry.bosses_defeated"
	keyLastVictoryScore = "carry.last_victory_score"
)
