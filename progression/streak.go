package progression

import "github.com/milk9111/skyflap/tuning"

// StreakBonus returns the bonus for a streak that exactly equals a threshold.
func StreakBonus(schedule []tuning.StreakStep, streak int) (int, bool) {
	for _, step := range schedule {
		if step.Streak == streak {
			return step.Bonus, true
		}
	}
	return 0, false
}

// ComboMultiplier is 1 below the first tier, then rises by tierBonus every
// step collections: with step 3 and bonus 0.5, combos 3-5 give 1.5 and 6-8 give 2.0.
func ComboMultiplier(combo, step int, tierBonus float64) float64 {
	if step < 1 {
		step = 1
	}
	if combo < step {
		return 1
	}
	tier := (combo - step) / step
	return 1 + float64(tier+1)*tierBonus
}
