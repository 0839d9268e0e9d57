package progression

import "sort"

type Achievement struct {
	ID          string
	Name        string
	Description string
}

// Stats is the snapshot achievements are evaluated against.
type Stats struct {
	Score           int
	ObstaclesPassed int
	Streak          int
	PerfectPasses   int
	Combo           int
	CommonTokensRun int
	RareTokensRun   int
	TokensLifetime  int
	RareLifetime    int
	HatActive       bool
	HatStacks       int
	BossesDefeated  int
}

type rule struct {
	Achievement
	met func(s Stats) bool
}

func atLeast(pick func(Stats) int, n int) func(Stats) bool {
	return func(s Stats) bool { return pick(s) >= n }
}

func score(s Stats) int    { return s.Score }
func passed(s Stats) int   { return s.ObstaclesPassed }
func streak(s Stats) int   { return s.Streak }
func perfects(s Stats) int { return s.PerfectPasses }
func combo(s Stats) int    { return s.Combo }

var rules = []rule{
	{Achievement{"first_flight", "First Flight", "Score 10 points"}, atLeast(score, 10)},
	{Achievement{"rising_star", "Rising Star", "Score 25 points"}, atLeast(score, 25)},
	{Achievement{"sky_master", "Sky Master", "Score 50 points"}, atLeast(score, 50)},
	{Achievement{"legend", "Legend", "Score 100 points"}, atLeast(score, 100)},
	{Achievement{"immortal", "Immortal", "Score 200 points"}, atLeast(score, 200)},
	{Achievement{"god_mode", "God Mode", "Score 500 points"}, atLeast(score, 500)},

	{Achievement{"pipe_navigator", "Pipe Navigator", "Pass 25 obstacles in one run"}, atLeast(passed, 25)},
	{Achievement{"obstacle_master", "Obstacle Master", "Pass 50 obstacles in one run"}, atLeast(passed, 50)},
	{Achievement{"centurion", "Centurion", "Pass 100 obstacles in one run"}, atLeast(passed, 100)},

	{Achievement{"hot_streak", "Hot Streak", "Reach a 15 pass streak"}, atLeast(streak, 15)},
	{Achievement{"unstoppable", "Unstoppable", "Reach a 30 pass streak"}, atLeast(streak, 30)},

	{Achievement{"perfectionist", "Perfectionist", "5 perfect passes in one run"}, atLeast(perfects, 5)},
	{Achievement{"sharpshooter", "Sharpshooter", "10 perfect passes in one run"}, atLeast(perfects, 10)},
	{Achievement{"bullseye_master", "Bullseye Master", "20 perfect passes in one run"}, atLeast(perfects, 20)},

	{Achievement{"invincible", "Invincible", "Pass 10 obstacles with the hat on"}, func(s Stats) bool {
		return s.HatActive && s.ObstaclesPassed >= 10
	}},
	{Achievement{"triple_threat", "Triple Threat", "Stack the hat three times"}, func(s Stats) bool {
		return s.HatStacks >= 3
	}},

	{Achievement{"coin_streak", "Coin Streak", "Token combo of 5"}, atLeast(combo, 5)},
	{Achievement{"coin_master", "Coin Master", "Token combo of 10"}, atLeast(combo, 10)},
	{Achievement{"coin_legend", "Coin Legend", "Token combo of 15"}, atLeast(combo, 15)},
	{Achievement{"coin_deity", "Coin Deity", "Token combo of 20"}, atLeast(combo, 20)},
	{Achievement{"golden_touch", "Golden Touch", "Collect 10 rare tokens"}, func(s Stats) bool {
		return s.RareLifetime >= 10
	}},
	{Achievement{"bear_collector", "Bear Collector", "Collect 5 rare tokens in one run"}, func(s Stats) bool {
		return s.RareTokensRun >= 5
	}},
	{Achievement{"token_hunter", "Token Hunter", "Collect 50 common tokens in one run"}, func(s Stats) bool {
		return s.CommonTokensRun >= 50
	}},
	{Achievement{"crypto_collector", "Crypto Collector", "Collect 100 tokens in total"}, func(s Stats) bool {
		return s.TokensLifetime >= 100
	}},

	{Achievement{"boss_slayer", "Boss Slayer", "Defeat a boss"}, func(s Stats) bool {
		return s.BossesDefeated >= 1
	}},
}

// Catalog lists every achievement in evaluation order.
func Catalog() []Achievement {
	out := make([]Achievement, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Achievement)
	}
	return out
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Achievement, bool) {
	for _, r := range rules {
		if r.ID == id {
			return r.Achievement, true
		}
	}
	return Achievement{}, false
}

// Achievements is a one-way set: ids are only ever added.
type Achievements struct {
	unlocked map[string]struct{}
}

func NewAchievements(ids ...string) *Achievements {
	a := &Achievements{unlocked: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if _, ok := Lookup(id); ok {
			a.unlocked[id] = struct{}{}
		}
	}
	return a
}

// Unlock adds id and reports whether it was newly added. Unknown ids are ignored.
func (a *Achievements) Unlock(id string) bool {
	if a == nil {
		return false
	}
	if _, ok := a.unlocked[id]; ok {
		return false
	}
	if _, ok := Lookup(id); !ok {
		return false
	}
	a.unlocked[id] = struct{}{}
	return true
}

func (a *Achievements) Has(id string) bool {
	if a == nil {
		return false
	}
	_, ok := a.unlocked[id]
	return ok
}

func (a *Achievements) Len() int {
	if a == nil {
		return 0
	}
	return len(a.unlocked)
}

// IDs returns the unlocked ids sorted.
func (a *Achievements) IDs() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.unlocked))
	for id := range a.unlocked {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Evaluate unlocks every achievement whose rule is met and returns the new ones.
// Already unlocked achievements are skipped, so repeated calls are no-ops.
func (a *Achievements) Evaluate(s Stats) []Achievement {
	var fresh []Achievement
	for _, r := range rules {
		if a.Has(r.ID) || !r.met(s) {
			continue
		}
		if a.Unlock(r.ID) {
			fresh = append(fresh, r.Achievement)
		}
	}
	return fresh
}
