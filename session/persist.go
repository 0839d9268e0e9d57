package session

import (
	"errors"
	"log"

	"github.com/milk9111/skyflap/progression"
	"github.com/milk9111/skyflap/store"
)

// load reads the persisted totals and returns the unlocked achievements with
// the lifetime token counts. The stored carry is written for the record but
// never read back: a new session starts from DefaultCarry. Missing keys keep
// defaults; any other read error is logged and the default is used.
func (s *Session) load() (*progression.Achievements, int, int) {
	s.bestScore = s.readInt(keyBestScore, 0)

	ids, err := s.store.Strings(keyAchievements)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("session: read %s: %v", keyAchievements, err)
	}
	return progression.NewAchievements(ids...), s.readInt(keyLifetimeTokens, 0), s.readInt(keyLifetimeRare, 0)
}

func (s *Session) readInt(key string, def int) int {
	v, err := s.store.Int(key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("session: read %s: %v", key, err)
		}
		return def
	}
	return v
}

// persist writes every persisted value. Write failures are logged; the game
// keeps running on the in-memory values.
func (s *Session) persist() {
	writes := []struct {
		key string
		fn  func() error
	}{
		{keyBestScore, func() error { return s.store.SetInt(keyBestScore, s.bestScore) }},
		{keyLifetimeTokens, func() error { return s.store.SetInt(keyLifetimeTokens, s.ledger.LifetimeTokens) }},
		{keyLifetimeRare, func() error { return s.store.SetInt(keyLifetimeRare, s.ledger.LifetimeRare) }},
		{keyAchievements, func() error { return s.store.SetStrings(keyAchievements, s.ledger.Achievements().IDs()) }},
		{keySpeedMultiplier, func() error { return s.store.SetFloat(keySpeedMultiplier, s.carry.SpeedMultiplier) }},
		{keyAccumulatedScore, func() error { return s.store.SetInt(keyAccumulatedScore, s.carry.AccumulatedScore) }},
		{keyBossesDefeated, func() error { return s.store.SetInt(keyBossesDefeated, s.carry.BossesDefeated) }},
		{keyLastVictoryScore, func() error { return s.store.SetInt(keyLastVictoryScore, s.carry.LastVictoryScore) }},
	}
	for _, w := range writes {
		if err := w.fn(); err != nil {
			log.Printf("session: write %s: %v", w.key, err)
		}
	}
}
