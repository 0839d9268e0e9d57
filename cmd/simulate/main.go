package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"sort"

	"github.com/milk9111/skyflap/common"
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/event"
	"github.com/milk9111/skyflap/progression"
	"github.com/milk9111/skyflap/session"
	"github.com/milk9111/skyflap/store"
	"github.com/milk9111/skyflap/tuning"
)

// simulate runs the game headless with a simple autopilot and prints what
// the ledger saw. Useful for checking tuning changes without a window.
func main() {
	common.LoadEnv()

	seed := flag.Int64("seed", common.EnvInt64("SKYFLAP_SEED", 1), "random seed")
	tuningDir := flag.String("tuning", common.EnvString("SKYFLAP_TUNING_DIR", tuning.DefaultDir), "tuning override directory")
	minutes := flag.Float64("minutes", 5, "simulated play time")
	slack := flag.Float64("slack", 12, "autopilot tolerance below the gap center in px")
	flag.Parse()

	tuning.SetDir(*tuningDir)

	s, err := session.New(session.Config{
		Store: store.NewMemory(),
		Rand:  rand.New(rand.NewSource(*seed)),
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := s.StartFromMenu(); err != nil {
		log.Fatal(err)
	}
	s.Flap()

	counts := make(map[event.Kind]int)
	maxTicks := int(*minutes * 60 * 1000 / ecs.DefaultDtMs)
loop:
	for i := 0; i < maxTicks; i++ {
		switch s.State() {
		case session.GameOver:
			break loop
		case session.Victory:
			summarize(s, counts, "victory")
			if err := s.Continue(); err != nil {
				log.Fatal(err)
			}
			s.Flap()
		}

		autopilot(s, *slack)
		s.Tick()
		for _, evt := range s.Events().Drain() {
			counts[evt.Kind]++
		}
	}
	summarize(s, counts, s.State().String())
}

func autopilot(s *session.Session, slack float64) {
	w := s.World()
	player, _, ok := ecs.First(w, component.PlayerComponent)
	if !ok {
		return
	}
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	vel, _ := ecs.Get(w, player, component.VelocityComponent)

	target := s.Gameplay().Field.Height / 2
	nearest := math.Inf(1)
	ecs.ForEach2(w, component.ObstacleComponent, component.TransformComponent, func(e ecs.Entity, o *component.ObstaclePair, otr *component.Transform) {
		if o.Scored || otr.X < tr.X-o.Width {
			return
		}
		if otr.X < nearest {
			nearest = otr.X
			target = o.GapCenter()
		}
	})
	if enc := s.Encounter(); enc != nil && nearest == math.Inf(1) {
		_, by := enc.Position()
		target = by
	}

	if tr.Y > target+slack && vel.Y >= 0 {
		s.Flap()
	}
	if s.MissileReady() {
		s.Fire()
	}
}

func summarize(s *session.Session, counts map[event.Kind]int, outcome string) {
	l := s.Ledger()
	c := s.Carry()
	log.Printf("simulate: %s score=%d run=%d best=%d passed=%d misses=%d perfect=%d best_streak=%d best_combo=%d level=%d",
		outcome, l.Score, l.RunScore(), s.BestScore(), l.ObstaclesPassed, l.Misses, l.PerfectPasses, l.BestStreak, l.BestCombo, l.DifficultyLevel)
	log.Printf("simulate: tokens common=%d rare=%d near_misses=%d enemies=%d bosses=%d speed=x%.1f",
		l.Tokens(component.TokenCommon), l.Tokens(component.TokenRare), l.NearMisses, l.EnemiesDefeated, c.BossesDefeated, c.SpeedMultiplier)

	totals := s.BonusTotals()
	cats := []struct {
		name string
		cat  progression.Category
	}{
		{"obstacle", progression.CategoryObstacle},
		{"perfect", progression.CategoryPerfect},
		{"streak", progression.CategoryStreak},
		{"token", progression.CategoryToken},
		{"near_miss", progression.CategoryNearMiss},
		{"enemy", progression.CategoryEnemy},
		{"boss", progression.CategoryBoss},
	}
	for _, c := range cats {
		if totals[c.cat] > 0 {
			log.Printf("simulate:   %-9s %d", c.name, totals[c.cat])
		}
	}

	kinds := make([]event.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		log.Printf("simulate:   event %-22s %d", k, counts[k])
	}
	log.Printf("simulate: achievements %v", l.Achievements().IDs())
}
