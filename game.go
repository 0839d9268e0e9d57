package main

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/skyflap/common"
	"github.com/milk9111/skyflap/event"
	"github.com/milk9111/skyflap/progression"
	"github.com/milk9111/skyflap/session"
	"github.com/milk9111/skyflap/tuning"
)

const toastMs = 1800

type toast struct {
	text      string
	remaining float64
}

type Game struct {
	session *session.Session
	watcher *tuning.Watcher
	pauseUI *ebitenui.UI

	menu   bool
	quit   bool
	debug  bool
	toasts []toast

	shownBossHealth float32
}

func NewGame(s *session.Session, watcher *tuning.Watcher, debug bool) *Game {
	g := &Game{session: s, watcher: watcher, menu: true, debug: debug}
	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollTuning()

	in := ReadInput()
	s := g.session

	if g.menu {
		if in.Flap || in.Confirm {
			if err := s.StartFromMenu(); err != nil {
				return err
			}
			g.menu = false
			s.Flap()
		}
		return nil
	}

	if in.Pause {
		s.TogglePause()
	}
	if s.Paused() {
		g.pauseUI.Update()
		return nil
	}

	switch s.State() {
	case session.GameOver:
		if in.Confirm {
			if err := s.Restart(); err != nil {
				return err
			}
		}
	case session.Victory:
		if in.Confirm {
			if err := s.Continue(); err != nil {
				return err
			}
		}
	default:
		if in.Flap {
			s.Flap()
		}
		if in.Fire {
			s.Fire()
		}
	}

	s.Tick()
	g.consumeEvents()
	return nil
}

// pollTuning applies edited gameplay tuning from the next run on.
func (g *Game) pollTuning() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if name != "gameplay.yaml" {
				log.Printf("tuning: %s changed; applies on restart", name)
				continue
			}
			spec, err := tuning.LoadGameplay()
			if err != nil {
				log.Printf("tuning: reload %s: %v", name, err)
				continue
			}
			g.session.SetGameplay(spec)
			log.Printf("tuning: reloaded %s", name)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("tuning: watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) consumeEvents() {
	dt := g.session.World().Dt()
	kept := g.toasts[:0]
	for _, t := range g.toasts {
		t.remaining -= dt
		if t.remaining > 0 {
			kept = append(kept, t)
		}
	}
	g.toasts = kept

	for _, evt := range g.session.Events().Drain() {
		if text := toastText(evt); text != "" {
			g.toasts = append(g.toasts, toast{text: text, remaining: toastMs})
		}
		if g.debug {
			log.Printf("event: %s value=%d label=%q", evt.Kind, evt.Value, evt.Label)
		}
	}
	if len(g.toasts) > 5 {
		g.toasts = g.toasts[len(g.toasts)-5:]
	}
}

func toastText(evt event.Event) string {
	switch evt.Kind {
	case event.PerfectPass:
		return fmt.Sprintf("Perfect! +%d", evt.Value)
	case event.StreakBonus:
		return fmt.Sprintf("Streak x%s +%d", evt.Label, evt.Value)
	case event.NearMiss:
		return fmt.Sprintf("Near miss +%d", evt.Value)
	case event.ScoreMilestone:
		return fmt.Sprintf("%d points!", evt.Value)
	case event.AchievementUnlocked:
		if a, ok := progression.Lookup(evt.Label); ok {
			return "Achievement: " + a.Name
		}
	case event.DifficultyIncreased:
		return fmt.Sprintf("Level %d", evt.Value)
	case event.HatActivated:
		return fmt.Sprintf("Hat x%d", evt.Value)
	case event.HatExpired:
		return "Hat expired"
	case event.MagnetActivated:
		return "Magnet!"
	case event.EnemyDefeated:
		return fmt.Sprintf("Enemy down +%d", evt.Value)
	case event.BossTriggered:
		return "Something is coming..."
	case event.BossStarted:
		return evt.Label + " appears!"
	case event.BossPhaseChanged:
		return fmt.Sprintf("Phase %d", evt.Value)
	case event.BossDefeated:
		return evt.Label + " defeated!"
	}
	return ""
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawWorld(screen, g.session)
	g.drawHUD(screen)
	if g.session.Paused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) restartFromMenu() {
	if err := g.session.StartFromMenu(); err != nil {
		log.Printf("game: restart: %v", err)
		return
	}
	g.menu = true
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
