package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/skyflap/common"
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/session"
	"golang.org/x/image/font/basicfont"
)

var (
	skyColor    = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	copperColor = color.RGBA{R: 0xb8, G: 0x73, B: 0x33, A: 0xff}
	jadeColor   = color.RGBA{R: 0x3c, G: 0xb3, B: 0x71, A: 0xff}
	commonColor = color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	rareColor   = color.RGBA{R: 0xb0, G: 0x6c, B: 0xff, A: 0xff}
	enemyColor  = color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
	hatColor    = color.RGBA{R: 0x30, G: 0x60, B: 0xff, A: 0xff}
	magnetColor = color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff}
	playerColor = color.RGBA{R: 0xff, G: 0xf0, B: 0x60, A: 0xff}
	bossColor   = color.RGBA{R: 0x50, G: 0x50, B: 0x60, A: 0xff}
	shadeColor  = color.RGBA{A: 0xa0}
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// cycleColor walks the hue wheel for obstacles shown while the hat is on.
func cycleColor(clockMs, x float64) color.RGBA {
	h := math.Mod(clockMs/4+x/3, 360) / 60
	c := 255.0
	xv := c * (1 - math.Abs(math.Mod(h, 2)-1))
	var r, g, b float64
	switch int(h) {
	case 0:
		r, g = c, xv
	case 1:
		r, g = xv, c
	case 2:
		g, b = c, xv
	case 3:
		g, b = xv, c
	case 4:
		r, b = xv, c
	default:
		r, b = c, xv
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

func drawWorld(screen *ebiten.Image, s *session.Session) {
	screen.Fill(skyColor)
	w := s.World()
	clock := w.Clock()
	height := float32(common.BaseHeight)

	ecs.ForEach2(w, component.ObstacleComponent, component.TransformComponent, func(e ecs.Entity, o *component.ObstaclePair, tr *component.Transform) {
		c := copperColor
		if o.Kind == component.PipeJade {
			c = jadeColor
		}
		if o.Color == component.ColorCycling {
			c = cycleColor(clock, tr.X)
		}
		x := float32(tr.X - o.Width/2)
		vector.FillRect(screen, x, 0, float32(o.Width), float32(o.GapTop), c, false)
		vector.FillRect(screen, x, float32(o.GapBottom), float32(o.Width), height-float32(o.GapBottom), c, false)
	})

	ecs.ForEach2(w, component.TokenComponent, component.TransformComponent, func(e ecs.Entity, t *component.Token, tr *component.Transform) {
		c := commonColor
		if t.Kind == component.TokenRare {
			c = rareColor
		}
		r := float32(circleRadius(w, e))
		vector.FillCircle(screen, float32(tr.X), float32(tr.Y), r, c, true)
		if t.HighValue {
			vector.StrokeCircle(screen, float32(tr.X), float32(tr.Y), r+3, 2, color.White, true)
		}
	})

	ecs.ForEach2(w, component.PowerUpComponent, component.TransformComponent, func(e ecs.Entity, p *component.PowerUp, tr *component.Transform) {
		c := hatColor
		if p.Kind == component.PowerUpMagnet {
			c = magnetColor
		}
		r := float32(circleRadius(w, e))
		vector.FillRect(screen, float32(tr.X)-r, float32(tr.Y)-r, 2*r, 2*r, c, false)
	})

	ecs.ForEach2(w, component.EnemyComponent, component.TransformComponent, func(e ecs.Entity, _ *component.Enemy, tr *component.Transform) {
		vector.FillCircle(screen, float32(tr.X), float32(tr.Y), float32(circleRadius(w, e)), enemyColor, true)
	})

	ecs.ForEach2(w, component.ProjectileComponent, component.TransformComponent, func(e ecs.Entity, p *component.Projectile, tr *component.Transform) {
		vector.FillCircle(screen, float32(tr.X), float32(tr.Y), float32(circleRadius(w, e)), rgb(p.Tint), true)
	})

	ecs.ForEach2(w, component.BossComponent, component.TransformComponent, func(e ecs.Entity, b *component.BossState, tr *component.Transform) {
		if b.Flashing || (b.Defeated && int(clock/80)%2 == 0) {
			return
		}
		vector.FillRect(screen, float32(tr.X-b.Width/2), float32(tr.Y-b.Height/2), float32(b.Width), float32(b.Height), bossColor, false)
	})

	ecs.ForEach2(w, component.PlayerComponent, component.TransformComponent, func(e ecs.Entity, p *component.PlayerState, tr *component.Transform) {
		if p.IsInvulnerable && int(clock/100)%2 == 0 {
			return
		}
		r := float32(circleRadius(w, e))
		vector.FillCircle(screen, float32(tr.X), float32(tr.Y), r, playerColor, true)
		for i := 0; i < p.PowerUpStacks; i++ {
			vector.FillRect(screen, float32(tr.X)-r/2, float32(tr.Y)-r-6-float32(i)*6, r, 5, hatColor, false)
		}
		if p.HasMagnet {
			vector.StrokeCircle(screen, float32(tr.X), float32(tr.Y), float32(s.Gameplay().PowerUps.MagnetRadius), 1, magnetColor, true)
		}
	})
}

func circleRadius(w *ecs.World, e ecs.Entity) float64 {
	if col, ok := ecs.Get(w, e, component.ColliderComponent); ok && col.Radius > 0 {
		return col.Radius
	}
	return 10
}

func drawText(screen *ebiten.Image, str string, x, y float64, c color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(screen, str, hudFace, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.session
	l := s.Ledger()

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  state: %s  entities: %d", ebiten.ActualFPS(), s.State(), s.World().Count()))
	}

	drawText(screen, fmt.Sprintf("Score %d   Best %d", l.Score, s.BestScore()), 16, 24, color.White)
	drawText(screen, fmt.Sprintf("Streak %d   Combo %d   Level %d", l.Streak, l.Combo, l.DifficultyLevel), 16, 44, color.White)
	if p := s.PowerUps(); p.HatActive() {
		drawText(screen, fmt.Sprintf("Hat x%d  %.1fs", p.Stacks(), p.HatRemaining()/1000), 16, 64, hatColor)
	}
	if p := s.PowerUps(); p.MagnetActive() {
		drawText(screen, fmt.Sprintf("Magnet %.1fs", p.MagnetRemaining()/1000), 16, 84, magnetColor)
	}
	if c := s.Carry(); c.BossesDefeated > 0 {
		drawText(screen, fmt.Sprintf("Bosses %d   Speed x%.1f", c.BossesDefeated, c.SpeedMultiplier), 16, 104, color.White)
	}

	for i, t := range g.toasts {
		drawText(screen, t.text, common.BaseWidth/2-80, 120+float64(i)*20, color.White)
	}

	if enc := s.Encounter(); enc != nil && !enc.Removed() {
		st := enc.BossState()
		target := float32(st.Health) / float32(st.MaxHealth)
		g.shownBossHealth = common.Clamp01(common.Lerp(g.shownBossHealth, target, 0.15))
		const barW, barH = 400, 14
		x := float32(common.BaseWidth-barW) / 2
		vector.FillRect(screen, x, 16, barW, barH, shadeColor, false)
		vector.FillRect(screen, x, 16, barW*g.shownBossHealth, barH, enemyColor, false)
		drawText(screen, fmt.Sprintf("%s  phase %d", st.Name, st.Phase), float64(x), 44, color.White)
		if s.MissileReady() {
			drawText(screen, "F: fire", float64(x)+barW-56, 44, color.White)
		}
	} else {
		g.shownBossHealth = 1
	}

	var banner string
	switch {
	case g.menu:
		banner = "SKYFLAP - press Space to fly"
	case s.State() == session.NotStarted:
		banner = "Press Space to fly"
	case s.State() == session.GameOver:
		banner = fmt.Sprintf("Game over - score %d - Enter to restart", l.Score)
	case s.State() == session.Victory:
		banner = fmt.Sprintf("Victory! score %d - Enter to continue", l.Score)
	}
	if banner != "" {
		vector.FillRect(screen, 0, common.BaseHeight/2-30, common.BaseWidth, 60, shadeColor, false)
		drawText(screen, banner, common.BaseWidth/2-float64(len(banner))*3.5, common.BaseHeight/2-6, color.White)
	}
}
