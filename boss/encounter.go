package boss

import (
	"fmt"
	"log"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/ecs/entity"
	"github.com/milk9111/skyflap/event"
	"github.com/milk9111/skyflap/tuning"
)

type State int

const (
	Phase1 State = iota + 1
	Phase2
	Phase3
	Defeated
)

func (s State) String() string {
	switch s {
	case Phase1:
		return "phase1"
	case Phase2:
		return "phase2"
	case Phase3:
		return "phase3"
	case Defeated:
		return "defeated"
	}
	return "unknown"
}

// Encounter is the state machine for one boss fight:
// Phase1 -> Phase2 -> Phase3 -> Defeated, with a timed Transitioning
// window on every phase change. Phase never decreases.
type Encounter struct {
	spec     tuning.BossSpec
	routines [3]Routine
	tints    [3]uint32
	events   *event.Queue

	state     component.BossState
	transform component.Transform
	entity    ecs.Entity

	clockMs    float64
	transition component.Timer
	flash      component.Timer
	explosion  component.Timer

	emit func(Shot)

	// OnDefeated runs once, in the tick the boss is defeated.
	OnDefeated func()
}

// New builds an encounter at full health in Phase1. A script routine that
// fails to load falls back to an aimed laser so the fight stays winnable.
func New(spec tuning.BossSpec, projectiles map[string]tuning.ProjectileSpec, events *event.Queue) *Encounter {
	e := &Encounter{
		spec:   spec,
		events: events,
		state: component.BossState{
			Name:          spec.Name,
			Health:        spec.MaxHealth,
			MaxHealth:     spec.MaxHealth,
			Phase:         1,
			MoveDirection: 1,
			MoveRange:     spec.MoveRange,
			BaseY:         spec.BaseY,
			Width:         spec.Width,
			Height:        spec.Height,
		},
		transform: component.Transform{X: spec.X, Y: spec.BaseY},
	}
	for i := range e.routines {
		if i >= len(spec.Phases) {
			break
		}
		e.tints[i] = spec.Phases[i].Routine.Tint.RGB()
		r, err := buildRoutine(spec.Phases[i].Routine, projectiles)
		if err != nil {
			log.Printf("boss: %s phase %d: %v; using aimed fallback", spec.Name, i+1, err)
			r = fallbackRoutine(projectiles)
		}
		e.routines[i] = r
	}
	e.applyPhase()
	return e
}

func buildRoutine(spec tuning.RoutineSpec, projectiles map[string]tuning.ProjectileSpec) (Routine, error) {
	if spec.Kind == "script" {
		return LoadScript(spec.Script, projectiles)
	}
	return newPatternRoutine(spec, projectiles)
}

func fallbackRoutine(projectiles map[string]tuning.ProjectileSpec) Routine {
	proj, ok := projectiles["laser"]
	if !ok {
		proj = tuning.ProjectileSpec{Speed: 600, Slope: 0.3, LifetimeMs: 4000, Radius: 8, Damage: 1}
	}
	return &patternRoutine{
		kind:          "laser",
		projectile:    proj,
		targetOffsets: []float64{0},
		angleOffsets:  []float64{0},
	}
}

// Spawn attaches the boss to w and routes its shots into projectile entities.
func (e *Encounter) Spawn(w *ecs.World) (ecs.Entity, error) {
	ent, err := entity.NewBoss(w, &e.state, &e.transform)
	if err != nil {
		return 0, fmt.Errorf("boss: spawn %s: %w", e.spec.Name, err)
	}
	e.entity = ent
	e.emit = func(s Shot) {
		if _, err := entity.NewProjectile(w, entity.ProjectileParams{
			X:          s.X,
			Y:          s.Y,
			VX:         s.VX,
			VY:         s.VY,
			Radius:     s.Radius,
			Owner:      component.OwnerBoss,
			Kind:       s.Kind,
			LifetimeMs: s.LifetimeMs,
			Damage:     s.Damage,
			Tint:       s.Tint,
		}); err != nil {
			log.Printf("boss: fire %s: %v", s.Kind, err)
		}
	}
	return ent, nil
}

// SetEmitter overrides where shots go. Used when the encounter runs without a world.
func (e *Encounter) SetEmitter(fn func(Shot)) {
	e.emit = fn
}

// TakeDamage applies a hit. It returns false, leaving health untouched, while
// the boss is invulnerable, transitioning or already defeated.
func (e *Encounter) TakeDamage(amount int) bool {
	st := &e.state
	if st.Defeated || st.IsInvulnerable || st.IsTransitioning || amount <= 0 {
		e.events.Push(event.Event{Kind: event.BossHitRejected, Value: st.Phase, Label: st.Name})
		return false
	}

	st.Health -= amount
	if st.Health < 0 {
		st.Health = 0
	}
	e.events.Push(event.Event{Kind: event.BossDamaged, Value: st.Health, Label: st.Name, X: e.transform.X, Y: e.transform.Y})

	switch {
	case st.Phase == 1 && st.Health <= e.threshold(2):
		e.enterPhase(2)
	case st.Phase == 2 && st.Health <= e.threshold(3):
		e.enterPhase(3)
	case st.Phase == 3 && st.Health <= 0:
		e.defeat()
	}
	return true
}

// threshold is the health at or below which phase next begins. Max health is
// split into three equal bands.
func (e *Encounter) threshold(next int) int {
	return e.state.MaxHealth * (4 - next) / 3
}

func (e *Encounter) enterPhase(phase int) {
	st := &e.state
	if phase <= st.Phase || st.IsTransitioning {
		return
	}
	st.Phase = phase
	st.IsTransitioning = true
	st.IsInvulnerable = true
	st.Flashing = true
	e.transition.Start(e.spec.TransitionMs)
	e.flash.Start(e.spec.FlashIntervalMs)
	e.events.Push(event.Event{Kind: event.BossPhaseChanged, Value: phase, Label: st.Name})
}

func (e *Encounter) endTransition() {
	st := &e.state
	st.IsTransitioning = false
	st.IsInvulnerable = false
	st.Flashing = false
	e.flash.Stop()
	e.applyPhase()
	st.LastAttackTime = e.clockMs
	e.events.Push(event.Event{Kind: event.BossTransitionEnded, Value: st.Phase, Label: st.Name})
}

func (e *Encounter) applyPhase() {
	idx := e.state.Phase - 1
	if idx < 0 || idx >= len(e.spec.Phases) {
		return
	}
	p := e.spec.Phases[idx]
	e.state.AttackCooldownMs = p.CooldownMs
	e.state.MoveSpeed = p.MoveSpeed
}

func (e *Encounter) defeat() {
	st := &e.state
	if st.Defeated {
		return
	}
	st.Defeated = true
	st.IsInvulnerable = true
	st.MoveDirection = 0
	st.MoveSpeed = 0
	e.explosion.Start(e.spec.ExplosionMs)
	e.events.Push(event.Event{Kind: event.BossDefeated, Value: st.MaxHealth, Label: st.Name, X: e.transform.X, Y: e.transform.Y})
	if e.OnDefeated != nil {
		e.OnDefeated()
	}
}

// Update advances the encounter by one tick. playerX/playerY are the aim target.
func (e *Encounter) Update(dtMs, playerX, playerY float64) {
	st := &e.state
	if st.Removed {
		return
	}
	if st.Defeated {
		if e.explosion.Tick(dtMs) {
			st.Removed = true
			e.events.Push(event.Event{Kind: event.BossRemoved, Label: st.Name})
		}
		return
	}

	e.clockMs += dtMs

	if st.IsTransitioning {
		if e.flash.Tick(dtMs) {
			st.Flashing = !st.Flashing
			e.flash.Start(e.spec.FlashIntervalMs)
		}
		if e.transition.Tick(dtMs) {
			e.endTransition()
		}
		return
	}

	e.move(dtMs)

	if e.clockMs-st.LastAttackTime >= st.AttackCooldownMs {
		st.LastAttackTime = e.clockMs
		e.attack(playerX, playerY)
	}
}

func (e *Encounter) move(dtMs float64) {
	st := &e.state
	e.transform.Y += st.MoveDirection * st.MoveSpeed * dtMs / 1000
	top := st.BaseY - st.MoveRange
	bottom := st.BaseY + st.MoveRange
	if e.transform.Y <= top {
		e.transform.Y = top
		st.MoveDirection = 1
	} else if e.transform.Y >= bottom {
		e.transform.Y = bottom
		st.MoveDirection = -1
	}
}

func (e *Encounter) attack(playerX, playerY float64) {
	idx := e.state.Phase - 1
	r := e.routines[idx]
	if r == nil || e.emit == nil {
		return
	}
	ctx := FireContext{
		BossX:   e.transform.X,
		BossY:   e.transform.Y,
		PlayerX: playerX,
		PlayerY: playerY,
		Phase:   e.state.Phase,
		Health:  e.state.Health,
		Tint:    e.tints[idx],
		Emit:    e.emit,
	}
	if err := r.Fire(ctx); err != nil {
		log.Printf("boss: %s phase %d attack: %v", e.state.Name, e.state.Phase, err)
	}
}

// Current returns the encounter state.
func (e *Encounter) Current() State {
	if e.state.Defeated {
		return Defeated
	}
	return State(e.state.Phase)
}

func (e *Encounter) Name() string { return e.state.Name }
func (e *Encounter) Phase() int { return e.state.Phase }
func (e *Encounter) Health() int { return e.state.Health }
func (e *Encounter) IsTransitioning() bool { return e.state.IsTransitioning }
func (e *Encounter) IsInvulnerable() bool { return e.state.IsInvulnerable }
func (e *Encounter) IsDefeated() bool { return e.state.Defeated }
func (e *Encounter) Entity() ecs.Entity { return e.entity }
func (e *Encounter) Position() (x, y float64) { return e.transform.X, e.transform.Y }

// Removed reports whether the explosion has finished and the boss is gone.
func (e *Encounter) Removed() bool {
	return e.state.Removed
}

// BossState exposes the observable state for presentation.
func (e *Encounter) BossState() *component.BossState {
	return &e.state
}
