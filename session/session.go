package session

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/milk9111/skyflap/boss"
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/ecs/entity"
	"github.com/milk9111/skyflap/ecs/system"
	"github.com/milk9111/skyflap/event"
	"github.com/milk9111/skyflap/physics"
	"github.com/milk9111/skyflap/progression"
	"github.com/milk9111/skyflap/store"
	"github.com/milk9111/skyflap/tuning"
)

var ErrWrongState = errors.New("session: wrong state")

type State int

const (
	NotStarted State = iota
	Playing
	BossTriggered
	BossFight
	Victory
	GameOver
)

var stateNames = [...]string{"not_started", "playing", "boss_triggered", "boss_fight", "victory", "game_over"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Store reads and writes named values. Missing keys return an error
// wrapping store.ErrNotFound.
type Store interface {
	Int(key string) (int, error)
	SetInt(key string, v int) error
	Float(key string) (float64, error)
	SetFloat(key string, v float64) error
	Strings(key string) ([]string, error)
	SetStrings(key string, v []string) error
}

// Physics steps the player and reports overlaps back into the session.
// SetSpec takes effect from the next Reset.
type Physics interface {
	Update(w *ecs.World)
	Reset()
	Flap(w *ecs.World, velocity float64)
	SetSpec(spec *tuning.GameplaySpec)
}

type Config struct {
	Gameplay *tuning.GameplaySpec
	Bosses   *tuning.BossRosterSpec
	Store    Store
	Rand     *rand.Rand
	// Physics defaults to a cp space dispatching into the session.
	Physics Physics
}

// Session runs one game: the run lifecycle, boss hand-off and the
// cross-run carry.
type Session struct {
	gameplay *tuning.GameplaySpec
	pending  *tuning.GameplaySpec
	bosses   *tuning.BossRosterSpec
	store    Store
	rng      *rand.Rand
	physics  Physics
	events   *event.Queue

	state     State
	paused    bool
	carry     CrossRunCarry
	bestScore int

	ledger *progression.Ledger

	world      *ecs.World
	player     ecs.Entity
	scheduler  *ecs.Scheduler
	powerups   *system.PowerUpController
	difficulty *system.DifficultySystem
	spawner    *system.SpawnScheduler
	bossSystem *system.BossSystem

	encounter *boss.Encounter
	bossSpec  tuning.BossSpec

	trigger         component.Timer
	missileCooldown component.Timer
}

// New loads persisted totals and prepares a NotStarted run. The first run
// always starts from the default carry, whatever the store holds.
func New(cfg Config) (*Session, error) {
	s := &Session{
		gameplay: cfg.Gameplay,
		bosses:   cfg.Bosses,
		store:    cfg.Store,
		rng:      cfg.Rand,
		physics:  cfg.Physics,
		events:   &event.Queue{},
		carry:    DefaultCarry(),
	}
	if s.gameplay == nil {
		spec, err := tuning.LoadGameplay()
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		s.gameplay = spec
	}
	if s.bosses == nil {
		roster, err := tuning.LoadBosses()
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		s.bosses = roster
	}
	if s.store == nil {
		s.store = store.NewMemory()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.physics == nil {
		s.physics = physics.NewSpace(s.gameplay, s)
	}

	achievements, tokens, rare := s.load()
	s.ledger = s.newLedger(achievements)
	s.ledger.LifetimeTokens = tokens
	s.ledger.LifetimeRare = rare
	if err := s.prepareRun(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) newLedger(achievements *progression.Achievements) *progression.Ledger {
	l := progression.NewLedger(s.gameplay.Scoring, s.gameplay.Tokens, achievements, s.events)
	l.OnScore = s.onScore
	l.External = func() progression.External {
		return progression.External{
			HatActive:      s.powerups.HatActive(),
			HatStacks:      s.powerups.Stacks(),
			BossesDefeated: s.carry.BossesDefeated,
		}
	}
	if s.ledger != nil {
		l.LifetimeTokens = s.ledger.LifetimeTokens
		l.LifetimeRare = s.ledger.LifetimeRare
	}
	return l
}

// SetGameplay swaps the tuning used from the next run on.
func (s *Session) SetGameplay(spec *tuning.GameplaySpec) {
	if spec == nil {
		return
	}
	s.pending = spec
}

// prepareRun builds a fresh world for a run starting from the current carry.
func (s *Session) prepareRun() error {
	if s.pending != nil {
		s.gameplay = s.pending
		s.pending = nil
		s.ledger = s.newLedger(s.ledger.Achievements())
		s.physics.SetSpec(s.gameplay)
	}
	g := s.gameplay

	world := ecs.NewWorld(ecs.DefaultDtMs, s.events)
	player, err := entity.NewPlayer(world, g.Player)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	state, _ := ecs.Get(world, player, component.PlayerComponent)

	s.world = world
	s.player = player
	s.physics.Reset()

	s.powerups = system.NewPowerUpController(g.PowerUps, s.events)
	s.powerups.Bind(state)
	s.ledger.ResetRun(s.carry.AccumulatedScore)
	s.difficulty = system.NewDifficultySystem(g, s.ledger, s.powerups, s.carry.SpeedMultiplier)
	s.powerups.OnChange = s.difficulty.Reapply
	s.spawner = system.NewSpawnScheduler(g, s.rng, s.powerups, s.difficulty.Current)
	s.bossSystem = system.NewBossSystem()

	players := system.NewPlayerSystem(g)
	players.OnLeaveField = func() { s.killPlayer("left the field") }

	s.scheduler = ecs.NewScheduler(
		s.physics,
		players,
		system.NewPassSystem(g, s.ledger),
		s.difficulty,
		s.powerups,
		system.NewMagnetSystem(g.PowerUps, s.powerups),
		s.spawner,
		system.NewMovementSystem(),
		system.NewOscillatorSystem(),
		system.NewEnemyMotionSystem(g.Enemies),
		system.NewProjectileSystem(),
		s.bossSystem,
		system.NewCleanupSystem(g.Field, s.ledger),
	)

	s.encounter = nil
	s.trigger.Stop()
	s.missileCooldown.Stop()
	s.paused = false
	s.state = NotStarted
	return nil
}

// StartFromMenu starts a brand new session run. The carry is reset to its
// defaults no matter what is in memory or in the store.
func (s *Session) StartFromMenu() error {
	s.carry = DefaultCarry()
	s.persist()
	return s.prepareRun()
}

// Restart starts over after a game over. Death already cleared the carry.
func (s *Session) Restart() error {
	if s.state != GameOver {
		return fmt.Errorf("%w: restart from %s", ErrWrongState, s.state)
	}
	return s.prepareRun()
}

// Continue starts the run after a boss victory with the carried score and speed.
func (s *Session) Continue() error {
	if s.state != Victory {
		return fmt.Errorf("%w: continue from %s", ErrWrongState, s.state)
	}
	return s.prepareRun()
}

func (s *Session) active() bool {
	if s.paused {
		return false
	}
	switch s.state {
	case Playing, BossTriggered, BossFight:
		return true
	}
	return false
}

func (s *Session) begin() {
	s.state = Playing
	s.spawner.Start()
	s.difficulty.Reapply(s.world)
	s.events.Emit(event.RunStarted, s.carry.AccumulatedScore)
}

// Flap is the single input action. The first flap starts the run.
func (s *Session) Flap() bool {
	if s.state == NotStarted {
		s.begin()
	}
	if !s.active() {
		return false
	}
	v := s.gameplay.Player.FlapVelocity
	if s.powerups.HatActive() {
		v *= s.gameplay.Player.HatFlapBoost
	}
	s.physics.Flap(s.world, v)
	return true
}

// Fire launches a missile at the boss. Only available during the fight and
// limited by a cooldown.
func (s *Session) Fire() bool {
	if !s.active() || s.state != BossFight || s.missileCooldown.Running() {
		return false
	}
	st := s.playerState()
	tr, ok := ecs.Get(s.world, s.player, component.TransformComponent)
	if st == nil || st.IsDead || !ok {
		return false
	}
	m := s.gameplay.Missile
	if _, err := entity.NewProjectile(s.world, entity.ProjectileParams{
		X:          tr.X + s.gameplay.Player.Radius,
		Y:          tr.Y,
		VX:         m.Speed,
		Radius:     m.Radius,
		Owner:      component.OwnerPlayer,
		Kind:       "missile",
		LifetimeMs: m.LifetimeMs,
		Damage:     m.Damage,
		Tint:       m.Tint.RGB(),
	}); err != nil {
		log.Printf("session: fire: %v", err)
		return false
	}
	s.missileCooldown.Start(m.CooldownMs)
	return true
}

// TogglePause suspends every timer by not ticking; remaining durations are kept.
func (s *Session) TogglePause() bool {
	switch s.state {
	case Playing, BossTriggered, BossFight:
	default:
		return false
	}
	s.paused = !s.paused
	if s.paused {
		s.events.Emit(event.RunPaused, 0)
	} else {
		s.events.Emit(event.RunResumed, 0)
	}
	return s.paused
}

// Tick advances the run by one fixed step.
func (s *Session) Tick() {
	if !s.active() {
		return
	}
	s.scheduler.Update(s.world)
	s.world.Advance()
	if s.state == GameOver {
		return
	}

	dt := s.world.Dt()
	s.missileCooldown.Tick(dt)

	switch s.state {
	case BossTriggered:
		if s.trigger.Tick(dt) {
			s.startBossFight()
		}
	case BossFight:
		if s.encounter != nil && s.encounter.Removed() {
			s.state = Victory
			s.events.Push(event.Event{Kind: event.BossVictory, Value: s.gameplay.Boss.VictoryBonus, Label: s.bossSpec.Name})
		}
	}
}

// BossThreshold is the score that triggers the next encounter.
func (s *Session) BossThreshold() int {
	if s.carry.BossesDefeated == 0 {
		return s.gameplay.Boss.FirstScore
	}
	return s.carry.LastVictoryScore + s.gameplay.Boss.ScoreIncrement
}

func (s *Session) onScore(score int) {
	if s.state != Playing || len(s.bosses.Bosses) == 0 {
		return
	}
	if score >= s.BossThreshold() {
		s.triggerBoss(score)
	}
}

func (s *Session) triggerBoss(score int) {
	s.state = BossTriggered
	s.spawner.Cancel()
	s.difficulty.HoldClock = true
	s.trigger.Start(s.gameplay.Boss.TransitionMs)
	log.Printf("session: boss triggered at score=%d", score)
	s.events.Emit(event.BossTriggered, score)
}

func (s *Session) startBossFight() {
	roster := s.bosses.Bosses
	s.bossSpec = roster[s.carry.BossesDefeated%len(roster)]
	enc := boss.New(s.bossSpec, s.bosses.Projectiles, s.events)
	enc.OnDefeated = s.onBossDefeated
	if _, err := enc.Spawn(s.world); err != nil {
		log.Printf("session: %v; resuming run", err)
		s.state = Playing
		s.difficulty.HoldClock = false
		s.spawner.Start()
		return
	}
	s.encounter = enc
	s.bossSystem.Encounter = enc
	s.state = BossFight
	s.events.Push(event.Event{Kind: event.BossStarted, Value: s.bossSpec.MaxHealth, Label: s.bossSpec.Name})
}

// onBossDefeated pays out the victory and records the carry before the
// next run can start.
func (s *Session) onBossDefeated() {
	s.carry.BossesDefeated++
	s.ledger.AddBonus(progression.CategoryBoss, s.gameplay.Boss.VictoryBonus)
	s.carry.SpeedMultiplier += s.gameplay.Boss.SpeedIncrement
	s.carry.LastVictoryScore = s.ledger.Score
	s.carry.AccumulatedScore = s.ledger.Score
	s.updateBest()
	s.persist()
}

func (s *Session) killPlayer(reason string) bool {
	st := s.playerState()
	if st == nil || !st.Kill() {
		return false
	}
	s.events.Push(event.Event{Kind: event.PlayerDied, Label: reason})
	s.gameOver()
	return true
}

// gameOver ends the run. Death wipes the cross-run carry unconditionally.
func (s *Session) gameOver() {
	if s.state == GameOver {
		return
	}
	s.state = GameOver
	s.paused = false
	s.spawner.Cancel()
	s.carry = DefaultCarry()
	s.updateBest()
	s.persist()
	s.events.Emit(event.GameOver, s.ledger.Score)
}

func (s *Session) updateBest() {
	if s.ledger.Score > s.bestScore {
		s.bestScore = s.ledger.Score
	}
}

func (s *Session) playerState() *component.PlayerState {
	st, ok := ecs.Get(s.world, s.player, component.PlayerComponent)
	if !ok {
		return nil
	}
	return st
}

func (s *Session) State() State                        { return s.state }
func (s *Session) Paused() bool                        { return s.paused }
func (s *Session) World() *ecs.World                   { return s.world }
func (s *Session) Player() ecs.Entity                  { return s.player }
func (s *Session) Ledger() *progression.Ledger         { return s.ledger }
func (s *Session) Encounter() *boss.Encounter          { return s.encounter }
func (s *Session) Carry() CrossRunCarry                { return s.carry }
func (s *Session) PowerUps() *system.PowerUpController { return s.powerups }
func (s *Session) Spawner() *system.SpawnScheduler     { return s.spawner }
func (s *Session) BestScore() int                      { return s.bestScore }
func (s *Session) Events() *event.Queue                { return s.events }
func (s *Session) Gameplay() *tuning.GameplaySpec      { return s.gameplay }

// Difficulty is the scaled difficulty new entities spawn with.
func (s *Session) Difficulty() system.Difficulty {
	return s.difficulty.Current()
}

// MissileReady reports whether Fire would launch right now.
func (s *Session) MissileReady() bool {
	return s.state == BossFight && !s.missileCooldown.Running()
}
