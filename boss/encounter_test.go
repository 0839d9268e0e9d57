package boss

import (
	"testing"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/event"
	"github.com/milk9111/skyflap/tuning"
)

const dt = 1000.0 / 60.0

func testProjectiles() map[string]tuning.ProjectileSpec {
	return map[string]tuning.ProjectileSpec{
		"laser":    {Speed: 600, Slope: 0.3, LifetimeMs: 4000, Radius: 8, Damage: 1},
		"fireball": {Speed: 400, Slope: 0.4, LifetimeMs: 5000, Radius: 12, Damage: 1},
	}
}

func testSpec() tuning.BossSpec {
	return tuning.BossSpec{
		Name:            "Gary",
		MaxHealth:       300,
		X:               1050,
		BaseY:           360,
		Width:           160,
		Height:          200,
		MoveRange:       200,
		TransitionMs:    2500,
		FlashIntervalMs: 150,
		ExplosionMs:     1000,
		Phases: []tuning.PhaseSpec{
			{CooldownMs: 2000, MoveSpeed: 120, Routine: tuning.RoutineSpec{Kind: "aimed", Projectile: "laser", Origin: tuning.Offset{X: -60, Y: -40}}},
			{CooldownMs: 1500, MoveSpeed: 150, Routine: tuning.RoutineSpec{Kind: "aimed", Projectile: "laser", Origin: tuning.Offset{X: -40, Y: 30}}},
			{CooldownMs: 1000, MoveSpeed: 180, Routine: tuning.RoutineSpec{Kind: "spread", Projectile: "laser", TargetOffsets: []float64{-50, 0, 50}}},
		},
	}
}

func newTestEncounter() (*Encounter, *event.Queue, *[]Shot) {
	q := &event.Queue{}
	e := New(testSpec(), testProjectiles(), q)
	shots := &[]Shot{}
	e.SetEmitter(func(s Shot) { *shots = append(*shots, s) })
	return e, q, shots
}

func advance(e *Encounter, ms float64) {
	for t := 0.0; t < ms; t += dt {
		e.Update(dt, 200, 360)
	}
}

func TestPhaseOneToTwoOnce(t *testing.T) {
	e, q, _ := newTestEncounter()

	hits := 0
	for e.Phase() == 1 {
		if !e.TakeDamage(25) {
			t.Fatalf("hit %d rejected in phase 1", hits+1)
		}
		hits++
	}
	if hits != 4 || e.Health() != 200 {
		t.Fatalf("expected phase change on hit 4 at 200 health, got hit %d health %d", hits, e.Health())
	}
	if !e.IsTransitioning() || !e.IsInvulnerable() {
		t.Fatalf("phase change must start the transition window")
	}

	for i := 0; i < 5; i++ {
		if e.TakeDamage(25) {
			t.Fatalf("damage accepted during transition")
		}
	}
	if e.Health() != 200 {
		t.Fatalf("health changed during transition: %d", e.Health())
	}

	advance(e, 2400)
	if !e.IsTransitioning() {
		t.Fatalf("transition ended early")
	}
	advance(e, 200)
	if e.IsTransitioning() {
		t.Fatalf("transition should have ended after 2.5s")
	}
	if !e.TakeDamage(25) || e.Health() != 175 || e.Phase() != 2 {
		t.Fatalf("expected phase 2 hit to land, health=%d phase=%d", e.Health(), e.Phase())
	}
	if got := q.Count(event.BossPhaseChanged); got != 1 {
		t.Fatalf("expected exactly one phase change event, got %d", got)
	}
	if e.BossState().AttackCooldownMs != 1500 || e.BossState().MoveSpeed != 150 {
		t.Fatalf("phase 2 parameters not applied: %+v", e.BossState())
	}
}

func TestPhaseMonotonicToDefeat(t *testing.T) {
	e, q, _ := newTestEncounter()
	defeated := 0
	e.OnDefeated = func() { defeated++ }

	lastPhase := e.Phase()
	for i := 0; i < 200 && !e.IsDefeated(); i++ {
		e.TakeDamage(40)
		advance(e, 100)
		if e.Phase() < lastPhase {
			t.Fatalf("phase regressed from %d to %d", lastPhase, e.Phase())
		}
		lastPhase = e.Phase()
	}
	if !e.IsDefeated() || e.Current() != Defeated {
		t.Fatalf("boss should be defeated, state=%v health=%d", e.Current(), e.Health())
	}
	if e.Phase() != 3 || e.Health() != 0 {
		t.Fatalf("defeat requires phase 3 and zero health, got phase %d health %d", e.Phase(), e.Health())
	}
	if defeated != 1 || q.Count(event.BossDefeated) != 1 {
		t.Fatalf("defeat must fire once, callback=%d events=%d", defeated, q.Count(event.BossDefeated))
	}
	if e.TakeDamage(10) {
		t.Fatalf("defeated boss must reject damage")
	}

	_, y := e.Position()
	advance(e, 500)
	if _, y2 := e.Position(); y2 != y {
		t.Fatalf("defeated boss must not move")
	}
	if e.Removed() {
		t.Fatalf("removed before explosion finished")
	}
	advance(e, 600)
	if !e.Removed() || q.Count(event.BossRemoved) != 1 {
		t.Fatalf("boss should be removed after the explosion")
	}
}

func TestSingleHugeHitAdvancesOnePhase(t *testing.T) {
	e, _, _ := newTestEncounter()
	if !e.TakeDamage(1000) {
		t.Fatalf("hit should land")
	}
	if e.Phase() != 2 || e.Health() != 0 || e.IsDefeated() {
		t.Fatalf("expected phase 2 at 0 health, got phase %d health %d", e.Phase(), e.Health())
	}
}

func TestAttackCooldownPerPhase(t *testing.T) {
	e, _, shots := newTestEncounter()

	for i := 0; i < 119; i++ {
		e.Update(dt, 200, 360)
	}
	if len(*shots) != 0 {
		t.Fatalf("fired before cooldown elapsed")
	}
	e.Update(dt, 200, 360)
	e.Update(dt, 200, 360)
	if len(*shots) != 1 {
		t.Fatalf("expected one aimed shot, got %d", len(*shots))
	}
	first := (*shots)[0]
	if first.VX >= 0 || first.Kind != "laser" {
		t.Fatalf("shot should travel left: %+v", first)
	}
	if first.X != 1050-60 {
		t.Fatalf("phase 1 shot should leave the first origin, got x=%v", first.X)
	}
}

func TestPhaseThreeSpread(t *testing.T) {
	e, _, shots := newTestEncounter()
	e.TakeDamage(100)
	advance(e, 2600)
	e.TakeDamage(100)
	advance(e, 2600)
	if e.Phase() != 3 || e.IsTransitioning() {
		t.Fatalf("expected settled phase 3")
	}
	*shots = (*shots)[:0]
	advance(e, 1020)
	if len(*shots) != 3 {
		t.Fatalf("expected a 3 shot spread, got %d", len(*shots))
	}
}

func TestOscillationStaysInRange(t *testing.T) {
	e, _, _ := newTestEncounter()
	st := e.BossState()
	reversed := false
	lastDir := st.MoveDirection
	for i := 0; i < 600; i++ {
		e.Update(dt, 200, 360)
		_, y := e.Position()
		if y < st.BaseY-st.MoveRange || y > st.BaseY+st.MoveRange {
			t.Fatalf("boss left its range: y=%v", y)
		}
		if st.MoveDirection != lastDir {
			reversed = true
		}
		lastDir = st.MoveDirection
	}
	if !reversed {
		t.Fatalf("boss never reversed direction")
	}
}

func TestSpawnFiresIntoWorld(t *testing.T) {
	q := &event.Queue{}
	w := ecs.NewWorld(dt, q)
	e := New(testSpec(), testProjectiles(), q)
	if _, err := e.Spawn(w); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if _, st, ok := ecs.First(w, component.BossComponent); !ok || st != e.BossState() {
		t.Fatalf("boss state should be shared with the world")
	}
	for i := 0; i < 130; i++ {
		e.Update(dt, 200, 360)
	}
	if got := ecs.Count(w, component.ProjectileComponent); got != 1 {
		t.Fatalf("expected 1 projectile entity, got %d", got)
	}
	tr, ok := ecs.Get(w, e.Entity(), component.TransformComponent)
	if !ok {
		t.Fatalf("boss transform missing")
	}
	if _, y := e.Position(); tr.Y != y {
		t.Fatalf("world transform should follow the encounter")
	}
}

func TestAimShotSlopeCapped(t *testing.T) {
	proj := testProjectiles()["laser"]
	s := aimShot("laser", proj, 1000, 100, 200, 700, 0, 0)
	if s.VY <= 0 {
		t.Fatalf("target below should aim down")
	}
	if ratio := s.VY / -s.VX; ratio > proj.Slope+1e-9 {
		t.Fatalf("slope %v exceeds cap %v", ratio, proj.Slope)
	}
}
