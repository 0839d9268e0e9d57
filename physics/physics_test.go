package physics

import (
	"testing"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/ecs/entity"
	"github.com/milk9111/skyflap/event"
	"github.com/milk9111/skyflap/tuning"
)

type recorder struct {
	calls  map[string]int
	accept bool
}

func newRecorder() *recorder { return &recorder{calls: map[string]int{}, accept: true} }

func (r *recorder) hit(name string) bool { r.calls[name]++; return r.accept }

func (r *recorder) ObstacleHit(_, _ ecs.Entity) bool         { return r.hit("obstacle") }
func (r *recorder) TokenCollected(_, _ ecs.Entity) bool      { return r.hit("token") }
func (r *recorder) EnemyHit(_, _ ecs.Entity) bool            { return r.hit("enemy") }
func (r *recorder) PowerUpCollected(_, _ ecs.Entity) bool    { return r.hit("power_up") }
func (r *recorder) ProjectileHitPlayer(_, _ ecs.Entity) bool { return r.hit("projectile_player") }
func (r *recorder) ProjectileHitBoss(_, _ ecs.Entity) bool   { return r.hit("projectile_boss") }
func (r *recorder) BossContact(_, _ ecs.Entity) bool         { return r.hit("boss") }

func setup(t *testing.T) (*tuning.GameplaySpec, *ecs.World, ecs.Entity, *recorder, *Space) {
	t.Helper()
	spec, err := tuning.LoadGameplay()
	if err != nil {
		t.Fatalf("load gameplay: %v", err)
	}
	w := ecs.NewWorld(ecs.DefaultDtMs, &event.Queue{})
	player, err := entity.NewPlayer(w, spec.Player)
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	rec := newRecorder()
	return spec, w, player, rec, NewSpace(spec, rec)
}

func TestGravityAndFlap(t *testing.T) {
	spec, w, player, _, space := setup(t)
	tr, _ := ecs.Get(w, player, component.TransformComponent)

	for i := 0; i < 10; i++ {
		space.Update(w)
	}
	if tr.Y <= spec.Player.StartY {
		t.Fatalf("player should fall, y=%v", tr.Y)
	}
	if tr.X != spec.Player.X {
		t.Fatalf("player drifted horizontally: %v", tr.X)
	}

	before := tr.Y
	space.Flap(w, spec.Player.FlapVelocity)
	space.Update(w)
	if tr.Y >= before {
		t.Fatalf("flap should lift the player, %v -> %v", before, tr.Y)
	}

	for i := 0; i < 300; i++ {
		space.Update(w)
	}
	v, _ := ecs.Get(w, player, component.VelocityComponent)
	if v.Y > spec.Player.MaxFallSpeed+1e-9 {
		t.Fatalf("fall speed %v exceeds cap", v.Y)
	}
}

func TestOverlapsDispatch(t *testing.T) {
	cases := []struct {
		name  string
		place func(w *ecs.World, x, y float64) error
		call  string
	}{
		{name: "token", call: "token", place: func(w *ecs.World, x, y float64) error {
			_, err := entity.NewToken(w, entity.TokenParams{X: x, Y: y, Radius: 14})
			return err
		}},
		{name: "power up", call: "power_up", place: func(w *ecs.World, x, y float64) error {
			_, err := entity.NewPowerUp(w, entity.PowerUpParams{X: x, Y: y, Radius: 20, Kind: component.PowerUpHat})
			return err
		}},
		{name: "enemy", call: "enemy", place: func(w *ecs.World, x, y float64) error {
			_, err := entity.NewEnemy(w, entity.EnemyParams{X: x, Y: y, Radius: 16})
			return err
		}},
		{name: "pipe above the gap", call: "obstacle", place: func(w *ecs.World, x, y float64) error {
			_, err := entity.NewObstaclePair(w, entity.ObstacleParams{X: x, GapTop: y + 40, GapSize: 200, Width: 90})
			return err
		}},
		{name: "boss projectile", call: "projectile_player", place: func(w *ecs.World, x, y float64) error {
			_, err := entity.NewProjectile(w, entity.ProjectileParams{X: x, Y: y, Radius: 8, Owner: component.OwnerBoss, LifetimeMs: 1000})
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, w, player, rec, space := setup(t)
			tr, _ := ecs.Get(w, player, component.TransformComponent)
			if err := tc.place(w, tr.X, tr.Y); err != nil {
				t.Fatalf("place: %v", err)
			}
			space.Update(w)
			if rec.calls[tc.call] != 1 {
				t.Fatalf("expected one %s call, got %v", tc.call, rec.calls)
			}
			space.Update(w)
			if rec.calls[tc.call] != 2 {
				t.Fatalf("a lasting overlap should be reported every step, got %v", rec.calls)
			}
		})
	}
}

func TestGapIsClear(t *testing.T) {
	_, w, player, rec, space := setup(t)
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	if _, err := entity.NewObstaclePair(w, entity.ObstacleParams{X: tr.X, GapTop: tr.Y - 100, GapSize: 200, Width: 90}); err != nil {
		t.Fatalf("obstacle: %v", err)
	}
	space.Update(w)
	if len(rec.calls) != 0 {
		t.Fatalf("player inside the gap should not touch the pipes: %v", rec.calls)
	}
}

func TestDestroyedEntitiesLeaveSpace(t *testing.T) {
	_, w, player, rec, space := setup(t)
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	tok, _ := entity.NewToken(w, entity.TokenParams{X: tr.X + 400, Y: tr.Y, Radius: 14})
	space.Update(w)
	if len(space.entities) != 2 {
		t.Fatalf("expected player and token bodies, got %d", len(space.entities))
	}
	w.DestroyEntity(tok)
	space.Update(w)
	if len(space.entities) != 1 {
		t.Fatalf("destroyed token body not removed")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("unexpected contacts %v", rec.calls)
	}
}

func TestMissileHitsBoss(t *testing.T) {
	_, w, _, rec, space := setup(t)
	st := &component.BossState{Name: "test", Width: 160, Height: 200}
	if _, err := entity.NewBoss(w, st, &component.Transform{X: 1000, Y: 300}); err != nil {
		t.Fatalf("boss: %v", err)
	}
	if _, err := entity.NewProjectile(w, entity.ProjectileParams{X: 1000, Y: 300, Radius: 8, Owner: component.OwnerPlayer, LifetimeMs: 1000}); err != nil {
		t.Fatalf("missile: %v", err)
	}
	if _, err := entity.NewProjectile(w, entity.ProjectileParams{X: 990, Y: 300, Radius: 8, Owner: component.OwnerBoss, LifetimeMs: 1000}); err != nil {
		t.Fatalf("laser: %v", err)
	}
	space.Update(w)
	if rec.calls["projectile_boss"] != 1 {
		t.Fatalf("missile should hit the boss, got %v", rec.calls)
	}
	if rec.calls["projectile_player"] != 0 || rec.calls["boss"] != 0 {
		t.Fatalf("boss shots must not hit the boss: %v", rec.calls)
	}
}

func TestRejectedContactIsOfferedAgain(t *testing.T) {
	_, w, player, rec, space := setup(t)
	tr, _ := ecs.Get(w, player, component.TransformComponent)
	if _, err := entity.NewObstaclePair(w, entity.ObstacleParams{X: tr.X, GapTop: tr.Y + 40, GapSize: 200, Width: 90}); err != nil {
		t.Fatalf("obstacle: %v", err)
	}

	rec.accept = false
	for i := 0; i < 3; i++ {
		space.Update(w)
	}
	if rec.calls["obstacle"] != 3 {
		t.Fatalf("rejected overlap should be reported each step, got %v", rec.calls)
	}

	rec.accept = true
	space.Update(w)
	if rec.calls["obstacle"] != 4 {
		t.Fatalf("overlap should still be reported once accepted, got %v", rec.calls)
	}
	if v, _ := ecs.Get(w, player, component.VelocityComponent); v.X != 0 {
		t.Fatalf("contacts must never be solved, vx=%v", v.X)
	}
}
