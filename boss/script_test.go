package boss

import (
	"errors"
	"testing"
)

func TestCompileScriptFires(t *testing.T) {
	src := []byte(`
offsets := [-60, 0, 60]
for i := 0; i < len(offsets); i++ {
	boss.fire("laser", -50, 0, player_y + offsets[i], 0)
}
boss.fire("fireball", -60, 30, player_y, 0)
`)
	r, err := CompileScript("finale", src, testProjectiles())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	var shots []Shot
	ctx := FireContext{BossX: 1050, BossY: 360, PlayerX: 220, PlayerY: 300, Phase: 3, Health: 80, Emit: func(s Shot) { shots = append(shots, s) }}
	if err := r.Fire(ctx); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if len(shots) != 4 {
		t.Fatalf("expected 4 shots, got %d", len(shots))
	}
	if shots[3].Kind != "fireball" || shots[3].X != 1050-60 || shots[3].Y != 390 {
		t.Fatalf("unexpected fireball shot: %+v", shots[3])
	}

	shots = nil
	if err := r.Fire(ctx); err != nil || len(shots) != 4 {
		t.Fatalf("compiled script should rerun, err=%v shots=%d", err, len(shots))
	}
}

func TestScriptErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		compile bool
	}{
		{name: "syntax", src: `boss.fire(`, compile: true},
		{name: "unknown projectile", src: `boss.fire("plasma", 0, 0, player_y, 0)`},
		{name: "bad argument", src: `boss.fire("laser", "left", 0, player_y, 0)`},
		{name: "wrong arity", src: `boss.fire("laser")`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := CompileScript(tc.name, []byte(tc.src), testProjectiles())
			if tc.compile {
				if !errors.Is(err, ErrScript) {
					t.Fatalf("expected ErrScript from compile, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			err = r.Fire(FireContext{BossX: 1000, BossY: 300, PlayerX: 200, PlayerY: 300, Emit: func(Shot) {}})
			if !errors.Is(err, ErrScript) {
				t.Fatalf("expected ErrScript, got %v", err)
			}
		})
	}
}

func TestLoadEmbeddedScript(t *testing.T) {
	r, err := LoadScript("ember_finale.tengo", testProjectiles())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	n := 0
	if err := r.Fire(FireContext{BossX: 1050, BossY: 360, PlayerX: 220, PlayerY: 360, Emit: func(Shot) { n++ }}); err != nil {
		t.Fatalf("fire: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 shots from the finale, got %d", n)
	}
}

func TestMissingScriptFallsBack(t *testing.T) {
	spec := testSpec()
	spec.Phases[2].Routine.Kind = "script"
	spec.Phases[2].Routine.Script = "does_not_exist.tengo"
	e := New(spec, testProjectiles(), nil)
	if e.routines[2] == nil {
		t.Fatalf("missing script should fall back to an aimed routine")
	}
}
