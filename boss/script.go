package boss

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/skyflap/tuning"
)

var ErrScript = errors.New("boss: script")

// ScriptRoutine runs a tengo attack script. The script sees player_x,
// player_y, boss_x, boss_y, phase and health, and fires through
// boss.fire(kind, offset_x, offset_y, target_y, angle).
type ScriptRoutine struct {
	name        string
	compiled    *tengo.Compiled
	projectiles map[string]tuning.ProjectileSpec
}

// CompileScript compiles src once; every Fire reruns the compiled program.
func CompileScript(name string, src []byte, projectiles map[string]tuning.ProjectileSpec) (*ScriptRoutine, error) {
	script := tengo.NewScript(src)
	_ = script.Add("boss", map[string]any{})
	for _, v := range []string{"player_x", "player_y", "boss_x", "boss_y"} {
		_ = script.Add(v, 0.0)
	}
	_ = script.Add("phase", 0)
	_ = script.Add("health", 0)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: compile %s: %v", ErrScript, name, err)
	}
	return &ScriptRoutine{name: name, compiled: compiled, projectiles: projectiles}, nil
}

// LoadScript compiles a script from the tuning pack.
func LoadScript(name string, projectiles map[string]tuning.ProjectileSpec) (*ScriptRoutine, error) {
	src, err := tuning.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("%w: load %s: %v", ErrScript, name, err)
	}
	return CompileScript(name, src, projectiles)
}

func (r *ScriptRoutine) Fire(ctx FireContext) error {
	var fireErr error
	engine := r.buildEngine(ctx, &fireErr)

	vars := []struct {
		name  string
		value any
	}{
		{"boss", engine},
		{"player_x", ctx.PlayerX},
		{"player_y", ctx.PlayerY},
		{"boss_x", ctx.BossX},
		{"boss_y", ctx.BossY},
		{"phase", ctx.Phase},
		{"health", ctx.Health},
	}
	for _, v := range vars {
		if err := r.compiled.Set(v.name, v.value); err != nil {
			return fmt.Errorf("%w: %s: set %s: %v", ErrScript, r.name, v.name, err)
		}
	}
	if err := r.compiled.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrScript, r.name, err)
	}
	return fireErr
}

func (r *ScriptRoutine) buildEngine(ctx FireContext, fireErr *error) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 5 {
			return nil, tengo.ErrWrongNumArguments
		}
		kind := objectAsString(args[0])
		proj, ok := r.projectiles[kind]
		if !ok {
			*fireErr = fmt.Errorf("%w: %s: unknown projectile %q", ErrScript, r.name, kind)
			return tengo.FalseValue, nil
		}
		nums := make([]float64, 4)
		for i := range nums {
			v, ok := objectAsFloat(args[i+1])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{
					Name:     fmt.Sprintf("argument %d", i+2),
					Expected: "int or float",
					Found:    args[i+1].TypeName(),
				}
			}
			nums[i] = v
		}
		ox := ctx.BossX + nums[0]
		oy := ctx.BossY + nums[1]
		ctx.Emit(aimShot(kind, proj, ox, oy, ctx.PlayerX, nums[2], nums[3], ctx.Tint))
		return tengo.TrueValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: ctx.BossX}, &tengo.Float{Value: ctx.BossY}}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case nil:
		return ""
	default:
		return v.String()
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}
