package boss

import (
	"fmt"
	"math"

	"github.com/milk9111/skyflap/tuning"
)

// Shot is one projectile requested by an attack routine.
type Shot struct {
	X, Y       float64
	VX, VY     float64
	Kind       string
	Radius     float64
	LifetimeMs float64
	Damage     int
	Tint       uint32
}

// FireContext is what a routine sees when the cooldown elapses.
type FireContext struct {
	BossX, BossY     float64
	PlayerX, PlayerY float64
	Phase            int
	Health           int
	Tint             uint32
	Emit             func(Shot)
}

// Routine is one phase's attack.
type Routine interface {
	Fire(ctx FireContext) error
}

// patternRoutine fires one shot per target offset and per angle offset
// from a fixed origin relative to the boss center.
type patternRoutine struct {
	origin        tuning.Offset
	kind          string
	projectile    tuning.ProjectileSpec
	targetOffsets []float64
	angleOffsets  []float64
}

func newPatternRoutine(spec tuning.RoutineSpec, projectiles map[string]tuning.ProjectileSpec) (*patternRoutine, error) {
	proj, ok := projectiles[spec.Projectile]
	if !ok {
		return nil, fmt.Errorf("boss: unknown projectile %q", spec.Projectile)
	}
	r := &patternRoutine{
		origin:        spec.Origin,
		kind:          spec.Projectile,
		projectile:    proj,
		targetOffsets: []float64{0},
		angleOffsets:  []float64{0},
	}
	switch spec.Kind {
	case "spread":
		if len(spec.TargetOffsets) > 0 {
			r.targetOffsets = spec.TargetOffsets
		}
	case "twin":
		if len(spec.AngleOffsets) > 0 {
			r.angleOffsets = spec.AngleOffsets
		}
	}
	return r, nil
}

func (r *patternRoutine) Fire(ctx FireContext) error {
	ox := ctx.BossX + r.origin.X
	oy := ctx.BossY + r.origin.Y
	for _, dy := range r.targetOffsets {
		for _, angle := range r.angleOffsets {
			ctx.Emit(aimShot(r.kind, r.projectile, ox, oy, ctx.PlayerX, ctx.PlayerY+dy, angle, ctx.Tint))
		}
	}
	return nil
}

// aimShot points a projectile leftward at the target. The vertical slope is
// capped by the projectile's slope so shots stay dodgeable, then rotated by angle.
func aimShot(kind string, proj tuning.ProjectileSpec, ox, oy, tx, ty, angle float64, tint uint32) Shot {
	dx := ox - tx
	if dx < 1 {
		dx = 1
	}
	slope := (ty - oy) / dx
	if slope > proj.Slope {
		slope = proj.Slope
	}
	if slope < -proj.Slope {
		slope = -proj.Slope
	}
	dirX, dirY := -1.0, slope
	n := math.Hypot(dirX, dirY)
	dirX, dirY = dirX/n, dirY/n
	if angle != 0 {
		sin, cos := math.Sincos(angle)
		dirX, dirY = dirX*cos-dirY*sin, dirX*sin+dirY*cos
	}
	return Shot{
		X:          ox,
		Y:          oy,
		VX:         dirX * proj.Speed,
		VY:         dirY * proj.Speed,
		Kind:       kind,
		Radius:     proj.Radius,
		LifetimeMs: proj.LifetimeMs,
		Damage:     proj.Damage,
		Tint:       tint,
	}
}
