package entity

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
)

type EnemyParams struct {
	X, Y      float64
	Radius    float64
	Speed     float64
	Formation component.Formation
	Behavior  component.EnemyBehavior
	BobPhase  float64
}

func NewEnemy(w *ecs.World, p EnemyParams) (ecs.Entity, error) {
	return build(w, "enemy", func(e ecs.Entity) error {
		col := component.Collider{Shape: component.ColliderCircle, Radius: p.Radius}
		if err := scrolling(w, e, p.X, p.Y, p.Speed, 1, col); err != nil {
			return err
		}
		return add(w, e, component.EnemyComponent, &component.Enemy{
			Formation: p.Formation,
			Behavior:  p.Behavior,
			BaseY:     p.Y,
			BobPhase:  p.BobPhase,
		})
	})
}
