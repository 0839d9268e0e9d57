package entity

import (
	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
)

type ObstacleParams struct {
	X       float64
	GapTop  float64
	GapSize float64
	Width   float64
	Kind    component.PipeKind
	Color   component.ColorState
	Speed   float64
}

func NewObstaclePair(w *ecs.World, p ObstacleParams) (ecs.Entity, error) {
	return build(w, "obstacle", func(e ecs.Entity) error {
		col := component.Collider{Shape: component.ColliderGapPair, Width: p.Width}
		if err := scrolling(w, e, p.X, p.GapTop+p.GapSize/2, p.Speed, 1, col); err != nil {
			return err
		}
		return add(w, e, component.ObstacleComponent, &component.ObstaclePair{
			GapTop:    p.GapTop,
			GapBottom: p.GapTop + p.GapSize,
			Width:     p.Width,
			Kind:      p.Kind,
			Color:     p.Color,
		})
	})
}
