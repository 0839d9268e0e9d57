package entity

import (
	"fmt"

	"github.com/milk9111/skyflap/ecs"
	"github.com/milk9111/skyflap/ecs/component"
)

// build creates an entity and runs attach on it, destroying the entity again
// if any component fails to attach.
func build(w *ecs.World, what string, attach func(e ecs.Entity) error) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("%s: nil world", what)
	}
	e := w.CreateEntity()
	if err := attach(e); err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("%s: %w", what, err)
	}
	return e, nil
}

func add[T any](w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) error {
	if err := ecs.Add(w, e, kind, v); err != nil {
		return fmt.Errorf("add %s: %w", kind.Name(), err)
	}
	return nil
}

// scrolling attaches the components every stage-bound entity shares.
func scrolling(w *ecs.World, e ecs.Entity, x, y, speed, factor float64, col component.Collider) error {
	if err := add(w, e, component.TransformComponent, &component.Transform{X: x, Y: y}); err != nil {
		return err
	}
	if err := add(w, e, component.VelocityComponent, &component.Velocity{X: -speed * factor}); err != nil {
		return err
	}
	if err := add(w, e, component.ScrollComponent, &component.Scroll{Factor: factor}); err != nil {
		return err
	}
	return add(w, e, component.ColliderComponent, &col)
}
