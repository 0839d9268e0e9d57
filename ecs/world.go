package ecs

import (
	"github.com/milk9111/skyflap/ecs/component"
	"github.com/milk9111/skyflap/event"
)

// DefaultDtMs is one 60Hz fixed step.
const DefaultDtMs = 1000.0 / 60.0

type componentStore interface {
	remove(e Entity)
}

// World owns entities, their component stores and the fixed tick length.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	dtMs     float64
	clockMs  float64
	events   *event.Queue
}

// NewWorld creates an empty world. Events are pushed to the given queue, which
// may outlive the world.
func NewWorld(dtMs float64, events *event.Queue) *World {
	if dtMs <= 0 {
		dtMs = DefaultDtMs
	}
	if events == nil {
		events = &event.Queue{}
	}
	return &World{
		stores: make(map[component.ComponentID]componentStore),
		dtMs:   dtMs,
		events: events,
	}
}

// Dt is the fixed tick length in milliseconds.
func (w *World) Dt() float64 {
	if w == nil {
		return 0
	}
	return w.dtMs
}

// Clock is the ticked world time in milliseconds.
func (w *World) Clock() float64 {
	if w == nil {
		return 0
	}
	return w.clockMs
}

// Advance moves the world clock forward by one tick.
func (w *World) Advance() {
	if w == nil {
		return
	}
	w.clockMs += w.dtMs
}

func (w *World) Events() *event.Queue {
	if w == nil {
		return nil
	}
	return w.events
}

func (w *World) Emit(evt event.Event) {
	if w == nil {
		return
	}
	w.events.Push(evt)
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) {
		out = append(out, e)
	})
	return out
}

// Count returns the number of live entities.
func (w *World) Count() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}
