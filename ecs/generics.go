package ecs

import "github.com/milk9111/skyflap/ecs/component"

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *SparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if s, ok := w.stores[kind.ID()]; ok {
		return s.(*SparseSet[T])
	}
	if !create {
		return nil
	}
	s := newSparseSet[T]()
	w.stores[kind.ID()] = s
	return s
}

// Add attaches value to e, replacing any existing component of that kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return storeFor(w, kind, false).Remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return storeFor(w, kind, false).Has(e)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	v := storeFor(w, kind, false).Get(e)
	return v, v != nil
}

// Count returns the number of entities carrying kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	return storeFor(w, kind, false).Len()
}

// First returns any entity carrying kind. Used for singletons like the player.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	s := storeFor(w, kind, false)
	if s.Len() == 0 {
		return 0, nil, false
	}
	e := s.denseEntities[0]
	return e, s.denseValues[0], true
}

// ForEach visits every entity carrying kind. fn may destroy entities; visits
// to entities removed earlier in the same pass are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeFor(w, kind, false)
	if s.Len() == 0 {
		return
	}
	for _, e := range s.Entities() {
		if v := s.Get(e); v != nil {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities carrying both kinds, iterating the smaller store.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa.Len() == 0 || sb.Len() == 0 {
		return
	}
	var candidates []Entity
	if sa.Len() <= sb.Len() {
		candidates = sa.Entities()
	} else {
		candidates = sb.Entities()
	}
	for _, e := range candidates {
		a := sa.Get(e)
		b := sb.Get(e)
		if a != nil && b != nil {
			fn(e, a, b)
		}
	}
}
