package ecs

import "github.com/milk9111/gungame/ecs/component"

// Kind is any component kind, independent of its value type.
type Kind interface {
	ID() component.ComponentID
}

// Query returns the live entities that have every listed kind. The smallest
// store is iterated.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}

	var out []Entity
	for _, e := range smallest.Entities() {
		if !w.IsAlive(e) {
			continue
		}
		match := true
		for _, s := range sets {
			if s != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}

// First returns one live entity carrying kind.
func (w *World) First(kind Kind) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	for _, e := range s.Entities() {
		if w.IsAlive(e) {
			return e, true
		}
	}
	return 0, false
}
