package ecs

import (
	"errors"

	"github.com/milk9111/slide/ecs/component"
)

var (
	ErrNoEntity         = errors.New("ecs: no entity matches query")
	ErrMultipleEntities = errors.New("ecs: more than one entity matches query")
)

// Query returns live entities that have every listed kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
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
	// iterate smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}

	var out []Entity
	for _, e := range sets[smallest].Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		matched := true
		for i, s := range sets {
			if i != smallest && !s.Has(e) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, e)
		}
	}
	return out
}

// First returns any entity matching kinds.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Single returns the one entity matching kinds, or ErrNoEntity / ErrMultipleEntities.
func (w *World) Single(kinds ...component.Kind) (Entity, error) {
	ents := w.Query(kinds...)
	switch len(ents) {
	case 0:
		return 0, ErrNoEntity
	case 1:
		return ents[0], nil
	default:
		return 0, ErrMultipleEntities
	}
}
