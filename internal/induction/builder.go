package induction

import (
	"context"
	"fmt"

	"github.com/aretw0/locus/pkg/domain"
)

// Update feeds one object's action subsequence into the machine.
//
// Each unambiguous step registers the Before and After transitions of the
// object's slot and records Before -slot-> After. The After state of a step
// and the Before state of the next step describe the same moment of the
// object and are unified. An ambiguous step (object used in several slots)
// is skipped and breaks the chain.
func (m *Automaton) Update(trace []domain.Occurrence) error {
	var prev domain.Transition
	chained := false
	for _, occ := range trace {
		if occ.Ambiguous() {
			chained = false
			continue
		}
		op, pos := occ.Action.Operator, occ.Position
		slot, ok := m.catalog.Slot(op, pos)
		if !ok {
			return fmt.Errorf("%w: %s cannot take a %s at parameter %d", domain.ErrInvalidTrace, op, m.Type(), pos)
		}
		before := domain.Transition{Operator: op, Position: pos, Phase: domain.Before}
		after := before.Opposite()

		from, err := m.Register(before)
		if err != nil {
			return err
		}
		to, err := m.Register(after)
		if err != nil {
			return err
		}
		if err := m.SetNext(from, slot, to); err != nil {
			return err
		}

		if chained {
			p, _ := m.StateOf(prev)
			b, _ := m.StateOf(before)
			if err := m.Unify(p, b); err != nil {
				return err
			}
		}
		prev = after
		chained = true
	}
	return nil
}

// traceFunc receives the action subsequence of one object in one plan.
type traceFunc func(object string, trace []domain.Occurrence) error

// eachTrace visits every object trace of typ, polling ctx per world and per plan.
func eachTrace(ctx context.Context, corpus *domain.Corpus, typ string, fn traceFunc) error {
	for _, w := range corpus.Worlds {
		if err := ctx.Err(); err != nil {
			return domain.Canceled(err)
		}
		objects := w.ObjectsOfType(typ)
		if len(objects) == 0 {
			continue
		}
		for _, p := range w.Plans {
			if err := ctx.Err(); err != nil {
				return domain.Canceled(err)
			}
			for _, obj := range objects {
				trace := p.Occurrences(obj.Name)
				if len(trace) == 0 {
					continue
				}
				if err := fn(obj.Name, trace); err != nil {
					return fmt.Errorf("world %q object %q: %w", w.Name, obj.Name, err)
				}
			}
		}
	}
	return nil
}

// BuildOption configures Build.
type BuildOption func(*Automaton)

// WithUnifyObserver registers a callback invoked after every state merge.
func WithUnifyObserver(fn func(kept, merged, states int)) BuildOption {
	return func(m *Automaton) {
		m.observer = fn
	}
}

// Build runs the automaton builder for one type over the whole corpus.
func Build(ctx context.Context, d *domain.Domain, corpus *domain.Corpus, typ string, opts ...BuildOption) (*Automaton, error) {
	catalog, err := NewCatalog(d, typ)
	if err != nil {
		return nil, err
	}
	m := NewAutomaton(catalog)
	for _, opt := range opts {
		opt(m)
	}
	err = eachTrace(ctx, corpus, typ, func(_ string, trace []domain.Occurrence) error {
		return m.Update(trace)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
