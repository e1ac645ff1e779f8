package synthesis

import (
	"fmt"

	"github.com/aretw0/locus/pkg/domain"
)

// ObjectParam is the name of the typed object argument of every state predicate.
const ObjectParam = "?x"

// Synthesizer turns an induced model into state predicates and rewrites the
// operators of the domain to require and produce them.
type Synthesizer struct {
	replace bool
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithReplacePredicates drops the existing predicate table and operator
// conditions before emitting the state predicates.
func WithReplacePredicates(replace bool) Option {
	return func(s *Synthesizer) {
		s.replace = replace
	}
}

// New creates a synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PredicateName returns the predicate of a (type, state) pair.
func PredicateName(typ string, state int) string {
	return fmt.Sprintf("%s_state%d", typ, state)
}

type rewrite struct {
	pre []*domain.Expr
	eff []*domain.Expr
}

// Apply mutates d in place. All rewrites are computed before anything is
// committed, so d is left untouched when an error is returned.
func (s *Synthesizer) Apply(d *domain.Domain, model *domain.Model) error {
	var predicates []domain.Predicate
	rewrites := make([]rewrite, len(d.Operators))
	if !s.replace {
		predicates = append(predicates, d.Predicates...)
		for i, op := range d.Operators {
			if err := op.Precondition.Check(); err != nil {
				return fmt.Errorf("operator %q precondition: %w", op.Name, err)
			}
			if err := domain.CheckEffect(op.Effect); err != nil {
				return fmt.Errorf("operator %q effect: %w", op.Name, err)
			}
			rewrites[i] = rewrite{
				pre: op.Precondition.Clone().Conjuncts(),
				eff: op.Effect.Clone().Conjuncts(),
			}
		}
	}

	names := make([][]string, len(model.Machines))
	for mi, m := range model.Machines {
		names[mi] = make([]string, len(m.States))
		for _, st := range m.States {
			name := PredicateName(m.Type, st.ID)
			if _, exists := lookup(predicates, name); exists {
				return fmt.Errorf("%w: predicate %q is already declared", domain.ErrInvalidDomain, name)
			}
			params := []domain.Parameter{{Name: ObjectParam, Types: []string{m.Type}}}
			for k, info := range st.Parameters {
				params = append(params, domain.Parameter{
					Name:  fmt.Sprintf("?v%d", k+1),
					Types: append([]string(nil), info.Types...),
				})
			}
			predicates = append(predicates, domain.Predicate{Name: name, Parameters: params})
			names[mi][st.ID] = name
		}
	}

	for oi, op := range d.Operators {
		for pos, param := range op.Parameters {
			owner := ""
			for mi := range model.Machines {
				m := &model.Machines[mi]
				if !d.Accepts(param, m.Type) {
					continue
				}
				if owner != "" {
					return fmt.Errorf("%w: operator %q parameter %d is filled by both %s and %s", domain.ErrUnsupported, op.Name, pos, owner, m.Type)
				}
				owner = m.Type
				before := domain.Transition{Operator: op.Name, Position: pos, Phase: domain.Before}
				after := before.Opposite()
				bs, okB := m.StateOf(before)
				as, okA := m.StateOf(after)
				if !okB || !okA {
					return &domain.CoverageError{Type: m.Type, Operator: op.Name, Index: pos}
				}
				pre, err := instance(op, m, bs, before, names[mi][bs])
				if err != nil {
					return err
				}
				rewrites[oi].pre = append(rewrites[oi].pre, pre)
				if bs == as {
					continue
				}
				post, err := instance(op, m, as, after, names[mi][as])
				if err != nil {
					return err
				}
				rewrites[oi].eff = append(rewrites[oi].eff, domain.Not(pre.Clone()), post)
			}
		}
	}

	d.Predicates = predicates
	for oi, op := range d.Operators {
		op.Precondition = domain.Conjoin(rewrites[oi].pre)
		op.Effect = domain.Conjoin(rewrites[oi].eff)
	}
	for mi := range model.Machines {
		for si := range model.Machines[mi].States {
			st := &model.Machines[mi].States[si]
			st.Predicate = names[mi][st.ID]
		}
	}
	return nil
}

// instance builds the atom of a state predicate as seen from one transition
// of op: the object slot followed by the slot carrying each hidden parameter.
func instance(op *domain.Operator, m *domain.Machine, state int, t domain.Transition, name string) (*domain.Expr, error) {
	args := []string{op.Parameters[t.Position].Name}
	for k, info := range m.States[state].Parameters {
		arg, ok := info.Binding(t)
		if !ok || arg < 0 || arg >= len(op.Parameters) {
			return nil, fmt.Errorf("%w: parameter %d of %s has no binding for %s", domain.ErrInconsistent, k, name, t)
		}
		args = append(args, op.Parameters[arg].Name)
	}
	return domain.Atom(name, args...), nil
}

func lookup(preds []domain.Predicate, name string) (domain.Predicate, bool) {
	for _, p := range preds {
		if p.Name == name {
			return p, true
		}
	}
	return domain.Predicate{}, false
}
