package induction

import (
	"cmp"
	"context"
	"slices"

	"github.com/aretw0/locus/pkg/domain"
)

// Hypothesis claims that argument FromArg of the action ending in State (via
// From) equals argument ToArg of the action starting from State (via To),
// for the same object occurrence.
type Hypothesis struct {
	State   int
	From    domain.Transition
	FromArg int
	To      domain.Transition
	ToArg   int
}

// FromTag returns the argument position on the incoming transition.
func (h Hypothesis) FromTag() domain.Tag {
	return domain.Tag{Transition: h.From, Arg: h.FromArg}
}

// ToTag returns the argument position on the outgoing transition.
func (h Hypothesis) ToTag() domain.Tag {
	return domain.Tag{Transition: h.To, Arg: h.ToArg}
}

func compareHypotheses(a, b Hypothesis) int {
	if c := cmp.Compare(a.State, b.State); c != 0 {
		return c
	}
	if c := domain.CompareTags(a.FromTag(), b.FromTag()); c != 0 {
		return c
	}
	return domain.CompareTags(a.ToTag(), b.ToTag())
}

// pairKey identifies a consecutive pair of object slots in a trace.
type pairKey struct {
	fromOp  string
	fromPos int
	toOp    string
	toPos   int
}

// Hypotheses is the live hypothesis set of one machine, indexed by the
// consecutive slot pair that can falsify each hypothesis. Hypotheses are only
// ever removed.
type Hypotheses struct {
	machine   *Automaton
	byPair    map[pairKey]map[Hypothesis]struct{}
	live      int
	generated int
}

// Generate emits, for every state, every hypothesis linking an argument of
// an incoming action to an argument of an outgoing action with the same
// declared types. The object's own positions and pairs of the same slot are
// excluded. ctx is polled per state.
func Generate(ctx context.Context, m *Automaton) (*Hypotheses, error) {
	hs := &Hypotheses{
		machine: m,
		byPair:  make(map[pairKey]map[Hypothesis]struct{}),
	}
	for s := 0; s < m.StateCount(); s++ {
		if err := ctx.Err(); err != nil {
			return nil, domain.Canceled(err)
		}
		var ins, outs []domain.Transition
		for _, t := range m.Members(s) {
			if t.Phase == domain.After {
				ins = append(ins, t)
			} else {
				outs = append(outs, t)
			}
		}
		for _, in := range ins {
			inOp, _ := m.catalog.Operator(in.Operator)
			for _, out := range outs {
				// Pairs on one (operator, position) slot are skipped even when
				// the phases differ, so a single-slot machine gets none.
				if in.SameSlot(out) {
					continue
				}
				outOp, _ := m.catalog.Operator(out.Operator)
				for i, pi := range inOp.Parameters {
					if i == in.Position {
						continue
					}
					for j, pj := range outOp.Parameters {
						if j == out.Position || !pi.SameTypes(pj) {
							continue
						}
						hs.add(Hypothesis{State: s, From: in, FromArg: i, To: out, ToArg: j})
					}
				}
			}
		}
	}
	return hs, nil
}

func (hs *Hypotheses) add(h Hypothesis) {
	key := pairKey{fromOp: h.From.Operator, fromPos: h.From.Position, toOp: h.To.Operator, toPos: h.To.Position}
	set, ok := hs.byPair[key]
	if !ok {
		set = make(map[Hypothesis]struct{})
		hs.byPair[key] = set
	}
	if _, dup := set[h]; dup {
		return
	}
	set[h] = struct{}{}
	hs.live++
	hs.generated++
}

// Len returns the number of live hypotheses.
func (hs *Hypotheses) Len() int {
	return hs.live
}

// Generated returns the number of hypotheses created by Generate.
func (hs *Hypotheses) Generated() int {
	return hs.generated
}

// Contains reports whether h is still live.
func (hs *Hypotheses) Contains(h Hypothesis) bool {
	key := pairKey{fromOp: h.From.Operator, fromPos: h.From.Position, toOp: h.To.Operator, toPos: h.To.Position}
	_, ok := hs.byPair[key][h]
	return ok
}

// Test checks one object trace against the live hypotheses. For every pair
// of consecutive unambiguous steps, each hypothesis indexed by the pair's
// slots is discarded unless the two hypothesised arguments hold the same
// object. The falsified callback may be nil.
func (hs *Hypotheses) Test(trace []domain.Occurrence, falsified func(Hypothesis, domain.Action)) {
	for i := 1; i < len(trace); i++ {
		prev, cur := trace[i-1], trace[i]
		if prev.Ambiguous() || cur.Ambiguous() {
			continue
		}
		key := pairKey{
			fromOp: prev.Action.Operator, fromPos: prev.Position,
			toOp: cur.Action.Operator, toPos: cur.Position,
		}
		set := hs.byPair[key]
		for h := range set {
			if argAt(prev.Action, h.FromArg) == argAt(cur.Action, h.ToArg) {
				continue
			}
			delete(set, h)
			hs.live--
			if falsified != nil {
				falsified(h, cur.Action)
			}
		}
	}
}

func argAt(a domain.Action, i int) string {
	if i < 0 || i >= len(a.Args) {
		return ""
	}
	return a.Args[i]
}

// Survivors returns the live hypotheses of a state, sorted.
func (hs *Hypotheses) Survivors(state int) []Hypothesis {
	var out []Hypothesis
	for _, set := range hs.byPair {
		for h := range set {
			if h.State == state {
				out = append(out, h)
			}
		}
	}
	slices.SortFunc(out, compareHypotheses)
	return out
}

// TestCorpus runs Test over every trace of the machine's type.
func (hs *Hypotheses) TestCorpus(ctx context.Context, corpus *domain.Corpus, falsified func(Hypothesis, domain.Action)) error {
	return eachTrace(ctx, corpus, hs.machine.Type(), func(_ string, trace []domain.Occurrence) error {
		hs.Test(trace, falsified)
		return nil
	})
}
