package induction

import (
	"fmt"
	"slices"

	"github.com/aretw0/locus/pkg/domain"
)

// unknown marks an undefined entry of the transition function.
const unknown = -1

// Automaton is the mutable state machine of one object type.
//
// States are dense integer handles in [0, StateCount). Every registered
// transition belongs to exactly one state. The transition function is a
// dense matrix of capacity x SlotCount entries, where capacity is the number
// of catalog transitions (each transition creates at most one state).
// Merging keeps ids dense by moving the last state into the freed id.
type Automaton struct {
	catalog *Catalog
	count   int
	members [][]domain.Transition
	stateOf map[domain.Transition]int
	table   []int
	stride  int

	// observer is notified after every merge.
	observer func(kept, merged, states int)
}

// NewAutomaton creates an empty machine for the catalog's type.
func NewAutomaton(c *Catalog) *Automaton {
	capacity := len(c.Transitions())
	stride := c.SlotCount()
	table := make([]int, capacity*stride)
	for i := range table {
		table[i] = unknown
	}
	return &Automaton{
		catalog: c,
		members: make([][]domain.Transition, 0, capacity),
		stateOf: make(map[domain.Transition]int, capacity),
		table:   table,
		stride:  stride,
	}
}

// Catalog returns the catalog the machine was built from.
func (m *Automaton) Catalog() *Catalog {
	return m.catalog
}

// Type returns the object type of the machine.
func (m *Automaton) Type() string {
	return m.catalog.Type()
}

// StateCount returns the number of live states.
func (m *Automaton) StateCount() int {
	return m.count
}

// StateOf returns the current state of a registered transition.
func (m *Automaton) StateOf(t domain.Transition) (int, bool) {
	s, ok := m.stateOf[t]
	return s, ok
}

// Members returns the transitions of a state, sorted.
func (m *Automaton) Members(state int) []domain.Transition {
	if !m.valid(state) {
		return nil
	}
	out := slices.Clone(m.members[state])
	slices.SortFunc(out, domain.CompareTransitions)
	return out
}

// Next returns the target of (state, slot) if defined.
func (m *Automaton) Next(state, slot int) (int, bool) {
	if !m.valid(state) || slot < 0 || slot >= m.stride {
		return 0, false
	}
	t := m.row(state)[slot]
	return t, t != unknown
}

// Register returns the state of t, allocating a fresh singleton state if t
// has not been seen yet. Registering twice is a no-op.
func (m *Automaton) Register(t domain.Transition) (int, error) {
	if s, ok := m.stateOf[t]; ok {
		return s, nil
	}
	if _, ok := m.catalog.Slot(t.Operator, t.Position); !ok {
		return 0, fmt.Errorf("%w: %s is not a %s transition", domain.ErrInvalidTrace, t, m.Type())
	}
	if m.count >= cap(m.members) {
		return 0, fmt.Errorf("%w: %s machine is full (%d states)", domain.ErrInconsistent, m.Type(), m.count)
	}
	id := m.count
	m.members = append(m.members, []domain.Transition{t})
	m.stateOf[t] = id
	m.count++
	return id, nil
}

// SetNext records that from moves to to through slot. A different target
// already recorded for (from, slot) is unified with to.
func (m *Automaton) SetNext(from, slot, to int) error {
	if !m.valid(from) || !m.valid(to) || slot < 0 || slot >= m.stride {
		return fmt.Errorf("%w: setNext(%d, %d, %d) with %d states", domain.ErrInconsistent, from, slot, to, m.count)
	}
	row := m.row(from)
	switch cur := row[slot]; {
	case cur == unknown:
		row[slot] = to
		return nil
	case cur == to:
		return nil
	default:
		return m.Unify(cur, to)
	}
}

// Unify merges state b into state a and propagates the consequences until
// the transition function is deterministic again. Both ids are invalidated
// by the call; resolve states again through StateOf afterwards.
func (m *Automaton) Unify(a, b int) error {
	queue := [][2]int{{a, b}}
	for len(queue) > 0 {
		a, b := queue[0][0], queue[0][1]
		queue = queue[1:]
		if a == b {
			continue
		}
		if !m.valid(a) || !m.valid(b) {
			return fmt.Errorf("%w: unify(%d, %d) on a %d-state %s machine", domain.ErrInconsistent, a, b, m.count, m.Type())
		}
		if m.count <= 1 {
			return fmt.Errorf("%w: cannot shrink the one-state %s machine", domain.ErrInconsistent, m.Type())
		}

		for _, t := range m.members[b] {
			m.stateOf[t] = a
		}
		m.members[a] = append(m.members[a], m.members[b]...)

		ra, rb := m.row(a), m.row(b)
		for s, tb := range rb {
			switch ta := ra[s]; {
			case tb == unknown:
			case ta == unknown:
				ra[s] = tb
			case ta != tb:
				queue = append(queue, [2]int{ta, tb})
			}
		}

		m.retarget(b, a, queue)

		last := m.count - 1
		if b != last {
			copy(m.row(b), m.row(last))
			m.members[b] = m.members[last]
			for _, t := range m.members[b] {
				m.stateOf[t] = b
			}
			m.retarget(last, b, queue)
			if a == last {
				a = b
			}
		}
		for i := range m.row(last) {
			m.row(last)[i] = unknown
		}
		m.members[last] = nil
		m.members = m.members[:last]
		m.count--

		if m.observer != nil {
			m.observer(a, b, m.count)
		}
	}
	return nil
}

// Verify checks the density and membership invariants.
func (m *Automaton) Verify() error {
	if len(m.members) != m.count {
		return fmt.Errorf("%w: %d member lists for %d states", domain.ErrInconsistent, len(m.members), m.count)
	}
	seen := 0
	for s, list := range m.members {
		if len(list) == 0 {
			return fmt.Errorf("%w: state %d is empty", domain.ErrInconsistent, s)
		}
		for _, t := range list {
			if got, ok := m.stateOf[t]; !ok || got != s {
				return fmt.Errorf("%w: %s listed in state %d but mapped to %d", domain.ErrInconsistent, t, s, got)
			}
		}
		seen += len(list)
	}
	if seen != len(m.stateOf) {
		return fmt.Errorf("%w: %d transitions mapped, %d listed", domain.ErrInconsistent, len(m.stateOf), seen)
	}
	for i, v := range m.table {
		if v == unknown {
			continue
		}
		if i >= m.count*m.stride || !m.valid(v) {
			return fmt.Errorf("%w: stale transition function entry %d -> %d", domain.ErrInconsistent, i, v)
		}
	}
	return nil
}

// Edges returns every defined entry of the transition function.
func (m *Automaton) Edges() []domain.Edge {
	var out []domain.Edge
	for s := 0; s < m.count; s++ {
		for slot, t := range m.row(s) {
			if t == unknown {
				continue
			}
			op, pos := m.catalog.SlotAt(slot)
			out = append(out, domain.Edge{From: s, To: t, Operator: op, Position: pos})
		}
	}
	return out
}

func (m *Automaton) valid(s int) bool {
	return s >= 0 && s < m.count
}

func (m *Automaton) row(s int) []int {
	return m.table[s*m.stride : (s+1)*m.stride]
}

// retarget rewrites every reference to from, in the live part of the matrix
// and in the pending queue, to point at to.
func (m *Automaton) retarget(from, to int, queue [][2]int) {
	for i, v := range m.table[:m.count*m.stride] {
		if v == from {
			m.table[i] = to
		}
	}
	for i := range queue {
		for k := range queue[i] {
			if queue[i][k] == from {
				queue[i][k] = to
			}
		}
	}
}
