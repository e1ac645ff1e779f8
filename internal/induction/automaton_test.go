package induction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/locus/pkg/domain"
)

func TestBuild_MoveChaining(t *testing.T) {
	d, c := blocksFixture(t)

	m, err := Build(context.Background(), d, c, "block")
	require.NoError(t, err)
	require.NoError(t, m.Verify())

	// a: (move a b) at 0 then (move c a) at 1, so move.0.end and move.1.start meet.
	assert.Equal(t, 3, m.StateCount())
	end0, _ := m.StateOf(tr("move", 0, domain.After))
	start1, _ := m.StateOf(tr("move", 1, domain.Before))
	assert.Equal(t, end0, start1)

	start0, _ := m.StateOf(tr("move", 0, domain.Before))
	end1, _ := m.StateOf(tr("move", 1, domain.After))
	assert.NotEqual(t, start0, end0)
	assert.NotEqual(t, end1, start1)

	next, ok := m.Next(start0, 0)
	require.True(t, ok)
	assert.Equal(t, end0, next)
	next, ok = m.Next(start1, 1)
	require.True(t, ok)
	assert.Equal(t, end1, next)

	assert.ElementsMatch(t, []domain.Edge{
		{From: start0, To: end0, Operator: "move", Position: 0},
		{From: start1, To: end1, Operator: "move", Position: 1},
	}, m.Edges())
}

func TestBuild_Logistics(t *testing.T) {
	d, c := logisticsFixture(t)
	ctx := context.Background()

	tests := []struct {
		typ    string
		states int
		joined [][2]domain.Transition
	}{
		{
			typ:    "package",
			states: 2,
			joined: [][2]domain.Transition{
				{tr("load", 0, domain.After), tr("unload", 0, domain.Before)},
				{tr("unload", 0, domain.After), tr("load", 0, domain.Before)},
			},
		},
		{
			typ:    "truck",
			states: 3,
			joined: [][2]domain.Transition{
				{tr("load", 1, domain.After), tr("unload", 1, domain.Before)},
			},
		},
		{
			typ:    "location",
			states: 3,
			joined: [][2]domain.Transition{
				{tr("unload", 2, domain.After), tr("load", 2, domain.Before)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			m, err := Build(ctx, d, c, tt.typ)
			require.NoError(t, err)
			require.NoError(t, m.Verify())
			assert.Equal(t, tt.states, m.StateCount())
			for _, pair := range tt.joined {
				a, okA := m.StateOf(pair[0])
				b, okB := m.StateOf(pair[1])
				require.True(t, okA && okB)
				assert.Equal(t, a, b, "%s and %s should share a state", pair[0], pair[1])
			}
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	d, c := logisticsFixture(t)
	ctx := context.Background()

	first, err := Build(ctx, d, c, "package")
	require.NoError(t, err)
	second, err := Build(ctx, d, c, "package")
	require.NoError(t, err)

	assert.Equal(t, Snapshot(first, nil), Snapshot(second, nil))
}

func TestUpdate_Idempotent(t *testing.T) {
	d, c := logisticsFixture(t)
	catalog, err := NewCatalog(d, "package")
	require.NoError(t, err)
	m := NewAutomaton(catalog)

	trace := c.Worlds[0].Plans[0].Occurrences("p")
	require.NoError(t, m.Update(trace))
	once := Snapshot(m, nil)

	require.NoError(t, m.Update(trace))
	assert.Equal(t, once, Snapshot(m, nil))
}

func TestUpdate_AmbiguousBreaksChain(t *testing.T) {
	d := &domain.Domain{
		Name:  "d",
		Types: []domain.Type{{Name: "block"}},
		Operators: []*domain.Operator{
			{Name: "pick", Parameters: []domain.Parameter{{Name: "?a", Types: []string{"block"}}}},
			{Name: "swap", Parameters: []domain.Parameter{{Name: "?a", Types: []string{"block"}}, {Name: "?b", Types: []string{"block"}}}},
			{Name: "drop", Parameters: []domain.Parameter{{Name: "?a", Types: []string{"block"}}}},
		},
	}
	catalog, err := NewCatalog(d, "block")
	require.NoError(t, err)
	m := NewAutomaton(catalog)

	plan := domain.Plan{Actions: []domain.Action{
		{Operator: "pick", Args: []string{"a"}},
		{Operator: "swap", Args: []string{"a", "a"}},
		{Operator: "drop", Args: []string{"a"}},
	}}
	require.NoError(t, m.Update(plan.Occurrences("a")))

	pickEnd, _ := m.StateOf(tr("pick", 0, domain.After))
	dropStart, _ := m.StateOf(tr("drop", 0, domain.Before))
	assert.NotEqual(t, pickEnd, dropStart)
	assert.Equal(t, 4, m.StateCount())
	_, ok := m.StateOf(tr("swap", 0, domain.Before))
	assert.False(t, ok, "ambiguous steps register nothing")
}

func TestSetNext_ConflictUnifies(t *testing.T) {
	d, _ := blocksFixture(t)
	catalog, err := NewCatalog(d, "block")
	require.NoError(t, err)
	m := NewAutomaton(catalog)

	s0, _ := m.Register(tr("move", 0, domain.Before))
	s1, _ := m.Register(tr("move", 0, domain.After))
	s2, _ := m.Register(tr("move", 1, domain.Before))
	require.Equal(t, 3, m.StateCount())

	require.NoError(t, m.SetNext(s0, 0, s1))
	require.NoError(t, m.SetNext(s0, 0, s2))

	assert.Equal(t, 2, m.StateCount())
	a, _ := m.StateOf(tr("move", 0, domain.After))
	b, _ := m.StateOf(tr("move", 1, domain.Before))
	assert.Equal(t, a, b)
	require.NoError(t, m.Verify())
}

func TestUnify_Propagates(t *testing.T) {
	d, _ := blocksFixture(t)
	catalog, err := NewCatalog(d, "block")
	require.NoError(t, err)
	m := NewAutomaton(catalog)

	var merges int
	m.observer = func(kept, merged, states int) { merges++ }

	b0, _ := m.Register(tr("move", 0, domain.Before))
	a0, _ := m.Register(tr("move", 0, domain.After))
	b1, _ := m.Register(tr("move", 1, domain.Before))
	a1, _ := m.Register(tr("move", 1, domain.After))
	require.NoError(t, m.SetNext(b0, 0, a0))
	require.NoError(t, m.SetNext(b1, 0, a1))

	// b0 and b1 both move through slot 0, so their targets must merge too.
	require.NoError(t, m.Unify(b0, b1))

	assert.Equal(t, 2, m.StateCount())
	assert.Equal(t, 2, merges)
	x, _ := m.StateOf(tr("move", 0, domain.After))
	y, _ := m.StateOf(tr("move", 1, domain.After))
	assert.Equal(t, x, y)
	require.NoError(t, m.Verify())
}

func TestUnify_Errors(t *testing.T) {
	d, _ := blocksFixture(t)
	catalog, err := NewCatalog(d, "block")
	require.NoError(t, err)
	m := NewAutomaton(catalog)
	_, err = m.Register(tr("move", 0, domain.Before))
	require.NoError(t, err)

	err = m.Unify(0, 5)
	assert.True(t, errors.Is(err, domain.ErrInconsistent))
	err = m.SetNext(0, 0, 9)
	assert.True(t, errors.Is(err, domain.ErrInconsistent))

	_, err = m.Register(tr("stack", 0, domain.Before))
	assert.True(t, errors.Is(err, domain.ErrInvalidTrace))
}

func TestAutomaton_Density(t *testing.T) {
	d, c := logisticsFixture(t)
	for _, typ := range d.LeafTypes() {
		m, err := Build(context.Background(), d, c, typ)
		require.NoError(t, err)

		seen := 0
		for s := 0; s < m.StateCount(); s++ {
			members := m.Members(s)
			assert.NotEmpty(t, members, "state %d of %s", s, typ)
			for _, mt := range members {
				got, ok := m.StateOf(mt)
				require.True(t, ok)
				assert.Equal(t, s, got)
			}
			seen += len(members)
		}
		assert.Equal(t, len(m.Catalog().Transitions()), seen, "every observed transition is in exactly one state")
		for _, e := range m.Edges() {
			assert.Less(t, e.To, m.StateCount())
		}
	}
}

func TestBuild_Canceled(t *testing.T) {
	d, c := logisticsFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, err := Build(ctx, d, c, "package")
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, domain.ErrCanceled))
	assert.True(t, errors.Is(err, context.Canceled))
}
