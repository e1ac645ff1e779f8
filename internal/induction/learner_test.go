package induction

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/locus/pkg/domain"
)

type recorder struct {
	mu        sync.Mutex
	stages    []domain.StageEvent
	unified   []domain.UnifyEvent
	falsified []domain.FalsifyEvent
}

func (r *recorder) hooks() domain.Hooks {
	return domain.Hooks{
		OnStage: func(_ context.Context, e *domain.StageEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.stages = append(r.stages, *e)
		},
		OnUnify: func(_ context.Context, e *domain.UnifyEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.unified = append(r.unified, *e)
		},
		OnFalsify: func(_ context.Context, e *domain.FalsifyEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.falsified = append(r.falsified, *e)
		},
	}
}

func TestLearner_Induce(t *testing.T) {
	d, c := logisticsFixture(t)
	rec := &recorder{}

	model, err := NewLearner(WithHooks(rec.hooks())).Induce(context.Background(), d, c)
	require.NoError(t, err)
	require.NotNil(t, model)

	assert.Equal(t, "logistics", model.Domain)
	require.Len(t, model.Machines, 3)

	sizes := map[string]int{}
	for _, m := range model.Machines {
		sizes[m.Type] = len(m.States)
	}
	assert.Equal(t, map[string]int{"package": 2, "truck": 3, "location": 3}, sizes)

	pkg, ok := model.Machine("package")
	require.True(t, ok)
	s, ok := pkg.StateOf(tr("unload", 0, domain.After))
	require.True(t, ok)
	require.Len(t, pkg.States[s].Parameters, 1)
	assert.Equal(t, []string{"location"}, pkg.States[s].Parameters[0].Types)

	assert.Len(t, rec.stages, 12)
	assert.Len(t, rec.unified, 4)
	assert.Len(t, rec.falsified, 4)

	perStage := map[domain.Stage]int{}
	for _, ev := range rec.stages {
		perStage[ev.Stage]++
		assert.NotEmpty(t, ev.Type)
	}
	assert.Equal(t, map[domain.Stage]int{
		domain.StageBuild:    3,
		domain.StageGenerate: 3,
		domain.StageTest:     3,
		domain.StageInduce:   3,
	}, perStage)

	for _, ev := range rec.falsified {
		assert.NotEqual(t, ev.From.Transition.Phase, ev.To.Transition.Phase)
	}
}

func TestLearner_StageCounts(t *testing.T) {
	d, c := logisticsFixture(t)
	rec := &recorder{}

	_, err := NewLearner(WithHooks(rec.hooks())).Induce(context.Background(), d, c)
	require.NoError(t, err)

	hyps := map[domain.Stage]int{}
	for _, ev := range rec.stages {
		hyps[ev.Stage] += ev.Hypotheses
	}
	assert.Equal(t, 0, hyps[domain.StageBuild])
	assert.Equal(t, 8, hyps[domain.StageGenerate])
	assert.Equal(t, 4, hyps[domain.StageTest])
	assert.Equal(t, 4, hyps[domain.StageInduce])
}

func TestLearner_Deterministic(t *testing.T) {
	d, c := logisticsFixture(t)
	a, err := NewLearner().Induce(context.Background(), d, c)
	require.NoError(t, err)
	b, err := NewLearner().Induce(context.Background(), d, c)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLearner_NoTraces(t *testing.T) {
	d, _ := logisticsFixture(t)
	l := NewLearner()

	_, err := l.Induce(context.Background(), d, nil)
	assert.ErrorIs(t, err, domain.ErrNoTraces)

	_, err = l.Induce(context.Background(), d, &domain.Corpus{Worlds: []domain.World{{Name: "empty"}}})
	assert.ErrorIs(t, err, domain.ErrNoTraces)
}

func TestLearner_InvalidTrace(t *testing.T) {
	d, c := logisticsFixture(t)
	c.Worlds[0].Plans[0].Actions = append(c.Worlds[0].Plans[0].Actions,
		domain.Action{Operator: "drive", Args: []string{"t", "l1", "l2"}})

	model, err := NewLearner().Induce(context.Background(), d, c)
	assert.Nil(t, model)
	assert.ErrorIs(t, err, domain.ErrInvalidTrace)
}

func TestLearner_InvalidDomain(t *testing.T) {
	_, c := logisticsFixture(t)
	d := &domain.Domain{Name: "empty"}

	_, err := NewLearner().Induce(context.Background(), d, c)
	assert.ErrorIs(t, err, domain.ErrInvalidDomain)
}

func TestLearner_Canceled(t *testing.T) {
	d, c := logisticsFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model, err := NewLearner().Induce(ctx, d, c)
	assert.Nil(t, model)
	assert.ErrorIs(t, err, domain.ErrCanceled)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLearner_CancelMidRun(t *testing.T) {
	d, c := logisticsFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hooks := domain.Hooks{
		OnStage: func(_ context.Context, e *domain.StageEvent) {
			if e.Stage == domain.StageGenerate {
				cancel()
			}
		},
	}
	model, err := NewLearner(WithHooks(hooks)).Induce(ctx, d, c)
	assert.Nil(t, model)
	assert.ErrorIs(t, err, domain.ErrCanceled)
}

func TestLearner_Logging(t *testing.T) {
	d, c := logisticsFixture(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewLearner(WithLogger(logger)).Induce(context.Background(), d, c)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "stage complete")
	assert.Contains(t, out, "states unified")
	assert.Contains(t, out, "hypothesis falsified")
}

func TestSnapshot(t *testing.T) {
	d, c := logisticsFixture(t)
	m, err := Build(context.Background(), d, c, "truck")
	require.NoError(t, err)

	params := make([][]domain.ParameterInfo, m.StateCount())
	s1, _ := m.StateOf(tr("load", 1, domain.After))
	params[s1] = []domain.ParameterInfo{{Types: []string{"package"}}}

	got := Snapshot(m, params)
	assert.Equal(t, "truck", got.Type)
	require.Len(t, got.States, 3)
	for i, st := range got.States {
		assert.Equal(t, i, st.ID)
		assert.Equal(t, m.Members(i), st.Transitions)
	}
	assert.Equal(t, params[s1], got.States[s1].Parameters)
	assert.Equal(t, m.Edges(), got.Edges)
	assert.Len(t, got.Edges, 2)
}
