package induction

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/locus/pkg/domain"
)

// Learner runs the induction pipeline: build one machine per leaf type,
// generate hypotheses, falsify them against the corpus and consolidate the
// survivors into hidden parameters.
type Learner struct {
	coverage CoveragePolicy
	logger   *slog.Logger
	hooks    domain.Hooks
}

// Option configures a Learner.
type Option func(*Learner)

// WithCoverage sets the parameter coverage policy (default CoverageExact).
func WithCoverage(p CoveragePolicy) Option {
	return func(l *Learner) {
		l.coverage = p
	}
}

// WithLogger sets the progress logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Learner) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithHooks registers observer callbacks.
func WithHooks(h domain.Hooks) Option {
	return func(l *Learner) {
		l.hooks = h
	}
}

// NewLearner creates a learner with the given options.
func NewLearner(opts ...Option) *Learner {
	l := &Learner{
		coverage: CoverageExact,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Induce learns the model of every leaf type of d from corpus. It never
// returns a partial model: on error or cancellation the result is nil.
func (l *Learner) Induce(ctx context.Context, d *domain.Domain, corpus *domain.Corpus) (*domain.Model, error) {
	if corpus == nil || corpus.PlanCount() == 0 {
		return nil, domain.ErrNoTraces
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := corpus.Validate(d); err != nil {
		return nil, err
	}

	types := d.LeafTypes()
	machines := make([]*Automaton, len(types))
	for i, typ := range types {
		start := time.Now()
		m, err := Build(ctx, d, corpus, typ, WithUnifyObserver(l.unifyObserver(ctx, typ)))
		if err != nil {
			return nil, err
		}
		if err := m.Verify(); err != nil {
			return nil, err
		}
		machines[i] = m
		l.stage(ctx, domain.StageBuild, typ, start, m.StateCount(), 0)
	}

	sets := make([]*Hypotheses, len(machines))
	for i, m := range machines {
		start := time.Now()
		hs, err := Generate(ctx, m)
		if err != nil {
			return nil, err
		}
		sets[i] = hs
		l.stage(ctx, domain.StageGenerate, m.Type(), start, m.StateCount(), hs.Len())
	}

	for i, m := range machines {
		start := time.Now()
		if err := sets[i].TestCorpus(ctx, corpus, l.falsifyObserver(ctx, m.Type())); err != nil {
			return nil, err
		}
		l.stage(ctx, domain.StageTest, m.Type(), start, m.StateCount(), sets[i].Len())
	}

	model := &domain.Model{Domain: d.Name, Machines: make([]domain.Machine, 0, len(machines))}
	for i, m := range machines {
		if err := ctx.Err(); err != nil {
			return nil, domain.Canceled(err)
		}
		start := time.Now()
		params := InduceParameters(m, sets[i], l.coverage)
		model.Machines = append(model.Machines, Snapshot(m, params))
		l.stage(ctx, domain.StageInduce, m.Type(), start, m.StateCount(), sets[i].Len())
	}
	return model, nil
}

// Snapshot copies a machine and its parameters into the public model form.
func Snapshot(m *Automaton, params [][]domain.ParameterInfo) domain.Machine {
	out := domain.Machine{
		Type:   m.Type(),
		States: make([]domain.StateModel, m.StateCount()),
		Edges:  m.Edges(),
	}
	for s := range out.States {
		out.States[s] = domain.StateModel{ID: s, Transitions: m.Members(s)}
		if s < len(params) {
			out.States[s].Parameters = params[s]
		}
	}
	return out
}

func (l *Learner) stage(ctx context.Context, stage domain.Stage, typ string, start time.Time, states, hyps int) {
	ev := &domain.StageEvent{
		Timestamp:  time.Now(),
		Stage:      stage,
		Type:       typ,
		Duration:   time.Since(start),
		States:     states,
		Hypotheses: hyps,
	}
	l.logger.Info("stage complete",
		"stage", stage,
		"type", typ,
		"states", states,
		"hypotheses", hyps,
		"duration", ev.Duration)
	if l.hooks.OnStage != nil {
		l.hooks.OnStage(ctx, ev)
	}
}

func (l *Learner) unifyObserver(ctx context.Context, typ string) func(kept, merged, states int) {
	return func(kept, merged, states int) {
		l.logger.Debug("states unified", "type", typ, "kept", kept, "merged", merged, "states", states)
		if l.hooks.OnUnify != nil {
			l.hooks.OnUnify(ctx, &domain.UnifyEvent{Type: typ, Kept: kept, Merged: merged, States: states})
		}
	}
}

func (l *Learner) falsifyObserver(ctx context.Context, typ string) func(Hypothesis, domain.Action) {
	return func(h Hypothesis, act domain.Action) {
		l.logger.Debug("hypothesis falsified", "type", typ, "state", h.State, "from", h.FromTag(), "to", h.ToTag(), "action", act)
		if l.hooks.OnFalsify != nil {
			l.hooks.OnFalsify(ctx, &domain.FalsifyEvent{Type: typ, State: h.State, From: h.FromTag(), To: h.ToTag(), Action: act})
		}
	}
}
