package locus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/locus/internal/induction"
	"github.com/aretw0/locus/internal/synthesis"
	"github.com/aretw0/locus/pkg/domain"
	"github.com/aretw0/locus/pkg/ports"
)

// CoveragePolicy re-exports the parameter coverage policies.
type CoveragePolicy = induction.CoveragePolicy

const (
	CoverageExact   = induction.CoverageExact
	CoverageLenient = induction.CoverageLenient
)

// Engine is the high-level entry point of the library.
// It wires the induction pipeline and the synthesizer with shared options.
type Engine struct {
	domainLoader ports.DomainLoader
	corpusLoader ports.CorpusLoader
	coverage     CoveragePolicy
	replace      bool
	hooks        domain.Hooks
	logger       *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithCoverage selects the coverage policy applied to induced parameters.
func WithCoverage(p CoveragePolicy) Option {
	return func(e *Engine) {
		e.coverage = p
	}
}

// WithReplacePredicates makes synthesis start from an empty predicate table
// and empty operator conditions instead of extending them.
func WithReplacePredicates(replace bool) Option {
	return func(e *Engine) {
		e.replace = replace
	}
}

// WithDomainLoader injects the source used by Run to obtain the domain.
func WithDomainLoader(l ports.DomainLoader) Option {
	return func(e *Engine) {
		e.domainLoader = l
	}
}

// WithCorpusLoader injects the source used by Run to obtain the traces.
func WithCorpusLoader(l ports.CorpusLoader) Option {
	return func(e *Engine) {
		e.corpusLoader = l
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{coverage: CoverageExact}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return eng
}

// Learn induces the model of d from corpus and rewrites d in place.
// On error d is not modified and the returned model is nil. A canceled ctx
// yields an error matching domain.ErrCanceled.
func (e *Engine) Learn(ctx context.Context, d *domain.Domain, corpus *domain.Corpus) (*domain.Model, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil domain", domain.ErrInvalidDomain)
	}
	logger := e.logger.With("domain", d.Name)

	learner := induction.NewLearner(
		induction.WithCoverage(e.coverage),
		induction.WithLogger(logger),
		induction.WithHooks(e.hooks),
	)
	model, err := learner.Induce(ctx, d, corpus)
	if err != nil {
		logger.Error("induction failed", "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.Canceled(err)
	}

	start := time.Now()
	synth := synthesis.New(synthesis.WithReplacePredicates(e.replace))
	if err := synth.Apply(d, model); err != nil {
		logger.Error("synthesis failed", "error", err)
		return nil, err
	}

	ev := &domain.StageEvent{
		Timestamp: time.Now(),
		Stage:     domain.StageSynthesize,
		Duration:  time.Since(start),
	}
	for _, m := range model.Machines {
		ev.States += len(m.States)
	}
	logger.Info("stage complete", "stage", ev.Stage, "predicates", len(d.Predicates), "duration", ev.Duration)
	if e.hooks.OnStage != nil {
		e.hooks.OnStage(ctx, ev)
	}
	return model, nil
}

// Run loads the domain and corpus through the configured loaders and learns.
// It returns the rewritten domain alongside the model.
func (e *Engine) Run(ctx context.Context) (*domain.Domain, *domain.Model, error) {
	if e.domainLoader == nil || e.corpusLoader == nil {
		return nil, nil, fmt.Errorf("both a domain loader and a corpus loader are required")
	}
	d, err := e.domainLoader.LoadDomain(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load domain: %w", err)
	}
	corpus, err := e.corpusLoader.LoadCorpus(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	model, err := e.Learn(ctx, d, corpus)
	if err != nil {
		return nil, nil, err
	}
	return d, model, nil
}
