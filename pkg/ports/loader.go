package ports

import (
	"context"

	"github.com/aretw0/locus/pkg/domain"
)

// DomainLoader defines how the engine obtains the domain description.
// This allows the source (file, memory, remote) to be decoupled from the learner.
type DomainLoader interface {
	// LoadDomain returns a fresh domain value; the learner mutates it in place.
	LoadDomain(ctx context.Context) (*domain.Domain, error)
}

// CorpusLoader defines how the engine obtains the observed traces.
type CorpusLoader interface {
	// LoadCorpus returns every world available from the source.
	LoadCorpus(ctx context.Context) (*domain.Corpus, error)
}

// HaltSource is a poll-based cooperative cancellation signal shared with
// other processes (e.g. an operator stopping a long learning run).
type HaltSource interface {
	// Halted reports whether the run should stop.
	Halted(ctx context.Context) (bool, error)
}
