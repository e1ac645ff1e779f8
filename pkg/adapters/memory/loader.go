package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/locus/pkg/domain"
)

// Loader implements ports.DomainLoader and ports.CorpusLoader over values
// held in memory. Every load returns a deep copy, so callers may mutate
// the result (synthesis rewrites the domain in place).
type Loader struct {
	domain *domain.Domain
	corpus *domain.Corpus
}

// NewLoader creates a loader serving copies of the given values.
// Either may be nil when the loader only serves one port.
func NewLoader(d *domain.Domain, c *domain.Corpus) *Loader {
	return &Loader{
		domain: d.Clone(),
		corpus: c.Clone(),
	}
}

// LoadDomain returns a copy of the stored domain.
func (l *Loader) LoadDomain(ctx context.Context) (*domain.Domain, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Canceled(err)
	}
	if l.domain == nil {
		return nil, fmt.Errorf("%w: no domain loaded", domain.ErrInvalidDomain)
	}
	return l.domain.Clone(), nil
}

// LoadCorpus returns a copy of the stored corpus.
func (l *Loader) LoadCorpus(ctx context.Context) (*domain.Corpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Canceled(err)
	}
	if l.corpus == nil {
		return nil, domain.ErrNoTraces
	}
	return l.corpus.Clone(), nil
}
