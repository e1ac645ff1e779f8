package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/locus/pkg/domain"
	"github.com/aretw0/locus/pkg/dsl"
)

// Loader adapts a Loam repository to the Locus CorpusLoader interface.
// Every document of the repository is one world.
type Loader struct {
	Repo *loam.TypedRepository[WorldMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[WorldMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric types consistent across JSON and Markdown
	// documents; the learner never writes to the corpus.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[WorldMetadata](repo)), nil
}

// LoadCorpus lists the repository and converts each document into a world.
// Worlds are ordered by document ID so repeated loads are identical.
func (l *Loader) LoadCorpus(ctx context.Context) (*domain.Corpus, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	type entry struct {
		docID string
		world domain.World
	}
	entries := make([]entry, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, domain.Canceled(err)
		}
		w, err := convertWorld(doc.ID, doc.Data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{docID: doc.ID, world: w})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.docID, b.docID)
	})

	corpus := &domain.Corpus{}
	seen := make(map[string]string)
	for _, e := range entries {
		if existing, ok := seen[e.world.Name]; ok {
			return nil, fmt.Errorf("collision detected: world '%s' is defined in both '%s' and '%s'", e.world.Name, existing, e.docID)
		}
		seen[e.world.Name] = e.docID
		corpus.Worlds = append(corpus.Worlds, e.world)
	}
	return corpus, nil
}

func convertWorld(docID string, meta WorldMetadata) (domain.World, error) {
	w := domain.World{Name: meta.Name}
	if w.Name == "" {
		w.Name = trimExtension(docID)
	}

	for _, spec := range meta.Objects {
		obj, err := dsl.ParseObject(spec)
		if err != nil {
			return domain.World{}, fmt.Errorf("%w: world %q: %w", domain.ErrInvalidTrace, w.Name, err)
		}
		w.Objects = append(w.Objects, obj)
	}

	for pi, raw := range meta.Plans {
		steps, ok := raw.([]any)
		if !ok {
			return domain.World{}, fmt.Errorf("%w: world %q plan %d is not a list of steps", domain.ErrInvalidTrace, w.Name, pi)
		}
		plan := domain.Plan{}
		for si, step := range steps {
			act, err := decodeStep(step)
			if err != nil {
				return domain.World{}, fmt.Errorf("%w: world %q plan %d step %d: %w", domain.ErrInvalidTrace, w.Name, pi, si, err)
			}
			plan.Actions = append(plan.Actions, act)
		}
		w.Plans = append(w.Plans, plan)
	}
	return w, nil
}

func decodeStep(step any) (domain.Action, error) {
	if s, ok := step.(string); ok {
		return dsl.ParseAction(s)
	}

	var sm StepMetadata
	if err := mapstructure.Decode(step, &sm); err != nil {
		return domain.Action{}, fmt.Errorf("failed to decode step: %w", err)
	}
	if sm.Operator == "" {
		return domain.Action{}, fmt.Errorf("step has no operator")
	}
	return domain.Action{Operator: strings.ToLower(sm.Operator), Args: sm.Args}, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
