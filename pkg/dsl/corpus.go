package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/locus/pkg/domain"
)

// CorpusBuilder manages the corpus construction.
type CorpusBuilder struct {
	worlds []*WorldBuilder
}

// NewCorpus creates a new corpus builder.
func NewCorpus() *CorpusBuilder {
	return &CorpusBuilder{}
}

// World adds a world, or returns the existing builder of that name.
func (c *CorpusBuilder) World(name string) *WorldBuilder {
	for _, wb := range c.worlds {
		if wb.name == name {
			return wb
		}
	}
	wb := &WorldBuilder{name: name}
	c.worlds = append(c.worlds, wb)
	return wb
}

// Build parses every plan step. Every call returns a fresh value.
func (c *CorpusBuilder) Build() (*domain.Corpus, error) {
	corpus := &domain.Corpus{}
	for _, wb := range c.worlds {
		w := domain.World{
			Name:    wb.name,
			Objects: append([]domain.Object(nil), wb.objects...),
		}
		for pi, steps := range wb.plans {
			plan := domain.Plan{}
			for si, step := range steps {
				act, err := ParseAction(step)
				if err != nil {
					return nil, fmt.Errorf("world %q plan %d step %d: %w", wb.name, pi, si, err)
				}
				plan.Actions = append(plan.Actions, act)
			}
			w.Plans = append(w.Plans, plan)
		}
		corpus.Worlds = append(corpus.Worlds, w)
	}
	return corpus, nil
}

// WorldBuilder provides a fluent API for configuring a world.
type WorldBuilder struct {
	name    string
	objects []domain.Object
	plans   [][]string
}

// Objects declares objects of one type.
func (w *WorldBuilder) Objects(typ string, names ...string) *WorldBuilder {
	for _, n := range names {
		w.objects = append(w.objects, domain.Object{Name: n, Type: typ})
	}
	return w
}

// Plan appends a plan given as action strings such as "(move a b)".
func (w *WorldBuilder) Plan(steps ...string) *WorldBuilder {
	w.plans = append(w.plans, steps)
	return w
}

// ParseAction parses "(op arg1 arg2)" or "op arg1 arg2" into an Action.
func ParseAction(s string) (domain.Action, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") {
			return domain.Action{}, fmt.Errorf("unbalanced action %q", s)
		}
		s = s[1 : len(s)-1]
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return domain.Action{}, fmt.Errorf("empty action")
	}
	act := domain.Action{Operator: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		act.Args = fields[1:]
	}
	return act, nil
}

