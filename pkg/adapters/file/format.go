package file

import (
	"fmt"

	"github.com/aretw0/locus/pkg/domain"
	"github.com/aretw0/locus/pkg/dsl"
)

// DomainFile is the on-disk shape of a domain description.
//
//	name: blocks
//	types:
//	  - name: block
//	predicates:
//	  - name: on
//	    params: ["?a - block", "?b - block"]
//	operators:
//	  - name: move
//	    params: ["?a - block", "?b - block"]
//	    precondition: "(and (clear ?a) (clear ?b))"
//	    effect: "(on ?a ?b)"
type DomainFile struct {
	Name       string          `yaml:"name" json:"name"`
	Types      []domain.Type   `yaml:"types" json:"types"`
	Predicates []PredicateFile `yaml:"predicates" json:"predicates"`
	Operators  []OperatorFile  `yaml:"operators" json:"operators"`
}

// PredicateFile is a predicate table entry.
type PredicateFile struct {
	Name   string   `yaml:"name" json:"name"`
	Params []string `yaml:"params" json:"params"`
}

// OperatorFile is an operator schema with its trees in prefix notation.
type OperatorFile struct {
	Name         string   `yaml:"name" json:"name"`
	Params       []string `yaml:"params" json:"params"`
	Precondition string   `yaml:"precondition" json:"precondition"`
	Effect       string   `yaml:"effect" json:"effect"`
}

// CorpusFile is the on-disk shape of a trace corpus.
//
//	worlds:
//	  - name: w1
//	    objects: ["a - block", "b - block"]
//	    plans:
//	      - ["(move a b)", "(move b a)"]
type CorpusFile struct {
	Worlds []WorldFile `yaml:"worlds" json:"worlds"`
}

// WorldFile is one world: typed objects and plans given as action strings.
type WorldFile struct {
	Name    string     `yaml:"name" json:"name"`
	Objects []string   `yaml:"objects" json:"objects"`
	Plans   [][]string `yaml:"plans" json:"plans"`
}

// Domain converts the file into a domain value. It does not validate it.
func (f DomainFile) Domain() (*domain.Domain, error) {
	d := &domain.Domain{
		Name:  f.Name,
		Types: f.Types,
	}
	for _, p := range f.Predicates {
		pred := domain.Predicate{Name: p.Name}
		for _, spec := range p.Params {
			pred.Parameters = append(pred.Parameters, dsl.ParseParam(spec))
		}
		d.Predicates = append(d.Predicates, pred)
	}
	for _, o := range f.Operators {
		op := &domain.Operator{Name: o.Name}
		for _, spec := range o.Params {
			op.Parameters = append(op.Parameters, dsl.ParseParam(spec))
		}
		var err error
		if op.Precondition, err = dsl.ParseExpr(o.Precondition); err != nil {
			return nil, fmt.Errorf("%w: operator %q precondition: %w", domain.ErrInvalidDomain, o.Name, err)
		}
		if op.Effect, err = dsl.ParseExpr(o.Effect); err != nil {
			return nil, fmt.Errorf("%w: operator %q effect: %w", domain.ErrInvalidDomain, o.Name, err)
		}
		d.Operators = append(d.Operators, op)
	}
	return d, nil
}

// Corpus converts the file into a corpus value.
func (f CorpusFile) Corpus() (*domain.Corpus, error) {
	c := &domain.Corpus{}
	for _, wf := range f.Worlds {
		w := domain.World{Name: wf.Name}
		for _, spec := range wf.Objects {
			obj, err := dsl.ParseObject(spec)
			if err != nil {
				return nil, fmt.Errorf("%w: world %q: %w", domain.ErrInvalidTrace, wf.Name, err)
			}
			w.Objects = append(w.Objects, obj)
		}
		for pi, steps := range wf.Plans {
			plan := domain.Plan{}
			for si, step := range steps {
				act, err := dsl.ParseAction(step)
				if err != nil {
					return nil, fmt.Errorf("%w: world %q plan %d step %d: %w", domain.ErrInvalidTrace, wf.Name, pi, si, err)
				}
				plan.Actions = append(plan.Actions, act)
			}
			w.Plans = append(w.Plans, plan)
		}
		c.Worlds = append(c.Worlds, w)
	}
	return c, nil
}
