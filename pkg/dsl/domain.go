package dsl

import (
	"fmt"

	"github.com/aretw0/locus/pkg/domain"
)

// DomainBuilder manages the domain construction.
type DomainBuilder struct {
	name       string
	types      []domain.Type
	predicates []domain.Predicate
	operators  []*OperatorBuilder
}

// NewDomain creates a new domain builder.
func NewDomain(name string) *DomainBuilder {
	return &DomainBuilder{name: name}
}

// Type declares a type. An empty parent means the root type.
func (b *DomainBuilder) Type(name, parent string) *DomainBuilder {
	b.types = append(b.types, domain.Type{Name: name, Parent: parent})
	return b
}

// Predicate declares an entry of the predicate table.
// Each parameter is given as "?name - type".
func (b *DomainBuilder) Predicate(name string, params ...string) *DomainBuilder {
	p := domain.Predicate{Name: name}
	for _, spec := range params {
		p.Parameters = append(p.Parameters, ParseParam(spec))
	}
	b.predicates = append(b.predicates, p)
	return b
}

// Operator adds an operator, or returns the existing builder of that name.
func (b *DomainBuilder) Operator(name string) *OperatorBuilder {
	for _, ob := range b.operators {
		if ob.op.Name == name {
			return ob
		}
	}
	ob := &OperatorBuilder{op: domain.Operator{Name: name}}
	b.operators = append(b.operators, ob)
	return ob
}

// Build compiles and validates the domain. Every call returns a fresh value.
func (b *DomainBuilder) Build() (*domain.Domain, error) {
	d := &domain.Domain{
		Name:       b.name,
		Types:      append([]domain.Type(nil), b.types...),
		Predicates: append([]domain.Predicate(nil), b.predicates...),
	}
	for _, ob := range b.operators {
		op := ob.op
		op.Parameters = append([]domain.Parameter(nil), ob.op.Parameters...)
		op.Precondition = ob.op.Precondition.Clone()
		op.Effect = ob.op.Effect.Clone()
		d.Operators = append(d.Operators, &op)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid domain %q: %w", b.name, err)
	}
	return d, nil
}

// OperatorBuilder provides a fluent API for configuring an operator.
type OperatorBuilder struct {
	op domain.Operator
}

// Param appends a parameter slot. Several types declare an "either" slot.
func (o *OperatorBuilder) Param(name string, types ...string) *OperatorBuilder {
	if len(types) == 0 {
		types = []string{domain.RootType}
	}
	o.op.Parameters = append(o.op.Parameters, domain.Parameter{Name: name, Types: types})
	return o
}

// Pre sets the precondition tree.
func (o *OperatorBuilder) Pre(e *domain.Expr) *OperatorBuilder {
	o.op.Precondition = e
	return o
}

// Eff sets the effect tree.
func (o *OperatorBuilder) Eff(e *domain.Expr) *OperatorBuilder {
	o.op.Effect = e
	return o
}
