package domain

import (
	"fmt"
	"slices"
)

// RootType is the implicit supertype of every declared type.
const RootType = "object"

// Type is a named object type with an optional parent ("is-a").
type Type struct {
	Name   string `json:"name" yaml:"name"`
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// Parameter is a typed slot of an operator or predicate.
// Types holds the declared type set (a single entry in most domains).
type Parameter struct {
	Name  string   `json:"name" yaml:"name"`
	Types []string `json:"types" yaml:"types"`
}

// SameTypes reports whether both parameters declare the same type set, ignoring order.
func (p Parameter) SameTypes(other Parameter) bool {
	return sameTypeSet(p.Types, other.Types)
}

func sameTypeSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

// Predicate is an entry of the domain's predicate table.
type Predicate struct {
	Name       string      `json:"name" yaml:"name"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// Operator is a lifted action schema.
// Precondition and Effect are nil when absent.
type Operator struct {
	Name         string      `json:"name" yaml:"name"`
	Parameters   []Parameter `json:"parameters" yaml:"parameters"`
	Precondition *Expr       `json:"precondition,omitempty" yaml:"precondition,omitempty"`
	Effect       *Expr       `json:"effect,omitempty" yaml:"effect,omitempty"`
}

// Domain is the planning domain description consumed and rewritten by the learner.
type Domain struct {
	Name       string      `json:"name" yaml:"name"`
	Types      []Type      `json:"types,omitempty" yaml:"types,omitempty"`
	Predicates []Predicate `json:"predicates,omitempty" yaml:"predicates,omitempty"`
	Operators  []*Operator `json:"operators" yaml:"operators"`
}

// HasType reports whether name is declared (the root type is always known).
func (d *Domain) HasType(name string) bool {
	if name == RootType {
		return true
	}
	for _, t := range d.Types {
		if t.Name == name {
			return true
		}
	}
	return false
}

func (d *Domain) parentOf(name string) string {
	for _, t := range d.Types {
		if t.Name == name {
			if t.Parent == "" && name != RootType {
				return RootType
			}
			return t.Parent
		}
	}
	if name != RootType {
		return RootType
	}
	return ""
}

// IsA reports whether sub equals super or derives from it.
func (d *Domain) IsA(sub, super string) bool {
	seen := make(map[string]bool)
	for cur := sub; cur != ""; cur = d.parentOf(cur) {
		if cur == super {
			return true
		}
		if seen[cur] {
			return false
		}
		seen[cur] = true
	}
	return false
}

// Subtypes returns the declared types that directly name parent as their parent.
func (d *Domain) Subtypes(parent string) []string {
	var out []string
	for _, t := range d.Types {
		p := t.Parent
		if p == "" && t.Name != RootType {
			p = RootType
		}
		if p == parent && t.Name != parent {
			out = append(out, t.Name)
		}
	}
	return out
}

// LeafTypes returns the types objects are instantiated from, in declaration order.
// A domain without declared types has the single leaf RootType.
func (d *Domain) LeafTypes() []string {
	var out []string
	for _, t := range d.Types {
		if len(d.Subtypes(t.Name)) == 0 {
			out = append(out, t.Name)
		}
	}
	if len(out) == 0 {
		return []string{RootType}
	}
	return out
}

// SlotLeaves returns the leaf types whose objects may fill the parameter slot.
func (d *Domain) SlotLeaves(p Parameter) []string {
	var out []string
	for _, leaf := range d.LeafTypes() {
		if d.Accepts(p, leaf) {
			out = append(out, leaf)
		}
	}
	return out
}

// Operator looks up an operator by name.
func (d *Domain) Operator(name string) (*Operator, bool) {
	for _, op := range d.Operators {
		if op.Name == name {
			return op, true
		}
	}
	return nil, false
}

// Predicate looks up the predicate table by name.
func (d *Domain) Predicate(name string) (Predicate, bool) {
	for _, p := range d.Predicates {
		if p.Name == name {
			return p, true
		}
	}
	return Predicate{}, false
}

// Validate checks the domain for constructs the learner cannot process.
func (d *Domain) Validate() error {
	if len(d.Operators) == 0 {
		return fmt.Errorf("%w: domain %q declares no operators", ErrInvalidDomain, d.Name)
	}
	for _, t := range d.Types {
		if t.Parent != "" && !d.HasType(t.Parent) {
			return fmt.Errorf("%w: type %q has unknown parent %q", ErrInvalidDomain, t.Name, t.Parent)
		}
		if t.Parent != "" && d.IsA(t.Parent, t.Name) {
			return fmt.Errorf("%w: type %q is part of a cycle", ErrInvalidDomain, t.Name)
		}
	}
	seen := make(map[string]bool)
	for _, op := range d.Operators {
		if seen[op.Name] {
			return fmt.Errorf("%w: duplicate operator %q", ErrInvalidDomain, op.Name)
		}
		seen[op.Name] = true
		for i, p := range op.Parameters {
			if len(p.Types) == 0 {
				return fmt.Errorf("%w: operator %q parameter %d has no type", ErrInvalidDomain, op.Name, i)
			}
			for _, typ := range p.Types {
				if !d.HasType(typ) {
					return fmt.Errorf("%w: operator %q parameter %d has unknown type %q", ErrInvalidDomain, op.Name, i, typ)
				}
			}
			// Each leaf machine would add its own state atom to the same
			// argument, and no object is of two leaf types.
			if leaves := d.SlotLeaves(p); len(leaves) > 1 {
				return fmt.Errorf("%w: operator %q parameter %d accepts several leaf types %v", ErrUnsupported, op.Name, i, leaves)
			}
		}
		if err := op.Precondition.Check(); err != nil {
			return fmt.Errorf("operator %q precondition: %w", op.Name, err)
		}
		if err := CheckEffect(op.Effect); err != nil {
			return fmt.Errorf("operator %q effect: %w", op.Name, err)
		}
	}
	return nil
}
