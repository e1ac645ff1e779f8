package domain

import (
	"fmt"
	"strings"
)

// ExprKind identifies the node type of an expression tree.
type ExprKind string

const (
	ExprAtom   ExprKind = "atom"
	ExprAnd    ExprKind = "and"
	ExprNot    ExprKind = "not"
	ExprOr     ExprKind = "or"
	ExprEquals ExprKind = "="
)

// Expr is a precondition or effect expression tree.
// Atoms carry a predicate name and argument (parameter) names;
// And/Not carry children. Or and Equals are representable so that
// loaders can report them, but the learner rejects them.
type Expr struct {
	Kind      ExprKind `json:"kind" yaml:"kind"`
	Predicate string   `json:"predicate,omitempty" yaml:"predicate,omitempty"`
	Args      []string `json:"args,omitempty" yaml:"args,omitempty"`
	Children  []*Expr  `json:"children,omitempty" yaml:"children,omitempty"`
}

// Atom builds a predicate leaf.
func Atom(predicate string, args ...string) *Expr {
	return &Expr{Kind: ExprAtom, Predicate: predicate, Args: args}
}

// And builds a conjunction.
func And(children ...*Expr) *Expr {
	return &Expr{Kind: ExprAnd, Children: children}
}

// Not builds a negation.
func Not(child *Expr) *Expr {
	return &Expr{Kind: ExprNot, Children: []*Expr{child}}
}

// Clone returns a deep copy of the tree (nil stays nil).
func (e *Expr) Clone() *Expr {
	if e == nil {
		return nil
	}
	out := &Expr{Kind: e.Kind, Predicate: e.Predicate}
	if e.Args != nil {
		out.Args = append([]string(nil), e.Args...)
	}
	for _, c := range e.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}

// Check walks the tree and fails on unsupported or malformed nodes.
func (e *Expr) Check() error {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ExprAtom:
		if e.Predicate == "" {
			return fmt.Errorf("%w: atom without predicate", ErrUnsupported)
		}
		return nil
	case ExprAnd:
		for _, c := range e.Children {
			if err := c.Check(); err != nil {
				return err
			}
		}
		return nil
	case ExprNot:
		if len(e.Children) != 1 {
			return fmt.Errorf("%w: negation with %d children", ErrUnsupported, len(e.Children))
		}
		return e.Children[0].Check()
	case ExprOr:
		return fmt.Errorf("%w: disjunction", ErrUnsupported)
	case ExprEquals:
		return fmt.Errorf("%w: equality", ErrUnsupported)
	default:
		return fmt.Errorf("%w: expression kind %q", ErrUnsupported, e.Kind)
	}
}

// CheckEffect validates the shape of an effect tree: a literal or a
// conjunction of literals, where a literal is an atom or a negated atom.
func CheckEffect(e *Expr) error {
	if e == nil {
		return nil
	}
	if err := e.Check(); err != nil {
		return err
	}
	if e.Kind == ExprAnd {
		for _, c := range e.Children {
			if !isLiteral(c) {
				return fmt.Errorf("%w: malformed effect %s", ErrUnsupported, c)
			}
		}
		return nil
	}
	if !isLiteral(e) {
		return fmt.Errorf("%w: malformed effect %s", ErrUnsupported, e)
	}
	return nil
}

func isLiteral(e *Expr) bool {
	if e == nil {
		return false
	}
	if e.Kind == ExprAtom {
		return true
	}
	return e.Kind == ExprNot && len(e.Children) == 1 && e.Children[0] != nil && e.Children[0].Kind == ExprAtom
}

// Conjuncts returns the top-level children of a conjunction, or the node
// itself as a single conjunct. A nil tree has no conjuncts.
func (e *Expr) Conjuncts() []*Expr {
	if e == nil {
		return nil
	}
	if e.Kind == ExprAnd {
		return append([]*Expr(nil), e.Children...)
	}
	return []*Expr{e}
}

// Conjoin flattens a list of conjuncts: empty yields nil, a singleton
// yields the child itself, anything else an And node.
func Conjoin(children []*Expr) *Expr {
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	default:
		return And(children...)
	}
}

// String renders the tree in PDDL-like prefix notation.
func (e *Expr) String() string {
	if e == nil {
		return "()"
	}
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Expr) write(sb *strings.Builder) {
	if e == nil {
		sb.WriteString("()")
		return
	}
	sb.WriteString("(")
	if e.Kind == ExprAtom {
		sb.WriteString(e.Predicate)
		for _, a := range e.Args {
			sb.WriteString(" ")
			sb.WriteString(a)
		}
		sb.WriteString(")")
		return
	}
	sb.WriteString(string(e.Kind))
	for _, c := range e.Children {
		sb.WriteString(" ")
		c.write(sb)
	}
	for _, a := range e.Args {
		sb.WriteString(" ")
		sb.WriteString(a)
	}
	sb.WriteString(")")
}
