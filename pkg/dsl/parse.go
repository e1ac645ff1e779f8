package dsl

import (
	"fmt"
	"strings"

	"github.com/aretw0/locus/pkg/domain"
)

// ParseParam reads a typed name such as "?a - block" or
// "?a - (either block table)". A missing type means the root type.
func ParseParam(spec string) domain.Parameter {
	name, typ, found := strings.Cut(spec, " - ")
	name = strings.TrimSpace(name)
	if !found {
		return domain.Parameter{Name: name, Types: []string{domain.RootType}}
	}
	typ = strings.TrimSpace(typ)
	if inner, ok := strings.CutPrefix(typ, "(either"); ok {
		inner = strings.TrimSuffix(strings.TrimSpace(inner), ")")
		return domain.Parameter{Name: name, Types: strings.Fields(inner)}
	}
	return domain.Parameter{Name: name, Types: []string{typ}}
}

// ParseObject reads an object declaration such as "t1 - truck". An object
// has exactly one type, so an "either" list of any other length is rejected.
func ParseObject(spec string) (domain.Object, error) {
	p := ParseParam(spec)
	if p.Name == "" {
		return domain.Object{}, fmt.Errorf("object %q has no name", spec)
	}
	if len(p.Types) != 1 {
		return domain.Object{}, fmt.Errorf("object %q must have exactly one type, got %d", spec, len(p.Types))
	}
	return domain.Object{Name: p.Name, Type: p.Types[0]}, nil
}

// ParseExpr reads a prefix expression such as "(and (on ?a ?b) (not (clear ?b)))".
// An empty string yields a nil tree. Disjunctions and equalities are parsed
// so that validation can reject them with a precise error.
func ParseExpr(s string) (*domain.Expr, error) {
	toks := tokenize(s)
	if len(toks) == 0 {
		return nil, nil
	}
	p := &exprParser{toks: toks}
	e, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", s, err)
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("parse %q: trailing input at %q", s, p.toks[p.pos])
	}
	return e, nil
}

func tokenize(s string) []string {
	s = strings.NewReplacer("(", " ( ", ")", " ) ").Replace(s)
	return strings.Fields(s)
}

type exprParser struct {
	toks []string
	pos  int
}

func (p *exprParser) next() (string, bool) {
	if p.pos >= len(p.toks) {
		return "", false
	}
	t := p.toks[p.pos]
	p.pos++
	return t, true
}

func (p *exprParser) parse() (*domain.Expr, error) {
	t, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("unexpected end of input")
	}
	if t != "(" {
		return nil, fmt.Errorf("expected '(' but got %q", t)
	}
	head, ok := p.next()
	if !ok || head == ")" || head == "(" {
		return nil, fmt.Errorf("missing operator after '('")
	}
	head = strings.ToLower(head)

	switch head {
	case "and", "or", "not":
		e := &domain.Expr{Kind: domain.ExprKind(head)}
		for {
			if p.pos >= len(p.toks) {
				return nil, fmt.Errorf("unclosed (%s", head)
			}
			if p.toks[p.pos] == ")" {
				p.pos++
				return e, nil
			}
			child, err := p.parse()
			if err != nil {
				return nil, err
			}
			e.Children = append(e.Children, child)
		}
	default:
		kind := domain.ExprAtom
		if head == "=" {
			kind = domain.ExprEquals
		}
		e := &domain.Expr{Kind: kind}
		if kind == domain.ExprAtom {
			e.Predicate = head
		}
		for {
			t, ok := p.next()
			if !ok {
				return nil, fmt.Errorf("unclosed (%s", head)
			}
			if t == ")" {
				return e, nil
			}
			if t == "(" {
				return nil, fmt.Errorf("nested term in atom %q", head)
			}
			e.Args = append(e.Args, t)
		}
	}
}
