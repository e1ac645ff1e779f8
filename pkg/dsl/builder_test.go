package dsl

import (
	"errors"
	"testing"

	"github.com/aretw0/locus/pkg/domain"
)

func TestDomainBuilder_Blocks(t *testing.T) {
	b := NewDomain("blocks").
		Type("block", "").
		Predicate("on", "?a - block", "?b - block")

	b.Operator("move").
		Param("?a", "block").
		Param("?b", "block").
		Pre(domain.Atom("on", "?a", "?b")).
		Eff(domain.Not(domain.Atom("on", "?a", "?b")))

	d, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	op, ok := d.Operator("move")
	if !ok {
		t.Fatal("Expected operator 'move'")
	}
	if len(op.Parameters) != 2 {
		t.Fatalf("Expected 2 parameters, got %d", len(op.Parameters))
	}
	if op.Parameters[1].Types[0] != "block" {
		t.Errorf("Expected parameter type 'block', got %q", op.Parameters[1].Types[0])
	}
	if got := op.Precondition.String(); got != "(on ?a ?b)" {
		t.Errorf("Unexpected precondition %s", got)
	}

	p, ok := d.Predicate("on")
	if !ok || len(p.Parameters) != 2 || p.Parameters[0].Name != "?a" {
		t.Errorf("Unexpected predicate table entry %+v", p)
	}

	// Builds are independent.
	op.Precondition.Args[0] = "?z"
	d2, err := b.Build()
	if err != nil {
		t.Fatalf("second Build() failed: %v", err)
	}
	op2, _ := d2.Operator("move")
	if op2.Precondition.Args[0] != "?a" {
		t.Error("Expected second build to be unaffected by mutation of the first")
	}
}

func TestDomainBuilder_SameOperatorTwice(t *testing.T) {
	b := NewDomain("d")
	b.Operator("noop").Param("?x")
	b.Operator("noop").Param("?y")

	d, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if len(d.Operators) != 1 || len(d.Operators[0].Parameters) != 2 {
		t.Fatalf("Expected one operator with two parameters, got %+v", d.Operators)
	}
	if d.Operators[0].Parameters[0].Types[0] != domain.RootType {
		t.Errorf("Expected untyped parameter to default to %q", domain.RootType)
	}
}

func TestDomainBuilder_Invalid(t *testing.T) {
	b := NewDomain("bad")
	b.Operator("pick").Param("?x", "ghost")

	_, err := b.Build()
	if !errors.Is(err, domain.ErrInvalidDomain) {
		t.Fatalf("Expected ErrInvalidDomain, got %v", err)
	}
}

func TestCorpusBuilder(t *testing.T) {
	c := NewCorpus()
	c.World("w1").
		Objects("block", "a", "b", "c").
		Plan("(move a b)", "(move c a)").
		Plan("move b c")
	c.World("w2").Objects("block", "x")

	corpus, err := c.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if len(corpus.Worlds) != 2 {
		t.Fatalf("Expected 2 worlds, got %d", len(corpus.Worlds))
	}
	if corpus.PlanCount() != 2 {
		t.Errorf("Expected 2 plans, got %d", corpus.PlanCount())
	}
	w := corpus.Worlds[0]
	if len(w.Objects) != 3 || w.Objects[2].Type != "block" {
		t.Errorf("Unexpected objects %+v", w.Objects)
	}
	if got := w.Plans[0].Actions[1].String(); got != "(move c a)" {
		t.Errorf("Expected (move c a), got %s", got)
	}
	if got := w.Plans[1].Actions[0].String(); got != "(move b c)" {
		t.Errorf("Expected (move b c), got %s", got)
	}
}

func TestCorpusBuilder_BadStep(t *testing.T) {
	c := NewCorpus()
	c.World("w").Objects("block", "a").Plan("(move a")

	if _, err := c.Build(); err == nil {
		t.Fatal("Expected error for unbalanced action")
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "(move a b)", want: "(move a b)"},
		{in: "  (MOVE a  b) ", want: "(move a b)"},
		{in: "stack a b", want: "(stack a b)"},
		{in: "(handempty)", want: "(handempty)"},
		{in: "()", wantErr: true},
		{in: "", wantErr: true},
		{in: "(move a", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAction(%q) failed: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseAction(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
