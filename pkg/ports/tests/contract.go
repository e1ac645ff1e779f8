package tests

import (
	"context"
	"testing"

	"github.com/aretw0/locus/pkg/domain"
	"github.com/aretw0/locus/pkg/ports"
)

// CorpusLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.CorpusLoader.
// want maps each world name to the number of plans it must contain.
func CorpusLoaderContractTest(t *testing.T, loader ports.CorpusLoader, want map[string]int) {
	t.Helper()

	t.Run("LoadCorpus_Worlds", func(t *testing.T) {
		corpus, err := loader.LoadCorpus(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading corpus: %v", err)
		}
		if len(corpus.Worlds) != len(want) {
			t.Fatalf("expected %d worlds, got %d", len(want), len(corpus.Worlds))
		}
		for _, w := range corpus.Worlds {
			plans, ok := want[w.Name]
			if !ok {
				t.Errorf("unexpected world %q", w.Name)
				continue
			}
			if len(w.Plans) != plans {
				t.Errorf("world %q: expected %d plans, got %d", w.Name, plans, len(w.Plans))
			}
		}
	})

	t.Run("LoadCorpus_Isolation", func(t *testing.T) {
		first, err := loader.LoadCorpus(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading corpus: %v", err)
		}
		if len(first.Worlds) == 0 {
			t.Skip("empty corpus")
		}
		first.Worlds[0].Name = "mutated"

		second, err := loader.LoadCorpus(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading corpus: %v", err)
		}
		for _, w := range second.Worlds {
			if w.Name == "mutated" {
				t.Error("loader returned shared state: mutation leaked into a later load")
			}
		}
	})
}

// DomainLoaderContractTest verifies that an adapter complies with ports.DomainLoader.
func DomainLoaderContractTest(t *testing.T, loader ports.DomainLoader, wantOperators []string) {
	t.Helper()

	t.Run("LoadDomain_Operators", func(t *testing.T) {
		d, err := loader.LoadDomain(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading domain: %v", err)
		}
		for _, name := range wantOperators {
			if _, ok := d.Operator(name); !ok {
				t.Errorf("operator %q missing", name)
			}
		}
	})

	t.Run("LoadDomain_Isolation", func(t *testing.T) {
		first, err := loader.LoadDomain(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading domain: %v", err)
		}
		if len(first.Operators) == 0 {
			t.Skip("no operators")
		}
		first.Operators[0].Precondition = domain.Atom("mutated")

		second, err := loader.LoadDomain(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading domain: %v", err)
		}
		if p := second.Operators[0].Precondition; p != nil && p.Predicate == "mutated" {
			t.Error("loader returned shared state: mutation leaked into a later load")
		}
	})
}
