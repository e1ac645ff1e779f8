/*
Package locus learns the hidden local states of objects from observed plans and
writes them back into a planning domain.

Given a domain description (types, operators) and a corpus of action traces,
locus builds one finite-state machine per object type whose states are the
unobserved "local states" an object goes through. States are inferred purely
from the order of the actions each object takes part in: the moment after one
action and the moment before the next one are the same state, and merging
those guesses across the corpus yields a consistent automaton. Each state is
then given hidden parameters (objects it stays associated with) by generating
and falsifying correlation hypotheses.

The learned machines are emitted as predicates ("<type>_state<i>") and every
operator's precondition and effect are rewritten to reference them.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/locus"
		"github.com/aretw0/locus/pkg/adapters/file"
	)

	func main() {
		d, err := file.LoadDomain("domain.yaml")
		if err != nil {
			log.Fatal(err)
		}
		corpus, err := file.LoadCorpus("traces.yaml")
		if err != nil {
			log.Fatal(err)
		}

		eng := locus.New(locus.WithReplacePredicates(true))
		model, err := eng.Learn(context.Background(), d, corpus)
		if err != nil {
			log.Fatal(err)
		}
		for _, m := range model.Machines {
			log.Printf("%s: %d states", m.Type, len(m.States))
		}
	}

A run is all-or-nothing: on any error, including cancellation of the context,
no model is returned and the domain is left unchanged.
*/
package locus
