/*
Package dsl provides a Go DSL for programmatically constructing planning domains and trace corpora.

It allows developers to describe operators and observed plans with a fluent
builder instead of relying on external YAML or JSON files. This is
particularly useful for unit testing and for embedding small domains.

Example usage:

	package main

	import (
		"github.com/aretw0/locus/pkg/dsl"
	)

	func main() {
		db := dsl.NewDomain("blocks")
		db.Type("block", "")
		db.Operator("move").Param("?a", "block").Param("?b", "block")
		d, _ := db.Build()

		cb := dsl.NewCorpus()
		cb.World("w1").
			Objects("block", "a", "b", "c").
			Plan("(move a b)", "(move c a)")
		corpus, _ := cb.Build()

		// d and corpus can be passed to locus.Engine.Learn(...)
	}
*/
package dsl
