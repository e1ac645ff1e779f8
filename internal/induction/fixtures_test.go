package induction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/locus/pkg/domain"
	"github.com/aretw0/locus/pkg/dsl"
)

// blocksFixture is a single-type domain with move(?a ?b) observed as
// (move a b) (move c a).
func blocksFixture(t *testing.T) (*domain.Domain, *domain.Corpus) {
	t.Helper()
	db := dsl.NewDomain("blocks").Type("block", "")
	db.Operator("move").Param("?a", "block").Param("?b", "block")
	d, err := db.Build()
	require.NoError(t, err)

	cb := dsl.NewCorpus()
	cb.World("w").Objects("block", "a", "b", "c").Plan("(move a b)", "(move c a)")
	c, err := cb.Build()
	require.NoError(t, err)
	return d, c
}

// logisticsFixture moves one package with two trucks:
// load p t l1, unload p t l2, load p t2 l2, unload p t2 l3.
func logisticsFixture(t *testing.T) (*domain.Domain, *domain.Corpus) {
	t.Helper()
	db := dsl.NewDomain("logistics").
		Type("package", "").
		Type("truck", "").
		Type("location", "")
	db.Operator("load").Param("?p", "package").Param("?t", "truck").Param("?l", "location")
	db.Operator("unload").Param("?p", "package").Param("?t", "truck").Param("?l", "location")
	d, err := db.Build()
	require.NoError(t, err)

	cb := dsl.NewCorpus()
	cb.World("w").
		Objects("package", "p").
		Objects("truck", "t", "t2").
		Objects("location", "l1", "l2", "l3").
		Plan("(load p t l1)", "(unload p t l2)", "(load p t2 l2)", "(unload p t2 l3)")
	c, err := cb.Build()
	require.NoError(t, err)
	return d, c
}

func tr(op string, pos int, phase domain.Phase) domain.Transition {
	return domain.Transition{Operator: op, Position: pos, Phase: phase}
}

func tag(op string, pos int, phase domain.Phase, arg int) domain.Tag {
	return domain.Tag{Transition: tr(op, pos, phase), Arg: arg}
}
