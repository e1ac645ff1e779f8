package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainClone(t *testing.T) {
	d := &Domain{
		Name:  "blocks",
		Types: []Type{{Name: "block"}},
		Operators: []*Operator{{
			Name:         "move",
			Parameters:   []Parameter{{Name: "?a", Types: []string{"block"}}},
			Precondition: Atom("clear", "?a"),
		}},
	}

	c := d.Clone()
	require.Equal(t, d, c)

	c.Operators[0].Parameters[0].Types[0] = "other"
	c.Operators[0].Precondition.Args[0] = "?z"
	c.Types[0].Name = "x"

	assert.Equal(t, "block", d.Operators[0].Parameters[0].Types[0])
	assert.Equal(t, "?a", d.Operators[0].Precondition.Args[0])
	assert.Equal(t, "block", d.Types[0].Name)
	assert.Nil(t, (*Domain)(nil).Clone())
}

func TestCorpusClone(t *testing.T) {
	c := &Corpus{Worlds: []World{{
		Name:    "w",
		Objects: []Object{{Name: "a", Type: "block"}},
		Plans:   []Plan{{Actions: []Action{{Operator: "pick", Args: []string{"a"}}}}},
	}}}

	cp := c.Clone()
	require.Equal(t, c, cp)

	cp.Worlds[0].Plans[0].Actions[0].Args[0] = "b"
	cp.Worlds[0].Objects[0].Name = "b"
	assert.Equal(t, "a", c.Worlds[0].Plans[0].Actions[0].Args[0])
	assert.Equal(t, "a", c.Worlds[0].Objects[0].Name)
}
