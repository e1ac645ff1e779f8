package induction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/locus/pkg/domain"
)

func TestNewCatalog(t *testing.T) {
	d, _ := logisticsFixture(t)

	c, err := NewCatalog(d, "truck")
	require.NoError(t, err)

	assert.Equal(t, "truck", c.Type())
	assert.Equal(t, 2, c.SlotCount())
	assert.Equal(t, []domain.Transition{
		tr("load", 1, domain.Before), tr("load", 1, domain.After),
		tr("unload", 1, domain.Before), tr("unload", 1, domain.After),
	}, c.Transitions())

	slot, ok := c.Slot("unload", 1)
	require.True(t, ok)
	assert.Equal(t, 1, slot)
	op, pos := c.SlotAt(slot)
	assert.Equal(t, "unload", op)
	assert.Equal(t, 1, pos)

	_, ok = c.Slot("load", 0)
	assert.False(t, ok, "a truck cannot fill the package slot")
}

func TestNewCatalog_Supertypes(t *testing.T) {
	d := &domain.Domain{
		Name:  "d",
		Types: []domain.Type{{Name: "vehicle"}, {Name: "truck", Parent: "vehicle"}},
		Operators: []*domain.Operator{
			{Name: "park", Parameters: []domain.Parameter{{Name: "?v", Types: []string{"vehicle"}}}},
			{Name: "tow", Parameters: []domain.Parameter{{Name: "?a", Types: []string{domain.RootType}}, {Name: "?b", Types: []string{"truck"}}}},
		},
	}

	c, err := NewCatalog(d, "truck")
	require.NoError(t, err)
	assert.Equal(t, 3, c.SlotCount())

	_, err = NewCatalog(d, "boat")
	assert.True(t, errors.Is(err, domain.ErrInvalidDomain))
}
