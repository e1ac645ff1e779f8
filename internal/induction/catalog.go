package induction

import (
	"fmt"

	"github.com/aretw0/locus/pkg/domain"
)

type slotKey struct {
	operator string
	position int
}

// Catalog lists the transitions relevant to one object type and assigns a
// dense slot index to every (operator, position) pair an object of that type
// can fill. The slot index addresses a column of the transition function.
type Catalog struct {
	typ         string
	transitions []domain.Transition
	slots       map[slotKey]int
	slotList    []slotKey
	operators   map[string]*domain.Operator
}

// NewCatalog builds the catalog of typ from the domain's operators. A
// position is relevant when its declared type set contains typ or one of
// typ's supertypes.
func NewCatalog(d *domain.Domain, typ string) (*Catalog, error) {
	if !d.HasType(typ) {
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidDomain, typ)
	}
	c := &Catalog{
		typ:       typ,
		slots:     make(map[slotKey]int),
		operators: make(map[string]*domain.Operator, len(d.Operators)),
	}
	for _, op := range d.Operators {
		c.operators[op.Name] = op
		for pos, param := range op.Parameters {
			if !d.Accepts(param, typ) {
				continue
			}
			key := slotKey{operator: op.Name, position: pos}
			c.slots[key] = len(c.slotList)
			c.slotList = append(c.slotList, key)
			c.transitions = append(c.transitions,
				domain.Transition{Operator: op.Name, Position: pos, Phase: domain.Before},
				domain.Transition{Operator: op.Name, Position: pos, Phase: domain.After},
			)
		}
	}
	return c, nil
}

// Type returns the object type the catalog was built for.
func (c *Catalog) Type() string {
	return c.typ
}

// Transitions returns both phases of every relevant slot, in domain order.
func (c *Catalog) Transitions() []domain.Transition {
	return c.transitions
}

// SlotCount is the width of a transition function row.
func (c *Catalog) SlotCount() int {
	return len(c.slotList)
}

// Slot returns the slot index of (operator, position).
func (c *Catalog) Slot(operator string, position int) (int, bool) {
	s, ok := c.slots[slotKey{operator: operator, position: position}]
	return s, ok
}

// SlotAt returns the (operator, position) pair of a slot index.
func (c *Catalog) SlotAt(slot int) (string, int) {
	k := c.slotList[slot]
	return k.operator, k.position
}

// Operator returns the operator definition by name.
func (c *Catalog) Operator(name string) (*domain.Operator, bool) {
	op, ok := c.operators[name]
	return op, ok
}
