package domain

import (
	"cmp"
	"fmt"
)

// Phase distinguishes the moment just before an action from the moment just after it.
type Phase int

const (
	Before Phase = iota
	After
)

func (p Phase) String() string {
	if p == After {
		return "end"
	}
	return "start"
}

// Transition identifies one side of an object's participation in an operator:
// the operator, the parameter position the object fills, and the phase.
type Transition struct {
	Operator string `json:"operator" yaml:"operator"`
	Position int    `json:"position" yaml:"position"`
	Phase    Phase  `json:"phase" yaml:"phase"`
}

// String renders the transition as "op.pos.phase".
func (t Transition) String() string {
	return fmt.Sprintf("%s.%d.%s", t.Operator, t.Position, t.Phase)
}

// Opposite returns the transition of the same slot in the other phase.
func (t Transition) Opposite() Transition {
	o := t
	if t.Phase == Before {
		o.Phase = After
	} else {
		o.Phase = Before
	}
	return o
}

// SameSlot reports whether both transitions refer to the same (operator, position).
func (t Transition) SameSlot(other Transition) bool {
	return t.Operator == other.Operator && t.Position == other.Position
}

// CompareTransitions orders transitions by operator, position, then phase.
func CompareTransitions(a, b Transition) int {
	if c := cmp.Compare(a.Operator, b.Operator); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Position, b.Position); c != 0 {
		return c
	}
	return cmp.Compare(a.Phase, b.Phase)
}

// Tag marks an argument position of a transition as carrying a hidden parameter.
type Tag struct {
	Transition Transition `json:"transition" yaml:"transition"`
	Arg        int        `json:"arg" yaml:"arg"`
}

func (t Tag) String() string {
	return fmt.Sprintf("%s#%d", t.Transition, t.Arg)
}

// CompareTags orders tags by transition, then argument index.
func CompareTags(a, b Tag) int {
	if c := CompareTransitions(a.Transition, b.Transition); c != 0 {
		return c
	}
	return cmp.Compare(a.Arg, b.Arg)
}
