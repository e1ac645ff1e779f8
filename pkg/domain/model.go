package domain

import "slices"

// ParameterInfo is a consolidated hidden parameter of one induced state:
// its type set and the transition argument positions known to carry it.
type ParameterInfo struct {
	Types []string `json:"types" yaml:"types"`
	Tags  []Tag    `json:"tags" yaml:"tags"`
}

// Binding returns the argument index that carries the parameter for the
// given transition.
func (p ParameterInfo) Binding(t Transition) (int, bool) {
	for _, tag := range p.Tags {
		if tag.Transition == t {
			return tag.Arg, true
		}
	}
	return 0, false
}

// HasTag reports whether the parameter carries the tag.
func (p ParameterInfo) HasTag(tag Tag) bool {
	return slices.Contains(p.Tags, tag)
}

// StateModel is one induced local state.
type StateModel struct {
	ID          int             `json:"id" yaml:"id"`
	Transitions []Transition    `json:"transitions" yaml:"transitions"`
	Parameters  []ParameterInfo `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	// Predicate is the synthesized predicate name, set by synthesis.
	Predicate string `json:"predicate,omitempty" yaml:"predicate,omitempty"`
}

// Edge is a defined entry of the transition function.
type Edge struct {
	From     int    `json:"from" yaml:"from"`
	To       int    `json:"to" yaml:"to"`
	Operator string `json:"operator" yaml:"operator"`
	Position int    `json:"position" yaml:"position"`
}

// Machine is the induced automaton of one object type.
type Machine struct {
	Type   string       `json:"type" yaml:"type"`
	States []StateModel `json:"states" yaml:"states"`
	Edges  []Edge       `json:"edges,omitempty" yaml:"edges,omitempty"`
}

// StateOf returns the id of the state containing the transition.
func (m *Machine) StateOf(t Transition) (int, bool) {
	for _, s := range m.States {
		if slices.Contains(s.Transitions, t) {
			return s.ID, true
		}
	}
	return 0, false
}

// Model is the result of a learning run.
type Model struct {
	Domain   string    `json:"domain" yaml:"domain"`
	Machines []Machine `json:"machines" yaml:"machines"`
}

// Machine looks up the machine of a type.
func (m *Model) Machine(typ string) (*Machine, bool) {
	for i := range m.Machines {
		if m.Machines[i].Type == typ {
			return &m.Machines[i], true
		}
	}
	return nil, false
}
