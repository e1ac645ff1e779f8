package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Object is a typed entity of a world.
type Object struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// TypeName returns the object's type, defaulting to RootType.
func (o Object) TypeName() string {
	if o.Type == "" {
		return RootType
	}
	return o.Type
}

// Action is a grounded operator instance: one object name per parameter slot.
type Action struct {
	Operator string   `json:"operator" yaml:"operator"`
	Args     []string `json:"args" yaml:"args"`
}

// String renders the action as "(op a b)".
func (a Action) String() string {
	if len(a.Args) == 0 {
		return "(" + a.Operator + ")"
	}
	return "(" + a.Operator + " " + strings.Join(a.Args, " ") + ")"
}

// Positions returns every parameter position the object occupies.
func (a Action) Positions(object string) []int {
	var out []int
	for i, arg := range a.Args {
		if arg == object {
			out = append(out, i)
		}
	}
	return out
}

// Plan is an ordered list of actions. States optionally holds the observed
// state (as ground atoms) before each step; the learner does not read it.
type Plan struct {
	Actions []Action   `json:"actions" yaml:"actions"`
	States  [][]string `json:"states,omitempty" yaml:"states,omitempty"`
}

// Occurrence is one step of an object trace.
// Position is -1 when the object occupies more than one slot of the action.
type Occurrence struct {
	Action   Action
	Position int
}

// Ambiguous reports whether the object position could not be determined.
func (o Occurrence) Ambiguous() bool {
	return o.Position < 0
}

// Occurrences returns the subsequence of actions the object participates in.
func (p Plan) Occurrences(object string) []Occurrence {
	var out []Occurrence
	for _, act := range p.Actions {
		pos := act.Positions(object)
		switch len(pos) {
		case 0:
			continue
		case 1:
			out = append(out, Occurrence{Action: act, Position: pos[0]})
		default:
			out = append(out, Occurrence{Action: act, Position: -1})
		}
	}
	return out
}

// World is a set of typed objects and the plans observed over them.
type World struct {
	Name    string   `json:"name" yaml:"name"`
	Objects []Object `json:"objects" yaml:"objects"`
	Plans   []Plan   `json:"plans" yaml:"plans"`
}

// ObjectsOfType returns the objects whose type is exactly typ.
func (w World) ObjectsOfType(typ string) []Object {
	var out []Object
	for _, o := range w.Objects {
		if o.TypeName() == typ {
			out = append(out, o)
		}
	}
	return out
}

// Corpus is the full trace collection the learner consumes.
type Corpus struct {
	Worlds []World `json:"worlds" yaml:"worlds"`
}

// PlanCount returns the number of plans across all worlds.
func (c *Corpus) PlanCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, w := range c.Worlds {
		n += len(w.Plans)
	}
	return n
}

// Validate checks the corpus against the domain: it must contain at least one
// plan, every action must name a known operator with matching arity, and every
// argument must be a declared object whose type fits the parameter slot.
// Objects must be of a leaf type, since only leaf types get a machine.
func (c *Corpus) Validate(d *Domain) error {
	if c.PlanCount() == 0 {
		return ErrNoTraces
	}
	leaves := d.LeafTypes()
	for _, w := range c.Worlds {
		objects := make(map[string]Object, len(w.Objects))
		for _, o := range w.Objects {
			o.Type = o.TypeName()
			if !d.HasType(o.Type) {
				return fmt.Errorf("%w: world %q object %q has unknown type %q", ErrInvalidTrace, w.Name, o.Name, o.Type)
			}
			if !slices.Contains(leaves, o.Type) {
				return fmt.Errorf("%w: world %q object %q has type %q, which has subtypes", ErrInvalidTrace, w.Name, o.Name, o.Type)
			}
			objects[o.Name] = o
		}
		for pi, p := range w.Plans {
			for ai, act := range p.Actions {
				op, ok := d.Operator(act.Operator)
				if !ok {
					return fmt.Errorf("%w: world %q plan %d step %d: unknown operator %q", ErrInvalidTrace, w.Name, pi, ai, act.Operator)
				}
				if len(act.Args) != len(op.Parameters) {
					return fmt.Errorf("%w: world %q plan %d step %d: %s expects %d arguments, got %d",
						ErrInvalidTrace, w.Name, pi, ai, op.Name, len(op.Parameters), len(act.Args))
				}
				for i, arg := range act.Args {
					obj, ok := objects[arg]
					if !ok {
						return fmt.Errorf("%w: world %q plan %d step %d: undeclared object %q", ErrInvalidTrace, w.Name, pi, ai, arg)
					}
					if !d.Accepts(op.Parameters[i], obj.Type) {
						return fmt.Errorf("%w: world %q plan %d step %d: object %q of type %q cannot fill %s parameter %d",
							ErrInvalidTrace, w.Name, pi, ai, arg, obj.Type, op.Name, i)
					}
				}
			}
		}
	}
	return nil
}

// Accepts reports whether an object of type typ may fill the parameter slot.
func (d *Domain) Accepts(p Parameter, typ string) bool {
	for _, declared := range p.Types {
		if d.IsA(typ, declared) {
			return true
		}
	}
	return false
}
