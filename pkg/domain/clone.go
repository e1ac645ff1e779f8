package domain

import "slices"

// Clone returns a deep copy of the domain. Loaders hand out clones because
// synthesis rewrites operators in place.
func (d *Domain) Clone() *Domain {
	if d == nil {
		return nil
	}
	out := &Domain{
		Name:  d.Name,
		Types: slices.Clone(d.Types),
	}
	for _, p := range d.Predicates {
		out.Predicates = append(out.Predicates, Predicate{Name: p.Name, Parameters: cloneParams(p.Parameters)})
	}
	for _, op := range d.Operators {
		out.Operators = append(out.Operators, &Operator{
			Name:         op.Name,
			Parameters:   cloneParams(op.Parameters),
			Precondition: op.Precondition.Clone(),
			Effect:       op.Effect.Clone(),
		})
	}
	return out
}

func cloneParams(ps []Parameter) []Parameter {
	if ps == nil {
		return nil
	}
	out := make([]Parameter, len(ps))
	for i, p := range ps {
		out[i] = Parameter{Name: p.Name, Types: slices.Clone(p.Types)}
	}
	return out
}

// Clone returns a deep copy of the corpus.
func (c *Corpus) Clone() *Corpus {
	if c == nil {
		return nil
	}
	out := &Corpus{Worlds: make([]World, 0, len(c.Worlds))}
	for _, w := range c.Worlds {
		cw := World{Name: w.Name, Objects: slices.Clone(w.Objects)}
		for _, p := range w.Plans {
			cp := Plan{}
			for _, a := range p.Actions {
				cp.Actions = append(cp.Actions, Action{Operator: a.Operator, Args: slices.Clone(a.Args)})
			}
			for _, s := range p.States {
				cp.States = append(cp.States, slices.Clone(s))
			}
			cw.Plans = append(cw.Plans, cp)
		}
		out.Worlds = append(out.Worlds, cw)
	}
	return out
}
