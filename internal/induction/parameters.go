package induction

import (
	"fmt"
	"slices"

	"github.com/aretw0/locus/pkg/domain"
)

// CoveragePolicy decides which consolidated parameters are trusted.
type CoveragePolicy string

const (
	// CoverageExact keeps a parameter only when it carries exactly one tag
	// per transition of its state: tag count equals transition count.
	CoverageExact CoveragePolicy = "exact"
	// CoverageLenient also keeps over-covered parameters (several tags on one
	// transition, usually a symptom of missing observations) as long as every
	// transition of the state carries the parameter.
	CoverageLenient CoveragePolicy = "lenient"
)

// ParseCoveragePolicy validates a policy name; empty selects CoverageExact.
func ParseCoveragePolicy(s string) (CoveragePolicy, error) {
	switch CoveragePolicy(s) {
	case "", CoverageExact:
		return CoverageExact, nil
	case CoverageLenient:
		return CoverageLenient, nil
	}
	return "", fmt.Errorf("unknown coverage policy %q (want %q or %q)", s, CoverageExact, CoverageLenient)
}

// InduceParameters consolidates the surviving hypotheses of every state into
// hidden parameters. The result is indexed by state id.
func InduceParameters(m *Automaton, hs *Hypotheses, policy CoveragePolicy) [][]domain.ParameterInfo {
	out := make([][]domain.ParameterInfo, m.StateCount())
	for s := range out {
		out[s] = induceState(m, s, hs.Survivors(s), policy)
	}
	return out
}

func induceState(m *Automaton, state int, hyps []Hypothesis, policy CoveragePolicy) []domain.ParameterInfo {
	infos := make([]domain.ParameterInfo, 0, len(hyps))
	for _, h := range hyps {
		op, _ := m.catalog.Operator(h.From.Operator)
		infos = append(infos, domain.ParameterInfo{
			Types: slices.Clone(op.Parameters[h.FromArg].Types),
			Tags:  unionTags([]domain.Tag{h.FromTag()}, []domain.Tag{h.ToTag()}),
		})
	}

	for merged := true; merged; {
		merged = false
		for i := 0; i < len(infos); i++ {
			for j := i + 1; j < len(infos); {
				if !mergeable(infos[i], infos[j]) {
					j++
					continue
				}
				infos[i].Tags = unionTags(infos[i].Tags, infos[j].Tags)
				infos = slices.Delete(infos, j, j+1)
				merged = true
			}
		}
	}

	members := m.Members(state)
	kept := infos[:0]
	for _, info := range infos {
		if covers(info, members, policy) {
			kept = append(kept, info)
		}
	}
	slices.SortFunc(kept, func(a, b domain.ParameterInfo) int {
		return domain.CompareTags(a.Tags[0], b.Tags[0])
	})
	return kept
}

func mergeable(a, b domain.ParameterInfo) bool {
	if !(domain.Parameter{Types: a.Types}).SameTypes(domain.Parameter{Types: b.Types}) {
		return false
	}
	for _, t := range b.Tags {
		if a.HasTag(t) {
			return true
		}
	}
	return false
}

func unionTags(a, b []domain.Tag) []domain.Tag {
	out := slices.Clone(a)
	for _, t := range b {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, domain.CompareTags)
	return out
}

// covers applies the coverage filter: every transition of the state must
// carry the parameter, and under CoverageExact the tag count must equal the
// state's transition count.
func covers(info domain.ParameterInfo, members []domain.Transition, policy CoveragePolicy) bool {
	if policy != CoverageLenient && len(info.Tags) != len(members) {
		return false
	}
	for _, t := range members {
		if _, ok := info.Binding(t); !ok {
			return false
		}
	}
	return true
}
