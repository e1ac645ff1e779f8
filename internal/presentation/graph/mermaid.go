package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/locus/pkg/domain"
)

// Overlay contains optional data to highlight on the graph.
type Overlay struct {
	// Types restricts the output to these machines when not empty.
	Types []string
}

// GenerateMermaid produces a Mermaid flowchart of every induced machine,
// one subgraph per object type. It applies semantic styling:
// - State with hidden parameters: [[Subroutine]]
// - Plain state: [Rectangle]
// Parallel edges between the same pair of states share one arrow whose
// label lists every "op.pos" transition.
func GenerateMermaid(model *domain.Model, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if model == nil {
		return sb.String()
	}

	for _, m := range model.Machines {
		if overlay != nil && len(overlay.Types) > 0 && !contains(overlay.Types, m.Type) {
			continue
		}
		safeType := sanitizeMermaidID(m.Type)
		sb.WriteString(fmt.Sprintf("    subgraph %s[\"%s\"]\n", safeType, m.Type))

		for _, s := range m.States {
			opener, closer := "[", "]"
			if len(s.Parameters) > 0 {
				opener, closer = "[[", "]]"
			}
			sb.WriteString(fmt.Sprintf("        %s%s\"%s\"%s\n", stateID(m.Type, s.ID), opener, stateLabel(s), closer))
		}

		type pair struct{ from, to int }
		var order []pair
		labels := make(map[pair][]string)
		for _, e := range m.Edges {
			p := pair{e.From, e.To}
			if _, ok := labels[p]; !ok {
				order = append(order, p)
			}
			labels[p] = append(labels[p], fmt.Sprintf("%s.%d", e.Operator, e.Position))
		}
		for _, p := range order {
			label := strings.ReplaceAll(strings.Join(labels[p], ", "), "\"", "'")
			sb.WriteString(fmt.Sprintf("        %s -- \"%s\" --> %s\n", stateID(m.Type, p.from), label, stateID(m.Type, p.to)))
		}
		sb.WriteString("    end\n")
	}

	return sb.String()
}

func stateID(typ string, id int) string {
	return fmt.Sprintf("%s_s%d", sanitizeMermaidID(typ), id)
}

func stateLabel(s domain.StateModel) string {
	name := s.Predicate
	if name == "" {
		name = fmt.Sprintf("state %d", s.ID)
	}
	if len(s.Parameters) == 0 {
		return name
	}
	params := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		params[i] = strings.Join(p.Types, "|")
	}
	return fmt.Sprintf("%s <br/> (%s)", name, strings.Join(params, ", "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
