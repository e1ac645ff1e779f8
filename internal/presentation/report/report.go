// Package report renders a learning run as Markdown.
package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/locus/pkg/domain"
)

// Markdown summarizes the induced machines and the rewritten operators.
// d may be nil when only the model is available.
func Markdown(d *domain.Domain, model *domain.Model) string {
	var sb strings.Builder

	name := model.Domain
	if d != nil {
		name = d.Name
	}
	fmt.Fprintf(&sb, "# Domain `%s`\n\n", name)

	sb.WriteString("## Machines\n\n")
	sb.WriteString("| Type | States | Edges | Parameters |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, m := range model.Machines {
		params := 0
		for _, s := range m.States {
			params += len(s.Parameters)
		}
		fmt.Fprintf(&sb, "| %s | %d | %d | %d |\n", m.Type, len(m.States), len(m.Edges), params)
	}

	for _, m := range model.Machines {
		fmt.Fprintf(&sb, "\n### %s\n\n", m.Type)
		for _, s := range m.States {
			label := s.Predicate
			if label == "" {
				label = fmt.Sprintf("state %d", s.ID)
			}
			fmt.Fprintf(&sb, "- **%s**: %s\n", label, joinTransitions(s.Transitions))
			for i, p := range s.Parameters {
				fmt.Fprintf(&sb, "  - `?v%d` %s bound at %s\n", i+1, strings.Join(p.Types, "|"), joinTags(p.Tags))
			}
		}
	}

	if d == nil {
		return sb.String()
	}

	sb.WriteString("\n## Operators\n\n")
	for _, op := range d.Operators {
		fmt.Fprintf(&sb, "### %s\n\n", op.Name)
		sb.WriteString("```\n")
		fmt.Fprintf(&sb, "pre: %s\n", exprOrEmpty(op.Precondition))
		fmt.Fprintf(&sb, "eff: %s\n", exprOrEmpty(op.Effect))
		sb.WriteString("```\n\n")
	}
	return sb.String()
}

func joinTransitions(ts []domain.Transition) string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = "`" + t.String() + "`"
	}
	return strings.Join(out, ", ")
}

func joinTags(tags []domain.Tag) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "`" + t.String() + "`"
	}
	return strings.Join(out, ", ")
}

func exprOrEmpty(e *domain.Expr) string {
	if e == nil {
		return "(and)"
	}
	return e.String()
}
