package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/talentlens/resume-parser/internal/resume/taxonomy"
)

// Taxonomy renders the skill categories as a table, one row per category.
// Abbreviations follow in a second table when present.
func (r *Renderer) Taxonomy(tax *taxonomy.Taxonomy) string {
	categories := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.Rule).
		Width(r.width).
		StyleFunc(r.cellStyle).
		Headers("Category", "Skills")
	for _, c := range tax.Categories() {
		categories.Row(taxonomy.Title(c.Name), strings.Join(c.Skills, ", "))
	}

	out := categories.Render() + "\n"

	abbreviations := tax.Abbreviations()
	if len(abbreviations) == 0 {
		return out
	}

	abbr := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.styles.Rule).
		StyleFunc(r.cellStyle).
		Headers("Abbreviation", "Expands to")
	for _, a := range abbreviations {
		abbr.Row(a.Short, a.Expanded)
	}
	return out + abbr.Render() + "\n"
}

func (r *Renderer) cellStyle(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return r.styles.Label.Padding(0, 1)
	}
	return lipgloss.NewStyle().Padding(0, 1)
}
