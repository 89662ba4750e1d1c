// Package render draws a ParseResult for the terminal and collects resume
// text through an interactive prompt.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/talentlens/resume-parser/internal/resume/domain"
)

// SkillColumns is the number of columns skill groups are dealt into
const SkillColumns = 3

const defaultWidth = 80

var (
	ColorAccent = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#808080", Dark: "#6C6C6C"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFB86C"}
)

// Styles groups the lipgloss styles used by Result
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Headline lipgloss.Style
	Subline  lipgloss.Style
	Missing  lipgloss.Style
	Rule     lipgloss.Style
	Column   lipgloss.Style
}

// DefaultStyles returns the colored style set
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
		Section:  lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1),
		Label:    lipgloss.NewStyle().Bold(true),
		Headline: lipgloss.NewStyle().Bold(true),
		Subline:  lipgloss.NewStyle().Italic(true).Foreground(ColorMuted),
		Missing:  lipgloss.NewStyle().Foreground(ColorWarn),
		Rule:     lipgloss.NewStyle().Foreground(ColorMuted),
		Column:   lipgloss.NewStyle().PaddingRight(2),
	}
}

// PlainStyles returns styles without any decoration, used when NO_COLOR is
// set or output is not a terminal.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:    plain,
		Section:  plain.MarginTop(1),
		Label:    plain,
		Headline: plain,
		Subline:  plain,
		Missing:  plain,
		Rule:     plain,
		Column:   plain.PaddingRight(2),
	}
}

// StylesFor picks colored or plain styles for the given output
func StylesFor(w io.Writer) Styles {
	if os.Getenv("NO_COLOR") != "" {
		return PlainStyles()
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return PlainStyles()
	}
	return DefaultStyles()
}

// Width returns the terminal width of w, or 80 when unknown
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// Renderer formats parse results as terminal text
type Renderer struct {
	styles Styles
	width  int
}

// NewRenderer creates a renderer. A non-positive width falls back to 80.
func NewRenderer(styles Styles, width int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	return &Renderer{styles: styles, width: width}
}

// Result renders the whole result: name and contact details, education,
// then skills grouped by category.
func (r *Renderer) Result(result *domain.ParseResult) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("Parsed Resume"))
	b.WriteString("\n")

	b.WriteString(r.styles.Section.Render("Personal Information"))
	b.WriteString("\n")
	b.WriteString(r.personal(result))

	b.WriteString(r.styles.Section.Render("Education"))
	b.WriteString("\n")
	b.WriteString(r.education(result.Education))

	b.WriteString(r.styles.Section.Render("Skills"))
	b.WriteString("\n")
	b.WriteString(r.skills(result.SkillGroups))

	return b.String()
}

// Write renders result to w
func (r *Renderer) Write(w io.Writer, result *domain.ParseResult) error {
	_, err := io.WriteString(w, r.Result(result))
	return err
}

func (r *Renderer) personal(result *domain.ParseResult) string {
	field := func(label string, values []string) string {
		value := strings.Join(values, ", ")
		if value == "" {
			value = r.styles.Missing.Render("Not found")
		}
		return r.styles.Label.Render(label+":") + " " + value
	}

	name := domain.Deref(result.Name)
	nameLine := r.styles.Label.Render("Name:") + " "
	if name == "" {
		nameLine += r.styles.Missing.Render("Not found")
	} else {
		nameLine += name
	}

	left := strings.Join([]string{
		nameLine,
		field("Email", result.Contact.Emails),
		field("Phone", result.Contact.Phones),
	}, "\n")
	right := strings.Join([]string{
		field("LinkedIn", result.Contact.LinkedIn),
		field("GitHub", result.Contact.GitHub),
	}, "\n")

	half := r.width / 2
	return lipgloss.JoinHorizontal(lipgloss.Top,
		r.styles.Column.Width(half).Render(left),
		lipgloss.NewStyle().Width(half).Render(right),
	) + "\n"
}

func (r *Renderer) education(entries []domain.EducationEntry) string {
	if len(entries) == 0 {
		return r.styles.Missing.Render("No education information found") + "\n"
	}

	rule := r.styles.Rule.Render(strings.Repeat("-", min(r.width, 40)))
	var b strings.Builder
	for _, e := range entries {
		if h := e.Headline(); h != "" {
			b.WriteString(r.styles.Headline.Render(h))
			b.WriteString("\n")
		}
		if s := e.Subline(); s != "" {
			b.WriteString(r.styles.Subline.Render(s))
			b.WriteString("\n")
		}
		b.WriteString(rule)
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) skills(groups []domain.SkillGroup) string {
	if len(groups) == 0 {
		return r.styles.Missing.Render("No skills found") + "\n"
	}

	colWidth := r.width / SkillColumns
	var rendered []string
	for _, col := range domain.Columns(groups, SkillColumns) {
		var lines []string
		for i, g := range col {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, r.styles.Label.Render(g.Title))
			for _, s := range g.Skills {
				lines = append(lines, fmt.Sprintf("• %s", s))
			}
		}
		rendered = append(rendered, r.styles.Column.Width(colWidth).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n"
}
