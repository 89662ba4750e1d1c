package extractor

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/talentlens/resume-parser/internal/resume/domain"
	"github.com/talentlens/resume-parser/internal/resume/ner"
)

// DefaultDateWindow is the largest distance, in bytes, at which a date is
// paired with an organization by the fallback pass.
const DefaultDateWindow = 120

var degreeKeywords = []string{
	"bachelor", "master", "phd", "b.sc", "m.sc", "b.tech", "m.tech",
	"bachelor of science", "master of science", "bachelor of arts",
	"master of arts", "bachelor of engineering", "master of engineering",
	"bachelor of technology", "master of technology", "bachelor of computer science",
	"master of computer science", "bachelor of information technology",
	"master of information technology", "bachelor of business administration",
	"master of business administration", "bachelor of commerce",
	"master of commerce",
}

var majorSeparator = regexp.MustCompile(`(?i) in `)

// Trimmed from both ends of degree and major once institution and date
// text have been cut out.
const separatorChars = " \t,;:|/—–-"

// Education finds degree lines and, failing that, pairs organizations with
// nearby dates.
type Education struct {
	orgs   ner.Recognizer
	window int
}

// NewEducation creates an education extractor. orgs supplies organization
// spans; window bounds the fallback pairing distance.
func NewEducation(orgs ner.Recognizer, window int) *Education {
	if window <= 0 {
		window = DefaultDateWindow
	}
	return &Education{orgs: orgs, window: window}
}

// Extract runs the organization recognizer once and parses text with the
// organizations it reports.
func (e *Education) Extract(ctx context.Context, text string) ([]domain.EducationEntry, error) {
	entities, err := e.orgs.Recognize(ctx, text)
	if err != nil {
		return nil, err
	}
	return ParseEducation(text, ner.OfType(entities, domain.EntityOrganization), e.window), nil
}

// ParseEducation builds one entry per line naming a degree. If no such line
// exists it pairs each organization with the nearest date within window.
func ParseEducation(text string, orgs []domain.Entity, window int) []domain.EducationEntry {
	entries := make([]domain.EducationEntry, 0)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !hasDegreeKeyword(line) {
			continue
		}
		entries = append(entries, parseDegreeLine(line, orgs))
	}

	if len(entries) > 0 || len(orgs) == 0 {
		return entries
	}

	return pairOrganizations(text, orgs, window)
}

func hasDegreeKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, k := range degreeKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

type span struct{ start, end int }

func parseDegreeLine(line string, orgs []domain.Entity) domain.EducationEntry {
	var entry domain.EducationEntry
	var cut []span

	if inst, loc, ok := institutionIn(line, orgs); ok {
		entry.Institution = domain.StringPtr(inst)
		cut = append(cut, loc)
	}

	if d, ok := lineDate(line); ok {
		entry.DateRange = domain.StringPtr(normalizeDate(d.text))
		cut = append(cut, span{d.start, d.end})
	}

	sep := -1
	for _, loc := range majorSeparator.FindAllStringIndex(line, -1) {
		if !overlaps(span{loc[0], loc[1]}, cut) {
			sep = loc[0]
			break
		}
	}

	if sep < 0 {
		entry.Degree = domain.StringPtr(clean(line, 0, len(line), cut))
		return entry
	}

	entry.Degree = domain.StringPtr(clean(line, 0, sep, cut))
	entry.Major = domain.StringPtr(clean(line, sep+len(" in "), len(line), cut))
	return entry
}

// institutionIn returns the first organization, in recognizer order, whose
// text occurs in line ignoring case, and where it occurs.
func institutionIn(line string, orgs []domain.Entity) (string, span, bool) {
	for _, org := range orgs {
		if org.Text == "" {
			continue
		}
		if start := indexFold(line, org.Text); start >= 0 {
			return org.Text, span{start, start + len(org.Text)}, true
		}
	}
	return "", span{}, false
}

// lineDate prefers the last year range on the line, then the first year
func lineDate(line string) (dateMatch, bool) {
	ranges := findRanges(line)
	if len(ranges) > 0 {
		return ranges[len(ranges)-1], true
	}
	if years := findYears(line); len(years) > 0 {
		return years[0], true
	}
	return dateMatch{}, false
}

// clean returns line[from:to] with the cut spans removed, whitespace
// collapsed and dangling separators trimmed.
func clean(line string, from, to int, cut []span) string {
	var b strings.Builder
	for i := from; i < to; {
		skipped := false
		for _, c := range cut {
			if i >= c.start && i < c.end {
				b.WriteByte(' ')
				i = c.end
				skipped = true
				break
			}
		}
		if skipped {
			continue
		}
		b.WriteByte(line[i])
		i++
	}

	// a comma left alone by a cut joins the previous word, or is dropped
	// when that word already ends in a separator
	var words []string
	for _, w := range strings.Fields(b.String()) {
		if strings.Trim(w, ",;:") != "" || len(words) == 0 {
			words = append(words, w)
			continue
		}
		prev := words[len(words)-1]
		if !endsWithSeparator(prev) {
			words[len(words)-1] = prev + w
		}
	}

	s := strings.NewReplacer("( )", "", "()", "", "[ ]", "", "[]", "").Replace(strings.Join(words, " "))
	return strings.Trim(strings.Join(strings.Fields(s), " "), separatorChars)
}

func endsWithSeparator(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return strings.ContainsRune(separatorChars, r)
}

func overlaps(s span, spans []span) bool {
	for _, o := range spans {
		if s.start < o.end && o.start < s.end {
			return true
		}
	}
	return false
}

// pairOrganizations is the fallback pass. Distances and the window are
// counted in characters. Ranges beat bare years at equal distance;
// organizations with no date inside window yield nothing.
func pairOrganizations(text string, orgs []domain.Entity, window int) []domain.EducationEntry {
	dates := append(findRanges(text), findYears(text)...)
	entries := make([]domain.EducationEntry, 0)
	if len(dates) == 0 {
		return entries
	}

	positions := make([]int, len(dates))
	for i, d := range dates {
		positions[i] = utf8.RuneCountInString(text[:d.start])
	}

	for _, org := range orgs {
		if org.Text == "" {
			continue
		}

		offset := organizationOffset(text, org)
		if offset < 0 {
			continue
		}
		pos := utf8.RuneCountInString(text[:offset])

		best, found := dateMatch{}, false
		bestDistance := 0
		for i, d := range dates {
			dist := abs(pos - positions[i])
			if !found || dist < bestDistance || (dist == bestDistance && d.isRange && !best.isRange) {
				best, bestDistance, found = d, dist, true
			}
		}
		if !found || bestDistance > window {
			continue
		}

		entries = append(entries, domain.EducationEntry{
			Institution: domain.StringPtr(org.Text),
			DateRange:   domain.StringPtr(normalizeDate(best.text)),
		})
	}

	return entries
}

// organizationOffset finds the first occurrence of the organization in
// text, exact first and then ignoring case. -1 when it cannot be located.
func organizationOffset(text string, org domain.Entity) int {
	if i := strings.Index(text, org.Text); i >= 0 {
		return i
	}
	return indexFold(text, org.Text)
}

// indexFold is strings.Index ignoring case. The returned offset is valid for
// s; an occurrence whose case-folded length differs is not found.
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
