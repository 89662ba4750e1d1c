package extractor

import (
	"strings"

	"github.com/talentlens/resume-parser/internal/resume/domain"
	"github.com/talentlens/resume-parser/internal/resume/taxonomy"
)

// Skills matches taxonomy skills by plain substring search, so short names
// such as "r" or "go" also match inside unrelated words.
type Skills struct {
	taxonomy *taxonomy.Taxonomy
}

// NewSkills creates a skill extractor over tax
func NewSkills(tax *taxonomy.Taxonomy) *Skills {
	return &Skills{taxonomy: tax}
}

// Extract matches the flattened taxonomy against text
func (s *Skills) Extract(text string) []string {
	return s.ExtractFrom(text, nil)
}

// ExtractFrom matches candidates against text, falling back to the whole
// taxonomy when candidates is empty. Skills are returned as declared, in
// the order they were found, without duplicates. Abbreviation expansions
// are appended after the direct matches.
func (s *Skills) ExtractFrom(text string, candidates []string) []string {
	if len(candidates) == 0 {
		candidates = s.taxonomy.Flatten()
	}

	lower := strings.ToLower(text)
	found := make([]string, 0)
	seen := make(map[string]bool)
	add := func(skill string) {
		if !seen[skill] {
			seen[skill] = true
			found = append(found, skill)
		}
	}

	for _, skill := range candidates {
		if strings.Contains(lower, strings.ToLower(skill)) {
			add(skill)
		}
	}

	for _, a := range s.taxonomy.Abbreviations() {
		if strings.Contains(lower, strings.ToLower(a.Short)) {
			add(a.Expanded)
		}
	}

	return found
}

// Categorize groups skills using the extractor's taxonomy
func (s *Skills) Categorize(skills []string) []domain.SkillGroup {
	return s.taxonomy.Categorize(skills)
}
