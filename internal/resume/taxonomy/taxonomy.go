// Package taxonomy holds the skill catalogue used to match and group skills.
// A Taxonomy is built once at startup and only read afterwards, so a single
// value may be shared across goroutines.
package taxonomy

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/talentlens/resume-parser/internal/resume/domain"
)

// OtherKey is the bucket for skills that belong to no category
const OtherKey = "other"

// Category is a named list of canonical skills
type Category struct {
	Name   string   `yaml:"name" json:"name"`
	Skills []string `yaml:"skills" json:"skills"`
}

// Abbreviation maps a short form to the skill it stands for
type Abbreviation struct {
	Short    string `yaml:"short" json:"short"`
	Expanded string `yaml:"expanded" json:"expanded"`
}

// Taxonomy is an ordered set of skill categories. Category order decides
// which category a skill listed twice is attributed to.
type Taxonomy struct {
	categories    []Category
	abbreviations []Abbreviation
}

// New builds a taxonomy from categories in declaration order. Empty
// categories and blank skill names are rejected.
func New(categories []Category) (*Taxonomy, error) {
	seen := make(map[string]bool, len(categories))
	out := make([]Category, 0, len(categories))
	for i, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category %d: missing name", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("category %q declared twice", name)
		}
		seen[name] = true

		if len(c.Skills) == 0 {
			return nil, fmt.Errorf("category %q: no skills", name)
		}
		skills := make([]string, len(c.Skills))
		for j, s := range c.Skills {
			if strings.TrimSpace(s) == "" {
				return nil, fmt.Errorf("category %q: blank skill at position %d", name, j)
			}
			skills[j] = s
		}
		out = append(out, Category{Name: name, Skills: skills})
	}

	abbreviations := make([]Abbreviation, len(defaultAbbreviations))
	copy(abbreviations, defaultAbbreviations)

	return &Taxonomy{categories: out, abbreviations: abbreviations}, nil
}

// Default returns the built-in taxonomy
func Default() *Taxonomy {
	t, err := New(defaultCategories)
	if err != nil {
		panic("taxonomy: invalid built-in categories: " + err.Error())
	}
	return t
}

type fileFormat struct {
	Categories []Category `yaml:"categories"`
}

// LoadFile reads a taxonomy from a YAML file of the form
//
//	categories:
//	  - name: programming_languages
//	    skills: [python, go]
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML taxonomy document
func Parse(data []byte) (*Taxonomy, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode taxonomy: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("decode taxonomy: no categories")
	}
	return New(f.Categories)
}

// Categories returns a copy of the categories in declaration order
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Skills: append([]string(nil), c.Skills...)}
	}
	return out
}

// Abbreviations returns the abbreviation table in lookup order
func (t *Taxonomy) Abbreviations() []Abbreviation {
	return append([]Abbreviation(nil), t.abbreviations...)
}

// Flatten lists every skill of every category in declaration order.
// A skill declared in two categories appears twice.
func (t *Taxonomy) Flatten() []string {
	var out []string
	for _, c := range t.categories {
		out = append(out, c.Skills...)
	}
	return out
}

// CategoryOf returns the first category containing skill, compared
// case-insensitively, or false.
func (t *Taxonomy) CategoryOf(skill string) (string, bool) {
	for _, c := range t.categories {
		for _, s := range c.Skills {
			if strings.EqualFold(s, skill) {
				return c.Name, true
			}
		}
	}
	return "", false
}

// Categorize groups skills by category. Groups appear in the order their
// first skill appears in skills; unmatched skills go to the "other" group.
func (t *Taxonomy) Categorize(skills []string) []domain.SkillGroup {
	var groups []domain.SkillGroup
	index := make(map[string]int)

	for _, skill := range skills {
		key, ok := t.CategoryOf(skill)
		if !ok {
			key = OtherKey
		}
		i, exists := index[key]
		if !exists {
			i = len(groups)
			index[key] = i
			groups = append(groups, domain.SkillGroup{Key: key, Title: Title(key)})
		}
		groups[i].Skills = append(groups[i].Skills, skill)
	}

	return groups
}

// Title turns a category key into a display title, e.g. "ai_ml" to "Ai Ml"
func Title(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
