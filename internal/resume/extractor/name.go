package extractor

import (
	"context"
	"strings"

	"github.com/talentlens/resume-parser/internal/resume/domain"
	"github.com/talentlens/resume-parser/internal/resume/ner"
)

// Name finds the candidate's name with a primary recognizer, consulting a
// secondary recognizer only when the primary finds no person at all.
type Name struct {
	primary   ner.Recognizer
	secondary ner.Recognizer
}

// NewName creates a name extractor. secondary may be nil.
func NewName(primary, secondary ner.Recognizer) *Name {
	return &Name{primary: primary, secondary: secondary}
}

// Extract returns the first person detected. Finding nobody is not an
// error; recognizer errors are returned as they are.
func (n *Name) Extract(ctx context.Context, text string) (string, bool, error) {
	for _, r := range []ner.Recognizer{n.primary, n.secondary} {
		if r == nil {
			continue
		}
		entities, err := r.Recognize(ctx, text)
		if err != nil {
			return "", false, err
		}
		if name, ok := firstPerson(entities); ok {
			return name, true, nil
		}
	}
	return "", false, nil
}

func firstPerson(entities []domain.Entity) (string, bool) {
	for _, e := range entities {
		if e.Type != domain.EntityPerson {
			continue
		}
		if name := strings.TrimSpace(e.Text); name != "" {
			return name, true
		}
	}
	return "", false
}
