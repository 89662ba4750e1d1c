// Package ner talks to the named-entity recognition services used for name
// and organization detection. Every client satisfies Recognizer so the
// extractors never depend on a concrete model.
package ner

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/talentlens/resume-parser/internal/resume/domain"
)

// Recognizer detects named entities in text and returns typed spans in the
// order the model emits them.
type Recognizer interface {
	Recognize(ctx context.Context, text string) ([]domain.Entity, error)
}

// RecognizerFunc adapts a function to the Recognizer interface
type RecognizerFunc func(ctx context.Context, text string) ([]domain.Entity, error)

// Recognize implements Recognizer
func (f RecognizerFunc) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	return f(ctx, text)
}

// OfType filters entities down to one type, keeping their order
func OfType(entities []domain.Entity, t domain.EntityType) []domain.Entity {
	var out []domain.Entity
	for _, e := range entities {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Memo caches the entities of the most recent text so that several
// extractors can share one call to the same model. Errors are not cached.
type Memo struct {
	next Recognizer

	mu       sync.Mutex
	text     string
	entities []domain.Entity
	valid    bool
}

// NewMemo wraps next with a single-entry cache
func NewMemo(next Recognizer) *Memo {
	return &Memo{next: next}
}

// Recognize implements Recognizer
func (m *Memo) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.text == text {
		return m.entities, nil
	}

	entities, err := m.next.Recognize(ctx, text)
	if err != nil {
		return nil, err
	}

	m.text, m.entities, m.valid = text, entities, true
	return entities, nil
}

// charToByte converts character offsets reported by Python-based services
// into byte offsets into text. Offsets past the end clamp to len(text).
type charToByte []int

func newCharToByte(text string) charToByte {
	offsets := make(charToByte, 0, utf8.RuneCountInString(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

func (c charToByte) at(char int) int {
	if char < 0 {
		return 0
	}
	if char >= len(c) {
		return c[len(c)-1]
	}
	return c[char]
}
