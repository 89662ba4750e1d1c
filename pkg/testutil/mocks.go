package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/talentlens/resume-parser/internal/resume/domain"
)

// MockRecognizer returns canned entities and counts calls
type MockRecognizer struct {
	Entities []domain.Entity
	Err      error
	Calls    int
	// LastText is the text of the most recent call
	LastText string
}

// Recognize records the call and returns Entities, or Err when set
func (m *MockRecognizer) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	m.Calls++
	m.LastText = text
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Entities, nil
}

// MockPublisher is a mock event publisher for testing
type MockPublisher struct {
	mu              sync.Mutex
	PublishedEvents []PublishedEvent
	Err             error
}

// PublishedEvent represents an event that was published
type PublishedEvent struct {
	Type    string
	Payload interface{}
}

// NewMockPublisher creates a new mock publisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		PublishedEvents: make([]PublishedEvent, 0),
	}
}

// Publish records an event for later verification
func (m *MockPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishedEvents = append(m.PublishedEvents, PublishedEvent{
		Type:    eventType,
		Payload: payload,
	})
	return m.Err
}

// Types lists the published event types in order
func (m *MockPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.PublishedEvents))
	for _, e := range m.PublishedEvents {
		types = append(types, e.Type)
	}
	return types
}

// AssertEventPublished checks if an event of the given type was published
func (m *MockPublisher) AssertEventPublished(t *testing.T, eventType string) {
	t.Helper()
	for _, typ := range m.Types() {
		if typ == eventType {
			return
		}
	}
	t.Errorf("expected event %q to be published, but it wasn't", eventType)
}
