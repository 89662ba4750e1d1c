package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventResumeParsed = "resume.parsed"
	EventResumeFailed = "resume.failed"
)

// ExchangeResumeEvents is the default exchange for parse events
const ExchangeResumeEvents = "resume.events"

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// ResumeParsedEvent is published after a successful parse. It records which
// fields were found, never their values.
type ResumeParsedEvent struct {
	Channel        string   `json:"channel"`
	FieldsFound    []string `json:"fields_found"`
	SkillCount     int      `json:"skill_count"`
	EducationCount int      `json:"education_count"`
	DurationMS     int64    `json:"duration_ms"`
}

// ResumeFailedEvent is published when a parse could not complete
type ResumeFailedEvent struct {
	Channel    string `json:"channel"`
	ErrorCode  string `json:"error_code"`
	DurationMS int64  `json:"duration_ms"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return uuid.New().String()
}
