// Package events publishes parse outcomes for auditing. Events carry field
// keys, counts and timings only; resume content never leaves the process.
package events

import (
	"context"
	"time"

	"github.com/talentlens/resume-parser/internal/resume/domain"
	"github.com/talentlens/resume-parser/pkg/errors"
	"github.com/talentlens/resume-parser/pkg/httputil"
	"github.com/talentlens/resume-parser/pkg/logger"
	"github.com/talentlens/resume-parser/pkg/messaging"
)

const publishTimeout = 2 * time.Second

// Channel names the entry point a resume was submitted through
type Channel string

const (
	ChannelWeb Channel = "web"
	ChannelAPI Channel = "api"
	ChannelCLI Channel = "cli"
)

// Recorder publishes parse events. Publishing failures are logged and never
// fail the parse.
type Recorder struct {
	publisher messaging.EventPublisher
	log       *logger.Logger
}

// NewRecorder creates a recorder. A nil publisher drops all events.
func NewRecorder(publisher messaging.EventPublisher, log *logger.Logger) *Recorder {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &Recorder{publisher: publisher, log: log.WithComponent("events")}
}

// Parsed records a successful parse
func (r *Recorder) Parsed(ctx context.Context, channel Channel, result *domain.ParseResult) {
	r.publish(ctx, messaging.EventResumeParsed, messaging.ResumeParsedEvent{
		Channel:        string(channel),
		FieldsFound:    nonNil(result.FieldsFound()),
		SkillCount:     len(result.Skills),
		EducationCount: len(result.Education),
		DurationMS:     result.Duration.Milliseconds(),
	})
}

// Failed records a parse that returned err after elapsed
func (r *Recorder) Failed(ctx context.Context, channel Channel, err error, elapsed time.Duration) {
	code := "RECOGNIZER_ERROR"
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}

	r.publish(ctx, messaging.EventResumeFailed, messaging.ResumeFailedEvent{
		Channel:    string(channel),
		ErrorCode:  code,
		DurationMS: elapsed.Milliseconds(),
	})
}

func (r *Recorder) publish(ctx context.Context, eventType string, data interface{}) {
	// the request may already be finished; the event should still go out
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	ctx = messaging.WithCorrelationID(ctx, httputil.GetRequestID(ctx))
	defer cancel()

	if err := r.publisher.Publish(ctx, eventType, data); err != nil {
		r.log.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish event")
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
