package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentlens/resume-parser/internal/resume/domain"
	"github.com/talentlens/resume-parser/internal/resume/events"
	apperrors "github.com/talentlens/resume-parser/pkg/errors"
	"github.com/talentlens/resume-parser/pkg/logger"
	"github.com/talentlens/resume-parser/pkg/messaging"
)

type published struct {
	eventType string
	data      interface{}
	ctxErr    error
}

type fakePublisher struct {
	events []published
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	f.events = append(f.events, published{eventType: eventType, data: data, ctxErr: ctx.Err()})
	return f.err
}

func TestRecorder_Parsed(t *testing.T) {
	pub := &fakePublisher{}
	rec := events.NewRecorder(pub, logger.Nop())

	result := &domain.ParseResult{
		Name:     domain.StringPtr("Jane Doe"),
		Contact:  domain.ContactInfo{Emails: []string{"jane@example.com"}},
		Skills:   []string{"go", "docker"},
		Duration: 42 * time.Millisecond,
	}
	rec.Parsed(context.Background(), events.ChannelAPI, result)

	require.Len(t, pub.events, 1)
	assert.Equal(t, messaging.EventResumeParsed, pub.events[0].eventType)
	assert.Equal(t, messaging.ResumeParsedEvent{
		Channel:        "api",
		FieldsFound:    []string{"name", "emails", "skills"},
		SkillCount:     2,
		EducationCount: 0,
		DurationMS:     42,
	}, pub.events[0].data)
}

func TestRecorder_ParsedNothingFound(t *testing.T) {
	pub := &fakePublisher{}
	events.NewRecorder(pub, logger.Nop()).Parsed(context.Background(), events.ChannelWeb, &domain.ParseResult{})

	require.Len(t, pub.events, 1)
	data := pub.events[0].data.(messaging.ResumeParsedEvent)
	assert.NotNil(t, data.FieldsFound)
	assert.Empty(t, data.FieldsFound)
}

func TestRecorder_Failed(t *testing.T) {
	pub := &fakePublisher{}
	rec := events.NewRecorder(pub, logger.Nop())

	rec.Failed(context.Background(), events.ChannelCLI, errors.New("timeout"), time.Second)
	rec.Failed(context.Background(), events.ChannelWeb, apperrors.EmptyResume(), 0)

	require.Len(t, pub.events, 2)
	assert.Equal(t, messaging.EventResumeFailed, pub.events[0].eventType)
	assert.Equal(t, "RECOGNIZER_ERROR", pub.events[0].data.(messaging.ResumeFailedEvent).ErrorCode)
	assert.Equal(t, int64(1000), pub.events[0].data.(messaging.ResumeFailedEvent).DurationMS)
	assert.Equal(t, "EMPTY_RESUME", pub.events[1].data.(messaging.ResumeFailedEvent).ErrorCode)
}

func TestRecorder_SurvivesCancelledRequest(t *testing.T) {
	pub := &fakePublisher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events.NewRecorder(pub, logger.Nop()).Parsed(ctx, events.ChannelWeb, &domain.ParseResult{})

	require.Len(t, pub.events, 1)
	assert.NoError(t, pub.events[0].ctxErr)
}

func TestRecorder_PublishErrorIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}

	assert.NotPanics(t, func() {
		events.NewRecorder(pub, logger.Nop()).Parsed(context.Background(), events.ChannelAPI, &domain.ParseResult{})
	})
}

func TestRecorder_NilPublisher(t *testing.T) {
	assert.NotPanics(t, func() {
		events.NewRecorder(nil, logger.Nop()).Parsed(context.Background(), events.ChannelAPI, &domain.ParseResult{})
	})
}
