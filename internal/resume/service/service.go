package service

import (
	"context"
	"strings"
	"time"

	"github.com/talentlens/resume-parser/internal/resume/domain"
	"github.com/talentlens/resume-parser/internal/resume/events"
	"github.com/talentlens/resume-parser/internal/resume/extractor"
	"github.com/talentlens/resume-parser/internal/resume/ner"
	"github.com/talentlens/resume-parser/internal/resume/taxonomy"
	"github.com/talentlens/resume-parser/pkg/errors"
	"github.com/talentlens/resume-parser/pkg/httputil"
	"github.com/talentlens/resume-parser/pkg/logger"
)

// Config wires the collaborators of a Service
type Config struct {
	// Primary recognizes persons and organizations
	Primary ner.Recognizer
	// Secondary is consulted for the name only; may be nil
	Secondary  ner.Recognizer
	Taxonomy   *taxonomy.Taxonomy
	DateWindow int
	Recorder   *events.Recorder
}

// Service runs every extractor over one resume: name, contact, skills,
// then education, one after another.
type Service struct {
	primary    ner.Recognizer
	secondary  ner.Recognizer
	taxonomy   *taxonomy.Taxonomy
	skills     *extractor.Skills
	dateWindow int
	recorder   *events.Recorder
	log        *logger.Logger
}

// NewService creates a new resume parsing service
func NewService(cfg Config, log *logger.Logger) *Service {
	tax := cfg.Taxonomy
	if tax == nil {
		tax = taxonomy.Default()
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = events.NewRecorder(nil, log)
	}

	return &Service{
		primary:    cfg.Primary,
		secondary:  cfg.Secondary,
		taxonomy:   tax,
		skills:     extractor.NewSkills(tax),
		dateWindow: cfg.DateWindow,
		recorder:   recorder,
		log:        log.WithComponent("resume"),
	}
}

// Taxonomy returns the taxonomy skills are matched against
func (s *Service) Taxonomy() *taxonomy.Taxonomy {
	return s.taxonomy
}

// Parse extracts all fields from text. Blank text is rejected before any
// extractor runs. Recognizer errors are returned unchanged.
func (s *Service) Parse(ctx context.Context, text string, channel events.Channel) (*domain.ParseResult, error) {
	log := s.log
	if id := httputil.GetRequestID(ctx); id != "" {
		log = log.WithRequestID(id)
	}

	if strings.TrimSpace(text) == "" {
		err := errors.EmptyResume()
		s.recorder.Failed(ctx, channel, err, 0)
		return nil, err
	}

	start := time.Now()

	// name and education share one call to the primary model
	primary := ner.NewMemo(s.primary)

	result, err := s.extract(ctx, text, primary)
	if err != nil {
		elapsed := time.Since(start)
		log.WithError(err).Error().
			Str("channel", string(channel)).
			Dur("duration", elapsed).
			Msg("resume parsing failed")
		s.recorder.Failed(ctx, channel, err, elapsed)
		return nil, err
	}

	result.Duration = time.Since(start)
	result.DurationMS = result.Duration.Milliseconds()

	log.Info().
		Str("channel", string(channel)).
		Strs("fields_found", result.FieldsFound()).
		Int("skill_count", len(result.Skills)).
		Int("education_count", len(result.Education)).
		Int64("duration_ms", result.DurationMS).
		Msg("resume parsed")

	s.recorder.Parsed(ctx, channel, result)

	return result, nil
}

func (s *Service) extract(ctx context.Context, text string, primary ner.Recognizer) (*domain.ParseResult, error) {
	result := &domain.ParseResult{}

	name, found, err := extractor.NewName(primary, s.secondary).Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	if found {
		result.Name = &name
	}

	result.Contact = extractor.ExtractContact(text)

	result.Skills = s.skills.Extract(text)
	result.SkillGroups = s.skills.Categorize(result.Skills)
	if result.SkillGroups == nil {
		result.SkillGroups = []domain.SkillGroup{}
	}

	result.Education, err = extractor.NewEducation(primary, s.dateWindow).Extract(ctx, text)
	if err != nil {
		return nil, err
	}

	return result, nil
}
