package main

import (
	"fmt"

	"github.com/talentlens/resume-parser/internal/resume/events"
	"github.com/talentlens/resume-parser/internal/resume/handler"
	"github.com/talentlens/resume-parser/internal/resume/ner"
	"github.com/talentlens/resume-parser/internal/resume/service"
	"github.com/talentlens/resume-parser/internal/resume/taxonomy"
	"github.com/talentlens/resume-parser/pkg/config"
	"github.com/talentlens/resume-parser/pkg/logger"
	"github.com/talentlens/resume-parser/pkg/messaging"
)

// app holds the collaborators shared by the serve and parse commands
type app struct {
	service *service.Service
	guards  []*ner.Guard
	rmq     *messaging.RabbitMQ
}

func newApp(cfg *config.Config, log *logger.Logger) (*app, error) {
	tax, err := loadTaxonomy(cfg.Extraction.TaxonomyFile)
	if err != nil {
		return nil, err
	}

	guardCfg := ner.GuardConfig{
		MaxFailures:       cfg.NER.MaxFailures,
		Timeout:           cfg.NER.BreakerTimeout,
		HalfOpenSuccesses: cfg.NER.HalfOpenSuccesses,
		RequestsPerSecond: cfg.NER.RequestsPerSecond,
		Burst:             cfg.NER.Burst,
	}

	a := &app{}

	primary := ner.NewGuard("token-classifier",
		ner.NewTokenClassifier(cfg.NER.PrimaryURL, cfg.NER.PrimaryToken, cfg.NER.Timeout),
		guardCfg, log)
	a.guards = append(a.guards, primary)

	var secondary ner.Recognizer
	if cfg.NER.SecondaryURL != "" {
		guard := ner.NewGuard("spacy",
			ner.NewSpacyClient(cfg.NER.SecondaryURL, cfg.NER.SecondaryModel, cfg.NER.Timeout),
			guardCfg, log)
		a.guards = append(a.guards, guard)
		secondary = guard
	}

	var publisher messaging.EventPublisher = messaging.NopPublisher{}
	if cfg.RabbitMQ.Enabled() {
		rmq, err := messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			return nil, err
		}
		p, err := messaging.NewPublisher(rmq, cfg.RabbitMQ.Exchange, serviceName, log)
		if err != nil {
			rmq.Close()
			return nil, err
		}
		a.rmq = rmq
		publisher = p
	}

	a.service = service.NewService(service.Config{
		Primary:    primary,
		Secondary:  secondary,
		Taxonomy:   tax,
		DateWindow: cfg.Extraction.DateWindow,
		Recorder:   events.NewRecorder(publisher, log),
	}, log)

	return a, nil
}

func loadTaxonomy(path string) (*taxonomy.Taxonomy, error) {
	if path == "" {
		return taxonomy.Default(), nil
	}
	tax, err := taxonomy.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	return tax, nil
}

// reporters lists the guarded recognizers for the health check
func (a *app) reporters() []handler.BreakerReporter {
	out := make([]handler.BreakerReporter, 0, len(a.guards))
	for _, g := range a.guards {
		out = append(out, g)
	}
	return out
}

// broker returns the broker health reporter, or nil when events are disabled
func (a *app) broker() handler.BrokerReporter {
	if a.rmq == nil {
		return nil
	}
	return a.rmq
}

func (a *app) Close() {
	if a.rmq != nil {
		a.rmq.Close()
	}
}
