package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talentlens/resume-parser/internal/resume/domain"
	"github.com/talentlens/resume-parser/internal/resume/events"
	"github.com/talentlens/resume-parser/internal/resume/taxonomy"
	"github.com/talentlens/resume-parser/pkg/errors"
	"github.com/talentlens/resume-parser/pkg/httputil"
	"github.com/talentlens/resume-parser/pkg/logger"
)

// recognitionService is how failing recognizers are named to users
const recognitionService = "Entity recognition"

// Parser parses resumes; implemented by service.Service
type Parser interface {
	Parse(ctx context.Context, text string, channel events.Channel) (*domain.ParseResult, error)
	Taxonomy() *taxonomy.Taxonomy
}

// BreakerReporter exposes the circuit state of a guarded recognizer
type BreakerReporter interface {
	Name() string
	State() string
}

// BrokerReporter exposes the health of the event broker connection
type BrokerReporter interface {
	Health() map[string]string
}

// Handler serves the resume form, the JSON API and the health check
type Handler struct {
	parser      Parser
	recognizers []BreakerReporter
	broker      BrokerReporter
	logger      *logger.Logger
}

// NewHandler creates a new resume handler. broker may be nil when events
// are disabled.
func NewHandler(parser Parser, recognizers []BreakerReporter, broker BrokerReporter, log *logger.Logger) *Handler {
	return &Handler{
		parser:      parser,
		recognizers: recognizers,
		broker:      broker,
		logger:      log.WithComponent("handler"),
	}
}

// Routes registers all endpoints on r
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Get("/", h.Form)
	r.Post("/", h.Submit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/resumes/parse", h.Parse)
		r.Get("/taxonomy", h.Taxonomy)
		r.NotFound(h.NotFound)
	})
}

// NotFound answers unknown API routes with a JSON error
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	httputil.ErrorLocalized(w, r, errors.NotFound("route "+r.URL.Path))
}

// upstreamError wraps errors that carry no HTTP meaning as a failing
// recognizer; application errors pass through.
func upstreamError(err error) *errors.AppError {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return errors.Upstream(recognitionService, err)
}

// healthStatus is "degraded" while any recognizer breaker is open
func (h *Handler) healthStatus() (string, map[string]string) {
	status := "healthy"
	states := make(map[string]string, len(h.recognizers))
	for _, rec := range h.recognizers {
		state := rec.State()
		states[rec.Name()] = state
		if state == "open" {
			status = "degraded"
		}
	}
	return status, states
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status, states := h.healthStatus()

	body := map[string]interface{}{
		"status":      status,
		"service":     "resume-parser",
		"recognizers": states,
	}
	if h.broker != nil {
		body["rabbitmq"] = h.broker.Health()
	}

	httputil.JSON(w, http.StatusOK, body)
}
