package handler

import (
	"net/http"

	"github.com/talentlens/resume-parser/internal/resume/events"
	"github.com/talentlens/resume-parser/internal/resume/taxonomy"
	"github.com/talentlens/resume-parser/pkg/httputil"
)

// ParseRequest is the body of POST /api/v1/resumes/parse. Missing or blank
// text is left to the parser so it is reported as EMPTY_RESUME.
type ParseRequest struct {
	Text string `json:"text" validate:"max=50000"`
}

// TaxonomyResponse is the body of GET /api/v1/taxonomy
type TaxonomyResponse struct {
	Categories    []taxonomy.Category     `json:"categories"`
	Abbreviations []taxonomy.Abbreviation `json:"abbreviations"`
}

// Parse handles POST /api/v1/resumes/parse
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	if err := httputil.Validate(req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	result, err := h.parser.Parse(r.Context(), req.Text, events.ChannelAPI)
	if err != nil {
		h.logger.Warn().Err(err).
			Str("request_id", httputil.GetRequestID(r.Context())).
			Msg("parse request failed")
		httputil.ErrorLocalized(w, r, upstreamError(err))
		return
	}

	httputil.JSON(w, http.StatusOK, result)
}

// Taxonomy handles GET /api/v1/taxonomy
func (h *Handler) Taxonomy(w http.ResponseWriter, r *http.Request) {
	tax := h.parser.Taxonomy()

	httputil.JSON(w, http.StatusOK, TaxonomyResponse{
		Categories:    tax.Categories(),
		Abbreviations: tax.Abbreviations(),
	})
}
