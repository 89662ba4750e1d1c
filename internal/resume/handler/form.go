package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/talentlens/resume-parser/internal/resume/domain"
	"github.com/talentlens/resume-parser/internal/resume/events"
	"github.com/talentlens/resume-parser/pkg/errors"
	"github.com/talentlens/resume-parser/pkg/httputil"
	"github.com/talentlens/resume-parser/pkg/i18n"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// textField is the form field holding the resume text
const textField = "resume_text"

type pageData struct {
	Lang    string
	T       func(key string) string
	Text    string
	Warning string
	Error   string
	Result  *resultView
}

type resultView struct {
	Name         string
	Emails       string
	Phones       string
	LinkedIn     string
	GitHub       string
	Education    []educationView
	SkillColumns [][]domain.SkillGroup
	HasSkills    bool
}

type educationView struct {
	Headline string
	Subline  string
}

// Form handles GET /
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.page(r))
}

// Submit handles POST /. Blank text shows a warning without parsing.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	data := h.page(r)

	if err := r.ParseForm(); err != nil {
		data.Error = data.T("errors.bad_request")
		h.render(w, r, http.StatusBadRequest, data)
		return
	}
	data.Text = r.PostForm.Get(textField)

	if strings.TrimSpace(data.Text) == "" {
		data.Warning = data.T("form.empty_warning")
		h.render(w, r, http.StatusOK, data)
		return
	}

	result, err := h.parser.Parse(r.Context(), data.Text, events.ChannelWeb)
	if err != nil {
		h.logger.Warn().Err(err).
			Str("request_id", httputil.GetRequestID(r.Context())).
			Msg("form submission failed")

		appErr := upstreamError(err)
		data.Error = appErr.Localize(r.Context())
		h.render(w, r, appErr.StatusCode, data)
		return
	}

	data.Result = newResultView(result, data.T)
	h.render(w, r, http.StatusOK, data)
}

func (h *Handler) page(r *http.Request) *pageData {
	localizer := i18n.LocalizerFromContext(r.Context())
	return &pageData{
		Lang: localizer.Locale(),
		T: func(key string) string {
			return localizer.T(key)
		},
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data *pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error().Err(err).Msg("failed to render page")
		appErr := errors.Internal("page rendering failed")
		http.Error(w, appErr.Localize(r.Context()), appErr.StatusCode)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func newResultView(result *domain.ParseResult, t func(string) string) *resultView {
	view := &resultView{
		Name:         t("results.not_found"),
		Emails:       strings.Join(result.Contact.Emails, ", "),
		Phones:       strings.Join(result.Contact.Phones, ", "),
		LinkedIn:     strings.Join(result.Contact.LinkedIn, ", "),
		GitHub:       strings.Join(result.Contact.GitHub, ", "),
		SkillColumns: domain.Columns(result.SkillGroups, 3),
		HasSkills:    len(result.Skills) > 0,
	}
	if result.Name != nil {
		view.Name = *result.Name
	}
	for _, e := range result.Education {
		view.Education = append(view.Education, educationView{
			Headline: e.Headline(),
			Subline:  e.Subline(),
		})
	}
	return view
}
