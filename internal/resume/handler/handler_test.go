package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentlens/resume-parser/internal/resume/domain"
	"github.com/talentlens/resume-parser/internal/resume/events"
	"github.com/talentlens/resume-parser/internal/resume/handler"
	"github.com/talentlens/resume-parser/internal/resume/service"
	"github.com/talentlens/resume-parser/internal/resume/taxonomy"
	apperrors "github.com/talentlens/resume-parser/pkg/errors"
	"github.com/talentlens/resume-parser/pkg/i18n"
	"github.com/talentlens/resume-parser/pkg/logger"
	"github.com/talentlens/resume-parser/pkg/messaging"
	"github.com/talentlens/resume-parser/pkg/testutil"
)

type fakeParser struct {
	result   *domain.ParseResult
	err      error
	calls    int
	lastText string
	channel  events.Channel
}

func (f *fakeParser) Parse(ctx context.Context, text string, channel events.Channel) (*domain.ParseResult, error) {
	f.calls++
	f.lastText = text
	f.channel = channel
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.EmptyResume()
	}
	return f.result, f.err
}

func (f *fakeParser) Taxonomy() *taxonomy.Taxonomy {
	return taxonomy.Default()
}

type fakeBreaker struct {
	name, state string
}

func (f fakeBreaker) Name() string  { return f.name }
func (f fakeBreaker) State() string { return f.state }

type fakeBroker struct{}

func (fakeBroker) Health() map[string]string { return map[string]string{"status": "up"} }

func sampleResult() *domain.ParseResult {
	tax := taxonomy.Default()
	skills := []string{"python", "docker", "amazon web services"}
	return &domain.ParseResult{
		Name: domain.StringPtr("Jane Doe"),
		Contact: domain.ContactInfo{
			Emails:   []string{"jane@example.com", "jd@work.io"},
			Phones:   []string{},
			LinkedIn: []string{"linkedin.com/in/janedoe"},
			GitHub:   []string{},
		},
		Skills:      skills,
		SkillGroups: tax.Categorize(skills),
		Education: []domain.EducationEntry{{
			Degree:      domain.StringPtr("Bachelor of Science"),
			Major:       domain.StringPtr("Computer Science"),
			Institution: domain.StringPtr("MIT"),
			DateRange:   domain.StringPtr("2016-2020"),
		}},
	}
}

func newRouter(p handler.Parser, breakers ...handler.BreakerReporter) http.Handler {
	h := handler.NewHandler(p, breakers, fakeBroker{}, logger.Nop())
	r := chi.NewRouter()
	r.Use(i18n.Middleware)
	h.Routes(r)
	return r
}

func postForm(t *testing.T, router http.Handler, text string, lang string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewFormRequest("/", url.Values{"resume_text": {text}})
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	return testutil.ExecuteRequest(router, req)
}

func TestForm_Get(t *testing.T) {
	rec := testutil.ExecuteRequest(newRouter(&fakeParser{}), httptest.NewRequest(http.MethodGet, "/", nil))

	testutil.AssertStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	testutil.AssertBodyContains(t, rec, "Paste your resume text here:", "Parse Resume")
}

func TestForm_EmptySubmissionWarnsWithoutParsing(t *testing.T) {
	parser := &fakeParser{}

	rec := postForm(t, newRouter(parser), "   ", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter some resume text to parse.")
	assert.Equal(t, 0, parser.calls)
}

func TestForm_RendersResults(t *testing.T) {
	parser := &fakeParser{result: sampleResult()}

	rec := postForm(t, newRouter(parser), "resume text", "")
	body := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, events.ChannelWeb, parser.channel)
	assert.Contains(t, body, "Jane Doe")
	assert.Contains(t, body, "jane@example.com, jd@work.io")
	assert.Contains(t, body, "linkedin.com/in/janedoe")
	assert.Contains(t, body, "<strong>Bachelor of Science in Computer Science</strong>")
	assert.Contains(t, body, "<em>MIT — 2016-2020</em>")
	assert.Contains(t, body, "Programming Languages")
	assert.Contains(t, body, "Devops Tools")
	assert.Contains(t, body, "<li>amazon web services</li>")
	assert.NotContains(t, body, "<strong>Phone:</strong>")
}

func TestForm_NothingFound(t *testing.T) {
	parser := &fakeParser{result: &domain.ParseResult{}}

	body := postForm(t, newRouter(parser), "hello", "").Body.String()

	assert.Contains(t, body, "Not found")
	assert.Contains(t, body, "No education information found")
	assert.Contains(t, body, "No skills found")
}

func TestForm_Localized(t *testing.T) {
	parser := &fakeParser{result: &domain.ParseResult{}}

	body := postForm(t, newRouter(parser), "hallo", "de-DE,de;q=0.9").Body.String()

	assert.Contains(t, body, "Nicht gefunden")
	assert.Contains(t, body, `lang="de"`)
}

func TestForm_EscapesInput(t *testing.T) {
	parser := &fakeParser{result: &domain.ParseResult{Name: domain.StringPtr("<script>x</script>")}}

	body := postForm(t, newRouter(parser), "<b>text</b>", "").Body.String()

	assert.NotContains(t, body, "<script>x</script>")
	assert.Contains(t, body, "&lt;b&gt;text&lt;/b&gt;")
}

func TestForm_RecognizerFailure(t *testing.T) {
	parser := &fakeParser{err: errors.New("connection refused")}

	rec := postForm(t, newRouter(parser), "resume", "")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Entity recognition is currently unavailable")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func postJSON(t *testing.T, router http.Handler, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := testutil.ExecuteRequest(router, testutil.NewHTTPRequest(http.MethodPost, "/api/v1/resumes/parse", body))

	var env envelope
	testutil.ParseJSONBody(t, rec, &env)
	return rec, env
}

func TestAPI_Parse(t *testing.T) {
	parser := &fakeParser{result: sampleResult()}

	rec, env := postJSON(t, newRouter(parser), `{"text":"Jane Doe resume"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Jane Doe resume", parser.lastText)
	assert.Equal(t, events.ChannelAPI, parser.channel)

	var result domain.ParseResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "Jane Doe", domain.Deref(result.Name))
	assert.Equal(t, []string{"python", "docker", "amazon web services"}, result.Skills)
	require.Len(t, result.Education, 1)
	assert.Equal(t, "MIT", domain.Deref(result.Education[0].Institution))
}

func TestAPI_ParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid json", `{"text":`, nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown field", `{"resume":"x"}`, nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing text", `{}`, nil, http.StatusBadRequest, "EMPTY_RESUME"},
		{"empty text", `{"text":""}`, nil, http.StatusBadRequest, "EMPTY_RESUME"},
		{"text too long", `{"text":"` + strings.Repeat("a", 50001) + `"}`, nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"blank text", `{"text":"  "}`, nil, http.StatusBadRequest, "EMPTY_RESUME"},
		{"recognizer down", `{"text":"resume"}`, errors.New("timeout"), http.StatusBadGateway, "UPSTREAM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := postJSON(t, newRouter(&fakeParser{err: tt.err}), tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestAPI_EmptyTextPublishesFailure(t *testing.T) {
	for _, body := range []string{`{}`, `{"text":""}`, `{"text":"  \n "}`} {
		t.Run(body, func(t *testing.T) {
			pub := testutil.NewMockPublisher()
			primary := &testutil.MockRecognizer{}
			svc := service.NewService(service.Config{
				Primary:  primary,
				Recorder: events.NewRecorder(pub, logger.Nop()),
			}, logger.Nop())

			rec, env := postJSON(t, newRouter(svc), body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, "EMPTY_RESUME", env.Error.Code)
			assert.Equal(t, 0, primary.Calls)
			assert.Equal(t, []string{messaging.EventResumeFailed}, pub.Types())
		})
	}
}

func TestAPI_Taxonomy(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeParser{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/taxonomy", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data handler.TaxonomyResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Len(t, env.Data.Categories, 10)
	assert.Equal(t, "programming_languages", env.Data.Categories[0].Name)
	assert.Len(t, env.Data.Abbreviations, 13)
}

func TestAPI_UnknownRoute(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	req.Header.Set("Accept-Language", "de")
	rec := testutil.ExecuteRequest(newRouter(&fakeParser{}), req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var env envelope
	testutil.ParseJSONBody(t, rec, &env)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "route /api/v1/nope nicht gefunden", env.Error.Message)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		breakers   []handler.BreakerReporter
		wantStatus string
	}{
		{"all closed", []handler.BreakerReporter{fakeBreaker{"primary", "closed"}, fakeBreaker{"secondary", "closed"}}, "healthy"},
		{"one open", []handler.BreakerReporter{fakeBreaker{"primary", "open"}, fakeBreaker{"secondary", "closed"}}, "degraded"},
		{"half open", []handler.BreakerReporter{fakeBreaker{"primary", "half-open"}}, "healthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(&fakeParser{}, tt.breakers...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, http.StatusOK, rec.Code)
			var env struct {
				Data struct {
					Status      string            `json:"status"`
					Recognizers map[string]string `json:"recognizers"`
					RabbitMQ    map[string]string `json:"rabbitmq"`
				} `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, tt.wantStatus, env.Data.Status)
			assert.Len(t, env.Data.Recognizers, len(tt.breakers))
			assert.Equal(t, "up", env.Data.RabbitMQ["status"])
		})
	}
}
