package httputil

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/talentlens/resume-parser/pkg/errors"
	"github.com/talentlens/resume-parser/pkg/i18n"
)

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody represents an error in the response
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	write(w, statusCode, Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	})
}

// Error sends an error response in the default locale
func Error(w http.ResponseWriter, err error) {
	status, body := errorBody(err, i18n.NewLocalizer(i18n.DefaultLocale), false)
	write(w, status, Response{Error: body})
}

// ErrorLocalized sends an error response localized for the request
func ErrorLocalized(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorBody(err, i18n.LocalizerFromContext(r.Context()), true)
	write(w, status, Response{Error: body})
}

// errorBody maps err onto a status code and body. Anything that is not an
// AppError is reported as an internal error without leaking its text.
func errorBody(err error, l *i18n.Localizer, localize bool) (int, *ErrorBody) {
	var appErr *errors.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, &ErrorBody{
			Code:    "INTERNAL_ERROR",
			Message: l.T("errors.internal"),
		}
	}

	message := appErr.Message
	if localize && appErr.MessageKey != "" {
		message = l.T(appErr.MessageKey, appErr.Params)
	}

	return appErr.StatusCode, &ErrorBody{
		Code:    appErr.Code,
		Message: message,
		Details: appErr.Details,
	}
}

func write(w http.ResponseWriter, statusCode int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// DecodeJSON decodes the request body into the provided struct
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.BadRequest("request body too large")
		}
		localizer := i18n.LocalizerFromContext(r.Context())
		return errors.BadRequest(localizer.T("errors.invalid_json"))
	}
	return nil
}
