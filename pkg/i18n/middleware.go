package i18n

import (
	"net/http"
)

// Middleware picks the locale from a "lang" query parameter or the
// Accept-Language header and adds it to the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := r.URL.Query().Get("lang")
		if !IsSupported(locale) {
			locale = ParseAcceptLanguage(r.Header.Get("Accept-Language"))
		}

		next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), locale)))
	})
}
