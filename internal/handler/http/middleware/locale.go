package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"golang.org/x/text/language"
)

type localeKey struct{}

var supportedTags = []language.Tag{language.English, language.French, language.German}

var localeMatcher = language.NewMatcher(supportedTags)

// tagLocales lines up with supportedTags.
var tagLocales = []calendar.Locale{calendar.LocaleEN, calendar.LocaleFR, calendar.LocaleDE}

// Locale resolves the request locale from the "locale" query parameter, then
// the Accept-Language header, then fallback.
func Locale(fallback calendar.Locale) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := NegotiateLocale(r, fallback)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), localeKey{}, locale)))
		})
	}
}

// NegotiateLocale picks a supported locale for r.
func NegotiateLocale(r *http.Request, fallback calendar.Locale) calendar.Locale {
	if l, ok := calendar.ParseLocale(r.URL.Query().Get("locale")); ok {
		return l
	}

	header := r.Header.Get("Accept-Language")
	if header == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return tagLocales[idx]
}

// LocaleFromContext returns the negotiated locale, or fallback when the
// middleware did not run.
func LocaleFromContext(ctx context.Context, fallback calendar.Locale) calendar.Locale {
	if l, ok := ctx.Value(localeKey{}).(calendar.Locale); ok {
		return l
	}
	return fallback
}
