package middleware

import (
	"context"
	"net/http"

	"github.com/negligencias/site-server/internal/i18n"
)

const LocaleContextKey contextKey = "locale"

// Locale stores the locale named by the path prefix. Unprefixed paths use the default locale.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale, _, _ := i18n.SplitPath(r.URL.Path)
		w.Header().Set("Content-Language", locale.String())
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), LocaleContextKey, locale)))
	})
}

func GetLocale(ctx context.Context) i18n.Locale {
	if locale, ok := ctx.Value(LocaleContextKey).(i18n.Locale); ok {
		return locale
	}
	return i18n.DefaultLocale
}
