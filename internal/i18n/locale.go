package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale is a two-letter site language.
type Locale string

const (
	Spanish Locale = "es"
	English Locale = "en"

	// DefaultLocale serves unprefixed legacy paths.
	DefaultLocale = Spanish
)

// Locales lists every supported locale, primary first.
var Locales = []Locale{Spanish, English}

var matcher = language.NewMatcher([]language.Tag{language.Spanish, language.English})

func (l Locale) String() string { return string(l) }

// IsPrimary reports whether l is the authoring language.
func (l Locale) IsPrimary() bool { return l == Spanish }

// HrefLang is the value used in hreflang alternates.
func (l Locale) HrefLang() string {
	if l == English {
		return "en"
	}
	return "es-ES"
}

// ParseLocale accepts "es", "en", and regional forms like "en-GB".
func ParseLocale(s string) (Locale, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case "es":
		return Spanish, true
	case "en":
		return English, true
	}
	return "", false
}

// LocaleOrDefault returns the parsed locale or DefaultLocale.
func LocaleOrDefault(s string) Locale {
	if l, ok := ParseLocale(s); ok {
		return l
	}
	return DefaultLocale
}

// MatchAcceptLanguage picks the best supported locale for an Accept-Language header.
func MatchAcceptLanguage(header string) Locale {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLocale
	}
	return Locales[idx]
}

// SplitPath separates a leading locale segment from path.
// prefixed is false for legacy paths, which resolve to DefaultLocale.
func SplitPath(path string) (locale Locale, rest string, prefixed bool) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, tail, _ := strings.Cut(trimmed, "/")
	for _, l := range Locales {
		if seg == string(l) {
			return l, "/" + tail, true
		}
	}
	if path == "" {
		path = "/"
	}
	return DefaultLocale, path, false
}

// LocalizedPath prefixes a locale-neutral path with the locale segment.
func LocalizedPath(locale Locale, path string) string {
	if path == "" || path == "/" {
		return "/" + string(locale)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "/" + string(locale) + path
}

// AlternatePath returns path rewritten for the target locale.
func AlternatePath(path string, target Locale) string {
	_, rest, _ := SplitPath(path)
	return LocalizedPath(target, rest)
}
