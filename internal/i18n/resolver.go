package i18n

import "strings"

// Record is a bilingual record. Field returns the primary value and the
// optional English shadow of the named field.
type Record interface {
	Field(name string) (primary string, secondary *string)
}

// Field names shared by bilingual records.
const (
	FieldTitle           = "title"
	FieldExcerpt         = "excerpt"
	FieldContent         = "content"
	FieldMetaTitle       = "meta_title"
	FieldMetaDescription = "meta_description"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldRole            = "role"
	FieldBio             = "bio"
)

// TranslationStatus classifies the English coverage of title, excerpt and content.
type TranslationStatus string

const (
	StatusComplete TranslationStatus = "complete"
	StatusPartial  TranslationStatus = "partial"
	StatusNone     TranslationStatus = "none"
)

type Status struct {
	HasTitle         bool              `json:"hasTitle"`
	HasExcerpt       bool              `json:"hasExcerpt"`
	HasContent       bool              `json:"hasContent"`
	HasMetadata      bool              `json:"hasMetadata"`
	Status           TranslationStatus `json:"status"`
	NeedsTranslation bool              `json:"needsTranslation"`
}

// Present reports whether an optional value holds non-whitespace text.
func Present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// ResolveField returns the value of field for locale. A missing, empty or
// whitespace-only English value falls back to the Spanish one.
func ResolveField(rec Record, field string, locale Locale) string {
	primary, secondary := rec.Field(field)
	if locale.IsPrimary() || !Present(secondary) {
		return primary
	}
	return strings.TrimSpace(*secondary)
}

func hasSecondary(rec Record, field string) bool {
	_, secondary := rec.Field(field)
	return Present(secondary)
}

// ResolveStatus derives the translation status of rec.
func ResolveStatus(rec Record) Status {
	st := Status{
		HasTitle:    hasSecondary(rec, FieldTitle),
		HasExcerpt:  hasSecondary(rec, FieldExcerpt),
		HasContent:  hasSecondary(rec, FieldContent),
		HasMetadata: hasSecondary(rec, FieldMetaTitle) || hasSecondary(rec, FieldMetaDescription),
	}

	n := 0
	for _, ok := range []bool{st.HasTitle, st.HasExcerpt, st.HasContent} {
		if ok {
			n++
		}
	}
	switch n {
	case 3:
		st.Status = StatusComplete
	case 0:
		st.Status = StatusNone
	default:
		st.Status = StatusPartial
	}
	st.NeedsTranslation = st.Status != StatusComplete
	return st
}

// Fields is a Record backed by a map, used for site config entries and tests.
type Fields map[string][2]*string

func (f Fields) Field(name string) (string, *string) {
	v, ok := f[name]
	if !ok || v[0] == nil {
		return "", v[1]
	}
	return *v[0], v[1]
}

// Pair builds a Fields entry.
func Pair(primary string, secondary *string) [2]*string {
	return [2]*string{&primary, secondary}
}
