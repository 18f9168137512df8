package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func record(titleEn, excerptEn, contentEn *string) Fields {
	return Fields{
		FieldTitle:   Pair("Negligencia en urgencias", titleEn),
		FieldExcerpt: Pair("Resumen", excerptEn),
		FieldContent: Pair("Contenido completo", contentEn),
	}
}

func TestResolveField(t *testing.T) {
	tests := []struct {
		name      string
		secondary *string
		locale    Locale
		want      string
	}{
		{"primary locale ignores translation", strPtr("Emergency negligence"), Spanish, "Negligencia en urgencias"},
		{"secondary locale uses translation", strPtr("Emergency negligence"), English, "Emergency negligence"},
		{"nil falls back", nil, English, "Negligencia en urgencias"},
		{"empty falls back", strPtr(""), English, "Negligencia en urgencias"},
		{"whitespace falls back", strPtr("  \t\n "), English, "Negligencia en urgencias"},
		{"translation is trimmed", strPtr("  Emergency negligence "), English, "Emergency negligence"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := record(tc.secondary, nil, nil)
			got := ResolveField(rec, FieldTitle, tc.locale)
			assert.Equal(t, tc.want, got)
			assert.NotEmpty(t, got)
		})
	}
}

func TestResolveFieldUnknownField(t *testing.T) {
	assert.Equal(t, "", ResolveField(record(nil, nil, nil), "missing", English))
}

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name       string
		rec        Fields
		wantStatus TranslationStatus
	}{
		{"all present", record(strPtr("T"), strPtr("E"), strPtr("C")), StatusComplete},
		{"none present", record(nil, nil, nil), StatusNone},
		{"empty strings count as absent", record(strPtr(""), strPtr(" "), nil), StatusNone},
		{"title only", record(strPtr("T"), nil, nil), StatusPartial},
		{"content blank", record(strPtr("T"), strPtr("E"), strPtr("   ")), StatusPartial},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := ResolveStatus(tc.rec)
			assert.Equal(t, tc.wantStatus, st.Status)
			assert.Equal(t, tc.wantStatus != StatusComplete, st.NeedsTranslation)
		})
	}
}

func TestResolveStatusMetadata(t *testing.T) {
	rec := record(nil, nil, nil)
	assert.False(t, ResolveStatus(rec).HasMetadata)

	rec[FieldMetaDescription] = Pair("Descripción", strPtr("Description"))
	st := ResolveStatus(rec)
	assert.True(t, st.HasMetadata)
	assert.False(t, st.HasTitle)
	assert.Equal(t, StatusNone, st.Status)
}
