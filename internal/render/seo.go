package render

import (
	"encoding/json"
	"html/template"

	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/site"
)

type Alternate struct {
	HrefLang string
	Href     string
}

// Meta is the head metadata of a public page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OGType      string
	Image       string
	Alternates  []Alternate
	NoIndex     bool
	JSONLD      template.JS
}

// NewMeta builds canonical and hreflang links for a locale-neutral path.
func NewMeta(siteURL, path string, locale i18n.Locale, title, description string) Meta {
	m := Meta{
		Title:       title,
		Description: description,
		Canonical:   siteURL + i18n.LocalizedPath(locale, path),
		OGType:      "website",
	}
	for _, l := range i18n.Locales {
		m.Alternates = append(m.Alternates, Alternate{
			HrefLang: l.HrefLang(),
			Href:     siteURL + i18n.LocalizedPath(l, path),
		})
	}
	m.Alternates = append(m.Alternates, Alternate{
		HrefLang: "x-default",
		Href:     siteURL + i18n.LocalizedPath(i18n.DefaultLocale, path),
	})
	return m
}

// LegalServiceJSONLD describes the firm as a schema.org LegalService.
func LegalServiceJSONLD(cfg *site.Config, siteURL string, locale i18n.Locale) template.JS {
	doc := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "LegalService",
		"name":        cfg.Name,
		"legalName":   cfg.LegalName,
		"description": i18n.ResolveField(cfg, "tagline", locale),
		"url":         siteURL,
		"telephone":   cfg.Contact.Phone,
		"email":       cfg.Contact.Email,
		"address": map[string]any{
			"@type":          "PostalAddress",
			"streetAddress":  cfg.Contact.Address,
			"addressCountry": "ES",
		},
		"areaServed": "ES",
		"sameAs":     cfg.SocialProfile,
	}
	return jsonLD(doc)
}

// ArticleJSONLD describes a blog post or news item.
func ArticleJSONLD(v ArticleView, siteURL, publisher string, locale i18n.Locale) template.JS {
	doc := map[string]any{
		"@context":         "https://schema.org",
		"@type":            "Article",
		"headline":         v.Title,
		"description":      v.MetaDescription,
		"inLanguage":       locale.String(),
		"mainEntityOfPage": siteURL + v.Path,
		"dateModified":     v.UpdatedAt,
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  publisher,
		},
	}
	if v.PublishedAt != nil {
		doc["datePublished"] = v.PublishedAt
	}
	if v.Author != "" {
		doc["author"] = map[string]any{"@type": "Person", "name": v.Author}
	}
	if v.Image != "" {
		doc["image"] = siteURL + v.Image
	}
	return jsonLD(doc)
}

func jsonLD(doc map[string]any) template.JS {
	b, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	return template.JS(b)
}
