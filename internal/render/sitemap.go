package render

import (
	"encoding/xml"
	"time"

	"github.com/negligencias/site-server/internal/i18n"
)

const (
	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xhtmlNamespace   = "http://www.w3.org/1999/xhtml"
)

type ChangeFreq string

const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
)

type sitemapLink struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

type SitemapURL struct {
	Loc        string        `xml:"loc"`
	LastMod    string        `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq    `xml:"changefreq,omitempty"`
	Priority   string        `xml:"priority,omitempty"`
	Links      []sitemapLink `xml:"xhtml:link"`
}

type sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder emits one entry per locale for every path, each
// listing its hreflang alternates.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: siteURL}
}

// Add registers a locale-neutral path. A zero lastMod is omitted.
func (b *SitemapBuilder) Add(path string, lastMod time.Time, freq ChangeFreq, priority string) {
	links := make([]sitemapLink, 0, len(i18n.Locales))
	for _, l := range i18n.Locales {
		links = append(links, sitemapLink{
			Rel:      "alternate",
			HrefLang: l.HrefLang(),
			Href:     b.siteURL + i18n.LocalizedPath(l, path),
		})
	}

	for _, l := range i18n.Locales {
		u := SitemapURL{
			Loc:        b.siteURL + i18n.LocalizedPath(l, path),
			ChangeFreq: freq,
			Priority:   priority,
			Links:      links,
		}
		if !lastMod.IsZero() {
			u.LastMod = lastMod.UTC().Format(time.RFC3339)
		}
		b.urls = append(b.urls, u)
	}
}

func (b *SitemapBuilder) Len() int { return len(b.urls) }

func (b *SitemapBuilder) Build() ([]byte, error) {
	doc := sitemap{
		XMLNS: sitemapNamespace,
		XHTML: xhtmlNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(output, body...), nil
}
