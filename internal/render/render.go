package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/site"
)

//go:embed templates
var templatesFS embed.FS

// Renderer holds one parsed template set per page.
type Renderer struct {
	templates map[string]*template.Template
	site      *site.Config
	siteURL   string
}

// PageData is passed to every template.
type PageData struct {
	Locale      i18n.Locale
	Path        string
	Site        *site.Config
	SiteURL     string
	Meta        Meta
	CurrentYear int
	CSRFToken   string
	Session     *model.Session
	Data        any
}

func New(cfg *site.Config, siteURL string) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		site:      cfg,
		siteURL:   siteURL,
	}

	if err := r.parse("pages", "layouts/base.html"); err != nil {
		return nil, err
	}
	if err := r.parse("admin", "layouts/admin.html"); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parse(dir, layout string) error {
	entries, err := fs.ReadDir(templatesFS, "templates/"+dir)
	if err != nil {
		return fmt.Errorf("reading %s templates: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		name := dir + "/" + strings.TrimSuffix(entry.Name(), ".html")
		tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templatesFS,
			"templates/"+layout, path.Join("templates", dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return nil
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders a date the way each locale writes it.
func FormatDate(t time.Time, locale i18n.Locale) string {
	if locale == i18n.English {
		return t.Format("January 2, 2006")
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"t": i18n.T,
		"tf": func(locale i18n.Locale, key string, args ...any) string {
			return fmt.Sprintf(i18n.T(locale, key), args...)
		},
		"resolve":    i18n.ResolveField,
		"legalLinks": LegalLinks,
		"localize":   i18n.LocalizedPath,
		"alternate": func(p string, locale i18n.Locale) string {
			return i18n.LocalizedPath(locale, p)
		},
		"otherLocale": func(locale i18n.Locale) i18n.Locale {
			if locale == i18n.English {
				return i18n.Spanish
			}
			return i18n.English
		},
		"formatDate": func(t any, locale i18n.Locale) string {
			switch v := t.(type) {
			case time.Time:
				return FormatDate(v, locale)
			case *time.Time:
				if v == nil {
					return ""
				}
				return FormatDate(*v, locale)
			}
			return ""
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("02/01/2006 15:04")
		},
		"deref": deref,
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	}
}

// Render executes the named page into a buffer before writing, so a
// template error never produces a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data PageData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.Site = r.site
	data.SiteURL = r.siteURL
	data.CurrentYear = time.Now().Year()
	if data.Locale == "" {
		data.Locale = i18n.DefaultLocale
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Has reports whether a template with the given name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}
