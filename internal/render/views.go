package render

import (
	"html/template"
	"time"

	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/site"
)

// Every public view reads bilingual fields through i18n.ResolveField so an
// untranslated record degrades to Spanish instead of rendering blank.

type ArticleView struct {
	Slug            string
	Path            string
	Title           string
	Excerpt         string
	Body            template.HTML
	MetaTitle       string
	MetaDescription string
	PublishedAt     *time.Time
	UpdatedAt       time.Time
	ReadingTime     int
	Image           string
	Author          string
	SourceName      string
	SourceURL       string
	Compensation    string
	Translated      bool
}

func articleView(a *model.Article, locale i18n.Locale, section string) ArticleView {
	v := ArticleView{
		Slug:            a.Slug,
		Path:            i18n.LocalizedPath(locale, "/"+section+"/"+a.Slug),
		Title:           i18n.ResolveField(a, i18n.FieldTitle, locale),
		Excerpt:         i18n.ResolveField(a, i18n.FieldExcerpt, locale),
		MetaTitle:       i18n.ResolveField(a, i18n.FieldMetaTitle, locale),
		MetaDescription: i18n.ResolveField(a, i18n.FieldMetaDescription, locale),
		PublishedAt:     a.PublishedAt,
		UpdatedAt:       a.UpdatedAt,
		ReadingTime:     a.ReadingTime,
		Translated:      locale.IsPrimary() || i18n.ResolveStatus(a).Status == i18n.StatusComplete,
	}
	if v.MetaTitle == "" {
		v.MetaTitle = v.Title
	}
	if v.MetaDescription == "" {
		v.MetaDescription = v.Excerpt
	}
	if v.Excerpt == "" {
		v.Excerpt = Summary(i18n.ResolveField(a, i18n.FieldContent, locale), 180)
	}
	return v
}

// withBody renders the localized content for detail pages.
func withBody(v ArticleView, a *model.Article, locale i18n.Locale) ArticleView {
	v.Body = Markdown(i18n.ResolveField(a, i18n.FieldContent, locale))
	return v
}

func PostView(p *model.Post, locale i18n.Locale, detail bool) ArticleView {
	v := articleView(&p.Article, locale, "blog")
	v.Image = deref(p.FeaturedImage)
	v.Author = deref(p.AuthorName)
	if detail {
		v = withBody(v, &p.Article, locale)
	}
	return v
}

func NewsView(n *model.News, locale i18n.Locale, detail bool) ArticleView {
	v := articleView(&n.Article, locale, "news")
	v.Image = deref(n.FeaturedImage)
	v.SourceName = deref(n.SourceName)
	v.SourceURL = deref(n.SourceURL)
	if detail {
		v = withBody(v, &n.Article, locale)
	}
	return v
}

func SuccessCaseView(c *model.SuccessCase, locale i18n.Locale, detail bool) ArticleView {
	v := articleView(&c.Article, locale, "cases")
	v.Compensation = deref(c.Compensation)
	if detail {
		v = withBody(v, &c.Article, locale)
	}
	return v
}

func PostViews(posts []model.Post, locale i18n.Locale) []ArticleView {
	views := make([]ArticleView, len(posts))
	for i := range posts {
		views[i] = PostView(&posts[i], locale, false)
	}
	return views
}

func NewsViews(items []model.News, locale i18n.Locale) []ArticleView {
	views := make([]ArticleView, len(items))
	for i := range items {
		views[i] = NewsView(&items[i], locale, false)
	}
	return views
}

func SuccessCaseViews(cases []model.SuccessCase, locale i18n.Locale) []ArticleView {
	views := make([]ArticleView, len(cases))
	for i := range cases {
		views[i] = SuccessCaseView(&cases[i], locale, false)
	}
	return views
}

type CategoryView struct {
	Slug        string
	Path        string
	Name        string
	Description string
}

func NewCategoryView(c *model.Category, locale i18n.Locale) CategoryView {
	return CategoryView{
		Slug:        c.Slug,
		Path:        i18n.LocalizedPath(locale, "/blog/category/"+c.Slug),
		Name:        i18n.ResolveField(c, i18n.FieldName, locale),
		Description: i18n.ResolveField(c, i18n.FieldDescription, locale),
	}
}

func CategoryViews(cats []model.Category, locale i18n.Locale) []CategoryView {
	views := make([]CategoryView, len(cats))
	for i := range cats {
		views[i] = NewCategoryView(&cats[i], locale)
	}
	return views
}

type ServiceView struct {
	Slug    string
	Path    string
	Icon    string
	Title   string
	Excerpt string
	Body    template.HTML
}

func NewServiceView(s *site.Service, locale i18n.Locale, detail bool) ServiceView {
	v := ServiceView{
		Slug:    s.Slug,
		Path:    i18n.LocalizedPath(locale, "/services/"+s.Slug),
		Icon:    s.Icon,
		Title:   i18n.ResolveField(s, i18n.FieldTitle, locale),
		Excerpt: i18n.ResolveField(s, i18n.FieldExcerpt, locale),
	}
	if detail {
		v.Body = Markdown(i18n.ResolveField(s, i18n.FieldContent, locale))
	}
	return v
}

func ServiceViews(cfg *site.Config, locale i18n.Locale) []ServiceView {
	views := make([]ServiceView, len(cfg.Services))
	for i := range cfg.Services {
		views[i] = NewServiceView(&cfg.Services[i], locale, false)
	}
	return views
}

type TeamView struct {
	Slug  string
	Name  string
	Role  string
	Bio   string
	Photo string
	Bar   string
}

func TeamViews(cfg *site.Config, locale i18n.Locale) []TeamView {
	views := make([]TeamView, len(cfg.Team))
	for i := range cfg.Team {
		m := &cfg.Team[i]
		views[i] = TeamView{
			Slug:  m.Slug,
			Name:  m.Name,
			Role:  i18n.ResolveField(m, i18n.FieldRole, locale),
			Bio:   i18n.ResolveField(m, i18n.FieldBio, locale),
			Photo: m.Photo,
			Bar:   m.Bar,
		}
	}
	return views
}

type CityView struct {
	Slug     string
	Path     string
	Name     string
	Province string
	Intro    string
}

func NewCityView(c *site.City, locale i18n.Locale) CityView {
	return CityView{
		Slug:     c.Slug,
		Path:     i18n.LocalizedPath(locale, "/lawyers/"+c.Slug),
		Name:     c.Name,
		Province: c.Province,
		Intro:    i18n.ResolveField(c, i18n.FieldContent, locale),
	}
}

func CityViews(cfg *site.Config, locale i18n.Locale) []CityView {
	views := make([]CityView, len(cfg.Cities))
	for i := range cfg.Cities {
		views[i] = NewCityView(&cfg.Cities[i], locale)
	}
	return views
}

type LegalView struct {
	Slug  string
	Path  string
	Title string
	Body  template.HTML
}

func NewLegalView(p *site.LegalPage, locale i18n.Locale, detail bool) LegalView {
	v := LegalView{
		Slug:  p.Slug,
		Path:  i18n.LocalizedPath(locale, "/legal/"+p.Slug),
		Title: i18n.ResolveField(p, i18n.FieldTitle, locale),
	}
	if detail {
		v.Body = Markdown(i18n.ResolveField(p, i18n.FieldContent, locale))
	}
	return v
}

// LegalLinks lists the legal pages for the footer.
func LegalLinks(cfg *site.Config, locale i18n.Locale) []LegalView {
	views := make([]LegalView, len(cfg.Legal))
	for i := range cfg.Legal {
		views[i] = NewLegalView(&cfg.Legal[i], locale, false)
	}
	return views
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
