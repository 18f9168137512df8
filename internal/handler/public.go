package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/negligencias/site-server/internal/config"
	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/middleware"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/render"
	"github.com/negligencias/site-server/internal/service"
	"github.com/negligencias/site-server/internal/site"
)

const (
	homeItems    = 3
	relatedItems = 3
)

// PublicHandler renders the marketing site. The same routes are mounted
// at /, /es and /en; the locale comes from middleware.Locale.
type PublicHandler struct {
	renderer   *render.Renderer
	site       *site.Config
	siteURL    string
	posts      *service.PostService
	news       *service.NewsService
	cases      *service.SuccessCaseService
	categories *service.CategoryService
}

func NewPublicHandler(
	renderer *render.Renderer,
	cfg *site.Config,
	siteURL string,
	posts *service.PostService,
	news *service.NewsService,
	cases *service.SuccessCaseService,
	categories *service.CategoryService,
) *PublicHandler {
	return &PublicHandler{
		renderer:   renderer,
		site:       cfg,
		siteURL:    siteURL,
		posts:      posts,
		news:       news,
		cases:      cases,
		categories: categories,
	}
}

func (h *PublicHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/services", h.Services)
	r.Get("/services/{slug}", h.Service)
	r.Get("/team", h.Team)
	r.Get("/cases", h.Cases)
	r.Get("/cases/{slug}", h.Case)
	r.Get("/blog", h.Blog)
	r.Get("/blog/category/{slug}", h.BlogCategory)
	r.Get("/blog/{slug}", h.Post)
	r.Get("/news", h.NewsList)
	r.Get("/news/{slug}", h.NewsItem)
	r.Get("/lawyers/{city}", h.City)
	r.Get("/legal/{page}", h.Legal)
	r.Get("/contact", h.Contact)
	r.NotFound(h.NotFound)
	return r
}

// page fills the request-derived parts of PageData.
func (h *PublicHandler) page(r *http.Request, title, description string) render.PageData {
	locale := middleware.GetLocale(r.Context())
	_, path, _ := i18n.SplitPath(r.URL.Path)
	return render.PageData{
		Locale: locale,
		Path:   path,
		Meta:   render.NewMeta(h.siteURL, path, locale, title, description),
	}
}

func (h *PublicHandler) html(w http.ResponseWriter, r *http.Request, name string, data render.PageData) {
	if err := h.renderer.Render(w, http.StatusOK, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Str("path", r.URL.Path).Msg("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// fail renders NotFound as the 404 page and anything else as a logged 500.
func (h *PublicHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.Is(err, apperrors.ErrCodeNotFound) {
		h.NotFound(w, r)
		return
	}
	log.Error().Err(err).Str("path", r.URL.Path).Msg("public page failed")
	h.errorPage(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func (h *PublicHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	h.errorPage(w, r, http.StatusNotFound, i18n.T(locale, "error.not_found"))
}

func (h *PublicHandler) errorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := h.page(r, message, "")
	data.Meta.NoIndex = true
	data.Data = render.ErrorData{Status: status, Message: message}
	if err := h.renderer.Render(w, status, "pages/error", data); err != nil {
		log.Error().Err(err).Msg("render error page failed")
		http.Error(w, message, status)
	}
}

func published() *bool {
	v := true
	return &v
}

func publicFilter(page int) model.ListFilter {
	return model.ListFilter{
		Published: published(),
		Limit:     config.PublicPageSize,
		Offset:    (page - 1) * config.PublicPageSize,
	}
}

func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	ctx := r.Context()

	cases, err := h.cases.List(ctx, model.ListFilter{Published: published(), Limit: homeItems})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	posts, err := h.posts.List(ctx, model.ListFilter{Published: published(), Limit: homeItems})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := h.page(r, i18n.T(locale, "home.title"), i18n.T(locale, "home.lead"))
	data.Meta.JSONLD = render.LegalServiceJSONLD(h.site, h.siteURL, locale)
	data.Data = render.HomeData{
		Services: render.ServiceViews(h.site, locale),
		Cases:    render.SuccessCaseViews(cases.Items, locale),
		Posts:    render.PostViews(posts.Items, locale),
		Cities:   render.CityViews(h.site, locale),
	}
	h.html(w, r, "pages/home", data)
}

func (h *PublicHandler) Services(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	data := h.page(r, i18n.T(locale, "services.title"), i18n.ResolveField(h.site, "tagline", locale))
	data.Data = render.ServiceViews(h.site, locale)
	h.html(w, r, "pages/services", data)
}

func (h *PublicHandler) Service(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	svc, ok := h.site.Service(chi.URLParam(r, "slug"))
	if !ok {
		h.NotFound(w, r)
		return
	}
	view := render.NewServiceView(svc, locale, true)
	data := h.page(r, view.Title, view.Excerpt)
	data.Data = view
	h.html(w, r, "pages/service", data)
}

func (h *PublicHandler) Team(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	data := h.page(r, i18n.T(locale, "team.title"), "")
	data.Data = render.TeamViews(h.site, locale)
	h.html(w, r, "pages/team", data)
}

// listPage renders one page of a published listing.
func (h *PublicHandler) listPage(w http.ResponseWriter, r *http.Request, section, title string, total int, items []render.ArticleView, extra func(*render.ListData)) {
	locale := middleware.GetLocale(r.Context())
	page := parsePage(r)
	if page > 1 && len(items) == 0 {
		h.NotFound(w, r)
		return
	}

	data := h.page(r, title, "")
	ld := render.ListData{
		Title:      title,
		Section:    section,
		Items:      items,
		Pagination: render.NewPagination(i18n.LocalizedPath(locale, data.Path), page, total, config.PublicPageSize),
	}
	if extra != nil {
		extra(&ld)
	}
	data.Data = ld
	h.html(w, r, "pages/list", data)
}

func (h *PublicHandler) Cases(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	res, err := h.cases.List(r.Context(), publicFilter(parsePage(r)))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.listPage(w, r, "cases", i18n.T(locale, "cases.title"), res.Total, render.SuccessCaseViews(res.Items, locale), nil)
}

func (h *PublicHandler) Blog(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	res, err := h.posts.List(r.Context(), publicFilter(parsePage(r)))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.listPage(w, r, "blog", i18n.T(locale, "blog.title"), res.Total, render.PostViews(res.Items, locale), func(l *render.ListData) {
		l.Categories = render.CategoryViews(categories, locale)
	})
}

func (h *PublicHandler) BlogCategory(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	ctx := r.Context()

	category, err := h.categories.GetBySlug(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	filter := publicFilter(parsePage(r))
	filter.CategoryID = category.ID
	res, err := h.posts.List(ctx, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	categories, err := h.categories.List(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	current := render.NewCategoryView(category, locale)
	h.listPage(w, r, "blog", current.Name, res.Total, render.PostViews(res.Items, locale), func(l *render.ListData) {
		l.Categories = render.CategoryViews(categories, locale)
		l.Category = &current
	})
}

func (h *PublicHandler) NewsList(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	res, err := h.news.List(r.Context(), publicFilter(parsePage(r)))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.listPage(w, r, "news", i18n.T(locale, "news.title"), res.Total, render.NewsViews(res.Items, locale), nil)
}

// article renders a detail page with up to relatedItems other published entries.
func (h *PublicHandler) article(w http.ResponseWriter, r *http.Request, section string, view render.ArticleView, related []render.ArticleView) {
	locale := middleware.GetLocale(r.Context())
	data := h.page(r, view.MetaTitle, view.MetaDescription)
	data.Meta.OGType = "article"
	if view.Image != "" {
		data.Meta.Image = h.siteURL + view.Image
	}
	data.Meta.JSONLD = render.ArticleJSONLD(view, h.siteURL, h.site.Name, locale)

	others := make([]render.ArticleView, 0, relatedItems)
	for _, v := range related {
		if v.Slug != view.Slug && len(others) < relatedItems {
			others = append(others, v)
		}
	}
	data.Data = render.ArticleData{Section: section, Article: view, Related: others}
	h.html(w, r, "pages/article", data)
}

func latest() model.ListFilter {
	return model.ListFilter{Published: published(), Limit: relatedItems + 1}
}

func (h *PublicHandler) Post(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	post, err := h.posts.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	filter := latest()
	if post.CategoryID != nil {
		filter.CategoryID = *post.CategoryID
	}
	related, err := h.posts.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.article(w, r, "blog", render.PostView(post, locale, true), render.PostViews(related.Items, locale))
}

func (h *PublicHandler) NewsItem(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	item, err := h.news.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	related, err := h.news.List(r.Context(), latest())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.article(w, r, "news", render.NewsView(item, locale, true), render.NewsViews(related.Items, locale))
}

func (h *PublicHandler) Case(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	c, err := h.cases.GetPublishedBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	related, err := h.cases.List(r.Context(), latest())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.article(w, r, "cases", render.SuccessCaseView(c, locale, true), render.SuccessCaseViews(related.Items, locale))
}

func (h *PublicHandler) City(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	city, ok := h.site.City(chi.URLParam(r, "city"))
	if !ok {
		h.NotFound(w, r)
		return
	}
	cases, err := h.cases.List(r.Context(), model.ListFilter{Published: published(), Limit: homeItems})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	view := render.NewCityView(city, locale)
	title := i18n.T(locale, "city.title")
	data := h.page(r, fmt.Sprintf(title, view.Name), view.Intro)
	data.Meta.JSONLD = render.LegalServiceJSONLD(h.site, h.siteURL, locale)
	data.Data = render.CityData{
		City:     view,
		Services: render.ServiceViews(h.site, locale),
		Cases:    render.SuccessCaseViews(cases.Items, locale),
	}
	h.html(w, r, "pages/city", data)
}

func (h *PublicHandler) Legal(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	p, ok := h.site.LegalPage(chi.URLParam(r, "page"))
	if !ok {
		h.NotFound(w, r)
		return
	}
	view := render.NewLegalView(p, locale, true)
	data := h.page(r, view.Title, "")
	data.Data = view
	h.html(w, r, "pages/legal", data)
}

func (h *PublicHandler) Contact(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r.Context())
	data := h.page(r, i18n.T(locale, "contact.title"), i18n.T(locale, "home.lead"))
	data.Data = render.ContactData{Services: render.ServiceViews(h.site, locale)}
	h.html(w, r, "pages/contact", data)
}
