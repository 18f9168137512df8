package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/render"
	"github.com/negligencias/site-server/internal/service"
	"github.com/negligencias/site-server/internal/site"
)

const sitemapBatch = 200

type SEOHandler struct {
	site       *site.Config
	siteURL    string
	indexable  bool
	posts      *service.PostService
	news       *service.NewsService
	cases      *service.SuccessCaseService
	categories *service.CategoryService
}

func NewSEOHandler(
	cfg *site.Config,
	siteURL string,
	indexable bool,
	posts *service.PostService,
	news *service.NewsService,
	cases *service.SuccessCaseService,
	categories *service.CategoryService,
) *SEOHandler {
	return &SEOHandler{
		site:       cfg,
		siteURL:    siteURL,
		indexable:  indexable,
		posts:      posts,
		news:       news,
		cases:      cases,
		categories: categories,
	}
}

func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(render.Robots(h.siteURL, !h.indexable)))
}

func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	b := render.NewSitemapBuilder(h.siteURL)
	ctx := r.Context()

	b.Add("/", time.Time{}, render.ChangeFreqWeekly, "1.0")
	for _, p := range []string{"/services", "/team", "/cases", "/blog", "/news", "/contact"} {
		b.Add(p, time.Time{}, render.ChangeFreqWeekly, "0.8")
	}
	for _, s := range h.site.Services {
		b.Add("/services/"+s.Slug, time.Time{}, render.ChangeFreqMonthly, "0.8")
	}
	for _, c := range h.site.Cities {
		b.Add("/lawyers/"+c.Slug, time.Time{}, render.ChangeFreqMonthly, "0.7")
	}
	for _, l := range h.site.Legal {
		b.Add("/legal/"+l.Slug, time.Time{}, render.ChangeFreqYearly, "0.2")
	}

	categories, err := h.categories.List(ctx)
	if err != nil {
		h.fail(w, err)
		return
	}
	for _, c := range categories {
		b.Add("/blog/category/"+c.Slug, c.UpdatedAt, render.ChangeFreqWeekly, "0.5")
	}

	if err := eachPublished(ctx, h.posts.List, func(p model.Post) {
		b.Add("/blog/"+p.Slug, p.UpdatedAt, render.ChangeFreqMonthly, "0.6")
	}); err != nil {
		h.fail(w, err)
		return
	}
	if err := eachPublished(ctx, h.news.List, func(n model.News) {
		b.Add("/news/"+n.Slug, n.UpdatedAt, render.ChangeFreqMonthly, "0.5")
	}); err != nil {
		h.fail(w, err)
		return
	}
	if err := eachPublished(ctx, h.cases.List, func(c model.SuccessCase) {
		b.Add("/cases/"+c.Slug, c.UpdatedAt, render.ChangeFreqMonthly, "0.6")
	}); err != nil {
		h.fail(w, err)
		return
	}

	body, err := b.Build()
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(body)
}

func (h *SEOHandler) fail(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("sitemap generation failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// eachPublished pages through every published record of a collection.
func eachPublished[T any](ctx context.Context, fetch func(context.Context, model.ListFilter) (*service.Page[T], error), fn func(T)) error {
	filter := model.ListFilter{Published: published(), Limit: sitemapBatch}
	for {
		page, err := fetch(ctx, filter)
		if err != nil {
			return err
		}
		for _, item := range page.Items {
			fn(item)
		}
		filter.Offset += len(page.Items)
		if len(page.Items) < sitemapBatch || filter.Offset >= page.Total {
			return nil
		}
	}
}
