// Package router assembles the HTTP surface shared by cmd/server and the end-to-end tests.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/negligencias/site-server/internal/config"
	"github.com/negligencias/site-server/internal/handler"
	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/middleware"
	"github.com/negligencias/site-server/internal/render"
	"github.com/negligencias/site-server/internal/service"
	"github.com/negligencias/site-server/internal/site"
)

const loginPath = "/api/admin/auth/login"

// Deps carries everything the routes need. Services that a test never exercises may be nil.
type Deps struct {
	Config   *config.Config
	Site     *site.Config
	Renderer *render.Renderer
	DB       handler.Pinger
	Limiter  middleware.Limiter
	Sessions *service.SessionManager

	Admin       *service.AdminService
	Posts       *service.PostService
	News        *service.NewsService
	Cases       *service.SuccessCaseService
	Hospitals   *service.HospitalService
	Categories  *service.CategoryService
	Contacts    *service.ContactService
	Translation *service.TranslationService
}

func New(d Deps) http.Handler {
	cfg := d.Config
	secure := cfg.IsProduction()
	siteURL := cfg.PublicSiteURL()

	limiter := d.Limiter
	if limiter == nil {
		limiter = middleware.NewMemoryLimiter()
	}

	guard := middleware.NewRouteGuard(d.Sessions, secure)
	csrf := middleware.NewCSRFMiddleware(secure, loginPath)
	bodyLimit := middleware.NewBodyLimitMiddleware(0)
	securityHeaders := middleware.NewSecurityHeadersMiddleware(secure)
	contactLimit := middleware.NewIPRateLimitMiddleware(limiter, cfg.ContactRateLimitPerMin, time.Minute, "contact")

	public := handler.NewPublicHandler(d.Renderer, d.Site, siteURL, d.Posts, d.News, d.Cases, d.Categories)
	seo := handler.NewSEOHandler(d.Site, siteURL, cfg.IsProduction(), d.Posts, d.News, d.Cases, d.Categories)
	adminPages := handler.NewAdminPagesHandler(d.Renderer, d.Admin, d.Posts, d.News, d.Cases, d.Hospitals, d.Categories, d.Contacts)
	adminAPI := handler.NewAdminAPIHandler(d.Admin, d.Posts, d.News, d.Cases, d.Hospitals, d.Categories, d.Contacts, d.Translation)
	auth := handler.NewAuthHandler(d.Sessions, middleware.NewLoginRateLimiter(config.LoginAttemptsPerMin), secure)
	contact := handler.NewContactHandler(d.Contacts)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimit.Handler)
	r.Use(securityHeaders.Handler)

	r.Method(http.MethodGet, "/health", handler.NewHealthHandler(d.DB))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/robots.txt", seo.Robots)
	r.Get("/sitemap.xml", seo.Sitemap)
	r.Method(http.MethodGet, "/static/*", handler.NewStaticHandler())

	r.Route("/api/contact", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{siteURL},
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
		r.Use(contactLimit.Handler)
		r.Post("/", contact.Submit)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(csrf.Handler)
		r.Mount("/auth", auth.Routes(guard))
		r.Group(func(r chi.Router) {
			r.Use(guard.API)
			r.Mount("/", adminAPI.Routes())
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(guard.Pages)
		r.Mount("/", adminPages.Routes())
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Locale)
		for _, locale := range i18n.Locales {
			r.Mount("/"+locale.String(), public.Routes())
		}
		r.Mount("/", public.Routes())
	})

	return r
}
