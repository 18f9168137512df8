package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/negligencias/site-server/internal/audit"
	"github.com/negligencias/site-server/internal/middleware"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/repository"
	"github.com/negligencias/site-server/internal/service"
)

// AdminAPIHandler serves the JSON API behind /api/admin. Every route runs after RouteGuard.API.
type AdminAPIHandler struct {
	admin       *service.AdminService
	posts       *service.PostService
	news        *service.NewsService
	cases       *service.SuccessCaseService
	hospitals   *service.HospitalService
	categories  *service.CategoryService
	contacts    *service.ContactService
	translation *service.TranslationService
}

func NewAdminAPIHandler(
	admin *service.AdminService,
	posts *service.PostService,
	news *service.NewsService,
	cases *service.SuccessCaseService,
	hospitals *service.HospitalService,
	categories *service.CategoryService,
	contacts *service.ContactService,
	translation *service.TranslationService,
) *AdminAPIHandler {
	return &AdminAPIHandler{
		admin:       admin,
		posts:       posts,
		news:        news,
		cases:       cases,
		hospitals:   hospitals,
		categories:  categories,
		contacts:    contacts,
		translation: translation,
	}
}

func (h *AdminAPIHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/stats", h.Stats)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.ListPosts)
		r.Post("/", middleware.WithSession(create(model.CollectionPosts, h.posts.Create)))
		r.Get("/{id}", show(h.posts.Get))
		r.Patch("/{id}", middleware.WithSession(update(model.CollectionPosts, h.posts.Update)))
		r.Delete("/{id}", middleware.WithSession(remove(model.CollectionPosts, h.posts.Delete)))
		h.translationRoutes(r, model.CollectionPosts)
	})

	r.Route("/news", func(r chi.Router) {
		r.Get("/", h.ListNews)
		r.Post("/", middleware.WithSession(create(model.CollectionNews, h.news.Create)))
		r.Get("/{id}", show(h.news.Get))
		r.Patch("/{id}", middleware.WithSession(update(model.CollectionNews, h.news.Update)))
		r.Delete("/{id}", middleware.WithSession(remove(model.CollectionNews, h.news.Delete)))
		h.translationRoutes(r, model.CollectionNews)
	})

	r.Route("/success-cases", func(r chi.Router) {
		r.Get("/", h.ListSuccessCases)
		r.Post("/", middleware.WithSession(create(model.CollectionSuccessCases, h.cases.Create)))
		r.Get("/{id}", show(h.cases.Get))
		r.Patch("/{id}", middleware.WithSession(update(model.CollectionSuccessCases, h.cases.Update)))
		r.Delete("/{id}", middleware.WithSession(remove(model.CollectionSuccessCases, h.cases.Delete)))
		h.translationRoutes(r, model.CollectionSuccessCases)
	})

	r.Route("/hospitals", func(r chi.Router) {
		r.Get("/", h.ListHospitals)
		r.Post("/", middleware.WithSession(create(model.CollectionHospitals, h.hospitals.Create)))
		r.Get("/{id}", show(h.hospitals.Get))
		r.Patch("/{id}", middleware.WithSession(update(model.CollectionHospitals, h.hospitals.Update)))
		r.Delete("/{id}", middleware.WithSession(remove(model.CollectionHospitals, h.hospitals.Delete)))
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", middleware.WithSession(create(model.CollectionCategories, h.categories.Create)))
		r.Get("/{id}", show(h.categories.Get))
		r.Patch("/{id}", middleware.WithSession(update(model.CollectionCategories, h.categories.Update)))
		r.Delete("/{id}", middleware.WithSession(remove(model.CollectionCategories, h.categories.Delete)))
	})

	// Contacts arrive through the public form only.
	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", h.ListContacts)
		r.Get("/{id}", show(h.contacts.Get))
		r.Patch("/{id}", middleware.WithSession(h.UpdateContact))
		r.Delete("/{id}", middleware.WithSession(remove(model.CollectionContacts, h.contacts.Delete)))
	})

	return r
}

func (h *AdminAPIHandler) translationRoutes(r chi.Router, collection model.Collection) {
	r.Get("/{id}/translation", h.TranslationStatus(collection))
	r.Post("/{id}/translate", middleware.WithSession(h.Translate(collection)))
}

func (h *AdminAPIHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.GetStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func articleFilter(r *http.Request) model.ListFilter {
	p := ParsePagination(r)
	q := r.URL.Query()
	return model.ListFilter{
		Published:  parseBool(r, "published"),
		CategoryID: q.Get("categoryId"),
		Search:     strings.TrimSpace(q.Get("search")),
		Limit:      p.Limit,
		Offset:     p.Offset,
	}
}

func (h *AdminAPIHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.posts.List, articleFilter(r))
}

func (h *AdminAPIHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.news.List, articleFilter(r))
}

func (h *AdminAPIHandler) ListSuccessCases(w http.ResponseWriter, r *http.Request) {
	list(w, r, h.cases.List, articleFilter(r))
}

func (h *AdminAPIHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	q := r.URL.Query()
	list(w, r, h.hospitals.List, repository.HospitalFilter{
		City:   strings.TrimSpace(q.Get("city")),
		Search: strings.TrimSpace(q.Get("search")),
		Active: parseBool(r, "active"),
		Limit:  p.Limit,
		Offset: p.Offset,
	})
}

func (h *AdminAPIHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": categories,
		"total": len(categories),
	})
}

func (h *AdminAPIHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)
	filter := model.ContactFilter{
		Status: model.ContactStatus(r.URL.Query().Get("status")),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
	if unread := parseBool(r, "unread"); unread != nil {
		filter.Unread = *unread
	}
	list(w, r, h.contacts.List, filter)
}

func (h *AdminAPIHandler) UpdateContact(w http.ResponseWriter, r *http.Request, session *model.Session) {
	var patch model.ContactPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	contact, err := h.contacts.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	auditContent(r, audit.EventContactUpdate, session, model.CollectionContacts, id)
	writeJSON(w, http.StatusOK, contact)
}

func (h *AdminAPIHandler) TranslationStatus(collection model.Collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := h.translation.Status(r.Context(), collection, chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, status)
	}
}

func (h *AdminAPIHandler) Translate(collection model.Collection) middleware.SessionHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, session *model.Session) {
		id := chi.URLParam(r, "id")
		result, err := h.translation.Translate(r.Context(), collection, id)
		if err != nil {
			writeError(w, err)
			return
		}
		audit.LogFromRequest(r, audit.Event{
			Type:       audit.EventTranslate,
			UserID:     session.UserID,
			Collection: string(collection),
			RecordID:   id,
			Details:    map[string]any{"fields": strings.Join(result.Translated, ",")},
		})
		writeJSON(w, http.StatusOK, result)
	}
}

func list[T, F any](w http.ResponseWriter, r *http.Request, fetch func(context.Context, F) (*service.Page[T], error), filter F) {
	page, err := fetch(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func show[T any](get func(context.Context, string) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func create[T, In any](collection model.Collection, fn func(context.Context, In) (*T, error)) middleware.SessionHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, session *model.Session) {
		var in In
		if err := decodeJSON(r, &in); err != nil {
			writeError(w, err)
			return
		}
		record, err := fn(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		auditContent(r, audit.EventContentCreate, session, collection, recordID(record))
		writeJSON(w, http.StatusCreated, record)
	}
}

func update[T, P any](collection model.Collection, fn func(context.Context, string, P) (*T, error)) middleware.SessionHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, session *model.Session) {
		var patch P
		if err := decodeJSON(r, &patch); err != nil {
			writeError(w, err)
			return
		}
		id := chi.URLParam(r, "id")
		record, err := fn(r.Context(), id, patch)
		if err != nil {
			writeError(w, err)
			return
		}
		auditContent(r, audit.EventContentUpdate, session, collection, id)
		writeJSON(w, http.StatusOK, record)
	}
}

func remove(collection model.Collection, fn func(context.Context, string) error) middleware.SessionHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, session *model.Session) {
		id := chi.URLParam(r, "id")
		if err := fn(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		auditContent(r, audit.EventContentDelete, session, collection, id)
		writeJSON(w, http.StatusOK, successResponse{Success: true})
	}
}

func recordID(record any) string {
	if v, ok := record.(interface{ RecordID() string }); ok {
		return v.RecordID()
	}
	return ""
}
