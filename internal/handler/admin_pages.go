package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/middleware"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/render"
	"github.com/negligencias/site-server/internal/repository"
	"github.com/negligencias/site-server/internal/service"
)

const adminPageSize = 50

var contactStatusLabels = map[model.ContactStatus]string{
	model.ContactStatusNew:        "Nuevo",
	model.ContactStatusInProgress: "En curso",
	model.ContactStatusClosed:     "Cerrado",
}

// AdminPagesHandler renders the server-side admin screens. The panel is Spanish only.
type AdminPagesHandler struct {
	renderer   *render.Renderer
	admin      *service.AdminService
	posts      *service.PostService
	news       *service.NewsService
	cases      *service.SuccessCaseService
	hospitals  *service.HospitalService
	categories *service.CategoryService
	contacts   *service.ContactService
}

func NewAdminPagesHandler(
	renderer *render.Renderer,
	admin *service.AdminService,
	posts *service.PostService,
	news *service.NewsService,
	cases *service.SuccessCaseService,
	hospitals *service.HospitalService,
	categories *service.CategoryService,
	contacts *service.ContactService,
) *AdminPagesHandler {
	return &AdminPagesHandler{
		renderer:   renderer,
		admin:      admin,
		posts:      posts,
		news:       news,
		cases:      cases,
		hospitals:  hospitals,
		categories: categories,
		contacts:   contacts,
	}
}

// Routes are mounted at /admin behind RouteGuard.Pages.
func (h *AdminPagesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/login", h.Login)
	r.Get("/", middleware.WithSession(h.Dashboard))
	r.Get("/contacts", middleware.WithSession(h.Contacts))
	r.Get("/posts", middleware.WithSession(h.Posts))
	r.Get("/news", middleware.WithSession(h.News))
	r.Get("/success-cases", middleware.WithSession(h.SuccessCases))
	r.Get("/hospitals", middleware.WithSession(h.Hospitals))
	r.Get("/categories", middleware.WithSession(h.Categories))
	return r
}

func (h *AdminPagesHandler) render(w http.ResponseWriter, r *http.Request, name, title string, session *model.Session, data any) {
	page := render.PageData{
		Locale:  i18n.Spanish,
		Path:    r.URL.Path,
		Meta:    render.Meta{Title: title, NoIndex: true},
		Session: session,
		Data:    data,
	}
	if err := h.renderer.Render(w, http.StatusOK, name, page); err != nil {
		log.Error().Err(err).Str("template", name).Msg("admin render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *AdminPagesHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	log.Error().Err(err).Str("path", r.URL.Path).Msg("admin page failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *AdminPagesHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin/login", "Acceso", nil, render.LoginData{})
}

func (h *AdminPagesHandler) Dashboard(w http.ResponseWriter, r *http.Request, session *model.Session) {
	stats, err := h.admin.GetStats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, "admin/dashboard", "Panel", session, render.DashboardData{Stats: stats})
}

func adminOffset(r *http.Request) (page, offset int) {
	page = parsePage(r)
	return page, (page - 1) * adminPageSize
}

func (h *AdminPagesHandler) table(w http.ResponseWriter, r *http.Request, session *model.Session, t render.AdminTable, page int) {
	t.Pagination = render.NewPagination(r.URL.Path, page, t.Total, adminPageSize)
	h.render(w, r, "admin/list", t.Title, session, t)
}

func (h *AdminPagesHandler) Contacts(w http.ResponseWriter, r *http.Request, session *model.Session) {
	page, offset := adminOffset(r)
	res, err := h.contacts.List(r.Context(), model.ContactFilter{Limit: adminPageSize, Offset: offset})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rows := make([]render.AdminRow, 0, len(res.Items))
	for _, c := range res.Items {
		rows = append(rows, render.AdminRow{
			ID:    c.ID,
			Cells: []string{formatAdminTime(c.CreatedAt), c.Name, c.Email, deref(c.Phone), deref(c.Service), contactStatusLabels[c.Status]},
			Muted: c.IsRead,
		})
	}
	h.table(w, r, session, render.AdminTable{
		Title:      "Contactos",
		Collection: model.CollectionContacts,
		Columns:    []string{"Fecha", "Nombre", "Email", "Teléfono", "Servicio", "Estado"},
		Rows:       rows,
		Total:      res.Total,
	}, page)
}

func articleRow(a *model.Article) render.AdminRow {
	status := "Borrador"
	if a.IsPublished && a.PublishedAt != nil {
		status = formatAdminTime(*a.PublishedAt)
	}
	return render.AdminRow{
		ID:    a.ID,
		Cells: []string{a.Title, a.Slug, status, string(i18n.ResolveStatus(a).Status), formatAdminTime(a.UpdatedAt)},
		Muted: !a.IsPublished,
	}
}

var articleColumns = []string{"Título", "Slug", "Publicado", "Traducción", "Actualizado"}

// articleTable lists one page of an article collection, drafts included.
func articleTable[T any](ctx context.Context, fetch func(context.Context, model.ListFilter) (*service.Page[T], error), base func(*T) *model.Article, offset int) ([]render.AdminRow, int, error) {
	res, err := fetch(ctx, model.ListFilter{Limit: adminPageSize, Offset: offset})
	if err != nil {
		return nil, 0, err
	}
	rows := make([]render.AdminRow, 0, len(res.Items))
	for i := range res.Items {
		rows = append(rows, articleRow(base(&res.Items[i])))
	}
	return rows, res.Total, nil
}

func (h *AdminPagesHandler) Posts(w http.ResponseWriter, r *http.Request, session *model.Session) {
	page, offset := adminOffset(r)
	rows, total, err := articleTable(r.Context(), h.posts.List, func(p *model.Post) *model.Article { return &p.Article }, offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.table(w, r, session, render.AdminTable{Title: "Blog", Collection: model.CollectionPosts, Columns: articleColumns, Rows: rows, Total: total}, page)
}

func (h *AdminPagesHandler) News(w http.ResponseWriter, r *http.Request, session *model.Session) {
	page, offset := adminOffset(r)
	rows, total, err := articleTable(r.Context(), h.news.List, func(n *model.News) *model.Article { return &n.Article }, offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.table(w, r, session, render.AdminTable{Title: "Noticias", Collection: model.CollectionNews, Columns: articleColumns, Rows: rows, Total: total}, page)
}

func (h *AdminPagesHandler) SuccessCases(w http.ResponseWriter, r *http.Request, session *model.Session) {
	page, offset := adminOffset(r)
	rows, total, err := articleTable(r.Context(), h.cases.List, func(c *model.SuccessCase) *model.Article { return &c.Article }, offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.table(w, r, session, render.AdminTable{Title: "Casos de éxito", Collection: model.CollectionSuccessCases, Columns: articleColumns, Rows: rows, Total: total}, page)
}

func (h *AdminPagesHandler) Hospitals(w http.ResponseWriter, r *http.Request, session *model.Session) {
	page, offset := adminOffset(r)
	res, err := h.hospitals.List(r.Context(), repository.HospitalFilter{Limit: adminPageSize, Offset: offset})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rows := make([]render.AdminRow, 0, len(res.Items))
	for _, hp := range res.Items {
		active := "Sí"
		if !hp.IsActive {
			active = "No"
		}
		rows = append(rows, render.AdminRow{
			ID:    hp.ID,
			Cells: []string{hp.Name, hp.City, deref(hp.Province), active},
			Muted: !hp.IsActive,
		})
	}
	h.table(w, r, session, render.AdminTable{
		Title:      "Hospitales",
		Collection: model.CollectionHospitals,
		Columns:    []string{"Nombre", "Ciudad", "Provincia", "Activo"},
		Rows:       rows,
		Total:      res.Total,
	}, page)
}

func (h *AdminPagesHandler) Categories(w http.ResponseWriter, r *http.Request, session *model.Session) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	rows := make([]render.AdminRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, render.AdminRow{ID: c.ID, Cells: []string{c.Name, deref(c.NameEn), c.Slug}})
	}
	h.table(w, r, session, render.AdminTable{
		Title:      "Categorías",
		Collection: model.CollectionCategories,
		Columns:    []string{"Nombre", "Nombre (EN)", "Slug"},
		Rows:       rows,
		Total:      len(rows),
	}, 1)
}

var madrid = loadMadrid()

func loadMadrid() *time.Location {
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		return time.UTC
	}
	return loc
}

func formatAdminTime(t time.Time) string {
	return t.In(madrid).Format("02/01/2006 15:04")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
