package render

import (
	"fmt"

	"github.com/negligencias/site-server/internal/model"
)

type HomeData struct {
	Services []ServiceView
	Cases    []ArticleView
	Posts    []ArticleView
	Cities   []CityView
}

type Pagination struct {
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
}

// NewPagination links neighbouring pages of basePath with ?page=N.
func NewPagination(basePath string, page, total, perPage int) Pagination {
	p := Pagination{Page: page, TotalPages: (total + perPage - 1) / perPage}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if page > 1 {
		p.PrevURL = fmt.Sprintf("%s?page=%d", basePath, page-1)
	}
	if page < p.TotalPages {
		p.NextURL = fmt.Sprintf("%s?page=%d", basePath, page+1)
	}
	return p
}

type ListData struct {
	Title      string
	Section    string
	Items      []ArticleView
	Categories []CategoryView
	Category   *CategoryView
	Pagination Pagination
}

type ArticleData struct {
	Section string
	Article ArticleView
	Related []ArticleView
}

type CityData struct {
	City     CityView
	Services []ServiceView
	Cases    []ArticleView
}

type ContactData struct {
	Services []ServiceView
}

type ErrorData struct {
	Status  int
	Message string
}

type LoginData struct {
	Error string
}

type DashboardData struct {
	Stats *model.Stats
}

type AdminRow struct {
	ID    string
	Cells []string
	Muted bool
}

type AdminTable struct {
	Title      string
	Collection model.Collection
	Columns    []string
	Rows       []AdminRow
	Total      int
	Pagination Pagination
}
