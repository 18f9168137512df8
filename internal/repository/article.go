package repository

import (
	"fmt"
	"strings"

	"github.com/negligencias/site-server/internal/model"
)

var articleColumns = []string{
	"slug", "title", "excerpt", "content",
	"title_en", "excerpt_en", "content_en",
	"meta_title", "meta_description", "meta_title_en", "meta_description_en",
	"is_published", "published_at", "reading_time", "word_count",
}

const articleOrder = `COALESCE(published_at, created_at) DESC, id`

func articleArgs(a *model.Article) []any {
	return []any{
		a.Slug, a.Title, a.Excerpt, a.Content,
		a.TitleEn, a.ExcerptEn, a.ContentEn,
		a.MetaTitle, a.MetaDescription, a.MetaTitleEn, a.MetaDescriptionEn,
		a.IsPublished, a.PublishedAt, a.ReadingTime, a.WordCount,
	}
}

func insertSQL(tableName string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING *`,
		tableName, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

// updateSQL binds id to $1 and columns from $2.
func updateSQL(tableName string, columns []string) string {
	sets := make([]string, len(columns))
	for i, c := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+2)
	}
	return fmt.Sprintf(`UPDATE %s SET %s, updated_at = NOW() WHERE id = $1 RETURNING *`,
		tableName, strings.Join(sets, ", "))
}

func articleWhere(f model.ListFilter) *where {
	w := &where{}
	if f.Published != nil {
		w.add("is_published = ?", *f.Published)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		w.add("(title ILIKE ? OR title_en ILIKE ?)", "%"+s+"%")
	}
	return w
}
