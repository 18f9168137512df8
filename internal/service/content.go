package service

import (
	"context"
	"strings"
	"time"

	"github.com/negligencias/site-server/internal/database"
	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/model"
	"github.com/negligencias/site-server/internal/render"
	"github.com/negligencias/site-server/internal/util"
)

const wordsPerMinute = 200

// Transactor runs fn inside a database transaction. *database.DB implements it.
type Transactor interface {
	WithTx(ctx context.Context, fn database.TxFunc) error
}

// Page is one page of a list query.
type Page[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ReadingTime is words / 200 rounded up, never less than one minute.
func ReadingTime(words int) int {
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// CountWords counts the words of markdown content once markup is removed.
func CountWords(content string) int {
	return len(strings.Fields(render.PlainText(content)))
}

func setContentMetrics(a *model.Article) {
	a.WordCount = CountWords(a.Content)
	a.ReadingTime = ReadingTime(a.WordCount)
}

// stampPublished sets published_at the first time a record is published.
func stampPublished(a *model.Article, now time.Time) {
	if a.IsPublished && a.PublishedAt == nil {
		t := now
		a.PublishedAt = &t
	}
}

func resolveSlug(raw, title string) (string, error) {
	slug := strings.TrimSpace(raw)
	if slug == "" {
		slug = util.Slugify(title)
	}
	if !util.IsValidSlug(slug) {
		return "", fieldError("slug", "Slug must contain only lowercase letters, numbers and hyphens")
	}
	return slug, nil
}

type slugChecker func(ctx context.Context, slug, excludeID string) (bool, error)

func ensureSlugFree(ctx context.Context, exists slugChecker, slug, excludeID string) error {
	taken, err := exists(ctx, slug, excludeID)
	if err != nil {
		return dbError(err)
	}
	if taken {
		return apperrors.DuplicateSlug()
	}
	return nil
}

func newArticle(in model.ArticleInput, now time.Time) (model.Article, error) {
	if err := blankPatch("title", &in.Title); err != nil {
		return model.Article{}, err
	}
	title := strings.TrimSpace(in.Title)
	slug, err := resolveSlug(in.Slug, title)
	if err != nil {
		return model.Article{}, err
	}
	a := model.Article{
		Slug:              slug,
		Title:             title,
		Excerpt:           strings.TrimSpace(in.Excerpt),
		Content:           in.Content,
		TitleEn:           optional(in.TitleEn),
		ExcerptEn:         optional(in.ExcerptEn),
		ContentEn:         optional(in.ContentEn),
		MetaTitle:         optional(in.MetaTitle),
		MetaDescription:   optional(in.MetaDescription),
		MetaTitleEn:       optional(in.MetaTitleEn),
		MetaDescriptionEn: optional(in.MetaDescriptionEn),
		IsPublished:       in.IsPublished,
	}
	if strings.TrimSpace(a.Content) == "" {
		return model.Article{}, blankPatch("content", &a.Content)
	}
	setContentMetrics(&a)
	stampPublished(&a, now)
	return a, nil
}

// applyArticlePatch merges p into a. It reports whether the slug changed.
func applyArticlePatch(a *model.Article, p model.ArticlePatch, now time.Time) (bool, error) {
	if err := blankPatch("title", p.Title); err != nil {
		return false, err
	}
	if err := blankPatch("content", p.Content); err != nil {
		return false, err
	}

	if p.Title != nil {
		a.Title = strings.TrimSpace(*p.Title)
	}
	slugChanged := false
	if p.Slug != nil {
		slug, err := resolveSlug(*p.Slug, a.Title)
		if err != nil {
			return false, err
		}
		slugChanged = slug != a.Slug
		a.Slug = slug
	}
	if p.Excerpt != nil {
		a.Excerpt = strings.TrimSpace(*p.Excerpt)
	}
	if p.Content != nil && *p.Content != a.Content {
		a.Content = *p.Content
		setContentMetrics(a)
	}

	setEn := setOptional
	if p.FillEmptyEn {
		setEn = fillOptional
	}
	setEn(&a.TitleEn, p.TitleEn)
	setEn(&a.ExcerptEn, p.ExcerptEn)
	setEn(&a.ContentEn, p.ContentEn)
	setOptional(&a.MetaTitle, p.MetaTitle)
	setOptional(&a.MetaDescription, p.MetaDescription)
	setEn(&a.MetaTitleEn, p.MetaTitleEn)
	setEn(&a.MetaDescriptionEn, p.MetaDescriptionEn)

	if p.IsPublished != nil {
		a.IsPublished = *p.IsPublished
	}
	stampPublished(a, now)
	return slugChanged, nil
}

// setOptional applies a patch value; a blank value clears the field.
func setOptional(dst **string, v *string) {
	if v != nil {
		*dst = optional(v)
	}
}

// fillOptional applies a patch value only when the field is still empty.
func fillOptional(dst **string, v *string) {
	if !i18n.Present(*dst) {
		setOptional(dst, v)
	}
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
