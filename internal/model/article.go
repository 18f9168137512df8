package model

import (
	"time"

	"github.com/negligencias/site-server/internal/i18n"
)

// Article holds the bilingual columns shared by posts, news and success cases.
type Article struct {
	ID                string     `db:"id" json:"id"`
	Slug              string     `db:"slug" json:"slug"`
	Title             string     `db:"title" json:"title"`
	Excerpt           string     `db:"excerpt" json:"excerpt"`
	Content           string     `db:"content" json:"content"`
	TitleEn           *string    `db:"title_en" json:"titleEn"`
	ExcerptEn         *string    `db:"excerpt_en" json:"excerptEn"`
	ContentEn         *string    `db:"content_en" json:"contentEn"`
	MetaTitle         *string    `db:"meta_title" json:"metaTitle"`
	MetaDescription   *string    `db:"meta_description" json:"metaDescription"`
	MetaTitleEn       *string    `db:"meta_title_en" json:"metaTitleEn"`
	MetaDescriptionEn *string    `db:"meta_description_en" json:"metaDescriptionEn"`
	IsPublished       bool       `db:"is_published" json:"isPublished"`
	PublishedAt       *time.Time `db:"published_at" json:"publishedAt"`
	ReadingTime       int        `db:"reading_time" json:"readingTime"`
	WordCount         int        `db:"word_count" json:"wordCount"`
	CreatedAt         time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updatedAt"`
}

func (a *Article) Field(name string) (string, *string) {
	switch name {
	case i18n.FieldTitle:
		return a.Title, a.TitleEn
	case i18n.FieldExcerpt:
		return a.Excerpt, a.ExcerptEn
	case i18n.FieldContent:
		return a.Content, a.ContentEn
	case i18n.FieldMetaTitle:
		return deref(a.MetaTitle), a.MetaTitleEn
	case i18n.FieldMetaDescription:
		return deref(a.MetaDescription), a.MetaDescriptionEn
	}
	return "", nil
}

func (a *Article) RecordID() string { return a.ID }

// Base exposes the shared columns to code that handles every article kind.
func (a *Article) Base() *Article { return a }

type Post struct {
	Article
	CategoryID    *string `db:"category_id" json:"categoryId"`
	AuthorName    *string `db:"author_name" json:"authorName"`
	FeaturedImage *string `db:"featured_image" json:"featuredImage"`
}

type News struct {
	Article
	SourceName    *string `db:"source_name" json:"sourceName"`
	SourceURL     *string `db:"source_url" json:"sourceUrl"`
	FeaturedImage *string `db:"featured_image" json:"featuredImage"`
}

type SuccessCase struct {
	Article
	HospitalID   *string `db:"hospital_id" json:"hospitalId"`
	Compensation *string `db:"compensation" json:"compensation"`
}

// ArticleInput is the create payload shared by every article kind.
type ArticleInput struct {
	Slug              string  `json:"slug" validate:"omitempty,max=120"`
	Title             string  `json:"title" validate:"required,max=200"`
	Excerpt           string  `json:"excerpt" validate:"max=500"`
	Content           string  `json:"content" validate:"required"`
	TitleEn           *string `json:"titleEn" validate:"omitempty,max=200"`
	ExcerptEn         *string `json:"excerptEn" validate:"omitempty,max=500"`
	ContentEn         *string `json:"contentEn"`
	MetaTitle         *string `json:"metaTitle" validate:"omitempty,max=70"`
	MetaDescription   *string `json:"metaDescription" validate:"omitempty,max=170"`
	MetaTitleEn       *string `json:"metaTitleEn" validate:"omitempty,max=70"`
	MetaDescriptionEn *string `json:"metaDescriptionEn" validate:"omitempty,max=170"`
	IsPublished       bool    `json:"isPublished"`
}

// ArticlePatch updates only the fields that are set.
type ArticlePatch struct {
	Slug              *string `json:"slug" validate:"omitempty,max=120"`
	Title             *string `json:"title" validate:"omitempty,min=1,max=200"`
	Excerpt           *string `json:"excerpt" validate:"omitempty,max=500"`
	Content           *string `json:"content"`
	TitleEn           *string `json:"titleEn" validate:"omitempty,max=200"`
	ExcerptEn         *string `json:"excerptEn" validate:"omitempty,max=500"`
	ContentEn         *string `json:"contentEn"`
	MetaTitle         *string `json:"metaTitle" validate:"omitempty,max=70"`
	MetaDescription   *string `json:"metaDescription" validate:"omitempty,max=170"`
	MetaTitleEn       *string `json:"metaTitleEn" validate:"omitempty,max=70"`
	MetaDescriptionEn *string `json:"metaDescriptionEn" validate:"omitempty,max=170"`
	IsPublished       *bool   `json:"isPublished"`

	// FillEmptyEn applies English values only to fields that are still empty
	// when the row is locked.
	FillEmptyEn bool `json:"-"`
}

type PostInput struct {
	ArticleInput
	CategoryID    *string `json:"categoryId" validate:"omitempty,uuid"`
	AuthorName    *string `json:"authorName" validate:"omitempty,max=100"`
	FeaturedImage *string `json:"featuredImage" validate:"omitempty,max=500"`
}

type PostPatch struct {
	ArticlePatch
	CategoryID    *string `json:"categoryId" validate:"omitempty,uuid"`
	AuthorName    *string `json:"authorName" validate:"omitempty,max=100"`
	FeaturedImage *string `json:"featuredImage" validate:"omitempty,max=500"`
}

type NewsInput struct {
	ArticleInput
	SourceName    *string `json:"sourceName" validate:"omitempty,max=100"`
	SourceURL     *string `json:"sourceUrl" validate:"omitempty,url,max=500"`
	FeaturedImage *string `json:"featuredImage" validate:"omitempty,max=500"`
}

type NewsPatch struct {
	ArticlePatch
	SourceName    *string `json:"sourceName" validate:"omitempty,max=100"`
	SourceURL     *string `json:"sourceUrl" validate:"omitempty,url,max=500"`
	FeaturedImage *string `json:"featuredImage" validate:"omitempty,max=500"`
}

type SuccessCaseInput struct {
	ArticleInput
	HospitalID   *string `json:"hospitalId" validate:"omitempty,uuid"`
	Compensation *string `json:"compensation" validate:"omitempty,max=100"`
}

type SuccessCasePatch struct {
	ArticlePatch
	HospitalID   *string `json:"hospitalId" validate:"omitempty,uuid"`
	Compensation *string `json:"compensation" validate:"omitempty,max=100"`
}

// ListFilter narrows list queries. A nil Published lists every record.
type ListFilter struct {
	Published  *bool
	CategoryID string
	Search     string
	Limit      int
	Offset     int
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
