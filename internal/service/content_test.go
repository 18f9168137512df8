package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/model"
)

const postID = "3f2b7c1e-8a4d-4f6b-9c2e-1d5a7b9e0f11"

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newTestPostService(repo *mockPostRepo, categories *mockCategoryRepo, now time.Time) *PostService {
	s := NewPostService(mockTransactor{}, repo, categories)
	s.now = fixedClock(now)
	return s
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ReadingTime(tc.words), "words=%d", tc.words)
	}
}

func TestCountWordsIgnoresMarkup(t *testing.T) {
	assert.Equal(t, 4, CountWords("## Plazo\n\nUn **año** <em>exacto</em>"))
	assert.Equal(t, 0, CountWords("   "))
}

func TestPostServiceCreate(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	repo := new(mockPostRepo)
	repo.On("SlugExists", mock.Anything, "negligencia-en-urgencias", "").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).
		Return(&model.Post{Article: model.Article{ID: postID}}, nil)

	s := newTestPostService(repo, new(mockCategoryRepo), now)
	created, err := s.Create(context.Background(), model.PostInput{
		ArticleInput: model.ArticleInput{
			Title:       "  Negligencia en urgencias ",
			Content:     strings.Repeat("palabra ", 250),
			TitleEn:     strPtr("   "),
			IsPublished: true,
		},
		AuthorName: strPtr("Lucía Ferrer"),
	})
	require.NoError(t, err)
	assert.Equal(t, postID, created.ID)

	saved := repo.Calls[1].Arguments.Get(1).(*model.Post)
	assert.Equal(t, "negligencia-en-urgencias", saved.Slug)
	assert.Equal(t, "Negligencia en urgencias", saved.Title)
	assert.Nil(t, saved.TitleEn)
	assert.Equal(t, 250, saved.WordCount)
	assert.Equal(t, 2, saved.ReadingTime)
	require.NotNil(t, saved.PublishedAt)
	assert.Equal(t, now, *saved.PublishedAt)
}

func TestPostServiceCreateDuplicateSlug(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("SlugExists", mock.Anything, "taken", "").Return(true, nil)

	s := newTestPostService(repo, new(mockCategoryRepo), time.Now())
	_, err := s.Create(context.Background(), model.PostInput{
		ArticleInput: model.ArticleInput{Slug: "taken", Title: "Title", Content: "Body"},
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeConflict, appErr.Code)
	assert.Equal(t, "A record with this slug already exists", appErr.Message)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostServiceCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input model.PostInput
		field string
	}{
		{"missing title", model.PostInput{ArticleInput: model.ArticleInput{Content: "Body"}}, "title"},
		{"missing content", model.PostInput{ArticleInput: model.ArticleInput{Title: "Title"}}, "content"},
		{"blank title", model.PostInput{ArticleInput: model.ArticleInput{Title: "   ", Content: "Body"}}, "title"},
		{"blank title with slug", model.PostInput{ArticleInput: model.ArticleInput{Slug: "explicit-slug", Title: "   ", Content: "Body"}}, "title"},
		{"blank content", model.PostInput{ArticleInput: model.ArticleInput{Title: "Title", Content: "  "}}, "content"},
		{"invalid slug", model.PostInput{ArticleInput: model.ArticleInput{Slug: "No Vale", Title: "Title", Content: "Body"}}, "slug"},
		{"bad category id", model.PostInput{ArticleInput: model.ArticleInput{Title: "Title", Content: "Body"}, CategoryID: strPtr("abc")}, "categoryId"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockPostRepo)
			s := newTestPostService(repo, new(mockCategoryRepo), time.Now())

			_, err := s.Create(context.Background(), tc.input)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
			fields, ok := appErr.Details.([]apperrors.FieldError)
			require.True(t, ok)
			assert.Equal(t, tc.field, fields[0].Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPostServiceCreateUnknownCategory(t *testing.T) {
	categoryID := "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"
	repo := new(mockPostRepo)
	categories := new(mockCategoryRepo)
	categories.On("FindByID", mock.Anything, categoryID).Return(nil, nil)

	s := newTestPostService(repo, categories, time.Now())
	_, err := s.Create(context.Background(), model.PostInput{
		ArticleInput: model.ArticleInput{Title: "Title", Content: "Body"},
		CategoryID:   &categoryID,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}

func TestPostServiceUpdateStampsPublishedAtOnce(t *testing.T) {
	first := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	stored := &model.Post{Article: model.Article{ID: postID, Slug: "borrador", Title: "Borrador", Content: "Texto"}}

	repo := new(mockPostRepo)
	repo.On("FindByIDForUpdate", mock.Anything, postID).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(stored, nil)

	s := newTestPostService(repo, new(mockCategoryRepo), first)
	publish := model.PostPatch{ArticlePatch: model.ArticlePatch{IsPublished: boolPtr(true)}}

	updated, err := s.Update(context.Background(), postID, publish)
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	assert.Equal(t, first, *updated.PublishedAt)

	s.now = fixedClock(first.Add(48 * time.Hour))
	publish.Title = strPtr("Publicado")
	updated, err = s.Update(context.Background(), postID, publish)
	require.NoError(t, err)
	assert.Equal(t, first, *updated.PublishedAt)
	assert.Equal(t, "Publicado", updated.Title)

	_, err = s.Update(context.Background(), postID, model.PostPatch{ArticlePatch: model.ArticlePatch{IsPublished: boolPtr(false)}})
	require.NoError(t, err)
	_, err = s.Update(context.Background(), postID, publish)
	require.NoError(t, err)
	assert.Equal(t, first, *stored.PublishedAt)
}

func TestPostServiceUpdateRecomputesReadingTime(t *testing.T) {
	stored := &model.Post{Article: model.Article{ID: postID, Slug: "a", Title: "A", Content: "corto", ReadingTime: 1, WordCount: 1}}
	repo := new(mockPostRepo)
	repo.On("FindByIDForUpdate", mock.Anything, postID).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(stored, nil)

	s := newTestPostService(repo, new(mockCategoryRepo), time.Now())
	_, err := s.Update(context.Background(), postID, model.PostPatch{ArticlePatch: model.ArticlePatch{
		Content: strPtr(strings.Repeat("palabra ", 401)),
	}})
	require.NoError(t, err)
	assert.Equal(t, 401, stored.WordCount)
	assert.Equal(t, 3, stored.ReadingTime)
}

func TestPostServiceUpdateSlugConflict(t *testing.T) {
	stored := &model.Post{Article: model.Article{ID: postID, Slug: "original", Title: "A", Content: "B"}}
	repo := new(mockPostRepo)
	repo.On("FindByIDForUpdate", mock.Anything, postID).Return(stored, nil)
	repo.On("SlugExists", mock.Anything, "taken", postID).Return(true, nil)

	s := newTestPostService(repo, new(mockCategoryRepo), time.Now())
	_, err := s.Update(context.Background(), postID, model.PostPatch{ArticlePatch: model.ArticlePatch{Slug: strPtr("taken")}})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConflict))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPostServiceUpdateUnchangedSlugSkipsCheck(t *testing.T) {
	stored := &model.Post{Article: model.Article{ID: postID, Slug: "original", Title: "A", Content: "B"}}
	repo := new(mockPostRepo)
	repo.On("FindByIDForUpdate", mock.Anything, postID).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(stored, nil)

	s := newTestPostService(repo, new(mockCategoryRepo), time.Now())
	_, err := s.Update(context.Background(), postID, model.PostPatch{ArticlePatch: model.ArticlePatch{Slug: strPtr("original")}})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "SlugExists", mock.Anything, mock.Anything, mock.Anything)
}

func TestPostServiceUpdateRejectsBlankTitle(t *testing.T) {
	repo := new(mockPostRepo)
	stored := &model.Post{Article: model.Article{ID: postID, Slug: "a", Title: "A", Content: "B"}}
	repo.On("FindByIDForUpdate", mock.Anything, postID).Return(stored, nil)

	s := newTestPostService(repo, new(mockCategoryRepo), time.Now())
	_, err := s.Update(context.Background(), postID, model.PostPatch{ArticlePatch: model.ArticlePatch{Title: strPtr("   ")}})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
	assert.Equal(t, "A", stored.Title)
}

func TestPostServiceNotFound(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("FindByID", mock.Anything, postID).Return(nil, nil)
	repo.On("FindByIDForUpdate", mock.Anything, postID).Return(nil, nil)
	repo.On("Delete", mock.Anything, postID).Return(false, nil)
	s := newTestPostService(repo, new(mockCategoryRepo), time.Now())
	ctx := context.Background()

	_, err := s.Get(ctx, postID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))

	_, err = s.Update(ctx, postID, model.PostPatch{})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))

	assert.True(t, apperrors.Is(s.Delete(ctx, postID), apperrors.ErrCodeNotFound))
}

func TestPostServiceInvalidID(t *testing.T) {
	s := newTestPostService(new(mockPostRepo), new(mockCategoryRepo), time.Now())
	_, err := s.Get(context.Background(), "not-a-uuid")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
	assert.True(t, apperrors.Is(s.Delete(context.Background(), "1"), apperrors.ErrCodeValidation))
}

func TestPostServiceGetPublishedBySlugHidesDrafts(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("FindBySlug", mock.Anything, "draft").Return(&model.Post{Article: model.Article{Slug: "draft"}}, nil)
	repo.On("FindBySlug", mock.Anything, "live").Return(&model.Post{Article: model.Article{Slug: "live", IsPublished: true}}, nil)
	s := newTestPostService(repo, new(mockCategoryRepo), time.Now())

	_, err := s.GetPublishedBySlug(context.Background(), "draft")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))

	post, err := s.GetPublishedBySlug(context.Background(), "live")
	require.NoError(t, err)
	assert.Equal(t, "live", post.Slug)
}

func TestPostServiceListNormalizesPaging(t *testing.T) {
	repo := new(mockPostRepo)
	want := model.ListFilter{Limit: 200, Offset: 0}
	repo.On("List", mock.Anything, want).Return([]model.Post{}, nil)
	repo.On("Count", mock.Anything, want).Return(7, nil)

	s := newTestPostService(repo, new(mockCategoryRepo), time.Now())
	page, err := s.List(context.Background(), model.ListFilter{Limit: 1000, Offset: -4})
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 200, page.Limit)
}

func TestPostServiceDatabaseErrorsAreWrapped(t *testing.T) {
	repo := new(mockPostRepo)
	repo.On("FindByID", mock.Anything, postID).Return(nil, errors.New("connection reset"))
	s := newTestPostService(repo, new(mockCategoryRepo), time.Now())

	_, err := s.Get(context.Background(), postID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeDatabase))
}
