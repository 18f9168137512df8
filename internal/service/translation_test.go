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
	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/model"
)

func newTranslationFixture(translator Translator) (*TranslationService, *mockPostRepo, *model.Post) {
	stored := &model.Post{Article: model.Article{
		ID:        postID,
		Slug:      "plazos",
		Title:     "Plazos para reclamar",
		TitleEn:   strPtr("Claim deadlines"),
		Excerpt:   "Resumen",
		Content:   "Contenido",
		MetaTitle: strPtr("Plazos"),
	}}
	repo := new(mockPostRepo)
	repo.On("FindByID", mock.Anything, postID).Return(stored, nil)
	repo.On("FindByIDForUpdate", mock.Anything, postID).Return(stored, nil)
	repo.On("Update", mock.Anything, stored).Return(stored, nil)

	posts := newTestPostService(repo, new(mockCategoryRepo), time.Now())
	return NewTranslationService(translator, posts, nil, nil), repo, stored
}

func TestTranslationServiceFillsOnlyMissingFields(t *testing.T) {
	translator := new(mockTranslator)
	translator.On("Translate", mock.Anything, map[string]string{
		i18n.FieldExcerpt:   "Resumen",
		i18n.FieldContent:   "Contenido",
		i18n.FieldMetaTitle: "Plazos",
	}).Return(map[string]string{
		i18n.FieldExcerpt:   "Summary",
		i18n.FieldContent:   "Content",
		i18n.FieldMetaTitle: "Deadlines",
		i18n.FieldTitle:     "Should be ignored",
	}, nil)

	s, _, stored := newTranslationFixture(translator)
	result, err := s.Translate(context.Background(), model.CollectionPosts, postID)
	require.NoError(t, err)

	assert.Equal(t, []string{i18n.FieldContent, i18n.FieldExcerpt, i18n.FieldMetaTitle}, result.Translated)
	assert.Equal(t, i18n.StatusComplete, result.Status.Status)
	assert.Equal(t, "Claim deadlines", *stored.TitleEn)
	assert.Equal(t, "Summary", *stored.ExcerptEn)
	assert.Equal(t, "Deadlines", *stored.MetaTitleEn)
	translator.AssertExpectations(t)
}

func TestTranslationServiceKeepsTranslationSavedMeanwhile(t *testing.T) {
	translator := new(mockTranslator)
	s, _, stored := newTranslationFixture(translator)
	translator.On("Translate", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { stored.ExcerptEn = strPtr("Written by an editor") }).
		Return(map[string]string{
			i18n.FieldExcerpt:   "Summary",
			i18n.FieldContent:   "Content",
			i18n.FieldMetaTitle: "Deadlines",
		}, nil)

	result, err := s.Translate(context.Background(), model.CollectionPosts, postID)
	require.NoError(t, err)

	assert.Equal(t, []string{i18n.FieldContent, i18n.FieldMetaTitle}, result.Translated)
	assert.Equal(t, "Written by an editor", *stored.ExcerptEn)
	assert.Equal(t, "Content", *stored.ContentEn)
}

func TestTranslationServiceNotConfigured(t *testing.T) {
	s, repo, _ := newTranslationFixture(nil)
	_, err := s.Translate(context.Background(), model.CollectionPosts, postID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeServiceUnavailable))
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestTranslationServiceUpstreamFailure(t *testing.T) {
	translator := new(mockTranslator)
	translator.On("Translate", mock.Anything, mock.Anything).Return(nil, errors.New("context deadline exceeded"))

	s, repo, _ := newTranslationFixture(translator)
	_, err := s.Translate(context.Background(), model.CollectionPosts, postID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeUpstream))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTranslationServiceNothingMissing(t *testing.T) {
	translator := new(mockTranslator)
	s, repo, stored := newTranslationFixture(translator)
	stored.ExcerptEn = strPtr("Summary")
	stored.ContentEn = strPtr("Content")
	stored.MetaTitleEn = strPtr("Deadlines")

	result, err := s.Translate(context.Background(), model.CollectionPosts, postID)
	require.NoError(t, err)
	assert.Empty(t, result.Translated)
	translator.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTranslationServiceStatus(t *testing.T) {
	s, _, _ := newTranslationFixture(nil)
	status, err := s.Status(context.Background(), model.CollectionPosts, postID)
	require.NoError(t, err)
	assert.Equal(t, i18n.StatusPartial, status.Status)
	assert.True(t, status.HasTitle)
	assert.True(t, status.NeedsTranslation)

	_, err = s.Status(context.Background(), model.CollectionHospitals, postID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes(" abc ", 70))
	assert.Equal(t, "ññ", truncateRunes("ñññ", 2))
	assert.Equal(t, strings.Repeat("x", 10), truncateRunes(strings.Repeat("x", 10), 0))
}

func TestAdminServiceGetStats(t *testing.T) {
	repo := new(mockStatsRepo)
	repo.On("Stats", mock.Anything).Return(&model.Stats{Posts: 3, UnreadContacts: 2}, nil)

	stats, err := NewAdminService(repo).GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Posts)
	assert.Equal(t, 2, stats.UnreadContacts)

	failing := new(mockStatsRepo)
	failing.On("Stats", mock.Anything).Return(nil, errors.New("down"))
	_, err = NewAdminService(failing).GetStats(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeDatabase))
}
