package service

import (
	"context"
	"sort"
	"strings"

	apperrors "github.com/negligencias/site-server/internal/errors"
	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/model"
)

// Translator turns Spanish field values into English, keyed by field name.
type Translator interface {
	Translate(ctx context.Context, fields map[string]string) (map[string]string, error)
}

type TranslationResult struct {
	Translated []string    `json:"translated"`
	Status     i18n.Status `json:"status"`
}

// TranslationService fills the empty English fields of an article.
type TranslationService struct {
	translator Translator
	posts      *PostService
	news       *NewsService
	cases      *SuccessCaseService
}

// NewTranslationService builds the service. A nil translator leaves it
// answering every request with ServiceUnavailable.
func NewTranslationService(translator Translator, posts *PostService, news *NewsService, cases *SuccessCaseService) *TranslationService {
	return &TranslationService{translator: translator, posts: posts, news: news, cases: cases}
}

type articleStore struct {
	get    func(ctx context.Context, id string) (*model.Article, error)
	update func(ctx context.Context, id string, patch model.ArticlePatch) (*model.Article, error)
}

func (s *TranslationService) store(collection model.Collection) (articleStore, error) {
	switch collection {
	case model.CollectionPosts:
		return articleStore{
			get: func(ctx context.Context, id string) (*model.Article, error) {
				p, err := s.posts.Get(ctx, id)
				if err != nil {
					return nil, err
				}
				return p.Base(), nil
			},
			update: func(ctx context.Context, id string, patch model.ArticlePatch) (*model.Article, error) {
				p, err := s.posts.Update(ctx, id, model.PostPatch{ArticlePatch: patch})
				if err != nil {
					return nil, err
				}
				return p.Base(), nil
			},
		}, nil
	case model.CollectionNews:
		return articleStore{
			get: func(ctx context.Context, id string) (*model.Article, error) {
				n, err := s.news.Get(ctx, id)
				if err != nil {
					return nil, err
				}
				return n.Base(), nil
			},
			update: func(ctx context.Context, id string, patch model.ArticlePatch) (*model.Article, error) {
				n, err := s.news.Update(ctx, id, model.NewsPatch{ArticlePatch: patch})
				if err != nil {
					return nil, err
				}
				return n.Base(), nil
			},
		}, nil
	case model.CollectionSuccessCases:
		return articleStore{
			get: func(ctx context.Context, id string) (*model.Article, error) {
				c, err := s.cases.Get(ctx, id)
				if err != nil {
					return nil, err
				}
				return c.Base(), nil
			},
			update: func(ctx context.Context, id string, patch model.ArticlePatch) (*model.Article, error) {
				c, err := s.cases.Update(ctx, id, model.SuccessCasePatch{ArticlePatch: patch})
				if err != nil {
					return nil, err
				}
				return c.Base(), nil
			},
		}, nil
	}
	return articleStore{}, apperrors.NotFound("Collection")
}

// Status reports which English fields an article still lacks.
func (s *TranslationService) Status(ctx context.Context, collection model.Collection, id string) (*i18n.Status, error) {
	store, err := s.store(collection)
	if err != nil {
		return nil, err
	}
	a, err := store.get(ctx, id)
	if err != nil {
		return nil, err
	}
	status := i18n.ResolveStatus(a)
	return &status, nil
}

// Translate machine-translates only the English fields that are empty;
// existing translations are never overwritten.
func (s *TranslationService) Translate(ctx context.Context, collection model.Collection, id string) (*TranslationResult, error) {
	if s.translator == nil {
		return nil, apperrors.ServiceUnavailable("Translation service is not configured")
	}
	store, err := s.store(collection)
	if err != nil {
		return nil, err
	}
	a, err := store.get(ctx, id)
	if err != nil {
		return nil, err
	}

	missing := missingTranslations(a)
	if len(missing) == 0 {
		return &TranslationResult{Translated: []string{}, Status: i18n.ResolveStatus(a)}, nil
	}

	translated, err := s.translator.Translate(ctx, missing)
	if err != nil {
		return nil, apperrors.Upstream("translation", err)
	}

	patch, fields := translationPatch(translated, missing)
	if len(fields) == 0 {
		return &TranslationResult{Translated: []string{}, Status: i18n.ResolveStatus(a)}, nil
	}
	// An editor may have written a translation while the request was out.
	patch.FillEmptyEn = true
	updated, err := store.update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return &TranslationResult{Translated: appliedFields(updated, patch, fields), Status: i18n.ResolveStatus(updated)}, nil
}

// appliedFields keeps the fields whose stored English value is the machine translation.
func appliedFields(a *model.Article, patch model.ArticlePatch, fields []string) []string {
	written := map[string]*string{
		i18n.FieldTitle:           patch.TitleEn,
		i18n.FieldExcerpt:         patch.ExcerptEn,
		i18n.FieldContent:         patch.ContentEn,
		i18n.FieldMetaTitle:       patch.MetaTitleEn,
		i18n.FieldMetaDescription: patch.MetaDescriptionEn,
	}
	applied := make([]string, 0, len(fields))
	for _, field := range fields {
		_, stored := a.Field(field)
		if v := written[field]; v != nil && stored != nil && *stored == *v {
			applied = append(applied, field)
		}
	}
	return applied
}

// missingTranslations returns the Spanish source of every English field
// that is empty while its Spanish counterpart is not.
func missingTranslations(a *model.Article) map[string]string {
	missing := make(map[string]string)
	for _, field := range []string{
		i18n.FieldTitle, i18n.FieldExcerpt, i18n.FieldContent, i18n.FieldMetaTitle, i18n.FieldMetaDescription,
	} {
		primary, secondary := a.Field(field)
		if i18n.Present(&primary) && !i18n.Present(secondary) {
			missing[field] = primary
		}
	}
	return missing
}

// translationLimits mirrors the length validation of ArticlePatch.
var translationLimits = map[string]int{
	i18n.FieldTitle:           200,
	i18n.FieldExcerpt:         500,
	i18n.FieldMetaTitle:       70,
	i18n.FieldMetaDescription: 170,
}

func truncateRunes(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return strings.TrimSpace(string(r[:limit]))
}

func translationPatch(translated, requested map[string]string) (model.ArticlePatch, []string) {
	var patch model.ArticlePatch
	fields := make([]string, 0, len(translated))
	for field, value := range translated {
		if _, ok := requested[field]; !ok || !i18n.Present(&value) {
			continue
		}
		v := truncateRunes(value, translationLimits[field])
		switch field {
		case i18n.FieldTitle:
			patch.TitleEn = &v
		case i18n.FieldExcerpt:
			patch.ExcerptEn = &v
		case i18n.FieldContent:
			patch.ContentEn = &v
		case i18n.FieldMetaTitle:
			patch.MetaTitleEn = &v
		case i18n.FieldMetaDescription:
			patch.MetaDescriptionEn = &v
		default:
			continue
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return patch, fields
}
