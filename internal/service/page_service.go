package service

import (
	"context"
	"time"

	"govsite/internal/cache"
	apperrors "govsite/internal/errors"
	"govsite/internal/model"
	"govsite/internal/repository"
	"govsite/internal/textutil"
)

// PageService exposes CMS pages. Page content is sanitised HTML.
type PageService interface {
	ListPages(ctx context.Context, lang string) ([]model.Page, error)
	// GetPageBySlug returns the published page for slug in lang.
	GetPageBySlug(ctx context.Context, slug, lang string) (*model.Page, error)
	GetPage(ctx context.Context, id uint) (*model.Page, error)
	CreatePage(ctx context.Context, in model.PageInput) (*model.Page, error)
	UpdatePage(ctx context.Context, id uint, patch model.PagePatch) (*model.Page, error)
	DeletePage(ctx context.Context, id uint) error
}

type pageService struct {
	repo  repository.PageRepository
	cache readCache
	now   func() time.Time
}

// NewPageService builds a PageService with repository and cache.
func NewPageService(repo repository.PageRepository, c *cache.Client, ttl time.Duration) PageService {
	return &pageService{repo: repo, cache: newReadCache(c, ttl, "pages"), now: time.Now}
}

func (s *pageService) ListPages(ctx context.Context, lang string) ([]model.Page, error) {
	if lang == "" {
		lang = model.DefaultLanguage
	}
	return cached(ctx, s.cache, s.cache.key("list", lang), func() ([]model.Page, error) {
		return s.repo.List(ctx, repository.PageFilter{Language: lang})
	})
}

func (s *pageService) GetPageBySlug(ctx context.Context, slug, lang string) (*model.Page, error) {
	if lang == "" {
		lang = model.DefaultLanguage
	}
	return cached(ctx, s.cache, s.cache.key("slug", lang, slug), func() (*model.Page, error) {
		p, err := s.repo.FindBySlug(ctx, slug, lang)
		if err != nil {
			return nil, domainError(err, apperrors.ErrPageNotFound)
		}
		if !p.IsPublished {
			return nil, apperrors.ErrPageNotFound
		}
		return p, nil
	})
}

func (s *pageService) GetPage(ctx context.Context, id uint) (*model.Page, error) {
	p, err := s.repo.FindByID(ctx, id)
	return p, domainError(err, apperrors.ErrPageNotFound)
}

func (s *pageService) CreatePage(ctx context.Context, in model.PageInput) (*model.Page, error) {
	p := in.ToPage()
	p.Slug = deriveSlug(p.Slug, p.Title, "page")
	p.Content = textutil.SanitizeHTML(p.Content)
	if p.IsPublished && p.PublishedAt == nil {
		now := s.now()
		p.PublishedAt = &now
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, domainError(err, apperrors.ErrPageNotFound)
	}
	s.cache.invalidate(ctx)
	return p, nil
}

func (s *pageService) UpdatePage(ctx context.Context, id uint, patch model.PagePatch) (*model.Page, error) {
	if patch.Content != nil {
		clean := textutil.SanitizeHTML(*patch.Content)
		patch.Content = &clean
	}
	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, domainError(err, apperrors.ErrPageNotFound)
	}
	s.cache.invalidate(ctx)
	return p, nil
}

func (s *pageService) DeletePage(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err := deleted(ok, err, apperrors.ErrPageNotFound); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}
