package service

import (
	"context"
	"time"

	"govsite/internal/cache"
	apperrors "govsite/internal/errors"
	"govsite/internal/model"
	"govsite/internal/repository"
)

// NewsService exposes news operations.
type NewsService interface {
	ListNews(ctx context.Context, lang string, limit int) ([]model.News, error)
	GetNewsBySlug(ctx context.Context, slug string) (*model.News, error)
	GetNews(ctx context.Context, id uint) (*model.News, error)
	CreateNews(ctx context.Context, in model.NewsInput) (*model.News, error)
	UpdateNews(ctx context.Context, id uint, patch model.NewsPatch) (*model.News, error)
	DeleteNews(ctx context.Context, id uint) error
}

type newsService struct {
	repo  repository.NewsRepository
	cache readCache
	now   func() time.Time
}

// NewNewsService builds a NewsService with repository and cache.
func NewNewsService(repo repository.NewsRepository, c *cache.Client, ttl time.Duration) NewsService {
	return &newsService{repo: repo, cache: newReadCache(c, ttl, "news"), now: time.Now}
}

func (s *newsService) ListNews(ctx context.Context, lang string, limit int) ([]model.News, error) {
	if lang == "" {
		lang = model.DefaultLanguage
	}
	if limit < 0 {
		limit = 0
	}
	return cached(ctx, s.cache, s.cache.key("list", lang, limit), func() ([]model.News, error) {
		return s.repo.List(ctx, repository.NewsFilter{Language: lang, Limit: limit})
	})
}

func (s *newsService) GetNewsBySlug(ctx context.Context, slug string) (*model.News, error) {
	return cached(ctx, s.cache, s.cache.key("slug", slug), func() (*model.News, error) {
		n, err := s.repo.FindBySlug(ctx, slug)
		return n, domainError(err, apperrors.ErrNewsNotFound)
	})
}

func (s *newsService) GetNews(ctx context.Context, id uint) (*model.News, error) {
	n, err := s.repo.FindByID(ctx, id)
	return n, domainError(err, apperrors.ErrNewsNotFound)
}

func (s *newsService) CreateNews(ctx context.Context, in model.NewsInput) (*model.News, error) {
	n := in.ToNews(s.now())
	n.Slug = deriveSlug(n.Slug, n.Title, "news")
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, domainError(err, apperrors.ErrNewsNotFound)
	}
	s.cache.invalidate(ctx)
	return n, nil
}

func (s *newsService) UpdateNews(ctx context.Context, id uint, patch model.NewsPatch) (*model.News, error) {
	n, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, domainError(err, apperrors.ErrNewsNotFound)
	}
	s.cache.invalidate(ctx)
	return n, nil
}

func (s *newsService) DeleteNews(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err := deleted(ok, err, apperrors.ErrNewsNotFound); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}
