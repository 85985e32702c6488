package service

import (
	"context"
	"time"

	"govsite/internal/cache"
	apperrors "govsite/internal/errors"
	"govsite/internal/model"
	"govsite/internal/repository"
)

// CatalogService exposes the public services catalog.
type CatalogService interface {
	ListServices(ctx context.Context, lang string) ([]model.Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (*model.Service, error)
	GetService(ctx context.Context, id uint) (*model.Service, error)
	CreateService(ctx context.Context, in model.ServiceInput) (*model.Service, error)
	UpdateService(ctx context.Context, id uint, patch model.ServicePatch) (*model.Service, error)
	DeleteService(ctx context.Context, id uint) error
}

type catalogService struct {
	repo  repository.ServiceRepository
	cache readCache
}

// NewCatalogService builds a CatalogService with repository and cache.
func NewCatalogService(repo repository.ServiceRepository, c *cache.Client, ttl time.Duration) CatalogService {
	return &catalogService{repo: repo, cache: newReadCache(c, ttl, "services")}
}

func (s *catalogService) ListServices(ctx context.Context, lang string) ([]model.Service, error) {
	if lang == "" {
		lang = model.DefaultLanguage
	}
	return cached(ctx, s.cache, s.cache.key("list", lang), func() ([]model.Service, error) {
		return s.repo.List(ctx, repository.ServiceFilter{Language: lang})
	})
}

func (s *catalogService) GetServiceBySlug(ctx context.Context, slug string) (*model.Service, error) {
	return cached(ctx, s.cache, s.cache.key("slug", slug), func() (*model.Service, error) {
		svc, err := s.repo.FindBySlug(ctx, slug)
		return svc, domainError(err, apperrors.ErrServiceNotFound)
	})
}

func (s *catalogService) GetService(ctx context.Context, id uint) (*model.Service, error) {
	svc, err := s.repo.FindByID(ctx, id)
	return svc, domainError(err, apperrors.ErrServiceNotFound)
}

func (s *catalogService) CreateService(ctx context.Context, in model.ServiceInput) (*model.Service, error) {
	svc := in.ToService()
	svc.Slug = deriveSlug(svc.Slug, svc.Title, "service")
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, domainError(err, apperrors.ErrServiceNotFound)
	}
	s.cache.invalidate(ctx)
	return svc, nil
}

func (s *catalogService) UpdateService(ctx context.Context, id uint, patch model.ServicePatch) (*model.Service, error) {
	svc, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, domainError(err, apperrors.ErrServiceNotFound)
	}
	s.cache.invalidate(ctx)
	return svc, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err := deleted(ok, err, apperrors.ErrServiceNotFound); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}
