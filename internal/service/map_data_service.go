package service

import (
	"context"
	"time"

	"govsite/internal/cache"
	apperrors "govsite/internal/errors"
	"govsite/internal/model"
	"govsite/internal/repository"
)

// MapDataService exposes interactive map layers.
type MapDataService interface {
	ListMapData(ctx context.Context, layerType string) ([]model.MapData, error)
	GetMapData(ctx context.Context, id uint) (*model.MapData, error)
	CreateMapData(ctx context.Context, in model.MapDataInput) (*model.MapData, error)
	UpdateMapData(ctx context.Context, id uint, patch model.MapDataPatch) (*model.MapData, error)
	DeleteMapData(ctx context.Context, id uint) error
}

type mapDataService struct {
	repo  repository.MapDataRepository
	cache readCache
}

// NewMapDataService builds a MapDataService with repository and cache.
func NewMapDataService(repo repository.MapDataRepository, c *cache.Client, ttl time.Duration) MapDataService {
	return &mapDataService{repo: repo, cache: newReadCache(c, ttl, "map-data")}
}

func (s *mapDataService) ListMapData(ctx context.Context, layerType string) ([]model.MapData, error) {
	return cached(ctx, s.cache, s.cache.key("list", layerType), func() ([]model.MapData, error) {
		return s.repo.List(ctx, repository.MapDataFilter{LayerType: layerType})
	})
}

func (s *mapDataService) GetMapData(ctx context.Context, id uint) (*model.MapData, error) {
	m, err := s.repo.FindByID(ctx, id)
	return m, domainError(err, apperrors.ErrMapDataNotFound)
}

func (s *mapDataService) CreateMapData(ctx context.Context, in model.MapDataInput) (*model.MapData, error) {
	m := in.ToMapData()
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, domainError(err, apperrors.ErrMapDataNotFound)
	}
	s.cache.invalidate(ctx)
	return m, nil
}

func (s *mapDataService) UpdateMapData(ctx context.Context, id uint, patch model.MapDataPatch) (*model.MapData, error) {
	m, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, domainError(err, apperrors.ErrMapDataNotFound)
	}
	s.cache.invalidate(ctx)
	return m, nil
}

func (s *mapDataService) DeleteMapData(ctx context.Context, id uint) error {
	ok, err := s.repo.Delete(ctx, id)
	if err := deleted(ok, err, apperrors.ErrMapDataNotFound); err != nil {
		return err
	}
	s.cache.invalidate(ctx)
	return nil
}
