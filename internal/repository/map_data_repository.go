package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"govsite/internal/model"
)

// MapDataRepository defines persistence for map layers.
type MapDataRepository interface {
	// Create stores the layer and stamps createdAt/updatedAt.
	Create(ctx context.Context, data *model.MapData) error
	// Update merges the patch and refreshes updatedAt.
	Update(ctx context.Context, id uint, patch model.MapDataPatch) (*model.MapData, error)
	Delete(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.MapData, error)
	List(ctx context.Context, filter MapDataFilter) ([]model.MapData, error)
}

type mapDataRepository struct {
	db *gorm.DB
}

// NewMapDataRepository creates a new map data repository.
func NewMapDataRepository(db *gorm.DB) MapDataRepository {
	return &mapDataRepository{db: db}
}

func (r *mapDataRepository) Create(ctx context.Context, data *model.MapData) error {
	now := time.Now()
	data.ID = 0
	data.CreatedAt = now
	data.UpdatedAt = now
	return translate(r.db.WithContext(ctx).Create(data).Error)
}

func (r *mapDataRepository) Update(ctx context.Context, id uint, patch model.MapDataPatch) (*model.MapData, error) {
	return updateByID(ctx, r.db, id, func(m *model.MapData) {
		patch.Apply(m)
		m.UpdatedAt = time.Now()
	})
}

func (r *mapDataRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return deleteByID[model.MapData](ctx, r.db, id)
}

func (r *mapDataRepository) FindByID(ctx context.Context, id uint) (*model.MapData, error) {
	return findByID[model.MapData](ctx, r.db, id)
}

func (r *mapDataRepository) List(ctx context.Context, filter MapDataFilter) ([]model.MapData, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.LayerType != "" {
		q = q.Where("layer_type = ?", filter.LayerType)
	}

	layers := []model.MapData{}
	if err := q.Order("id ASC").Find(&layers).Error; err != nil {
		return nil, translate(err)
	}
	return layers, nil
}
