package repository

import (
	"context"

	"gorm.io/gorm"

	"govsite/internal/model"
)

// ServiceRepository defines persistence for the services catalog.
type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	Update(ctx context.Context, id uint, patch model.ServicePatch) (*model.Service, error)
	Delete(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Service, error)
	FindBySlug(ctx context.Context, slug string) (*model.Service, error)
	// List returns active services in the filter language, by ascending order.
	List(ctx context.Context, filter ServiceFilter) ([]model.Service, error)
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository.
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	service.ID = 0
	return translate(r.db.WithContext(ctx).Create(service).Error)
}

func (r *serviceRepository) Update(ctx context.Context, id uint, patch model.ServicePatch) (*model.Service, error) {
	return updateByID(ctx, r.db, id, func(s *model.Service) {
		patch.Apply(s)
	})
}

func (r *serviceRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return deleteByID[model.Service](ctx, r.db, id)
}

func (r *serviceRepository) FindByID(ctx context.Context, id uint) (*model.Service, error) {
	return findByID[model.Service](ctx, r.db, id)
}

func (r *serviceRepository) FindBySlug(ctx context.Context, slug string) (*model.Service, error) {
	var service model.Service
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&service).Error; err != nil {
		return nil, translate(err)
	}
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context, filter ServiceFilter) ([]model.Service, error) {
	services := []model.Service{}
	err := r.db.WithContext(ctx).
		Where("language = ? AND is_active = ?", listLanguage(filter.Language), true).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&services).Error
	if err != nil {
		return nil, translate(err)
	}
	return services, nil
}
