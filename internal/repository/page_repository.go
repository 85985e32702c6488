package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"govsite/internal/model"
)

// PageRepository defines CMS page persistence operations.
type PageRepository interface {
	// Create stores the page and stamps updatedAt.
	Create(ctx context.Context, page *model.Page) error
	// Update merges the patch and refreshes updatedAt.
	Update(ctx context.Context, id uint, patch model.PagePatch) (*model.Page, error)
	Delete(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Page, error)
	// FindBySlug matches slug and language; publication status is not checked.
	FindBySlug(ctx context.Context, slug, language string) (*model.Page, error)
	List(ctx context.Context, filter PageFilter) ([]model.Page, error)
}

type pageRepository struct {
	db *gorm.DB
}

// NewPageRepository creates a new page repository.
func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) Create(ctx context.Context, page *model.Page) error {
	page.ID = 0
	page.UpdatedAt = time.Now()
	return translate(r.db.WithContext(ctx).Create(page).Error)
}

func (r *pageRepository) Update(ctx context.Context, id uint, patch model.PagePatch) (*model.Page, error) {
	return updateByID(ctx, r.db, id, func(p *model.Page) {
		patch.Apply(p)
		p.UpdatedAt = time.Now()
	})
}

func (r *pageRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return deleteByID[model.Page](ctx, r.db, id)
}

func (r *pageRepository) FindByID(ctx context.Context, id uint) (*model.Page, error) {
	return findByID[model.Page](ctx, r.db, id)
}

func (r *pageRepository) FindBySlug(ctx context.Context, slug, language string) (*model.Page, error) {
	var page model.Page
	err := r.db.WithContext(ctx).
		Where("slug = ? AND language = ?", slug, listLanguage(language)).
		First(&page).Error
	if err != nil {
		return nil, translate(err)
	}
	return &page, nil
}

func (r *pageRepository) List(ctx context.Context, filter PageFilter) ([]model.Page, error) {
	pages := []model.Page{}
	err := r.db.WithContext(ctx).
		Where("language = ? AND is_published = ?", listLanguage(filter.Language), true).
		Order("id ASC").
		Find(&pages).Error
	if err != nil {
		return nil, translate(err)
	}
	return pages, nil
}
