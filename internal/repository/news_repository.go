package repository

import (
	"context"

	"gorm.io/gorm"

	"govsite/internal/model"
)

// NewsRepository defines news persistence operations.
type NewsRepository interface {
	Create(ctx context.Context, news *model.News) error
	Update(ctx context.Context, id uint, patch model.NewsPatch) (*model.News, error)
	Delete(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.News, error)
	FindBySlug(ctx context.Context, slug string) (*model.News, error)
	// List returns published news in the filter language, newest publishDate first.
	List(ctx context.Context, filter NewsFilter) ([]model.News, error)
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// Create inserts a news item and fills in its id.
func (r *newsRepository) Create(ctx context.Context, news *model.News) error {
	news.ID = 0
	return translate(r.db.WithContext(ctx).Create(news).Error)
}

// Update merges a partial record into an existing news item.
func (r *newsRepository) Update(ctx context.Context, id uint, patch model.NewsPatch) (*model.News, error) {
	return updateByID(ctx, r.db, id, func(n *model.News) {
		patch.Apply(n)
	})
}

// Delete removes a news item, reporting whether it existed.
func (r *newsRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return deleteByID[model.News](ctx, r.db, id)
}

// FindByID finds a news item by ID.
func (r *newsRepository) FindByID(ctx context.Context, id uint) (*model.News, error) {
	return findByID[model.News](ctx, r.db, id)
}

// FindBySlug finds a news item by slug, regardless of language or status.
func (r *newsRepository) FindBySlug(ctx context.Context, slug string) (*model.News, error) {
	var news model.News
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&news).Error; err != nil {
		return nil, translate(err)
	}
	return &news, nil
}

// List lists published news items.
func (r *newsRepository) List(ctx context.Context, filter NewsFilter) ([]model.News, error) {
	q := r.db.WithContext(ctx).
		Where("language = ? AND is_published = ?", listLanguage(filter.Language), true).
		Order("publish_date DESC").
		Order("id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	news := []model.News{}
	if err := q.Find(&news).Error; err != nil {
		return nil, translate(err)
	}
	return news, nil
}
