package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"govsite/internal/model"
)

// DocumentRepository defines document persistence operations.
type DocumentRepository interface {
	// Create stores the document and stamps uploadedAt.
	Create(ctx context.Context, doc *model.Document) error
	Update(ctx context.Context, id uint, patch model.DocumentPatch) (*model.Document, error)
	Delete(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Document, error)
	// List returns public documents, newest upload first.
	List(ctx context.Context, filter DocumentFilter) ([]model.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	doc.ID = 0
	doc.UploadedAt = time.Now()
	return translate(r.db.WithContext(ctx).Create(doc).Error)
}

func (r *documentRepository) Update(ctx context.Context, id uint, patch model.DocumentPatch) (*model.Document, error) {
	return updateByID(ctx, r.db, id, func(d *model.Document) {
		patch.Apply(d)
	})
}

func (r *documentRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return deleteByID[model.Document](ctx, r.db, id)
}

func (r *documentRepository) FindByID(ctx context.Context, id uint) (*model.Document, error) {
	return findByID[model.Document](ctx, r.db, id)
}

func (r *documentRepository) List(ctx context.Context, filter DocumentFilter) ([]model.Document, error) {
	q := r.db.WithContext(ctx).
		Where("language = ? AND is_public = ?", listLanguage(filter.Language), true)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	docs := []model.Document{}
	if err := q.Order("uploaded_at DESC").Order("id DESC").Find(&docs).Error; err != nil {
		return nil, translate(err)
	}
	return docs, nil
}
