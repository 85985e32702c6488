package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"govsite/internal/model"
)

// ContactRepository defines persistence for contact form submissions.
type ContactRepository interface {
	// Create stores the submission, stamps createdAt and marks it unread.
	Create(ctx context.Context, contact *model.Contact) error
	Update(ctx context.Context, id uint, patch model.ContactPatch) (*model.Contact, error)
	Delete(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*model.Contact, error)
	// List returns every submission, newest first.
	List(ctx context.Context) ([]model.Contact, error)
	CountUnread(ctx context.Context) (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	contact.ID = 0
	contact.CreatedAt = time.Now()
	contact.IsRead = false
	return translate(r.db.WithContext(ctx).Create(contact).Error)
}

func (r *contactRepository) Update(ctx context.Context, id uint, patch model.ContactPatch) (*model.Contact, error) {
	return updateByID(ctx, r.db, id, func(c *model.Contact) {
		patch.Apply(c)
	})
}

func (r *contactRepository) Delete(ctx context.Context, id uint) (bool, error) {
	return deleteByID[model.Contact](ctx, r.db, id)
}

func (r *contactRepository) FindByID(ctx context.Context, id uint) (*model.Contact, error) {
	return findByID[model.Contact](ctx, r.db, id)
}

func (r *contactRepository) List(ctx context.Context) ([]model.Contact, error) {
	contacts := []model.Contact{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&contacts).Error; err != nil {
		return nil, translate(err)
	}
	return contacts, nil
}

func (r *contactRepository) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Contact{}).Where("is_read = ?", false).Count(&n).Error; err != nil {
		return 0, translate(err)
	}
	return n, nil
}
