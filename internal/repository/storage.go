package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"govsite/internal/model"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key (slug, username) is already taken.
	ErrDuplicate = errors.New("duplicate key")
)

// Storage is the single point of data access. The memory and gorm backends
// are interchangeable: same filters, same ordering, same return shapes.
type Storage interface {
	Users() UserRepository
	News() NewsRepository
	Services() ServiceRepository
	Documents() DocumentRepository
	Pages() PageRepository
	MapData() MapDataRepository
	Contacts() ContactRepository
}

// NewsFilter narrows NewsRepository.List. Only published items are returned.
type NewsFilter struct {
	Language string
	Limit    int // <= 0 means no limit
}

// ServiceFilter narrows ServiceRepository.List. Only active services are returned.
type ServiceFilter struct {
	Language string
}

// DocumentFilter narrows DocumentRepository.List. Only public documents are returned.
type DocumentFilter struct {
	Category string // empty matches every category
	Language string
}

// PageFilter narrows PageRepository.List. Only published pages are returned.
type PageFilter struct {
	Language string
}

// MapDataFilter narrows MapDataRepository.List. Only active layers are returned.
type MapDataFilter struct {
	LayerType string // empty matches every layer type
}

func listLanguage(lang string) string {
	if lang == "" {
		return model.DefaultLanguage
	}
	return lang
}

// Models lists every persisted model, in migration order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.News{},
		&model.Service{},
		&model.Document{},
		&model.Page{},
		&model.MapData{},
		&model.Contact{},
	}
}

type gormStorage struct {
	users     UserRepository
	news      NewsRepository
	services  ServiceRepository
	documents DocumentRepository
	pages     PageRepository
	mapData   MapDataRepository
	contacts  ContactRepository
}

// NewGormStorage builds the relational backend on top of an open GORM handle.
// The handle should be opened with TranslateError so unique violations surface
// as ErrDuplicate.
func NewGormStorage(db *gorm.DB) Storage {
	return &gormStorage{
		users:     NewUserRepository(db),
		news:      NewNewsRepository(db),
		services:  NewServiceRepository(db),
		documents: NewDocumentRepository(db),
		pages:     NewPageRepository(db),
		mapData:   NewMapDataRepository(db),
		contacts:  NewContactRepository(db),
	}
}

func (s *gormStorage) Users() UserRepository { return s.users }
func (s *gormStorage) News() NewsRepository { return s.news }
func (s *gormStorage) Services() ServiceRepository { return s.services }
func (s *gormStorage) Documents() DocumentRepository { return s.documents }
func (s *gormStorage) Pages() PageRepository { return s.pages }
func (s *gormStorage) MapData() MapDataRepository { return s.mapData }
func (s *gormStorage) Contacts() ContactRepository { return s.contacts }

// translate maps driver-level errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

func findByID[T any](ctx context.Context, db *gorm.DB, id uint) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

// updateByID loads, merges and saves in one transaction so a missing id is
// reported instead of silently inserting.
func updateByID[T any](ctx context.Context, db *gorm.DB, id uint, apply func(*T)) (*T, error) {
	var row T
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		apply(&row)
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	res := db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}
