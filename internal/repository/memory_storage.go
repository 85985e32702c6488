package repository

import (
	"cmp"
	"context"
	"slices"
	"time"

	"govsite/internal/model"
)

// MemoryStorage is the volatile backend: one table per entity, nothing
// survives a restart. It is safe for concurrent use.
type MemoryStorage struct {
	users     *memoryUserRepository
	news      *memoryNewsRepository
	services  *memoryServiceRepository
	documents *memoryDocumentRepository
	pages     *memoryPageRepository
	mapData   *memoryMapDataRepository
	contacts  *memoryContactRepository
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage returns an empty in-memory backend. Fixture data is
// loaded separately by the seed package.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users: &memoryUserRepository{t: newTable(
			func(u *model.User) *uint { return &u.ID },
			func(u model.User) string { return u.Username },
			nil,
		)},
		news: &memoryNewsRepository{t: newTable(
			func(n *model.News) *uint { return &n.ID },
			func(n model.News) string { return n.Slug },
			nil,
		)},
		services: &memoryServiceRepository{t: newTable(
			func(s *model.Service) *uint { return &s.ID },
			func(s model.Service) string { return s.Slug },
			nil,
		)},
		documents: &memoryDocumentRepository{t: newTable(
			func(d *model.Document) *uint { return &d.ID },
			nil,
			model.Document.Clone,
		)},
		pages: &memoryPageRepository{t: newTable(
			func(p *model.Page) *uint { return &p.ID },
			func(p model.Page) string { return p.Language + "\x00" + p.Slug },
			nil,
		)},
		mapData: &memoryMapDataRepository{t: newTable(
			func(m *model.MapData) *uint { return &m.ID },
			nil,
			model.MapData.Clone,
		)},
		contacts: &memoryContactRepository{t: newTable(
			func(c *model.Contact) *uint { return &c.ID },
			nil,
			nil,
		)},
	}
}

func (s *MemoryStorage) Users() UserRepository { return s.users }
func (s *MemoryStorage) News() NewsRepository { return s.news }
func (s *MemoryStorage) Services() ServiceRepository { return s.services }
func (s *MemoryStorage) Documents() DocumentRepository { return s.documents }
func (s *MemoryStorage) Pages() PageRepository { return s.pages }
func (s *MemoryStorage) MapData() MapDataRepository { return s.mapData }
func (s *MemoryStorage) Contacts() ContactRepository { return s.contacts }

func found[T any](row T, ok bool) (*T, error) {
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func updated[T any](row T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Users

type memoryUserRepository struct {
	t *table[model.User]
}

func (r *memoryUserRepository) Create(_ context.Context, user *model.User) error {
	user.CreatedAt = time.Now()
	user.LastLogin = nil
	stored, err := r.t.insert(*user)
	if err != nil {
		return err
	}
	*user = stored
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uint) (*model.User, error) {
	return found(r.t.get(id))
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return found(r.t.find(func(u model.User) bool { return u.Username == username }))
}

func (r *memoryUserRepository) TouchLastLogin(_ context.Context, id uint, at time.Time) error {
	_, err := r.t.update(id, func(u *model.User) { u.LastLogin = &at })
	return err
}

// News

type memoryNewsRepository struct {
	t *table[model.News]
}

func (r *memoryNewsRepository) Create(_ context.Context, news *model.News) error {
	stored, err := r.t.insert(*news)
	if err != nil {
		return err
	}
	*news = stored
	return nil
}

func (r *memoryNewsRepository) Update(_ context.Context, id uint, patch model.NewsPatch) (*model.News, error) {
	return updated(r.t.update(id, patch.Apply))
}

func (r *memoryNewsRepository) Delete(_ context.Context, id uint) (bool, error) {
	return r.t.remove(id), nil
}

func (r *memoryNewsRepository) FindByID(_ context.Context, id uint) (*model.News, error) {
	return found(r.t.get(id))
}

func (r *memoryNewsRepository) FindBySlug(_ context.Context, slug string) (*model.News, error) {
	return found(r.t.find(func(n model.News) bool { return n.Slug == slug }))
}

func (r *memoryNewsRepository) List(_ context.Context, filter NewsFilter) ([]model.News, error) {
	lang := listLanguage(filter.Language)
	items := r.t.list(func(n model.News) bool {
		return n.Language == lang && n.IsPublished
	})
	slices.SortStableFunc(items, func(a, b model.News) int {
		if c := b.PublishDate.Compare(a.PublishDate); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

// Services

type memoryServiceRepository struct {
	t *table[model.Service]
}

func (r *memoryServiceRepository) Create(_ context.Context, service *model.Service) error {
	stored, err := r.t.insert(*service)
	if err != nil {
		return err
	}
	*service = stored
	return nil
}

func (r *memoryServiceRepository) Update(_ context.Context, id uint, patch model.ServicePatch) (*model.Service, error) {
	return updated(r.t.update(id, patch.Apply))
}

func (r *memoryServiceRepository) Delete(_ context.Context, id uint) (bool, error) {
	return r.t.remove(id), nil
}

func (r *memoryServiceRepository) FindByID(_ context.Context, id uint) (*model.Service, error) {
	return found(r.t.get(id))
}

func (r *memoryServiceRepository) FindBySlug(_ context.Context, slug string) (*model.Service, error) {
	return found(r.t.find(func(s model.Service) bool { return s.Slug == slug }))
}

func (r *memoryServiceRepository) List(_ context.Context, filter ServiceFilter) ([]model.Service, error) {
	lang := listLanguage(filter.Language)
	items := r.t.list(func(s model.Service) bool {
		return s.Language == lang && s.IsActive
	})
	slices.SortStableFunc(items, func(a, b model.Service) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return items, nil
}

// Documents

type memoryDocumentRepository struct {
	t *table[model.Document]
}

func (r *memoryDocumentRepository) Create(_ context.Context, doc *model.Document) error {
	doc.UploadedAt = time.Now()
	stored, err := r.t.insert(*doc)
	if err != nil {
		return err
	}
	*doc = stored
	return nil
}

func (r *memoryDocumentRepository) Update(_ context.Context, id uint, patch model.DocumentPatch) (*model.Document, error) {
	return updated(r.t.update(id, patch.Apply))
}

func (r *memoryDocumentRepository) Delete(_ context.Context, id uint) (bool, error) {
	return r.t.remove(id), nil
}

func (r *memoryDocumentRepository) FindByID(_ context.Context, id uint) (*model.Document, error) {
	return found(r.t.get(id))
}

func (r *memoryDocumentRepository) List(_ context.Context, filter DocumentFilter) ([]model.Document, error) {
	lang := listLanguage(filter.Language)
	items := r.t.list(func(d model.Document) bool {
		if filter.Category != "" && d.Category != filter.Category {
			return false
		}
		return d.Language == lang && d.IsPublic
	})
	slices.SortStableFunc(items, func(a, b model.Document) int {
		if c := b.UploadedAt.Compare(a.UploadedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return items, nil
}

// Pages

type memoryPageRepository struct {
	t *table[model.Page]
}

func (r *memoryPageRepository) Create(_ context.Context, page *model.Page) error {
	page.UpdatedAt = time.Now()
	stored, err := r.t.insert(*page)
	if err != nil {
		return err
	}
	*page = stored
	return nil
}

func (r *memoryPageRepository) Update(_ context.Context, id uint, patch model.PagePatch) (*model.Page, error) {
	return updated(r.t.update(id, func(p *model.Page) {
		patch.Apply(p)
		p.UpdatedAt = time.Now()
	}))
}

func (r *memoryPageRepository) Delete(_ context.Context, id uint) (bool, error) {
	return r.t.remove(id), nil
}

func (r *memoryPageRepository) FindByID(_ context.Context, id uint) (*model.Page, error) {
	return found(r.t.get(id))
}

func (r *memoryPageRepository) FindBySlug(_ context.Context, slug, language string) (*model.Page, error) {
	lang := listLanguage(language)
	return found(r.t.find(func(p model.Page) bool {
		return p.Slug == slug && p.Language == lang
	}))
}

func (r *memoryPageRepository) List(_ context.Context, filter PageFilter) ([]model.Page, error) {
	lang := listLanguage(filter.Language)
	return r.t.list(func(p model.Page) bool {
		return p.Language == lang && p.IsPublished
	}), nil
}

// Map data

type memoryMapDataRepository struct {
	t *table[model.MapData]
}

func (r *memoryMapDataRepository) Create(_ context.Context, data *model.MapData) error {
	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now
	stored, err := r.t.insert(*data)
	if err != nil {
		return err
	}
	*data = stored
	return nil
}

func (r *memoryMapDataRepository) Update(_ context.Context, id uint, patch model.MapDataPatch) (*model.MapData, error) {
	return updated(r.t.update(id, func(m *model.MapData) {
		patch.Apply(m)
		m.UpdatedAt = time.Now()
	}))
}

func (r *memoryMapDataRepository) Delete(_ context.Context, id uint) (bool, error) {
	return r.t.remove(id), nil
}

func (r *memoryMapDataRepository) FindByID(_ context.Context, id uint) (*model.MapData, error) {
	return found(r.t.get(id))
}

func (r *memoryMapDataRepository) List(_ context.Context, filter MapDataFilter) ([]model.MapData, error) {
	return r.t.list(func(m model.MapData) bool {
		if filter.LayerType != "" && m.LayerType != filter.LayerType {
			return false
		}
		return m.IsActive
	}), nil
}

// Contacts

type memoryContactRepository struct {
	t *table[model.Contact]
}

func (r *memoryContactRepository) Create(_ context.Context, contact *model.Contact) error {
	contact.CreatedAt = time.Now()
	contact.IsRead = false
	stored, err := r.t.insert(*contact)
	if err != nil {
		return err
	}
	*contact = stored
	return nil
}

func (r *memoryContactRepository) Update(_ context.Context, id uint, patch model.ContactPatch) (*model.Contact, error) {
	return updated(r.t.update(id, patch.Apply))
}

func (r *memoryContactRepository) Delete(_ context.Context, id uint) (bool, error) {
	return r.t.remove(id), nil
}

func (r *memoryContactRepository) FindByID(_ context.Context, id uint) (*model.Contact, error) {
	return found(r.t.get(id))
}

func (r *memoryContactRepository) List(_ context.Context) ([]model.Contact, error) {
	items := r.t.list(nil)
	slices.SortStableFunc(items, func(a, b model.Contact) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return items, nil
}

func (r *memoryContactRepository) CountUnread(_ context.Context) (int64, error) {
	return int64(r.t.count(func(c model.Contact) bool { return !c.IsRead })), nil
}
