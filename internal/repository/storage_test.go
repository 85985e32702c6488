package repository_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"govsite/internal/db"
	"govsite/internal/model"
	"govsite/internal/repository"
)

func ptr[T any](v T) *T { return &v }

// backends returns every Storage implementation, each freshly created.
func backends(t *testing.T) map[string]func(t *testing.T) repository.Storage {
	t.Helper()
	return map[string]func(t *testing.T) repository.Storage{
		"memory": func(t *testing.T) repository.Storage {
			return repository.NewMemoryStorage()
		},
		"sqlite": func(t *testing.T) repository.Storage {
			gormDB, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "govsite.db"))
			require.NoError(t, err)
			require.NoError(t, db.Migrate(gormDB, false, repository.Models()...))
			sqlDB, err := gormDB.DB()
			require.NoError(t, err)
			t.Cleanup(func() { _ = sqlDB.Close() })
			return repository.NewGormStorage(gormDB)
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, store repository.Storage)) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fn(t, open(t))
		})
	}
}

func newService(slug, lang string, order int, active bool) *model.Service {
	return &model.Service{
		Title:       slug,
		Slug:        slug,
		Description: "desc",
		Content:     "content",
		Icon:        ptr("fa-city"),
		Order:       order,
		IsActive:    active,
		Language:    lang,
	}
}

func newNews(slug, lang string, date time.Time, published bool) *model.News {
	return &model.News{
		Title:       slug,
		Slug:        slug,
		Content:     "content",
		Category:    "Announcement",
		PublishDate: date,
		IsPublished: published,
		Author:      1,
		Language:    lang,
	}
}

func day(d int) time.Time {
	return time.Date(2023, time.May, d, 0, 0, 0, 0, time.UTC)
}

func TestServices_RoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store repository.Storage) {
		ctx := context.Background()
		svc := newService("building-permits", "en", 1, true)
		want := *svc

		require.NoError(t, store.Services().Create(ctx, svc))
		require.NotZero(t, svc.ID)
		want.ID = svc.ID

		got, err := store.Services().FindByID(ctx, svc.ID)
		require.NoError(t, err)
		assert.Equal(t, want, *got)

		bySlug, err := store.Services().FindBySlug(ctx, "building-permits")
		require.NoError(t, err)
		assert.Equal(t, svc.ID, bySlug.ID)

		_, err = store.Services().FindBySlug(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestServices_ListFiltersAndOrders(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store repository.Storage) {
		ctx := context.Background()
		for _, s := range []*model.Service{
			newService("c", "en", 3, true),
			newService("a", "en", 1, true),
			newService("b", "en", 2, true),
			newService("hidden", "en", 0, false),
			newService("es", "es", 1, true),
		} {
			require.NoError(t, store.Services().Create(ctx, s))
		}

		items, err := store.Services().List(ctx, repository.ServiceFilter{Language: "en"})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{items[0].Slug, items[1].Slug, items[2].Slug})

		items, err = store.Services().List(ctx, repository.ServiceFilter{Language: "fr"})
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestServices_DuplicateSlug(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store repository.Storage) {
		ctx := context.Background()
		require.NoError(t, store.Services().Create(ctx, newService("dup", "en", 1, true)))
		err := store.Services().Create(ctx, newService("dup", "en", 2, true))
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})
}

func TestNews_ListNewestFirstWithLimit(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store repository.Storage) {
		ctx := context.Background()
		for _, n := range []*model.News{
			newNews("old", "en", day(1), true),
			newNews("newest", "en", day(20), true),
			newNews("middle", "en", day(10), true),
			newNews("draft", "en", day(25), false),
			newNews("spanish", "es", day(28), true),
		} {
			require.NoError(t, store.News().Create(ctx, n))
		}

		items, err := store.News().List(ctx, repository.NewsFilter{Language: "en", Limit: 2})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "newest", items[0].Slug)
		assert.Equal(t, "middle", items[1].Slug)

		items, err = store.News().List(ctx, repository.NewsFilter{Language: "en"})
		require.NoError(t, err)
		assert.Len(t, items, 3)
		for _, n := range items {
			assert.True(t, n.IsPublished)
			assert.Equal(t, "en", n.Language)
		}
	})
}

func TestNews_UpdateAndDelete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store repository.Storage) {
		ctx := context.Background()
		n := newNews("item", "en", day(1), true)
		require.NoError(t, store.News().Create(ctx, n))

		updated, err := store.News().Update(ctx, n.ID, model.NewsPatch{Title: ptr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, "item", updated.Slug)

		_, err = store.News().Update(ctx, n.ID+100, model.NewsPatch{Title: ptr("ghost")})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = store.News().FindByID(ctx, n.ID+100)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		ok, err := store.News().Delete(ctx, n.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.News().Delete(ctx, n.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDocuments_ListByCategory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store repository.Storage) {
		ctx := context.Background()
		for _, d := range []*model.Document{
			{Title: "Form A", FileURL: "/a.pdf", FileType: "pdf", FileSize: 10, Category: "forms", Tags: []string{"permit"}, UploadedBy: 1, IsPublic: true, Language: "en"},
			{Title: "Report", FileURL: "/r.pdf", FileType: "pdf", FileSize: 20, Category: "reports", UploadedBy: 1, IsPublic: true, Language: "en"},
			{Title: "Private", FileURL: "/p.pdf", FileType: "pdf", FileSize: 30, Category: "forms", UploadedBy: 1, IsPublic: false, Language: "en"},
		} {
			require.NoError(t, store.Documents().Create(ctx, d))
			assert.False(t, d.UploadedAt.IsZero())
		}

		items, err := store.Documents().List(ctx, repository.DocumentFilter{Category: "forms", Language: "en"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Form A", items[0].Title)
		assert.Equal(t, []string{"permit"}, items[0].Tags)

		items, err = store.Documents().List(ctx, repository.DocumentFilter{Language: "en"})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}

func TestPages_SlugIsPerLanguage(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store repository.Storage) {
		ctx := context.Background()
		en := &model.Page{Title: "About", Slug: "about", Content: "<p>en</p>", IsPublished: true, Language: "en"}
		es := &model.Page{Title: "Acerca", Slug: "about", Content: "<p>es</p>", IsPublished: true, Language: "es"}
		require.NoError(t, store.Pages().Create(ctx, en))
		require.NoError(t, store.Pages().Create(ctx, es))

		err := store.Pages().Create(ctx, &model.Page{Title: "Dup", Slug: "about", Content: "x", Language: "en"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		got, err := store.Pages().FindBySlug(ctx, "about", "es")
		require.NoError(t, err)
		assert.Equal(t, "Acerca", got.Title)

		_, err = store.Pages().FindBySlug(ctx, "about", "fr")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestMapData_UpdateRefreshesTimestamp(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store repository.Storage) {
		ctx := context.Background()
		layer := &model.MapData{
			Title:     "Zones",
			LayerType: "zoning",
			GeoJSON:   datatypes.JSON(`{"type":"FeatureCollection","features":[]}`),
			IsActive:  true,
		}
		require.NoError(t, store.MapData().Create(ctx, layer))
		created := layer.UpdatedAt

		time.Sleep(5 * time.Millisecond)
		updated, err := store.MapData().Update(ctx, layer.ID, model.MapDataPatch{IsActive: ptr(false)})
		require.NoError(t, err)
		assert.False(t, updated.IsActive)
		assert.True(t, updated.UpdatedAt.After(created))

		items, err := store.MapData().List(ctx, repository.MapDataFilter{LayerType: "zoning"})
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestContacts_CreateIsUnread(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store repository.Storage) {
		ctx := context.Background()
		c := &model.Contact{Name: "Jane", Email: "jane@example.com", Subject: "Permit", Message: "Hello", IsRead: true}
		require.NoError(t, store.Contacts().Create(ctx, c))

		items, err := store.Contacts().List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, c.ID, items[0].ID)
		assert.False(t, items[0].IsRead)

		n, err := store.Contacts().CountUnread(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = store.Contacts().Update(ctx, c.ID, model.ContactPatch{IsRead: ptr(true)})
		require.NoError(t, err)
		n, err = store.Contacts().CountUnread(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestUsers_UniqueUsername(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store repository.Storage) {
		ctx := context.Background()
		u := &model.User{Username: "admin", PasswordHash: "hash", Email: "admin@govagency.gov", Role: model.RoleAdmin}
		require.NoError(t, store.Users().Create(ctx, u))

		err := store.Users().Create(ctx, &model.User{Username: "admin", PasswordHash: "x", Email: "other@govagency.gov", Role: model.RoleUser})
		assert.ErrorIs(t, err, repository.ErrDuplicate)

		at := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, store.Users().TouchLastLogin(ctx, u.ID, at))
		got, err := store.Users().FindByUsername(ctx, "admin")
		require.NoError(t, err)
		require.NotNil(t, got.LastLogin)
		assert.True(t, at.Equal(*got.LastLogin))
	})
}

func TestMemoryStorage_ConcurrentCreates(t *testing.T) {
	store := repository.NewMemoryStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	items := []*model.News{
		newNews("first", "en", day(1), true),
		newNews("second", "en", day(2), true),
	}
	for _, n := range items {
		wg.Add(1)
		go func(n *model.News) {
			defer wg.Done()
			assert.NoError(t, store.News().Create(ctx, n))
		}(n)
	}
	wg.Wait()

	assert.ElementsMatch(t, []uint{1, 2}, []uint{items[0].ID, items[1].ID})

	all, err := store.News().List(ctx, repository.NewsFilter{Language: "en"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
