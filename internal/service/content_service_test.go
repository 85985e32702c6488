package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"govsite/internal/cache"
	apperrors "govsite/internal/errors"
	"govsite/internal/metrics"
	"govsite/internal/model"
	"govsite/internal/repository"
	"govsite/internal/upload"
)

// MockNewsRepository is a mock implementation of NewsRepository.
type MockNewsRepository struct {
	mock.Mock
}

func (m *MockNewsRepository) Create(ctx context.Context, news *model.News) error {
	args := m.Called(ctx, news)
	return args.Error(0)
}

func (m *MockNewsRepository) Update(ctx context.Context, id uint, patch model.NewsPatch) (*model.News, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.News), args.Error(1)
}

func (m *MockNewsRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockNewsRepository) FindByID(ctx context.Context, id uint) (*model.News, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.News), args.Error(1)
}

func (m *MockNewsRepository) FindBySlug(ctx context.Context, slug string) (*model.News, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.News), args.Error(1)
}

func (m *MockNewsRepository) List(ctx context.Context, filter repository.NewsFilter) ([]model.News, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.News), args.Error(1)
}

func newRedis(t *testing.T) (*cache.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.New(mr.Addr(), "", 0), mr
}

func TestNewsService_ListDefaultsAndCaches(t *testing.T) {
	c, _ := newRedis(t)
	repo := new(MockNewsRepository)
	items := []model.News{{ID: 2, Title: "B", Slug: "b", Language: "en"}}
	repo.On("List", mock.Anything, repository.NewsFilter{Language: "en", Limit: 2}).Return(items, nil).Once()

	svc := NewNewsService(repo, c, time.Minute)

	got, err := svc.ListNews(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	got, err = svc.ListNews(context.Background(), "en", 2)
	require.NoError(t, err)
	assert.Equal(t, "b", got[0].Slug)

	repo.AssertExpectations(t)
}

func TestNewsService_CreateInvalidatesCache(t *testing.T) {
	c, mr := newRedis(t)
	repo := new(MockNewsRepository)
	repo.On("List", mock.Anything, mock.Anything).Return([]model.News{}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.News")).Return(nil)

	svc := NewNewsService(repo, c, time.Minute)
	_, err := svc.ListNews(context.Background(), "en", 0)
	require.NoError(t, err)
	assert.True(t, mr.Exists("news:list:en:0"))

	created, err := svc.CreateNews(context.Background(), model.NewsInput{
		Title:    "Road Closure on Main Street",
		Content:  "Details",
		Category: "announcements",
		Author:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, "road-closure-on-main-street", created.Slug)
	assert.Equal(t, "en", created.Language)
	assert.False(t, created.IsPublished)
	assert.False(t, created.PublishDate.IsZero())
	assert.False(t, mr.Exists("news:list:en:0"))
}

func TestNewsService_ErrorMapping(t *testing.T) {
	repo := new(MockNewsRepository)
	repo.On("FindBySlug", mock.Anything, "missing").Return(nil, repository.ErrNotFound)
	repo.On("Update", mock.Anything, uint(9), mock.Anything).Return(nil, repository.ErrNotFound)
	repo.On("Delete", mock.Anything, uint(9)).Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	svc := NewNewsService(repo, nil, 0)
	ctx := context.Background()

	_, err := svc.GetNewsBySlug(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNewsNotFound)

	_, err = svc.UpdateNews(ctx, 9, model.NewsPatch{})
	assert.ErrorIs(t, err, apperrors.ErrNewsNotFound)

	assert.ErrorIs(t, svc.DeleteNews(ctx, 9), apperrors.ErrNewsNotFound)

	_, err = svc.CreateNews(ctx, model.NewsInput{Title: "Dup", Slug: "dup", Content: "x", Category: "c", Author: 1})
	assert.ErrorIs(t, err, apperrors.ErrSlugTaken)
}

func TestNewsService_RepositoryFailurePassesThrough(t *testing.T) {
	repo := new(MockNewsRepository)
	boom := errors.New("connection refused")
	repo.On("List", mock.Anything, mock.Anything).Return(nil, boom)

	_, err := NewNewsService(repo, nil, 0).ListNews(context.Background(), "en", 0)
	assert.ErrorIs(t, err, boom)
}

func TestCatalogService_RoundTrip(t *testing.T) {
	store := repository.NewMemoryStorage()
	svc := NewCatalogService(store.Services(), nil, 0)
	ctx := context.Background()

	created, err := svc.CreateService(ctx, model.ServiceInput{
		Title:       "Business License Application",
		Description: "Apply for a license",
		Content:     "Steps",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)

	got, err := svc.GetService(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	bySlug, err := svc.GetServiceBySlug(ctx, "business-license-application")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = svc.CreateService(ctx, model.ServiceInput{Title: "Business License Application", Description: "d", Content: "c"})
	assert.ErrorIs(t, err, apperrors.ErrSlugTaken)

	fr, err := svc.ListServices(ctx, "fr")
	require.NoError(t, err)
	assert.Empty(t, fr)
}

func TestDocumentService_PrivateDocumentIsNotFound(t *testing.T) {
	store := repository.NewMemoryStorage()
	svc := NewDocumentService(store.Documents(), nil, nil, 0)
	ctx := context.Background()
	size := int64(10)
	private := false

	doc, err := svc.CreateDocument(ctx, model.DocumentInput{
		Title: "Internal memo", FileURL: "/m.pdf", FileType: "pdf", FileSize: &size,
		Category: "memos", UploadedBy: 1, IsPublic: &private,
	})
	require.NoError(t, err)

	_, err = svc.GetDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)

	_, err = svc.GetDocument(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrDocumentNotFound)
}

func TestDocumentService_UploadDisabled(t *testing.T) {
	svc := NewDocumentService(repository.NewMemoryStorage().Documents(), nil, nil, 0)

	_, err := svc.UploadDocument(context.Background(), model.DocumentInput{}, "a.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrUploadDisabled)
}

func TestDocumentService_ListKeysDoNotCollide(t *testing.T) {
	c, _ := newRedis(t)
	store := repository.NewMemoryStorage()
	svc := NewDocumentService(store.Documents(), nil, c, time.Minute)
	ctx := context.Background()
	size := int64(10)

	_, err := svc.CreateDocument(ctx, model.DocumentInput{
		Title: "Odd category", FileURL: "/o.pdf", FileType: "pdf", FileSize: &size,
		Category: "x:", UploadedBy: 1,
	})
	require.NoError(t, err)

	first, err := svc.ListDocuments(ctx, "", "en:x")
	require.NoError(t, err)
	assert.Empty(t, first)

	second, err := svc.ListDocuments(ctx, "x:", "en")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Odd category", second[0].Title)
}

func TestReadCache_KeyEscapesSeparator(t *testing.T) {
	rc := newReadCache(nil, time.Minute, "documents")

	assert.Equal(t, "documents:list:en:0", rc.key("list", "en", 0))
	assert.NotEqual(t, rc.key("list", "en:x", ""), rc.key("list", "en", "x:"))
}

type stubUploader struct {
	obj *upload.Object
	err error
}

func (s stubUploader) Upload(_ context.Context, _ string, _ io.Reader) (*upload.Object, error) {
	return s.obj, s.err
}

func TestDocumentService_UploadCreatesDocument(t *testing.T) {
	store := repository.NewMemoryStorage()
	up := stubUploader{obj: &upload.Object{URL: "https://cdn/documents/x.pdf", FileType: "pdf", Size: 2048}}
	svc := NewDocumentService(store.Documents(), up, nil, 0)

	doc, err := svc.UploadDocument(context.Background(), model.DocumentInput{
		Title: "Annual Report", Category: "reports", UploadedBy: 1,
	}, "report.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn/documents/x.pdf", doc.FileURL)
	assert.Equal(t, "pdf", doc.FileType)
	assert.Equal(t, int64(2048), doc.FileSize)
	assert.True(t, doc.IsPublic)
	assert.False(t, doc.UploadedAt.IsZero())
}

func TestPageService_SanitisesAndGatesPublication(t *testing.T) {
	store := repository.NewMemoryStorage()
	svc := NewPageService(store.Pages(), nil, 0)
	ctx := context.Background()
	published := true

	p, err := svc.CreatePage(ctx, model.PageInput{
		Title:       "About Us",
		Content:     `<p>Hello</p><script>alert(1)</script>`,
		IsPublished: &published,
	})
	require.NoError(t, err)
	assert.Equal(t, "about-us", p.Slug)
	assert.Equal(t, "<p>Hello</p>", p.Content)
	assert.NotNil(t, p.PublishedAt)

	_, err = svc.GetPageBySlug(ctx, "about-us", "")
	require.NoError(t, err)

	_, err = svc.GetPageBySlug(ctx, "about-us", "ar")
	assert.ErrorIs(t, err, apperrors.ErrPageNotFound)

	draft, err := svc.CreatePage(ctx, model.PageInput{Title: "Draft", Content: "wip"})
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)
	_, err = svc.GetPageBySlug(ctx, "draft", "en")
	assert.ErrorIs(t, err, apperrors.ErrPageNotFound)

	dirty := `<a href="javascript:alert(1)">x</a>`
	updated, err := svc.UpdatePage(ctx, p.ID, model.PagePatch{Content: &dirty})
	require.NoError(t, err)
	assert.NotContains(t, updated.Content, "javascript")
}

func TestMapDataService_ListByLayer(t *testing.T) {
	store := repository.NewMemoryStorage()
	svc := NewMapDataService(store.MapData(), nil, 0)
	ctx := context.Background()
	geo := datatypes.JSON(`{"type":"FeatureCollection","features":[]}`)

	_, err := svc.CreateMapData(ctx, model.MapDataInput{Title: "Offices", LayerType: "offices", GeoJSON: geo})
	require.NoError(t, err)
	_, err = svc.CreateMapData(ctx, model.MapDataInput{Title: "Parks", LayerType: "parks", GeoJSON: geo})
	require.NoError(t, err)

	offices, err := svc.ListMapData(ctx, "offices")
	require.NoError(t, err)
	require.Len(t, offices, 1)
	assert.Equal(t, "Offices", offices[0].Title)

	all, err := svc.ListMapData(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, svc.DeleteMapData(ctx, 99), apperrors.ErrMapDataNotFound)
}

func TestContactService_SubmitAndTriage(t *testing.T) {
	store := repository.NewMemoryStorage()
	svc := NewContactService(store.Contacts())
	ctx := context.Background()

	c, err := svc.SubmitContact(ctx, model.ContactInput{
		Name: "Jane", Email: "jane@example.com", Subject: "Permit", Message: "Hello",
	})
	require.NoError(t, err)
	assert.False(t, c.IsRead)

	n, err := svc.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	read := true
	updated, err := svc.UpdateContact(ctx, c.ID, model.ContactPatch{IsRead: &read})
	require.NoError(t, err)
	assert.True(t, updated.IsRead)

	n, err = svc.CountUnread(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, svc.DeleteContact(ctx, c.ID))
	_, err = svc.GetContact(ctx, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrContactNotFound)
}

func TestContactService_UnreadGaugeFollowsInbox(t *testing.T) {
	store := repository.NewMemoryStorage()
	svc := NewContactService(store.Contacts())
	ctx := context.Background()
	in := model.ContactInput{Name: "Jane", Email: "jane@example.com", Subject: "Permit", Message: "Hello"}

	first, err := svc.SubmitContact(ctx, in)
	require.NoError(t, err)
	second, err := svc.SubmitContact(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.ContactsUnread))

	read := true
	_, err = svc.UpdateContact(ctx, first.ID, model.ContactPatch{IsRead: &read})
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ContactsUnread))

	require.NoError(t, svc.DeleteContact(ctx, second.ID))
	assert.Zero(t, testutil.ToFloat64(metrics.ContactsUnread))

	require.NoError(t, svc.DeleteContact(ctx, first.ID))
	assert.Zero(t, testutil.ToFloat64(metrics.ContactsUnread))
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	store := repository.NewMemoryStorage()
	c, _ := newRedis(t)
	svc := NewUserService(store.Users(), c)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, model.UserInput{Username: "editor", Password: "secret1", Email: "e@gov.example"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "editor", got.Username)

	_, err = svc.CreateUser(ctx, model.UserInput{Username: "editor", Password: "secret1", Email: "e@gov.example"})
	assert.ErrorIs(t, err, apperrors.ErrSlugTaken)

	_, err = svc.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
