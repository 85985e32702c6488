package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"govsite/internal/auth"
	"govsite/internal/model"
	"govsite/internal/repository"
)

var testAdmin = Admin{Username: "admin", Password: "admin123", Email: "admin@govagency.gov"}

func TestApply_SeedsFixtures(t *testing.T) {
	store := repository.NewMemoryStorage()
	ctx := context.Background()

	res, err := Apply(ctx, store, testAdmin, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Result{Services: 3, News: 3, Users: 1}, res)

	services, err := store.Services().List(ctx, repository.ServiceFilter{Language: "en"})
	require.NoError(t, err)
	require.Len(t, services, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{services[0].Order, services[1].Order, services[2].Order})

	news, err := store.News().List(ctx, repository.NewsFilter{Language: "en", Limit: 2})
	require.NoError(t, err)
	require.Len(t, news, 2)
	assert.Equal(t, "downtown-revitalization", news[0].Slug)
	assert.Equal(t, "online-permit-system", news[1].Slug)

	admin, err := store.Users().FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.NotEqual(t, "admin123", admin.PasswordHash)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "admin123"))
}

func TestApply_Idempotent(t *testing.T) {
	store := repository.NewMemoryStorage()
	ctx := context.Background()

	_, err := Apply(ctx, store, testAdmin, zap.NewNop())
	require.NoError(t, err)

	res, err := Apply(ctx, store, testAdmin, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	services, err := store.Services().List(ctx, repository.ServiceFilter{})
	require.NoError(t, err)
	assert.Len(t, services, 3)
}
