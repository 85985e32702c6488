package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govsite/internal/cache"
)

func TestJWTService_AccessToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(7, "admin", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	_, err = svc.ValidateRefreshToken(token)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestJWTService_RefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	id, token, err := svc.GenerateRefreshToken(7, "admin", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ID)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("one").GenerateAccessToken(1, "a", "admin")
	require.NoError(t, err)

	_, err = NewJWTService("two").ValidateToken(token)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)

	assert.NotEqual(t, "admin123", hash)
	assert.True(t, CheckPassword(hash, "admin123"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestTokenStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	store := NewTokenStore(c)
	ctx := context.Background()

	require.IsType(t, &TokenStore{}, store)
	require.NoError(t, store.StoreRefreshToken(ctx, "tid", 3, "editor", time.Hour))

	uid, username, err := store.GetRefreshToken(ctx, "tid")
	require.NoError(t, err)
	assert.Equal(t, uint(3), uid)
	assert.Equal(t, "editor", username)

	require.NoError(t, store.DeleteRefreshToken(ctx, "tid"))
	_, _, err = store.GetRefreshToken(ctx, "tid")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokenStore_RedisDownFailsStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(cache.New(mr.Addr(), "", 0))
	mr.Close()

	err := store.StoreRefreshToken(context.Background(), "tid", 3, "editor", time.Hour)
	assert.Error(t, err)
}

func TestTokenStore_FallsBackToMemory(t *testing.T) {
	store := NewTokenStore(nil)
	assert.IsType(t, &MemoryTokenStore{}, store)
}

func TestMemoryTokenStore_Expiry(t *testing.T) {
	store := NewMemoryTokenStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.StoreRefreshToken(ctx, "tid", 1, "admin", time.Minute))
	uid, _, err := store.GetRefreshToken(ctx, "tid")
	require.NoError(t, err)
	assert.Equal(t, uint(1), uid)

	now = now.Add(2 * time.Minute)
	_, _, err = store.GetRefreshToken(ctx, "tid")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
