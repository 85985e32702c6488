package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestClient_SetGetDelete(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "news:list:en", []byte(`[]`), time.Minute))

	got, err := c.Get(ctx, "news:list:en")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, c.Delete(ctx, "news:list:en"))
	got, err = c.Get(ctx, "news:list:en")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_TTLExpires(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_DeletePrefix(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	for _, k := range []string{"news:list:en", "news:slug:a", "services:list:en"} {
		require.NoError(t, c.Set(ctx, k, []byte("x"), time.Minute))
	}

	require.NoError(t, c.DeletePrefix(ctx, "news:"))

	assert.False(t, mr.Exists("news:list:en"))
	assert.False(t, mr.Exists("news:slug:a"))
	assert.True(t, mr.Exists("services:list:en"))
}

func TestClient_FailsSafeWhenRedisDown(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()
	mr.Close()

	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.DeletePrefix(ctx, "k"))
}

func TestClient_SaveReportsErrors(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "k", []byte("v"), time.Minute))
	assert.True(t, mr.Exists("k"))

	mr.Close()
	assert.Error(t, c.Save(ctx, "k", []byte("v"), time.Minute))

	var disabled *Client
	assert.ErrorIs(t, disabled.Save(ctx, "k", []byte("v"), time.Minute), ErrDisabled)
}

func TestClient_NilIsDisabled(t *testing.T) {
	c := New("", "", 0)
	ctx := context.Background()

	assert.False(t, c.Enabled())
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}
