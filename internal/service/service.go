// Package service holds the domain operations behind the HTTP handlers:
// defaults, slug derivation, read-through caching and error mapping.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"govsite/internal/cache"
	apperrors "govsite/internal/errors"
	"govsite/internal/repository"
	"govsite/internal/textutil"
)

// DefaultCacheTTL is used when a service is built with a zero TTL.
const DefaultCacheTTL = 30 * time.Second

// readCache is a per-entity view of the shared redis cache. Every key of an
// entity lives under prefix so a write can drop them all at once.
type readCache struct {
	client *cache.Client
	ttl    time.Duration
	prefix string
}

func newReadCache(client *cache.Client, ttl time.Duration, prefix string) readCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return readCache{client: client, ttl: ttl, prefix: prefix + ":"}
}

// key joins parts with ":". Each part is query-escaped so values taken from
// the request cannot contain the separator.
func (rc readCache) key(parts ...any) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.QueryEscape(fmt.Sprint(p))
	}
	return rc.prefix + strings.Join(escaped, ":")
}

func (rc readCache) invalidate(ctx context.Context) {
	_ = rc.client.DeletePrefix(ctx, rc.prefix)
}

// cached returns the value stored under key, or calls load and stores its
// result. Errors are never cached.
func cached[T any](ctx context.Context, rc readCache, key string, load func() (T, error)) (T, error) {
	if data, _ := rc.client.Get(ctx, key); data != nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if payload, err := json.Marshal(v); err == nil {
		_ = rc.client.Set(ctx, key, payload, rc.ttl)
	}
	return v, nil
}

// domainError maps repository sentinels onto the entity's API errors.
func domainError(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.ErrSlugTaken
	default:
		return err
	}
}

// deleted turns a repository delete result into nil or notFound.
func deleted(ok bool, err error, notFound error) error {
	if err != nil {
		return err
	}
	if !ok {
		return notFound
	}
	return nil
}

// deriveSlug keeps an explicit slug, otherwise builds one from title.
// Titles without any Latin characters get a random suffix.
func deriveSlug(slug, title, fallback string) string {
	if slug != "" {
		return slug
	}
	if s := textutil.Slugify(title); s != "" {
		return s
	}
	return fallback + "-" + uuid.NewString()[:8]
}
