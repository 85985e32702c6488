package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"govsite/internal/cache"
)

const refreshTokenKeyPrefix = "refresh_token:"

// ErrTokenNotFound is returned when a refresh token is unknown, revoked or expired.
var ErrTokenNotFound = errors.New("refresh token not found")

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (userID uint, username string, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

type tokenData struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// TokenStore keeps refresh tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore returns a Redis-backed store, or an in-process store when
// the cache is disabled.
func NewTokenStore(c *cache.Client) TokenStoreInterface {
	if !c.Enabled() {
		return NewMemoryTokenStore()
	}
	return &TokenStore{cache: c}
}

// StoreRefreshToken stores a refresh token in Redis with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, username string, ttl time.Duration) error {
	payload, err := json.Marshal(tokenData{UserID: userID, Username: username})
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}
	return s.cache.Save(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl)
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, error) {
	data, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil || data == nil {
		return 0, "", ErrTokenNotFound
	}

	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return 0, "", fmt.Errorf("unmarshal token data: %w", err)
	}
	return td.UserID, td.Username, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}

// MemoryTokenStore keeps refresh tokens in process memory. Tokens do not
// survive a restart and are not shared between replicas.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryToken
	now    func() time.Time
}

type memoryToken struct {
	tokenData
	expires time.Time
}

var _ TokenStoreInterface = (*MemoryTokenStore)(nil)

// NewMemoryTokenStore creates an empty in-process token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]memoryToken), now: time.Now}
}

func (s *MemoryTokenStore) StoreRefreshToken(_ context.Context, tokenID string, userID uint, username string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, t := range s.tokens {
		if !now.Before(t.expires) {
			delete(s.tokens, id)
		}
	}
	s.tokens[tokenID] = memoryToken{
		tokenData: tokenData{UserID: userID, Username: username},
		expires:   now.Add(ttl),
	}
	return nil
}

func (s *MemoryTokenStore) GetRefreshToken(_ context.Context, tokenID string) (uint, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[tokenID]
	if !ok || !s.now().Before(t.expires) {
		return 0, "", ErrTokenNotFound
	}
	return t.UserID, t.Username, nil
}

func (s *MemoryTokenStore) DeleteRefreshToken(_ context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, tokenID)
	return nil
}
