// Package client is a Go client for the public content API. Reads go through
// a stale-time cache: fresh entries are served from memory, stale entries are
// served while a single background request refreshes them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultStaleTime = 5 * time.Minute
	defaultTimeout   = 30 * time.Second
	fetchTimeout     = 30 * time.Second
)

// FieldError is one entry of a validation error response.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int          `json:"-"`
	Message    string       `json:"message"`
	Code       string       `json:"code,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

type entry struct {
	body      []byte
	fetchedAt time.Time
}

// Client talks to the content API rooted at baseURL.
type Client struct {
	baseURL   string
	http      *http.Client
	staleTime time.Duration
	log       *zap.Logger
	now       func() time.Time

	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithStaleTime sets how long a cached response counts as fresh.
func WithStaleTime(d time.Duration) Option {
	return func(c *Client) { c.staleTime = d }
}

// WithLogger sets the logger used for background refresh failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		http:      &http.Client{Timeout: defaultTimeout},
		staleTime: defaultStaleTime,
		log:       zap.NewNop(),
		now:       time.Now,
		entries:   make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Services lists active services in lang.
func (c *Client) Services(ctx context.Context, lang string) ([]Service, error) {
	return get[[]Service](ctx, c, "/api/services", query("lang", lang))
}

// Service fetches one service by slug.
func (c *Client) Service(ctx context.Context, slug string) (*Service, error) {
	return get[*Service](ctx, c, "/api/services/"+url.PathEscape(slug), nil)
}

// News lists published news in lang, newest first. limit <= 0 means all.
func (c *Client) News(ctx context.Context, lang string, limit int) ([]News, error) {
	q := query("lang", lang)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return get[[]News](ctx, c, "/api/news", q)
}

// NewsItem fetches one news item by slug.
func (c *Client) NewsItem(ctx context.Context, slug string) (*News, error) {
	return get[*News](ctx, c, "/api/news/"+url.PathEscape(slug), nil)
}

// Documents lists public documents, optionally narrowed to category.
func (c *Client) Documents(ctx context.Context, category, lang string) ([]Document, error) {
	q := query("lang", lang)
	if category != "" {
		q.Set("category", category)
	}
	return get[[]Document](ctx, c, "/api/documents", q)
}

// MapData lists active map layers, optionally narrowed to layerType.
func (c *Client) MapData(ctx context.Context, layerType string) ([]MapData, error) {
	return get[[]MapData](ctx, c, "/api/map-data", query("layerType", layerType))
}

// Page fetches a published page by slug.
func (c *Client) Page(ctx context.Context, slug, lang string) (*Page, error) {
	return get[*Page](ctx, c, "/api/pages/"+url.PathEscape(slug), query("lang", lang))
}

// SubmitContact posts a contact form and returns the id of the stored message.
func (c *Client) SubmitContact(ctx context.Context, in ContactInput) (uint, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("encode contact: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/api/contact", nil, payload)
	if err != nil {
		return 0, err
	}
	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return 0, fmt.Errorf("decode contact response: %w", err)
	}
	return created.ID, nil
}

// Invalidate drops every cached entry whose path starts with prefix,
// e.g. "/api/news".
func (c *Client) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

func query(key, value string) url.Values {
	q := url.Values{}
	if value != "" {
		q.Set(key, value)
	}
	return q
}

// cacheKey is the path plus the sorted query string.
func cacheKey(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func get[T any](ctx context.Context, c *Client, path string, q url.Values) (T, error) {
	var out T
	body, err := c.read(ctx, path, q)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

func (c *Client) read(ctx context.Context, path string, q url.Values) ([]byte, error) {
	key := cacheKey(path, q)

	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()

	if ok {
		if c.now().Sub(e.fetchedAt) >= c.staleTime {
			go c.refresh(key, path, q)
		}
		return e.body, nil
	}

	select {
	case res := <-c.load(key, path, q):
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// load starts, or joins, the single in-flight request for key. The request
// runs on its own timeout so one caller giving up does not fail the others.
func (c *Client) load(key, path string, q url.Values) <-chan singleflight.Result {
	return c.group.DoChan(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return c.fetch(ctx, key, path, q)
	})
}

func (c *Client) refresh(key, path string, q url.Values) {
	if res := <-c.load(key, path, q); res.Err != nil {
		c.log.Debug("background refresh failed", zap.String("key", key), zap.Error(res.Err))
	}
}

func (c *Client) fetch(ctx context.Context, key, path string, q url.Values) ([]byte, error) {
	body, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.entries[key] = entry{body: body, fetchedAt: c.now()}
	c.mu.Unlock()
	return body, nil
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, payload []byte) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}
	return body, nil
}
