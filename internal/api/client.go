// Package api is the HTTP client for the discount endpoint.
//
// The endpoint is a plain JSON collection: GET and POST on the base URL,
// PUT and DELETE on base/{id}. Identifiers are assigned by the server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jacksmith/dk/internal/logger"
	"github.com/jacksmith/dk/internal/model"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds every request.
	DefaultTimeout = 15 * time.Second

	// BaseURLKey is the settings key the base URL is persisted under.
	BaseURLKey = "nutapos.crudcrud.discountUrl"

	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 4 << 10
)

// Settings is the persistent key/value store for the base URL.
// storage.Storage implements it.
type Settings interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// HTTPError is returned for responses with a non-2xx status.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s failed with status %s", e.Method, e.URL, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// RetryConfig configures retries of idempotent requests.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig returns a RetryConfig with the given retry count.
func DefaultRetryConfig(maxRetries int) *RetryConfig {
	return &RetryConfig{
		MaxRetries:      maxRetries,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithSettings persists base URL changes to s and reads the initial base
// URL from it.
func WithSettings(s Settings) Option {
	return func(c *Client) {
		c.settings = s
	}
}

// WithRetry enables retries of GET, PUT and DELETE requests.
func WithRetry(cfg *RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// Client talks to the discount endpoint.
type Client struct {
	mu       sync.RWMutex
	baseURL  string
	settings Settings

	httpClient *http.Client
	retry      *RetryConfig
}

// New creates a Client. The base URL is read from the settings store when
// one is configured and holds a value; otherwise defaultURL is used.
func New(defaultURL string, opts ...Option) (*Client, error) {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.baseURL = CleanBaseURL(defaultURL)
	if c.settings != nil {
		stored, ok, err := c.settings.Get(BaseURLKey)
		if err != nil {
			return nil, fmt.Errorf("failed to read discount API URL: %w", err)
		}
		if ok && stored != "" {
			c.baseURL = stored
		}
	}

	return c, nil
}

// CleanBaseURL trims whitespace and all trailing slashes.
// The URL is not otherwise validated.
func CleanBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// BaseURL returns the active base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL cleans raw, makes it the active base URL and persists it.
// The active URL changes even if persisting fails.
func (c *Client) SetBaseURL(raw string) error {
	clean := CleanBaseURL(raw)

	c.mu.Lock()
	c.baseURL = clean
	c.mu.Unlock()

	if c.settings == nil {
		return nil
	}
	if err := c.settings.Set(BaseURLKey, clean); err != nil {
		return fmt.Errorf("failed to save discount API URL: %w", err)
	}
	return nil
}

// ListDiscounts returns all discounts in server order.
func (c *Client) ListDiscounts(ctx context.Context) ([]model.Discount, error) {
	var items []model.Discount
	if err := c.do(ctx, http.MethodGet, c.BaseURL(), nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Discount{}
	}
	return items, nil
}

// CreateDiscount creates a discount and returns it with its server-assigned ID.
func (c *Client) CreateDiscount(ctx context.Context, p model.Payload) (model.Discount, error) {
	var created model.Discount
	if err := c.do(ctx, http.MethodPost, c.BaseURL(), p, &created); err != nil {
		return model.Discount{}, err
	}
	return created, nil
}

// UpdateDiscount replaces the discount with the given ID. Identifier fields
// in p are not sent.
func (c *Client) UpdateDiscount(ctx context.Context, id string, p model.Payload) error {
	return c.do(ctx, http.MethodPut, c.itemURL(id), p, nil)
}

// DeleteDiscount deletes the discount with the given ID.
func (c *Client) DeleteDiscount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id string) string {
	return c.BaseURL() + "/" + url.PathEscape(id)
}

// do performs one logical request, decoding a JSON response into out when
// out is non-nil.
func (c *Client) do(ctx context.Context, method, rawURL string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	start := time.Now()
	attempt := func() ([]byte, error) {
		return c.roundTrip(ctx, method, rawURL, payload)
	}

	var respBody []byte
	var err error
	if c.retry != nil && c.retry.MaxRetries > 0 && method != http.MethodPost {
		respBody, err = c.withRetry(ctx, method, rawURL, attempt)
	} else {
		respBody, err = attempt()
	}

	duration := time.Since(start)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			logger.Warn("HTTP error response",
				zap.String("method", method),
				zap.String("url", rawURL),
				zap.Int("status", httpErr.StatusCode),
				zap.Duration("duration", duration))
		} else {
			logger.Error("HTTP request failed",
				zap.String("method", method),
				zap.String("url", rawURL),
				zap.Error(err),
				zap.Duration("duration", duration))
		}
		return err
	}

	logger.Debug("HTTP request successful",
		zap.String("method", method),
		zap.String("url", rawURL),
		zap.Duration("duration", duration))

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, rawURL, err)
	}
	return nil
}

// roundTrip sends a single request and returns the body of a 2xx response.
func (c *Client) roundTrip(ctx context.Context, method, rawURL string, payload []byte) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to create request: %w", method, rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: request failed: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{
			Method:     method,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(errBody)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", method, rawURL, err)
	}
	return data, nil
}

// withRetry retries attempt with exponential backoff on transport errors,
// 429 and 5xx responses.
func (c *Client) withRetry(ctx context.Context, method, rawURL string, attempt func() ([]byte, error)) ([]byte, error) {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.retry.InitialInterval
	expBackoff.MaxInterval = c.retry.MaxInterval
	expBackoff.MaxElapsedTime = 0

	var data []byte
	operation := func() error {
		var err error
		data, err = attempt()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, next time.Duration) {
		logger.Debug("retrying request",
			zap.String("method", method),
			zap.String("url", rawURL),
			zap.Error(err),
			zap.Duration("backoff", next))
	}

	b := backoff.WithContext(backoff.WithMaxRetries(expBackoff, uint64(c.retry.MaxRetries)), ctx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return nil, err
	}
	return data, nil
}

func retryable(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	return true
}
