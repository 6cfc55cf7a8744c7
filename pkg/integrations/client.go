package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/libfix/libfix/pkg/cache"
	"github.com/libfix/libfix/pkg/httputil"
)

// Registries tolerate far more than this; the default is a courtesy ceiling
// for tools that audit hundreds of dependencies in one run.
const (
	defaultRateLimit = 10 // requests per second
	defaultRateBurst = 5
)

// Client provides shared HTTP functionality for registry API clients:
// response caching behind a [cache.Cache], retry with exponential backoff,
// and request pacing. All methods are safe for concurrent use.
type Client struct {
	http    *http.Client
	backend cache.Cache
	prefix  string
	ttl     time.Duration
	limiter *rate.Limiter
	headers map[string]string
}

// NewClient creates a Client that caches responses in backend under keys
// namespaced by prefix, expiring after ttl. Pass a nil backend to disable
// caching and nil headers when no default headers are needed.
func NewClient(backend cache.Cache, prefix string, ttl time.Duration, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:    NewHTTPClient(),
		backend: backend,
		prefix:  prefix,
		ttl:     ttl,
		limiter: rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
		headers: headers,
	}
}

// SetRateLimit adjusts request pacing. A non-positive rps disables pacing.
func (c *Client) SetRateLimit(rps float64, burst int) {
	if rps <= 0 {
		c.limiter = nil
		return
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
}

// Cached retrieves v from the cache or executes fetch (with retries) and
// caches the populated value. If refresh is true the cache is bypassed.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	key = c.prefix + cache.Hash([]byte(key))

	if !refresh {
		if data, ok, _ := c.backend.Get(ctx, key); ok {
			if json.Unmarshal(data, v) == nil {
				return nil
			}
			// Corrupt entry: fall through and refetch.
		}
	}

	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}

	if data, err := json.Marshal(v); err == nil {
		_ = c.backend.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// Get performs an HTTP GET and JSON-decodes the response body into v.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func (c *Client) doRequest(ctx context.Context, url string) (io.ReadCloser, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return httputil.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
