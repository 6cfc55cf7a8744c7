// Package integrations provides the shared HTTP plumbing for registry clients:
// response caching, retry with backoff, rate limiting, and the sentinel errors
// every registry client maps transport failures onto.
package integrations

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// non-success statuses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the standard registry timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

var pkgNameReplacer = strings.NewReplacer("_", "-", ".", "-")

// NormalizePkgName converts a package name to its canonical registry form
// following PEP 503: lowercase, with underscores and periods folded to
// hyphens. Used for registry URLs and cache keys only; the curated override
// table matches raw names case-sensitively on purpose.
func NormalizePkgName(name string) string {
	return pkgNameReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}
