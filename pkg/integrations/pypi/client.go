package pypi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/libfix/libfix/pkg/cache"
	"github.com/libfix/libfix/pkg/integrations"
)

// DefaultBaseURL is the public PyPI instance.
const DefaultBaseURL = "https://pypi.org"

// Timestamp layouts seen in PyPI release entries. upload_time_iso_8601 is
// RFC 3339; the legacy upload_time field has no zone designator.
const legacyUploadLayout = "2006-01-02T15:04:05"

// Metadata is the package document returned by the PyPI JSON API.
//
// Either section may be missing from a malformed or unusual response; a nil
// Info with a nil Releases map is a valid state the classifier must handle,
// not an error.
type Metadata struct {
	Info     *Info                    `json:"info"`
	Releases map[string][]ReleaseFile `json:"releases"`
}

// Info is the metadata block describing the latest release.
type Info struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Summary     string   `json:"summary"`
	Classifiers []string `json:"classifiers"`
	HomePage    string   `json:"home_page"`
}

// ReleaseFile is one uploaded artifact of a release.
type ReleaseFile struct {
	UploadTime    string `json:"upload_time"`
	UploadTimeISO string `json:"upload_time_iso_8601"`
	Yanked        bool   `json:"yanked"`
}

// Uploaded parses the file's upload timestamp, preferring the ISO 8601 field.
// Returns ok=false when neither field is present or parsable.
func (f ReleaseFile) Uploaded() (time.Time, bool) {
	if f.UploadTimeISO != "" {
		if t, err := time.Parse(time.RFC3339, f.UploadTimeISO); err == nil {
			return t, true
		}
	}
	if f.UploadTime != "" {
		if t, err := time.Parse(legacyUploadLayout, f.UploadTime); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Client provides access to the PyPI JSON API with caching and retries.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PyPI client. An empty baseURL selects the public
// registry; backend may be nil to disable response caching.
func NewClient(baseURL string, backend cache.Cache, cacheTTL time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(backend, "pypi:", cacheTTL, nil),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// Lookup performs the single registry lookup for a package and returns its
// metadata document. The name is normalized per PEP 503 before the request.
//
// Returns [integrations.ErrNotFound] when the package doesn't exist and
// [integrations.ErrNetwork]-wrapped errors for transport failures; the audit
// pipeline treats any error as absent metadata. If refresh is true the
// response cache is bypassed.
func (c *Client) Lookup(ctx context.Context, name string, refresh bool) (*Metadata, error) {
	name = integrations.NormalizePkgName(name)

	var meta Metadata
	err := c.Cached(ctx, name, refresh, &meta, func() error {
		return c.fetch(ctx, name, &meta)
	})
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

func (c *Client) fetch(ctx context.Context, name string, meta *Metadata) error {
	url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, name)
	if err := c.Get(ctx, url, meta); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: pypi package %s", err, name)
		}
		return err
	}
	return nil
}
