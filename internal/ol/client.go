package ol

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"bookworm-search/internal/models"
	"bookworm-search/internal/query"
)

const (
	// DefaultBaseURL is the Open Library host queried for search results.
	DefaultBaseURL = "https://openlibrary.org"
	// DefaultUserAgent is sent with all Open Library requests so the site can identify the client.
	DefaultUserAgent = "BookwormSearch/1.0 (+https://github.com/bookworm-search)"
	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 10 * time.Second

	coverURLTemplate = "https://covers.openlibrary.org/b/id/%d-L.jpg"
)

// Catalog is the remote bibliographic search service.
type Catalog interface {
	Fetch(ctx context.Context, d query.Descriptor) (models.SearchResponse, error)
}

// HTTPCatalog queries the Open Library search endpoint over HTTP.
type HTTPCatalog struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewHTTPCatalog builds a catalog for baseURL. A nil client gets one with DefaultTimeout.
func NewHTTPCatalog(client *http.Client, baseURL, userAgent string) *HTTPCatalog {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPCatalog{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// SearchURL builds the Search API URL for a descriptor.
func (c *HTTPCatalog) SearchURL(d query.Descriptor) string {
	return c.baseURL + "/search.json?" + d.RawQuery()
}

// Fetch runs one search request. Every failure is a *RemoteError.
func (c *HTTPCatalog) Fetch(ctx context.Context, d query.Descriptor) (models.SearchResponse, error) {
	url := c.SearchURL(d)
	body, status, err := c.fetchJSON(ctx, url)
	if err != nil {
		return models.SearchResponse{}, &RemoteError{URL: url, StatusCode: status, Err: err}
	}

	resp, err := ParseSearchResponse(body)
	if err != nil {
		return models.SearchResponse{}, &RemoteError{URL: url, StatusCode: status, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp, nil
}

func (c *HTTPCatalog) fetchJSON(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

// CoverURL builds the large cover image URL for a cover identifier.
func CoverURL(coverID int) string {
	return fmt.Sprintf(coverURLTemplate, coverID)
}
