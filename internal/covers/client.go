// Package covers finds cover images for books that were created without
// one.
//
// The primary source is the bookcover API, which answers a title and author
// with a single image URL. Open Library search is the fallback.
package covers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const userAgent = "HomeLibrary/1.0 (https://github.com/mrlokans/homelibrary)"

// ErrNoCover is returned when no source knows a cover for the book.
var ErrNoCover = errors.New("no cover found")

// Finder looks up a cover image URL by title and author.
type Finder interface {
	FindCover(ctx context.Context, title, author string) (string, error)
}

// ClientConfig configures the HTTP cover lookup.
type ClientConfig struct {
	APIURL         string
	OpenLibraryURL string
	RateLimit      float64 // requests per second across both sources
	Timeout        time.Duration
}

// Client queries the cover APIs, sharing one rate limiter between them.
type Client struct {
	httpClient     *http.Client
	apiURL         string
	openLibraryURL string
	limiter        *rate.Limiter
	logger         *zap.Logger
}

func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		apiURL:         strings.TrimRight(cfg.APIURL, "/"),
		openLibraryURL: strings.TrimRight(cfg.OpenLibraryURL, "/"),
		limiter:        rate.NewLimiter(limit, 1),
		logger:         logger.Named("covers"),
	}
}

// FindCover asks the bookcover API first and falls back to Open Library.
func (c *Client) FindCover(ctx context.Context, title, author string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("title is required")
	}

	var errs []error
	if c.apiURL != "" {
		coverURL, err := c.fromBookCoverAPI(ctx, title, author)
		if err == nil {
			return coverURL, nil
		}
		c.logger.Debug("bookcover lookup failed", zap.String("title", title), zap.Error(err))
		errs = append(errs, err)
	}

	if c.openLibraryURL != "" {
		coverURL, err := c.fromOpenLibrary(ctx, title, author)
		if err == nil {
			return coverURL, nil
		}
		c.logger.Debug("open library lookup failed", zap.String("title", title), zap.Error(err))
		errs = append(errs, err)
	}

	return "", errors.Join(append([]error{ErrNoCover}, errs...)...)
}

type bookCoverResponse struct {
	URL string `json:"url"`
}

func (c *Client) fromBookCoverAPI(ctx context.Context, title, author string) (string, error) {
	query := url.Values{}
	query.Set("book_title", title)
	query.Set("author_name", author)

	var body bookCoverResponse
	if err := c.getJSON(ctx, c.apiURL+"?"+query.Encode(), &body); err != nil {
		return "", fmt.Errorf("bookcover: %w", err)
	}
	if body.URL == "" {
		return "", fmt.Errorf("bookcover: empty url")
	}
	return body.URL, nil
}

type openLibrarySearchResult struct {
	Docs []openLibraryDoc `json:"docs"`
}

type openLibraryDoc struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	CoverI     int      `json:"cover_i"`
	ISBN       []string `json:"isbn"`
}

func (c *Client) fromOpenLibrary(ctx context.Context, title, author string) (string, error) {
	query := url.Values{}
	query.Set("title", title)
	if author != "" {
		query.Set("author", author)
	}
	query.Set("limit", "5")
	query.Set("fields", "title,author_name,cover_i,isbn")

	var result openLibrarySearchResult
	if err := c.getJSON(ctx, c.openLibraryURL+"/search.json?"+query.Encode(), &result); err != nil {
		return "", fmt.Errorf("open library: %w", err)
	}

	for _, doc := range result.Docs {
		if doc.CoverI != 0 {
			return fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", doc.CoverI), nil
		}
		if len(doc.ISBN) > 0 {
			return fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-L.jpg", doc.ISBN[0]), nil
		}
	}
	return "", fmt.Errorf("open library: no results with a cover for %q", title)
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
