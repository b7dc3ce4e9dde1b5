package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fetcher defines the two read requests pokesearch issues against PokéAPI.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchPage(ctx context.Context, limit, offset int) (ListPage, error)
	FetchDetail(ctx context.Context, name string) (Detail, error)
	FetchDetailURL(ctx context.Context, rawURL string) (Detail, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// ErrNotFound is wrapped by errors for 404 responses.
var ErrNotFound = errors.New("resource not found")

// ErrForeignURL is returned for detail URLs outside <base>/pokemon/.
var ErrForeignURL = errors.New("detail url outside api")

// StatusError reports a non-2xx response.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}

// Unwrap lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// Client talks to the PokéAPI HTTP JSON API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *zap.Logger
}

const (
	// DefaultBaseURL is the public PokéAPI v2 root.
	DefaultBaseURL   = "https://pokeapi.co/api/v2/"
	defaultUserAgent = "pokesearch/0.1"
	defaultTimeout   = 10 * time.Second
	pokemonPath      = "pokemon"
)

// NewClient builds a Client rooted at baseURL. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
		logger:    logger,
	}, nil
}

// FetchPage retrieves one page of the pokemon collection.
func (c *Client) FetchPage(ctx context.Context, limit, offset int) (ListPage, error) {
	if c == nil {
		return ListPage{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("limit", strconv.Itoa(limit))
	values.Set("offset", strconv.Itoa(offset))
	rel := &url.URL{Path: pokemonPath, RawQuery: values.Encode()}
	var payload ListPage
	if err := c.doURL(ctx, c.baseURL.ResolveReference(rel), &payload); err != nil {
		return ListPage{}, err
	}
	return payload, nil
}

// FetchDetail retrieves a single pokemon by exact name or id. The name is
// always a single path segment under <base>/pokemon/.
func (c *Client) FetchDetail(ctx context.Context, name string) (Detail, error) {
	if c == nil {
		return Detail{}, fmt.Errorf("client is nil")
	}
	target, err := c.pokemonURL(name)
	if err != nil {
		return Detail{}, err
	}
	return c.fetchDetail(ctx, target)
}

// FetchDetailURL follows the absolute URL carried by a list entry. The URL
// must point under <base>/pokemon/ on the configured host.
func (c *Client) FetchDetailURL(ctx context.Context, rawURL string) (Detail, error) {
	if c == nil {
		return Detail{}, fmt.Errorf("client is nil")
	}
	target, err := c.entryURL(rawURL)
	if err != nil {
		return Detail{}, err
	}
	return c.fetchDetail(ctx, target)
}

func (c *Client) fetchDetail(ctx context.Context, target *url.URL) (Detail, error) {
	var payload Detail
	if err := c.doURL(ctx, target, &payload); err != nil {
		return Detail{}, err
	}
	return payload, nil
}

func (c *Client) pokemonURL(name string) (*url.URL, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("pokemon name required")
	}
	if trimmed == "." || trimmed == ".." {
		return nil, fmt.Errorf("invalid pokemon name %q", trimmed)
	}
	u := *c.baseURL
	u.Path = c.baseURL.Path + pokemonPath + "/" + trimmed
	u.RawPath = c.baseURL.EscapedPath() + pokemonPath + "/" + url.PathEscape(trimmed)
	return &u, nil
}

func (c *Client) entryURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("detail url required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse detail url %q: %w", trimmed, err)
	}
	if !strings.EqualFold(u.Scheme, c.baseURL.Scheme) || !strings.EqualFold(u.Host, c.baseURL.Host) || u.User != nil {
		return nil, fmt.Errorf("%w: %s", ErrForeignURL, trimmed)
	}
	prefix := c.baseURL.Path + pokemonPath + "/"
	cleaned := path.Clean(u.Path)
	if cleaned != strings.TrimSuffix(u.Path, "/") || !strings.HasPrefix(cleaned, prefix) {
		return nil, fmt.Errorf("%w: %s", ErrForeignURL, trimmed)
	}
	u.Fragment = ""
	return u, nil
}

type validator interface {
	validate() error
}

func (c *Client) doURL(ctx context.Context, reqURL *url.URL, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request",
		zap.String("url", reqURL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Path: reqURL.Path, StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if v, ok := dest.(validator); ok {
		if err := v.validate(); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	// ResolveReference drops the last path segment unless it ends in a slash.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
