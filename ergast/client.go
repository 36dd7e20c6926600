package ergast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Source defines the query surface of the Ergast client.
// This interface is implemented by *Client and can be used for testing.
type Source interface {
	Drivers(ctx context.Context, scope Scope) (Table, error)
	Constructors(ctx context.Context, scope Scope) (Table, error)
	Circuits(ctx context.Context, scope Scope) (Table, error)
	FindDriver(ctx context.Context, first, last string) (Table, error)
	FindConstructor(ctx context.Context, name string) (Table, error)
	FindCircuit(ctx context.Context, text string) (Table, error)
	RaceResult(ctx context.Context, scope Scope) (Table, error)
	QualifyingResult(ctx context.Context, scope Scope) (Table, error)
	SprintResult(ctx context.Context, scope Scope) (Table, error)
	Schedule(ctx context.Context, season int) (Table, error)
	DriverStandings(ctx context.Context, scope Scope) (Table, error)
	ConstructorStandings(ctx context.Context, scope Scope) (Table, error)
	DriverHistory(ctx context.Context, driverID string) (Table, error)
	ConstructorHistory(ctx context.Context, constructorID string) (Table, error)
}

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// Cache stores raw response bodies keyed by request URL. Clients have no cache
// unless one is supplied with WithCache.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}

// Client talks to the Ergast HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	timeout   time.Duration
	limit     int
	cache     Cache
	logger    *slog.Logger
}

const (
	// DefaultBaseURL is the public Ergast endpoint root.
	DefaultBaseURL   = "http://ergast.com/api/f1"
	defaultUserAgent = "paddock/0.1"

	// resultLimit is high enough that no endpoint paginates.
	resultLimit = 1000
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request, whichever http.Client is in use. Zero
// leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithCache serves repeated requests from cache.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger logs each request at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client rooted at baseURL. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		limit:     resultLimit,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// BaseURL returns the endpoint root the client resolves paths against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// endpoint builds the request URL for resource under the given scope segments.
func (c *Client) endpoint(resource string, scope ...string) *url.URL {
	segments := append(append([]string(nil), scope...), resource+".json")
	u := c.baseURL.JoinPath(segments...)
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	values := url.Values{}
	values.Set("limit", strconv.Itoa(c.limit))
	u.RawQuery = values.Encode()
	return u
}

// fetch performs one GET and decodes the JSON body.
func (c *Client) fetch(ctx context.Context, reqURL *url.URL) (any, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	key := reqURL.String()
	if c.cache != nil {
		if body, ok := c.cache.Get(ctx, key); ok {
			c.logger.Debug("ergast cache hit", "url", key)
			return decode(body)
		}
	}

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	doc, err := decode(body)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(ctx, key, body)
	}
	return doc, nil
}

func (c *Client) get(ctx context.Context, reqURL *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request: %w", ErrConnection, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.logger.Debug("ergast request", "url", reqURL.String(), "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d, check your inputs", ErrConnection, reqURL.Path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrConnection, err)
	}
	return body, nil
}

func decode(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrParse, err)
	}
	return doc, nil
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
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
