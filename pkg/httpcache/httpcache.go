// Package httpcache fetches HTTP resources with retries, per-host pacing and
// a tiered response cache that collapses concurrent identical requests.
package httpcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/codeGROOVE-dev/sfcache"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/localfs"
	"github.com/codeGROOVE-dev/sfcache/pkg/store/null"
)

// UserAgent is sent with every request.
const UserAgent = "Mozilla/5.0 (compatible; dossier/1.0; +https://github.com/codeGROOVE-dev/dossier)"

// maxBody bounds how much of a response is read.
const maxBody = 8 << 20

// Cacher stores fetched bodies. GetSet must call fetch at most once per key
// for concurrent callers.
type Cacher interface {
	GetSet(ctx context.Context, key string, fetch func(context.Context) ([]byte, error), ttl ...time.Duration) ([]byte, error)
	TTL() time.Duration
}

// Cache is a Cacher backed by sfcache.
type Cache struct {
	*sfcache.TieredCache[string, []byte]

	ttl time.Duration
}

// Open returns a cache persisted under dir. An empty dir means the user
// cache directory.
func Open(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		dir = filepath.Join(base, "dossier")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	persist, err := localfs.New[string, []byte]("dossier", dir)
	if err != nil {
		return nil, fmt.Errorf("create persistence layer: %w", err)
	}
	tc, err := sfcache.NewTiered[string, []byte](persist, sfcache.TTL(ttl))
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &Cache{TieredCache: tc, ttl: ttl}, nil
}

// Null returns a cache that persists nothing. Concurrent identical
// requests are still collapsed into one fetch.
func Null() *Cache {
	tc, err := sfcache.NewTiered[string, []byte](null.New[string, []byte]())
	if err != nil {
		panic("sfcache.NewTiered with null store: " + err.Error())
	}
	return &Cache{TieredCache: tc}
}

// TTL returns the default entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Key hashes a request identity into a cache key.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// HTTPError is a non-200 response.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.StatusCode, e.URL)
}

// Temporary reports whether retrying the request may succeed.
func (e *HTTPError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// Stats counts cache hits and misses.
type Stats struct {
	Hits   int64
	Misses int64
}

// Validator reports whether a body may be cached.
type Validator func(body []byte) bool

// Client fetches URLs through a Cacher.
type Client struct {
	cache    Cacher
	http     *http.Client
	limiter  *hostLimiter
	logger   *slog.Logger
	timeout  time.Duration
	attempts uint

	hits, misses atomic.Int64
}

// Option configures a Client.
type Option func(*Client)

// WithCache sets the response cache. Nil disables caching.
func WithCache(c Cacher) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.http = h }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) { cl.logger = logger }
}

// WithMinDelay sets the minimum pause between requests to one host.
func WithMinDelay(d time.Duration) Option {
	return func(cl *Client) { cl.limiter = newHostLimiter(d) }
}

// WithTimeout bounds one fetch including retries.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

// WithAttempts sets how many times a request is tried.
func WithAttempts(n uint) Option {
	return func(cl *Client) { cl.attempts = max(n, 1) }
}

// New returns a client. Without WithCache nothing is cached.
func New(opts ...Option) *Client {
	cl := &Client{
		http:     http.DefaultClient,
		limiter:  newHostLimiter(250 * time.Millisecond),
		logger:   slog.Default(),
		timeout:  10 * time.Second,
		attempts: 2,
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

// Stats returns the hit and miss counts so far.
func (cl *Client) Stats() Stats {
	return Stats{Hits: cl.hits.Load(), Misses: cl.misses.Load()}
}

// Get fetches rawURL with the given Accept header.
func (cl *Client) Get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return cl.Do(ctx, req, nil)
}

// Do fetches req. Successful bodies, HTTP errors and network errors are all
// cached so a failing host is not hammered; a body rejected by validate is
// returned but not cached.
func (cl *Client) Do(ctx context.Context, req *http.Request, validate Validator) ([]byte, error) {
	if cl.cache == nil {
		cl.misses.Add(1)
		return cl.fetch(ctx, req)
	}

	key := Key(req.Method, req.URL.String(), req.Header.Get("Accept"))
	fetched := false
	data, err := cl.cache.GetSet(ctx, key, func(ctx context.Context) ([]byte, error) {
		fetched = true
		cl.misses.Add(1)
		cl.logger.Debug("cache miss", "url", req.URL.String())
		body, err := cl.fetch(ctx, req)
		if err != nil {
			var httpErr *HTTPError
			if errors.As(err, &httpErr) {
				return fmt.Appendf(nil, "ERROR:%d", httpErr.StatusCode), nil
			}
			if ctx.Err() != nil {
				return nil, err
			}
			return fmt.Appendf(nil, "NETERR:%s", err), nil
		}
		if validate != nil && !validate(body) {
			return nil, &uncacheable{body: body}
		}
		return body, nil
	}, cl.cache.TTL())

	if !fetched {
		cl.hits.Add(1)
		cl.logger.Debug("cache hit", "url", req.URL.String())
	}

	var u *uncacheable
	if errors.As(err, &u) {
		return u.body, nil
	}
	if err != nil {
		return nil, err
	}

	s := string(data)
	if code, ok := strings.CutPrefix(s, "ERROR:"); ok {
		n, _ := strconv.Atoi(code) //nolint:errcheck // 0 is an acceptable default
		return nil, &HTTPError{StatusCode: n, URL: req.URL.String()}
	}
	if msg, ok := strings.CutPrefix(s, "NETERR:"); ok {
		return nil, fmt.Errorf("cached network error: %s", msg)
	}
	return data, nil
}

type uncacheable struct{ body []byte }

func (*uncacheable) Error() string { return "response failed validation" }

func (cl *Client) fetch(ctx context.Context, req *http.Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, cl.timeout)
	defer cancel()

	return retry.DoWithData(
		func() ([]byte, error) {
			if err := cl.limiter.wait(ctx, req.URL.Host); err != nil {
				return nil, err
			}
			resp, err := cl.http.Do(req.Clone(ctx))
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close() //nolint:errcheck // read-only body

			if resp.StatusCode != http.StatusOK {
				return nil, &HTTPError{StatusCode: resp.StatusCode, URL: req.URL.String()}
			}
			return io.ReadAll(io.LimitReader(resp.Body, maxBody))
		},
		retry.Context(ctx),
		retry.Attempts(cl.attempts),
		retry.Delay(200*time.Millisecond),
		retry.MaxJitter(100*time.Millisecond),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			cl.logger.Debug("retrying request", "attempt", n+1, "url", req.URL.String(), "error", err)
		}),
	)
}

// retryable reports whether err is transient. 4xx responses other than 429
// are permanent.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}
	return true
}
