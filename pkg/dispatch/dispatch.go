// Package dispatch answers phone and email lookups by querying an upstream
// aggregator and reconciling its payload, with a TTL cache in front.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/codeGROOVE-dev/dossier/pkg/profile"
	"github.com/codeGROOVE-dev/dossier/pkg/reconcile"
)

// QueryType is the kind of identifier being looked up.
type QueryType string

// Supported query types.
const (
	QueryPhone QueryType = "phone"
	QueryEmail QueryType = "email"
)

var (
	// ErrUnsupportedQuery is returned for query types other than phone and email.
	ErrUnsupportedQuery = errors.New("unsupported query type")
	// ErrInvalidInput is returned when the identifier does not look like its type.
	ErrInvalidInput = errors.New("invalid input")
)

// Upstream returns the raw aggregator payload for a query.
type Upstream interface {
	Search(ctx context.Context, t QueryType, q string) ([]byte, error)
}

// Key identifies a cached lookup.
type Key struct {
	Type  QueryType
	Input string
}

func (k Key) String() string {
	return string(k.Type) + ":" + k.Input
}

// ParseKey validates and normalizes a query. Phones keep 10 to 15 digits;
// emails are trimmed, lower-cased and must hold exactly one @.
func ParseKey(t QueryType, input string) (Key, error) {
	input = strings.TrimSpace(input)
	switch QueryType(strings.ToLower(string(t))) {
	case QueryPhone:
		d := digits(input)
		if len(d) < 10 || len(d) > 15 {
			return Key{}, fmt.Errorf("%w: phone %q must have 10 to 15 digits", ErrInvalidInput, input)
		}
		return Key{Type: QueryPhone, Input: d}, nil
	case QueryEmail:
		e := strings.ToLower(input)
		local, domain, ok := strings.Cut(e, "@")
		if !ok || local == "" || domain == "" || strings.Contains(domain, "@") || strings.ContainsAny(e, " \t") {
			return Key{}, fmt.Errorf("%w: email %q", ErrInvalidInput, input)
		}
		return Key{Type: QueryEmail, Input: e}, nil
	default:
		return Key{}, fmt.Errorf("%w: %q", ErrUnsupportedQuery, t)
	}
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type entry struct {
	profile   *profile.Profile
	fetchedAt time.Time
}

// Dispatcher caches reconciled profiles per Key. Concurrent lookups of the
// same key share one upstream request. Failed lookups are not cached.
type Dispatcher struct {
	upstream Upstream
	logger   *slog.Logger
	now      func() time.Time
	recOpts  []reconcile.Option
	ttl      time.Duration

	group singleflight.Group

	mu    sync.Mutex
	cache map[Key]entry
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTTL sets how long a profile is served from cache. Zero disables caching.
func WithTTL(ttl time.Duration) Option {
	return func(d *Dispatcher) { d.ttl = ttl }
}

// WithLogger sets the logger; it is also passed to reconciliation.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithReconcileOptions adds options for every reconciliation.
func WithReconcileOptions(opts ...reconcile.Option) Option {
	return func(d *Dispatcher) { d.recOpts = append(d.recOpts, opts...) }
}

// New returns a dispatcher over up.
func New(up Upstream, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		upstream: up,
		logger:   slog.Default(),
		now:      time.Now,
		ttl:      10 * time.Minute,
		cache:    make(map[Key]entry),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lookup returns the profile for a query, from cache when fresh.
// The returned profile is the caller's to keep.
func (d *Dispatcher) Lookup(ctx context.Context, t QueryType, input string) (*profile.Profile, error) {
	key, err := ParseKey(t, input)
	if err != nil {
		return nil, err
	}
	if p, ok := d.cached(key); ok {
		return p.Clone(), nil
	}

	// The shared request must outlive any single caller giving up.
	shared := context.WithoutCancel(ctx)
	ch := d.group.DoChan(key.String(), func() (any, error) {
		return d.load(shared, key)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*profile.Profile).Clone(), nil
	}
}

// cached returns the stored profile for key when it is fresh, dropping it
// when it is not.
func (d *Dispatcher) cached(key Key) (*profile.Profile, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.cache[key]
	if !ok {
		return nil, false
	}
	if !d.fresh(e) {
		delete(d.cache, key)
		return nil, false
	}
	d.logger.Debug("lookup served from cache", "type", key.Type, "age", d.now().Sub(e.fetchedAt))
	return e.profile, true
}

// load runs once per key at a time. It checks the cache again because a
// flight for the same key may have finished since the caller looked.
func (d *Dispatcher) load(ctx context.Context, key Key) (*profile.Profile, error) {
	if p, ok := d.cached(key); ok {
		return p, nil
	}
	start := d.now()
	p, err := d.fetch(ctx, key)
	if err != nil {
		d.logger.Warn("lookup failed", "type", key.Type, "error", err)
		return nil, err
	}
	if d.ttl > 0 {
		d.mu.Lock()
		d.cache[key] = entry{profile: p, fetchedAt: d.now()}
		d.mu.Unlock()
	}
	d.logger.Info("lookup complete", "type", key.Type, "duration", d.now().Sub(start))
	return p, nil
}

func (d *Dispatcher) fetch(ctx context.Context, key Key) (*profile.Profile, error) {
	raw, err := d.upstream.Search(ctx, key.Type, key.Input)
	if err != nil {
		return nil, fmt.Errorf("upstream %s search: %w", key.Type, err)
	}
	opts := append([]reconcile.Option{reconcile.WithLogger(d.logger)}, d.recOpts...)
	p, err := reconcile.Reconcile(raw, opts...)
	if err != nil {
		return nil, fmt.Errorf("reconcile %s result: %w", key.Type, err)
	}
	return p, nil
}

func (d *Dispatcher) fresh(e entry) bool {
	return d.ttl > 0 && d.now().Sub(e.fetchedAt) < d.ttl
}

// Invalidate drops the cached profile for a query and reports whether one
// was cached.
func (d *Dispatcher) Invalidate(t QueryType, input string) bool {
	key, err := ParseKey(t, input)
	if err != nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.cache[key]
	delete(d.cache, key)
	return ok
}

// Prune drops expired entries and returns how many were removed.
func (d *Dispatcher) Prune() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for k, e := range d.cache {
		if !d.fresh(e) {
			delete(d.cache, k)
			n++
		}
	}
	return n
}

// Len returns the number of cached profiles, fresh or not.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cache)
}
