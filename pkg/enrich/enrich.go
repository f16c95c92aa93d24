// Package enrich fetches supplementary data for an assembled profile.
//
// Enrichment never blocks or alters reconciliation. Its output is a
// merge.Fragment that the caller applies with merge.Apply.
package enrich

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codeGROOVE-dev/dossier/pkg/avatar"
	"github.com/codeGROOVE-dev/dossier/pkg/htmlutil"
	"github.com/codeGROOVE-dev/dossier/pkg/merge"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

// Fetcher retrieves a URL.
type Fetcher interface {
	Get(ctx context.Context, rawURL, accept string) ([]byte, error)
}

// Enricher fetches avatars for profile accounts.
type Enricher struct {
	fetch       Fetcher
	logger      *slog.Logger
	concurrency int
	timeout     time.Duration
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) { e.logger = logger }
}

// WithConcurrency bounds the number of accounts fetched at once.
func WithConcurrency(n int) Option {
	return func(e *Enricher) { e.concurrency = max(n, 1) }
}

// WithTimeout bounds the work done for one account.
func WithTimeout(d time.Duration) Option {
	return func(e *Enricher) { e.timeout = d }
}

// New returns an Enricher that fetches through f, typically an
// *httpcache.Client.
func New(f Fetcher, opts ...Option) *Enricher {
	e := &Enricher{
		fetch:       f,
		logger:      slog.Default(),
		concurrency: 4,
		timeout:     15 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

const htmlAccept = "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8"

// Avatars looks up the og:image of every account with a profile URL.
// Accounts without a photo take the image as their photo. Accounts with a
// photo take it as their high-resolution avatar, but only when both
// pictures hash as similar. Per-account failures are logged and skipped;
// the only error returned is ctx's.
func (e *Enricher) Avatars(ctx context.Context, p *profile.Profile) (merge.Fragment, error) {
	accounts := p.SocialMedia.Accounts
	found := make([]*profile.SocialAccount, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, a := range accounts {
		if a.URL == "" {
			continue
		}
		g.Go(func() error {
			actx, cancel := context.WithTimeout(gctx, e.timeout)
			defer cancel()
			if aux, ok := e.avatar(actx, a); ok {
				found[i] = &aux
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return merge.Fragment{}, err
	}
	if err := ctx.Err(); err != nil {
		return merge.Fragment{}, err
	}

	var f merge.Fragment
	for _, a := range found {
		if a != nil {
			f.Aux = append(f.Aux, *a)
		}
	}
	e.logger.Debug("avatar enrichment done", "accounts", len(accounts), "found", len(f.Aux))
	return f, nil
}

func (e *Enricher) avatar(ctx context.Context, a profile.SocialAccount) (profile.SocialAccount, bool) {
	log := e.logger.With("platform", a.Platform, "url", a.URL)
	page, err := e.fetch.Get(ctx, a.URL, htmlAccept)
	if err != nil {
		log.Debug("profile page fetch failed", "error", err)
		return profile.SocialAccount{}, false
	}
	img := resolve(a.URL, htmlutil.OGImage(bytes.NewReader(page)))
	if img == "" || avatar.Placeholder(img) {
		return profile.SocialAccount{}, false
	}

	aux := profile.SocialAccount{Platform: a.Platform, SourceName: "enrich"}
	if a.Photo == "" {
		aux.Photo = img
		return aux, true
	}
	if img == a.Photo || a.AvatarHD != "" {
		return profile.SocialAccount{}, false
	}

	have, err := avatar.Hash(ctx, e.fetch, a.Photo)
	if err != nil {
		log.Debug("existing photo hash failed", "error", err)
		return profile.SocialAccount{}, false
	}
	got, err := avatar.Hash(ctx, e.fetch, img)
	if err != nil {
		log.Debug("page image hash failed", "error", err)
		return profile.SocialAccount{}, false
	}
	if !avatar.Similar(have, got) {
		log.Debug("page image differs from photo", "distance", avatar.Distance(have, got))
		return profile.SocialAccount{}, false
	}
	aux.AvatarHD = img
	return aux, true
}

// resolve makes ref absolute against the page it was found on.
func resolve(page, ref string) string {
	if ref == "" {
		return ""
	}
	base, err := url.Parse(page)
	if err != nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
