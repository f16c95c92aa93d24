package dispatch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Getter fetches a URL, typically an *httpcache.Client.
type Getter interface {
	Get(ctx context.Context, rawURL, accept string) ([]byte, error)
}

// HTTPUpstream queries an aggregator at GET {base}/search?type=&q=.
type HTTPUpstream struct {
	client Getter
	base   string
}

// NewHTTPUpstream returns an upstream rooted at base.
func NewHTTPUpstream(base string, client Getter) (*HTTPUpstream, error) {
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("upstream URL %q: must be an absolute http(s) URL", base)
	}
	return &HTTPUpstream{client: client, base: strings.TrimSuffix(base, "/")}, nil
}

// Search implements Upstream.
func (u *HTTPUpstream) Search(ctx context.Context, t QueryType, q string) ([]byte, error) {
	v := url.Values{"type": {string(t)}, "q": {q}}
	return u.client.Get(ctx, u.base+"/search?"+v.Encode(), "application/json")
}
