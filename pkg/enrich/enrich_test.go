package enrich

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/codeGROOVE-dev/dossier/pkg/merge"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

func gradient(t *testing.T, mirrored bool) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := range 32 {
		for x := range 32 {
			v := uint8(x * 8)
			if (y < 16) == mirrored {
				v = 255 - v
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func page(image string) []byte {
	return []byte(`<html><head><meta property="og:image" content="` + image + `"></head><body></body></html>`)
}

type fakeFetcher struct {
	mu    sync.Mutex
	body  map[string][]byte
	calls []string
}

func (f *fakeFetcher) Get(_ context.Context, rawURL, _ string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, rawURL)
	b, ok := f.body[rawURL]
	if !ok {
		return nil, errors.New("404")
	}
	return b, nil
}

func TestAvatars(t *testing.T) {
	f := &fakeFetcher{body: map[string][]byte{
		"https://github.com/jd":    page("/avatars/jd.png"),
		"https://twitter.com/jd":   page("https://cdn/tw-large.png"),
		"https://cdn/tw.png":       gradient(t, false),
		"https://cdn/tw-large.png": gradient(t, false),
		"https://instagram.com/jd": page("https://cdn/ig-other.png"),
		"https://cdn/ig.png":       gradient(t, false),
		"https://cdn/ig-other.png": gradient(t, true),
		"https://tiktok.com/@jd":   page("https://cdn/default-avatar.png"),
	}}
	p := profile.New()
	p.SocialMedia.Accounts = []profile.SocialAccount{
		{Platform: "github", URL: "https://github.com/jd", ExtractionType: profile.ExtractionURL},
		{Platform: "twitter", URL: "https://twitter.com/jd", Photo: "https://cdn/tw.png", ExtractionType: profile.ExtractionURL},
		{Platform: "instagram", URL: "https://instagram.com/jd", Photo: "https://cdn/ig.png", ExtractionType: profile.ExtractionURL},
		{Platform: "whatsapp", ID: "14125550100", ExtractionType: profile.ExtractionApp},
		{Platform: "tiktok", URL: "https://tiktok.com/@jd", ExtractionType: profile.ExtractionURL},
		{Platform: "reddit", URL: "https://reddit.com/u/jd", ExtractionType: profile.ExtractionURL},
	}

	frag, err := New(f, WithConcurrency(2)).Avatars(context.Background(), p)
	if err != nil {
		t.Fatalf("Avatars: %v", err)
	}
	want := merge.Fragment{Aux: []profile.SocialAccount{
		{Platform: "github", Photo: "https://github.com/avatars/jd.png", SourceName: "enrich"},
		{Platform: "twitter", AvatarHD: "https://cdn/tw-large.png", SourceName: "enrich"},
	}}
	if diff := cmp.Diff(want, frag); diff != "" {
		t.Fatalf("Avatars mismatch (-want +got):\n%s", diff)
	}

	got := merge.Apply(p, frag)
	if got.SocialMedia.Accounts[0].Photo != "https://github.com/avatars/jd.png" {
		t.Errorf("github photo = %q", got.SocialMedia.Accounts[0].Photo)
	}
	if got.SocialMedia.Accounts[1].Photo != "https://cdn/tw.png" || got.SocialMedia.Accounts[1].AvatarHD != "https://cdn/tw-large.png" {
		t.Errorf("twitter account = %+v", got.SocialMedia.Accounts[1])
	}
	if p.SocialMedia.Accounts[0].Photo != "" {
		t.Error("enrichment mutated the input profile")
	}
	for _, u := range f.calls {
		if u == "https://cdn/default-avatar.png" {
			t.Error("placeholder image was fetched")
		}
	}
}

func TestAvatarsCanceled(t *testing.T) {
	f := &fakeFetcher{body: map[string][]byte{"https://github.com/jd": page("https://cdn/a.png")}}
	p := profile.New()
	p.SocialMedia.Accounts = []profile.SocialAccount{{Platform: "github", URL: "https://github.com/jd"}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(f).Avatars(ctx, p); !errors.Is(err, context.Canceled) {
		t.Errorf("Avatars error = %v, want context.Canceled", err)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		page, ref, want string
	}{
		{"https://github.com/jd", "/a.png", "https://github.com/a.png"},
		{"https://github.com/jd", "//cdn.example/a.png", "https://cdn.example/a.png"},
		{"https://github.com/jd", "https://x/a.png", "https://x/a.png"},
		{"https://github.com/jd", "data:image/png;base64,AAAA", ""},
		{"https://github.com/jd", "", ""},
	}
	for _, tt := range tests {
		if got := resolve(tt.page, tt.ref); got != tt.want {
			t.Errorf("resolve(%q, %q) = %q, want %q", tt.page, tt.ref, got, tt.want)
		}
	}
}
