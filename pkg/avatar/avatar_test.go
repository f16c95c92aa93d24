package avatar

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want int
	}{
		{"identical", 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0},
		{"one bit different", 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFE, 1},
		{"all different", 0x0, 0xFFFFFFFFFFFFFFFF, 64},
		{"halves swapped", 0xFFFFFFFF00000000, 0x00000000FFFFFFFF, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.want {
				t.Errorf("Distance(%x, %x) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilar(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want bool
	}{
		{"identical", 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, true},
		{"close", 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFF0, true},
		{"at threshold", 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFC00, true},
		{"past threshold", 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFF800, false},
		{"zero a", 0, 0xFFFFFFFFFFFFFFFF, false},
		{"zero b", 0xFFFFFFFFFFFFFFFF, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similar(tt.a, tt.b); got != tt.want {
				t.Errorf("Similar(%x, %x) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://gravatar.com/avatar/abc?d=identicon", false},
		{"https://example.com/identicon/abc.png", true},
		{"https://github.com/avatar_default_image.png", true},
		{"https://cdn.example.com/blank-profile-picture.png", true},
		{"https://example.com/user/photo.jpg", false},
		{"https://pbs.twimg.com/profile_images/123.jpg", false},
	}
	for _, tt := range tests {
		if got := Placeholder(tt.url); got != tt.want {
			t.Errorf("Placeholder(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

// gradient renders rows that brighten in the top half and darken in the
// bottom half, or the reverse when mirrored.
func gradient(t *testing.T, mirrored bool) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := range 64 {
		for x := range 64 {
			v := uint8(x * 4)
			if (y < 32) == mirrored {
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

type fakeFetcher map[string][]byte

func (f fakeFetcher) Get(_ context.Context, rawURL, _ string) ([]byte, error) {
	b, ok := f[rawURL]
	if !ok {
		return nil, errors.New("not found")
	}
	return b, nil
}

func TestHash(t *testing.T) {
	f := fakeFetcher{
		"https://cdn/a.png": gradient(t, false),
		"https://cdn/b.png": gradient(t, false),
		"https://cdn/c.png": gradient(t, true),
		"https://cdn/x.png": []byte("not an image"),
	}
	ctx := context.Background()
	a, err := Hash(ctx, f, "https://cdn/a.png")
	if err != nil {
		t.Fatalf("Hash(a): %v", err)
	}
	b, err := Hash(ctx, f, "https://cdn/b.png")
	if err != nil {
		t.Fatalf("Hash(b): %v", err)
	}
	c, err := Hash(ctx, f, "https://cdn/c.png")
	if err != nil {
		t.Fatalf("Hash(c): %v", err)
	}
	if a != b {
		t.Errorf("identical images hash to %x and %x", a, b)
	}
	if Distance(a, c) <= Threshold {
		t.Errorf("mirrored gradient distance = %d, want > %d", Distance(a, c), Threshold)
	}
	for _, u := range []string{"", "https://cdn/x.png", "https://cdn/missing.png", "https://cdn/default.png"} {
		if _, err := Hash(ctx, f, u); err == nil {
			t.Errorf("Hash(%q) succeeded, want error", u)
		}
	}
}
