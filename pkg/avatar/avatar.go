// Package avatar compares profile pictures by perceptual hash.
package avatar

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF support
	_ "image/jpeg" // JPEG support
	_ "image/png"  // PNG support
	"math/bits"
	"strings"

	"github.com/corona10/goimagehash"
)

// Threshold is the largest Hamming distance, out of 64 bits, at which two
// hashes count as the same picture.
const Threshold = 10

// Fetcher retrieves image bytes.
type Fetcher interface {
	Get(ctx context.Context, rawURL, accept string) ([]byte, error)
}

const accept = "image/webp,image/png,image/jpeg,image/gif,*/*"

// Hash fetches an image and returns its difference hash.
func Hash(ctx context.Context, f Fetcher, imageURL string) (uint64, error) {
	if imageURL == "" {
		return 0, fmt.Errorf("empty image URL")
	}
	if Placeholder(imageURL) {
		return 0, fmt.Errorf("placeholder image: %s", imageURL)
	}
	body, err := f.Get(ctx, imageURL, accept)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", imageURL, err)
	}
	return HashBytes(body)
}

// HashBytes decodes an image and returns its difference hash.
func HashBytes(b []byte) (uint64, error) {
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return 0, fmt.Errorf("decode image: %w", err)
	}
	h, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return 0, fmt.Errorf("hash image: %w", err)
	}
	return h.GetHash(), nil
}

// Similar reports whether two hashes are within Threshold. Zero means
// unknown and is never similar.
func Similar(a, b uint64) bool {
	if a == 0 || b == 0 {
		return false
	}
	return Distance(a, b) <= Threshold
}

// Distance returns the Hamming distance between two hashes.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Placeholder reports whether the URL path names a generated or default
// picture. Query parameters such as Gravatar's d=identicon only name a
// fallback and are ignored.
func Placeholder(imageURL string) bool {
	path, _, _ := strings.Cut(strings.ToLower(imageURL), "?")
	for _, marker := range []string{"identicon", "default", "placeholder", "blank-profile", "no-avatar"} {
		if strings.Contains(path, marker) {
			return true
		}
	}
	return false
}
