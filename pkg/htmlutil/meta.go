package htmlutil

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// imageKeys are the meta tags that carry a page's profile image, best first.
var imageKeys = []string{"og:image:secure_url", "og:image", "twitter:image", "twitter:image:src"}

// Meta returns the content of every <meta> tag in the document keyed by its
// lower-cased property or name. The first occurrence of a key wins.
func Meta(r io.Reader) map[string]string {
	out := make(map[string]string)
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			if t.DataAtom != atom.Meta {
				continue
			}
			var key, content string
			for _, a := range t.Attr {
				switch strings.ToLower(a.Key) {
				case "property", "name", "itemprop":
					if key == "" {
						key = strings.ToLower(strings.TrimSpace(a.Val))
					}
				case "content":
					content = strings.TrimSpace(a.Val)
				}
			}
			if key == "" || content == "" {
				continue
			}
			if _, ok := out[key]; !ok {
				out[key] = content
			}
		}
	}
}

// OGImage returns the profile image a page advertises through Open Graph or
// Twitter card tags, or "".
func OGImage(r io.Reader) string {
	meta := Meta(r)
	for _, k := range imageKeys {
		if v := meta[k]; v != "" {
			return v
		}
	}
	return ""
}
