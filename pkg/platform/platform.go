// Package platform normalizes social platform names and profile URLs.
package platform

import (
	"fmt"
	"net/url"
	"strings"
)

// aliases maps alternate spellings and domains to the canonical platform name.
var aliases = map[string]string{
	"x":                 "twitter",
	"xcom":              "twitter",
	"twittercom":        "twitter",
	"fb":                "facebook",
	"facebookcom":       "facebook",
	"fbcom":             "facebook",
	"ig":                "instagram",
	"insta":             "instagram",
	"instagramcom":      "instagram",
	"linkedincom":       "linkedin",
	"wa":                "whatsapp",
	"whatsappmessenger": "whatsapp",
	"tg":                "telegram",
	"tme":               "telegram",
	"vk":                "vkontakte",
	"vkcom":             "vkontakte",
	"yt":                "youtube",
	"youtubecom":        "youtube",
	"githubcom":         "github",
	"tiktokcom":         "tiktok",
	"redditcom":         "reddit",
	"bsky":              "bluesky",
	"bskyapp":           "bluesky",
	"googleplus":        "google",
	"gmail":             "google",
	"microsoftaccount":  "microsoft",
	"skypeid":           "skype",
}

// Normalize returns the canonical identity key for a platform name:
// lower-case, punctuation and spaces removed, aliases folded.
func Normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	key := strings.ReplaceAll(b.String(), "+", "plus")
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return key
}

// hosts maps profile hosts (without www./m. prefixes) to platforms.
var hosts = map[string]string{
	"twitter.com":        "twitter",
	"x.com":              "twitter",
	"facebook.com":       "facebook",
	"fb.com":             "facebook",
	"instagram.com":      "instagram",
	"linkedin.com":       "linkedin",
	"github.com":         "github",
	"gitlab.com":         "gitlab",
	"youtube.com":        "youtube",
	"tiktok.com":         "tiktok",
	"reddit.com":         "reddit",
	"old.reddit.com":     "reddit",
	"pinterest.com":      "pinterest",
	"twitch.tv":          "twitch",
	"medium.com":         "medium",
	"t.me":               "telegram",
	"telegram.me":        "telegram",
	"wa.me":              "whatsapp",
	"vk.com":             "vkontakte",
	"bsky.app":           "bluesky",
	"threads.net":        "threads",
	"snapchat.com":       "snapchat",
	"soundcloud.com":     "soundcloud",
	"flickr.com":         "flickr",
	"tumblr.com":         "tumblr",
	"weibo.com":          "weibo",
	"myspace.com":        "myspace",
	"quora.com":          "quora",
	"steamcommunity.com": "steam",
	"gravatar.com":       "gravatar",
	"keybase.io":         "keybase",
	"about.me":           "aboutme",
}

// known holds every platform reachable through hosts.
var known = func() map[string]bool {
	m := make(map[string]bool, len(hosts))
	for _, p := range hosts {
		m[p] = true
	}
	return m
}()

// Known reports whether name normalizes to a platform with recognized profile URLs.
func Known(name string) bool {
	return known[Normalize(name)]
}

// systemPaths are first path segments that never name a user.
var systemPaths = map[string]bool{
	"about": true, "contact": true, "help": true, "support": true, "faq": true,
	"terms": true, "tos": true, "privacy": true, "legal": true, "press": true,
	"careers": true, "jobs": true, "blog": true, "news": true, "api": true,
	"developers": true, "docs": true, "security": true, "login": true,
	"signup": true, "share": true, "sharer": true, "search": true, "explore": true,
	"profile.php": true, "home": true, "intent": true, "hashtag": true, "watch": true, "settings": true,
}

// Account is what a profile URL says about its owner.
type Account struct {
	Platform string
	Username string
	ID       string
}

// FromURL identifies the platform and account a profile URL points to.
// It returns false for non-profile URLs and unknown hosts.
func FromURL(raw string) (Account, bool) {
	u, err := parse(raw)
	if err != nil {
		return Account{}, false
	}
	host := trimHost(u.Hostname())
	name, ok := hosts[host]
	if !ok {
		return Account{}, false
	}

	segs := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	acct := Account{Platform: name}

	switch name {
	case "facebook":
		if id := u.Query().Get("id"); id != "" && len(segs) > 0 && segs[0] == "profile.php" {
			acct.ID = id
			return acct, true
		}
		if len(segs) >= 2 && segs[0] == "people" {
			acct.Username = segs[1]
			if len(segs) >= 3 {
				acct.ID = segs[2]
			}
			return acct, true
		}
	case "linkedin":
		if len(segs) >= 2 && (segs[0] == "in" || segs[0] == "pub") {
			acct.Username, _ = url.PathUnescape(segs[1])
			return acct, acct.Username != ""
		}
		return Account{}, false
	case "youtube":
		if len(segs) >= 2 && (segs[0] == "c" || segs[0] == "user") {
			acct.Username = segs[1]
			return acct, true
		}
		if len(segs) >= 2 && segs[0] == "channel" {
			acct.ID = segs[1]
			return acct, true
		}
	case "reddit":
		if len(segs) >= 2 && (segs[0] == "user" || segs[0] == "u") {
			acct.Username = segs[1]
			return acct, true
		}
		return Account{}, false
	case "bluesky":
		if len(segs) >= 2 && segs[0] == "profile" {
			acct.Username = segs[1]
			return acct, true
		}
		return Account{}, false
	case "steam":
		if len(segs) >= 2 && (segs[0] == "id" || segs[0] == "profiles") {
			if segs[0] == "profiles" {
				acct.ID = segs[1]
			} else {
				acct.Username = segs[1]
			}
			return acct, true
		}
		return Account{}, false
	case "whatsapp":
		if len(segs) >= 1 {
			acct.ID = strings.TrimPrefix(segs[0], "+")
			return acct, acct.ID != ""
		}
		return Account{}, false
	}

	if len(segs) == 0 {
		return Account{}, false
	}
	first := strings.TrimPrefix(segs[0], "@")
	if first == "" || systemPaths[strings.ToLower(first)] {
		return Account{}, false
	}
	acct.Username = first
	return acct, true
}

// profileURLs builds canonical profile URLs from a username.
var profileURLs = map[string]string{
	"twitter":   "https://twitter.com/%s",
	"facebook":  "https://www.facebook.com/%s",
	"instagram": "https://www.instagram.com/%s",
	"linkedin":  "https://www.linkedin.com/in/%s",
	"github":    "https://github.com/%s",
	"gitlab":    "https://gitlab.com/%s",
	"tiktok":    "https://www.tiktok.com/@%s",
	"youtube":   "https://www.youtube.com/@%s",
	"reddit":    "https://www.reddit.com/user/%s",
	"pinterest": "https://www.pinterest.com/%s",
	"twitch":    "https://www.twitch.tv/%s",
	"medium":    "https://medium.com/@%s",
	"telegram":  "https://t.me/%s",
	"vkontakte": "https://vk.com/%s",
	"bluesky":   "https://bsky.app/profile/%s",
	"threads":   "https://www.threads.net/@%s",
}

// ProfileURL returns the canonical profile URL for a username on a known platform.
func ProfileURL(platformName, username string) (string, bool) {
	tmpl, ok := profileURLs[Normalize(platformName)]
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if !ok || username == "" || strings.ContainsAny(username, "/ ?#") {
		return "", false
	}
	return fmt.Sprintf(tmpl, url.PathEscape(username)), true
}

// NormalizeURL reduces a URL to a comparison key: no scheme, no www.,
// no trailing slash, lower-case, and x.com folded into twitter.com.
func NormalizeURL(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimPrefix(s, "m.")
	if i := strings.IndexAny(s, "?#"); i >= 0 && !strings.Contains(s[:i], "profile.php") {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "/")
	if strings.HasPrefix(s, "x.com/") {
		s = "twitter.com/" + strings.TrimPrefix(s, "x.com/")
	}
	s = strings.Replace(s, "/web/@", "/@", 1)
	return s
}

// LooksLikeURL reports whether s is plausibly a web URL.
func LooksLikeURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "www.")
}

func parse(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	return url.Parse(raw)
}

func trimHost(h string) string {
	h = strings.ToLower(h)
	for _, p := range []string{"www.", "m.", "mobile.", "web."} {
		h = strings.TrimPrefix(h, p)
	}
	return h
}
