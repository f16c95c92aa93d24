// Package htmlutil mines contact details and profile links out of free text
// and reads image metadata from HTML pages.
package htmlutil

import (
	"html"
	"regexp"
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/platform"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	multiSpacePattern = regexp.MustCompile(`\s+`)
	emailPattern      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	urlPattern        = regexp.MustCompile(`(?i)\bhttps?://[^\s<>"'()\[\]]+`)

	// phonePattern requires at least one separator so bare digit runs
	// (order numbers, timestamps) are not taken as phones.
	phonePattern = regexp.MustCompile(
		`(?:tel:)?(?:\+?1[-.\s]?)?\([0-9]{3}\)[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}` + // (555) 123-4567
			`|(?:tel:)?(?:\+?1[-.\s]?)?[0-9]{3}[-.\s][0-9]{3}[-.\s]?[0-9]{4}`, // 555-123-4567
	)
)

// StripTags removes HTML tags and entities and collapses whitespace.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// EmailAddresses returns the distinct email addresses in text, lower-cased,
// in order of appearance. Placeholder and asset-like matches are dropped.
func EmailAddresses(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, email := range emailPattern.FindAllString(text, -1) {
		email = strings.ToLower(strings.Trim(email, "."))
		if placeholderEmail(email) || !validEmailDomain(email) || seen[email] {
			continue
		}
		seen[email] = true
		out = append(out, email)
	}
	return out
}

func placeholderEmail(email string) bool {
	for _, p := range []string{"noreply@", "no-reply@", "example@"} {
		if strings.HasPrefix(email, p) {
			return true
		}
	}
	for _, s := range []string{"@example.", "@localhost", "@test."} {
		if strings.Contains(email, s) {
			return true
		}
	}
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp"} {
		if strings.HasSuffix(email, ext) {
			return true
		}
	}
	return false
}

// PhoneNumbers returns the distinct phone numbers in text as written,
// deduplicated by their digits.
func PhoneNumbers(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, phone := range phonePattern.FindAllString(text, -1) {
		if looksLikeURLFragment(phone) {
			continue
		}
		d := digits(phone)
		if len(d) < 7 || len(d) > 15 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, strings.TrimPrefix(phone, "tel:"))
	}
	return out
}

// ProfileLinks returns the URLs in text that point at a social profile on a
// recognized platform, in order of appearance.
func ProfileLinks(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, u := range urlPattern.FindAllString(text, -1) {
		u = cleanURL(u)
		if _, ok := platform.FromURL(u); !ok {
			continue
		}
		key := platform.NormalizeURL(u)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, u)
	}
	return out
}

// cleanURL removes trailing punctuation a regex tends to capture.
func cleanURL(s string) string {
	s = strings.TrimSpace(s)
	for s != "" {
		last := s[len(s)-1]
		if !strings.ContainsRune(`"'>)]\.,;:!?`, rune(last)) {
			break
		}
		s = s[:len(s)-1]
	}
	return s
}

func looksLikeURLFragment(s string) bool {
	return strings.Contains(s, "/") ||
		strings.Contains(s, ".js") ||
		strings.Contains(s, ".css") ||
		strings.Contains(s, ".html") ||
		strings.ContainsAny(s, "abcdefABCDEF") // hex chars in hashes
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

// commonTLDs are accepted without further checks.
var commonTLDs = map[string]bool{
	"com": true, "org": true, "net": true, "edu": true, "gov": true, "mil": true,
	"co": true, "io": true, "me": true, "us": true, "uk": true, "ca": true,
	"de": true, "fr": true, "jp": true, "cn": true, "au": true, "nz": true,
	"in": true, "br": true, "ru": true, "it": true, "es": true, "nl": true,
	"se": true, "no": true, "fi": true, "dk": true, "pl": true, "ch": true,
	"info": true, "biz": true, "dev": true, "app": true, "xyz": true,
	"ai": true, "cc": true, "tv": true, "fm": true, "email": true, "live": true,
}

// validEmailDomain rejects domains that look like obfuscated or random text.
func validEmailDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	parts := strings.Split(email[at+1:], ".")
	if len(parts) < 2 {
		return false
	}
	tld := parts[len(parts)-1]
	if commonTLDs[tld] {
		return true
	}
	if len(tld) < 2 || len(tld) > 6 {
		return false
	}
	return !looksRandom(parts[len(parts)-2]) && !looksRandom(tld)
}

// looksRandom flags strings whose consonant distribution is unlike real words.
func looksRandom(s string) bool {
	if len(s) < 4 {
		return false
	}
	var vowels, consonants, run, maxRun int
	for _, c := range strings.ToLower(s) {
		if c < 'a' || c > 'z' {
			continue
		}
		if strings.ContainsRune("aeiou", c) {
			vowels++
			run = 0
			continue
		}
		consonants++
		run++
		maxRun = max(maxRun, run)
	}
	switch {
	case vowels == 0 && consonants > 3:
		return true
	case maxRun > 4:
		return true
	case vowels > 0 && float64(consonants)/float64(vowels) >= 3.5:
		return true
	}
	return false
}
