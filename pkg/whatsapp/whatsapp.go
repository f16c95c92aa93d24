// Package whatsapp reads WhatsApp registration lookups.
package whatsapp

import (
	"regexp"
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

const platform = "whatsapp"

// source implements profile.Source for WhatsApp registration checks.
type source struct{}

func (source) Name() string        { return platform }
func (source) DisplayName() string { return "WhatsApp" }
func (source) Platform() string    { return platform }

func (source) Match(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "whatsapp") || name == "wa" || strings.HasPrefix(name, "wa_")
}

func init() { profile.Register(source{}) }

// URL patterns for WhatsApp links.
var (
	waMePattern     = regexp.MustCompile(`(?i)wa\.me/\+?(\d{7,15})`)
	phoneQueryParam = regexp.MustCompile(`phone=\+?(\d{7,15})`)
)

type record struct {
	phone, name, about, photo, link string
	business                        bool
	hasBusiness                     bool
}

func read(data jsonval.Value) record {
	r := record{
		name:  jsonval.First(data, "pushName", "pushname", "name", "displayName", "verifiedName"),
		about: jsonval.First(data, "about", "status", "bio"),
		photo: jsonval.First(data, "photo", "profilePic", "profilePicUrl", "profile_pic", "avatar", "picture"),
		link:  jsonval.First(data, "link", "url", "chatLink"),
	}
	r.phone = digits(jsonval.First(data, "phone", "number", "phoneNumber", "wid", "jid"))
	if r.phone == "" {
		r.phone = extractPhone(r.link)
	}
	if obj, ok := jsonval.AsObject(data); ok {
		for _, k := range []string{"isBusiness", "business", "is_business"} {
			if b, ok := jsonval.Truthy(obj.Lookup(k)); ok {
				r.business, r.hasBusiness = b, true
				break
			}
		}
	}
	return r
}

func (source) Project(data jsonval.Value) map[string]any {
	r := read(data)
	out := map[string]any{
		"registered": true,
		"name":       r.name,
		"about":      r.about,
		"photo":      r.photo,
	}
	if r.phone != "" {
		out["phone"] = formatPhone(r.phone)
		out["link"] = "https://wa.me/" + r.phone
	}
	if r.hasBusiness {
		out["isBusiness"] = r.business
	}
	return out
}

func (source) Contribute(data jsonval.Value) profile.Contribution {
	var c profile.Contribution
	if profile.ReportsNotFound(data) {
		return c
	}
	r := read(data)
	acct := profile.SocialAccount{
		Platform:       platform,
		ID:             r.phone,
		DisplayName:    r.name,
		Photo:          r.photo,
		ExtractionType: profile.ExtractionApp,
		SourceName:     platform,
	}
	if r.phone != "" {
		acct.URL = "https://wa.me/" + r.phone
	}
	c.Social = append(c.Social, acct)
	c.Add(profile.FieldPhone, r.phone)
	return c
}

// extractPhone pulls the phone number from various WhatsApp URL formats.
func extractPhone(url string) string {
	if m := waMePattern.FindStringSubmatch(url); len(m) > 1 {
		return m[1]
	}
	if m := phoneQueryParam.FindStringSubmatch(url); len(m) > 1 {
		return m[1]
	}
	return ""
}

// digits keeps the number part of a phone or a WhatsApp JID like 14125551234@s.whatsapp.net.
func digits(s string) string {
	if i := strings.IndexByte(s, '@'); i >= 0 {
		s = s[:i]
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// formatPhone formats a phone number with country code and spacing.
// For example, 61488999087 becomes +61 488 999 087.
func formatPhone(phone string) string {
	if len(phone) < 7 {
		return "+" + phone
	}

	var cc, num string
	switch {
	case strings.HasPrefix(phone, "1") && len(phone) == 11:
		cc, num = phone[:1], phone[1:] // North America
	case strings.HasPrefix(phone, "61") && len(phone) == 11:
		cc, num = phone[:2], phone[2:] // Australia
	case strings.HasPrefix(phone, "44") && len(phone) >= 11:
		cc, num = phone[:2], phone[2:] // UK
	case strings.HasPrefix(phone, "91") && len(phone) == 12:
		cc, num = phone[:2], phone[2:] // India
	case len(phone) == 10:
		// national number without country code
		return "(" + phone[:3] + ") " + phone[3:6] + "-" + phone[6:]
	default:
		if len(phone) < 10 {
			return "+" + phone
		}
		cc, num = phone[:2], phone[2:]
	}

	var b strings.Builder
	b.WriteString("+")
	b.WriteString(cc)
	for i, r := range num {
		if i%3 == 0 {
			b.WriteString(" ")
		}
		b.WriteRune(r)
	}
	return b.String()
}
