package platform

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Facebook", "facebook"},
		{" FB ", "facebook"},
		{"X", "twitter"},
		{"x.com", "twitter"},
		{"LinkedIn", "linkedin"},
		{"Google+", "google"},
		{"WhatsApp Messenger", "whatsapp"},
		{"Some New_Site", "somenewsite"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Account
		ok   bool
	}{
		{"twitter", "https://twitter.com/jdoe", Account{Platform: "twitter", Username: "jdoe"}, true},
		{"x.com", "https://x.com/jdoe/status/1", Account{Platform: "twitter", Username: "jdoe"}, true},
		{"facebook id", "https://www.facebook.com/profile.php?id=1000123", Account{Platform: "facebook", ID: "1000123"}, true},
		{"facebook vanity", "facebook.com/jane.doe", Account{Platform: "facebook", Username: "jane.doe"}, true},
		{"linkedin", "https://www.linkedin.com/in/jane-doe-42/", Account{Platform: "linkedin", Username: "jane-doe-42"}, true},
		{"linkedin company", "https://www.linkedin.com/company/acme", Account{}, false},
		{"tiktok handle", "https://www.tiktok.com/@jdoe", Account{Platform: "tiktok", Username: "jdoe"}, true},
		{"reddit", "https://old.reddit.com/u/jdoe", Account{Platform: "reddit", Username: "jdoe"}, true},
		{"system page", "https://twitter.com/about", Account{}, false},
		{"unknown host", "https://example.com/jdoe", Account{}, false},
		{"bare host", "https://instagram.com/", Account{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromURL(tt.url)
			if ok != tt.ok || got != tt.want {
				t.Errorf("FromURL(%q) = %+v, %v; want %+v, %v", tt.url, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://twitter.com/user", "twitter.com/user"},
		{"https://x.com/user", "twitter.com/user"},
		{"http://twitter.com/user/", "twitter.com/user"},
		{"https://www.Twitter.com/User", "twitter.com/user"},
		{"https://linkedin.com/in/user?trk=abc", "linkedin.com/in/user"},
		{"https://facebook.com/profile.php?id=42", "facebook.com/profile.php?id=42"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.url); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestProfileURL(t *testing.T) {
	if got, ok := ProfileURL("Instagram", "@jdoe"); !ok || got != "https://www.instagram.com/jdoe" {
		t.Errorf("ProfileURL(Instagram, @jdoe) = %q, %v", got, ok)
	}
	if _, ok := ProfileURL("unknownsite", "jdoe"); ok {
		t.Errorf("ProfileURL should fail for unknown platforms")
	}
	if _, ok := ProfileURL("twitter", "a/b"); ok {
		t.Errorf("ProfileURL should reject usernames with path separators")
	}
}

func TestKnown(t *testing.T) {
	for _, name := range []string{"facebook", "FB", "X", "whatsapp", "Steam"} {
		if !Known(name) {
			t.Errorf("Known(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "acme", "user"} {
		if Known(name) {
			t.Errorf("Known(%q) = true, want false", name)
		}
	}
}
