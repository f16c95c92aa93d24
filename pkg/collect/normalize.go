package collect

import (
	"strings"
	"unicode"

	"github.com/codeGROOVE-dev/dossier/pkg/platform"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
	"github.com/codeGROOVE-dev/dossier/pkg/score"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Phone candidates outside this digit range are not phone numbers.
const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

// normalize returns the stored form of raw for f and the key duplicates are
// detected by. ok is false when raw cannot be a value of f.
func normalize(f profile.Field, raw string) (value, key string, ok bool) {
	v := strings.Join(strings.Fields(raw), " ")
	if v == "" {
		return "", "", false
	}
	switch f {
	case profile.FieldPhone:
		d := score.Digits(v)
		if len(d) < minPhoneDigits || len(d) > maxPhoneDigits {
			return "", "", false
		}
		return d, phoneKey(d), true
	case profile.FieldSSN:
		d := score.Digits(v)
		if d == "" {
			return "", "", false
		}
		return d, d, true
	case profile.FieldEmail:
		if len(v) > 7 && strings.EqualFold(v[:7], "mailto:") {
			v = v[7:]
		}
		if strings.Count(v, "@") != 1 || strings.ContainsRune(v, ' ') || strings.HasPrefix(v, "@") || strings.HasSuffix(v, "@") {
			return "", "", false
		}
		return v, strings.ToLower(v), true
	case profile.FieldName, profile.FieldFirstName, profile.FieldLastName, profile.FieldRelative, profile.FieldSpouse:
		return v, NameKey(v), true
	case profile.FieldUsername:
		v = strings.TrimPrefix(v, "@")
		if v == "" {
			return "", "", false
		}
		return v, strings.ToLower(v), true
	case profile.FieldURL, profile.FieldLinkedInProfile:
		return v, platform.NormalizeURL(v), true
	default:
		return v, strings.ToLower(v), true
	}
}

// NameKey folds a person name for comparison: case, diacritics and
// whitespace runs are ignored, so "José  Núñez" and "jose nunez" collide.
func NameKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// phoneKey folds a North American number written with its country code
// onto the national number, so +1 412 670 4024 and 412-670-4024 collapse.
func phoneKey(d string) string {
	if len(d) == 11 && d[0] == '1' {
		return d[1:]
	}
	return d
}
