package score

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scorer rates one candidate value. Higher is more plausible.
type Scorer func(string) float64

// SSN scores a Social Security number candidate.
func (w SSNWeights) SSN(raw string) float64 {
	d := Digits(raw)
	var score float64
	switch {
	case len(d) == 9:
		score += w.NineDigits
	case len(d) == 10 && d[0] == '0':
		score += w.TenDigitsLeadingZero
		d = d[1:]
	default:
		return w.BadLength
	}

	if allSame(d) || straightRun(d) {
		score += w.Pattern
	}
	area, group, serial := d[:3], d[3:5], d[5:]
	if area == "000" || area == "666" || area[0] == '9' {
		score += w.InvalidArea
	}
	if group == "00" {
		score += w.InvalidGroup
	}
	if serial == "0000" {
		score += w.InvalidSerial
	}
	switch n := distinct(d); {
	case n >= 7:
		score += w.DiverseDigits
	case n < 3:
		score += w.RepetitiveDigits
	}
	return score
}

// Phone scores a phone number candidate.
func (w PhoneWeights) Phone(raw string) float64 {
	d := Digits(raw)
	var score float64
	switch n := len(d); {
	case n == 10:
		score += w.TenDigits
	case n == 11:
		score += w.ElevenDigits
		d = d[1:]
	case n < 10:
		return w.TooShort
	default:
		return w.TooLong
	}

	if allSame(d) || straightRun(d) {
		score += w.Pattern
	}
	switch area := d[:3]; {
	case area == "555":
		score += w.ReservedArea
	case area[0] >= '2':
		score += w.ValidArea
	}
	switch n := distinct(d); {
	case n >= 6:
		score += w.DiverseDigits
	case n < 3:
		score += w.RepetitiveDigits
	}
	return score
}

// Email scores an email candidate. fragments are lower-case name pieces
// (see NameFragments) that raise the score when found in the local part.
func (w EmailWeights) Email(raw string, fragments []string) float64 {
	e := strings.ToLower(strings.TrimSpace(raw))
	at := strings.LastIndex(e, "@")
	if at <= 0 || at == len(e)-1 {
		return w.Invalid
	}
	local, domain := e[:at], e[at+1:]

	score := w.Providers[domain]

	n := utf8.RuneCountInString(local)
	switch {
	case n >= 5 && n <= 15:
		score += w.IdealLocalLength
	case n >= 3 && n <= 20:
		score += w.OKLocalLength
	}

	for _, f := range fragments {
		if strings.Contains(local, f) {
			score += w.NameMatch
			break
		}
	}

	var digits, punct int
	for _, r := range local {
		switch {
		case unicode.IsDigit(r):
			digits++
		case !unicode.IsLetter(r):
			punct++
		}
	}
	switch ratio := float64(digits) / float64(n); {
	case ratio > 0.5:
		score += w.HighDigitRatio
	case ratio > 0.3:
		score += w.ModerateDigitRatio
	}
	if punct > 2 {
		score += w.Punctuation
	}

	for _, m := range w.CorporateMarkers {
		if strings.Contains(domain, m) {
			score += w.Corporate
			break
		}
	}
	for _, k := range w.ThrowawayKeywords {
		if strings.Contains(local, k) || strings.Contains(domain, k) {
			score += w.Throwaway
			break
		}
	}
	return score
}

// SSNScorer returns the SSN scorer for w.
func (w Weights) SSNScorer() Scorer { return w.SSN.SSN }

// PhoneScorer returns the phone scorer for w.
func (w Weights) PhoneScorer() Scorer { return w.Phone.Phone }

// EmailScorer returns an email scorer that rewards the given names.
func (w Weights) EmailScorer(names []string) Scorer {
	frags := NameFragments(names)
	return func(s string) float64 { return w.Email.Email(s, frags) }
}

// NameFragments splits names into unique lower-case words of at least
// three letters, in first-seen order.
func NameFragments(names []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, name := range names {
		for _, word := range strings.FieldsFunc(strings.ToLower(name), func(r rune) bool { return !unicode.IsLetter(r) }) {
			if utf8.RuneCountInString(word) < 3 || seen[word] {
				continue
			}
			seen[word] = true
			out = append(out, word)
		}
	}
	return out
}

// Digits returns only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalSSN drops the leading zero of a ten-digit SSN.
func CanonicalSSN(s string) string {
	d := Digits(s)
	if len(d) == 10 && d[0] == '0' {
		return d[1:]
	}
	return d
}

func allSame(d string) bool {
	return d != "" && strings.Count(d, d[:1]) == len(d)
}

// straightRun reports whether every digit is one more, or every digit one
// less, than the previous one (wrapping 9 to 0).
func straightRun(d string) bool {
	if len(d) < 2 {
		return false
	}
	up, down := true, true
	for i := 1; i < len(d); i++ {
		prev, cur := int(d[i-1]-'0'), int(d[i]-'0')
		if cur != (prev+1)%10 {
			up = false
		}
		if cur != (prev+9)%10 {
			down = false
		}
	}
	return up || down
}

func distinct(d string) int {
	var seen [10]bool
	n := 0
	for i := range len(d) {
		if k := d[i] - '0'; k < 10 && !seen[k] {
			seen[k] = true
			n++
		}
	}
	return n
}
