// Package score rates candidate identifiers for plausibility and selects
// the most credible ones.
//
// Scorers are pure functions of their input and a Weights table; ranking is
// kept separate so every scorer can be tested on its own.
package score

// Weights holds every scoring constant. The zero value scores nothing;
// start from DefaultWeights and override what you need.
type Weights struct {
	SSN   SSNWeights   `yaml:"ssn"`
	Phone PhoneWeights `yaml:"phone"`
	Email EmailWeights `yaml:"email"`
}

// SSNWeights scores US Social Security numbers.
type SSNWeights struct {
	NineDigits           float64 `yaml:"nine_digits"`
	TenDigitsLeadingZero float64 `yaml:"ten_digits_leading_zero"`
	BadLength            float64 `yaml:"bad_length"`
	Pattern              float64 `yaml:"pattern"` // all identical or a straight run
	InvalidArea          float64 `yaml:"invalid_area"`
	InvalidGroup         float64 `yaml:"invalid_group"`
	InvalidSerial        float64 `yaml:"invalid_serial"`
	DiverseDigits        float64 `yaml:"diverse_digits"`    // at least 7 distinct digits
	RepetitiveDigits     float64 `yaml:"repetitive_digits"` // fewer than 3 distinct digits
}

// PhoneWeights scores North American phone numbers.
type PhoneWeights struct {
	TenDigits        float64 `yaml:"ten_digits"`
	ElevenDigits     float64 `yaml:"eleven_digits"`
	TooShort         float64 `yaml:"too_short"`
	TooLong          float64 `yaml:"too_long"`
	Pattern          float64 `yaml:"pattern"`
	ValidArea        float64 `yaml:"valid_area"`
	ReservedArea     float64 `yaml:"reserved_area"`
	DiverseDigits    float64 `yaml:"diverse_digits"`    // at least 6 distinct digits
	RepetitiveDigits float64 `yaml:"repetitive_digits"` // fewer than 3 distinct digits
}

// EmailWeights scores email addresses.
//
//nolint:govet // fieldalignment: grouped by concern for config readability
type EmailWeights struct {
	Providers         map[string]float64 `yaml:"providers"`
	CorporateMarkers  []string           `yaml:"corporate_markers"`
	ThrowawayKeywords []string           `yaml:"throwaway_keywords"`

	Invalid            float64 `yaml:"invalid"`
	IdealLocalLength   float64 `yaml:"ideal_local_length"`      // 5-15 characters
	OKLocalLength      float64 `yaml:"acceptable_local_length"` // 3-20 characters
	NameMatch          float64 `yaml:"name_match"`
	HighDigitRatio     float64 `yaml:"high_digit_ratio"`     // over half digits
	ModerateDigitRatio float64 `yaml:"moderate_digit_ratio"` // over 30% digits
	Punctuation        float64 `yaml:"punctuation"`          // more than 2 punctuation characters
	Corporate          float64 `yaml:"corporate"`
	Throwaway          float64 `yaml:"throwaway"`
}

// DefaultWeights returns the stock scoring table. Each call returns fresh
// maps and slices, so callers may modify the result.
func DefaultWeights() Weights {
	return Weights{
		SSN: SSNWeights{
			NineDigits:           100,
			TenDigitsLeadingZero: 50,
			BadLength:            -1000,
			Pattern:              -1000,
			InvalidArea:          -60,
			InvalidGroup:         -40,
			InvalidSerial:        -40,
			DiverseDigits:        20,
			RepetitiveDigits:     -100,
		},
		Phone: PhoneWeights{
			TenDigits:        100,
			ElevenDigits:     60,
			TooShort:         -1000,
			TooLong:          -500,
			Pattern:          -1000,
			ValidArea:        20,
			ReservedArea:     -30,
			DiverseDigits:    10,
			RepetitiveDigits: -50,
		},
		Email: EmailWeights{
			Providers: map[string]float64{
				"gmail.com":      30,
				"googlemail.com": 30,
				"yahoo.com":      25,
				"ymail.com":      25,
				"outlook.com":    25,
				"hotmail.com":    20,
				"live.com":       20,
				"msn.com":        15,
				"icloud.com":     20,
				"me.com":         15,
				"mac.com":        15,
				"aol.com":        15,
				"comcast.net":    15,
				"att.net":        15,
				"verizon.net":    15,
				"protonmail.com": 10,
				"proton.me":      10,
				"gmx.com":        10,
				"zoho.com":       10,
				"fastmail.com":   10,
			},
			CorporateMarkers: []string{
				".gov", ".mil", ".edu", "corp.", "company.", "-inc.", "llc.", "group.",
			},
			ThrowawayKeywords: []string{
				"test", "temp", "fake", "spam", "junk", "dummy", "example", "noreply",
				"no-reply", "throwaway", "mailinator", "guerrillamail", "10minutemail",
				"trashmail", "yopmail", "sharklasers", "dispostable",
			},
			Invalid:            -1000,
			IdealLocalLength:   20,
			OKLocalLength:      10,
			NameMatch:          25,
			HighDigitRatio:     -40,
			ModerateDigitRatio: -20,
			Punctuation:        -15,
			Corporate:          -20,
			Throwaway:          -50,
		},
	}
}
