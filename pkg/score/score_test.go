package score

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSSN(t *testing.T) {
	w := DefaultWeights().SSN
	tests := []struct {
		name     string
		ssn      string
		positive bool
	}{
		{"valid", "078051120", true},
		{"valid with dashes", "219-09-9999", true},
		{"ten digits leading zero", "0078051120", true},
		{"all ones", "111111111", false},
		{"all zeros", "000000000", false},
		{"ascending run", "123456789", false},
		{"descending run", "987654321", false},
		{"too short", "12345", false},
		{"ten digits no leading zero", "1078051120", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.SSN(tt.ssn)
			if (got > 0) != tt.positive {
				t.Errorf("SSN(%q) = %v, want positive=%v", tt.ssn, got, tt.positive)
			}
		})
	}
}

func TestSSNPenalties(t *testing.T) {
	w := DefaultWeights().SSN
	tests := []struct {
		ssn  string
		want float64
	}{
		{"078051120", 100},
		{"666451234", 100 - 60},
		{"123004567", 100 - 40 + 20},
		{"135790000", 100 - 40},
		{"111111111", 100 - 1000 - 100},
	}
	for _, tt := range tests {
		if got := w.SSN(tt.ssn); got != tt.want {
			t.Errorf("SSN(%q) = %v, want %v", tt.ssn, got, tt.want)
		}
	}
}

func TestBestSSN(t *testing.T) {
	s := DefaultWeights().SSNScorer()

	got, ok := Best([]string{"111111111", "078051120"}, s)
	if !ok || got != "078051120" {
		t.Errorf("Best = %q, %v; want 078051120, true", got, ok)
	}
	if got, ok := Best([]string{"000000000", "123456789"}, s); ok {
		t.Errorf("Best of implausible SSNs = %q, want none", got)
	}
	if _, ok := Best(nil, s); ok {
		t.Errorf("Best(nil) reported a value")
	}
}

func TestPhone(t *testing.T) {
	w := DefaultWeights().Phone
	tests := []struct {
		phone string
		want  float64
	}{
		{"4126704024", 100 + 20 + 10},
		{"14126704024", 60 + 20 + 10}, // country digit dropped
		{"5551234567", 100 - 30 + 10},
		{"1234567890", 100 - 1000 + 10},
		{"2222222222", 100 - 1000 + 20 - 50},
		{"412670", -1000},
		{"441234567890", -500},
	}
	for _, tt := range tests {
		if got := w.Phone(tt.phone); got != tt.want {
			t.Errorf("Phone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestEmail(t *testing.T) {
	w := DefaultWeights()
	s := w.EmailScorer([]string{"Jane Q. Doe"})

	better := []struct{ hi, lo string }{
		{"jane.doe@gmail.com", "jd@gmail.com"},
		{"janedoe@gmail.com", "xk7q9@gmail.com"},
		{"janedoe@yahoo.com", "janedoe@example-corp.com"},
		{"doejane@outlook.com", "test123@outlook.com"},
		{"jane@gmail.com", "j.a.n.e@gmail.com"},
	}
	for _, b := range better {
		if s(b.hi) <= s(b.lo) {
			t.Errorf("Email(%q)=%v should outrank Email(%q)=%v", b.hi, s(b.hi), b.lo, s(b.lo))
		}
	}
	if got := s("not-an-email"); got != w.Email.Invalid {
		t.Errorf("Email(not-an-email) = %v, want %v", got, w.Email.Invalid)
	}
}

func TestNameFragments(t *testing.T) {
	got := NameFragments([]string{"Jane Q. Doe", "DOE, Jane", "Al Li"})
	want := []string{"jane", "doe"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NameFragments mismatch (-want +got):\n%s", diff)
	}
}

func TestTop(t *testing.T) {
	s := DefaultWeights().PhoneScorer()

	few := []string{"5551234567", "4126704024"}
	if diff := cmp.Diff(few, Top(few, 5, s)); diff != "" {
		t.Errorf("Top with few values should keep input order (-want +got):\n%s", diff)
	}

	many := []string{"111", "5551234567", "4126704024", "2222222222", "7175550199", "3125550147", "6465550123"}
	got := Top(many, 3, s)
	if len(got) != 3 {
		t.Fatalf("Top returned %d values, want 3", len(got))
	}
	if got[0] != "4126704024" {
		t.Errorf("Top[0] = %q, want 4126704024", got[0])
	}

	if got := Top(nil, 5, s); got == nil || len(got) != 0 {
		t.Errorf("Top(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestRankStable(t *testing.T) {
	flat := func(string) float64 { return 1 }
	in := []string{"c", "a", "b"}
	var got []string
	for _, c := range Rank(in, flat) {
		got = append(got, c.Value)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("Rank reordered ties (-want +got):\n%s", diff)
	}
}
