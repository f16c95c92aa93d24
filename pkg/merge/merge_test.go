package merge

import (
	"testing"

	"github.com/codeGROOVE-dev/dossier/pkg/profile"
	"github.com/google/go-cmp/cmp"
)

func TestAccounts(t *testing.T) {
	tests := []struct {
		name string
		in   []profile.SocialAccount
		want []profile.SocialAccount
	}{
		{
			name: "id beats url",
			in: []profile.SocialAccount{
				{Platform: "facebook", URL: "https://facebook.com/jane.doe", ExtractionType: profile.ExtractionURL},
				{Platform: "Facebook", ID: "1000123", ExtractionType: profile.ExtractionNativeID},
			},
			want: []profile.SocialAccount{
				{Platform: "facebook", ID: "1000123", ExtractionType: profile.ExtractionNativeID},
			},
		},
		{
			name: "equal rank keeps first",
			in: []profile.SocialAccount{
				{Platform: "twitter", Username: "first", ExtractionType: profile.ExtractionURL},
				{Platform: "x", Username: "second", ExtractionType: profile.ExtractionURL},
			},
			want: []profile.SocialAccount{
				{Platform: "twitter", Username: "first", ExtractionType: profile.ExtractionURL},
			},
		},
		{
			name: "curated ties native id",
			in: []profile.SocialAccount{
				{Platform: "instagram", ID: "9", ExtractionType: profile.ExtractionNativeID},
				{Platform: "instagram", Username: "jd", ExtractionType: profile.ExtractionCurated},
			},
			want: []profile.SocialAccount{
				{Platform: "instagram", ID: "9", ExtractionType: profile.ExtractionNativeID},
			},
		},
		{
			name: "order follows first discovery",
			in: []profile.SocialAccount{
				{Platform: "whatsapp", ExtractionType: profile.ExtractionApp},
				{Platform: "github", Username: "jd", ExtractionType: profile.ExtractionURL},
				{Platform: "WA", ID: "14125550100", ExtractionType: profile.ExtractionNativeID},
				{Platform: "", Username: "orphan", ExtractionType: profile.ExtractionURL},
			},
			want: []profile.SocialAccount{
				{Platform: "whatsapp", ID: "14125550100", ExtractionType: profile.ExtractionNativeID},
				{Platform: "github", Username: "jd", ExtractionType: profile.ExtractionURL},
			},
		},
		{
			name: "empty",
			in:   nil,
			want: []profile.SocialAccount{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Accounts(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Accounts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAccountsDoesNotMutateInput(t *testing.T) {
	in := []profile.SocialAccount{{Platform: "FB", ID: "1", ExtractionType: profile.ExtractionNativeID}}
	Accounts(in)
	if in[0].Platform != "FB" {
		t.Errorf("input platform = %q, want FB", in[0].Platform)
	}
}

func TestEnrich(t *testing.T) {
	accounts := []profile.SocialAccount{
		{Platform: "facebook", ID: "1000123", ExtractionType: profile.ExtractionNativeID},
		{Platform: "whatsapp", Photo: "https://cdn/wa-own.jpg", ExtractionType: profile.ExtractionApp},
	}
	aux := []profile.SocialAccount{
		{Platform: "Facebook", ID: "other", Username: "jane.doe", Photo: "https://cdn/fb.jpg"},
		{Platform: "whatsapp", Photo: "https://cdn/wa.jpg", DisplayName: "Jane"},
		{Platform: "tiktok", Username: "jd"},
	}
	want := []profile.SocialAccount{
		{Platform: "facebook", ID: "1000123", Username: "jane.doe", Photo: "https://cdn/fb.jpg", ExtractionType: profile.ExtractionNativeID},
		{Platform: "whatsapp", Photo: "https://cdn/wa-own.jpg", DisplayName: "Jane", ExtractionType: profile.ExtractionApp},
	}
	got := Enrich(accounts, aux)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Enrich mismatch (-want +got):\n%s", diff)
	}
	if accounts[0].Photo != "" {
		t.Errorf("Enrich modified its input: %+v", accounts[0])
	}
}

func TestAddresses(t *testing.T) {
	in := []profile.Address{
		{Street: "9 Elm St", City: "Erie", State: "PA"},
		{},
		{Street: "9 ELM ST", City: "erie", State: "pa", Country: "US"},
		{Street: " 9 Elm St ", City: "Erie", State: "PA", PostalCode: "16501"},
		{City: "Akron"},
	}
	want := []profile.Address{
		{Street: "9 Elm St", City: "Erie", State: "PA", Country: "US"},
		{Street: "9 Elm St", City: "Erie", State: "PA", PostalCode: "16501"},
		{City: "Akron"},
	}
	if diff := cmp.Diff(want, Addresses(in)); diff != "" {
		t.Errorf("Addresses mismatch (-want +got):\n%s", diff)
	}
}

func TestBreaches(t *testing.T) {
	in := []profile.BreachRecord{
		{Name: "Acme Leak 2019", RecordCount: 1200, Sources: []string{"consolidated"}},
		{Name: " ", Sources: []string{"nobody"}},
		{Name: "Canva", DataClasses: []string{"email"}, Sources: []string{"hibp"}},
		{
			Name:        "acme leak 2019",
			Description: "Forum dump",
			BreachDate:  "2019-04-01",
			RecordCount: 999,
			DataClasses: []string{"email", "password"},
			Sources:     []string{"hibp", "Consolidated"},
		},
	}
	want := []profile.BreachRecord{
		{
			Name:        "Acme Leak 2019",
			Description: "Forum dump",
			BreachDate:  "2019-04-01",
			RecordCount: 1200,
			DataClasses: []string{"email", "password"},
			Sources:     []string{"consolidated", "hibp"},
		},
		{Name: "Canva", DataClasses: []string{"email"}, Sources: []string{"hibp"}},
	}
	if diff := cmp.Diff(want, Breaches(in)); diff != "" {
		t.Errorf("Breaches mismatch (-want +got):\n%s", diff)
	}
}

func TestApply(t *testing.T) {
	p := profile.New()
	p.BasicInfo.Names = []string{"Jane Doe"}
	p.SocialMedia.Accounts = []profile.SocialAccount{
		{Platform: "facebook", URL: "https://facebook.com/jane.doe", ExtractionType: profile.ExtractionURL},
	}
	f := Fragment{
		Accounts: []profile.SocialAccount{
			{Platform: "facebook", ID: "1000123", ExtractionType: profile.ExtractionNativeID},
			{Platform: "github", Username: "jd", ExtractionType: profile.ExtractionURL},
		},
		Aux: []profile.SocialAccount{{Platform: "github", Photo: "https://avatars/jd.png"}},
	}
	got := Apply(p, f)
	want := []profile.SocialAccount{
		{Platform: "facebook", ID: "1000123", ExtractionType: profile.ExtractionNativeID},
		{Platform: "github", Username: "jd", Photo: "https://avatars/jd.png", ExtractionType: profile.ExtractionURL},
	}
	if diff := cmp.Diff(want, got.SocialMedia.Accounts); diff != "" {
		t.Errorf("Apply accounts mismatch (-want +got):\n%s", diff)
	}
	if len(p.SocialMedia.Accounts) != 1 || p.SocialMedia.Accounts[0].ID != "" {
		t.Errorf("Apply mutated input: %+v", p.SocialMedia.Accounts)
	}
	if diff := cmp.Diff(p.BasicInfo, got.BasicInfo); diff != "" {
		t.Errorf("Apply changed basicInfo (-want +got):\n%s", diff)
	}
}

func TestApplyCapsAccounts(t *testing.T) {
	p := profile.New()
	var f Fragment
	for _, name := range []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7"} {
		f.Accounts = append(f.Accounts, profile.SocialAccount{Platform: name, ExtractionType: profile.ExtractionApp})
	}
	if got := len(Apply(p, f).SocialMedia.Accounts); got != profile.DefaultMaxEntries {
		t.Errorf("len(accounts) = %d, want %d", got, profile.DefaultMaxEntries)
	}
	f.MaxEntries = 2
	if got := len(Apply(p, f).SocialMedia.Accounts); got != 2 {
		t.Errorf("len(accounts) = %d, want 2", got)
	}
}

func TestApplyEmptyFragment(t *testing.T) {
	p := profile.New()
	got := Apply(p, Fragment{})
	if got == p {
		t.Fatal("Apply returned its input")
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
}
