package sociallookup

import (
	"testing"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
	"github.com/google/go-cmp/cmp"
)

func TestMatch(t *testing.T) {
	for _, n := range []string{"social_lookup", "SocialLookup", "social-lookup-v2", "socialscan"} {
		if !(source{}).Match(n) {
			t.Errorf("Match(%q) = false", n)
		}
	}
	if (source{}).Match("social") {
		t.Errorf("Match(social) = true")
	}
}

func TestAccounts(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []profile.SocialAccount
	}{
		{
			name: "list",
			data: `{"accounts": [
				{"platform": "Instagram", "username": "jdoe", "photo": "https://cdn/ig.jpg"},
				{"url": "https://twitter.com/jdoe"},
				{"platform": "facebook", "photo": "https://cdn/fb.jpg"},
				{"note": "nothing useful"}
			]}`,
			want: []profile.SocialAccount{
				{Platform: "instagram", Username: "jdoe", Photo: "https://cdn/ig.jpg", ExtractionType: profile.ExtractionURL, SourceName: Name},
				{Platform: "twitter", Username: "jdoe", URL: "https://twitter.com/jdoe", ExtractionType: profile.ExtractionURL, SourceName: Name},
				{Platform: "facebook", Photo: "https://cdn/fb.jpg", ExtractionType: profile.ExtractionURL, SourceName: Name},
			},
		},
		{
			name: "keyed by platform",
			data: `{"profiles": {"whatsapp": {"id": "14126704024", "avatar": "https://cdn/wa.jpg"}}}`,
			want: []profile.SocialAccount{
				{Platform: "whatsapp", ID: "14126704024", Photo: "https://cdn/wa.jpg", ExtractionType: profile.ExtractionNativeID, SourceName: Name},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := jsonval.Parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got := source{}.Accounts(data)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Accounts mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContributeIsEmpty(t *testing.T) {
	data, _ := jsonval.Parse([]byte(`{"accounts": [{"platform": "facebook", "id": "1"}]}`))
	if c := (source{}).Contribute(data); !c.Empty() {
		t.Errorf("Contribute = %+v, want empty", c)
	}
}
