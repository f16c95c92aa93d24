package collect

import (
	"testing"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
	"github.com/google/go-cmp/cmp"

	_ "github.com/codeGROOVE-dev/dossier/pkg/callerid"
	_ "github.com/codeGROOVE-dev/dossier/pkg/sociallookup"
	_ "github.com/codeGROOVE-dev/dossier/pkg/whatsapp"
)

func mustObject(t *testing.T, s string) *jsonval.Object {
	t.Helper()
	v, err := jsonval.Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	obj, ok := jsonval.AsObject(jsonval.Unwrap(v))
	if !ok {
		t.Fatalf("payload is not an object: %s", s)
	}
	return obj
}

func TestListNormalizes(t *testing.T) {
	tests := []struct {
		field profile.Field
		in    []string
		want  []string
	}{
		{profile.FieldPhone, []string{"412-670-4024", "(412) 670-4024", "4126704024", "123", "+1 412 670 4024"}, []string{"4126704024"}},
		{profile.FieldPhone, []string{"1-412-670-4024", "412.670.4024", "44 20 7946 0958"}, []string{"14126704024", "442079460958"}},
		{profile.FieldEmail, []string{"Jane@Gmail.com", "jane@gmail.com", "not-an-email", "mailto:bob@yahoo.com", "a@b@c"}, []string{"Jane@Gmail.com", "bob@yahoo.com"}},
		{profile.FieldName, []string{"José  Núñez", "jose nunez", "JOSE NUNEZ", "Jane Doe"}, []string{"José Núñez", "Jane Doe"}},
		{profile.FieldUsername, []string{"@jdoe", "JDoe", "@"}, []string{"jdoe"}},
		{profile.FieldSSN, []string{"078-05-1120", "078051120", "n/a"}, []string{"078051120"}},
		{profile.FieldURL, []string{"https://www.example.com/jane/", "http://example.com/jane"}, []string{"https://www.example.com/jane/"}},
		{profile.FieldEmployer, []string{"Acme", " acme ", "Globex"}, []string{"Acme", "Globex"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			l := NewList(tt.field)
			for _, v := range tt.in {
				l.Add(v)
			}
			if diff := cmp.Diff(tt.want, l.Values()); diff != "" {
				t.Errorf("List(%s) mismatch (-want +got):\n%s", tt.field, diff)
			}
		})
	}
}

func TestNameKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"José Núñez", "jose nunez"},
		{"  Zoë\tO'Brien ", "zoe o'brien"},
		{"Jane Doe", "jane doe"},
	}
	for _, tt := range tests {
		if got := NameKey(tt.in); got != tt.want {
			t.Errorf("NameKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const mixedPayload = `{
	"consolidated": {
		"names": [{"first": "Jane", "last": "Doe"}, "JANE DOE", {"type": "string", "value": "José Núñez"}],
		"phones": [{"number": "(412) 670-4024", "type": "mobile"}, "412-670-4024"],
		"emails": "jane.doe@gmail.com; Jane.Doe@Gmail.com",
		"addresses": ["123 Main St, Pittsburgh, PA 15213"],
		"facebookId": "1000123",
		"breaches": [{"name": "Acme Leak 2019", "count": "1,234"}]
	},
	"processed": {
		"contact": {"phones": ["5551234567"], "emails": [{"address": "jdoe@yahoo.com"}]},
		"professional": {"employment": [{"company": "Acme", "title": "Engineer"}]}
	},
	"platforms": [
		{"source": "whatsapp", "success": true, "data": {"registered": true, "phone": "14126704024"}},
		{"source": "social_lookup", "success": true, "data": {"accounts": [{"platform": "facebook", "photo": "https://cdn/fb.jpg"}]}}
	],
	"results": {"hibp": {"success": true, "data": {"breaches": [{"Name": "acme leak 2019"}]}}},
	"step3_callerid": {"success": true, "data": {"callerName": "Jane Doe", "carrier": "Verizon"}},
	"notes": "alt contact jd@proton.me or https://twitter.com/janedoe",
	"unknownThing": {"deep": {"ssn": "078-05-1120"}}
}`

func TestCollectGenerations(t *testing.T) {
	c := Collect(mustObject(t, mixedPayload))

	if diff := cmp.Diff([]string{"consolidated", "processed", "legacy", "scan"}, c.Generations); diff != "" {
		t.Errorf("generations mismatch (-want +got):\n%s", diff)
	}

	values := map[profile.Field][]string{
		profile.FieldName:      {"Jane Doe", "José Núñez"},
		profile.FieldFirstName: {"Jane"},
		profile.FieldLastName:  {"Doe"},
		profile.FieldPhone:     {"4126704024", "5551234567"},
		profile.FieldEmail:     {"jane.doe@gmail.com", "jdoe@yahoo.com", "jd@proton.me"},
		profile.FieldEmployer:  {"Acme"},
		profile.FieldJobTitle:  {"Engineer"},
		profile.FieldCarrier:   {"Verizon"},
		profile.FieldSSN:       {"078051120"},
	}
	for f, want := range values {
		if diff := cmp.Diff(want, c.Values(f)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", f, diff)
		}
	}

	wantAddr := []profile.Address{{Street: "123 Main St", City: "Pittsburgh", State: "PA", PostalCode: "15213"}}
	if diff := cmp.Diff(wantAddr, c.Addresses); diff != "" {
		t.Errorf("addresses mismatch (-want +got):\n%s", diff)
	}

	var platforms []string
	for _, a := range c.Social {
		platforms = append(platforms, a.Platform+"/"+string(a.ExtractionType))
	}
	if diff := cmp.Diff([]string{"facebook/native_id", "whatsapp/app", "twitter/url"}, platforms); diff != "" {
		t.Errorf("social mismatch (-want +got):\n%s", diff)
	}
	if c.Social[0].ID != "1000123" || c.Social[2].Username != "janedoe" {
		t.Errorf("social = %+v", c.Social)
	}

	if len(c.Aux) != 1 || c.Aux[0].Platform != "facebook" || c.Aux[0].Photo != "https://cdn/fb.jpg" {
		t.Errorf("aux = %+v", c.Aux)
	}

	var breaches []string
	for _, b := range c.Breaches {
		breaches = append(breaches, b.Name)
	}
	if diff := cmp.Diff([]string{"Acme Leak 2019", "acme leak 2019"}, breaches); diff != "" {
		t.Errorf("breaches mismatch (-want +got):\n%s", diff)
	}
	if c.Breaches[0].RecordCount != 1234 {
		t.Errorf("record count = %d, want 1234", c.Breaches[0].RecordCount)
	}

	var sources []string
	for _, r := range c.Records {
		sources = append(sources, r.Source)
	}
	if diff := cmp.Diff([]string{"whatsapp", "social_lookup", "hibp", "callerid"}, sources); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectConsolidatedSiblings(t *testing.T) {
	c := Collect(mustObject(t, `{"data": {
		"consolidated": {"names": ["Jane Doe"], "phones": ["5551234567"]},
		"phones": ["412-670-4024"],
		"emails": ["jane@gmail.com"]
	}}`))

	if diff := cmp.Diff([]string{"consolidated", "scan"}, c.Generations); diff != "" {
		t.Errorf("generations mismatch (-want +got):\n%s", diff)
	}
	values := map[profile.Field][]string{
		profile.FieldName:  {"Jane Doe"},
		profile.FieldPhone: {"5551234567", "4126704024"},
		profile.FieldEmail: {"jane@gmail.com"},
	}
	for f, want := range values {
		if diff := cmp.Diff(want, c.Values(f)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", f, diff)
		}
	}
}

func TestCollectSocialExtraction(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []profile.SocialAccount
	}{
		{
			name: "id beats url shape",
			data: `{"socialMedia": [
				{"platform": "facebook", "id": "1000123", "name": "Jane Doe"},
				{"url": "https://www.facebook.com/jane.doe"}
			]}`,
			want: []profile.SocialAccount{
				{Platform: "facebook", ID: "1000123", DisplayName: "Jane Doe", ExtractionType: profile.ExtractionNativeID, SourceName: "scan"},
				{Platform: "facebook", Username: "jane.doe", URL: "https://www.facebook.com/jane.doe", ExtractionType: profile.ExtractionURL, SourceName: "scan"},
			},
		},
		{
			name: "verified is curated",
			data: `{"social": {"instagram": {"username": "jdoe", "verified": true}}}`,
			want: []profile.SocialAccount{
				{Platform: "instagram", Username: "jdoe", ExtractionType: profile.ExtractionCurated, SourceName: "scan"},
			},
		},
		{
			name: "platform keyed handles",
			data: `{"profiles": {"twitter": "@janedoe", "github": 4242, "spotify": true, "count": 3}}`,
			want: []profile.SocialAccount{
				{Platform: "twitter", Username: "janedoe", URL: "https://twitter.com/janedoe", ExtractionType: profile.ExtractionURL, SourceName: "scan"},
				{Platform: "github", ID: "4242", ExtractionType: profile.ExtractionNativeID, SourceName: "scan"},
				{Platform: "spotify", ExtractionType: profile.ExtractionApp, SourceName: "scan"},
			},
		},
		{
			name: "installed apps",
			data: `{"installedApps": ["WhatsApp", {"name": "Telegram"}, {"signal": true, "viber": false}]}`,
			want: []profile.SocialAccount{
				{Platform: "whatsapp", ExtractionType: profile.ExtractionApp, SourceName: "scan"},
				{Platform: "telegram", ExtractionType: profile.ExtractionApp, SourceName: "scan"},
				{Platform: "signal", ExtractionType: profile.ExtractionApp, SourceName: "scan"},
			},
		},
		{
			name: "platform suffixed keys",
			data: `{"person": {"instagramUrl": "https://instagram.com/jdoe", "tiktokHandle": "jd", "facebook_id": 77}}`,
			want: []profile.SocialAccount{
				{Platform: "instagram", Username: "jdoe", URL: "https://instagram.com/jdoe", ExtractionType: profile.ExtractionURL, SourceName: "scan"},
				{Platform: "tiktok", Username: "jd", URL: "https://www.tiktok.com/@jd", ExtractionType: profile.ExtractionURL, SourceName: "scan"},
				{Platform: "facebook", ID: "77", ExtractionType: profile.ExtractionNativeID, SourceName: "scan"},
			},
		},
		{
			name: "not found registrations skipped",
			data: `{"social": {"whatsapp": {"registered": false}, "telegram": {"registered": true}}}`,
			want: []profile.SocialAccount{
				{Platform: "telegram", ExtractionType: profile.ExtractionApp, SourceName: "scan"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Collect(mustObject(t, tt.data))
			if diff := cmp.Diff(tt.want, c.Social); diff != "" {
				t.Errorf("social mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollectStructured(t *testing.T) {
	c := Collect(mustObject(t, `{
		"processed": {
			"personal": {"name": {"first": "Ana", "middle": "M", "last": "Silva"}, "dob": "1980-02-03", "gender": "F"},
			"location": {"latitude": 40.44, "longitude": -79.99, "city": "Pittsburgh", "state": "PA"},
			"vehicles": [{"year": 2015, "make": "Toyota", "model": "Camry"}, "2019 Honda Civic"],
			"carrier": {"name": "T-Mobile", "type": "mobile"},
			"voter": {"party": "Independent", "status": "active"},
			"geo": [40.44, -79.99],
			"addresses": {"current": {"address": "9 Elm St, Erie, PA 16501"}, "previous": [{"street": "1 Oak Ave", "city": "Akron", "zip": "44308"}]}
		}
	}`))

	values := map[profile.Field][]string{
		profile.FieldName:      {"Ana M Silva"},
		profile.FieldFirstName: {"Ana"},
		profile.FieldLastName:  {"Silva"},
		profile.FieldBirthDate: {"1980-02-03"},
		profile.FieldGender:    {"F"},
		profile.FieldVehicle:   {"2015 Toyota Camry", "2019 Honda Civic"},
		profile.FieldCarrier:   {"T-Mobile"},
		profile.FieldParty:     {"Independent"},
	}
	for f, want := range values {
		if diff := cmp.Diff(want, c.Values(f)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", f, diff)
		}
	}

	wantAddr := []profile.Address{
		{City: "Pittsburgh", State: "PA"},
		{Street: "9 Elm St", City: "Erie", State: "PA", PostalCode: "16501"},
		{Street: "1 Oak Ave", City: "Akron", PostalCode: "44308"},
	}
	if diff := cmp.Diff(wantAddr, c.Addresses); diff != "" {
		t.Errorf("addresses mismatch (-want +got):\n%s", diff)
	}
	wantCoords := []profile.Coordinate{{Latitude: 40.44, Longitude: -79.99}}
	if diff := cmp.Diff(wantCoords, c.Coordinates); diff != "" {
		t.Errorf("coordinates mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectLegacySteps(t *testing.T) {
	c := Collect(mustObject(t, `{
		"steps": [
			{"name": "callerid", "success": true, "data": {"cnam": "JOHN SMITH", "lineType": "landline"}},
			{"source": "whatsapp", "success": true, "data": {"registered": false}},
			{"source": "peoplesearch", "success": true, "data": {"people": [{"emails": ["js@aol.com"]}]}},
			{"source": "broken", "success": false, "error": "timeout", "data": {"emails": ["skip@aol.com"]}}
		]
	}`))
	if diff := cmp.Diff([]string{"JOHN SMITH"}, c.Values(profile.FieldName)); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"js@aol.com"}, c.Values(profile.FieldEmail)); diff != "" {
		t.Errorf("emails mismatch (-want +got):\n%s", diff)
	}
	if len(c.Social) != 0 {
		t.Errorf("unregistered whatsapp produced accounts: %+v", c.Social)
	}
	if len(c.Records) != 4 || c.Records[3].Success {
		t.Errorf("records = %+v", c.Records)
	}
}

func TestCollectUnknownKeys(t *testing.T) {
	c := Collect(mustObject(t, `{"foo": 1, "bar": {"baz": [true, null, "x"]}, "qux": null}`))
	for _, f := range []profile.Field{profile.FieldPhone, profile.FieldEmail, profile.FieldName, profile.FieldSSN} {
		if n := c.Len(f); n != 0 {
			t.Errorf("Len(%s) = %d, want 0", f, n)
		}
	}
	if len(c.Social)+len(c.Breaches)+len(c.Addresses)+len(c.Records) != 0 {
		t.Errorf("unexpected candidates: %+v", c)
	}
	if c.First(profile.FieldName) != "" {
		t.Errorf("First(name) = %q, want empty", c.First(profile.FieldName))
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in   string
		want profile.Address
	}{
		{"123 Main St, Pittsburgh, PA 15213", profile.Address{Street: "123 Main St", City: "Pittsburgh", State: "PA", PostalCode: "15213"}},
		{"Apt 4, 77 High St, Boston, MA 02110-1234, USA", profile.Address{Street: "Apt 4, 77 High St", City: "Boston", State: "MA", PostalCode: "02110-1234", Country: "USA"}},
		{"Pittsburgh, PA", profile.Address{City: "Pittsburgh", State: "PA"}},
		{"1 Main St, Springfield", profile.Address{Street: "1 Main St", City: "Springfield"}},
		{"PO Box 12", profile.Address{Street: "PO Box 12"}},
	}
	for _, tt := range tests {
		got, ok := parseAddress(tt.in)
		if !ok {
			t.Errorf("parseAddress(%q) failed", tt.in)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("parseAddress(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
	if _, ok := parseAddress(" , "); ok {
		t.Errorf("parseAddress of blank parts succeeded")
	}
}

func TestNormKey(t *testing.T) {
	for _, k := range []string{"phone_numbers", "Phone-Numbers", "phone numbers", "PHONENUMBERS"} {
		if a, ok := lookupAlias(k); !ok || a.field != profile.FieldPhone {
			t.Errorf("lookupAlias(%q) = %+v, %v", k, a, ok)
		}
	}
}
