// Package callerid reads caller-ID and carrier lookup records.
package callerid

import (
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

const name = "callerid"

type source struct{}

func (source) Name() string        { return name }
func (source) DisplayName() string { return "Caller ID" }
func (source) Platform() string    { return "" }

func (source) Match(n string) bool {
	for _, k := range []string{"callerid", "caller_id", "caller-id", "cnam", "truecaller", "numverify", "carrier", "phone_lookup", "phonelookup"} {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

type fields struct {
	name, carrier, lineType, location, spamScore, country string
}

func read(data jsonval.Value) fields {
	return fields{
		name:      jsonval.First(data, "callerName", "caller_name", "cnam", "name", "fullName"),
		carrier:   jsonval.First(data, "carrier", "carrierName", "carrier_name", "operator", "network"),
		lineType:  jsonval.First(data, "lineType", "line_type", "phoneType", "phone_type", "type"),
		location:  location(data),
		spamScore: jsonval.First(data, "spamScore", "spam_score", "spam"),
		country:   jsonval.First(data, "countryCode", "country_code", "country"),
	}
}

func location(data jsonval.Value) string {
	if loc := jsonval.First(data, "location", "region_name", "geo"); loc != "" {
		return loc
	}
	var parts []string
	for _, k := range []string{"city", "state", "region"} {
		if s := jsonval.First(data, k); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func (source) Project(data jsonval.Value) map[string]any {
	f := read(data)
	out := map[string]any{
		"name":     f.name,
		"carrier":  f.carrier,
		"lineType": f.lineType,
		"location": f.location,
	}
	if f.country != "" {
		out["country"] = f.country
	}
	if f.spamScore != "" {
		out["spamScore"] = f.spamScore
	}
	return out
}

func (source) Contribute(data jsonval.Value) profile.Contribution {
	f := read(data)
	var c profile.Contribution
	c.Add(profile.FieldName, f.name)
	c.Add(profile.FieldCarrier, f.carrier)
	c.Add(profile.FieldLineType, f.lineType)
	c.Add(profile.FieldLocation, f.location)
	c.Add(profile.FieldPhone, jsonval.First(data, "number", "phone", "phoneNumber", "e164", "international_format"))
	return c
}

func init() { profile.Register(source{}) }
