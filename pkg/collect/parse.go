package collect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

// personName reads {first, middle, last} or {full} style name objects.
func personName(obj *jsonval.Object) (full, first, last string) {
	first = jsonval.First(obj, "first", "firstName", "first_name", "givenName", "given")
	last = jsonval.First(obj, "last", "lastName", "last_name", "surname", "familyName", "family")
	full = jsonval.First(obj, "full", "fullName", "full_name", "name", "displayName", "display", "value")
	if full == "" {
		parts := []string{first, jsonval.First(obj, "middle", "middleName", "middle_name"), last, jsonval.First(obj, "suffix")}
		full = strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	}
	return full, first, last
}

// employment reads {company, title, industry} style job objects.
func employment(obj *jsonval.Object) (employer, title, industry string) {
	employer = jsonval.First(obj, "company", "companyName", "employer", "employerName", "organization", "organisation", "org", "name")
	title = jsonval.First(obj, "title", "jobTitle", "job_title", "position", "role", "occupation")
	industry = jsonval.First(obj, "industry", "sector")
	return employer, title, industry
}

// vehicle renders {year, make, model} objects as "2015 Toyota Camry".
func vehicle(obj *jsonval.Object) string {
	parts := []string{
		jsonval.First(obj, "year", "modelYear"),
		jsonval.First(obj, "make", "manufacturer", "brand"),
		jsonval.First(obj, "model"),
		jsonval.First(obj, "trim"),
	}
	if s := strings.Join(strings.Fields(strings.Join(parts, " ")), " "); s != "" {
		return s
	}
	return jsonval.First(obj, "description", "name", "value", "vin")
}

// displayText is the text of an object that wraps one displayable value.
func displayText(obj *jsonval.Object) string {
	return jsonval.First(obj, "value", "name", "label", "title", "display", "description", "text")
}

var (
	streetKeys = []string{"street", "streetAddress", "street_address", "address1", "addressLine1", "address_line_1", "line1", "street1", "address"}
	unitKeys   = []string{"address2", "addressLine2", "address_line_2", "line2", "unit", "apt", "apartment"}
	cityKeys   = []string{"city", "locality", "town"}
	stateKeys  = []string{"state", "stateCode", "state_code", "region", "province"}
	postalKeys = []string{"zip", "zipCode", "zip_code", "postalCode", "postal_code", "postcode", "zip5"}
	fullKeys   = []string{"full", "fullAddress", "full_address", "formatted", "formattedAddress", "display", "value", "text"}
)

// addressFrom reads a structured address object. A lone street or full
// field holding "street, city, ST ZIP" is split into parts.
func addressFrom(obj *jsonval.Object) (profile.Address, bool) {
	a := profile.Address{
		Street:     jsonval.First(obj, streetKeys...),
		City:       jsonval.First(obj, cityKeys...),
		State:      jsonval.First(obj, stateKeys...),
		PostalCode: jsonval.First(obj, postalKeys...),
		Country:    jsonval.First(obj, "country", "countryCode", "country_code"),
	}
	if unit := jsonval.First(obj, unitKeys...); unit != "" && a.Street != "" {
		a.Street += ", " + unit
	}
	if a.City == "" && a.State == "" && a.PostalCode == "" {
		s := a.Street
		if s == "" {
			s = jsonval.First(obj, fullKeys...)
		}
		if parsed, ok := parseAddress(s); ok {
			if a.Country != "" && parsed.Country == "" {
				parsed.Country = a.Country
			}
			return parsed, true
		}
	}
	return a, !a.Empty()
}

var stateZip = regexp.MustCompile(`^([A-Za-z][A-Za-z .]*?)?\s*(\d{5}(?:-\d{4})?)?$`)

// parseAddress splits "street, city, ST ZIP[, country]" text.
func parseAddress(s string) (profile.Address, bool) {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			parts = append(parts, p)
		}
	}
	var a profile.Address
	n := len(parts)
	if n >= 4 && !strings.ContainsAny(parts[n-1], "0123456789") {
		if m := stateZip.FindStringSubmatch(parts[n-2]); m != nil && m[2] != "" {
			a.Country = parts[n-1]
			parts, n = parts[:n-1], n-1
		}
	}
	switch n {
	case 0:
		return a, false
	case 1:
		a.Street = parts[0]
	case 2:
		if m := stateZip.FindStringSubmatch(parts[1]); m != nil && (m[2] != "" || len(m[1]) == 2) {
			a.City, a.State, a.PostalCode = parts[0], m[1], m[2]
		} else {
			a.Street, a.City = parts[0], parts[1]
		}
	default:
		a.Street = strings.Join(parts[:n-2], ", ")
		a.City = parts[n-2]
		if m := stateZip.FindStringSubmatch(parts[n-1]); m != nil {
			a.State, a.PostalCode = m[1], m[2]
		} else {
			a.State = parts[n-1]
		}
	}
	return a, !a.Empty()
}

// coordinateFrom reads {lat, lng} style objects.
func coordinateFrom(obj *jsonval.Object) (profile.Coordinate, bool) {
	lat := jsonval.First(obj, "lat", "latitude")
	lng := jsonval.First(obj, "lng", "lon", "long", "longitude")
	return coordinate(lat, lng)
}

// parseCoordinate reads "lat,lng" text.
func parseCoordinate(s string) (profile.Coordinate, bool) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return profile.Coordinate{}, false
	}
	return coordinate(lat, lng)
}

// coordinatePair reads [lat, lng] arrays.
func coordinatePair(arr jsonval.Array) (profile.Coordinate, bool) {
	if len(arr) != 2 {
		return profile.Coordinate{}, false
	}
	if _, ok := jsonval.Unwrap(arr[0]).(jsonval.Number); !ok {
		return profile.Coordinate{}, false
	}
	lat, _ := jsonval.Text(arr[0])
	lng, _ := jsonval.Text(arr[1])
	return coordinate(lat, lng)
}

func coordinate(latText, lngText string) (profile.Coordinate, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(latText), 64)
	if err != nil {
		return profile.Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngText), 64)
	if err != nil {
		return profile.Coordinate{}, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 || (lat == 0 && lng == 0) {
		return profile.Coordinate{}, false
	}
	return profile.Coordinate{Latitude: lat, Longitude: lng}, true
}

var (
	dataKeys         = []string{"data", "result", "response", "payload"}
	stepKey          = regexp.MustCompile(`(?i)^step[\s_-]*\d+[\s_.-]*(.*)$`)
	sourceKeys       = []string{"source", "sourceName", "source_name", "provider"}
	recordSourceKeys = []string{"source", "sourceName", "source_name", "provider", "name", "step"}
)

// recordFrom reads one per-source record such as
// {"source": "callerid", "success": true, "data": {...}}. key names the
// source when the record does not.
func recordFrom(v jsonval.Value, key string) (profile.SourceRecord, bool) {
	obj, ok := jsonval.AsObject(v)
	if !ok {
		return profile.SourceRecord{}, false
	}
	rec := profile.SourceRecord{Success: true}
	hasData := false
	for _, k := range dataKeys {
		if d := obj.Lookup(k); d != nil {
			rec.Data, hasData = d, true
			break
		}
	}
	if hasData {
		rec.Source = jsonval.First(obj, recordSourceKeys...)
	} else {
		rec.Source = jsonval.First(obj, sourceKeys...)
	}
	if rec.Source == "" {
		rec.Source = key
	}
	if rec.Source == "" {
		return profile.SourceRecord{}, false
	}

	status := obj.Lookup("success")
	if b, ok := jsonval.Truthy(status); ok {
		rec.Success = b
	} else if e := obj.Lookup("error"); !jsonval.IsNull(e) {
		if b, ok := jsonval.Truthy(e); !ok || b {
			rec.Success = false
		}
	}

	if !hasData {
		switch {
		case profile.LookupSource(rec.Source) != nil:
			rec.Data = obj
		case status == nil:
			return profile.SourceRecord{}, false
		}
	}
	return rec, true
}
