package collect

import (
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/breach"
	"github.com/codeGROOVE-dev/dossier/pkg/htmlutil"
	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/platform"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

// maxDepth bounds recursion into unrecognized containers.
const maxDepth = 24

// walker matches payload keys against the alias table and adds what it
// finds to a Partial. source tags the accounts and breaches it creates.
type walker struct {
	p      *Partial
	source string
}

func (w *walker) object(obj *jsonval.Object, depth int) {
	if obj == nil || depth > maxDepth {
		return
	}
	for k, v := range obj.All() {
		w.key(k, v, depth)
	}
}

func (w *walker) key(k string, v jsonval.Value, depth int) {
	if jsonval.IsNull(v) {
		return
	}
	if a, ok := lookupAlias(k); ok {
		w.aliased(a, v, depth)
		return
	}
	if w.platformKey(k, v, depth) {
		return
	}
	w.descend(v, depth)
}

// descend looks for aliased keys inside an unrecognized container.
func (w *walker) descend(v jsonval.Value, depth int) {
	if depth > maxDepth {
		return
	}
	if obj, ok := jsonval.AsObject(v); ok {
		w.object(obj, depth+1)
		return
	}
	if arr, ok := jsonval.Unwrap(v).(jsonval.Array); ok {
		for _, e := range arr {
			w.descend(e, depth+1)
		}
	}
}

func (w *walker) aliased(a alias, v jsonval.Value, depth int) {
	switch a.kind {
	case kindValue:
		w.values(a.field, v, depth)
	case kindName:
		w.names(a.field, v)
	case kindPhone:
		w.contacts(a.field, v, "number", "phone", "phoneNumber", "phone_number", "e164", "display", "value")
	case kindEmail:
		w.contacts(a.field, v, "address", "email", "emailAddress", "email_address", "value")
	case kindEmployment:
		w.employment(v, depth)
	case kindVehicle:
		for _, e := range jsonval.List(v) {
			if obj, ok := jsonval.AsObject(e); ok {
				w.add(profile.FieldVehicle, vehicle(obj))
				continue
			}
			w.text(profile.FieldVehicle, e)
		}
	case kindAddress:
		w.addresses(v, depth)
	case kindCoordinate:
		w.coordinates(v, depth)
	case kindLocation:
		w.location(v, depth)
	case kindSocial:
		w.social(v, depth)
	case kindApps:
		w.apps(v)
	case kindBreach:
		w.p.Breaches = append(w.p.Breaches, breach.Parse(v, w.source)...)
	case kindRecords:
		w.records(v)
	case kindText:
		for _, s := range jsonval.Strings(v) {
			w.mine(s)
		}
	case kindSection:
		w.descend(v, depth)
	}
}

// add records a value; URLs that point at a social profile also become
// accounts.
func (w *walker) add(f profile.Field, s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	w.p.Add(f, s)
	if f == profile.FieldURL || f == profile.FieldLinkedInProfile {
		if a, ok := profile.AccountFromURL(s, w.base("")); ok {
			w.account(a)
		}
	}
}

func (w *walker) text(f profile.Field, v jsonval.Value) {
	if s, ok := jsonval.Text(v); ok {
		w.add(f, s)
	}
}

func (w *walker) base(platformName string) profile.SocialAccount {
	return profile.SocialAccount{Platform: platformName, SourceName: w.source}
}

func (w *walker) account(a profile.SocialAccount) {
	if a.SourceName == "" {
		a.SourceName = w.source
	}
	w.p.Social = append(w.p.Social, a)
	if a.Platform == "linkedin" && a.URL != "" {
		w.p.Add(profile.FieldLinkedInProfile, a.URL)
	}
}

// values handles plain fields. Objects contribute their display text, or
// are read as a section when they have none.
func (w *walker) values(f profile.Field, v jsonval.Value, depth int) {
	for _, e := range jsonval.List(v) {
		switch t := jsonval.Unwrap(e).(type) {
		case *jsonval.Object:
			if s := displayText(t); s != "" {
				w.add(f, s)
			} else {
				w.object(t, depth+1)
			}
		case jsonval.Array:
			if depth < maxDepth {
				w.values(f, t, depth+1)
			}
		default:
			w.text(f, e)
		}
	}
}

func (w *walker) names(f profile.Field, v jsonval.Value) {
	for _, e := range jsonval.List(v) {
		obj, ok := jsonval.AsObject(e)
		if !ok {
			w.text(f, e)
			continue
		}
		full, first, last := personName(obj)
		w.add(f, full)
		if f == profile.FieldName {
			w.add(profile.FieldFirstName, first)
			w.add(profile.FieldLastName, last)
		}
	}
}

// contacts handles phones and emails, which may be objects holding the
// value under one of keys, or strings listing several values.
func (w *walker) contacts(f profile.Field, v jsonval.Value, keys ...string) {
	for _, e := range jsonval.List(v) {
		if obj, ok := jsonval.AsObject(e); ok {
			w.add(f, jsonval.First(obj, keys...))
			continue
		}
		for _, s := range jsonval.Strings(e) {
			w.add(f, s)
		}
	}
}

func (w *walker) employment(v jsonval.Value, depth int) {
	for _, e := range jsonval.List(v) {
		obj, ok := jsonval.AsObject(e)
		if !ok {
			w.text(profile.FieldEmployer, e)
			continue
		}
		employer, title, industry := employment(obj)
		if employer == "" && title == "" && industry == "" {
			w.object(obj, depth+1)
			continue
		}
		w.add(profile.FieldEmployer, employer)
		w.add(profile.FieldJobTitle, title)
		w.add(profile.FieldIndustry, industry)
	}
}

func (w *walker) addresses(v jsonval.Value, depth int) {
	if depth > maxDepth {
		return
	}
	for _, e := range jsonval.List(v) {
		if s, ok := jsonval.Text(e); ok {
			if a, ok := parseAddress(s); ok {
				w.p.Addresses = append(w.p.Addresses, a)
			}
			continue
		}
		obj, ok := jsonval.AsObject(e)
		if !ok {
			w.addresses(e, depth+1)
			continue
		}
		if a, ok := addressFrom(obj); ok {
			w.p.Addresses = append(w.p.Addresses, a)
			if c, ok := coordinateFrom(obj); ok {
				w.p.Coordinates = append(w.p.Coordinates, c)
			}
			continue
		}
		// {"current": {...}, "previous": [...]}
		for _, inner := range obj.All() {
			w.addresses(inner, depth+1)
		}
	}
}

func (w *walker) coordinates(v jsonval.Value, depth int) {
	if depth > maxDepth {
		return
	}
	if arr, ok := jsonval.Unwrap(v).(jsonval.Array); ok {
		if c, ok := coordinatePair(arr); ok {
			w.p.Coordinates = append(w.p.Coordinates, c)
			return
		}
	}
	for _, e := range jsonval.List(v) {
		switch t := jsonval.Unwrap(e).(type) {
		case *jsonval.Object:
			if c, ok := coordinateFrom(t); ok {
				w.p.Coordinates = append(w.p.Coordinates, c)
			}
		case jsonval.Array:
			w.coordinates(t, depth+1)
		default:
			if s, ok := jsonval.Text(e); ok {
				if c, ok := parseCoordinate(s); ok {
					w.p.Coordinates = append(w.p.Coordinates, c)
				}
			}
		}
	}
}

func (w *walker) location(v jsonval.Value, depth int) {
	for _, e := range jsonval.List(v) {
		obj, ok := jsonval.AsObject(e)
		if !ok {
			w.text(profile.FieldLocation, e)
			continue
		}
		c, hasCoord := coordinateFrom(obj)
		if hasCoord {
			w.p.Coordinates = append(w.p.Coordinates, c)
		}
		if a, ok := addressFrom(obj); ok {
			w.p.Addresses = append(w.p.Addresses, a)
			continue
		}
		if s := displayText(obj); s != "" {
			w.add(profile.FieldLocation, s)
		} else if !hasCoord {
			w.object(obj, depth+1)
		}
	}
}

// accountKeys mark an object as a single account rather than a map of them.
var accountKeys = []string{"platform", "network", "site", "service", "url", "profileUrl", "profile_url", "link", "username", "handle", "screenName"}

func accountShaped(obj *jsonval.Object) bool {
	for _, k := range accountKeys {
		if obj.Lookup(k) != nil {
			return true
		}
	}
	return false
}

// social reads account lists, single accounts, and maps keyed by platform.
func (w *walker) social(v jsonval.Value, depth int) {
	if depth > maxDepth {
		return
	}
	obj, ok := jsonval.AsObject(v)
	if !ok {
		for _, e := range jsonval.List(v) {
			w.socialEntry(e, "", depth)
		}
		return
	}
	if accountShaped(obj) {
		w.socialEntry(obj, "", depth)
		return
	}
	for k, inner := range obj.All() {
		if a, ok := lookupAlias(k); ok && (a.kind == kindSocial || a.kind == kindRecords || a.kind == kindApps) {
			w.aliased(a, inner, depth+1)
			continue
		}
		w.socialEntry(inner, k, depth)
	}
}

// statusKeys are bookkeeping keys found next to platform entries.
var statusKeys = map[string]bool{
	"success": true, "found": true, "exists": true, "error": true, "status": true,
	"verified": true, "cached": true, "partial": true, "complete": true,
}

// socialEntry reads one account. platformName comes from the enclosing
// map key, if any.
func (w *walker) socialEntry(v jsonval.Value, platformName string, depth int) {
	base := w.base(platform.Normalize(platformName))
	switch t := jsonval.Unwrap(v).(type) {
	case nil, jsonval.Null:
	case jsonval.Bool:
		// messaging registration: {"whatsapp": true}
		if bool(t) && base.Platform != "" && !statusKeys[base.Platform] {
			base.ExtractionType = profile.ExtractionApp
			w.account(base)
		}
	case jsonval.Number:
		if knownPlatform(base.Platform) {
			base.ID = string(t)
			base.ExtractionType = profile.ExtractionNativeID
			w.account(base)
		}
	case jsonval.String:
		if base.Platform != "" && !knownPlatform(base.Platform) && !platform.LooksLikeURL(string(t)) {
			return
		}
		w.socialText(strings.TrimSpace(string(t)), base)
	case jsonval.Array:
		if depth < maxDepth {
			for _, e := range t {
				w.socialEntry(e, platformName, depth+1)
			}
		}
	case *jsonval.Object:
		if profile.ReportsNotFound(t) {
			return
		}
		if reg, _ := jsonval.Truthy(t.Lookup("registered")); reg {
			base.ExtractionType = profile.ExtractionApp
		}
		if a, ok := profile.AccountFrom(t, base); ok {
			w.account(a)
		}
	}
}

// socialText reads an account given as a URL or a bare handle.
func (w *walker) socialText(s string, base profile.SocialAccount) {
	switch {
	case s == "":
	case platform.LooksLikeURL(s):
		if a, ok := profile.AccountFromURL(s, base); ok {
			w.account(a)
			return
		}
		if base.Platform != "" {
			base.URL = s
			base.ExtractionType = profile.ExtractionURL
			w.account(base)
		}
	case base.Platform != "":
		base.Username = strings.TrimPrefix(s, "@")
		base.ExtractionType = profile.ExtractionURL
		if u, ok := platform.ProfileURL(base.Platform, base.Username); ok {
			base.URL = u
		}
		w.account(base)
	}
}

// apps reads installed-app lists and registration maps; every account
// found is app-derived unless it carries a native id.
func (w *walker) apps(v jsonval.Value) {
	base := w.base("")
	base.ExtractionType = profile.ExtractionApp
	for _, e := range jsonval.List(v) {
		obj, ok := jsonval.AsObject(e)
		if ok && !accountShaped(obj) && obj.Lookup("name") == nil {
			for k, inner := range obj.All() {
				b := base
				b.Platform = platform.Normalize(k)
				if reg, ok := jsonval.Truthy(inner); ok {
					if reg && b.Platform != "" {
						w.account(b)
					}
					continue
				}
				if details, ok := jsonval.AsObject(inner); ok && !profile.ReportsNotFound(details) {
					if a, ok := profile.AccountFrom(details, b); ok {
						w.account(a)
					}
				}
			}
			continue
		}
		if a, ok := profile.AccountFrom(e, base); ok {
			w.account(a)
		}
	}
}

// platformKey handles keys that name a platform, such as "facebook",
// "facebookId", "instagramUrl" or "twitterHandle".
func (w *walker) platformKey(k string, v jsonval.Value, depth int) bool {
	nk := normKey(k)
	if knownPlatform(nk) {
		w.socialEntry(v, nk, depth)
		return true
	}
	s, ok := jsonval.Text(v)
	if !ok {
		return false
	}
	s = strings.TrimSpace(s)
	for _, suf := range []string{"userid", "profileid", "uid", "id"} {
		if p, ok := strings.CutSuffix(nk, suf); ok && knownPlatform(p) {
			if s != "" {
				a := w.base(platform.Normalize(p))
				a.ID = s
				a.ExtractionType = profile.ExtractionNativeID
				w.account(a)
			}
			return true
		}
	}
	for _, suf := range []string{"profileurl", "url", "profile", "link", "username", "handle", "user"} {
		if p, ok := strings.CutSuffix(nk, suf); ok && knownPlatform(p) {
			w.socialText(s, w.base(platform.Normalize(p)))
			return true
		}
	}
	return false
}

// knownPlatform guards against short keys like "x" or "ig" that are
// rarely platform names in practice.
func knownPlatform(k string) bool {
	return len(k) > 2 && platform.Known(k)
}

// records reads per-source records from a list or a map keyed by source.
func (w *walker) records(v jsonval.Value) {
	if obj, ok := jsonval.AsObject(v); ok && recordMap(obj) {
		for k, inner := range obj.All() {
			if rec, ok := recordFrom(inner, k); ok {
				w.record(rec)
				continue
			}
			// bare data of an unregistered source
			unknown := walker{p: w.p, source: k}
			unknown.descend(inner, 0)
		}
		return
	}
	for _, e := range jsonval.List(v) {
		if rec, ok := recordFrom(e, ""); ok {
			w.record(rec)
		}
	}
}

// recordMap reports whether obj maps source names to records rather than
// being a record itself.
func recordMap(obj *jsonval.Object) bool {
	for _, k := range dataKeys {
		if obj.Lookup(k) != nil {
			return false
		}
	}
	return jsonval.First(obj, sourceKeys...) == ""
}

// record keeps rec and adds its candidates. Registered sources contribute
// through their Source implementation; unknown sources are walked.
func (w *walker) record(rec profile.SourceRecord) {
	w.p.Records = append(w.p.Records, rec)
	if !rec.Success || jsonval.IsNull(rec.Data) || profile.ReportsNotFound(rec.Data) {
		return
	}
	switch src := profile.LookupSource(rec.Source).(type) {
	case nil:
		inner := walker{p: w.p, source: rec.Source}
		inner.descend(rec.Data, 0)
	case profile.AuxiliarySource:
		w.p.Aux = append(w.p.Aux, src.Accounts(rec.Data)...)
	default:
		c := src.Contribute(rec.Data)
		for i := range c.Social {
			if c.Social[i].SourceName == "" {
				c.Social[i].SourceName = rec.Source
			}
		}
		w.p.Merge(c)
	}
}

// mine pulls emails, phones and profile links out of free text.
func (w *walker) mine(s string) {
	for _, e := range htmlutil.EmailAddresses(s) {
		w.add(profile.FieldEmail, e)
	}
	for _, p := range htmlutil.PhoneNumbers(s) {
		w.add(profile.FieldPhone, p)
	}
	for _, u := range htmlutil.ProfileLinks(s) {
		if a, ok := profile.AccountFromURL(u, w.base("")); ok {
			w.account(a)
		}
	}
}
