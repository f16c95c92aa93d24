package collect

import (
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

// consolidated reads the newest payload generation: one pre-merged object
// under "consolidated" or "data.consolidated".
type consolidated struct{}

func (consolidated) Name() string { return "consolidated" }

func (consolidated) Claims(k string, v jsonval.Value) bool {
	switch normKey(k) {
	case "consolidated", "consolidateddata":
		return true
	case "data":
		_, ok := jsonval.AsObject(jsonval.Lookup(v, "consolidated"))
		return ok
	}
	return false
}

// Split keeps only "consolidated" out of a claimed "data" object; its
// siblings stay available to later generations.
func (consolidated) Split(k string, v jsonval.Value) (claimed, rest jsonval.Value) {
	if normKey(k) != "data" {
		return v, nil
	}
	obj, _ := jsonval.AsObject(v)
	key := "consolidated"
	if !obj.Has(key) {
		for _, ik := range obj.Keys() {
			if strings.EqualFold(ik, key) {
				key = ik
				break
			}
		}
	}
	left := jsonval.NewObject()
	for ik, iv := range obj.All() {
		if ik != key {
			left.Set(ik, iv)
		}
	}
	if left.Len() == 0 {
		return obj.Lookup(key), nil
	}
	return obj.Lookup(key), left
}

func (e consolidated) Extract(claimed *jsonval.Object) (Partial, bool) {
	var p Partial
	w := walker{p: &p, source: e.Name()}
	for _, v := range claimed.All() {
		w.descend(v, 0)
	}
	return p, !p.Empty()
}

// processed reads the generation that groups fields into sections
// ("personal", "contact", ...) under "processed", along with the newer
// top-level "platforms" record list.
type processed struct{}

func (processed) Name() string { return "processed" }

func (processed) Claims(k string, v jsonval.Value) bool {
	switch normKey(k) {
	case "processed", "processeddata":
		return true
	case "platforms":
		_, isList := jsonval.Unwrap(v).(jsonval.Array)
		return isList
	}
	return false
}

func (e processed) Extract(claimed *jsonval.Object) (Partial, bool) {
	var p Partial
	w := walker{p: &p, source: e.Name()}
	for k, v := range claimed.All() {
		if normKey(k) == "platforms" {
			w.records(v)
			continue
		}
		w.descend(v, 0)
	}
	return p, !p.Empty()
}

// legacy reads per-step results: a "results" map of source to record, a
// "steps" list, and top-level "stepN..." keys.
type legacy struct{}

func (legacy) Name() string { return "legacy" }

func (legacy) Claims(k string, _ jsonval.Value) bool {
	switch normKey(k) {
	case "results", "steps", "stepresults":
		return true
	}
	return stepKey.MatchString(k)
}

func (e legacy) Extract(claimed *jsonval.Object) (Partial, bool) {
	var p Partial
	w := walker{p: &p, source: e.Name()}
	for k, v := range claimed.All() {
		m := stepKey.FindStringSubmatch(k)
		if m == nil {
			w.records(v)
			continue
		}
		name := strings.TrimSpace(m[1])
		if rec, ok := recordFrom(v, name); ok {
			w.record(rec)
			continue
		}
		if obj, ok := jsonval.AsObject(v); ok {
			if name == "" {
				name = k
			}
			w.record(profile.SourceRecord{Source: name, Data: obj, Success: true})
		}
	}
	return p, !p.Empty()
}

// scan reads whatever no other generation claimed. Keys naming a
// registered source become records; everything else is matched against
// the alias table at any depth.
type scan struct{}

func (scan) Name() string { return "scan" }

func (scan) Claims(string, jsonval.Value) bool { return true }

func (e scan) Extract(claimed *jsonval.Object) (Partial, bool) {
	var p Partial
	w := walker{p: &p, source: e.Name()}
	for k, v := range claimed.All() {
		if _, ok := lookupAlias(k); !ok && profile.LookupSource(k) != nil {
			if obj, ok := jsonval.AsObject(v); ok {
				rec, ok := recordFrom(obj, k)
				if !ok {
					rec = profile.SourceRecord{Source: k, Data: obj, Success: true}
				}
				w.record(rec)
				continue
			}
		}
		w.key(k, v, 0)
	}
	return p, !p.Empty()
}
