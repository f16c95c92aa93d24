// Package breach reads records from breach-database sources.
package breach

import (
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

const name = "breach"

// source implements profile.Source for breach databases.
type source struct{}

func (source) Name() string        { return name }
func (source) DisplayName() string { return "Breach Database" }
func (source) Platform() string    { return "" }

func (source) Match(n string) bool {
	for _, k := range []string{"breach", "hibp", "haveibeenpwned", "pwned", "leak", "dehashed", "snusbase"} {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

func (source) Project(data jsonval.Value) map[string]any {
	records := Parse(data, name)
	breaches := make([]any, 0, len(records))
	var total int64
	for _, b := range records {
		total += b.RecordCount
		breaches = append(breaches, map[string]any{
			"name":        b.Name,
			"description": b.Description,
			"breachDate":  b.BreachDate,
			"recordCount": b.RecordCount,
			"dataClasses": b.DataClasses,
		})
	}
	return map[string]any{
		"breaches":     breaches,
		"count":        len(records),
		"totalRecords": total,
	}
}

func (source) Contribute(data jsonval.Value) profile.Contribution {
	var c profile.Contribution
	c.Breaches = Parse(data, name)
	// Credentials and addresses are taken whole; a comma may be part of a password.
	c.Add(profile.FieldLeakedPassword, texts(jsonval.Lookup(data, "passwords"))...)
	c.Add(profile.FieldLeakedPassword, texts(jsonval.Lookup(data, "leakedPasswords"))...)
	c.Add(profile.FieldLoginIP, texts(jsonval.Lookup(data, "ips"))...)
	c.Add(profile.FieldLoginIP, texts(jsonval.Lookup(data, "lastLoginIp"))...)
	return c
}

// texts returns the non-blank scalar elements of v, one value each.
func texts(v jsonval.Value) []string {
	var out []string
	for _, e := range jsonval.List(v) {
		if s, ok := jsonval.Text(e); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func init() { profile.Register(source{}) }

// listKeys hold breach lists inside a wrapper object.
var listKeys = []string{"breaches", "breachList", "breach_list", "breachDetails", "results", "data", "items"}

// Parse reads breach records from any of the shapes sources use: a list of
// breach objects or names, an object holding such a list, or a single
// breach object. Each record is tagged with src.
func Parse(v jsonval.Value, src string) []profile.BreachRecord {
	v = jsonval.Unwrap(v)
	if obj, ok := jsonval.AsObject(v); ok {
		for _, k := range listKeys {
			if inner := obj.Lookup(k); inner != nil {
				if _, isList := inner.(jsonval.Array); isList {
					return Parse(inner, src)
				}
				if innerObj, ok := jsonval.AsObject(inner); ok && k != "data" {
					return Parse(innerObj, src)
				}
			}
		}
		if b, ok := Record(obj, src); ok {
			return []profile.BreachRecord{b}
		}
		return nil
	}

	var out []profile.BreachRecord
	for _, e := range jsonval.List(v) {
		if b, ok := Record(e, src); ok {
			out = append(out, b)
		}
	}
	return out
}

// Record reads one breach. Plain strings are taken as breach names.
func Record(v jsonval.Value, src string) (profile.BreachRecord, bool) {
	b := profile.BreachRecord{DataClasses: []string{}, Sources: []string{}}
	if src != "" {
		b.Sources = append(b.Sources, src)
	}
	if s, ok := jsonval.Text(v); ok {
		b.Name = strings.TrimSpace(s)
		return b, b.Name != ""
	}
	obj, ok := jsonval.AsObject(v)
	if !ok {
		return profile.BreachRecord{}, false
	}

	b.Name = jsonval.First(obj, "name", "title", "breach", "breachName", "site", "domain", "database")
	if b.Name == "" {
		return profile.BreachRecord{}, false
	}
	b.Description = jsonval.First(obj, "description", "desc", "summary")
	b.BreachDate = jsonval.First(obj, "breachDate", "breach_date", "date", "addedDate", "added_date")
	for _, k := range []string{"recordCount", "record_count", "pwnCount", "pwn_count", "records", "count", "entries"} {
		if n, ok := jsonval.Int(obj.Lookup(k)); ok {
			b.RecordCount = n
			break
		}
	}
	for _, k := range []string{"dataClasses", "data_classes", "compromisedData", "fields", "dataTypes"} {
		if classes := jsonval.Strings(obj.Lookup(k)); len(classes) > 0 {
			b.DataClasses = classes
			break
		}
	}
	return b, true
}
