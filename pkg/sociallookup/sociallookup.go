// Package sociallookup reads the auxiliary social lookup source.
//
// Its accounts are only used to fill photos, handles and URLs on accounts
// that other sources already established; it never introduces accounts.
package sociallookup

import (
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

// Name is the canonical source name.
const Name = "social_lookup"

type source struct{}

var _ profile.AuxiliarySource = source{}

func (source) Name() string        { return Name }
func (source) DisplayName() string { return "Social Lookup" }
func (source) Platform() string    { return "" }

func (source) Match(n string) bool {
	n = strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(n))
	return strings.HasPrefix(n, "sociallookup") || n == "socialprofiles" || n == "socialscan"
}

func init() { profile.Register(source{}) }

var listKeys = []string{"accounts", "profiles", "socialProfiles", "social_profiles", "results"}

// Accounts returns every account the record describes, in record order.
func (source) Accounts(data jsonval.Value) []profile.SocialAccount {
	var out []profile.SocialAccount
	// Accounts only enrich, so one that carries nothing but a photo is
	// still worth returning.
	base := profile.SocialAccount{SourceName: Name, ExtractionType: profile.ExtractionURL}
	add := func(v jsonval.Value, platformName string) {
		b := base
		b.Platform = platformName
		if a, ok := profile.AccountFrom(v, b); ok {
			out = append(out, a)
		}
	}

	obj, ok := jsonval.AsObject(data)
	if !ok {
		for _, e := range jsonval.List(data) {
			add(e, "")
		}
		return out
	}
	for _, k := range listKeys {
		inner := obj.Lookup(k)
		if inner == nil {
			continue
		}
		if m, ok := jsonval.AsObject(inner); ok {
			// keyed by platform: {"facebook": {...}, "instagram": {...}}
			for p, v := range m.All() {
				add(v, p)
			}
			return out
		}
		for _, e := range jsonval.List(inner) {
			add(e, "")
		}
		return out
	}
	return out
}

func (s source) Project(data jsonval.Value) map[string]any {
	accounts := s.Accounts(data)
	list := make([]any, 0, len(accounts))
	for _, a := range accounts {
		list = append(list, map[string]any{
			"platform":    a.Platform,
			"username":    a.Username,
			"url":         a.URL,
			"displayName": a.DisplayName,
			"photo":       a.Photo,
		})
	}
	return map[string]any{"accounts": list, "count": len(accounts)}
}

// Contribute adds nothing; see Accounts.
func (source) Contribute(jsonval.Value) profile.Contribution {
	return profile.Contribution{}
}
