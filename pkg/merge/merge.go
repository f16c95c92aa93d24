// Package merge collapses duplicate accounts, addresses and breaches.
//
// Every function returns new slices and leaves its inputs untouched.
package merge

import (
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/platform"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

// Accounts keeps one account per normalized platform. A candidate with a
// higher extraction rank replaces the kept one; on equal rank the first
// wins. Output is ordered by the first appearance of each platform.
func Accounts(accounts []profile.SocialAccount) []profile.SocialAccount {
	out := make([]profile.SocialAccount, 0, len(accounts))
	at := make(map[string]int)
	for _, a := range accounts {
		key := platform.Normalize(a.Platform)
		if key == "" {
			continue
		}
		a.Platform = key
		i, ok := at[key]
		if !ok {
			at[key] = len(out)
			out = append(out, a)
			continue
		}
		if a.ExtractionType.Rank() > out[i].ExtractionType.Rank() {
			out[i] = a
		}
	}
	return out
}

// Enrich fills empty fields of accounts from auxiliary accounts on the same
// platform. It never adds accounts and never overwrites a populated field.
func Enrich(accounts, aux []profile.SocialAccount) []profile.SocialAccount {
	out := make([]profile.SocialAccount, len(accounts))
	copy(out, accounts)
	if len(aux) == 0 {
		return out
	}
	byPlatform := make(map[string][]profile.SocialAccount)
	for _, a := range aux {
		key := platform.Normalize(a.Platform)
		byPlatform[key] = append(byPlatform[key], a)
	}
	for i := range out {
		a := &out[i]
		for _, x := range byPlatform[platform.Normalize(a.Platform)] {
			fill(&a.Username, x.Username)
			fill(&a.URL, x.URL)
			fill(&a.ID, x.ID)
			fill(&a.DisplayName, x.DisplayName)
			fill(&a.Photo, x.Photo)
			fill(&a.AvatarHD, x.AvatarHD)
		}
	}
	return out
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = strings.TrimSpace(v)
	}
}

// Addresses merges addresses with the same (street, city, state, postal
// code) key, keeping the first non-empty value of every field.
func Addresses(addrs []profile.Address) []profile.Address {
	out := make([]profile.Address, 0, len(addrs))
	at := make(map[string]int)
	for _, a := range addrs {
		a = trimAddress(a)
		if a.Empty() {
			continue
		}
		key := a.Key()
		i, ok := at[key]
		if !ok {
			at[key] = len(out)
			out = append(out, a)
			continue
		}
		kept := &out[i]
		fill(&kept.Street, a.Street)
		fill(&kept.City, a.City)
		fill(&kept.State, a.State)
		fill(&kept.PostalCode, a.PostalCode)
		fill(&kept.Country, a.Country)
	}
	return out
}

func trimAddress(a profile.Address) profile.Address {
	return profile.Address{
		Street:     strings.TrimSpace(a.Street),
		City:       strings.TrimSpace(a.City),
		State:      strings.TrimSpace(a.State),
		PostalCode: strings.TrimSpace(a.PostalCode),
		Country:    strings.TrimSpace(a.Country),
	}
}

// Breaches keeps one record per case-insensitive breach name. Input order
// is generation priority, so the first record is kept; later duplicates
// add their sources and fill fields the kept record lacks.
func Breaches(records []profile.BreachRecord) []profile.BreachRecord {
	out := make([]profile.BreachRecord, 0, len(records))
	at := make(map[string]int)
	for _, b := range records {
		key := b.Key()
		if key == "" {
			continue
		}
		i, ok := at[key]
		if !ok {
			at[key] = len(out)
			b.Name = strings.TrimSpace(b.Name)
			b.DataClasses = union(nil, b.DataClasses)
			b.Sources = union(nil, b.Sources)
			out = append(out, b)
			continue
		}
		kept := &out[i]
		kept.Sources = union(kept.Sources, b.Sources)
		fill(&kept.Description, b.Description)
		fill(&kept.BreachDate, b.BreachDate)
		if kept.RecordCount == 0 {
			kept.RecordCount = b.RecordCount
		}
		if len(kept.DataClasses) == 0 {
			kept.DataClasses = union(nil, b.DataClasses)
		}
	}
	return out
}

// union appends the values of add missing from base, comparing
// case-insensitively. The result is never nil.
func union(base, add []string) []string {
	out := make([]string, 0, len(base)+len(add))
	seen := make(map[string]bool, len(base)+len(add))
	for _, list := range [][]string{base, add} {
		for _, s := range list {
			s = strings.TrimSpace(s)
			k := strings.ToLower(s)
			if s == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, s)
		}
	}
	return out
}
