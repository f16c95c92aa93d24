package merge

import (
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

// Fragment is supplementary account data produced after a profile was
// assembled, such as avatars fetched by an enrichment pass.
type Fragment struct {
	// Accounts compete with the profile's accounts under the usual
	// precedence rules.
	Accounts []profile.SocialAccount
	// Aux only fills empty fields of accounts already present.
	Aux []profile.SocialAccount
	// MaxEntries caps the merged account list. Zero means
	// profile.DefaultMaxEntries.
	MaxEntries int
}

// Empty reports whether f carries nothing to merge.
func (f Fragment) Empty() bool {
	return len(f.Accounts) == 0 && len(f.Aux) == 0
}

// Apply returns a copy of p with f merged into its social accounts.
// p is not modified.
func Apply(p *profile.Profile, f Fragment) *profile.Profile {
	out := p.Clone()
	if f.Empty() {
		return out
	}
	limit := f.MaxEntries
	if limit <= 0 {
		limit = profile.DefaultMaxEntries
	}
	all := make([]profile.SocialAccount, 0, len(p.SocialMedia.Accounts)+len(f.Accounts))
	all = append(all, p.SocialMedia.Accounts...)
	all = append(all, f.Accounts...)
	accounts := Enrich(Accounts(all), f.Aux)
	if len(accounts) > limit {
		accounts = accounts[:limit]
	}
	out.SocialMedia.Accounts = accounts
	return out
}
