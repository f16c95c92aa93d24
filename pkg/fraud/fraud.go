// Package fraud reads fraud-scoring records (IPQS, SEON, EmailRep and similar).
//
// Besides a risk score these sources often report which online services an
// email or phone is registered with; those registrations become app-level
// social accounts.
package fraud

import (
	"strconv"
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/platform"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

const name = "fraud"

type source struct{}

func (source) Name() string        { return name }
func (source) DisplayName() string { return "Fraud Score" }
func (source) Platform() string    { return "" }

func (source) Match(n string) bool {
	for _, k := range []string{"fraud", "ipqs", "ipqualityscore", "seon", "emailrep", "risk"} {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

func init() { profile.Register(source{}) }

// Report is the risk summary of one record.
type Report struct {
	Score       string
	Level       string
	Disposable  *bool
	RecentAbuse *bool
	Valid       *bool
	Leaked      *bool
}

func read(data jsonval.Value) Report {
	r := Report{
		Score: jsonval.First(data, "fraudScore", "fraud_score", "riskScore", "risk_score", "score"),
		Level: jsonval.First(data, "riskLevel", "risk_level", "risk"),
	}
	obj, _ := jsonval.AsObject(data)
	flag := func(keys ...string) *bool {
		for _, k := range keys {
			if b, ok := jsonval.Truthy(obj.Lookup(k)); ok {
				return &b
			}
		}
		return nil
	}
	r.Disposable = flag("disposable", "isDisposable")
	r.RecentAbuse = flag("recentAbuse", "recent_abuse")
	r.Valid = flag("valid", "isValid")
	r.Leaked = flag("leaked", "dataBreach", "data_breach")
	if r.Level == "" {
		r.Level = Level(r.Score)
	}
	return r
}

// Level buckets a 0-100 fraud score into low, medium, high or critical.
// It returns "" for non-numeric scores.
func Level(score string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
	if err != nil {
		return ""
	}
	switch {
	case f >= 90:
		return "critical"
	case f >= 75:
		return "high"
	case f >= 50:
		return "medium"
	default:
		return "low"
	}
}

func (source) Project(data jsonval.Value) map[string]any {
	r := read(data)
	out := map[string]any{
		"riskScore": r.Score,
		"riskLevel": r.Level,
	}
	for k, v := range map[string]*bool{
		"disposable":  r.Disposable,
		"recentAbuse": r.RecentAbuse,
		"valid":       r.Valid,
		"leaked":      r.Leaked,
	} {
		if v != nil {
			out[k] = *v
		}
	}
	var services []any
	for _, a := range registrations(data) {
		services = append(services, a.Platform)
	}
	if len(services) > 0 {
		out["registeredServices"] = services
	}
	return out
}

func (source) Contribute(data jsonval.Value) profile.Contribution {
	r := read(data)
	var c profile.Contribution
	c.Add(profile.FieldRiskScore, r.Score)
	c.Add(profile.FieldRiskLevel, r.Level)
	c.Add(profile.FieldCarrier, jsonval.First(data, "carrier"))
	c.Add(profile.FieldLineType, jsonval.First(data, "lineType", "line_type"))
	c.Add(profile.FieldIP, jsonval.First(data, "ip", "ipAddress", "ip_address"))
	c.Social = registrations(data)
	return c
}

// registrations reads service-registration maps such as
// {"account_details": {"facebook": {"registered": true, "url": "..."}}}.
func registrations(data jsonval.Value) []profile.SocialAccount {
	var out []profile.SocialAccount
	for _, k := range []string{"accountDetails", "account_details", "accounts", "profiles", "registrations"} {
		obj, ok := jsonval.AsObject(jsonval.Lookup(data, k))
		if !ok {
			continue
		}
		for svc, v := range obj.All() {
			details, _ := jsonval.AsObject(v)
			if reg, ok := jsonval.Truthy(v); ok && !reg {
				continue
			}
			if details != nil && profile.ReportsNotFound(details) {
				continue
			}
			if details != nil {
				if reg, ok := jsonval.Truthy(details.Lookup("registered")); !ok || !reg {
					continue
				}
			}
			base := profile.SocialAccount{
				Platform:       platform.Normalize(svc),
				ExtractionType: profile.ExtractionApp,
				SourceName:     name,
			}
			if details == nil {
				out = append(out, base)
				continue
			}
			if a, ok := profile.AccountFrom(details, base); ok {
				out = append(out, a)
			}
		}
	}
	return out
}
