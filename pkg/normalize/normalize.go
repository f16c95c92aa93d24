// Package normalize turns per-source records into display-ready platform
// records.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/platform"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

// completeSuffix marks a record that supersedes the record of its base source.
const completeSuffix = "_complete"

// Records normalizes source records in payload order. The first record of
// each source wins, a displayable "<source>_complete" record hides its base
// source, and records that explicitly report the subject was not found are
// dropped. Records bound to a platform borrow a missing photo from aux.
func Records(recs []profile.SourceRecord, aux []profile.SocialAccount) []profile.PlatformRecord {
	var kept []profile.SourceRecord
	seen := make(map[string]bool)
	shown := make(map[string]bool)
	for _, r := range recs {
		key := sourceKey(r.Source)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, r)
		if !profile.ReportsNotFound(r.Data) {
			shown[key] = true
		}
	}

	out := make([]profile.PlatformRecord, 0, len(kept))
	for _, r := range kept {
		key := sourceKey(r.Source)
		if shown[key+completeSuffix] {
			continue
		}
		if !shown[key] {
			continue
		}
		out = append(out, project(r, aux))
	}
	return out
}

func sourceKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// project renders one record with the projector of its base source.
func project(r profile.SourceRecord, aux []profile.SocialAccount) profile.PlatformRecord {
	name := strings.TrimSpace(r.Source)
	base := name
	if strings.HasSuffix(sourceKey(name), completeSuffix) {
		base = name[:len(name)-len(completeSuffix)]
	}
	pr := profile.PlatformRecord{Source: name, Success: r.Success}

	src := profile.LookupSource(base)
	if src == nil || !r.Success {
		pr.DisplayName = DisplayName(base)
		if src != nil {
			pr.DisplayName = src.DisplayName()
		}
		pr.Data = passthrough(r.Data)
		return pr
	}

	pr.DisplayName = src.DisplayName()
	pr.Data = src.Project(r.Data)
	if pr.Data == nil {
		pr.Data = map[string]any{}
	}
	if p := src.Platform(); p != "" {
		if s, _ := pr.Data["photo"].(string); s == "" {
			if photo := auxPhoto(aux, p); photo != "" {
				pr.Data["photo"] = photo
			}
		}
	}
	return pr
}

// passthrough returns the unwrapped raw data of a record no projector knows.
func passthrough(v jsonval.Value) map[string]any {
	switch t := jsonval.ToAny(jsonval.Unwrap(v)).(type) {
	case map[string]any:
		return t
	case nil:
		return map[string]any{}
	default:
		return map[string]any{"value": t}
	}
}

func auxPhoto(aux []profile.SocialAccount, p string) string {
	for _, a := range aux {
		if platform.Normalize(a.Platform) != p {
			continue
		}
		if a.Photo != "" {
			return a.Photo
		}
		if a.AvatarHD != "" {
			return a.AvatarHD
		}
	}
	return ""
}

// DisplayName turns a source identifier such as "people_search" into a
// label ("People Search").
func DisplayName(source string) string {
	s := strings.Join(strings.FieldsFunc(source, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	}), " ")
	return cases.Title(language.Und).String(s)
}
