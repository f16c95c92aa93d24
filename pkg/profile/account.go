package profile

import (
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/platform"
)

var idKeys = []string{"id", "userId", "user_id", "uid", "profileId", "profile_id"}

// AccountFrom reads a social account object such as
// {"platform": "facebook", "id": "1000123", "url": "...", "name": "..."}.
//
// base supplies the platform, source and extraction type used when the
// object does not say otherwise. The extraction type is native_id when
// the object carries an id, curated when it is marked verified, then
// base.ExtractionType, and url otherwise. Without a base extraction type
// an object must carry a URL, id or handle to count as an account.
func AccountFrom(v jsonval.Value, base SocialAccount) (SocialAccount, bool) {
	obj, ok := jsonval.AsObject(v)
	if !ok {
		s, ok := jsonval.Text(v)
		if !ok {
			return SocialAccount{}, false
		}
		if platform.LooksLikeURL(s) {
			return AccountFromURL(s, base)
		}
		if base.Platform == "" && base.ExtractionType != "" {
			// bare platform name in an app list
			base.Platform = platform.Normalize(s)
			return base, base.Platform != ""
		}
		return SocialAccount{}, false
	}

	a := base
	a.URL = jsonval.First(obj, "url", "profileUrl", "profile_url", "link", "href")
	a.ID = jsonval.First(obj, idKeys...)
	a.Username = strings.TrimPrefix(jsonval.First(obj, "username", "handle", "screenName", "screen_name", "login"), "@")
	a.DisplayName = jsonval.First(obj, "displayName", "display_name", "fullName", "full_name")
	a.Photo = jsonval.First(obj, "photo", "avatar", "image", "picture", "profilePic", "profile_pic", "photoUrl")
	a.AvatarHD = jsonval.First(obj, "avatarHd", "avatar_hd", "photoHd", "hdPhoto")
	nativeID := a.ID != ""

	u, fromURL := platform.FromURL(a.URL)
	hint := jsonval.First(obj, "platform", "network", "site", "service")
	switch {
	case base.Platform != "":
	case hint != "":
		a.Platform = hint
	case fromURL:
		a.Platform = u.Platform
	default:
		a.Platform = jsonval.First(obj, "name")
		hint = a.Platform
	}
	if a.DisplayName == "" && hint != "" {
		a.DisplayName = jsonval.First(obj, "name")
		if a.DisplayName == hint {
			a.DisplayName = ""
		}
	}

	a.Platform = platform.Normalize(a.Platform)
	if fromURL && u.Platform == a.Platform {
		if a.Username == "" {
			a.Username = u.Username
		}
		if a.ID == "" {
			a.ID = u.ID
		}
	}
	if a.Platform == "" {
		return SocialAccount{}, false
	}
	if base.ExtractionType == "" && a.URL == "" && a.ID == "" && a.Username == "" {
		return SocialAccount{}, false
	}

	verified, _ := jsonval.Truthy(obj.Lookup("verified"))
	switch {
	case nativeID:
		a.ExtractionType = ExtractionNativeID
	case verified:
		a.ExtractionType = ExtractionCurated
	case base.ExtractionType != "":
		a.ExtractionType = base.ExtractionType
	default:
		a.ExtractionType = ExtractionURL
	}
	return a, true
}

// AccountFromURL builds an account from a profile URL. The extraction
// type defaults to url.
func AccountFromURL(raw string, base SocialAccount) (SocialAccount, bool) {
	u, ok := platform.FromURL(raw)
	if !ok {
		return SocialAccount{}, false
	}
	a := base
	a.Platform = u.Platform
	a.URL = strings.TrimSpace(raw)
	a.Username = u.Username
	a.ID = u.ID
	if a.ExtractionType == "" {
		a.ExtractionType = ExtractionURL
	}
	return a, true
}
