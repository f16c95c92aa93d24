// Package linkedin reads professional-network search records.
//
// Upstream either returns a resolved profile object or a list of search
// hits ({title, url, snippet}); both are reduced to the same fields.
package linkedin

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

const platform = "linkedin"

// source implements profile.Source for LinkedIn lookups.
type source struct{}

func (source) Name() string        { return platform }
func (source) DisplayName() string { return "LinkedIn" }
func (source) Platform() string    { return platform }

func (source) Match(name string) bool {
	return strings.Contains(strings.ToLower(name), "linkedin")
}

func init() { profile.Register(source{}) }

// Member is what a record says about the profile owner.
type Member struct {
	Name     string
	Headline string
	Title    string
	Company  string
	Location string
	URL      string
	PublicID string
	Photo    string
}

var profileURLPattern = regexp.MustCompile(`(?i)linkedin\.com/(?:in|pub)/`)

// isDirectProfileURL reports whether u points at a member profile rather than a company or post.
func isDirectProfileURL(u string) bool {
	return profileURLPattern.MatchString(u)
}

// read returns the first member described by data.
func read(data jsonval.Value) (Member, bool) {
	obj, ok := jsonval.AsObject(data)
	if !ok {
		return Member{}, false
	}
	for _, k := range []string{"results", "profiles", "hits", "items"} {
		for _, hit := range jsonval.List(obj.Lookup(k)) {
			if m, ok := read(hit); ok {
				return m, true
			}
		}
	}

	m := Member{
		Name:     jsonval.First(obj, "fullName", "full_name", "name"),
		Headline: jsonval.First(obj, "headline", "occupation", "summary"),
		Title:    jsonval.First(obj, "title", "jobTitle", "job_title", "position"),
		Company:  jsonval.First(obj, "company", "companyName", "company_name", "employer", "organization"),
		Location: jsonval.First(obj, "location", "locationName", "geo"),
		URL:      jsonval.First(obj, "profileUrl", "profile_url", "url", "link"),
		PublicID: jsonval.First(obj, "publicIdentifier", "public_identifier", "publicId", "vanityName"),
		Photo:    jsonval.First(obj, "photo", "profilePicture", "profile_picture", "picture", "avatar", "image"),
	}
	if m.URL != "" && !isDirectProfileURL(m.URL) {
		return Member{}, false
	}
	// Search hits carry "Name - Headline | LinkedIn" in the title field.
	if m.Name == "" && strings.Contains(strings.ToLower(m.Title), "linkedin") {
		m.Name, m.Headline = parseTitle(m.Title)
		m.Title = ""
	}
	if m.Headline == "" {
		m.Headline = jsonval.First(obj, "snippet", "description")
	}
	if m.Title == "" {
		m.Title = titleFromHeadline(m.Headline)
	}
	if m.Company == "" {
		m.Company = extractCompany(m.Headline)
	}
	if m.PublicID == "" {
		m.PublicID = extractPublicID(m.URL)
	}
	if m.URL == "" && m.PublicID != "" {
		m.URL = "https://www.linkedin.com/in/" + m.PublicID
	}
	return m, m.Name != "" || m.URL != ""
}

func (source) Project(data jsonval.Value) map[string]any {
	m, _ := read(data)
	return map[string]any{
		"name":     m.Name,
		"headline": m.Headline,
		"title":    m.Title,
		"company":  m.Company,
		"location": m.Location,
		"url":      m.URL,
		"photo":    m.Photo,
	}
}

func (source) Contribute(data jsonval.Value) profile.Contribution {
	var c profile.Contribution
	m, ok := read(data)
	if !ok || profile.ReportsNotFound(data) {
		return c
	}
	c.Add(profile.FieldName, m.Name)
	c.Add(profile.FieldJobTitle, m.Title)
	c.Add(profile.FieldEmployer, m.Company)
	c.Add(profile.FieldLinkedInProfile, m.URL)

	acct := profile.SocialAccount{
		Platform:       platform,
		URL:            m.URL,
		Username:       m.PublicID,
		DisplayName:    m.Name,
		Photo:          m.Photo,
		ExtractionType: profile.ExtractionURL,
		SourceName:     platform,
	}
	if id := jsonval.First(data, "memberUrn", "member_urn", "entityUrn", "id"); id != "" {
		acct.ID = id
		acct.ExtractionType = profile.ExtractionNativeID
	}
	if acct.URL != "" || acct.ID != "" {
		c.Social = append(c.Social, acct)
	}
	return c
}

// parseTitle splits a search title like "Jane Doe - Acme, Inc | LinkedIn"
// into name and headline.
func parseTitle(title string) (name, headline string) {
	t := strings.TrimSpace(title)
	for _, suffix := range []string{" | LinkedIn", " - LinkedIn", " – LinkedIn"} {
		t = strings.TrimSpace(strings.TrimSuffix(t, suffix))
	}
	for _, sep := range []string{" - ", " – ", " | "} {
		if i := strings.Index(t, sep); i >= 0 {
			return strings.TrimSpace(t[:i]), strings.TrimSpace(t[i+len(sep):])
		}
	}
	return t, ""
}

// extractCompany picks the employer out of a headline. "Title at Company"
// and "Title @ Company" yield Company; "Role, Company, ..." yields the second
// item; a headline without a role separator is taken as the company itself.
func extractCompany(headline string) string {
	h := strings.TrimSpace(headline)
	if h == "" {
		return ""
	}
	var company string
	switch {
	case strings.Contains(h, " at "):
		company = h[strings.Index(h, " at ")+4:]
	case strings.Contains(h, " @ "):
		company = h[strings.Index(h, " @ ")+3:]
	case strings.Contains(h, "@"):
		company = h[strings.Index(h, "@")+1:]
	default:
		parts := strings.Split(h, ",")
		if len(parts) >= 2 && isRole(parts[0]) {
			company = parts[1]
		} else {
			return h
		}
	}
	company = strings.TrimSpace(company)
	if i := strings.IndexAny(company, ",;|"); i != -1 {
		company = strings.TrimSpace(company[:i])
	}
	return company
}

// titleFromHeadline returns the role in "Role at Company" headlines.
func titleFromHeadline(headline string) string {
	for _, sep := range []string{" at ", " @ "} {
		if i := strings.Index(headline, sep); i > 0 {
			return strings.TrimSpace(headline[:i])
		}
	}
	if parts := strings.Split(headline, ","); len(parts) >= 2 && isRole(parts[0]) {
		return strings.TrimSpace(parts[0])
	}
	return ""
}

var roleWords = []string{
	"founder", "ceo", "cto", "cfo", "coo", "engineer", "developer", "manager", "director",
	"president", "officer", "head", "lead", "consultant", "analyst", "designer", "partner",
	"owner", "vp", "architect", "scientist", "specialist", "intern", "student",
}

func isRole(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range roleWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func extractPublicID(urlStr string) string {
	i := strings.Index(urlStr, "/in/")
	if i < 0 {
		return ""
	}
	slug := urlStr[i+4:]
	if j := strings.IndexAny(slug, "/?#"); j >= 0 {
		slug = slug[:j]
	}
	if strings.Contains(slug, "%") {
		if decoded, err := url.QueryUnescape(slug); err == nil {
			return decoded
		}
	}
	return slug
}
