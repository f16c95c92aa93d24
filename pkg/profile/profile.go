// Package profile defines the canonical identity profile and the vocabulary
// shared by the reconciliation packages.
package profile

import (
	"errors"
	"slices"
	"strings"
)

// DefaultMaxEntries caps every list in an assembled profile.
const DefaultMaxEntries = 5

// ErrMalformedInput is returned when a payload is not a JSON object or array.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError carries the reason a payload was rejected.
// It matches ErrMalformedInput via errors.Is.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return "malformed input: " + e.Reason
}

// Is reports whether target is ErrMalformedInput.
func (*MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// ExtractionType records how a social account was discovered.
type ExtractionType string

// Extraction types, strongest evidence first.
const (
	ExtractionNativeID ExtractionType = "native_id" // platform-issued identifier
	ExtractionCurated  ExtractionType = "curated"   // source marked the account verified
	ExtractionURL      ExtractionType = "url"       // inferred from a profile URL
	ExtractionApp      ExtractionType = "app"       // app install or messaging registration
)

// Rank orders extraction types by trust. Unknown types rank 0.
func (e ExtractionType) Rank() int {
	switch e {
	case ExtractionNativeID, ExtractionCurated:
		return 3
	case ExtractionURL:
		return 2
	case ExtractionApp:
		return 1
	default:
		return 0
	}
}

// SocialAccount is one account on one platform.
type SocialAccount struct {
	Platform       string         `json:"platform"`
	Username       string         `json:"username,omitempty"`
	URL            string         `json:"url,omitempty"`
	ID             string         `json:"id,omitempty"`
	DisplayName    string         `json:"displayName,omitempty"`
	Photo          string         `json:"photo,omitempty"`
	AvatarHD       string         `json:"avatarHd,omitempty"`
	ExtractionType ExtractionType `json:"extractionType"`
	SourceName     string         `json:"sourceName,omitempty"`
}

// BreachRecord describes one data breach the subject appeared in.
type BreachRecord struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	BreachDate  string   `json:"breachDate,omitempty"`
	DataClasses []string `json:"dataClasses"`
	Sources     []string `json:"sources"`
	RecordCount int64    `json:"recordCount"`
}

// Key is the identity used to deduplicate breaches.
func (b BreachRecord) Key() string {
	return strings.ToLower(strings.TrimSpace(b.Name))
}

// Address is a postal address.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Empty reports whether no field is set.
func (a Address) Empty() bool {
	return a == Address{}
}

// Key is the identity used to deduplicate addresses.
func (a Address) Key() string {
	parts := []string{a.Street, a.City, a.State, a.PostalCode}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.Join(strings.Fields(p), " "))
	}
	return strings.Join(parts, "|")
}

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PlatformRecord is the normalized, display-ready view of one upstream source.
type PlatformRecord struct {
	Data        map[string]any `json:"data"`
	Source      string         `json:"source"`
	DisplayName string         `json:"displayName"`
	Success     bool           `json:"success"`
}

// Profile is the canonical, deduplicated identity profile.
// Lists are never nil once a profile has been assembled.
type Profile struct {
	BasicInfo        BasicInfo        `json:"basicInfo"`
	ContactInfo      ContactInfo      `json:"contactInfo"`
	ProfessionalInfo ProfessionalInfo `json:"professionalInfo"`
	FinancialInfo    FinancialInfo    `json:"financialInfo"`
	FamilyInfo       FamilyInfo       `json:"familyInfo"`
	HousingInfo      HousingInfo      `json:"housingInfo"`
	VehicleInfo      VehicleInfo      `json:"vehicleInfo"`
	VoterInfo        VoterInfo        `json:"voterInfo"`
	SocialMedia      SocialMedia      `json:"socialMedia"`
	SecurityInfo     SecurityInfo     `json:"securityInfo"`
	CarrierInfo      CarrierInfo      `json:"carrierInfo"`
	Identifiers      Identifiers      `json:"identifiers"`
}

//nolint:govet // fieldalignment: sections mirror the JSON layout
type (
	BasicInfo struct {
		Names     []string `json:"names"`
		FirstName string   `json:"firstName,omitempty"`
		LastName  string   `json:"lastName,omitempty"`
		Gender    string   `json:"gender,omitempty"`
		BirthDate string   `json:"birthDate,omitempty"`
		Age       string   `json:"age,omitempty"`
	}

	ContactInfo struct {
		Phones      []string     `json:"phones"`
		Emails      []string     `json:"emails"`
		Usernames   []string     `json:"usernames"`
		Addresses   []Address    `json:"addresses"`
		Coordinates []Coordinate `json:"coordinates"`
	}

	ProfessionalInfo struct {
		Employers  []string `json:"employers"`
		JobTitles  []string `json:"jobTitles"`
		Industries []string `json:"industries"`
		Education  []string `json:"education"`
	}

	FinancialInfo struct {
		Incomes       []string `json:"incomes"`
		NetWorth      []string `json:"netWorth"`
		CreditRatings []string `json:"creditRatings"`
	}

	FamilyInfo struct {
		Relatives     []string `json:"relatives"`
		MaritalStatus string   `json:"maritalStatus,omitempty"`
		Spouse        string   `json:"spouse,omitempty"`
		Children      string   `json:"children,omitempty"`
	}

	HousingInfo struct {
		HomeOwnership   string `json:"homeOwnership,omitempty"`
		HomeValue       string `json:"homeValue,omitempty"`
		ResidenceLength string `json:"residenceLength,omitempty"`
		DwellingType    string `json:"dwellingType,omitempty"`
	}

	VehicleInfo struct {
		Vehicles []string `json:"vehicles"`
		Pets     []string `json:"pets"`
	}

	VoterInfo struct {
		Party       string `json:"party,omitempty"`
		VoterStatus string `json:"voterStatus,omitempty"`
		Religion    string `json:"religion,omitempty"`
	}

	SocialMedia struct {
		Accounts  []SocialAccount  `json:"accounts"`
		Platforms []PlatformRecord `json:"platforms"`
	}

	SecurityInfo struct {
		BreachList      []BreachRecord `json:"breachList"`
		LeakedPasswords []string       `json:"leakedPasswords"`
		LoginIPs        []string       `json:"loginIps"`
		RiskScore       string         `json:"riskScore,omitempty"`
		RiskLevel       string         `json:"riskLevel,omitempty"`
	}

	CarrierInfo struct {
		Carrier  string `json:"carrier,omitempty"`
		LineType string `json:"lineType,omitempty"`
		Location string `json:"location,omitempty"`
	}

	Identifiers struct {
		IPs              []string `json:"ips"`
		URLs             []string `json:"urls"`
		LinkedInProfiles []string `json:"linkedinProfiles"`
		SSN              []string `json:"ssn"`
	}
)

// New returns a profile with every list initialized to empty.
func New() *Profile {
	p := &Profile{}
	p.FillEmpty()
	return p
}

// FillEmpty replaces nil lists with empty ones so they encode as [].
func (p *Profile) FillEmpty() {
	for _, s := range []*[]string{
		&p.BasicInfo.Names,
		&p.ContactInfo.Phones, &p.ContactInfo.Emails, &p.ContactInfo.Usernames,
		&p.ProfessionalInfo.Employers, &p.ProfessionalInfo.JobTitles,
		&p.ProfessionalInfo.Industries, &p.ProfessionalInfo.Education,
		&p.FinancialInfo.Incomes, &p.FinancialInfo.NetWorth, &p.FinancialInfo.CreditRatings,
		&p.FamilyInfo.Relatives,
		&p.VehicleInfo.Vehicles, &p.VehicleInfo.Pets,
		&p.SecurityInfo.LeakedPasswords, &p.SecurityInfo.LoginIPs,
		&p.Identifiers.IPs, &p.Identifiers.URLs, &p.Identifiers.LinkedInProfiles, &p.Identifiers.SSN,
	} {
		if *s == nil {
			*s = []string{}
		}
	}
	if p.ContactInfo.Addresses == nil {
		p.ContactInfo.Addresses = []Address{}
	}
	if p.ContactInfo.Coordinates == nil {
		p.ContactInfo.Coordinates = []Coordinate{}
	}
	if p.SocialMedia.Accounts == nil {
		p.SocialMedia.Accounts = []SocialAccount{}
	}
	if p.SocialMedia.Platforms == nil {
		p.SocialMedia.Platforms = []PlatformRecord{}
	}
	if p.SecurityInfo.BreachList == nil {
		p.SecurityInfo.BreachList = []BreachRecord{}
	}
	for i := range p.SecurityInfo.BreachList {
		b := &p.SecurityInfo.BreachList[i]
		if b.DataClasses == nil {
			b.DataClasses = []string{}
		}
		if b.Sources == nil {
			b.Sources = []string{}
		}
	}
}

// Clone returns a copy that shares no slices with p.
// PlatformRecord data maps are shared; they are treated as read-only.
func (p *Profile) Clone() *Profile {
	c := *p
	c.BasicInfo.Names = slices.Clone(p.BasicInfo.Names)
	c.ContactInfo.Phones = slices.Clone(p.ContactInfo.Phones)
	c.ContactInfo.Emails = slices.Clone(p.ContactInfo.Emails)
	c.ContactInfo.Usernames = slices.Clone(p.ContactInfo.Usernames)
	c.ContactInfo.Addresses = slices.Clone(p.ContactInfo.Addresses)
	c.ContactInfo.Coordinates = slices.Clone(p.ContactInfo.Coordinates)
	c.ProfessionalInfo.Employers = slices.Clone(p.ProfessionalInfo.Employers)
	c.ProfessionalInfo.JobTitles = slices.Clone(p.ProfessionalInfo.JobTitles)
	c.ProfessionalInfo.Industries = slices.Clone(p.ProfessionalInfo.Industries)
	c.ProfessionalInfo.Education = slices.Clone(p.ProfessionalInfo.Education)
	c.FinancialInfo.Incomes = slices.Clone(p.FinancialInfo.Incomes)
	c.FinancialInfo.NetWorth = slices.Clone(p.FinancialInfo.NetWorth)
	c.FinancialInfo.CreditRatings = slices.Clone(p.FinancialInfo.CreditRatings)
	c.FamilyInfo.Relatives = slices.Clone(p.FamilyInfo.Relatives)
	c.VehicleInfo.Vehicles = slices.Clone(p.VehicleInfo.Vehicles)
	c.VehicleInfo.Pets = slices.Clone(p.VehicleInfo.Pets)
	c.SocialMedia.Accounts = slices.Clone(p.SocialMedia.Accounts)
	c.SocialMedia.Platforms = slices.Clone(p.SocialMedia.Platforms)
	c.SecurityInfo.LeakedPasswords = slices.Clone(p.SecurityInfo.LeakedPasswords)
	c.SecurityInfo.LoginIPs = slices.Clone(p.SecurityInfo.LoginIPs)
	c.Identifiers.IPs = slices.Clone(p.Identifiers.IPs)
	c.Identifiers.URLs = slices.Clone(p.Identifiers.URLs)
	c.Identifiers.LinkedInProfiles = slices.Clone(p.Identifiers.LinkedInProfiles)
	c.Identifiers.SSN = slices.Clone(p.Identifiers.SSN)

	c.SecurityInfo.BreachList = make([]BreachRecord, len(p.SecurityInfo.BreachList))
	for i, b := range p.SecurityInfo.BreachList {
		b.DataClasses = slices.Clone(b.DataClasses)
		b.Sources = slices.Clone(b.Sources)
		c.SecurityInfo.BreachList[i] = b
	}
	if p.SecurityInfo.BreachList == nil {
		c.SecurityInfo.BreachList = nil
	}
	return &c
}
