package collect

import (
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/profile"
)

// kind says how the value under an aliased key is parsed.
type kind int

const (
	kindValue      kind = iota // scalar or list of scalars
	kindName                   // person names, possibly {first, last}
	kindPhone                  // phones, possibly {number, type}
	kindEmail                  // emails, possibly {address}
	kindEmployment             // employers, possibly {company, title, industry}
	kindVehicle                // vehicles, possibly {year, make, model}
	kindAddress                // postal addresses
	kindCoordinate             // lat/lng pairs
	kindLocation               // free-form location: text, address or coordinates
	kindSocial                 // social accounts
	kindApps                   // installed apps and messaging registrations
	kindBreach                 // breach lists
	kindRecords                // per-source records
	kindText                   // free text mined for emails, phones and profile links
	kindSection                // grouping object whose keys are aliased again
)

type alias struct {
	field profile.Field
	kind  kind
}

var aliasTable = []struct {
	keys []string
	a    alias
}{
	{[]string{"name", "names", "fullName", "personName", "aliases", "aka", "akas", "otherNames", "nameVariations"}, alias{profile.FieldName, kindName}},
	{[]string{"firstName", "givenName", "fname", "first"}, alias{profile.FieldFirstName, kindValue}},
	{[]string{"lastName", "surname", "familyName", "lname", "last"}, alias{profile.FieldLastName, kindValue}},
	{[]string{"gender", "sex"}, alias{profile.FieldGender, kindValue}},
	{[]string{"birthDate", "dob", "dateOfBirth", "birthday", "born"}, alias{profile.FieldBirthDate, kindValue}},
	{[]string{"age", "estimatedAge"}, alias{profile.FieldAge, kindValue}},

	{[]string{"phone", "phones", "phoneNumber", "phoneNumbers", "mobile", "mobilePhone", "cell", "cellPhone", "telephone", "landline", "otherPhones"}, alias{profile.FieldPhone, kindPhone}},
	{[]string{"email", "emails", "emailAddress", "emailAddresses", "otherEmails"}, alias{profile.FieldEmail, kindEmail}},
	{[]string{"username", "usernames", "handle", "handles", "screenName", "screenNames"}, alias{profile.FieldUsername, kindValue}},

	{[]string{"employer", "employers", "company", "companies", "companyName", "organization", "organisation", "employment", "employmentHistory", "jobs", "workHistory", "work", "experience"}, alias{profile.FieldEmployer, kindEmployment}},
	{[]string{"jobTitle", "jobTitles", "title", "occupation", "occupations", "position", "profession"}, alias{profile.FieldJobTitle, kindValue}},
	{[]string{"industry", "industries"}, alias{profile.FieldIndustry, kindValue}},
	{[]string{"education", "school", "schools", "university", "college", "degree", "educationLevel"}, alias{profile.FieldEducation, kindValue}},

	{[]string{"income", "incomes", "estimatedIncome", "householdIncome", "incomeRange"}, alias{profile.FieldIncome, kindValue}},
	{[]string{"netWorth", "estimatedNetWorth", "netWorthRange"}, alias{profile.FieldNetWorth, kindValue}},
	{[]string{"creditRating", "creditRatings", "creditScore", "creditRange", "creditCapacity"}, alias{profile.FieldCreditRating, kindValue}},

	{[]string{"relatives", "relative", "associates", "relations", "familyMembers", "possibleRelatives"}, alias{profile.FieldRelative, kindName}},
	{[]string{"maritalStatus", "marital"}, alias{profile.FieldMaritalStatus, kindValue}},
	{[]string{"spouse", "spouseName", "partner"}, alias{profile.FieldSpouse, kindName}},
	{[]string{"children", "numberOfChildren", "childrenCount", "kids", "presenceOfChildren"}, alias{profile.FieldChildren, kindValue}},

	{[]string{"homeOwnership", "homeOwner", "homeownerStatus", "ownership", "ownerStatus"}, alias{profile.FieldHomeOwnership, kindValue}},
	{[]string{"homeValue", "propertyValue", "estimatedHomeValue", "homeMarketValue"}, alias{profile.FieldHomeValue, kindValue}},
	{[]string{"residenceLength", "lengthOfResidence", "yearsAtResidence", "yearsAtAddress"}, alias{profile.FieldResidenceLength, kindValue}},
	{[]string{"dwellingType", "propertyType", "dwelling", "homeType"}, alias{profile.FieldDwellingType, kindValue}},

	{[]string{"vehicles", "vehicle", "cars", "car", "autos", "automobiles"}, alias{profile.FieldVehicle, kindVehicle}},
	{[]string{"pets", "pet"}, alias{profile.FieldPet, kindValue}},

	{[]string{"party", "politicalParty", "politicalAffiliation", "partyAffiliation"}, alias{profile.FieldParty, kindValue}},
	{[]string{"voterStatus", "voterRegistration", "registeredVoter", "voter"}, alias{profile.FieldVoterStatus, kindValue}},
	{[]string{"religion", "religiousAffiliation"}, alias{profile.FieldReligion, kindValue}},

	{[]string{"leakedPasswords", "leakedPassword", "passwords", "password", "passwordHints"}, alias{profile.FieldLeakedPassword, kindValue}},
	{[]string{"loginIps", "loginIp", "lastLoginIp", "loginIpAddresses"}, alias{profile.FieldLoginIP, kindValue}},
	{[]string{"riskScore", "fraudScore"}, alias{profile.FieldRiskScore, kindValue}},
	{[]string{"riskLevel", "fraudLevel"}, alias{profile.FieldRiskLevel, kindValue}},

	{[]string{"carrier", "carrierName", "phoneCarrier", "operator"}, alias{profile.FieldCarrier, kindValue}},
	{[]string{"lineType", "phoneType", "numberType"}, alias{profile.FieldLineType, kindValue}},
	{[]string{"location", "locations", "region", "hometown"}, alias{profile.FieldLocation, kindLocation}},

	{[]string{"ips", "ip", "ipAddress", "ipAddresses"}, alias{profile.FieldIP, kindValue}},
	{[]string{"urls", "url", "website", "websites", "links", "homepage"}, alias{profile.FieldURL, kindValue}},
	{[]string{"linkedinProfiles", "linkedinProfile", "linkedinUrl", "linkedinUrls"}, alias{profile.FieldLinkedInProfile, kindValue}},
	{[]string{"ssn", "ssns", "socialSecurityNumber", "socialSecurity"}, alias{profile.FieldSSN, kindValue}},

	{[]string{"address", "addresses", "addressHistory", "residences", "currentAddress", "pastAddresses", "previousAddresses", "mailingAddress"}, alias{kind: kindAddress}},
	{[]string{"coordinates", "coords", "geo", "latLng", "latLong", "geolocation"}, alias{kind: kindCoordinate}},
	{[]string{"socialMedia", "socialProfiles", "socialAccounts", "social", "accounts", "profiles", "socialNetworks"}, alias{kind: kindSocial}},
	{[]string{"apps", "installedApps", "applications", "messagingApps", "registeredApps"}, alias{kind: kindApps}},
	{[]string{"breaches", "breachList", "breachDetails", "dataBreaches", "breachData"}, alias{kind: kindBreach}},
	{[]string{"platforms", "sources", "sourceResults", "verifications"}, alias{kind: kindRecords}},
	{[]string{"notes", "rawText", "text", "snippet", "snippets", "bio", "summary"}, alias{kind: kindText}},

	{[]string{
		"personal", "personalInfo", "basicInfo", "basic", "identity", "person", "demographics",
		"contact", "contactInfo", "professional", "professionalInfo", "career",
		"financial", "financialInfo", "finances", "family", "familyInfo",
		"housing", "housingInfo", "property", "vehicleInfo", "voterInfo", "political",
		"security", "securityInfo", "carrierInfo", "phoneInfo", "identifiers", "digitalFootprint", "digital",
	}, alias{kind: kindSection}},
}

var aliases = func() map[string]alias {
	m := make(map[string]alias)
	for _, e := range aliasTable {
		for _, k := range e.keys {
			nk := normKey(k)
			if _, dup := m[nk]; dup {
				panic("collect: duplicate alias " + k)
			}
			m[nk] = e.a
		}
	}
	return m
}()

// normKey folds a payload key for alias matching: case, '_', '-', '.' and
// spaces are ignored.
func normKey(k string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(k) {
		switch r {
		case '_', '-', '.', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func lookupAlias(k string) (alias, bool) {
	a, ok := aliases[normKey(k)]
	return a, ok
}
