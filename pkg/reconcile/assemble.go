package reconcile

import (
	"github.com/codeGROOVE-dev/dossier/pkg/collect"
	"github.com/codeGROOVE-dev/dossier/pkg/merge"
	"github.com/codeGROOVE-dev/dossier/pkg/normalize"
	"github.com/codeGROOVE-dev/dossier/pkg/profile"
	"github.com/codeGROOVE-dev/dossier/pkg/score"
)

func assemble(c *collect.Candidates, cfg *config) *profile.Profile {
	n := cfg.maxEntries
	w := cfg.weights
	list := func(f profile.Field) []string { return capped(c.Values(f), n) }
	names := c.Values(profile.FieldName)

	p := &profile.Profile{}

	p.BasicInfo = profile.BasicInfo{
		Names:     capped(names, n),
		FirstName: c.First(profile.FieldFirstName),
		LastName:  c.First(profile.FieldLastName),
		Gender:    c.First(profile.FieldGender),
		BirthDate: c.First(profile.FieldBirthDate),
		Age:       c.First(profile.FieldAge),
	}

	p.ContactInfo = profile.ContactInfo{
		Phones:      score.Top(c.Values(profile.FieldPhone), n, w.PhoneScorer()),
		Emails:      score.Top(c.Values(profile.FieldEmail), n, w.EmailScorer(names)),
		Usernames:   list(profile.FieldUsername),
		Addresses:   capped(merge.Addresses(c.Addresses), n),
		Coordinates: capped(c.Coordinates, n),
	}

	p.ProfessionalInfo = profile.ProfessionalInfo{
		Employers:  list(profile.FieldEmployer),
		JobTitles:  list(profile.FieldJobTitle),
		Industries: list(profile.FieldIndustry),
		Education:  list(profile.FieldEducation),
	}

	p.FinancialInfo = profile.FinancialInfo{
		Incomes:       list(profile.FieldIncome),
		NetWorth:      list(profile.FieldNetWorth),
		CreditRatings: list(profile.FieldCreditRating),
	}

	p.FamilyInfo = profile.FamilyInfo{
		Relatives:     list(profile.FieldRelative),
		MaritalStatus: c.First(profile.FieldMaritalStatus),
		Spouse:        c.First(profile.FieldSpouse),
		Children:      c.First(profile.FieldChildren),
	}

	p.HousingInfo = profile.HousingInfo{
		HomeOwnership:   c.First(profile.FieldHomeOwnership),
		HomeValue:       c.First(profile.FieldHomeValue),
		ResidenceLength: c.First(profile.FieldResidenceLength),
		DwellingType:    c.First(profile.FieldDwellingType),
	}

	p.VehicleInfo = profile.VehicleInfo{
		Vehicles: list(profile.FieldVehicle),
		Pets:     list(profile.FieldPet),
	}

	p.VoterInfo = profile.VoterInfo{
		Party:       c.First(profile.FieldParty),
		VoterStatus: c.First(profile.FieldVoterStatus),
		Religion:    c.First(profile.FieldReligion),
	}

	// Platform records are bounded by the source list and are not capped.
	p.SocialMedia = profile.SocialMedia{
		Accounts:  capped(merge.Enrich(merge.Accounts(c.Social), c.Aux), n),
		Platforms: normalize.Records(c.Records, c.Aux),
	}

	p.SecurityInfo = profile.SecurityInfo{
		BreachList:      capped(merge.Breaches(c.Breaches), n),
		LeakedPasswords: list(profile.FieldLeakedPassword),
		LoginIPs:        list(profile.FieldLoginIP),
		RiskScore:       c.First(profile.FieldRiskScore),
		RiskLevel:       c.First(profile.FieldRiskLevel),
	}

	p.CarrierInfo = profile.CarrierInfo{
		Carrier:  c.First(profile.FieldCarrier),
		LineType: c.First(profile.FieldLineType),
		Location: c.First(profile.FieldLocation),
	}

	p.Identifiers = profile.Identifiers{
		IPs:              list(profile.FieldIP),
		URLs:             list(profile.FieldURL),
		LinkedInProfiles: list(profile.FieldLinkedInProfile),
	}
	if ssn, ok := score.Best(c.Values(profile.FieldSSN), w.SSNScorer()); ok {
		p.Identifiers.SSN = []string{score.CanonicalSSN(ssn)}
	}

	p.FillEmpty()
	return p
}

// capped returns at most n leading elements of s.
func capped[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n:n]
	}
	return s
}
