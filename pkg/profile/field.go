package profile

import (
	"strings"

	"github.com/codeGROOVE-dev/dossier/pkg/jsonval"
)

// Field names one scalar attribute that candidates are collected for.
type Field string

// Collected fields, grouped by profile section.
const (
	FieldName      Field = "name"
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldGender    Field = "gender"
	FieldBirthDate Field = "birthDate"
	FieldAge       Field = "age"

	FieldPhone    Field = "phone"
	FieldEmail    Field = "email"
	FieldUsername Field = "username"

	FieldEmployer  Field = "employer"
	FieldJobTitle  Field = "jobTitle"
	FieldIndustry  Field = "industry"
	FieldEducation Field = "education"

	FieldIncome       Field = "income"
	FieldNetWorth     Field = "netWorth"
	FieldCreditRating Field = "creditRating"

	FieldRelative      Field = "relative"
	FieldMaritalStatus Field = "maritalStatus"
	FieldSpouse        Field = "spouse"
	FieldChildren      Field = "children"

	FieldHomeOwnership   Field = "homeOwnership"
	FieldHomeValue       Field = "homeValue"
	FieldResidenceLength Field = "residenceLength"
	FieldDwellingType    Field = "dwellingType"

	FieldVehicle Field = "vehicle"
	FieldPet     Field = "pet"

	FieldParty       Field = "party"
	FieldVoterStatus Field = "voterStatus"
	FieldReligion    Field = "religion"

	FieldLeakedPassword Field = "leakedPassword"
	FieldLoginIP        Field = "loginIp"
	FieldRiskScore      Field = "riskScore"
	FieldRiskLevel      Field = "riskLevel"

	FieldCarrier  Field = "carrier"
	FieldLineType Field = "lineType"
	FieldLocation Field = "location"

	FieldIP              Field = "ip"
	FieldURL             Field = "url"
	FieldLinkedInProfile Field = "linkedinProfile"
	FieldSSN             Field = "ssn"
)

// Contribution is what one payload fragment adds to the candidate pool.
type Contribution struct {
	Values      map[Field][]string
	Social      []SocialAccount
	Breaches    []BreachRecord
	Addresses   []Address
	Coordinates []Coordinate
}

// Add appends non-blank values for f.
func (c *Contribution) Add(f Field, vals ...string) {
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if c.Values == nil {
			c.Values = make(map[Field][]string)
		}
		c.Values[f] = append(c.Values[f], v)
	}
}

// AddText appends the scalar text of v for f, if any.
func (c *Contribution) AddText(f Field, v jsonval.Value) {
	if s, ok := jsonval.Text(v); ok {
		c.Add(f, s)
	}
}

// Merge appends everything in o after what c already holds.
func (c *Contribution) Merge(o Contribution) {
	for f, vals := range o.Values {
		c.Add(f, vals...)
	}
	c.Social = append(c.Social, o.Social...)
	c.Breaches = append(c.Breaches, o.Breaches...)
	c.Addresses = append(c.Addresses, o.Addresses...)
	c.Coordinates = append(c.Coordinates, o.Coordinates...)
}

// Empty reports whether c adds nothing.
func (c Contribution) Empty() bool {
	return len(c.Values) == 0 && len(c.Social) == 0 && len(c.Breaches) == 0 &&
		len(c.Addresses) == 0 && len(c.Coordinates) == 0
}

// SourceRecord is one per-source result as found in a payload, before projection.
type SourceRecord struct {
	Data    jsonval.Value
	Source  string
	Success bool
}

// foundFlags are keys a source uses to say it has nothing on the subject.
var foundFlags = []string{"found", "exists", "registered", "isRegistered", "associated", "matched"}

// ReportsNotFound reports whether data carries an explicit false found-flag.
func ReportsNotFound(data jsonval.Value) bool {
	obj, ok := jsonval.AsObject(data)
	if !ok {
		return false
	}
	for _, k := range foundFlags {
		if b, ok := jsonval.Truthy(obj.Lookup(k)); ok && !b {
			return true
		}
	}
	return false
}
