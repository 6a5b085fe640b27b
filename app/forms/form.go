// Package forms defines the versioned scholarship application form:
// its schema, default values, the deep-partial merge used for draft
// edits, the cross-field validation rules and the required-attachment
// slot resolver.
package forms

import "encoding/json"

// SchemaVersion tags the current form shape. Payloads carrying any other
// version (or none) are legacy: readable for display but never mutated.
const SchemaVersion = 2

type FormV2 struct {
	SchemaVersion        int                  `json:"schemaVersion"`
	PersonalInfo         PersonalInfo         `json:"personalInfo"`
	FamilyInfo           FamilyInfo           `json:"familyInfo"`
	FinancialDeclaration FinancialDeclaration `json:"financialDeclaration"`
}

type PersonalInfo struct {
	FullName        string  `json:"fullName"`
	Email           string  `json:"email"`
	MobileNumber    string  `json:"mobileNumber"`
	StudentIDNo     string  `json:"studentIdNo"`
	ICNumber        string  `json:"icNumber"`
	Nationality     string  `json:"nationality"`
	CountryCode     string  `json:"countryCode"`
	DateOfBirth     string  `json:"dateOfBirth"`
	CampusOptionID  string  `json:"campusOptionId"`
	FacultyOptionID string  `json:"facultyOptionId"`
	CourseOptionID  string  `json:"courseOptionId"`
	YearOfStudy     int     `json:"yearOfStudy"`
	CGPA            float64 `json:"cgpa"`
}

// Guardian is one parent/guardian record. HasGuardian is tri-state: nil
// and true both mean the guardian is present; only an explicit false
// marks the guardian absent.
type Guardian struct {
	HasGuardian   *bool   `json:"hasGuardian"`
	FullName      string  `json:"fullName"`
	Occupation    string  `json:"occupation"`
	MonthlyIncome float64 `json:"monthlyIncome"`
	MobileNumber  string  `json:"mobileNumber"`
	DateOfBirth   string  `json:"dateOfBirth"`
}

// Present reports whether the guardian counts as present. Absent or
// undefined flags default to present.
func (g Guardian) Present() bool {
	return g.HasGuardian == nil || *g.HasGuardian
}

// SiblingMember is one dependant entry. Salary is meaningful only in the
// above18Working bucket.
type SiblingMember struct {
	MemberID string  `json:"memberId"`
	FullName string  `json:"fullName"`
	Age      int     `json:"age"`
	Salary   float64 `json:"salary,omitempty"`
}

// SiblingBucket names one of the five mutually exclusive dependant
// categories.
type SiblingBucket string

const (
	BucketAbove18Working    SiblingBucket = "above18Working"
	BucketAbove18NonWorking SiblingBucket = "above18NonWorking"
	BucketStudyInIpt        SiblingBucket = "studyInIpt"
	BucketAge7To17          SiblingBucket = "age7to17"
	BucketAge6Below         SiblingBucket = "age6Below"
)

type Siblings struct {
	Above18Working    []SiblingMember  `json:"above18Working"`
	Above18NonWorking []SiblingMember  `json:"above18NonWorking"`
	StudyInIpt        []SiblingMember  `json:"studyInIpt"`
	Age7To17          []SiblingMember  `json:"age7to17"`
	Age6Below         []SiblingMember  `json:"age6Below"`
	SpecialTreatment  SpecialTreatment `json:"specialTreatment"`
}

// Bucket returns the members of the named bucket, or nil for an unknown
// bucket name.
func (s *Siblings) Bucket(name SiblingBucket) []SiblingMember {
	switch name {
	case BucketAbove18Working:
		return s.Above18Working
	case BucketAbove18NonWorking:
		return s.Above18NonWorking
	case BucketStudyInIpt:
		return s.StudyInIpt
	case BucketAge7To17:
		return s.Age7To17
	case BucketAge6Below:
		return s.Age6Below
	}
	return nil
}

type SpecialTreatment struct {
	HasOku            bool `json:"hasOku"`
	HasChronicIllness bool `json:"hasChronicIllness"`
}

type FamilyInfo struct {
	FatherGuardian Guardian `json:"fatherGuardian"`
	MotherGuardian Guardian `json:"motherGuardian"`
	Siblings       Siblings `json:"siblings"`
}

type FinancialDeclaration struct {
	BankName                 string   `json:"bankName"`
	BankAccountNo            string   `json:"bankAccountNo"`
	BankAccountHolder        string   `json:"bankAccountHolder"`
	OutstandingInvoiceAmount float64  `json:"mmuOutstandingInvoiceAmount"`
	ReceivingOtherSupport    bool     `json:"receivingOtherSupport"`
	SupportProviderOptionIDs []string `json:"supportProviderOptionIds"`
}

// NewDefaultForm builds a fully populated V2 form for a fresh draft:
// numeric fields zeroed, collections empty, both guardians defaulted to
// present with placeholder values.
func NewDefaultForm(fullName, email, mobileNumber string) *FormV2 {
	return &FormV2{
		SchemaVersion: SchemaVersion,
		PersonalInfo: PersonalInfo{
			FullName:     fullName,
			Email:        email,
			MobileNumber: mobileNumber,
			Nationality:  "Malaysian",
		},
		FamilyInfo: FamilyInfo{
			FatherGuardian: Guardian{},
			MotherGuardian: Guardian{},
			Siblings: Siblings{
				Above18Working:    []SiblingMember{},
				Above18NonWorking: []SiblingMember{},
				StudyInIpt:        []SiblingMember{},
				Age7To17:          []SiblingMember{},
				Age6Below:         []SiblingMember{},
			},
		},
		FinancialDeclaration: FinancialDeclaration{
			SupportProviderOptionIDs: []string{},
		},
	}
}

// IsFormV2 reports whether raw carries the current schema tag. Legacy or
// malformed payloads return false and must be discarded and recreated
// before further editing.
func IsFormV2(raw []byte) bool {
	var probe struct {
		SchemaVersion int `json:"schemaVersion"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.SchemaVersion == SchemaVersion
}

// ParseFormV2 decodes raw into a FormV2 after checking the schema tag.
func ParseFormV2(raw []byte) (*FormV2, error) {
	if !IsFormV2(raw) {
		return nil, ErrLegacyPayload
	}
	var f FormV2
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	f.SchemaVersion = SchemaVersion
	return &f, nil
}
