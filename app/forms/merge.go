package forms

// Patch types mirror the form sections with pointer fields so an absent
// key and a zero value stay distinguishable. Merge recurses only into
// the fixed sub-objects (personalInfo, the two guardians and
// siblings.specialTreatment); sibling bucket arrays and the financial
// declaration are replaced wholesale when present, because the client
// always resends that list data in full.

type FormPatch struct {
	PersonalInfo         *PersonalInfoPatch    `json:"personalInfo,omitempty"`
	FamilyInfo           *FamilyInfoPatch      `json:"familyInfo,omitempty"`
	FinancialDeclaration *FinancialDeclaration `json:"financialDeclaration,omitempty"`
}

type PersonalInfoPatch struct {
	FullName        *string  `json:"fullName,omitempty"`
	Email           *string  `json:"email,omitempty"`
	MobileNumber    *string  `json:"mobileNumber,omitempty"`
	StudentIDNo     *string  `json:"studentIdNo,omitempty"`
	ICNumber        *string  `json:"icNumber,omitempty"`
	Nationality     *string  `json:"nationality,omitempty"`
	CountryCode     *string  `json:"countryCode,omitempty"`
	DateOfBirth     *string  `json:"dateOfBirth,omitempty"`
	CampusOptionID  *string  `json:"campusOptionId,omitempty"`
	FacultyOptionID *string  `json:"facultyOptionId,omitempty"`
	CourseOptionID  *string  `json:"courseOptionId,omitempty"`
	YearOfStudy     *int     `json:"yearOfStudy,omitempty"`
	CGPA            *float64 `json:"cgpa,omitempty"`
}

type GuardianPatch struct {
	HasGuardian   *bool    `json:"hasGuardian,omitempty"`
	FullName      *string  `json:"fullName,omitempty"`
	Occupation    *string  `json:"occupation,omitempty"`
	MonthlyIncome *float64 `json:"monthlyIncome,omitempty"`
	MobileNumber  *string  `json:"mobileNumber,omitempty"`
	DateOfBirth   *string  `json:"dateOfBirth,omitempty"`
}

type SpecialTreatmentPatch struct {
	HasOku            *bool `json:"hasOku,omitempty"`
	HasChronicIllness *bool `json:"hasChronicIllness,omitempty"`
}

type SiblingsPatch struct {
	Above18Working    *[]SiblingMember       `json:"above18Working,omitempty"`
	Above18NonWorking *[]SiblingMember       `json:"above18NonWorking,omitempty"`
	StudyInIpt        *[]SiblingMember       `json:"studyInIpt,omitempty"`
	Age7To17          *[]SiblingMember       `json:"age7to17,omitempty"`
	Age6Below         *[]SiblingMember       `json:"age6Below,omitempty"`
	SpecialTreatment  *SpecialTreatmentPatch `json:"specialTreatment,omitempty"`
}

type FamilyInfoPatch struct {
	FatherGuardian *GuardianPatch `json:"fatherGuardian,omitempty"`
	MotherGuardian *GuardianPatch `json:"motherGuardian,omitempty"`
	Siblings       *SiblingsPatch `json:"siblings,omitempty"`
}

// Merge applies patch on top of current and returns the merged form.
// current is not modified. The schema version of the result is always
// re-asserted to the current version.
func Merge(current *FormV2, patch *FormPatch) *FormV2 {
	merged := *current
	merged.SchemaVersion = SchemaVersion
	if patch == nil {
		return &merged
	}

	if patch.PersonalInfo != nil {
		mergePersonalInfo(&merged.PersonalInfo, patch.PersonalInfo)
	}
	if patch.FamilyInfo != nil {
		if patch.FamilyInfo.FatherGuardian != nil {
			mergeGuardian(&merged.FamilyInfo.FatherGuardian, patch.FamilyInfo.FatherGuardian)
		}
		if patch.FamilyInfo.MotherGuardian != nil {
			mergeGuardian(&merged.FamilyInfo.MotherGuardian, patch.FamilyInfo.MotherGuardian)
		}
		if patch.FamilyInfo.Siblings != nil {
			mergeSiblings(&merged.FamilyInfo.Siblings, patch.FamilyInfo.Siblings)
		}
	}
	if patch.FinancialDeclaration != nil {
		merged.FinancialDeclaration = *patch.FinancialDeclaration
	}
	return &merged
}

func mergePersonalInfo(dst *PersonalInfo, p *PersonalInfoPatch) {
	if p.FullName != nil {
		dst.FullName = *p.FullName
	}
	if p.Email != nil {
		dst.Email = *p.Email
	}
	if p.MobileNumber != nil {
		dst.MobileNumber = *p.MobileNumber
	}
	if p.StudentIDNo != nil {
		dst.StudentIDNo = *p.StudentIDNo
	}
	if p.ICNumber != nil {
		dst.ICNumber = *p.ICNumber
	}
	if p.Nationality != nil {
		dst.Nationality = *p.Nationality
	}
	if p.CountryCode != nil {
		dst.CountryCode = *p.CountryCode
	}
	if p.DateOfBirth != nil {
		dst.DateOfBirth = *p.DateOfBirth
	}
	if p.CampusOptionID != nil {
		dst.CampusOptionID = *p.CampusOptionID
	}
	if p.FacultyOptionID != nil {
		dst.FacultyOptionID = *p.FacultyOptionID
	}
	if p.CourseOptionID != nil {
		dst.CourseOptionID = *p.CourseOptionID
	}
	if p.YearOfStudy != nil {
		dst.YearOfStudy = *p.YearOfStudy
	}
	if p.CGPA != nil {
		dst.CGPA = *p.CGPA
	}
}

func mergeGuardian(dst *Guardian, p *GuardianPatch) {
	if p.HasGuardian != nil {
		v := *p.HasGuardian
		dst.HasGuardian = &v
	}
	if p.FullName != nil {
		dst.FullName = *p.FullName
	}
	if p.Occupation != nil {
		dst.Occupation = *p.Occupation
	}
	if p.MonthlyIncome != nil {
		dst.MonthlyIncome = *p.MonthlyIncome
	}
	if p.MobileNumber != nil {
		dst.MobileNumber = *p.MobileNumber
	}
	if p.DateOfBirth != nil {
		dst.DateOfBirth = *p.DateOfBirth
	}
}

func mergeSiblings(dst *Siblings, p *SiblingsPatch) {
	// Bucket arrays replace wholesale; a present-but-empty array clears
	// the bucket.
	if p.Above18Working != nil {
		dst.Above18Working = *p.Above18Working
	}
	if p.Above18NonWorking != nil {
		dst.Above18NonWorking = *p.Above18NonWorking
	}
	if p.StudyInIpt != nil {
		dst.StudyInIpt = *p.StudyInIpt
	}
	if p.Age7To17 != nil {
		dst.Age7To17 = *p.Age7To17
	}
	if p.Age6Below != nil {
		dst.Age6Below = *p.Age6Below
	}
	if p.SpecialTreatment != nil {
		if p.SpecialTreatment.HasOku != nil {
			dst.SpecialTreatment.HasOku = *p.SpecialTreatment.HasOku
		}
		if p.SpecialTreatment.HasChronicIllness != nil {
			dst.SpecialTreatment.HasChronicIllness = *p.SpecialTreatment.HasChronicIllness
		}
	}
}
