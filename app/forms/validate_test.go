package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func validForm() *FormV2 {
	f := NewDefaultForm("Aisyah Binti Rahman", "aisyah@student.mmu.edu.my", "+60123456789")
	f.PersonalInfo.StudentIDNo = "1211103456"
	f.PersonalInfo.DateOfBirth = "2004-06-15"
	f.PersonalInfo.CGPA = 3.75
	return f
}

func fieldNames(errs []FieldError) []string {
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Field
	}
	return names
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	assert.Empty(t, Validate(validForm(), testNow))
}

func TestValidateNationalityCountryCrossRule(t *testing.T) {
	f := validForm()
	f.PersonalInfo.Nationality = "Indonesian"
	errs := Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "personalInfo.countryCode")

	f.PersonalInfo.CountryCode = "ID"
	assert.Empty(t, Validate(f, testNow))

	f.PersonalInfo.Nationality = "Malaysian"
	errs = Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "personalInfo.countryCode")
}

func TestValidateSupportDeclarationBothDirections(t *testing.T) {
	f := validForm()
	f.FinancialDeclaration.ReceivingOtherSupport = true
	errs := Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "financialDeclaration.supportProviderOptionIds")

	f.FinancialDeclaration.SupportProviderOptionIDs = []string{"11111111-1111-4111-8111-111111111111"}
	assert.Empty(t, Validate(f, testNow))

	// Flipping the flag back without clearing the selection fails.
	f.FinancialDeclaration.ReceivingOtherSupport = false
	errs = Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "financialDeclaration.supportProviderOptionIds")
}

func TestValidatePhoneNormalization(t *testing.T) {
	assert.Equal(t, "+60123456789", NormalizePhone("+60 (12) 345-6789"))

	f := validForm()
	f.PersonalInfo.MobileNumber = "(012) 345-6789"
	assert.Empty(t, Validate(f, testNow))

	f.PersonalInfo.MobileNumber = "012-ABC-6789"
	errs := Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "personalInfo.mobileNumber")

	f.PersonalInfo.MobileNumber = ""
	errs = Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "personalInfo.mobileNumber")
}

func TestValidateAmountBounds(t *testing.T) {
	f := validForm()
	f.FinancialDeclaration.OutstandingInvoiceAmount = MaxAmount + 1
	errs := Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "financialDeclaration.mmuOutstandingInvoiceAmount")

	f.FinancialDeclaration.OutstandingInvoiceAmount = -1
	errs = Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "financialDeclaration.mmuOutstandingInvoiceAmount")

	f.FinancialDeclaration.OutstandingInvoiceAmount = MaxAmount
	assert.Empty(t, Validate(f, testNow))
}

func TestValidateMinimumAge(t *testing.T) {
	f := validForm()
	// Fifteen years minus a day before now: too young.
	f.PersonalInfo.DateOfBirth = testNow.AddDate(-MinApplicantYears, 0, 1).Format("2006-01-02")
	errs := Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "personalInfo.dateOfBirth")

	f.PersonalInfo.DateOfBirth = testNow.AddDate(-MinApplicantYears, 0, -1).Format("2006-01-02")
	assert.Empty(t, Validate(f, testNow))

	f.PersonalInfo.DateOfBirth = "15-06-2004"
	errs = Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "personalInfo.dateOfBirth")
}

func TestValidateGuardianRulesSkippedWhenAbsent(t *testing.T) {
	f := validForm()
	f.FamilyInfo.FatherGuardian.MonthlyIncome = -5
	errs := Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "familyInfo.fatherGuardian.monthlyIncome")

	absent := false
	f.FamilyInfo.FatherGuardian.HasGuardian = &absent
	assert.Empty(t, Validate(f, testNow))
}

func TestValidateSiblingSalaryOnlyInWorkingBucket(t *testing.T) {
	f := validForm()
	f.FamilyInfo.Siblings.Age7To17 = []SiblingMember{
		{MemberID: "22222222-2222-4222-8222-222222222222", FullName: "Cik", Salary: 500},
	}
	errs := Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "familyInfo.siblings.age7to17[0].salary")

	f.FamilyInfo.Siblings.Age7To17[0].Salary = 0
	assert.Empty(t, Validate(f, testNow))
}

func TestValidateSiblingMemberIDMatchesSlotGrammar(t *testing.T) {
	f := validForm()
	f.FamilyInfo.Siblings.Age7To17 = []SiblingMember{
		{MemberID: "member-1", FullName: "Cik"},
	}
	errs := Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "familyInfo.siblings.age7to17[0].memberId")

	// Uppercase parses as a UUID but is not the canonical text form the
	// slot keys are built from.
	f.FamilyInfo.Siblings.Age7To17[0].MemberID = "22222222-2222-4222-8222-22222222222A"
	errs = Validate(f, testNow)
	assert.Contains(t, fieldNames(errs), "familyInfo.siblings.age7to17[0].memberId")

	// A member id that validates always yields a grammar-valid slot key,
	// so a valid form can never require an undeclarable upload.
	f.FamilyInfo.Siblings.Age7To17[0].MemberID = "22222222-2222-4222-8222-222222222222"
	assert.Empty(t, Validate(f, testNow))
	assert.True(t, IsValidSlotKey(SiblingSlot(BucketAge7To17, f.FamilyInfo.Siblings.Age7To17[0].MemberID, "icDoc")))
}

func TestValidateSiblingRequiresIdentity(t *testing.T) {
	f := validForm()
	f.FamilyInfo.Siblings.StudyInIpt = []SiblingMember{{}}
	errs := Validate(f, testNow)
	names := fieldNames(errs)
	assert.Contains(t, names, "familyInfo.siblings.studyInIpt[0].memberId")
	assert.Contains(t, names, "familyInfo.siblings.studyInIpt[0].fullName")
}
