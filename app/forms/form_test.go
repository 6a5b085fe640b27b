package forms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultFormRoundTrip(t *testing.T) {
	f := NewDefaultForm("Aisyah Binti Rahman", "aisyah@student.mmu.edu.my", "+60123456789")

	raw, err := json.Marshal(f)
	require.NoError(t, err)
	assert.True(t, IsFormV2(raw))

	parsed, err := ParseFormV2(raw)
	require.NoError(t, err)
	assert.Equal(t, f, parsed)
}

func TestNewDefaultFormShape(t *testing.T) {
	f := NewDefaultForm("Tan Wei Ming", "tan@student.mmu.edu.my", "0123456789")

	assert.Equal(t, SchemaVersion, f.SchemaVersion)
	assert.Equal(t, "Tan Wei Ming", f.PersonalInfo.FullName)
	assert.Equal(t, "Malaysian", f.PersonalInfo.Nationality)
	assert.Zero(t, f.FinancialDeclaration.OutstandingInvoiceAmount)
	assert.Empty(t, f.FamilyInfo.Siblings.Above18Working)
	assert.Empty(t, f.FinancialDeclaration.SupportProviderOptionIDs)

	// Guardians default to present when the flag is undefined.
	assert.Nil(t, f.FamilyInfo.FatherGuardian.HasGuardian)
	assert.True(t, f.FamilyInfo.FatherGuardian.Present())
	assert.True(t, f.FamilyInfo.MotherGuardian.Present())
}

func TestIsFormV2RejectsForeignShapes(t *testing.T) {
	assert.False(t, IsFormV2([]byte(`{"schemaVersion":1,"personal":{}}`)))
	assert.False(t, IsFormV2([]byte(`{"fullName":"legacy shape"}`)))
	assert.False(t, IsFormV2([]byte(`not json`)))
	assert.False(t, IsFormV2(nil))
	assert.True(t, IsFormV2([]byte(`{"schemaVersion":2}`)))
}

func TestParseFormV2LegacyError(t *testing.T) {
	_, err := ParseFormV2([]byte(`{"schemaVersion":1}`))
	assert.ErrorIs(t, err, ErrLegacyPayload)
}

func TestMergeEmptyPatchIsIdentity(t *testing.T) {
	current := NewDefaultForm("Nur Izzati", "izzati@student.mmu.edu.my", "+60198765432")
	current.SchemaVersion = 0 // simulate a payload that lost its tag

	merged := Merge(current, &FormPatch{})

	want := *current
	want.SchemaVersion = SchemaVersion
	assert.Equal(t, &want, merged)
}

func TestMergeSingleLeafLeavesRestUnchanged(t *testing.T) {
	current := NewDefaultForm("Old Name", "old@student.mmu.edu.my", "0123456789")
	current.FinancialDeclaration.OutstandingInvoiceAmount = 4200.50

	newName := "New Name"
	merged := Merge(current, &FormPatch{
		PersonalInfo: &PersonalInfoPatch{FullName: &newName},
	})

	assert.Equal(t, "New Name", merged.PersonalInfo.FullName)
	assert.Equal(t, "old@student.mmu.edu.my", merged.PersonalInfo.Email)
	assert.Equal(t, 4200.50, merged.FinancialDeclaration.OutstandingInvoiceAmount)
	// Original untouched.
	assert.Equal(t, "Old Name", current.PersonalInfo.FullName)
}

func TestMergeSiblingBucketReplacesWholesale(t *testing.T) {
	current := NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	current.FamilyInfo.Siblings.Above18Working = []SiblingMember{
		{MemberID: "m-1", FullName: "Abu", Salary: 1500},
		{MemberID: "m-2", FullName: "Bakar", Salary: 1800},
	}
	current.FamilyInfo.Siblings.Age6Below = []SiblingMember{
		{MemberID: "m-3", FullName: "Cik"},
	}

	replacement := []SiblingMember{{MemberID: "m-9", FullName: "Dina", Salary: 2000}}
	merged := Merge(current, &FormPatch{
		FamilyInfo: &FamilyInfoPatch{
			Siblings: &SiblingsPatch{Above18Working: &replacement},
		},
	})

	assert.Equal(t, replacement, merged.FamilyInfo.Siblings.Above18Working)
	// Untouched bucket survives.
	assert.Len(t, merged.FamilyInfo.Siblings.Age6Below, 1)

	// A present-but-empty array clears the bucket.
	empty := []SiblingMember{}
	cleared := Merge(merged, &FormPatch{
		FamilyInfo: &FamilyInfoPatch{
			Siblings: &SiblingsPatch{Above18Working: &empty},
		},
	})
	assert.Empty(t, cleared.FamilyInfo.Siblings.Above18Working)
}

func TestMergeGuardianFlagAndSpecialTreatment(t *testing.T) {
	current := NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")

	absent := false
	oku := true
	merged := Merge(current, &FormPatch{
		FamilyInfo: &FamilyInfoPatch{
			FatherGuardian: &GuardianPatch{HasGuardian: &absent},
			Siblings: &SiblingsPatch{
				SpecialTreatment: &SpecialTreatmentPatch{HasOku: &oku},
			},
		},
	})

	assert.False(t, merged.FamilyInfo.FatherGuardian.Present())
	assert.True(t, merged.FamilyInfo.Siblings.SpecialTreatment.HasOku)
	assert.False(t, merged.FamilyInfo.Siblings.SpecialTreatment.HasChronicIllness)
	// Mother guardian untouched, still defaulted present.
	assert.True(t, merged.FamilyInfo.MotherGuardian.Present())
}

func TestMergeFinancialDeclarationReplacesWholesale(t *testing.T) {
	current := NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	current.FinancialDeclaration.BankName = "Maybank"
	current.FinancialDeclaration.OutstandingInvoiceAmount = 900

	merged := Merge(current, &FormPatch{
		FinancialDeclaration: &FinancialDeclaration{
			BankName:                 "CIMB",
			ReceivingOtherSupport:    true,
			SupportProviderOptionIDs: []string{"11111111-1111-4111-8111-111111111111"},
		},
	})

	assert.Equal(t, "CIMB", merged.FinancialDeclaration.BankName)
	// Wholesale replacement: fields missing from the patch reset.
	assert.Zero(t, merged.FinancialDeclaration.OutstandingInvoiceAmount)
	assert.True(t, merged.FinancialDeclaration.ReceivingOtherSupport)
}
