package forms

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequiredSlotsBaseOnly(t *testing.T) {
	f := NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	absent := false
	f.FamilyInfo.FatherGuardian.HasGuardian = &absent
	f.FamilyInfo.MotherGuardian.HasGuardian = &absent

	slots := RequiredSlots(f)

	assert.Equal(t, SlotSet{
		SlotStudentIDProof:     {},
		SlotLatestTranscript:   {},
		SlotOutstandingInvoice: {},
	}, slots)
}

func TestRequiredSlotsGuardianDefaultsToPresent(t *testing.T) {
	f := NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	// Flags undefined: both payslips required.
	slots := RequiredSlots(f)
	assert.True(t, slots.Has(SlotFatherPayslip))
	assert.True(t, slots.Has(SlotMotherPayslip))

	present := true
	f.FamilyInfo.FatherGuardian.HasGuardian = &present
	absent := false
	f.FamilyInfo.MotherGuardian.HasGuardian = &absent

	slots = RequiredSlots(f)
	assert.True(t, slots.Has(SlotFatherPayslip))
	assert.False(t, slots.Has(SlotMotherPayslip))
}

func TestRequiredSlotsWorkingSiblingAddsTwoKeys(t *testing.T) {
	f := NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	before := RequiredSlots(f)

	memberID := uuid.NewString()
	f.FamilyInfo.Siblings.Above18Working = []SiblingMember{
		{MemberID: memberID, FullName: "Abu", Salary: 1500},
	}
	after := RequiredSlots(f)

	assert.Len(t, after, len(before)+2)
	assert.True(t, after.Has(SiblingSlot(BucketAbove18Working, memberID, "icDoc")))
	assert.True(t, after.Has(SiblingSlot(BucketAbove18Working, memberID, "payslip")))
}

func TestRequiredSlotsNonWorkingSiblingAddsICOnly(t *testing.T) {
	f := NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	before := RequiredSlots(f)

	memberID := uuid.NewString()
	f.FamilyInfo.Siblings.Age7To17 = []SiblingMember{
		{MemberID: memberID, FullName: "Cik"},
	}
	after := RequiredSlots(f)

	assert.Len(t, after, len(before)+1)
	assert.True(t, after.Has(SiblingSlot(BucketAge7To17, memberID, "icDoc")))
	assert.False(t, after.Has(SiblingSlot(BucketAge7To17, memberID, "payslip")))
}

func TestRequiredSlotsSpecialTreatment(t *testing.T) {
	f := NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	f.FamilyInfo.Siblings.SpecialTreatment.HasOku = true
	f.FamilyInfo.Siblings.SpecialTreatment.HasChronicIllness = true

	slots := RequiredSlots(f)
	assert.True(t, slots.Has(SlotOkuCard))
	assert.True(t, slots.Has(SlotChronicTreatment))
}

func TestRequiredSlotsSupportProviderToggle(t *testing.T) {
	f := NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	providerID := uuid.NewString()

	f.FinancialDeclaration.ReceivingOtherSupport = true
	f.FinancialDeclaration.SupportProviderOptionIDs = []string{providerID}
	slots := RequiredSlots(f)
	assert.True(t, slots.Has(SupportProofSlot(providerID)))

	// Provider ids without the flag do not produce slots; validation
	// separately rejects that combination.
	f.FinancialDeclaration.ReceivingOtherSupport = false
	slots = RequiredSlots(f)
	assert.False(t, slots.Has(SupportProofSlot(providerID)))
}

func TestRequiredSlotsDeterministic(t *testing.T) {
	f := NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	f.FamilyInfo.Siblings.StudyInIpt = []SiblingMember{
		{MemberID: uuid.NewString(), FullName: "Dina"},
	}
	assert.Equal(t, RequiredSlots(f), RequiredSlots(f))
}

func TestSlotSetKeysMirrorTheSet(t *testing.T) {
	f := NewDefaultForm("X", "x@student.mmu.edu.my", "0123456789")
	slots := RequiredSlots(f)

	keys := slots.Keys()
	assert.Len(t, keys, len(slots))
	for _, key := range keys {
		assert.True(t, slots.Has(key))
	}
	// Slots covered by uploads but absent from the set stay out: the
	// verified flag is only ever granted to keys returned here.
	assert.NotContains(t, keys, SlotOkuCard)
}

func TestIsValidSlotKey(t *testing.T) {
	memberID := uuid.NewString()
	valid := []string{
		SlotStudentIDProof,
		SlotLatestTranscript,
		SlotOutstandingInvoice,
		SlotFatherPayslip,
		SlotMotherPayslip,
		SlotOkuCard,
		SlotChronicTreatment,
		SiblingSlot(BucketAge6Below, memberID, "icDoc"),
		SiblingSlot(BucketAbove18Working, memberID, "payslip"),
		SupportProofSlot(uuid.NewString()),
	}
	for _, key := range valid {
		assert.Truef(t, IsValidSlotKey(key), "key %s", key)
	}

	invalid := []string{
		"",
		"personal.somethingElse",
		"siblings.unknownBucket." + memberID + ".icDoc",
		"siblings.age7to17.not-a-uuid.icDoc",
		"financial.support..proof",
		"personal.studentIdProof.extra",
		"FAMILY.fatherGuardian.payslip",
	}
	for _, key := range invalid {
		assert.Falsef(t, IsValidSlotKey(key), "key %s", key)
	}
}
