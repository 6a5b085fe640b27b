package forms

import (
	"fmt"
	"regexp"
)

// Base slots required on every application.
const (
	SlotStudentIDProof     = "personal.studentIdProof"
	SlotLatestTranscript   = "personal.latestTranscript"
	SlotOutstandingInvoice = "financial.mmuOutstandingInvoice"

	SlotFatherPayslip    = "family.fatherGuardian.payslip"
	SlotMotherPayslip    = "family.motherGuardian.payslip"
	SlotOkuCard          = "family.specialTreatment.okuCard"
	SlotChronicTreatment = "family.specialTreatment.chronicTreatment"
)

// slotKeyPattern is the closed grammar for attachment slot keys. Any key
// outside the grammar is rejected at the HTTP boundary before it reaches
// the resolver. Member and provider ids are UUIDs.
var slotKeyPattern = regexp.MustCompile(
	`^(?:` +
		`personal\.(?:studentIdProof|latestTranscript)` +
		`|financial\.mmuOutstandingInvoice` +
		`|family\.(?:father|mother)Guardian\.payslip` +
		`|family\.specialTreatment\.(?:okuCard|chronicTreatment)` +
		`|siblings\.(?:above18Working|above18NonWorking|studyInIpt|age7to17|age6Below)\.[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.(?:icDoc|payslip)` +
		`|financial\.support\.[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.proof` +
		`)$`)

// IsValidSlotKey reports whether key belongs to the slot-key grammar.
func IsValidSlotKey(key string) bool {
	return slotKeyPattern.MatchString(key)
}

// SiblingSlot builds the slot key for one document of one sibling.
func SiblingSlot(bucket SiblingBucket, memberID, doc string) string {
	return fmt.Sprintf("siblings.%s.%s.%s", bucket, memberID, doc)
}

// SupportProofSlot builds the slot key for one support provider's proof
// of application.
func SupportProofSlot(providerID string) string {
	return fmt.Sprintf("financial.support.%s.proof", providerID)
}

// SlotSet is the set of required slot keys for one form.
type SlotSet map[string]struct{}

func (s SlotSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Keys returns the slot keys in the set, in no particular order.
func (s SlotSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	return keys
}

// RequiredSlots derives the mandatory upload slots from the form content
// alone. It performs no I/O and is deterministic for a given form value.
func RequiredSlots(f *FormV2) SlotSet {
	slots := SlotSet{
		SlotStudentIDProof:     {},
		SlotLatestTranscript:   {},
		SlotOutstandingInvoice: {},
	}

	if f.FamilyInfo.FatherGuardian.Present() {
		slots[SlotFatherPayslip] = struct{}{}
	}
	if f.FamilyInfo.MotherGuardian.Present() {
		slots[SlotMotherPayslip] = struct{}{}
	}

	sib := &f.FamilyInfo.Siblings
	for _, m := range sib.Above18Working {
		slots[SiblingSlot(BucketAbove18Working, m.MemberID, "icDoc")] = struct{}{}
		slots[SiblingSlot(BucketAbove18Working, m.MemberID, "payslip")] = struct{}{}
	}
	for _, bucket := range []SiblingBucket{
		BucketAbove18NonWorking, BucketStudyInIpt, BucketAge7To17, BucketAge6Below,
	} {
		for _, m := range sib.Bucket(bucket) {
			slots[SiblingSlot(bucket, m.MemberID, "icDoc")] = struct{}{}
		}
	}

	if sib.SpecialTreatment.HasOku {
		slots[SlotOkuCard] = struct{}{}
	}
	if sib.SpecialTreatment.HasChronicIllness {
		slots[SlotChronicTreatment] = struct{}{}
	}

	if f.FinancialDeclaration.ReceivingOtherSupport {
		for _, providerID := range f.FinancialDeclaration.SupportProviderOptionIDs {
			slots[SupportProofSlot(providerID)] = struct{}{}
		}
	}

	return slots
}
