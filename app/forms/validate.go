package forms

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrLegacyPayload marks a payload whose schema tag is not the current
// version. Legacy payloads are read-only.
var ErrLegacyPayload = errors.New("unsupported legacy form payload")

// FieldError is one validation failure, addressed by its JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	// MaxAmount bounds every monetary and numeric field on the form.
	MaxAmount = 10_000_000
	// MinApplicantYears is the look-back applied to any date of birth
	// present on the form.
	MinApplicantYears = 15

	nationalityMalaysian = "Malaysian"
	dateLayout           = "2006-01-02"
)

// phonePattern matches an E.164-like number after normalization.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// NormalizePhone strips spaces, parentheses and dashes from a raw phone
// number before pattern matching.
func NormalizePhone(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '(', ')', '-':
			return -1
		}
		return r
	}, raw)
}

// Validate applies the schema and cross-field rules to a complete form
// and returns every violation found.
func Validate(f *FormV2, now time.Time) []FieldError {
	var errs []FieldError

	p := &f.PersonalInfo
	if strings.TrimSpace(p.FullName) == "" {
		errs = append(errs, FieldError{"personalInfo.fullName", "is required"})
	}
	if strings.TrimSpace(p.Email) == "" {
		errs = append(errs, FieldError{"personalInfo.email", "is required"})
	}
	if strings.TrimSpace(p.StudentIDNo) == "" {
		errs = append(errs, FieldError{"personalInfo.studentIdNo", "is required"})
	}
	errs = append(errs, validatePhone("personalInfo.mobileNumber", p.MobileNumber, true)...)

	// Nationality and country code require each other's state: a
	// non-Malaysian applicant must name a country, a Malaysian must not.
	if p.Nationality != nationalityMalaysian && strings.TrimSpace(p.CountryCode) == "" {
		errs = append(errs, FieldError{"personalInfo.countryCode", "is required for non-Malaysian nationality"})
	}
	if p.Nationality == nationalityMalaysian && strings.TrimSpace(p.CountryCode) != "" {
		errs = append(errs, FieldError{"personalInfo.countryCode", "must be empty for Malaysian nationality"})
	}

	errs = append(errs, validateDOB("personalInfo.dateOfBirth", p.DateOfBirth, now)...)
	errs = append(errs, validateAmount("personalInfo.cgpa", p.CGPA)...)
	if p.YearOfStudy < 0 || p.YearOfStudy > MaxAmount {
		errs = append(errs, FieldError{"personalInfo.yearOfStudy", "is out of range"})
	}

	errs = append(errs, validateGuardian("familyInfo.fatherGuardian", &f.FamilyInfo.FatherGuardian, now)...)
	errs = append(errs, validateGuardian("familyInfo.motherGuardian", &f.FamilyInfo.MotherGuardian, now)...)

	for _, bucket := range []SiblingBucket{
		BucketAbove18Working, BucketAbove18NonWorking, BucketStudyInIpt,
		BucketAge7To17, BucketAge6Below,
	} {
		for i, m := range f.FamilyInfo.Siblings.Bucket(bucket) {
			field := fmt.Sprintf("familyInfo.siblings.%s[%d]", bucket, i)
			if strings.TrimSpace(m.MemberID) == "" {
				errs = append(errs, FieldError{field + ".memberId", "is required"})
			} else if !isCanonicalUUID(m.MemberID) {
				errs = append(errs, FieldError{field + ".memberId", "must be a lowercase UUID"})
			}
			if strings.TrimSpace(m.FullName) == "" {
				errs = append(errs, FieldError{field + ".fullName", "is required"})
			}
			if bucket == BucketAbove18Working {
				errs = append(errs, validateAmount(field+".salary", m.Salary)...)
			} else if m.Salary != 0 {
				errs = append(errs, FieldError{field + ".salary", "is only allowed in the working bucket"})
			}
		}
	}

	fin := &f.FinancialDeclaration
	errs = append(errs, validateAmount("financialDeclaration.mmuOutstandingInvoiceAmount", fin.OutstandingInvoiceAmount)...)

	// Support declaration and provider selection must agree in both
	// directions.
	if fin.ReceivingOtherSupport && len(fin.SupportProviderOptionIDs) == 0 {
		errs = append(errs, FieldError{"financialDeclaration.supportProviderOptionIds", "at least one provider is required when receiving other support"})
	}
	if !fin.ReceivingOtherSupport && len(fin.SupportProviderOptionIDs) > 0 {
		errs = append(errs, FieldError{"financialDeclaration.supportProviderOptionIds", "must be empty when not receiving other support"})
	}

	return errs
}

func validateGuardian(prefix string, g *Guardian, now time.Time) []FieldError {
	if !g.Present() {
		return nil
	}
	var errs []FieldError
	errs = append(errs, validateAmount(prefix+".monthlyIncome", g.MonthlyIncome)...)
	errs = append(errs, validatePhone(prefix+".mobileNumber", g.MobileNumber, false)...)
	errs = append(errs, validateDOB(prefix+".dateOfBirth", g.DateOfBirth, now)...)
	return errs
}

func validatePhone(field, raw string, required bool) []FieldError {
	normalized := NormalizePhone(raw)
	if normalized == "" {
		if required {
			return []FieldError{{field, "is required"}}
		}
		return nil
	}
	if !phonePattern.MatchString(normalized) {
		return []FieldError{{field, "is not a valid phone number"}}
	}
	return nil
}

func validateAmount(field string, v float64) []FieldError {
	if v < 0 || v > MaxAmount {
		return []FieldError{{field, "is out of range"}}
	}
	return nil
}

// isCanonicalUUID accepts only the lowercase RFC 4122 text form, the
// only member-id form the slot-key grammar recognizes.
func isCanonicalUUID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.String() == s
}

// validateDOB parses a date of birth when present and enforces the
// minimum-age look-back on every date-of-birth field the form carries.
func validateDOB(field, raw string, now time.Time) []FieldError {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	dob, err := time.Parse(dateLayout, raw)
	if err != nil {
		return []FieldError{{field, "must be a valid date (YYYY-MM-DD)"}}
	}
	if dob.After(now.AddDate(-MinApplicantYears, 0, 0)) {
		return []FieldError{{field, fmt.Sprintf("must be at least %d years in the past", MinApplicantYears)}}
	}
	return nil
}
