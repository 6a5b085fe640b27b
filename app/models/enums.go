package models

// ApplicationStatus defines the lifecycle states of a scholarship application.
type ApplicationStatus string

const (
	StatusDraft       ApplicationStatus = "draft"
	StatusSubmitted   ApplicationStatus = "submitted"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusAwarded     ApplicationStatus = "awarded"
)

// statusSuccessors is the fixed forward transition table. Rejected and
// awarded are terminal. Reopen is not part of this table; it is the only
// backward move and is handled by CanReopen.
var statusSuccessors = map[ApplicationStatus][]ApplicationStatus{
	StatusDraft:       {StatusSubmitted},
	StatusSubmitted:   {StatusUnderReview},
	StatusUnderReview: {StatusShortlisted, StatusRejected},
	StatusShortlisted: {StatusAwarded, StatusRejected},
	StatusRejected:    {},
	StatusAwarded:     {},
}

// IsValidStatus reports whether s is one of the six known statuses.
func IsValidStatus(s ApplicationStatus) bool {
	_, ok := statusSuccessors[s]
	return ok
}

// IsTransitionAllowed reports whether to is in the successor set of from.
func IsTransitionAllowed(from, to ApplicationStatus) bool {
	for _, next := range statusSuccessors[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanReopen reports whether an application in status s may be reopened
// back to draft by an admin. Draft cannot be reopened (it already is),
// and the terminal states are final.
func CanReopen(s ApplicationStatus) bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusShortlisted:
		return true
	}
	return false
}

// OptionKind defines the kinds of reference data option items.
type OptionKind string

const (
	OptionCampus          OptionKind = "campus"
	OptionFaculty         OptionKind = "faculty"
	OptionCourse          OptionKind = "course"
	OptionSupportProvider OptionKind = "support_provider"
)

// EmailStatus defines the outcome recorded for a notification attempt.
type EmailStatus string

const (
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)
