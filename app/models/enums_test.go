package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []ApplicationStatus{
	StatusDraft, StatusSubmitted, StatusUnderReview,
	StatusShortlisted, StatusRejected, StatusAwarded,
}

func TestIsTransitionAllowedExhaustive(t *testing.T) {
	allowed := map[ApplicationStatus]map[ApplicationStatus]bool{
		StatusDraft:       {StatusSubmitted: true},
		StatusSubmitted:   {StatusUnderReview: true},
		StatusUnderReview: {StatusShortlisted: true, StatusRejected: true},
		StatusShortlisted: {StatusAwarded: true, StatusRejected: true},
		StatusRejected:    {},
		StatusAwarded:     {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := allowed[from][to]
			assert.Equalf(t, want, IsTransitionAllowed(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestIsTransitionAllowedUnknownStatus(t *testing.T) {
	assert.False(t, IsTransitionAllowed("bogus", StatusSubmitted))
	assert.False(t, IsTransitionAllowed(StatusDraft, "bogus"))
}

func TestCanReopen(t *testing.T) {
	tests := []struct {
		status ApplicationStatus
		want   bool
	}{
		{StatusDraft, false},
		{StatusSubmitted, true},
		{StatusUnderReview, true},
		{StatusShortlisted, true},
		{StatusRejected, false},
		{StatusAwarded, false},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, CanReopen(tt.status), "CanReopen(%s)", tt.status)
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus("pending"))
	assert.False(t, IsValidStatus(""))
}
