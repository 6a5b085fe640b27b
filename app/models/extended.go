package models

import "time"

// ReviewListEntry extends the base Application with the columns shown on
// the admin review queue.
type ReviewListEntry struct {
	Application
	ScholarshipTitle string `json:"scholarship_title"`
	StudentName      string `json:"student_name"`
	StudentEmail     string `json:"student_email"`
	StudentIDNo      string `json:"student_id_no"`
}

type DashboardStats struct {
	TotalScholarships  int                       `json:"total_scholarships"`
	OpenScholarships   int                       `json:"open_scholarships"`
	TotalApplications  int                       `json:"total_applications"`
	CountsByStatus     map[ApplicationStatus]int `json:"counts_by_status"`
	RecentSubmissions  []*ReviewListEntry        `json:"recent_submissions"`
	SubmissionsToday   int                       `json:"submissions_today"`
	AwaitingFirstLook  int                       `json:"awaiting_first_look"`
	LastSubmissionTime *time.Time                `json:"last_submission_time,omitempty"`
}
