package models

import "time"

type Application struct {
	ID            string            `json:"id"`
	ScholarshipID string            `json:"scholarship_id"`
	StudentID     string            `json:"student_id"`
	Status        ApplicationStatus `json:"status"`
	SubmittedAt   *time.Time        `json:"submitted_at,omitempty"`
	LockedAt      *time.Time        `json:"locked_at,omitempty"`
	ReopenedAt    *time.Time        `json:"reopened_at,omitempty"`
	AdminNotes    string            `json:"admin_notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     *time.Time        `json:"deleted_at,omitempty"`
}

// ApplicationWithScholarship joins the scholarship columns a student or
// reviewer needs when looking at a single application.
type ApplicationWithScholarship struct {
	Application
	ScholarshipTitle    string    `json:"scholarship_title"`
	ScholarshipDeadline time.Time `json:"scholarship_deadline"`
	StudentName         string    `json:"student_name,omitempty"`
	StudentEmail        string    `json:"student_email,omitempty"`
}

// ApplicationFormData is the versioned JSON payload row owned by an
// application. Payload is stored as raw JSON; SchemaVersion is the
// extracted discriminator (0 when the payload carries none).
type ApplicationFormData struct {
	ApplicationID string    `json:"application_id"`
	SchemaVersion int       `json:"schema_version"`
	Payload       []byte    `json:"payload"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ApplicationStatusHistory is the append-only audit trail of status moves.
type ApplicationStatusHistory struct {
	ID            string             `json:"id"`
	ApplicationID string             `json:"application_id"`
	FromStatus    *ApplicationStatus `json:"from_status,omitempty"`
	ToStatus      ApplicationStatus  `json:"to_status"`
	Reason        string             `json:"reason,omitempty"`
	ActorID       *string            `json:"actor_id,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// Attachment binds one slot key to one uploaded object.
type Attachment struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	SlotKey       string    `json:"slot_key"`
	ObjectKey     string    `json:"object_key"`
	FileName      string    `json:"file_name"`
	SizeBytes     int64     `json:"size_bytes"`
	MimeType      string    `json:"mime_type"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EmailLog records the outcome of one notification attempt. Failures are
// recorded here and never roll back the mutation that triggered them.
type EmailLog struct {
	ID            string      `json:"id"`
	ApplicationID *string     `json:"application_id,omitempty"`
	Recipient     string      `json:"recipient"`
	Subject       string      `json:"subject"`
	Status        EmailStatus `json:"status"`
	ErrorMessage  string      `json:"error_message,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OptionItem is one node of the campus/faculty/course tree or one entry
// of the flat support-provider list.
type OptionItem struct {
	ID        string     `json:"id"`
	Kind      OptionKind `json:"kind"`
	ParentID  *string    `json:"parent_id,omitempty"`
	Label     string     `json:"label"`
	SortOrder int        `json:"sort_order"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
