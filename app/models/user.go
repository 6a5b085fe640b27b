package models

import "time"

type User struct {
	ID        string     `json:"id" validate:"required,uuid"`
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"-" validate:"required,min=8"`
	FirstName string     `json:"first_name" validate:"required"`
	LastName  string     `json:"last_name" validate:"required"`
	Phone     string     `json:"phone,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	Roles     []*Role    `json:"roles,omitempty"`
}

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StudentProfile holds the denormalized student details shown to reviewers.
// It is seeded at registration and refreshed from the form payload at submit.
type StudentProfile struct {
	UserID       string    `json:"user_id"`
	FullName     string    `json:"full_name"`
	StudentIDNo  string    `json:"student_id_no"`
	MobileNumber string    `json:"mobile_number"`
	Nationality  string    `json:"nationality"`
	CampusID     *string   `json:"campus_id,omitempty"`
	FacultyID    *string   `json:"faculty_id,omitempty"`
	CourseID     *string   `json:"course_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
