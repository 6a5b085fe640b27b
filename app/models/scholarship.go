package models

import "time"

type Scholarship struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ProviderName string     `json:"provider_name"`
	Amount       float64    `json:"amount"`
	Deadline     time.Time  `json:"deadline"`
	IsPublished  bool       `json:"is_published"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// IsOpen reports whether a scholarship accepts new submissions at t.
func (s *Scholarship) IsOpen(t time.Time) bool {
	return s.IsPublished && s.DeletedAt == nil && t.Before(s.Deadline)
}
