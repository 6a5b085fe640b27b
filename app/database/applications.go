package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/akhyar02/scholar-draft-sub000/app/models"
)

const applicationColumns = `a.id, a.scholarship_id, a.student_id, a.status,
	a.submitted_at, a.locked_at, a.reopened_at, a.admin_notes,
	a.created_at, a.updated_at, a.deleted_at`

func scanApplication(row interface{ Scan(...interface{}) error }, a *models.Application) error {
	return row.Scan(&a.ID, &a.ScholarshipID, &a.StudentID, &a.Status,
		&a.SubmittedAt, &a.LockedAt, &a.ReopenedAt, &a.AdminNotes,
		&a.CreatedAt, &a.UpdatedAt, &a.DeletedAt)
}

func GetApplicationByID(db *sql.DB, id string) (*models.Application, error) {
	a := &models.Application{}
	query := `SELECT ` + applicationColumns + ` FROM applications a
			  WHERE a.id = $1 AND a.deleted_at IS NULL`
	if err := scanApplication(db.QueryRow(query, id), a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetOwnedApplication is the ownership-scoped read. A wrong id and a
// wrong owner both come back as sql.ErrNoRows, so callers cannot tell
// other students' applications apart from nonexistent ones.
func GetOwnedApplication(db *sql.DB, applicationID, studentID string) (*models.ApplicationWithScholarship, error) {
	out := &models.ApplicationWithScholarship{}
	query := `SELECT ` + applicationColumns + `, s.title, s.deadline
			  FROM applications a
			  JOIN scholarships s ON a.scholarship_id = s.id
			  WHERE a.id = $1 AND a.student_id = $2 AND a.deleted_at IS NULL`
	row := db.QueryRow(query, applicationID, studentID)
	err := row.Scan(&out.ID, &out.ScholarshipID, &out.StudentID, &out.Status,
		&out.SubmittedAt, &out.LockedAt, &out.ReopenedAt, &out.AdminNotes,
		&out.CreatedAt, &out.UpdatedAt, &out.DeletedAt,
		&out.ScholarshipTitle, &out.ScholarshipDeadline)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// HasActiveApplication is the pre-check behind the one-application-per-
// (student, scholarship) invariant.
func HasActiveApplication(db *sql.DB, studentID, scholarshipID string) (bool, error) {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE student_id = $1 AND scholarship_id = $2 AND deleted_at IS NULL
		)`, studentID, scholarshipID).Scan(&exists)
	return exists, err
}

// CreateDraftApplication inserts the application row, the seeded form row
// and the initial history entry as one atomic unit.
func CreateDraftApplication(db *sql.DB, scholarshipID, studentID string, schemaVersion int, payload []byte) (*models.Application, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	a := &models.Application{
		ScholarshipID: scholarshipID,
		StudentID:     studentID,
		Status:        models.StatusDraft,
	}
	err = tx.QueryRow(`
		INSERT INTO applications (scholarship_id, student_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		scholarshipID, studentID, models.StatusDraft,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO application_form_data (application_id, schema_version, payload)
		VALUES ($1, $2, $3)`,
		a.ID, schemaVersion, payload)
	if err != nil {
		return nil, err
	}

	if err := InsertStatusHistoryTx(tx, &models.ApplicationStatusHistory{
		ApplicationID: a.ID,
		ToStatus:      models.StatusDraft,
		Reason:        "draft created",
		ActorID:       &studentID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return a, nil
}

// HardDeleteApplication removes an application and its dependent rows.
// Only the legacy-draft recreation path may call this.
func HardDeleteApplication(tx *sql.Tx, applicationID string) error {
	for _, query := range []string{
		`DELETE FROM application_attachments WHERE application_id = $1`,
		`DELETE FROM application_form_data WHERE application_id = $1`,
		`DELETE FROM email_logs WHERE application_id = $1`,
		`DELETE FROM application_status_history WHERE application_id = $1`,
		`DELETE FROM applications WHERE id = $1`,
	} {
		if _, err := tx.Exec(query, applicationID); err != nil {
			return err
		}
	}
	return nil
}

func GetFormData(db *sql.DB, applicationID string) (*models.ApplicationFormData, error) {
	fd := &models.ApplicationFormData{}
	query := `SELECT application_id, schema_version, payload, updated_at
			  FROM application_form_data WHERE application_id = $1`
	err := db.QueryRow(query, applicationID).Scan(
		&fd.ApplicationID, &fd.SchemaVersion, &fd.Payload, &fd.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return fd, nil
}

func UpdateFormPayload(db *sql.DB, applicationID string, schemaVersion int, payload []byte) error {
	result, err := db.Exec(`
		UPDATE application_form_data
		SET schema_version = $2, payload = $3, updated_at = NOW()
		WHERE application_id = $1`,
		applicationID, schemaVersion, payload)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func UpdateFormPayloadTx(tx *sql.Tx, applicationID string, schemaVersion int, payload []byte) error {
	_, err := tx.Exec(`
		UPDATE application_form_data
		SET schema_version = $2, payload = $3, updated_at = NOW()
		WHERE application_id = $1`,
		applicationID, schemaVersion, payload)
	return err
}

// GetApplicationStatusForUpdateTx re-reads the status under a row lock
// so two concurrent submits cannot both pass the draft guard.
func GetApplicationStatusForUpdateTx(tx *sql.Tx, applicationID string) (models.ApplicationStatus, error) {
	var status models.ApplicationStatus
	err := tx.QueryRow(`
		SELECT status FROM applications
		WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`, applicationID).Scan(&status)
	return status, err
}

func MarkSubmittedTx(tx *sql.Tx, applicationID string, at time.Time) error {
	_, err := tx.Exec(`
		UPDATE applications
		SET status = $2, submitted_at = $3, locked_at = $3, updated_at = NOW()
		WHERE id = $1`,
		applicationID, models.StatusSubmitted, at)
	return err
}

func UpdateApplicationStatusTx(tx *sql.Tx, applicationID string, to models.ApplicationStatus) error {
	_, err := tx.Exec(`
		UPDATE applications SET status = $2, updated_at = NOW()
		WHERE id = $1`, applicationID, to)
	return err
}

// ReopenApplicationTx is the only backward move: back to draft, the lock
// cleared and the reopen timestamp set.
func ReopenApplicationTx(tx *sql.Tx, applicationID string, at time.Time) error {
	_, err := tx.Exec(`
		UPDATE applications
		SET status = $2, locked_at = NULL, reopened_at = $3, updated_at = NOW()
		WHERE id = $1`,
		applicationID, models.StatusDraft, at)
	return err
}

func InsertStatusHistoryTx(tx *sql.Tx, h *models.ApplicationStatusHistory) error {
	_, err := tx.Exec(`
		INSERT INTO application_status_history (application_id, from_status, to_status, reason, actor_id)
		VALUES ($1, $2, $3, $4, $5)`,
		h.ApplicationID, h.FromStatus, h.ToStatus, h.Reason, h.ActorID)
	return err
}

func GetStatusHistory(db *sql.DB, applicationID string) ([]*models.ApplicationStatusHistory, error) {
	rows, err := db.Query(`
		SELECT id, application_id, from_status, to_status, reason, actor_id, created_at
		FROM application_status_history
		WHERE application_id = $1
		ORDER BY created_at ASC`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []*models.ApplicationStatusHistory
	for rows.Next() {
		h := &models.ApplicationStatusHistory{}
		if err := rows.Scan(&h.ID, &h.ApplicationID, &h.FromStatus, &h.ToStatus,
			&h.Reason, &h.ActorID, &h.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func ListStudentApplications(db *sql.DB, studentID string) ([]*models.ApplicationWithScholarship, error) {
	query := `SELECT ` + applicationColumns + `, s.title, s.deadline
			  FROM applications a
			  JOIN scholarships s ON a.scholarship_id = s.id
			  WHERE a.student_id = $1 AND a.deleted_at IS NULL
			  ORDER BY a.created_at DESC`
	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*models.ApplicationWithScholarship
	for rows.Next() {
		out := &models.ApplicationWithScholarship{}
		err := rows.Scan(&out.ID, &out.ScholarshipID, &out.StudentID, &out.Status,
			&out.SubmittedAt, &out.LockedAt, &out.ReopenedAt, &out.AdminNotes,
			&out.CreatedAt, &out.UpdatedAt, &out.DeletedAt,
			&out.ScholarshipTitle, &out.ScholarshipDeadline)
		if err != nil {
			return nil, err
		}
		apps = append(apps, out)
	}
	return apps, rows.Err()
}

// ReviewFilters represents listing options for the admin review queue.
type ReviewFilters struct {
	Status        string
	ScholarshipID string
	Limit         int
	Offset        int
}

func ListApplicationsForReview(db *sql.DB, filters ReviewFilters) ([]*models.ReviewListEntry, int, error) {
	where := `a.deleted_at IS NULL AND a.status <> 'draft'`
	var args []interface{}
	argIndex := 1

	if filters.Status != "" {
		where += fmt.Sprintf(" AND a.status = $%d", argIndex)
		args = append(args, filters.Status)
		argIndex++
	}
	if filters.ScholarshipID != "" {
		where += fmt.Sprintf(" AND a.scholarship_id = $%d", argIndex)
		args = append(args, filters.ScholarshipID)
		argIndex++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM applications a WHERE ` + where
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + applicationColumns + `, s.title,
			  p.full_name, u.email, p.student_id_no
			  FROM applications a
			  JOIN scholarships s ON a.scholarship_id = s.id
			  JOIN users u ON a.student_id = u.id
			  JOIN student_profiles p ON a.student_id = p.user_id
			  WHERE ` + where + `
			  ORDER BY a.submitted_at DESC NULLS LAST`
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []*models.ReviewListEntry
	for rows.Next() {
		e := &models.ReviewListEntry{}
		err := rows.Scan(&e.ID, &e.ScholarshipID, &e.StudentID, &e.Status,
			&e.SubmittedAt, &e.LockedAt, &e.ReopenedAt, &e.AdminNotes,
			&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
			&e.ScholarshipTitle, &e.StudentName, &e.StudentEmail, &e.StudentIDNo)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

func UpdateAdminNotes(db *sql.DB, applicationID, notes string) error {
	result, err := db.Exec(`
		UPDATE applications SET admin_notes = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`, applicationID, notes)
	if err != nil {
		return err
	}
	return requireRowAffected(result)
}

func GetAttachments(db *sql.DB, applicationID string) ([]*models.Attachment, error) {
	rows, err := db.Query(`
		SELECT id, application_id, slot_key, object_key, file_name, size_bytes,
			   mime_type, verified, created_at, updated_at
		FROM application_attachments
		WHERE application_id = $1
		ORDER BY slot_key`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []*models.Attachment
	for rows.Next() {
		att := &models.Attachment{}
		if err := rows.Scan(&att.ID, &att.ApplicationID, &att.SlotKey, &att.ObjectKey,
			&att.FileName, &att.SizeBytes, &att.MimeType, &att.Verified,
			&att.CreatedAt, &att.UpdatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, att)
	}
	return attachments, rows.Err()
}

// UpsertAttachment binds a slot key to an uploaded object, replacing any
// previous upload for the same slot. Re-uploading resets verification.
func UpsertAttachment(db *sql.DB, att *models.Attachment) error {
	query := `
		INSERT INTO application_attachments
			(application_id, slot_key, object_key, file_name, size_bytes, mime_type, verified)
		VALUES ($1, $2, $3, $4, $5, $6, false)
		ON CONFLICT (application_id, slot_key) DO UPDATE
		SET object_key = EXCLUDED.object_key,
			file_name = EXCLUDED.file_name,
			size_bytes = EXCLUDED.size_bytes,
			mime_type = EXCLUDED.mime_type,
			verified = false,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`
	return db.QueryRow(query, att.ApplicationID, att.SlotKey, att.ObjectKey,
		att.FileName, att.SizeBytes, att.MimeType).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
}

// MarkAttachmentsVerifiedTx flips the verified flag on the named slots
// only. Uploads for slots outside the set were never checked against
// storage and keep verified = false.
func MarkAttachmentsVerifiedTx(tx *sql.Tx, applicationID string, slotKeys []string) error {
	if len(slotKeys) == 0 {
		return nil
	}
	_, err := tx.Exec(`
		UPDATE application_attachments SET verified = true, updated_at = NOW()
		WHERE application_id = $1 AND slot_key = ANY($2)`,
		applicationID, pq.Array(slotKeys))
	return err
}

func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{CountsByStatus: map[models.ApplicationStatus]int{}}

	err := db.QueryRow(`
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE is_published = true AND deadline > NOW())
		FROM scholarships WHERE deleted_at IS NULL`).
		Scan(&stats.TotalScholarships, &stats.OpenScholarships)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT status, COUNT(*) FROM applications
		WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status models.ApplicationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.CountsByStatus[status] = count
		stats.TotalApplications += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COUNT(*) FILTER (WHERE submitted_at >= CURRENT_DATE),
			   COUNT(*) FILTER (WHERE status = 'submitted'),
			   MAX(submitted_at)
		FROM applications WHERE deleted_at IS NULL`).
		Scan(&stats.SubmissionsToday, &stats.AwaitingFirstLook, &stats.LastSubmissionTime)
	if err != nil {
		return nil, err
	}

	recent, _, err := ListApplicationsForReview(db, ReviewFilters{Limit: 5})
	if err != nil {
		return nil, err
	}
	stats.RecentSubmissions = recent

	return stats, nil
}
