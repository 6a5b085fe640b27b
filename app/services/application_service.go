package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"time"

	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/forms"
	"github.com/akhyar02/scholar-draft-sub000/app/models"
)

// CreateDraftApplication opens a new draft for one student on one
// scholarship: the application row, the seeded form row and the initial
// history entry are inserted as one atomic unit.
func CreateDraftApplication(db *sql.DB, scholarshipID, studentID, studentEmail string) (*models.Application, error) {
	profile, err := database.GetStudentProfile(db, studentID)
	if err == sql.ErrNoRows {
		return nil, ValidationError("a student profile is required before applying")
	}
	if err != nil {
		return nil, err
	}

	scholarship, err := database.GetScholarshipByID(db, scholarshipID)
	if err == sql.ErrNoRows {
		return nil, NotFoundError("scholarship not found")
	}
	if err != nil {
		return nil, err
	}
	if !scholarship.IsOpen(time.Now()) {
		return nil, ConflictError(CodeScholarshipClosed, "scholarship is not accepting applications")
	}

	// One non-deleted application per (student, scholarship). This is a
	// pre-check, not a constraint.
	exists, err := database.HasActiveApplication(db, studentID, scholarshipID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ConflictError(CodeDuplicateApplication, "an application for this scholarship already exists")
	}

	form := forms.NewDefaultForm(profile.FullName, studentEmail, profile.MobileNumber)
	payload, err := json.Marshal(form)
	if err != nil {
		return nil, err
	}

	return database.CreateDraftApplication(db, scholarshipID, studentID, forms.SchemaVersion, payload)
}

// GetOwnedApplication is the ownership-scoped read: a wrong id and a
// wrong owner are indistinguishable, both are not-found.
func GetOwnedApplication(db *sql.DB, applicationID, studentID string) (*models.ApplicationWithScholarship, error) {
	app, err := database.GetOwnedApplication(db, applicationID, studentID)
	if err == sql.ErrNoRows {
		return nil, NotFoundError("application not found")
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

// GetOwnedForm returns the current form payload for display. Legacy
// payloads are returned as-is with IsLegacy set; they are read-only.
type FormView struct {
	ApplicationID string          `json:"application_id"`
	IsLegacy      bool            `json:"is_legacy"`
	Payload       json.RawMessage `json:"payload"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func GetOwnedForm(db *sql.DB, applicationID, studentID string) (*FormView, error) {
	if _, err := GetOwnedApplication(db, applicationID, studentID); err != nil {
		return nil, err
	}
	fd, err := database.GetFormData(db, applicationID)
	if err == sql.ErrNoRows {
		return nil, NotFoundError("application not found")
	}
	if err != nil {
		return nil, err
	}
	return &FormView{
		ApplicationID: applicationID,
		IsLegacy:      !forms.IsFormV2(fd.Payload),
		Payload:       json.RawMessage(fd.Payload),
		UpdatedAt:     fd.UpdatedAt,
	}, nil
}

// UpdateDraftForm merges a partial edit into the draft's form payload.
// Only drafts in the current schema may be edited.
func UpdateDraftForm(db *sql.DB, applicationID, studentID string, patch *forms.FormPatch) (*forms.FormV2, error) {
	app, err := GetOwnedApplication(db, applicationID, studentID)
	if err != nil {
		return nil, err
	}
	if app.Status != models.StatusDraft {
		return nil, ConflictError(CodeApplicationLocked, "application is locked and cannot be edited")
	}

	fd, err := database.GetFormData(db, applicationID)
	if err != nil {
		return nil, err
	}
	current, err := forms.ParseFormV2(fd.Payload)
	if err == forms.ErrLegacyPayload {
		return nil, ConflictError(CodeLegacyDraft, "draft uses an unsupported legacy form and must be recreated")
	}
	if err != nil {
		return nil, err
	}

	merged := forms.Merge(current, patch)
	payload, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	if err := database.UpdateFormPayload(db, applicationID, forms.SchemaVersion, payload); err != nil {
		return nil, err
	}
	return merged, nil
}

// RecreateLegacyDraft discards a legacy-schema draft and opens a fresh
// one. This is the only path that hard-deletes an application.
func RecreateLegacyDraft(db *sql.DB, applicationID, studentID, studentEmail string) (*models.Application, error) {
	app, err := GetOwnedApplication(db, applicationID, studentID)
	if err != nil {
		return nil, err
	}
	if app.Status != models.StatusDraft {
		return nil, ConflictError(CodeApplicationLocked, "only drafts can be recreated")
	}
	fd, err := database.GetFormData(db, applicationID)
	if err != nil {
		return nil, err
	}
	if forms.IsFormV2(fd.Payload) {
		return nil, ConflictError(CodeLegacyDraft, "draft already uses the current form schema")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	if err := database.HardDeleteApplication(tx, applicationID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return CreateDraftApplication(db, app.ScholarshipID, studentID, studentEmail)
}

// DeclareAttachment binds a slot key to an upcoming upload and returns a
// presigned PUT URL for it.
func DeclareAttachment(ctx context.Context, db *sql.DB, store *ObjectStorage, applicationID, studentID, slotKey, fileName, mimeType string, sizeBytes int64) (*models.Attachment, string, error) {
	app, err := GetOwnedApplication(db, applicationID, studentID)
	if err != nil {
		return nil, "", err
	}
	if app.Status != models.StatusDraft {
		return nil, "", ConflictError(CodeApplicationLocked, "application is locked and cannot be edited")
	}
	if !forms.IsValidSlotKey(slotKey) {
		return nil, "", ConflictError(CodeInvalidSlotKey, "unknown attachment slot "+slotKey)
	}
	if !IsAllowedMimeType(mimeType) {
		return nil, "", AttachmentError(CodeInvalidMimeType, slotKey, "file type not accepted")
	}
	if sizeBytes <= 0 || sizeBytes > store.MaxSizeBytes() {
		return nil, "", AttachmentError(CodeFileTooLarge, slotKey, "file exceeds the upload size limit")
	}

	att := &models.Attachment{
		ApplicationID: applicationID,
		SlotKey:       slotKey,
		ObjectKey:     BuildObjectKey(applicationID, slotKey, fileName),
		FileName:      fileName,
		SizeBytes:     sizeBytes,
		MimeType:      mimeType,
	}
	if err := database.UpsertAttachment(db, att); err != nil {
		return nil, "", err
	}

	uploadURL, err := store.PresignUpload(ctx, att.ObjectKey)
	if err != nil {
		return nil, "", err
	}
	return att, uploadURL, nil
}

// verifyAttachments checks required-slot coverage and then verifies each
// covering attachment against the remote object store. The first failure
// aborts; nothing is mutated on this path.
func verifyAttachments(ctx context.Context, verifier ObjectVerifier, maxSize int64, required forms.SlotSet, attachments []*models.Attachment) error {
	bySlot := make(map[string]*models.Attachment, len(attachments))
	for _, att := range attachments {
		bySlot[att.SlotKey] = att
	}

	for slotKey := range required {
		if _, ok := bySlot[slotKey]; !ok {
			return AttachmentError(CodeMissingAttachment, slotKey, "required document has not been uploaded")
		}
	}

	for slotKey := range required {
		att := bySlot[slotKey]
		info, err := verifier.StatUpload(ctx, att.ObjectKey)
		if err != nil {
			if se, ok := err.(*Error); ok {
				return AttachmentError(se.Code, slotKey, se.Message)
			}
			return err
		}
		if !IsAllowedMimeType(info.MimeType) {
			return AttachmentError(CodeInvalidMimeType, slotKey, "stored object has an unsupported file type")
		}
		if info.SizeBytes > maxSize {
			return AttachmentError(CodeFileTooLarge, slotKey, "stored object exceeds the upload size limit")
		}
		if info.MimeType != att.MimeType {
			return AttachmentError(CodeMimeTypeMismatch, slotKey, "stored object does not match the declared file type")
		}
		if info.SizeBytes != att.SizeBytes {
			return AttachmentError(CodeSizeMismatch, slotKey, "stored object does not match the declared size")
		}
	}
	return nil
}

// validateFormForSubmit runs the ordered pre-submission checks shared by
// the student and public paths: schema validation, option path validity
// and provider membership.
func validateFormForSubmit(db *sql.DB, form *forms.FormV2) error {
	if errs := forms.Validate(form, time.Now()); len(errs) > 0 {
		return ValidationError(errs[0].Error())
	}

	options, err := LoadOptionSet(db)
	if err != nil {
		return err
	}
	p := &form.PersonalInfo
	if verr := options.ValidateCoursePath(p.CampusOptionID, p.FacultyOptionID, p.CourseOptionID); verr != nil {
		return verr
	}
	if form.FinancialDeclaration.ReceivingOtherSupport {
		if verr := options.ValidateSupportProviders(form.FinancialDeclaration.SupportProviderOptionIDs); verr != nil {
			return verr
		}
	}
	return nil
}

// SubmitApplication runs the full submission pipeline for an
// authenticated student's draft. Every check precedes the single
// mutation transaction; any failure aborts with nothing written.
func SubmitApplication(ctx context.Context, db *sql.DB, verifier ObjectVerifier, maxSize int64, applicationID, studentID, studentEmail string) error {
	app, err := GetOwnedApplication(db, applicationID, studentID)
	if err != nil {
		return err
	}
	if app.Status != models.StatusDraft {
		return ConflictError(CodeApplicationLocked, "application has already been submitted")
	}

	scholarship, err := database.GetScholarshipByID(db, app.ScholarshipID)
	if err != nil {
		return err
	}
	now := time.Now()
	if !scholarship.IsOpen(now) {
		return ConflictError(CodeScholarshipClosed, "the scholarship deadline has passed")
	}

	fd, err := database.GetFormData(db, applicationID)
	if err != nil {
		return err
	}
	form, err := forms.ParseFormV2(fd.Payload)
	if err == forms.ErrLegacyPayload {
		return ConflictError(CodeLegacyDraft, "draft uses an unsupported legacy form and must be recreated")
	}
	if err != nil {
		return err
	}

	if err := validateFormForSubmit(db, form); err != nil {
		return err
	}

	attachments, err := database.GetAttachments(db, applicationID)
	if err != nil {
		return err
	}
	required := forms.RequiredSlots(form)
	if err := verifyAttachments(ctx, verifier, maxSize, required, attachments); err != nil {
		return err
	}

	payload, err := json.Marshal(form)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Re-read under the row lock: two concurrent submits race between
	// the guard above and this write, the lock serializes them.
	status, err := database.GetApplicationStatusForUpdateTx(tx, applicationID)
	if err != nil {
		return err
	}
	if status != models.StatusDraft {
		return ConflictError(CodeApplicationLocked, "application has already been submitted")
	}

	if err := database.UpdateFormPayloadTx(tx, applicationID, forms.SchemaVersion, payload); err != nil {
		return err
	}
	if err := updateProfileFromForm(tx, studentID, form); err != nil {
		return err
	}
	if err := database.MarkAttachmentsVerifiedTx(tx, applicationID, required.Keys()); err != nil {
		return err
	}
	if err := database.MarkSubmittedTx(tx, applicationID, now); err != nil {
		return err
	}
	from := models.StatusDraft
	if err := database.InsertStatusHistoryTx(tx, &models.ApplicationStatusHistory{
		ApplicationID: applicationID,
		FromStatus:    &from,
		ToStatus:      models.StatusSubmitted,
		Reason:        "submitted by applicant",
		ActorID:       &studentID,
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if m := GetMailer(); m != nil {
		go m.NotifySubmissionReceived(db, applicationID, studentEmail, scholarship.Title)
	}
	return nil
}

// DeclaredUpload is one client-declared attachment on the public
// no-login submission path.
type DeclaredUpload struct {
	SlotKey   string `json:"slot_key"`
	ObjectKey string `json:"object_key"`
	FileName  string `json:"file_name"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type"`
}

// SubmitPublicApplication is the no-login flow: the application is
// synthesized directly into submitted after the same check pipeline. The
// applicant account is created (or reused by email) inside the final
// transaction, so partial creation is never observable.
func SubmitPublicApplication(ctx context.Context, db *sql.DB, verifier ObjectVerifier, maxSize int64, scholarshipID string, form *forms.FormV2, uploads []DeclaredUpload) (string, error) {
	scholarship, err := database.GetScholarshipByID(db, scholarshipID)
	if err == sql.ErrNoRows {
		return "", NotFoundError("scholarship not found")
	}
	if err != nil {
		return "", err
	}
	now := time.Now()
	if !scholarship.IsOpen(now) {
		return "", ConflictError(CodeScholarshipClosed, "the scholarship deadline has passed")
	}

	form.SchemaVersion = forms.SchemaVersion
	if err := validateFormForSubmit(db, form); err != nil {
		return "", err
	}

	attachments := make([]*models.Attachment, 0, len(uploads))
	for _, u := range uploads {
		if !forms.IsValidSlotKey(u.SlotKey) {
			return "", ConflictError(CodeInvalidSlotKey, "unknown attachment slot "+u.SlotKey)
		}
		attachments = append(attachments, &models.Attachment{
			SlotKey:   u.SlotKey,
			ObjectKey: u.ObjectKey,
			FileName:  u.FileName,
			SizeBytes: u.SizeBytes,
			MimeType:  u.MimeType,
		})
	}
	required := forms.RequiredSlots(form)
	if err := verifyAttachments(ctx, verifier, maxSize, required, attachments); err != nil {
		return "", err
	}

	payload, err := json.Marshal(form)
	if err != nil {
		return "", err
	}

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	studentID, err := ensurePublicApplicant(tx, form)
	if err != nil {
		return "", err
	}

	var exists bool
	err = tx.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE student_id = $1 AND scholarship_id = $2 AND deleted_at IS NULL
		)`, studentID, scholarshipID).Scan(&exists)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ConflictError(CodeDuplicateApplication, "an application for this scholarship already exists")
	}

	var applicationID string
	err = tx.QueryRow(`
		INSERT INTO applications (scholarship_id, student_id, status, submitted_at, locked_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id`,
		scholarshipID, studentID, models.StatusSubmitted, now).Scan(&applicationID)
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(`
		INSERT INTO application_form_data (application_id, schema_version, payload)
		VALUES ($1, $2, $3)`,
		applicationID, forms.SchemaVersion, payload)
	if err != nil {
		return "", err
	}

	for _, att := range attachments {
		// Only slots in the required set were stat-checked; extras are
		// stored unverified.
		_, err = tx.Exec(`
			INSERT INTO application_attachments
				(application_id, slot_key, object_key, file_name, size_bytes, mime_type, verified)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			applicationID, att.SlotKey, att.ObjectKey, att.FileName, att.SizeBytes, att.MimeType,
			required.Has(att.SlotKey))
		if err != nil {
			return "", err
		}
	}

	if err := updateProfileFromForm(tx, studentID, form); err != nil {
		return "", err
	}
	if err := database.InsertStatusHistoryTx(tx, &models.ApplicationStatusHistory{
		ApplicationID: applicationID,
		ToStatus:      models.StatusSubmitted,
		Reason:        "public submission",
	}); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}

	if m := GetMailer(); m != nil {
		go m.NotifySubmissionReceived(db, applicationID, form.PersonalInfo.Email, scholarship.Title)
	}
	return applicationID, nil
}

// ensurePublicApplicant finds or creates the user and profile rows for a
// no-login submission, keyed by email.
func ensurePublicApplicant(tx *sql.Tx, form *forms.FormV2) (string, error) {
	var userID string
	err := tx.QueryRow(`SELECT id FROM users WHERE email = $1 AND deleted_at IS NULL`,
		form.PersonalInfo.Email).Scan(&userID)
	if err == nil {
		return userID, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	// The '!' placeholder never verifies as a bcrypt hash, so the
	// synthesized account cannot be logged into.
	err = tx.QueryRow(`
		INSERT INTO users (email, password, first_name, last_name)
		VALUES ($1, '!', $2, '')
		RETURNING id`,
		form.PersonalInfo.Email, form.PersonalInfo.FullName).Scan(&userID)
	if err != nil {
		return "", err
	}
	_, err = tx.Exec(`
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = 'student'`, userID)
	if err != nil {
		return "", err
	}
	_, err = tx.Exec(`
		INSERT INTO student_profiles (user_id, full_name)
		VALUES ($1, $2)`, userID, form.PersonalInfo.FullName)
	if err != nil {
		return "", err
	}
	return userID, nil
}

func updateProfileFromForm(tx *sql.Tx, studentID string, form *forms.FormV2) error {
	p := &form.PersonalInfo
	var campusID, facultyID, courseID *string
	if p.CampusOptionID != "" {
		campusID = &p.CampusOptionID
	}
	if p.FacultyOptionID != "" {
		facultyID = &p.FacultyOptionID
	}
	if p.CourseOptionID != "" {
		courseID = &p.CourseOptionID
	}
	return database.UpdateStudentProfileTx(tx, studentID, p.FullName, p.StudentIDNo,
		forms.NormalizePhone(p.MobileNumber), p.Nationality, campusID, facultyID, courseID)
}

// TransitionApplication applies one admin move on the forward table.
// The transition is checked before any row is touched and re-checked
// under the row lock inside the transaction.
func TransitionApplication(db *sql.DB, applicationID string, to models.ApplicationStatus, actorID, reason string) error {
	if !models.IsValidStatus(to) {
		return ValidationError("unknown target status")
	}
	app, err := database.GetApplicationByID(db, applicationID)
	if err == sql.ErrNoRows {
		return NotFoundError("application not found")
	}
	if err != nil {
		return err
	}
	if !models.IsTransitionAllowed(app.Status, to) {
		return ConflictError(CodeInvalidTransition,
			string("cannot move from "+app.Status+" to "+to))
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	from, err := database.GetApplicationStatusForUpdateTx(tx, applicationID)
	if err != nil {
		return err
	}
	if !models.IsTransitionAllowed(from, to) {
		return ConflictError(CodeInvalidTransition,
			string("cannot move from "+from+" to "+to))
	}
	if err := database.UpdateApplicationStatusTx(tx, applicationID, to); err != nil {
		return err
	}
	if err := database.InsertStatusHistoryTx(tx, &models.ApplicationStatusHistory{
		ApplicationID: applicationID,
		FromStatus:    &from,
		ToStatus:      to,
		Reason:        reason,
		ActorID:       &actorID,
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	notifyStatusChange(db, applicationID, to)
	return nil
}

// ReopenApplication is the administrative side channel back to draft,
// the only backward edge. It clears the lock and stamps reopened_at.
func ReopenApplication(db *sql.DB, applicationID, actorID, reason string) error {
	app, err := database.GetApplicationByID(db, applicationID)
	if err == sql.ErrNoRows {
		return NotFoundError("application not found")
	}
	if err != nil {
		return err
	}
	if !models.CanReopen(app.Status) {
		return ConflictError(CodeInvalidReopen,
			string("applications in status "+app.Status+" cannot be reopened"))
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	from, err := database.GetApplicationStatusForUpdateTx(tx, applicationID)
	if err != nil {
		return err
	}
	if !models.CanReopen(from) {
		return ConflictError(CodeInvalidReopen,
			string("applications in status "+from+" cannot be reopened"))
	}
	if err := database.ReopenApplicationTx(tx, applicationID, time.Now()); err != nil {
		return err
	}
	if err := database.InsertStatusHistoryTx(tx, &models.ApplicationStatusHistory{
		ApplicationID: applicationID,
		FromStatus:    &from,
		ToStatus:      models.StatusDraft,
		Reason:        reason,
		ActorID:       &actorID,
	}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	notifyStatusChange(db, applicationID, models.StatusDraft)
	return nil
}

func notifyStatusChange(db *sql.DB, applicationID string, to models.ApplicationStatus) {
	m := GetMailer()
	if m == nil {
		return
	}
	var email, title string
	err := db.QueryRow(`
		SELECT u.email, s.title
		FROM applications a
		JOIN users u ON a.student_id = u.id
		JOIN scholarships s ON a.scholarship_id = s.id
		WHERE a.id = $1`, applicationID).Scan(&email, &title)
	if err != nil {
		log.Printf("Failed to load notification recipient for %s: %v", applicationID, err)
		return
	}
	go m.NotifyStatusChanged(db, applicationID, email, title, to)
}
