package services

import "fmt"

// Error is a typed domain error carrying the wire code and the HTTP
// status the routing layer should answer with. No domain error is
// retried; all are terminal for the request.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for validation, state, reference-integrity and
// external-object failures.
const (
	CodeValidation             = "VALIDATION_ERROR"
	CodeNotFound               = "NOT_FOUND"
	CodeApplicationLocked      = "APPLICATION_LOCKED"
	CodeInvalidTransition      = "INVALID_TRANSITION"
	CodeInvalidReopen          = "INVALID_REOPEN"
	CodeLegacyDraft            = "LEGACY_DRAFT"
	CodeDuplicateApplication   = "DUPLICATE_APPLICATION"
	CodeScholarshipClosed      = "SCHOLARSHIP_CLOSED"
	CodeInvalidPath            = "INVALID_PATH"
	CodeInvalidCourse          = "INVALID_COURSE"
	CodeInvalidSupportProvider = "INVALID_SUPPORT_PROVIDER"
	CodeInvalidSlotKey         = "INVALID_SLOT_KEY"
	CodeMissingAttachment      = "MISSING_ATTACHMENT"
	CodeObjectNotFound         = "OBJECT_NOT_FOUND"
	CodeFileTooLarge           = "FILE_TOO_LARGE"
	CodeInvalidMimeType        = "INVALID_MIME_TYPE"
	CodeMimeTypeMismatch       = "MIME_TYPE_MISMATCH"
	CodeSizeMismatch           = "SIZE_MISMATCH"
)

func newError(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, HTTPStatus: status}
}

func ValidationError(message string) *Error {
	return newError(CodeValidation, message, 400)
}

func NotFoundError(message string) *Error {
	return newError(CodeNotFound, message, 404)
}

func ConflictError(code, message string) *Error {
	return newError(code, message, 409)
}

// AttachmentError surfaces an external-object failure with the offending
// slot key attached to the message for diagnosability.
func AttachmentError(code, slotKey, detail string) *Error {
	return newError(code, fmt.Sprintf("attachment %s: %s", slotKey, detail), 422)
}
