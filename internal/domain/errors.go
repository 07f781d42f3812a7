package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidRequestType = errors.New("invalid request type")
	ErrInvalidRequestID   = errors.New("invalid request id")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAdmin      = errors.New("admin account is inactive")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileTooLarge       = errors.New("file too large")
)

// FieldIssue describes one rejected input field.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every issue found in a submission.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + e.Issues[0].Field + " " + e.Issues[0].Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
