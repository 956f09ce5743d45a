package models

import "errors"

// Store operations return these instead of logging and swallowing failures.
// Callers branch with errors.Is.
var (
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateEnrollment = errors.New("already enrolled in course")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
)
