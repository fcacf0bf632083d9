package services

import "errors"

// Sentinel errors shared across services. Handlers translate these to
// HTTP statuses with errors.Is; services wrap them with context.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates a valid identity that is not the owner of
	// the targeted resource.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials indicates a failed email/password check. It
	// deliberately does not distinguish unknown email from bad password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation indicates missing or empty required fields.
	ErrValidation = errors.New("validation failed")
)
