package services

import "errors"

// Errors returned by the service layer. Handlers map them onto HTTP status
// codes with errors.Is; missing-entity failures pass through as
// repositories.ErrNotFound.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNoVendorItems      = errors.New("no valid vendor items in order")
	ErrInvalidStatus      = errors.New("invalid status value")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
