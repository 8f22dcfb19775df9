package services

import "errors"

// Sentinel errors shared by the services. Handlers translate them into
// HTTP statuses: ErrNotFound -> 404, ErrNotOwner -> 403, the rest -> 400.
var (
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("not authorized")
	ErrEmailTaken         = errors.New("email address already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrFileMissing        = errors.New("file not found in storage")
)
