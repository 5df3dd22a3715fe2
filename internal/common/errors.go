// Package common defines sentinel errors shared by repositories, services
// and the HTTP layer. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Generic service errors.
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")

	// Credential and session errors.
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid token")

	// Asset errors.
	ErrUnsupportedFormat   = errors.New("unsupported image format")
	ErrAssetCreationFailed = errors.New("unable to create asset")
)
