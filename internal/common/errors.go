// Package common holds the error taxonomy shared by the auth engine.
//
// Lower layers (repositories, stores, cipher) return the specific sentinels;
// the session service is the only layer that narrows them into the public
// classes the boundary is allowed to see.
package common

import "errors"

var (

	// caller-correctable errors
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")

	// authentication errors; deliberately generic so callers cannot tell
	// which check failed
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// token errors, collapsed into ErrUnauthorized at the boundary
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// session errors
	ErrSessionNotFound = errors.New("invalid or expired session token")
	ErrNoDataSource    = errors.New("no data source attached")

	// cipher errors
	ErrCipherNotConfigured = errors.New("encryption key not configured")
	ErrInvalidCiphertext   = errors.New("invalid encrypted value")
	ErrDecryptionFailed    = errors.New("failed to decrypt stored password")

	// repository errors
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
