package services

import (
	"errors"
	"fmt"
)

// Failure kinds raised by the services. Handlers map them to HTTP statuses.
var (
	// ErrEmailInUse is returned when a registration or admin add targets
	// an email that already has an account.
	ErrEmailInUse = errors.New("email already in use")

	// ErrInvalidCredentials covers every login failure: unknown email,
	// record without a password, or wrong password. One message for all
	// so responses never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers every refresh failure, including a token
	// whose user no longer exists.
	ErrInvalidToken = errors.New("invalid or expired refresh token")

	// ErrUserNotFound is returned when an id or email resolves to no user.
	ErrUserNotFound = errors.New("user not found")

	// ErrMushroomNotFound is returned when a document id resolves to nothing.
	ErrMushroomNotFound = errors.New("mushroom not found")

	// ErrScientificNameInUse is returned when a document create or update
	// collides with an existing scientific name.
	ErrScientificNameInUse = errors.New("scientific name already in use")

	// ErrMediaStorageDisabled is returned by media uploads when no object
	// storage backend is configured.
	ErrMediaStorageDisabled = errors.New("media storage not configured")
)

// ValidationError reports a document field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
