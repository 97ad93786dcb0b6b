package errors

import (
	"errors"
)

var (
	ErrKeyExpired         = errors.New("encryption key expired or does not exist")
	ErrInvalidPayload     = errors.New("unable to decrypt payload")
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingUserID      = errors.New("user id not provided")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidSession     = errors.New("invalid session token")
)

// InvalidCredentialsError is ErrInvalidCredentials carrying the remaining
// attempt count for a known user. AttemptsLeft is nil when the username did
// not resolve, so the response body stays identical for both cases except for
// the informational counter.
type InvalidCredentialsError struct {
	AttemptsLeft *int
}

// Error deliberately never mentions the attempt counter, so unknown-username
// and wrong-password failures read identically everywhere.
func (e *InvalidCredentialsError) Error() string {
	return ErrInvalidCredentials.Error()
}

func (e *InvalidCredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}
