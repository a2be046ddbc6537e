package errors

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Common error types shared by the token store, provider registry and CLI.
// Token response validation failures are reported as *token.ParseError instead.
var (
	// Storage errors
	ErrNotFound   = errors.New("not found")
	ErrInvalidKey = errors.New("invalid store key")

	// Provider errors
	ErrUnknownProvider  = errors.New("unknown provider")
	ErrLifetimeMismatch = errors.New("provider lifetime mismatch")

	// Token errors
	ErrNotRefreshable = errors.New("token has no refresh token")
	ErrTokenExpired   = errors.New("token expired")
)

// New returns an error that formats as the given text and records the
// caller's stack.
func New(text string) error {
	return pkgerrors.New(text)
}

// Wrapf annotates err with a formatted message. Returns nil when err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
