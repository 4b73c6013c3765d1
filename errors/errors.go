// Package errors provides error handling for crewlog.
//
// It re-exports github.com/cockroachdb/errors so that callers get stack
// traces, wrapping and sentinel checks from a single import, and defines
// the typed sentinels used to classify catalog failures. Callers switch on
// these with Is* helpers instead of inspecting message text.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
	WithHint    = crdb.WithHint
	WithDetail  = crdb.WithDetail
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Sentinel errors for the catalog boundary. Remote-call failures are
// classified into one of these at the client so that the rest of the
// system never parses error prose.
var (
	// ErrTimeout indicates the catalog did not answer within the deadline
	ErrTimeout = New("catalog timeout")

	// ErrUnauthorized indicates the catalog rejected our credentials
	ErrUnauthorized = New("catalog unauthorized")

	// ErrUnavailable indicates the catalog could not be reached at all
	ErrUnavailable = New("catalog unavailable")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")
)

// IsTimeout reports whether err is or wraps ErrTimeout.
func IsTimeout(err error) bool {
	return err != nil && Is(err, ErrTimeout)
}

// IsUnauthorized reports whether err is or wraps ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return err != nil && Is(err, ErrUnauthorized)
}

// IsUnavailable reports whether err is or wraps ErrUnavailable.
func IsUnavailable(err error) bool {
	return err != nil && Is(err, ErrUnavailable)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}
