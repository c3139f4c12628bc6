// Package domainerrors defines the coded error type shared by the domain and
// application layers. Codes are the stable contract: boundary layers map a
// code to an HTTP status (or log severity) without parsing message text.
package domainerrors

import "errors"

// Code tags an error with a machine-readable kind.
type Code string

const (
	// CodeValidation marks malformed or out-of-range caller input rejected
	// by a value object or request validator.
	CodeValidation Code = "validation"
	// CodeInvalidInput marks input that is structurally wrong at a trust
	// boundary (bad UUID, bad enum) rather than a business-rule violation.
	CodeInvalidInput Code = "invalid_input"
	// CodeInvariantViolation marks an aggregate invariant breach. Services
	// usually translate it to CodeValidation before it reaches a caller.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeConflict marks duplicate-resource failures (username, email, DNI).
	CodeConflict Code = "conflict"
	// CodeNotFound marks lookups for entities that do not exist.
	CodeNotFound Code = "not_found"
	// CodeUnauthorized marks failed authentication. Deliberately coarse:
	// unknown account and wrong credential share it.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden marks authenticated but disallowed access.
	CodeForbidden Code = "forbidden"
	// CodeInternal marks collaborator failures (hashing, token issuance,
	// storage) that must not leak infrastructure detail.
	CodeInternal Code = "internal"
	// CodeUnavailable marks temporarily unreachable collaborators.
	CodeUnavailable Code = "unavailable"
)

// Error is a code-tagged error with a stable, human-readable message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a coded error with no underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error. The cause stays
// reachable through errors.Is/As but never becomes part of the contract.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// CodeOf extracts the code from err, or CodeInternal when err is not coded.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
