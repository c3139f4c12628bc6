// Package httperrors maps coded domain errors onto HTTP statuses and the JSON
// error envelope the transport layer writes. Keeping the mapping in one table
// makes the status contract reviewable at a glance.
package httperrors

import (
	"net/http"

	dErrors "clinicore/pkg/domain-errors"
)

// ToHTTPStatus resolves a domain error code to its response status.
func ToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeInvalidInput, dErrors.CodeInvariantViolation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// StatusFor resolves an arbitrary error: coded errors use the table above,
// anything else collapses to 500 so infrastructure detail never leaks.
func StatusFor(err error) int {
	return ToHTTPStatus(dErrors.CodeOf(err))
}
