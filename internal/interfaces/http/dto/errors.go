package dto

import "net/http"

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeValidation is used when request validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeTokenExpired is used when the bearer token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the bearer token is invalid
	ErrCodeTokenInvalid = "INVALID_TOKEN"
)

// Report error codes mirror the domain error codes so handlers can derive
// the HTTP status straight from a DomainError.
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeInvalidSection is used when a requested section id is unknown
	ErrCodeInvalidSection = "INVALID_SECTION"
	// ErrCodeScopeForbidden is used when the requested scope falls outside
	// the caller's authorization
	ErrCodeScopeForbidden = "SCOPE_FORBIDDEN"
	// ErrCodeUnknownHierarchy is used for unknown hierarchy level names
	ErrCodeUnknownHierarchy = "UNKNOWN_HIERARCHY_LEVEL"
	// ErrCodeRenderFailed is used when PDF rendering fails
	ErrCodeRenderFailed = "RENDER_FAILED"
	// ErrCodeArchiveFailed is used when archiving a rendered report fails
	ErrCodeArchiveFailed = "ARCHIVE_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidSection:   http.StatusBadRequest,
	ErrCodeScopeForbidden:   http.StatusForbidden,
	ErrCodeUnknownHierarchy: http.StatusBadRequest,
	ErrCodeRenderFailed:     http.StatusInternalServerError,
	ErrCodeArchiveFailed:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
