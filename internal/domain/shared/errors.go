package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden        = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidSection   = NewDomainError("INVALID_SECTION", "One or more requested report sections do not exist")
	ErrScopeForbidden   = NewDomainError("SCOPE_FORBIDDEN", "Requested scope is outside the caller's authorization")
	ErrRenderFailed     = NewDomainError("RENDER_FAILED", "Report document could not be rendered")
	ErrArchiveFailed    = NewDomainError("ARCHIVE_FAILED", "Rendered report could not be archived")
	ErrUnknownHierarchy = NewDomainError("UNKNOWN_HIERARCHY_LEVEL", "Unknown hierarchy level")
)
