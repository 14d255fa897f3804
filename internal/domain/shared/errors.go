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
	ErrNotFound      = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
)

// Gateway errors classify failures of the backing row store. Callers may
// retry TRANSPORT with capped backoff; the remaining codes must be surfaced
// as-is.
var (
	ErrTransport   = NewDomainError("TRANSPORT", "Backend is unreachable")
	ErrAuthExpired = NewDomainError("AUTH_EXPIRED", "Session has expired")
	ErrQuery       = NewDomainError("QUERY", "Query was rejected by the backend")
	ErrConflict    = NewDomainError("CONFLICT", "Record conflicts with existing data")
)

// ErrInvalidRole is a configuration error in the visibility layer. It must
// never be swallowed: an unrecognized role denies access, it does not
// default to open.
var ErrInvalidRole = NewDomainError("INVALID_ROLE", "Caller role is not recognized")
