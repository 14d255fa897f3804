package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	// ErrCodeSessionExpired is used when the backend session behind a
	// valid token has lapsed and the user must sign in again
	ErrCodeSessionExpired = "ERR_SESSION_EXPIRED"
	// ErrCodeInvalidRole is used when a token carries a role the
	// visibility layer does not recognize
	ErrCodeInvalidRole = "ERR_INVALID_ROLE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Backend gateway error codes
const (
	// ErrCodeTransport is used when the backing row store is unreachable
	ErrCodeTransport = "ERR_TRANSPORT"
	// ErrCodeQuery is used when the backing row store rejected a query
	ErrCodeQuery = "ERR_QUERY"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized:   http.StatusUnauthorized,
	ErrCodeTokenExpired:   http.StatusUnauthorized,
	ErrCodeTokenInvalid:   http.StatusUnauthorized,
	ErrCodeSessionExpired: http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	ErrCodeInvalidRole:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeTransport: http.StatusServiceUnavailable,
	ErrCodeQuery:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":      ErrCodeNotFound,
	"ALREADY_EXISTS": ErrCodeAlreadyExists,
	"INVALID_INPUT":  ErrCodeValidation,
	"UNAUTHORIZED":   ErrCodeUnauthorized,
	"FORBIDDEN":      ErrCodeForbidden,
	"CONFLICT":       ErrCodeConflict,
	"TRANSPORT":      ErrCodeTransport,
	"AUTH_EXPIRED":   ErrCodeSessionExpired,
	"QUERY":          ErrCodeQuery,
	"INVALID_ROLE":   ErrCodeInvalidRole,
}

// NormalizeErrorCode converts a domain error code to the API format
// If the code is already in the API format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}

// userMessages maps API error codes to messages safe to show end users.
// Raw backend errors never reach the response body.
var userMessages = map[string]string{
	ErrCodeTransport:      "The server could not be reached. Check your connection and try again.",
	ErrCodeSessionExpired: "Your session has expired. Please sign in again.",
	ErrCodeForbidden:      "You do not have permission to view this data.",
	ErrCodeInvalidRole:    "Your account role is not recognized. Contact an administrator.",
	ErrCodeNotFound:       "The requested record was not found.",
	ErrCodeAlreadyExists:  "A record with these details already exists.",
	ErrCodeConflict:       "The record conflicts with existing data.",
	ErrCodeQuery:          "The request could not be processed. Try again later.",
}

// UserMessage returns a user-facing message for an API error code.
// Falls back to a generic message for unmapped codes.
func UserMessage(code string) string {
	if msg, ok := userMessages[code]; ok {
		return msg
	}
	return "An unexpected error occurred."
}
