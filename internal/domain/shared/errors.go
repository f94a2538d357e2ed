package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
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

// NewStateConflictError creates a conflict error for an invalid lifecycle
// transition. The expected and actual states are carried as structured
// details so callers can branch on them rather than parsing the message.
func NewStateConflictError(entity, expected, actual string) *DomainError {
	return &DomainError{
		Code:    "STATE_CONFLICT",
		Message: fmt.Sprintf("%s must be %s to perform this action, but is %s", entity, expected, actual),
		Details: map[string]string{
			"entity":   entity,
			"expected": expected,
			"actual":   actual,
		},
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
