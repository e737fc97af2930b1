package errors

import (
	"fmt"
	"net/http"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
	Details string    `json:"details,omitempty"`
	Status  int       `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotFound creates a NOT_FOUND error
func NotFound(resource string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
	}
}

// BadRequest creates a BAD_REQUEST error
func BadRequest(message string) *APIError {
	return &APIError{
		Code:    ErrBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// ValidationError creates a VALIDATION_ERROR
func ValidationError(field, message string) *APIError {
	return &APIError{
		Code:    ErrValidation,
		Message: message,
		Field:   field,
		Status:  http.StatusUnprocessableEntity,
	}
}

// Conflict creates a CONFLICT error
func Conflict(resource string) *APIError {
	return &APIError{
		Code:    ErrConflict,
		Message: fmt.Sprintf("%s already exists or is in an invalid state", resource),
		Status:  http.StatusConflict,
	}
}

// MalformedDataset creates a MALFORMED_DATASET error for uploads that fail
// normalization
func MalformedDataset(details string) *APIError {
	return &APIError{
		Code:    ErrMalformedDataset,
		Message: "dataset file is malformed",
		Details: details,
		Status:  http.StatusUnprocessableEntity,
	}
}

// NoDataset creates a NO_DATASET error for analysis calls issued before any
// dataset has been constructed
func NoDataset() *APIError {
	return &APIError{
		Code:    ErrNoDataset,
		Message: "no dataset loaded",
		Status:  http.StatusConflict,
	}
}

// InvalidFilter creates an INVALID_FILTER error; the working view is left
// unchanged by the rejected operation
func InvalidFilter(message string) *APIError {
	return &APIError{
		Code:    ErrInvalidFilter,
		Message: message,
		Status:  http.StatusUnprocessableEntity,
	}
}

// InternalError creates an INTERNAL_ERROR
func InternalError(message string) *APIError {
	return &APIError{
		Code:    ErrInternalError,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// ServiceUnavailable creates a SERVICE_UNAVAILABLE error
func ServiceUnavailable(service string) *APIError {
	return &APIError{
		Code:    ErrServiceUnavail,
		Message: fmt.Sprintf("%s is temporarily unavailable", service),
		Status:  http.StatusServiceUnavailable,
	}
}

// EnrichmentFailed creates an ENRICHMENT_FAILED error for fatal enrichment
// failures that survived batch backoff
func EnrichmentFailed(details string) *APIError {
	return &APIError{
		Code:    ErrEnrichment,
		Message: "dataset enrichment failed",
		Details: details,
		Status:  http.StatusBadGateway,
	}
}

// WithDetails adds additional details to an error
func (e *APIError) WithDetails(details string) *APIError {
	e.Details = details
	return e
}
