package errors

// ErrorCode is a machine-readable error identifier returned to API clients
type ErrorCode string

const (
	// Request/validation errors
	ErrBadRequest ErrorCode = "BAD_REQUEST"
	ErrValidation ErrorCode = "VALIDATION_ERROR"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrConflict   ErrorCode = "CONFLICT"

	// Dataset errors
	ErrMalformedDataset ErrorCode = "MALFORMED_DATASET"
	ErrNoDataset        ErrorCode = "NO_DATASET"
	ErrInvalidFilter    ErrorCode = "INVALID_FILTER"

	// Infrastructure errors
	ErrInternalError  ErrorCode = "INTERNAL_ERROR"
	ErrServiceUnavail ErrorCode = "SERVICE_UNAVAILABLE"
	ErrTimeout        ErrorCode = "TIMEOUT"
	ErrEnrichment     ErrorCode = "ENRICHMENT_FAILED"
)
