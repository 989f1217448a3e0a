package apperrors

type ErrorCode string

const (
	ErrCodeBackendError       ErrorCode = "backend_error"
	ErrCodeBackendUnavailable ErrorCode = "backend_unavailable"
	ErrCodeInternalError      ErrorCode = "internal_error"
	ErrCodeInvalidRequest     ErrorCode = "invalid_request"
	ErrCodeRateLimitExceeded  ErrorCode = "rate_limit_exceeded"
	ErrCodeResourceNotFound   ErrorCode = "resource_not_found"
)
