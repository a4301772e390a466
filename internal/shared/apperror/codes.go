package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInvalidState        = "INVALID_STATE"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeInsufficientPending = "INSUFFICIENT_PENDING"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeInconsistentState  = "INCONSISTENT_STATE"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
