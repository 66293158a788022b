package core

// Error codes
const (
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidPosition   = "INVALID_POSITION"
	ErrInvalidColor      = "INVALID_COLOR"
	ErrInvalidKind       = "INVALID_KIND"
	ErrStorageDisabled   = "STORAGE_DISABLED"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrNotFound          = "NOT_FOUND"
	ErrInternalError     = "INTERNAL_ERROR"
)
