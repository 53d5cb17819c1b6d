package constants

// Context keys used to pass request-scoped values between middleware and handlers.
const (
	ContextKeyCurrentUser = "current_user"
)

// Pagination defaults. The configured maximum lives in config.Config.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 12

// MaxPasswordLength bounds password input before hashing.
const MaxPasswordLength = 128
