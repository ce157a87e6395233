// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	KeyValidationInvalid = "validation.invalid"
	KeyValidationPrice   = "validation.price"
	KeyValidationPage    = "validation.page"
	KeyPropertyNotFound  = "property.not_found"
	KeyRateLimitExceeded = "rate_limit.exceeded"
	KeyServerError       = "server.error"
)
