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

// Is reports whether target carries the same code, so wrapped copies with a
// custom message still match the sentinel values below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithMessage returns a copy of e with a more specific message.
// The copy keeps the code, so it still matches e with errors.Is.
func (e *DomainError) WithMessage(message string) *DomainError {
	return NewDomainError(e.Code, message)
}

// Common domain errors
var (
	ErrNotFound              = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput          = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrPlatformNotConnected  = NewDomainError("PLATFORM_NOT_CONNECTED", "Platform not connected. Complete connection first.")
	ErrPlatformNotConfigured = NewDomainError("PLATFORM_NOT_CONFIGURED", "Platform OAuth not configured")
	ErrInvalidOAuthState     = NewDomainError("INVALID_OAUTH_STATE", "Invalid or expired OAuth state")
	ErrInvalidSignature      = NewDomainError("INVALID_SIGNATURE", "Invalid request signature")
)
