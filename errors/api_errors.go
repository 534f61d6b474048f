package errors

import "fmt"

// APIError is the uniform error payload every endpoint returns.
type APIError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Error codes used across the HTTP surface.
const (
	InvalidCredential   = "invalid_credential"
	ExpiredCredential   = "expired_credential"
	AccessDenied        = "access_denied"
	NotFound            = "not_found"
	UpstreamAuthFailure = "upstream_auth_failure"
	ValidationError     = "validation_error"
	ServerError         = "server_error"
)

func NewInvalidCredential(description string) *APIError {
	return &APIError{
		Code:        InvalidCredential,
		Description: description,
	}
}

func NewExpiredCredential() *APIError {
	return &APIError{
		Code:        ExpiredCredential,
		Description: "Session credential has expired",
	}
}

func NewAccessDenied(description string) *APIError {
	return &APIError{
		Code:        AccessDenied,
		Description: description,
	}
}

func NewNotFound(description string) *APIError {
	return &APIError{
		Code:        NotFound,
		Description: description,
	}
}

// NewUpstreamAuthFailure intentionally carries a generic message: the
// upstream cause is logged server-side, never shown to the client.
func NewUpstreamAuthFailure() *APIError {
	return &APIError{
		Code:        UpstreamAuthFailure,
		Description: "Authentication failed",
	}
}

func NewValidationError(description string) *APIError {
	return &APIError{
		Code:        ValidationError,
		Description: description,
	}
}

func NewServerError(description string) *APIError {
	return &APIError{
		Code:        ServerError,
		Description: description,
	}
}
