package common

import (
	"fmt"
	"net/http"
	"strings"
)

// APIErrorType classifies API errors
type APIErrorType string

const (
	APIErrorTypeRateLimit      APIErrorType = "rate_limit"
	APIErrorTypeAuth           APIErrorType = "auth"
	APIErrorTypeNotFound       APIErrorType = "not_found"
	APIErrorTypeInvalidRequest APIErrorType = "invalid_request"
	APIErrorTypeServer         APIErrorType = "server_error"
	APIErrorTypeUnknown        APIErrorType = "unknown"
)

// APIError is an error response from a vendor API.
type APIError struct {
	Provider   string
	StatusCode int
	Type       APIErrorType
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error [%s] %s (status: %d)", e.Provider, e.Type, e.Message, e.StatusCode)
}

// IsRateLimit reports whether the vendor rejected the request for quota.
func (e *APIError) IsRateLimit() bool {
	return e.Type == APIErrorTypeRateLimit
}

// ClassifyHTTPError builds an APIError from a status code. message is the
// vendor's own explanation; when empty the status text is used.
func ClassifyHTTPError(provider string, statusCode int, message string) *APIError {
	apiErr := &APIError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    strings.TrimSpace(message),
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		apiErr.Type = APIErrorTypeAuth
	case statusCode == http.StatusNotFound:
		apiErr.Type = APIErrorTypeNotFound
	case statusCode == http.StatusBadRequest:
		apiErr.Type = APIErrorTypeInvalidRequest
	case statusCode == http.StatusTooManyRequests:
		apiErr.Type = APIErrorTypeRateLimit
	case statusCode >= 500 && statusCode < 600:
		apiErr.Type = APIErrorTypeServer
	default:
		apiErr.Type = APIErrorTypeUnknown
	}

	if apiErr.Message == "" {
		apiErr.Message = strings.ToLower(http.StatusText(statusCode))
	}
	return apiErr
}
