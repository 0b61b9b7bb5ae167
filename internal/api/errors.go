package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ClientError is a custom error type for client construction errors
type ClientError string

// Error implements the error interface
func (e ClientError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig    ClientError = "config cannot be nil"
	ErrEmptyBaseURL ClientError = "base URL cannot be empty"
	ErrNilStore     ClientError = "session store cannot be nil"
	ErrNilInput     ClientError = "input cannot be nil"
)

// APIError carries a non-2xx backend response: the status code, the
// backend's own message when the body parses as structured JSON, and the
// raw body for callers that need more.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// IsUnauthorized reports whether the backend rejected the credentials
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// newAPIError shapes a backend failure into an APIError, pulling the
// message out of the usual keys when the body is structured JSON and
// falling back to a generic message otherwise.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       body,
	}

	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			apiErr.Message = parsed.Message
		case parsed.Error != "":
			apiErr.Message = parsed.Error
		case parsed.Detail != "":
			apiErr.Message = parsed.Detail
		}
	}

	return apiErr
}
