package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error represents an API error
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a not found error
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized returns true if the error is an authentication error
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsConflict returns true if the request collided with existing state,
// such as a duplicate collection name
func (e *Error) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// IsQuotaExceeded returns true if the monthly API quota is exhausted
func (e *Error) IsQuotaExceeded() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError returns true for 5xx responses
func (e *Error) IsServerError() bool {
	return e.StatusCode >= 500
}

// IsNotFound reports whether err is an API not-found error
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsNotFound()
}

// IsUnauthorized reports whether err is an API authentication error
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsUnauthorized()
}

// IsDuplicateCollection reports whether a schema create failed because the
// collection name is already taken. The draft itself is fine; callers can
// re-prompt for a name and resubmit.
func IsDuplicateCollection(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.IsConflict()
}

// errorFromResponse builds an Error from a non-2xx response body
func errorFromResponse(resp *http.Response) *Error {
	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	}

	return apiErr
}
