package httpclient

import (
	"encoding/json"

	"github.com/paperstack/paperstack/internal/errors"
)

// Error represents an HTTP client error
type Error struct {
	*errors.InternalError
	StatusCode int
	Response   []byte
}

func (e *Error) Unwrap() error {
	return e.InternalError
}

func (e *Error) Error() string {
	return e.InternalError.Error()
}

// ServerMessage returns the message from an API error body when present
func (e *Error) ServerMessage() string {
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(e.Response, &body); err != nil || body.Error.Message == "" {
		return string(e.Response)
	}
	return body.Error.Message
}

// NewError creates a new HTTP client error
func NewError(statusCode int, response []byte) *Error {
	return &Error{
		InternalError: errors.New(errors.ErrCodeHTTPClient, "http client error"),
		StatusCode:    statusCode,
		Response:      response,
	}
}

// IsHTTPError checks if an error is an HTTP client error
func IsHTTPError(err error) (*Error, bool) {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
