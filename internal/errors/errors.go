package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound             = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists        = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation           = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation     = new(ErrCodeInvalidOperation, "invalid operation")
	ErrInvalidConversion    = new(ErrCodeInvalidConversion, "invalid conversion")
	ErrPermissionDenied     = new(ErrCodePermissionDenied, "permission denied")
	ErrUnauthorized         = new(ErrCodeUnauthorized, "unauthorized")
	ErrStorageQuotaExceeded = new(ErrCodeStorageQuotaExceeded, "storage quota exceeded")
	ErrEmailDelivery        = new(ErrCodeEmailDelivery, "email delivery failure")
	ErrPdfRender            = new(ErrCodePdfRender, "pdf render failure")
	ErrHTTPClient           = new(ErrCodeHTTPClient, "http client error")
	ErrDatabase             = new(ErrCodeDatabase, "database error")
	ErrSystem               = new(ErrCodeSystemError, "system error")
	ErrRateLimited          = new(ErrCodeRateLimited, "rate limited")
	// maps errors to http status codes, most specific first. An error marked
	// with several references takes the first match.
	statusCodes = []struct {
		err    error
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrValidation, http.StatusBadRequest},
		{ErrInvalidOperation, http.StatusBadRequest},
		{ErrInvalidConversion, http.StatusBadRequest},
		{ErrPermissionDenied, http.StatusForbidden},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrRateLimited, http.StatusTooManyRequests},
		{ErrStorageQuotaExceeded, http.StatusInsufficientStorage},
		{ErrEmailDelivery, http.StatusBadGateway},
		{ErrPdfRender, http.StatusInternalServerError},
		{ErrHTTPClient, http.StatusInternalServerError},
		{ErrDatabase, http.StatusInternalServerError},
		{ErrSystem, http.StatusInternalServerError},
	}
)

const (
	ErrCodeHTTPClient           = "http_client_error"
	ErrCodeSystemError          = "system_error"
	ErrCodeNotFound             = "not_found"
	ErrCodeAlreadyExists        = "already_exists"
	ErrCodeValidation           = "validation_error"
	ErrCodeInvalidOperation     = "invalid_operation"
	ErrCodeInvalidConversion    = "invalid_conversion"
	ErrCodePermissionDenied     = "permission_denied"
	ErrCodeUnauthorized         = "unauthorized"
	ErrCodeStorageQuotaExceeded = "storage_quota_exceeded"
	ErrCodeEmailDelivery        = "email_delivery_failure"
	ErrCodePdfRender            = "pdf_render_failure"
	ErrCodeDatabase             = "database_error"
	ErrCodeRateLimited          = "rate_limited"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

// New creates an InternalError for the given code, used by packages that wrap
// transport errors with their own type
func New(code string, message string) *InternalError {
	return new(code, message)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsInvalidConversion checks if an error is a rejected document conversion
func IsInvalidConversion(err error) bool {
	return errors.Is(err, ErrInvalidConversion)
}

// IsPermissionDenied checks if an error is a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsUnauthorized checks if an error is an unauthorized error
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsStorageQuotaExceeded checks if a local store write ran out of quota
func IsStorageQuotaExceeded(err error) bool {
	return errors.Is(err, ErrStorageQuotaExceeded)
}

// IsEmailDelivery checks if an error is an email delivery failure
func IsEmailDelivery(err error) bool {
	return errors.Is(err, ErrEmailDelivery)
}

// IsPdfRender checks if an error is a pdf render failure
func IsPdfRender(err error) bool {
	return errors.Is(err, ErrPdfRender)
}

// IsRateLimited checks if a request was rejected by the rate limiter
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

func HTTPStatusFromErr(err error) int {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.status
		}
	}
	return http.StatusInternalServerError
}

// GetDisplayMessage returns the first hint attached to the error or a generic message
func GetDisplayMessage(err error) string {
	// GetAllHints is a post-order traversal, the first non-empty hint wins
	for _, hint := range errors.GetAllHints(err) {
		if hint = strings.TrimSpace(hint); hint != "" {
			return hint
		}
	}
	return "An unexpected error occurred"
}
