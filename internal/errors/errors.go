package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Validation errors
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeInvalidFormat = "INVALID_FORMAT"
	ErrCodeTooLarge      = "PAYLOAD_TOO_LARGE"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"

	// Business logic errors
	ErrCodeOperationFailed = "OPERATION_FAILED"

	// Service errors
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithErrors creates an APIError whose message is the first of errs
func NewAPIErrorWithErrors(code string, errs []string) *APIError {
	apiErr := &APIError{Code: code, Errors: errs}
	if len(errs) > 0 {
		apiErr.Message = errs[0]
	}
	return apiErr
}

// RespondWithError sends an error response and stops the handler chain
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.AbortWithStatusJSON(statusCode, err)
}

// Helper functions for common error responses

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// InvalidFormat sends a 400 response for malformed identifiers or bodies
func InvalidFormat(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidFormat, message))
}

// Failed sends the messages of a failed result with the given status
func Failed(c *gin.Context, statusCode int, errs []string) {
	code := ErrCodeOperationFailed
	switch statusCode {
	case http.StatusNotFound:
		code = ErrCodeNotFound
	case http.StatusBadRequest:
		code = ErrCodeInvalidInput
	}
	RespondWithError(c, statusCode, NewAPIErrorWithErrors(code, errs))
}

// TooLarge sends a 413 response
func TooLarge(c *gin.Context, message string) {
	RespondWithError(c, http.StatusRequestEntityTooLarge, NewAPIError(ErrCodeTooLarge, message))
}

// InternalError sends a 500 response; details are listed under errors
func InternalError(c *gin.Context, message string, details ...string) {
	if message == "" {
		message = "Internal server error"
	}
	apiErr := NewAPIError(ErrCodeInternalError, message)
	if len(details) > 0 {
		apiErr.Errors = details
	}
	RespondWithError(c, http.StatusInternalServerError, apiErr)
}
