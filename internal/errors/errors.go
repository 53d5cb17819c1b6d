package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Error codes returned in the "error" field of every error response.
const (
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeBadRequest         = "bad_request"
	CodeValidation         = "validation_error"
	CodeBusinessValidation = "business_validation_error"
	CodeDatabase           = "database_error"
	CodeInternal           = "internal_server_error"
)

// APIError is a predictable API failure carrying its HTTP status, stable
// error code, and optional detail fields merged into the response body.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *APIError) Error() string {
	return e.Message
}

func Unauthorized(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

func Conflict(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: CodeConflict, Message: message}
}

func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: message}
}

// Validation wraps per-field schema validation messages.
func Validation(messages map[string][]string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: "Invalid request payload.",
		Details: map[string]any{"messages": messages},
	}
}

func BusinessValidation(message string) *APIError {
	return &APIError{Status: http.StatusUnprocessableEntity, Code: CodeBusinessValidation, Message: message}
}

func BusinessValidationWithDetails(message string, details map[string]any) *APIError {
	return &APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeBusinessValidation,
		Message: message,
		Details: details,
	}
}

func Database(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: CodeDatabase, Message: message}
}

func Internal() *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "An unexpected error occurred."}
}

// Translate converts any error raised below the HTTP boundary into an
// APIError. Lower layers raise the most specific kind they can; anything
// unrecognised degrades to a generic internal error so raw storage messages
// never reach clients.
func Translate(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("Resource not found.")
	}
	if isIntegrityViolation(err) {
		if isEmailUniqueViolation(err) {
			return Conflict("Email is already being used.")
		}
		return Database("A database integrity error occurred.")
	}
	return Internal()
}

// Respond writes the translated error as the JSON response body. Detail
// fields are merged at the top level next to "error" and "message".
func Respond(c *gin.Context, err error) {
	apiErr := Translate(err)
	payload := gin.H{
		"error":   apiErr.Code,
		"message": apiErr.Message,
	}
	for key, value := range apiErr.Details {
		payload[key] = value
	}
	c.JSON(apiErr.Status, payload)
}

// AbortWith responds with the error and stops the handler chain. Used by
// middleware guards.
func AbortWith(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}

var integrityMarkers = []string{
	"unique constraint",
	"duplicate entry",
	"duplicate key value",
	"constraint failed",
	"foreign key constraint",
	"check constraint",
	"not null constraint",
}

func isIntegrityViolation(err error) bool {
	message := strings.ToLower(err.Error())
	for _, marker := range integrityMarkers {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated)
}

// isEmailUniqueViolation sniffs the driver error text for the users email
// unique index. Index naming differs per driver, so match every spelling the
// supported drivers produce.
func isEmailUniqueViolation(err error) bool {
	message := strings.ToLower(err.Error())
	for _, marker := range []string{"users.email", "idx_users_email", "uni_users_email", "users_email_key"} {
		if strings.Contains(message, marker) {
			return true
		}
	}
	return false
}
