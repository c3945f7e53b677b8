package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist or is outside the caller's visibility.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when credentials are missing or invalid.
	ErrUnauthorized = errors.New("authentication credentials were not provided or are invalid")
	// ErrForbidden is returned when the caller lacks the role for an action.
	ErrForbidden = errors.New("you do not have permission to perform this action")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled is returned when an inactive user tries to log in.
	ErrAccountDisabled = errors.New("user account is disabled")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrSessionInactive is returned when the token's session was logged out.
	ErrSessionInactive = errors.New("session is no longer active")
	// ErrConflict is returned when a write collides with an existing row.
	ErrConflict = errors.New("resource already exists")
)

// ValidationError carries per-field messages for a rejected write.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}

// Add appends a message for field and returns the receiver.
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// Empty reports whether no field messages were collected.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// FromOzzo converts ozzo-validation errors into a ValidationError.
// Internal errors raised by rules are returned unchanged.
func FromOzzo(err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return NewValidationError("non_field_errors", err.Error())
	}

	out := &ValidationError{}
	flattenOzzo("", errs, out)
	return out
}

func flattenOzzo(prefix string, errs validation.Errors, out *ValidationError) {
	for field, fieldErr := range errs {
		if fieldErr == nil {
			continue
		}
		name := field
		if prefix != "" {
			name = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(fieldErr, &nested) {
			flattenOzzo(name, nested, out)
			continue
		}
		out.Add(name, fieldErr.Error())
	}
}

// FromValidator converts validator/v10 errors into a ValidationError.
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError("non_field_errors", err.Error())
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Add(fe.Field(), validatorMessage(fe))
	}
	return out
}

func validatorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     map[string][]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// MapErrorToHTTP maps domain, storage and transport errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		he := NewHTTPError(http.StatusBadRequest, "validation failed", "VALIDATION_ERROR")
		he.Fields = verr.Fields
		return he
	}

	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccountDisabled):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "ACCOUNT_DISABLED")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrSessionInactive):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "SESSION_INACTIVE")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		return NewHTTPError(http.StatusConflict, ErrConflict.Error(), "CONFLICT")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return NewHTTPError(http.StatusBadRequest, "referenced object does not exist", "INVALID_REFERENCE")
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return fromEchoError(echoErr)
	}

	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

func fromEchoError(e *echo.HTTPError) *HTTPError {
	switch msg := e.Message.(type) {
	case ErrorResponse:
		he := NewHTTPError(e.Code, msg.Error, msg.Code)
		he.Fields = msg.Fields
		return he
	case string:
		return NewHTTPError(e.Code, msg, statusCode(e.Code))
	default:
		return NewHTTPError(e.Code, http.StatusText(e.Code), statusCode(e.Code))
	}
}

func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
