package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"

	"govsite/internal/repository"
)

var (
	// ErrNewsNotFound is returned when a news item is not found.
	ErrNewsNotFound = errors.New("News not found")
	// ErrServiceNotFound is returned when a service is not found.
	ErrServiceNotFound = errors.New("Service not found")
	// ErrDocumentNotFound is returned when a document is not found or not public.
	ErrDocumentNotFound = errors.New("Document not found")
	// ErrPageNotFound is returned when a page is not found or not published.
	ErrPageNotFound = errors.New("Page not found")
	// ErrMapDataNotFound is returned when a map layer is not found.
	ErrMapDataNotFound = errors.New("Map data not found")
	// ErrContactNotFound is returned when a contact submission is not found.
	ErrContactNotFound = errors.New("Contact not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("User not found")
	// ErrSlugTaken is returned when a slug (or username) is already in use.
	ErrSlugTaken = errors.New("Slug already in use")
	// ErrInvalidID is returned when a path id is not a positive integer.
	ErrInvalidID = errors.New("Invalid ID")
	// ErrUploadDisabled is returned when document storage is not configured.
	ErrUploadDisabled = errors.New("Document uploads are not configured")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid username or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("Invalid or expired refresh token")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     []FieldError
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
		Message: e.Message,
		Code:    e.Code,
		Errors:  e.Fields,
	}
}

// Validation builds the 400 returned for a body that fails its schema.
func Validation(err error) *HTTPError {
	e := NewHTTPError(http.StatusBadRequest, "Validation error", "VALIDATION_ERROR")
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		e.Fields = []FieldError{{Message: err.Error()}}
		return e
	}
	for _, fe := range verrs {
		e.Fields = append(e.Fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return e
}

// Binding builds the 400 returned for a body that could not be decoded.
// A JSON value of the wrong type is reported against its field like a
// validation failure; anything else is a generic invalid body.
func Binding(err error) *HTTPError {
	var ute *json.UnmarshalTypeError
	if !errors.As(err, &ute) || ute.Field == "" {
		return NewHTTPError(http.StatusBadRequest, "Invalid request body", "INVALID_BODY")
	}
	e := NewHTTPError(http.StatusBadRequest, "Validation error", "VALIDATION_ERROR")
	e.Fields = []FieldError{{
		Field:   ute.Field,
		Rule:    "type",
		Message: fmt.Sprintf("%s must be %s", ute.Field, jsonKind(ute.Type)),
	}}
	return e
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a different type"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "slug":
		return fmt.Sprintf("%s must contain only lowercase letters, digits and hyphens", fe.Field())
	case "lang":
		return fmt.Sprintf("%s must be a language tag such as en or ar", fe.Field())
	case "geojson":
		return fmt.Sprintf("%s must be a GeoJSON object", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, ErrNewsNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNewsNotFound.Error(), "NEWS_NOT_FOUND")
	case errors.Is(err, ErrServiceNotFound):
		return NewHTTPError(http.StatusNotFound, ErrServiceNotFound.Error(), "SERVICE_NOT_FOUND")
	case errors.Is(err, ErrDocumentNotFound):
		return NewHTTPError(http.StatusNotFound, ErrDocumentNotFound.Error(), "DOCUMENT_NOT_FOUND")
	case errors.Is(err, ErrPageNotFound):
		return NewHTTPError(http.StatusNotFound, ErrPageNotFound.Error(), "PAGE_NOT_FOUND")
	case errors.Is(err, ErrMapDataNotFound):
		return NewHTTPError(http.StatusNotFound, ErrMapDataNotFound.Error(), "MAP_DATA_NOT_FOUND")
	case errors.Is(err, ErrContactNotFound):
		return NewHTTPError(http.StatusNotFound, ErrContactNotFound.Error(), "CONTACT_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, repository.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "Not found", "NOT_FOUND")
	case errors.Is(err, ErrSlugTaken), errors.Is(err, repository.ErrDuplicate):
		return NewHTTPError(http.StatusConflict, ErrSlugTaken.Error(), "SLUG_TAKEN")
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidID.Error(), "INVALID_ID")
	case errors.Is(err, ErrUploadDisabled):
		return NewHTTPError(http.StatusServiceUnavailable, ErrUploadDisabled.Error(), "UPLOAD_DISABLED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidRefreshToken.Error(), "INVALID_REFRESH_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR")
	}
}
