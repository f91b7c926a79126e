package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrProjectNotFound is returned when a referenced project does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNotProjectOwner is returned when a caller mutates a project they do not own.
	ErrNotProjectOwner = errors.New("not the project owner")
	// ErrNotProfileOwner is returned when a caller edits another user's profile.
	ErrNotProfileOwner = errors.New("cannot edit another user's profile")
	// ErrInvalidScore is returned when a rating score is outside [1,5].
	ErrInvalidScore = errors.New("score must be an integer between 1 and 5")
	// ErrEmptyContent is returned when comment or message text is blank.
	ErrEmptyContent = errors.New("content must not be empty")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrRatingConflict is returned when a rating upsert keeps losing the
	// insert race after retrying.
	ErrRatingConflict = errors.New("rating submission conflicted, please retry")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
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
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrProjectNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PROJECT_NOT_FOUND")
	case ErrNotProjectOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_PROJECT_OWNER")
	case ErrNotProfileOwner:
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_PROFILE_OWNER")
	case ErrInvalidScore:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SCORE")
	case ErrEmptyContent:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_CONTENT")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case ErrRatingConflict:
		return NewHTTPError(http.StatusConflict, err.Error(), "RATING_CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
