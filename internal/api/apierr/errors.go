package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/majnugame/majnu-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidLetter     = "INVALID_LETTER"
	CodeInvalidHandle     = "INVALID_HANDLE"
	CodeInvalidScope      = "INVALID_SCOPE"
	CodeInvalidTarget     = "INVALID_TARGET"
	CodeHandleTaken       = "HANDLE_TAKEN"
	CodeHandleLocked      = "HANDLE_LOCKED"
	CodeGameNotFound      = "GAME_NOT_FOUND"
	CodeGameFinished      = "GAME_FINISHED"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeUnknownDomain     = "UNKNOWN_DOMAIN"
	CodeEmptyDomain       = "EMPTY_DOMAIN"
	CodeDailyCompleted    = "DAILY_COMPLETED"
	CodeShortLinkNotFound = "SHORT_LINK_NOT_FOUND"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrShortLinkNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeShortLinkNotFound, "Share link not found"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is already finished"}}
	case errors.Is(err, model.ErrDailyCompleted):
		return &httpError{http.StatusConflict, APIError{CodeDailyCompleted, "Daily puzzle already played today"}}
	case errors.Is(err, model.ErrHandleTaken):
		return &httpError{http.StatusConflict, APIError{CodeHandleTaken, "Handle is already taken"}}
	case errors.Is(err, model.ErrHandleLocked):
		return &httpError{http.StatusConflict, APIError{CodeHandleLocked, "Handle cannot be changed once set"}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLetter, "Guess must be a single letter A-Z"}}
	case errors.Is(err, model.ErrInvalidHandle):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidHandle, "Handle must be 3-15 letters, digits, or underscores"}}
	case errors.Is(err, model.ErrInvalidScope):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScope, "Scope must be daily or weekly"}}
	case errors.Is(err, model.ErrInvalidTarget):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTarget, "Target must be an absolute http(s) URL"}}
	case errors.Is(err, model.ErrUnknownDomain):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownDomain, "Unknown word domain"}}
	case errors.Is(err, model.ErrEmptyDomain):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyDomain, "Domain has no words to play"}}
	case errors.Is(err, model.ErrRateLimited):
		return &httpError{http.StatusTooManyRequests, APIError{CodeRateLimited, "Too many requests, slow down"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
