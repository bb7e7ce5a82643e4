package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeStorage         = "STORAGE_ERROR"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidArgument: http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeStorage:         http.StatusInternalServerError,
	ErrCodeInternal:        http.StatusInternalServerError,
}

// AppError is the error every layer above the repositories returns.
// Message is safe for clients; Detail is shown only for non-storage codes.
type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

func newCoded(code, message string) *AppError {
	return &AppError{Code: code, Message: message, StatusCode: statusByCode[code]}
}

func ValidationError(message string) *AppError {
	return newCoded(ErrCodeValidation, message)
}

func InvalidArgumentError(message string) *AppError {
	return newCoded(ErrCodeInvalidArgument, message)
}

func NotFoundError(message string) *AppError {
	return newCoded(ErrCodeNotFound, message)
}

func UnauthorizedError(message string) *AppError {
	return newCoded(ErrCodeUnauthorized, message)
}

func StorageError(message string) *AppError {
	return newCoded(ErrCodeStorage, message)
}

func InternalError(message string) *AppError {
	return newCoded(ErrCodeInternal, message)
}

// InvalidIDError reports a malformed identifier, e.g. a cart id that is not a UUID.
func InvalidIDError(entity, id string) *AppError {
	return InvalidArgumentError(fmt.Sprintf("Invalid %s ID: %q", entity, id))
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr, ok := IsAppError(err)
	return ok && appErr.Code == code
}
