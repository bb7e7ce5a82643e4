package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/errors"
	"github.com/go-playground/validator/v10"
)

type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func write(w http.ResponseWriter, statusCode int, body APIResponse) {
	if err := WriteJson(w, statusCode, body); err != nil {
		slog.Warn("Failed to write response", slog.Int("status", statusCode), slog.Any("error", err))
	}
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	write(w, statusCode, APIResponse{Success: true, Data: data})
}

func Error(w http.ResponseWriter, err error) {
	statusCode, body := errorBody(err)
	write(w, statusCode, APIResponse{Error: body})
}

// errorBody maps err onto the envelope. Storage detail stays in logs.
func errorBody(err error) (int, *ErrorResponse) {
	appErr, ok := errors.IsAppError(err)
	if !ok {
		return http.StatusInternalServerError, &ErrorResponse{
			Code:    errors.ErrCodeInternal,
			Message: "An unexpected error occurred",
		}
	}

	body := &ErrorResponse{Code: appErr.Code, Message: appErr.Message}
	if appErr.Detail != "" && appErr.Code != errors.ErrCodeStorage {
		body.Details = []string{appErr.Detail}
	}

	return appErr.StatusCode, body
}

var tagMessages = map[string]string{
	"required": "Field %s is required",
	"min":      "Field %s must be at least %s",
	"max":      "Field %s must be at most %s",
	"gte":      "Field %s must be greater than or equal to %s",
	"gt":       "Field %s must be greater than %s",
}

func fieldMessage(fe validator.FieldError) string {
	format, ok := tagMessages[fe.Tag()]
	switch {
	case !ok:
		return fmt.Sprintf("Field %s is invalid: %s=%s", fe.Field(), fe.Tag(), fe.Param())
	case fe.Tag() == "required":
		return fmt.Sprintf(format, fe.Field())
	default:
		return fmt.Sprintf(format, fe.Field(), fe.Param())
	}
}

// ValidationError reports every failed field in one 400 response.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {
	details := make([]string, 0, len(errs))
	for _, fe := range errs {
		details = append(details, fieldMessage(fe))
	}

	write(w, http.StatusBadRequest, APIResponse{Error: &ErrorResponse{
		Code:    errors.ErrCodeValidation,
		Message: "Validation failed",
		Details: details,
	}})
}
