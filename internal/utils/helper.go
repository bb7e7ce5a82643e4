package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds a request body; the largest is a full cart replacement.
const maxBodyBytes = 1 << 20

var ErrEmptyBody = errors.New("request body cannot be empty")

// DecodeJSONBody reads at most maxBodyBytes and unmarshals them into dest.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	switch {
	case len(body) == 0:
		return ErrEmptyBody
	case len(body) > maxBodyBytes:
		return fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

func ValidateStruct(validate *validator.Validate, data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		slog.Debug("Request validation failed", slog.Int("fields", len(validationErrs)))
		return fmt.Errorf("validation error: %w", validationErrs)
	}

	return fmt.Errorf("unexpected validation error: %w", err)
}
