package utils

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	appErrors "github.com/aaravmahajanofficial/cart-checkout-service/internal/errors"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/aaravmahajanofficial/cart-checkout-service/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, decodeError(err))
		return false
	}

	return validateInto(w, dest, validate)
}

// ParseAndValidateOptional accepts an empty body and leaves dest untouched.
func ParseAndValidateOptional(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil && !errors.Is(err, ErrEmptyBody) {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, decodeError(err))
		return false
	}

	return validateInto(w, dest, validate)
}

func validateInto(w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			response.ValidationError(w, validationErrs)
			return false
		}

		response.Error(w, appErrors.ValidationError("Invalid input data").WithError(err))
		return false
	}

	return true
}

func decodeError(err error) *appErrors.AppError {
	if errors.Is(err, models.ErrInvalidQuantity) {
		return appErrors.InvalidArgumentError(err.Error()).WithError(err)
	}

	return appErrors.ValidationError("Invalid request body").WithDetail(err.Error()).WithError(err)
}

// ParseID reads a UUID, naming the entity on failure.
func ParseID(raw, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErrors.InvalidIDError(entity, raw).WithError(err)
	}

	return id, nil
}

// PageParams reads page and size query values, falling back to 1 and 10.
func PageParams(r *http.Request) (int, int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size < 1 || size > 100 {
		size = 10
	}

	return page, size
}
