package dto

import (
	"github.com/go-playground/validator"

	apperrors "github.com/spec-kit/gym-portal/pkg/util"
)

var validate = validator.New()

// Validate runs struct tag validation and maps failures to the shared error
// taxonomy.
func Validate(payload any) error {
	if err := validate.Struct(payload); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			details := make(map[string]any, len(fieldErrs))
			for _, fieldErr := range fieldErrs {
				details[fieldErr.Field()] = fieldErr.Tag()
			}
			return apperrors.NewValidationError("invalid payload", details)
		}
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return nil
}
