package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/blindattack4/backend/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDifficulty(fl.Field().String())
		return err == nil
	})
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}
