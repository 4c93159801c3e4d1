package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/quadworks/flowdeck/internal/domain/entities"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a validator with the flowdeck-specific rules
// registered.
func New() *CustomValidator {
	v := validator.New()

	// quadstage accepts one of the four QUAD stage letters.
	_ = v.RegisterValidation("quadstage", func(fl validator.FieldLevel) bool {
		return entities.FlowStage(fl.Field().String()).IsValid()
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
