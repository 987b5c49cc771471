package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/JonnyWalker81/energy/backend/internal/models"
)

// activityInput is the merged state of an activity about to be written.
type activityInput struct {
	Name            string    `json:"name" validate:"required,max=100"`
	Description     string    `json:"description" validate:"max=1000"`
	EnergyLevel     *int      `json:"energy_level" validate:"required,min=-2,max=2"`
	DurationMinutes *int      `json:"duration_minutes" validate:"required,min=1,max=1440"`
	OccurredAt      time.Time `json:"occurred_at"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput checks in against the field limits and rejects an
// occurred_at after now. All violations are returned together.
func validateInput(in activityInput, now time.Time) error {
	verr := &ValidationError{}

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate activity: %w", err)
		}
		for _, fe := range fieldErrs {
			code, message := describe(fe)
			verr.add(fe.Field(), code, message)
		}
	}

	if in.OccurredAt.After(now) {
		verr.add("occurred_at", CodeFutureTimestamp, "must not be in the future")
	}

	return verr.orNil()
}

func describe(fe validator.FieldError) (code, message string) {
	switch fe.Tag() {
	case "required":
		return CodeRequired, "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return CodeTooLong, fmt.Sprintf("must be at most %s characters", fe.Param())
		}
	}
	switch fe.Field() {
	case "energy_level":
		return CodeOutOfRange, fmt.Sprintf("must be between %d and %d", models.EnergyVeryDraining, models.EnergyVeryEnergizing)
	case "duration_minutes":
		return CodeOutOfRange, fmt.Sprintf("must be between %d and %d minutes", models.MinDurationMinutes, models.MaxDurationMinutes)
	}
	return CodeInvalidValue, fmt.Sprintf("failed the %q rule", fe.Tag())
}
