package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return IsDate(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("projectstatus", func(fl validator.FieldLevel) bool {
		return ProjectStatus(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(validateCreationName, ProjectCreation{})
	v.RegisterStructValidation(validateUpdatingName, ProjectUpdating{})
	return v
}

// Names are trimmed before they are stored, so a blank name counts as missing.
func validateCreationName(sl validator.StructLevel) {
	c := sl.Current().Interface().(ProjectCreation)
	if c.EventName != "" && strings.TrimSpace(c.EventName) == "" {
		sl.ReportError(c.EventName, "EventName", "eventName", "required", "")
	}
}

func validateUpdatingName(sl validator.StructLevel) {
	u := sl.Current().Interface().(ProjectUpdating)
	if u.EventName != nil && strings.TrimSpace(*u.EventName) == "" {
		sl.ReportError(*u.EventName, "EventName", "eventName", "required", "")
	}
}

// IsDate accepts the empty string or a YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Validate checks a creation or updating payload. Failures are
// validator.ValidationErrors.
func Validate(payload interface{}) error {
	return validate.Struct(payload)
}
