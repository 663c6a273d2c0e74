package validator

import (
	"fmt"
	"reflect"
	"time"

	"computer-store-ws/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var validate = validator.New()

func init() {
	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})

	// HH:MM on a 24h clock
	validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		_, err := time.Parse("15:04", s)
		return err == nil && len(s) == 5
	})

	// decimals validate as float64 so gte/lte/gt work on money and markups
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.FailedField = err.StructNamespace()
			element.Tag = err.Tag()
			element.Value = err.Param()
			errors = append(errors, &element)
		}
	}
	return errors
}

// Validate is ValidateStruct folded into an *apperror.ValidationError, or nil
func Validate(data interface{}) error {
	failed := ValidateStruct(data)
	if len(failed) == 0 {
		return nil
	}
	fields := make([]apperror.FieldError, 0, len(failed))
	for _, f := range failed {
		fields = append(fields, apperror.FieldError{Field: f.FailedField, Message: message(f)})
	}
	return apperror.NewValidation("invalid request", fields...)
}

func message(f *ErrorResponse) string {
	switch f.Tag {
	case "required", "uuid_required":
		return "is required"
	case "clock":
		return "must be a time in HH:MM format"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", f.Value)
	case "gt":
		return fmt.Sprintf("must be greater than %s", f.Value)
	case "gte", "min":
		return fmt.Sprintf("must be at least %s", f.Value)
	case "lte", "max":
		return fmt.Sprintf("must be at most %s", f.Value)
	default:
		return fmt.Sprintf("failed on the '%s' rule", f.Tag)
	}
}
