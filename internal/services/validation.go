package services

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/emmanueladavize43/Gemini-cupid/internal/models"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is wrapped by every validation failure at the edit boundary
var ErrInvalidInput = errors.New("invalid input")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	err := v.RegisterValidation("relationship_goal", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.RelationshipGoals, fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register relationship_goal validation: %v", err))
	}

	return v
}

// validateStruct validates s and flattens field errors into one readable error
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, ", "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", field, strings.ToLower(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "relationship_goal":
		return fmt.Sprintf("%s must be one of [%s]", field, strings.Join(models.RelationshipGoals, ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
