package pipeline

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/pastry-manager-api/internal/result"
)

// SelfValidator is implemented by requests with rules struct tags cannot express.
type SelfValidator interface {
	Validate() []string
}

// NewValidator returns a validator that names fields by their `label` tag.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})
	return v
}

// Validation short-circuits with a failure when the request breaks its rules.
func Validation[Req, Res any](v *validator.Validate) Behavior[Req, Res] {
	return func(_ string, next HandlerFunc[Req, Res]) HandlerFunc[Req, Res] {
		return func(ctx context.Context, req Req) (result.Result[Res], error) {
			messages, err := Messages(v, req)
			if err != nil {
				return result.Result[Res]{}, err
			}
			if len(messages) > 0 {
				return result.Failure[Res](messages...), nil
			}
			return next(ctx, req)
		}
	}
}

// Messages lists every rule violation of req, tag rules first.
func Messages(v *validator.Validate, req any) ([]string, error) {
	var messages []string

	if isStruct(req) {
		if err := v.Struct(req); err != nil {
			fieldErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				return nil, err
			}
			for _, fe := range fieldErrs {
				messages = append(messages, message(fe))
			}
		}
	}

	if sv, ok := req.(SelfValidator); ok {
		messages = append(messages, sv.Validate()...)
	}
	return messages, nil
}

func isStruct(req any) bool {
	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
