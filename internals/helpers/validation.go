package helper

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	usermodel "github.com/shaunchuang/DtxEx/internals/features/users/user/model"
	"github.com/shaunchuang/DtxEx/internals/helpers/apperr"
)

// NewValidator reports fields by their JSON names and knows the
// respondent_id rule; extra rules are registered by the caller.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("respondent_id", func(fl validator.FieldLevel) bool {
		return usermodel.ValidRespondentID(fl.Field().String())
	})
	return v
}

// ValidationFields turns validator errors into {"sections[0].order": ["..."]}.
func ValidationFields(err error) map[string][]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string][]string{"body": {err.Error()}}
	}

	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		key := fe.Namespace()
		// drop the request struct name
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		out[key] = append(out[key], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be >= " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be <= " + fe.Param()
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "respondent_id":
		return "must be 1-64 characters of letters, digits, '-' or '_'"
	case "question_type":
		return "must be a supported question type"
	default:
		return "failed the " + fe.Tag() + " rule"
	}
}

// ParseUUIDParam reads a uuid route param; a malformed id is a validation error.
func ParseUUIDParam(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid "+param, map[string][]string{param: {"must be a valid UUID"}})
	}
	return id, nil
}
