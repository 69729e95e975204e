// Package validate wraps go-playground/validator with domain error mapping.
package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/rmoralesp/bodega/internal/domain"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a tagged request struct. The first failing field becomes
// an EINVALID domain error with a client-safe message.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return &domain.Error{Code: domain.EINVALID, Message: "Invalid request", Err: err}
	}

	fe := errs[0]
	return &domain.Error{
		Code:    domain.EINVALID,
		Message: fieldMessage(fe),
		Err:     err,
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
