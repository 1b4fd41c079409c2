package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError turns a request binding error into an ErrorDetail.
// Struct tag failures are listed per field; decoding failures are reported
// as a malformed body.
func HandleValidationError(err error) *ErrorDetail {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make([]map[string]string, 0, len(vErrs))
		for _, fe := range vErrs {
			fields = append(fields, map[string]string{
				"field":   fe.Field(),
				"message": bindingMessage(fe),
			})
		}
		return NewErrorDetail(ErrorCodeValidationFailed, "Validation failed").WithDetails(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return NewErrorDetail(ErrorCodeBadRequest, "Invalid request format").
			WithField(typeErr.Field).
			WithDetails(fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type))
	}

	return NewErrorDetail(ErrorCodeBadRequest, "Invalid request format").WithDetails(err.Error())
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param()
	default:
		return fe.Field() + " validation failed: " + fe.Tag()
	}
}
