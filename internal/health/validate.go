package health

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/7sg56/health-tracker-sub001/internal/api"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkPayload validates a request struct before it goes on the wire.
// Failures surface as a 400-kind *api.Error with per-field messages so the
// caller handles local and server-side validation identically.
func checkPayload(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &api.Error{Status: http.StatusBadRequest, Message: err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}

	return &api.Error{
		Status:  http.StatusBadRequest,
		Message: "validation failed",
		Fields:  fields,
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "min":
		return "minimum " + fe.Param()
	case "max":
		return "maximum " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "invalid value"
	}
}
