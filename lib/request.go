package lib

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ExtractAndValidateBody decodes the JSON body into T and runs the validate tags on it
func ExtractAndValidateBody[T any](r *http.Request) (*T, error) {
	defer r.Body.Close()

	var body T

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&body); err != nil {
		return nil, NewValidationError("body", fmt.Sprintf("is not valid JSON: %v", err))
	}

	if err := ValidateStruct(body); err != nil {
		return nil, err
	}

	return &body, nil
}

// ValidateStruct runs the validate tags on v and returns a *ValidationError on failure
func ValidateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return mapValidationErrors(ve)
		}
		return err
	}
	return nil
}

// URLParamUUID parses a chi URL parameter as a UUID
func URLParamUUID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	if err != nil {
		return uuid.Nil, NewValidationError(key, "must be a valid UUID")
	}
	return id, nil
}

// QueryInt reads an integer query parameter, returning def when it is absent
func QueryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewValidationError(key, "must be a number")
	}
	return v, nil
}

func mapValidationErrors(errs validator.ValidationErrors) *ValidationError {
	out := &ValidationError{}

	for _, e := range errs {
		var message string
		switch e.Tag() {
		case "required":
			message = "is required"
		case "email":
			message = "must be a valid email address"
		case "url":
			message = "must be a valid URL"
		case "uuid4":
			message = "must be a valid UUID"
		case "min":
			message = "must be at least " + e.Param() + " characters"
		case "max":
			message = "must be at most " + e.Param() + " characters"
		case "len":
			message = "must be exactly " + e.Param() + " characters"
		case "gte":
			message = "must be greater than or equal to " + e.Param()
		case "lte":
			message = "must be less than or equal to " + e.Param()
		case "oneof":
			message = "must be one of: " + e.Param()
		case "dive":
			continue
		default:
			message = "is invalid"
		}

		out.Errors = append(out.Errors, FieldError{
			Field:   e.Field(),
			Message: message,
		})
	}

	return out
}
