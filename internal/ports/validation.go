package ports

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/progressly/progressly-api/internal/domain"
)

const maxRequestBodyBytes = 64 * 1024

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json field names in validation errors
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	err := v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(fmt.Errorf("failed to register timeofday validation: %w", err))
	}

	return v
}

// decodeAndValidate reads a json request body into dst and runs its validate tags
func decodeAndValidate(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to parse request body: %w", err)
	}

	if err := validate.Struct(dst); err != nil {
		return describeValidationError(err)
	}

	return nil
}

func describeValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s failed %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("invalid request: %s", strings.Join(messages, ", "))
}
