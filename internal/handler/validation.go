package handler

import (
	"coa-backend/internal/models"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateBody runs the struct tag presence checks and flattens the first
// failure into a readable message.
func validateBody(body interface{}) error {
	err := validate.Struct(body)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &models.ValidationError{Message: fmt.Sprintf("%s is required", fieldErrs[0].Field())}
	}
	return &models.ValidationError{Message: err.Error()}
}
