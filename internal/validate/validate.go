// Package validate checks request payloads with validator tags and reports failures
// as apperr.Validation errors naming the offending JSON fields.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return val
}

// FieldsError lists the fields that failed, in struct order.
type FieldsError struct {
	Fields []string
}

func (e *FieldsError) Error() string {
	return "invalid or missing fields: " + strings.Join(e.Fields, ", ")
}

// Struct validates s. The returned error matches apperr.Validation and unwraps to *FieldsError.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return apperr.Wrap(apperr.Validation, "validate", err)
	}
	fe := &FieldsError{}
	for _, e := range ves {
		fe.Fields = append(fe.Fields, e.Field())
	}
	return apperr.Wrap(apperr.Validation, "validation failed", fe)
}

// Fields returns the failing field names carried by err, if any.
func Fields(err error) []string {
	var fe *FieldsError
	if errors.As(err, &fe) {
		return fe.Fields
	}
	return nil
}
