package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/go-playground/validator/v10"
)

var ErrNotFound = errors.New("record not found")

// ValidationError carries field name to message pairs. Nothing has been written when it is
// returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type fieldErrors map[string]string

func (f fieldErrors) add(field, tag string) {
	if _, exists := f[field]; exists {
		return
	}
	f[field] = helpers.FieldErrorMessage(field, tag, "")
}

func (f fieldErrors) has(field string) bool {
	_, ok := f[field]
	return ok
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// validateStruct runs the struct tags of form. Element errors such as related_products[1]
// are reported under the collection name.
func validateStruct(v *validator.Validate, form interface{}) (fieldErrors, error) {
	err := v.Struct(form)
	if err == nil {
		return fieldErrors{}, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	return fieldErrors(helpers.FormatValidationErrors(verrs)), nil
}

type uniqueCheck func(ctx context.Context, value string, excludeID uint) (bool, error)

// checkUnique adds an "unique" error for field unless it already failed another rule.
func checkUnique(ctx context.Context, fields fieldErrors, field, value string, excludeID uint, check uniqueCheck) error {
	if value == "" || fields.has(field) {
		return nil
	}
	taken, err := check(ctx, value, excludeID)
	if err != nil {
		return err
	}
	if taken {
		fields.add(field, "unique")
	}
	return nil
}

// checkID adds a "number" error for field when value is not a usable row id.
func checkID(fields fieldErrors, field, value string) {
	if value == "" || fields.has(field) {
		return
	}
	if _, err := parseID(value); err != nil {
		fields.add(field, "number")
	}
}

func checkIDs(fields fieldErrors, field string, values []string) {
	for _, v := range values {
		checkID(fields, field, v)
	}
}
