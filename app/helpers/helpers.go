package helpers

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
)

// NewValidator reports field errors under their form names (sub_category, track_qty, ...).
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := err.Field()
		if i := strings.IndexByte(field, '['); i > 0 {
			field = field[:i]
		}
		if _, exists := errorMessages[field]; exists {
			continue
		}
		errorMessages[field] = FieldErrorMessage(field, err.Tag(), err.Param())
	}
	return errorMessages
}

func FieldErrorMessage(field, tag, param string) string {
	label := humanize(field)
	switch tag {
	case "required", "required_if":
		return fmt.Sprintf("The %s field is required.", label)
	case "numeric", "number":
		return fmt.Sprintf("The %s must be a number.", label)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", label)
	case "unique":
		return fmt.Sprintf("The %s has already been taken.", label)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case "min":
		return fmt.Sprintf("The %s must be at least %s.", label, param)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s.", label, param)
	default:
		return fmt.Sprintf("The %s is invalid.", label)
	}
}

func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func GenerateSlug(s string) string {
	return slug.Make(s)
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {

		log.Printf("PasswordCompare: password does not match or error: %v", err)
		return false
	}
	return true
}
