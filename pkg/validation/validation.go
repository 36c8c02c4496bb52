// Package validation wraps go-playground/validator with the storefront's
// user-facing error messages.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Error is returned for any request that fails validation. Message is safe
// to show to the client.
type Error struct {
	Field   string
	Tag     string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Messages maps "Field.tag" or "Field" to a client message. Lookup tries the
// precise key first.
type Messages map[string]string

// Check validates s and converts the first failing field into *Error.
func Check(s any, messages Messages) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate: %w", err)
	}

	fe := fieldErrs[0]
	return &Error{
		Field:   fe.Field(),
		Tag:     fe.Tag(),
		Message: messages.lookup(fe.Field(), fe.Tag()),
	}
}

// New builds a validation error outside of struct tags.
func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

func (m Messages) lookup(field, tag string) string {
	if msg, ok := m[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := m[field]; ok {
		return msg
	}
	return fmt.Sprintf("invalid %s", field)
}
