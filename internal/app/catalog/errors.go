package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrVariantNotFound = errors.New("variant not found")
	ErrNoVariants      = errors.New("product has no variants")
	ErrNoDiscount      = errors.New("no discount to remove")
)

// ValidationError reports the fields that failed validation. Operations that
// return it leave the receiver unchanged.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		names = append(names, field)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Fields[field] = "required"
	}
}

func (e *ValidationError) positive(field string, value float64) {
	if value <= 0 {
		e.Fields[field] = "must be greater than zero"
	}
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
