package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldErrors maps a field name to the list of human-readable messages
// describing why the submitted value was rejected.
type FieldErrors map[string][]string

func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Error wraps a non-empty FieldErrors so services can return it through
// a plain error value.
type Error struct {
	Fields FieldErrors
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, messages := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(messages, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Err returns nil when no violations were recorded, otherwise an *Error
// carrying the full map. No partial object should be constructed when
// this returns non-nil.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &Error{Fields: f}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (f FieldErrors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.Add(field, "This field is required.")
	}
}

func (f FieldErrors) MaxLength(field, value string, limit int) {
	if len(value) > limit {
		f.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", limit))
	}
}

func (f FieldErrors) MinLength(field, value string, limit int) {
	if len(value) < limit {
		f.Add(field, fmt.Sprintf("Ensure this field has at least %d characters.", limit))
	}
}

func (f FieldErrors) NonNegative(field string, value int) {
	if value < 0 {
		f.Add(field, "Ensure this value is greater than or equal to 0.")
	}
}

func (f FieldErrors) Email(field, value string) {
	if value != "" && !emailPattern.MatchString(value) {
		f.Add(field, "Enter a valid email address.")
	}
}

func (f FieldErrors) OneOf(field, value string, allowed func(string) bool) {
	if !allowed(value) {
		f.Add(field, fmt.Sprintf("%q is not a valid choice.", value))
	}
}
