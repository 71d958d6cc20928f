// Package validate performs advisory pre-submission form validation. It is
// not a security boundary; the server re-checks everything it stores.
package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sakchai-01/school-pos/internal/notify"
)

// FieldType selects the shape check applied to a non-empty value.
type FieldType string

const (
	TypeText   FieldType = "text"
	TypeEmail  FieldType = "email"
	TypeNumber FieldType = "number"
)

// Field is one form input to validate.
type Field struct {
	Name     string
	Value    string
	Type     FieldType
	Required bool
}

// FieldError annotates one failing field with an inline message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Permissive shape check only; full address validation is the server's job.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Check validates the fields and returns at most one error per field.
// Required is checked first; type checks run only on non-empty values.
func Check(fields []Field) []FieldError {
	var errs []FieldError
	for _, f := range fields {
		value := strings.TrimSpace(f.Value)

		if f.Required && value == "" {
			errs = append(errs, FieldError{Field: f.Name, Message: "This field is required"})
			continue
		}
		if value == "" {
			continue
		}

		switch f.Type {
		case TypeEmail:
			if !emailPattern.MatchString(value) {
				errs = append(errs, FieldError{Field: f.Name, Message: "Invalid email format"})
			}
		case TypeNumber:
			n, err := strconv.ParseFloat(value, 64)
			if err != nil || n <= 0 {
				errs = append(errs, FieldError{Field: f.Name, Message: "Enter a number greater than 0"})
			}
		}
	}
	return errs
}

// Notifier shows the aggregate failure message.
type Notifier interface {
	Notify(message string, severity notify.Severity) notify.Notification
}

// Form holds a set of fields plus the annotations from the last validation
// pass. Annotations are rebuilt, never accumulated: a repeated pass replaces
// the previous ones entirely.
type Form struct {
	fields []Field
	errors []FieldError
}

// NewForm creates a form over the given fields.
func NewForm(fields ...Field) *Form {
	return &Form{fields: fields}
}

// SetValue updates a field's value before re-validation.
func (f *Form) SetValue(name, value string) {
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].Value = value
			return
		}
	}
}

// Validate runs a full pass and reports whether submission may proceed.
// Passing is silent; on failure one aggregate error notification is shown
// and the per-field annotations are available via Errors.
func (f *Form) Validate(n Notifier) bool {
	f.errors = Check(f.fields)
	if len(f.errors) == 0 {
		return true
	}
	if n != nil {
		n.Notify("Please fill in all fields correctly", notify.SeverityError)
	}
	return false
}

// Errors returns the annotations from the last validation pass.
func (f *Form) Errors() []FieldError {
	return f.errors
}
