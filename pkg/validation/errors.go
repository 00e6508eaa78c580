package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrRequired is returned when a field is empty
	ErrRequired = errors.New("field is required")

	// ErrInvalidFormat is returned when a field is present but fails its shape or range check
	ErrInvalidFormat = errors.New("field has an invalid format")
)

// FieldError ties a failing verdict to its field
type FieldError struct {
	Field   Field
	Verdict Verdict
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Verdict.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Verdict.Err()
}

// FieldErrors collects every invalid verdict of one validation pass
type FieldErrors map[Field]Verdict

// Add records v when it is invalid
func (fe FieldErrors) Add(field Field, v Verdict) {
	if !v.Valid {
		fe[field] = v
	}
}

func (fe FieldErrors) Error() string {
	fields := fe.sortedFields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, fe[f].Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes each field failure so errors.Is matches ErrRequired or ErrInvalidFormat
func (fe FieldErrors) Unwrap() []error {
	fields := fe.sortedFields()
	errs := make([]error, 0, len(fields))
	for _, f := range fields {
		errs = append(errs, &FieldError{Field: f, Verdict: fe[f]})
	}
	return errs
}

// OrNil returns nil when nothing failed
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (fe FieldErrors) sortedFields() []Field {
	fields := make([]Field, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}
