// Package validation checks single intake form values and produces a
// verdict the presentation layer can render. Every function here is pure.
package validation

import (
	"regexp"
	"strconv"
	"strings"
)

// Field names one logical input of the intake form
type Field string

const (
	FieldContact        Field = "contact"
	FieldAge            Field = "age"
	FieldDiagnosis      Field = "diagnosis"
	FieldDiagnosisStage Field = "diagnosisStage"
	FieldRecentChemo    Field = "recentChemo"
	FieldCanTravel      Field = "canTravel"
)

// Step1Fields and Step2Fields list the inputs in the order they are shown
var (
	Step1Fields = []Field{FieldContact, FieldAge, FieldDiagnosis}
	Step2Fields = []Field{FieldDiagnosisStage, FieldRecentChemo, FieldCanTravel}
)

// Kind classifies why a verdict failed
type Kind string

const (
	KindNone          Kind = ""
	KindRequired      Kind = "required"
	KindInvalidFormat Kind = "invalid_format"
)

// Verdict is the result of validating one field value
type Verdict struct {
	Valid   bool   `json:"valid"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
}

// Err maps the verdict onto the package sentinel errors
func (v Verdict) Err() error {
	switch v.Kind {
	case KindRequired:
		return ErrRequired
	case KindInvalidFormat:
		return ErrInvalidFormat
	default:
		return nil
	}
}

const (
	MsgContactRequired   = "Contact information is required."
	MsgContactInvalid    = "Please enter a valid email or a 10-digit phone number."
	MsgAgeRequired       = "Age is required."
	MsgAgeInvalid        = "Please enter a valid age (e.g., a whole number between 1 and 120)."
	MsgDiagnosisRequired = "Please select a primary cancer diagnosis."
	MsgStageRequired     = "Please select the stage of your diagnosis."
	MsgChemoRequired     = "Please tell us whether you have had chemotherapy recently."
	MsgTravelRequired    = "Please tell us whether you are able to travel."
)

const (
	MinAge = 1
	MaxAge = 120
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Valid is the passing verdict
func Valid() Verdict {
	return Verdict{Valid: true}
}

func required(msg string) Verdict {
	return Verdict{Kind: KindRequired, Message: msg}
}

func invalidFormat(msg string) Verdict {
	return Verdict{Kind: KindInvalidFormat, Message: msg}
}

// ValidateContact accepts an email address or a 10 or 11 digit phone number
func ValidateContact(value string) Verdict {
	value = strings.TrimSpace(value)
	if value == "" {
		return required(MsgContactRequired)
	}
	if !IsEmail(value) && !IsPhone(value) {
		return invalidFormat(MsgContactInvalid)
	}
	return Valid()
}

// IsEmail reports whether value looks like user@domain.tld with no whitespace
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsPhone reports whether value has 10 or 11 digits once punctuation is removed
func IsPhone(value string) bool {
	digits := nonDigits.ReplaceAllString(value, "")
	return len(digits) == 10 || len(digits) == 11
}

// ValidateAge accepts a whole number between MinAge and MaxAge.
// A valid age is not necessarily an eligible one.
func ValidateAge(value string) Verdict {
	if strings.TrimSpace(value) == "" {
		return required(MsgAgeRequired)
	}
	if _, ok := ParseAge(value); !ok {
		return invalidFormat(MsgAgeInvalid)
	}
	return Valid()
}

// ParseAge returns the age and whether it is a whole number in range
func ParseAge(value string) (int, bool) {
	age, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || age < MinAge || age > MaxAge {
		return 0, false
	}
	return age, true
}

// ValidateDiagnosisSelected only checks that a diagnosis was picked
func ValidateDiagnosisSelected(value string) Verdict {
	return selected(value, MsgDiagnosisRequired)
}

// ValidateStep2Selections returns one verdict per step 2 field
func ValidateStep2Selections(recentChemo, canTravel, diagnosisStage string) map[Field]Verdict {
	return map[Field]Verdict{
		FieldRecentChemo:    selected(recentChemo, MsgChemoRequired),
		FieldCanTravel:      selected(canTravel, MsgTravelRequired),
		FieldDiagnosisStage: selected(diagnosisStage, MsgStageRequired),
	}
}

func selected(value, msg string) Verdict {
	if strings.TrimSpace(value) == "" {
		return required(msg)
	}
	return Valid()
}

// ValidateField dispatches to the rule for field. Step 2 selections are
// checked for presence only.
func ValidateField(field Field, value string) Verdict {
	switch field {
	case FieldContact:
		return ValidateContact(value)
	case FieldAge:
		return ValidateAge(value)
	case FieldDiagnosis:
		return ValidateDiagnosisSelected(value)
	case FieldRecentChemo:
		return selected(value, MsgChemoRequired)
	case FieldCanTravel:
		return selected(value, MsgTravelRequired)
	case FieldDiagnosisStage:
		return selected(value, MsgStageRequired)
	default:
		return invalidFormat("Unknown field.")
	}
}

// KnownField reports whether field is one of the six form inputs
func KnownField(field Field) bool {
	for _, f := range Step1Fields {
		if f == field {
			return true
		}
	}
	for _, f := range Step2Fields {
		if f == field {
			return true
		}
	}
	return false
}
