// Package validation evaluates the contact form field rules. Every function
// here is pure: inputs are plain strings and nothing is mutated.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/csdept/deptsite-api/internal/models"
	apperrors "github.com/csdept/deptsite-api/pkg/errors"
)

const (
	MsgNameRequired    = "Name is required"
	MsgNameTooShort    = "Name must be at least 2 characters"
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Please enter a valid email address"
	MsgPhoneInvalid    = "Please enter a valid phone number"
	MsgSubjectRequired = "Please select a subject"
	MsgMessageRequired = "Message is required"
	MsgMessageTooShort = "Message must be at least 10 characters"
	MsgUnknownField    = "Unknown field"

	minNameLength    = 2
	minMessageLength = 10
)

var (
	emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{0,15}$`)

	// ErrUnknownField is returned by ValidateKnown for ids outside the form
	ErrUnknownField = fmt.Errorf("unknown contact form field: %w", apperrors.ErrInvalidInput)
)

// rule is one ordered check; it returns false when the value fails
type rule struct {
	check   func(value string) bool
	kind    models.ErrorKind
	message string
}

// fieldRules lists the rules per field in evaluation order. Values are
// trimmed before any rule runs.
var fieldRules = map[models.FieldID][]rule{
	models.FieldName: {
		{check: nonEmpty, kind: models.ErrorKindMissingRequired, message: MsgNameRequired},
		{check: minLength(minNameLength), kind: models.ErrorKindTooShort, message: MsgNameTooShort},
	},
	models.FieldEmail: {
		{check: nonEmpty, kind: models.ErrorKindMissingRequired, message: MsgEmailRequired},
		{check: IsEmail, kind: models.ErrorKindInvalidFormat, message: MsgEmailInvalid},
	},
	models.FieldPhone: {
		{check: optional(IsPhone), kind: models.ErrorKindInvalidFormat, message: MsgPhoneInvalid},
	},
	models.FieldSubject: {
		{check: nonEmpty, kind: models.ErrorKindMissingSelection, message: MsgSubjectRequired},
	},
	models.FieldMessage: {
		{check: nonEmpty, kind: models.ErrorKindMissingRequired, message: MsgMessageRequired},
		{check: minLength(minMessageLength), kind: models.ErrorKindTooShort, message: MsgMessageTooShort},
	},
}

// Validate applies the rules of field to raw. The first failing rule decides
// the message; later rules are not evaluated.
func Validate(field models.FieldID, raw string) models.ValidationResult {
	rules, ok := fieldRules[field]
	if !ok {
		return models.ValidationResult{Valid: false, Message: MsgUnknownField, Kind: models.ErrorKindInvalidFormat}
	}

	value := strings.TrimSpace(raw)
	for _, r := range rules {
		if !r.check(value) {
			return models.ValidationResult{Valid: false, Message: r.message, Kind: r.kind}
		}
	}
	return models.ValidationResult{Valid: true}
}

// ValidateKnown is Validate for callers that accept field ids from outside,
// reporting unknown ids as an error instead of a failed result.
func ValidateKnown(field models.FieldID, raw string) (models.ValidationResult, error) {
	if !field.IsKnown() {
		return models.ValidationResult{}, fmt.Errorf("%q: %w", field, ErrUnknownField)
	}
	return Validate(field, raw), nil
}

// ValidateValues validates every form field in models.FieldOrder. Missing
// keys validate as empty strings.
func ValidateValues(values map[models.FieldID]string) (map[models.FieldID]models.ValidationResult, bool) {
	results := make(map[models.FieldID]models.ValidationResult, len(models.FieldOrder))
	allValid := true
	for _, id := range models.FieldOrder {
		res := Validate(id, values[id])
		results[id] = res
		if !res.Valid {
			allValid = false
		}
	}
	return results, allValid
}

// TrimValues returns a copy of values with surrounding whitespace removed,
// the form in which a valid submission is recorded
func TrimValues(values map[models.FieldID]string) map[models.FieldID]string {
	out := make(map[models.FieldID]string, len(values))
	for id, v := range values {
		out[id] = strings.TrimSpace(v)
	}
	return out
}

// IsEmail reports whether value has the local@domain.tld shape
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsPhone reports whether value is a phone number once spaces, hyphens and
// parentheses are removed
func IsPhone(value string) bool {
	return phonePattern.MatchString(NormalizePhone(value))
}

// NormalizePhone strips the separators a phone number may be typed with
func NormalizePhone(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, value)
}

func nonEmpty(value string) bool {
	return value != ""
}

func minLength(n int) func(string) bool {
	return func(value string) bool {
		return utf8.RuneCountInString(value) >= n
	}
}

func optional(check func(string) bool) func(string) bool {
	return func(value string) bool {
		return value == "" || check(value)
	}
}
