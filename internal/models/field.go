package models

// FieldID identifies one input of the contact form
type FieldID string

const (
	FieldName    FieldID = "name"
	FieldEmail   FieldID = "email"
	FieldPhone   FieldID = "phone"
	FieldSubject FieldID = "subject"
	FieldMessage FieldID = "message"
)

// FieldOrder is the fixed order in which the contact form is validated
var FieldOrder = []FieldID{FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage}

// IsKnown reports whether id is one of the contact form fields
func (id FieldID) IsKnown() bool {
	switch id {
	case FieldName, FieldEmail, FieldPhone, FieldSubject, FieldMessage:
		return true
	}
	return false
}

// FieldState is the visual validity state of a field
type FieldState string

const (
	FieldNeutral FieldState = "neutral"
	FieldError   FieldState = "error"
	FieldSuccess FieldState = "success"
)

// ErrorKind classifies a failed field rule
type ErrorKind string

const (
	ErrorKindNone             ErrorKind = ""
	ErrorKindMissingRequired  ErrorKind = "missing_required"
	ErrorKindTooShort         ErrorKind = "too_short"
	ErrorKindInvalidFormat    ErrorKind = "invalid_format"
	ErrorKindMissingSelection ErrorKind = "missing_selection"
)

// ValidationResult is the outcome of validating one field value
type ValidationResult struct {
	Valid   bool      `json:"valid"`
	Message string    `json:"message,omitempty"`
	Kind    ErrorKind `json:"kind,omitempty"`
}

// Field is one contact form input with its derived validity state
type Field struct {
	ID      FieldID    `json:"id"`
	Value   string     `json:"value"`
	State   FieldState `json:"state"`
	Message string     `json:"message,omitempty"`
}

// SubmissionState is the contact form's UI state
type SubmissionState string

const (
	SubmissionEditable       SubmissionState = "editable"
	SubmissionShowingSuccess SubmissionState = "showing_success"
)

// FormSnapshot is a point-in-time copy of the contact form state
type FormSnapshot struct {
	Fields         []Field         `json:"fields"`
	State          SubmissionState `json:"state"`
	FormVisible    bool            `json:"formVisible"`
	SuccessVisible bool            `json:"successVisible"`
	// Version increases with every change to the form; a snapshot with a
	// lower version than one already shown is stale
	Version uint64 `json:"version"`
}

// FieldByID returns the snapshot entry for id
func (s FormSnapshot) FieldByID(id FieldID) (Field, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}
