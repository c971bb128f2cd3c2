package models

import "time"

// ContactFormRequest is a contact form submission. The binding tags only
// bound sizes; the field rules are applied by the validation package so that
// every failure carries its user-facing message.
type ContactFormRequest struct {
	Name    string `json:"name" binding:"max=100"`
	Email   string `json:"email" binding:"max=254"`
	Phone   string `json:"phone" binding:"max=32"`
	Subject string `json:"subject" binding:"max=64"`
	Message string `json:"message" binding:"max=5000"`
}

// Values returns the submission keyed by form field
func (r *ContactFormRequest) Values() map[FieldID]string {
	return map[FieldID]string{
		FieldName:    r.Name,
		FieldEmail:   r.Email,
		FieldPhone:   r.Phone,
		FieldSubject: r.Subject,
		FieldMessage: r.Message,
	}
}

// ValidateFieldRequest asks for live feedback on a single field
type ValidateFieldRequest struct {
	Field FieldID `json:"field" binding:"required"`
	Value string  `json:"value" binding:"max=5000"`
}

// FieldFeedback is the per-field state returned to the page
type FieldFeedback struct {
	State   FieldState `json:"state"`
	Message string     `json:"message,omitempty"`
}

// ContactFormResponse is returned after a submission attempt
type ContactFormResponse struct {
	Success bool                      `json:"success"`
	Fields  map[FieldID]FieldFeedback `json:"fields,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

// ContactMessage is a recorded, valid contact form submission
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// ContactMessageFromValues builds a message from trimmed form values
func ContactMessageFromValues(values map[FieldID]string) *ContactMessage {
	return &ContactMessage{
		Name:    values[FieldName],
		Email:   values[FieldEmail],
		Phone:   values[FieldPhone],
		Subject: values[FieldSubject],
		Message: values[FieldMessage],
	}
}
