package models

// LiveEventType names an event sent by the page over the live session
type LiveEventType string

const (
	LiveEventInput    LiveEventType = "input"
	LiveEventBlur     LiveEventType = "blur"
	LiveEventSubmit   LiveEventType = "submit"
	LiveEventSearch   LiveEventType = "search"
	LiveEventCategory LiveEventType = "category"
	LiveEventQuery    LiveEventType = "query"
	LiveEventPing     LiveEventType = "ping"
)

// LiveEvent is an inbound live session message
type LiveEvent struct {
	Type     LiveEventType `json:"type" validate:"required,oneof=input blur submit search category query ping"`
	Field    FieldID       `json:"field,omitempty" validate:"omitempty,oneof=name email phone subject message"`
	Value    string        `json:"value,omitempty" validate:"max=5000"`
	Search   string        `json:"search,omitempty" validate:"max=200"`
	Category string        `json:"category,omitempty" validate:"max=64"`
}

// LiveMessageType names an outbound live session message
type LiveMessageType string

const (
	LiveMessageSession   LiveMessageType = "session"
	LiveMessageForm      LiveMessageType = "form"
	LiveMessageDirectory LiveMessageType = "directory"
	LiveMessageSubmitted LiveMessageType = "submitted"
	LiveMessageError     LiveMessageType = "error"
	LiveMessagePong      LiveMessageType = "pong"
)

// LiveMessage is an outbound live session message
type LiveMessage struct {
	Type      LiveMessageType  `json:"type"`
	SessionID string           `json:"sessionId,omitempty"`
	Form      *FormSnapshot    `json:"form,omitempty"`
	Directory *DirectoryResult `json:"directory,omitempty"`
	Valid     *bool            `json:"valid,omitempty"`
	Error     string           `json:"error,omitempty"`
}
