package domain

// SendMessageCommand carries everything needed to post a staff message.
// Validation tags are enforced by the message service before any store call.
type SendMessageCommand struct {
	Content  string `validate:"required"`
	EventID  *EventID
	IsGlobal bool
	Kind     MessageKind `validate:"required"`
}

type RegisterCommand struct {
	EventID EventID `validate:"required"`
}
