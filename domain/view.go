package domain

// View records are ephemeral denormalized composites rebuilt on every cache
// fill. A nil relation means the foreign key resolved to nothing upstream.

type EventSummary struct {
	ID   EventID `json:"id"`
	Name string  `json:"name"`
}

func (e Event) Summary() EventSummary {
	return EventSummary{ID: e.ID, Name: e.Name}
}

type MessageView struct {
	Message
	Sender *Profile      `json:"profiles"`
	Event  *EventSummary `json:"events"`
}

type RegistrationView struct {
	Registration
	Participant *Profile `json:"profiles"`
}

// EventDetail is an event with its in-charge assignments attached.
type EventDetail struct {
	Event
	Incharges []StudentIncharge `json:"student_incharges"`
}
