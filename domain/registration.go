package domain

import "time"

type RegistrationID string

// Registration records that a user signed up for an event. The pair
// (UserID, EventID) is unique in the backing store; the portal never creates
// a second row for the same pair.
type Registration struct {
	ID        RegistrationID `json:"id"`
	UserID    UserID         `json:"user_id"`
	EventID   EventID        `json:"event_id"`
	CreatedAt time.Time      `json:"created_at"`
}
