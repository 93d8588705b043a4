package domain

import "time"

type InchargeID string

// StudentIncharge assigns a user as the in-charge of one event. Uniqueness of
// the assignment per user is enforced upstream; the dashboard path simply
// consults the first match.
type StudentIncharge struct {
	ID        InchargeID `json:"id"`
	UserID    UserID     `json:"user_id"`
	EventID   EventID    `json:"event_id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
}
