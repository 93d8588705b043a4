// Package domain contains core concepts of the symposium portal.
// This file defines Message entities and audience scoping rules.
// Messages are immutable once created.
package domain

import "time"

type MessageID string

type MessageKind string

const (
	KindAnnouncement MessageKind = "announcement"
	KindEventUpdate  MessageKind = "event_update"
	KindGlobal       MessageKind = "global"
)

func (k MessageKind) Valid() bool {
	switch k {
	case KindAnnouncement, KindEventUpdate, KindGlobal:
		return true
	}
	return false
}

// Message is a staff announcement. EventID is nil for messages that are not
// scoped to a single event. IsGlobal is authoritative for audience scoping;
// Kind is a display-only category.
type Message struct {
	ID        MessageID   `json:"id"`
	SenderID  UserID      `json:"sender_id"`
	EventID   *EventID    `json:"event_id"`
	Content   string      `json:"content"`
	Kind      MessageKind `json:"message_type"`
	IsGlobal  bool        `json:"is_global"`
	CreatedAt time.Time   `json:"created_at"`
}
