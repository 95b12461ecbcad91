package model

import "time"

const (
	NotificationTypeEmail = "EMAIL"

	NotificationStatusSent = "SENT"
)

// Notification is an append-only record that a message was dispatched to a
// user. Rows are never updated or deleted by this service.
type Notification struct {
	ID        int
	UserID    int
	Message   string
	Type      string
	Status    string
	CreatedAt time.Time
}
