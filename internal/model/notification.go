package model

import "time"

// Notification is an unread inbox entry. Reading it deletes it.
type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"createdAt"`
}
