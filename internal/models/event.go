package models

import "time"

// Event is a single entry in the activity log.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g. "user.login", "blog.create"
	Level     string    `json:"level"` // "info", "warn", "error"
	Message   string    `json:"message"`
	Actor     string    `json:"actor,omitempty"` // email of the acting user, if any
	PostID    *string   `json:"postId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
