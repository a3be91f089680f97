package models

import "time"

// Role identifies who authored a message
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message represents a chat message for TUI display.
// Messages are values; once appended to a conversation they are never changed.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// IsUser reports whether the message was written by the user
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// Clock formats the timestamp as HH:MM for display
func (m Message) Clock() string {
	return m.Timestamp.Format("15:04")
}
