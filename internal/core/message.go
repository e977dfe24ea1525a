package core

import "time"

// SystemSender is the sender name stamped on synthetic messages.
const SystemSender = "System"

// Message is the domain model for a chat message.
type Message struct {
	ID        string
	Content   string
	Sender    string
	CreatedAt time.Time

	// Presentation flags for synthetic messages.
	System      bool
	Agreement   bool
	TopicChange bool
}
