package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single committed chat turn. Messages are never modified once created.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewMessage stamps a message with a time-ordered UUIDv7 id.
func NewMessage(role Role, text string) Message {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}

	return Message{
		ID:        id.String(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

const (
	GreetingMessage = "Hello! I'm your Gaming AI Analyst. I can help you understand gaming data, trends, " +
		"and analyze any PDF documents you upload. What would you like to explore today?"

	documentReceivedFormat = "Perfect! I've received your PDF %q. You can now ask me questions about its content, " +
		"request summaries, or get specific insights from the document."

	completionFailedFormat = "Error connecting to ChatGPT: %s. Please check your API key and try again."
)
