package domain

import "time"

// ChatRole identifies who wrote a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatFallbackReply is shown when the coach cannot be reached.
const ChatFallbackReply = "Unable to connect. Please try again."

// ChatGreeting opens every new conversation.
const ChatGreeting = "Hi! I'm your quit-smoking coach. Ask me anything about cravings, withdrawal or staying smoke-free."

// ChatMessage is one entry of the append-only conversation log.
type ChatMessage struct {
	ID       string
	Role     ChatRole
	Text     string
	SentAt   time.Time
	Fallback bool // true when Text is ChatFallbackReply
}

// NewChatMessage creates a message stamped at the given instant.
func NewChatMessage(role ChatRole, text string, at time.Time) *ChatMessage {
	return &ChatMessage{
		ID:     generateID(),
		Role:   role,
		Text:   text,
		SentAt: at,
	}
}

// IsUser returns true if the user wrote the message.
func (m *ChatMessage) IsUser() bool {
	return m.Role == RoleUser
}
