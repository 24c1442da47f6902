package chat

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation maps to the chat_conversations table. ConversationID is
// the public uuid handle; ID is the internal row key.
type Conversation struct {
	ID             int64     `db:"id" json:"-"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	PatientID      int64     `db:"patient_id" json:"patient_id"`
	Title          *string   `db:"title" json:"title,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Message maps to the chat_messages table. The log is append-only:
// rows are never updated or deleted.
type Message struct {
	ID             int64     `db:"id" json:"-"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	Role           string    `db:"role" json:"role"`
	Content        string    `db:"content" json:"content"`
	MessageID      string    `db:"message_id" json:"message_id"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ChatRequest is the payload for a chat turn.
type ChatRequest struct {
	Message        string  `json:"message"`
	ConversationID *string `json:"conversation_id,omitempty"`
}

// ChatResponse returns the assistant's reply. MessageID identifies the
// assistant message; ConversationID lets the client continue the thread.
type ChatResponse struct {
	Response       string `json:"response"`
	MessageID      string `json:"message_id"`
	ConversationID string `json:"conversation_id"`
}
