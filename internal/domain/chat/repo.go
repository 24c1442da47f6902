package chat

import "context"

type ConversationRepository interface {
	Create(ctx context.Context, c *Conversation) error
	GetByConversationID(ctx context.Context, conversationID string) (*Conversation, error)
	// LockByConversationID takes a row lock for the duration of the
	// surrounding transaction, serializing concurrent turns.
	LockByConversationID(ctx context.Context, conversationID string) (*Conversation, error)
	Touch(ctx context.Context, conversationID string) error
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Conversation, int, error)
}

type MessageRepository interface {
	Append(ctx context.Context, m *Message) error
	// History returns up to limit of the most recent messages in
	// chronological order; limit <= 0 returns everything.
	History(ctx context.Context, conversationID string, limit int) ([]*Message, error)
}
