package chat

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carely/portal/internal/platform/ai"
	"github.com/carely/portal/internal/platform/auth"
	"github.com/carely/portal/internal/platform/errs"
)

const maxMessageLength = 5000

const systemPrompt = `You are a helpful and empathetic medical assistant for Carely, a healthcare platform.
Your role is to:
- Provide clear, accurate, and empathetic responses to healthcare-related questions
- Help users understand medical information in accessible terms
- Guide users on when to seek professional medical care
- Never provide diagnoses or replace professional medical advice
- Always remind users to consult with healthcare professionals for serious medical concerns, diagnoses, or treatment decisions
- Be supportive, understanding, and maintain patient confidentiality
- If asked about medications, symptoms, or treatments, emphasize the importance of consulting healthcare providers

Remember: You are an assistant that provides information and guidance, but not medical diagnoses or treatment prescriptions.`

// TxRunner runs fn inside a database transaction. Repositories called
// through the fn context see the transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	convs     ConversationRepository
	msgs      MessageRepository
	completer ai.Completer
	runTx     TxRunner

	// historyLimit windows the prompt to the most recent N stored messages.
	// Zero sends the whole conversation; that is the production default so
	// the model always sees every prior turn.
	historyLimit int
}

// NewService wires the chat pipeline. completer may be nil when no
// completion backend is configured; Chat then fails fast.
func NewService(convs ConversationRepository, msgs MessageRepository, completer ai.Completer, runTx TxRunner, historyLimit int) *Service {
	return &Service{
		convs:        convs,
		msgs:         msgs,
		completer:    completer,
		runTx:        runTx,
		historyLimit: historyLimit,
	}
}

// Chat handles one assistant turn: resolve or create the conversation,
// get a completion over the stored history, and persist both sides of
// the exchange atomically. A completion failure persists nothing.
func (s *Service) Chat(ctx context.Context, callerID int64, req *ChatRequest) (*ChatResponse, error) {
	if s.completer == nil {
		return nil, errs.Unavailable("AI service is not configured")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, errs.InvalidInput("message cannot be empty")
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return nil, errs.Newf(errs.KindInvalidInput, "message exceeds %d characters", maxMessageLength)
	}

	conv, err := s.resolveConversation(ctx, callerID, req.ConversationID, message)
	if err != nil {
		return nil, err
	}

	history, err := s.msgs.History(ctx, conv.ConversationID, s.historyLimit)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "load history", err)
	}

	prompt := make([]ai.Message, 0, len(history)+2)
	prompt = append(prompt, ai.Message{Role: ai.RoleSystem, Content: systemPrompt})
	for _, m := range history {
		prompt = append(prompt, ai.Message{Role: m.Role, Content: m.Content})
	}
	prompt = append(prompt, ai.Message{Role: ai.RoleUser, Content: message})

	reply, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, errs.Wrap(errs.KindUnavailable, "AI service is unavailable", err)
	}
	reply = strings.TrimSpace(reply)

	assistantMessageID := uuid.New().String()
	err = s.runTx(ctx, func(txCtx context.Context) error {
		if _, err := s.convs.LockByConversationID(txCtx, conv.ConversationID); err != nil {
			return err
		}
		if err := s.msgs.Append(txCtx, &Message{
			ConversationID: conv.ConversationID,
			Role:           RoleUser,
			Content:        message,
			MessageID:      uuid.New().String(),
		}); err != nil {
			return err
		}
		if err := s.msgs.Append(txCtx, &Message{
			ConversationID: conv.ConversationID,
			Role:           RoleAssistant,
			Content:        reply,
			MessageID:      assistantMessageID,
		}); err != nil {
			return err
		}
		return s.convs.Touch(txCtx, conv.ConversationID)
	})
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "persist chat turn", err)
	}

	return &ChatResponse{
		Response:       reply,
		MessageID:      assistantMessageID,
		ConversationID: conv.ConversationID,
	}, nil
}

// resolveConversation returns the caller's existing conversation or
// creates a fresh one when no id was supplied. Unknown ids report
// not-found before the ownership check.
func (s *Service) resolveConversation(ctx context.Context, callerID int64, conversationID *string, firstMessage string) (*Conversation, error) {
	if conversationID != nil && *conversationID != "" {
		conv, err := s.convs.GetByConversationID(ctx, *conversationID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, errs.NotFound("conversation not found")
			}
			return nil, errs.Wrap(errs.KindInternal, "get conversation", err)
		}
		if !auth.Owns(callerID, conv.PatientID) {
			return nil, errs.Forbidden("not authorized to access this conversation")
		}
		return conv, nil
	}

	title := firstMessage
	if r := []rune(title); len(r) > 60 {
		title = string(r[:60])
	}
	conv := &Conversation{
		ConversationID: uuid.New().String(),
		PatientID:      callerID,
		Title:          &title,
	}
	if err := s.convs.Create(ctx, conv); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "create conversation", err)
	}
	return conv, nil
}

// ListConversations returns the caller's conversations, most recently
// active first.
func (s *Service) ListConversations(ctx context.Context, callerID int64, limit, offset int) ([]*Conversation, int, error) {
	items, total, err := s.convs.ListByPatient(ctx, callerID, limit, offset)
	if err != nil {
		return nil, 0, errs.Wrap(errs.KindInternal, "list conversations", err)
	}
	return items, total, nil
}

// History returns the full ordered message log of one of the caller's
// conversations.
func (s *Service) History(ctx context.Context, callerID int64, conversationID string) ([]*Message, error) {
	conv, err := s.convs.GetByConversationID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("conversation not found")
		}
		return nil, errs.Wrap(errs.KindInternal, "get conversation", err)
	}
	if !auth.Owns(callerID, conv.PatientID) {
		return nil, errs.Forbidden("not authorized to access this conversation")
	}
	msgs, err := s.msgs.History(ctx, conv.ConversationID, 0)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "load history", err)
	}
	return msgs, nil
}
