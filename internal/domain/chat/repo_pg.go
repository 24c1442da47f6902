package chat

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carely/portal/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// =========== Conversation Repository ===========

type convRepoPG struct{ pool *pgxpool.Pool }

func NewConversationRepoPG(pool *pgxpool.Pool) ConversationRepository {
	return &convRepoPG{pool: pool}
}

func (r *convRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const convCols = `id, conversation_id, patient_id, title, created_at, updated_at`

func (r *convRepoPG) scanConversation(row pgx.Row) (*Conversation, error) {
	var c Conversation
	err := row.Scan(&c.ID, &c.ConversationID, &c.PatientID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *convRepoPG) Create(ctx context.Context, c *Conversation) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO chat_conversations (conversation_id, patient_id, title)
		VALUES ($1,$2,$3)
		RETURNING id, created_at, updated_at`,
		c.ConversationID, c.PatientID, c.Title).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *convRepoPG) GetByConversationID(ctx context.Context, conversationID string) (*Conversation, error) {
	return r.scanConversation(r.conn(ctx).QueryRow(ctx,
		`SELECT `+convCols+` FROM chat_conversations WHERE conversation_id = $1`, conversationID))
}

func (r *convRepoPG) LockByConversationID(ctx context.Context, conversationID string) (*Conversation, error) {
	return r.scanConversation(r.conn(ctx).QueryRow(ctx,
		`SELECT `+convCols+` FROM chat_conversations WHERE conversation_id = $1 FOR UPDATE`, conversationID))
}

func (r *convRepoPG) Touch(ctx context.Context, conversationID string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE chat_conversations SET updated_at = NOW() WHERE conversation_id = $1`, conversationID)
	return err
}

func (r *convRepoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Conversation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM chat_conversations WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+convCols+` FROM chat_conversations WHERE patient_id = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Conversation
	for rows.Next() {
		c, err := r.scanConversation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, nil
}

// =========== Message Repository ===========

type msgRepoPG struct{ pool *pgxpool.Pool }

func NewMessageRepoPG(pool *pgxpool.Pool) MessageRepository {
	return &msgRepoPG{pool: pool}
}

func (r *msgRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const msgCols = `id, conversation_id, role, content, message_id, created_at`

func (r *msgRepoPG) Append(ctx context.Context, m *Message) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO chat_messages (conversation_id, role, content, message_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`,
		m.ConversationID, m.Role, m.Content, m.MessageID).
		Scan(&m.ID, &m.CreatedAt)
}

func (r *msgRepoPG) History(ctx context.Context, conversationID string, limit int) ([]*Message, error) {
	// Insertion order breaks created_at ties.
	query := `SELECT ` + msgCols + ` FROM chat_messages WHERE conversation_id = $1 ORDER BY created_at ASC, id ASC`
	args := []interface{}{conversationID}
	if limit > 0 {
		// Keep only the most recent window, still in chronological order.
		query = `SELECT ` + msgCols + ` FROM (
			SELECT ` + msgCols + ` FROM chat_messages WHERE conversation_id = $1
			ORDER BY created_at DESC, id DESC LIMIT $2
		) recent ORDER BY created_at ASC, id ASC`
		args = append(args, limit)
	}
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.MessageID, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}
