package ticket

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const ticketCols = `id, patient_id, ticket_number, category, priority, status, subject,
	description, language, assigned_to, contact_email, contact_phone,
	resolution_notes, resolved_at, created_at, updated_at`

func (r *repoPG) scanTicket(row pgx.Row) (*SupportTicket, error) {
	var t SupportTicket
	err := row.Scan(&t.ID, &t.PatientID, &t.TicketNumber, &t.Category, &t.Priority, &t.Status, &t.Subject,
		&t.Description, &t.Language, &t.AssignedTo, &t.ContactEmail, &t.ContactPhone,
		&t.ResolutionNotes, &t.ResolvedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repoPG) Create(ctx context.Context, t *SupportTicket) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO support_tickets (patient_id, ticket_number, category, priority, status,
			subject, description, language, contact_email, contact_phone)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`,
		t.PatientID, t.TicketNumber, t.Category, t.Priority, t.Status,
		t.Subject, t.Description, t.Language, t.ContactEmail, t.ContactPhone).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*SupportTicket, error) {
	return r.scanTicket(r.conn(ctx).QueryRow(ctx, `SELECT `+ticketCols+` FROM support_tickets WHERE id = $1`, id))
}

func (r *repoPG) GetByNumber(ctx context.Context, ticketNumber string) (*SupportTicket, error) {
	return r.scanTicket(r.conn(ctx).QueryRow(ctx, `SELECT `+ticketCols+` FROM support_tickets WHERE ticket_number = $1`, ticketNumber))
}

func (r *repoPG) Update(ctx context.Context, t *SupportTicket) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE support_tickets SET priority=$2, status=$3, assigned_to=$4,
			resolution_notes=$5, resolved_at=$6, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.Priority, t.Status, t.AssignedTo, t.ResolutionNotes, t.ResolvedAt)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64, status string, limit, offset int) ([]*SupportTicket, int, error) {
	where := `WHERE patient_id = $1`
	countArgs := []interface{}{patientID}
	listArgs := []interface{}{patientID, limit, offset}
	listSQL := `SELECT ` + ticketCols + ` FROM support_tickets ` + where + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if status != "" {
		where = `WHERE patient_id = $1 AND status = $2`
		countArgs = []interface{}{patientID, status}
		listArgs = []interface{}{patientID, status, limit, offset}
		listSQL = `SELECT ` + ticketCols + ` FROM support_tickets ` + where + ` ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM support_tickets `+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*SupportTicket
	for rows.Next() {
		t, err := r.scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	return items, total, nil
}
