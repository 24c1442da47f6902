package ticket

import "context"

type Repository interface {
	Create(ctx context.Context, t *SupportTicket) error
	GetByID(ctx context.Context, id int64) (*SupportTicket, error)
	GetByNumber(ctx context.Context, ticketNumber string) (*SupportTicket, error)
	Update(ctx context.Context, t *SupportTicket) error
	ListByPatient(ctx context.Context, patientID int64, status string, limit, offset int) ([]*SupportTicket, int, error)
}
