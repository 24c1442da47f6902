package ticket

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/carely/portal/internal/platform/auth"
	"github.com/carely/portal/internal/platform/errs"
)

const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

var validStatuses = map[string]bool{
	StatusOpen: true, StatusInProgress: true,
	StatusResolved: true, StatusClosed: true,
}

var validPriorities = map[string]bool{
	"low": true, "medium": true, "high": true, "urgent": true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// generateTicketNumber returns "TKT-" followed by 8 uppercase hex chars.
func generateTicketNumber() string {
	u := uuid.New()
	return "TKT-" + strings.ToUpper(hex.EncodeToString(u[:4]))
}

// Create opens a support ticket for the caller with a generated
// ticket number.
func (s *Service) Create(ctx context.Context, callerID int64, req *CreateTicketRequest) (*SupportTicket, error) {
	if req.PatientID == 0 {
		req.PatientID = callerID
	}
	if !auth.Owns(callerID, req.PatientID) {
		return nil, errs.Forbidden("not authorized to create tickets for other patients")
	}
	if req.Category == "" {
		return nil, errs.InvalidInput("category is required")
	}
	if req.Subject == "" {
		return nil, errs.InvalidInput("subject is required")
	}
	if req.Description == "" {
		return nil, errs.InvalidInput("description is required")
	}
	if req.Priority == "" {
		req.Priority = "medium"
	}
	if !validPriorities[req.Priority] {
		return nil, errs.Newf(errs.KindInvalidInput, "invalid priority: %s", req.Priority)
	}
	if req.Language == "" {
		req.Language = "en"
	}

	t := &SupportTicket{
		PatientID:    req.PatientID,
		TicketNumber: generateTicketNumber(),
		Category:     req.Category,
		Priority:     req.Priority,
		Status:       StatusOpen,
		Subject:      req.Subject,
		Description:  req.Description,
		Language:     req.Language,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "create support ticket", err)
	}
	return t, nil
}

// Get resolves a ticket and enforces ownership. Unknown ids report
// not-found before the ownership check.
func (s *Service) Get(ctx context.Context, callerID, id int64) (*SupportTicket, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("support ticket not found")
		}
		return nil, errs.Wrap(errs.KindInternal, "get support ticket", err)
	}
	if !auth.Owns(callerID, t.PatientID) {
		return nil, errs.Forbidden("not authorized to access this ticket")
	}
	return t, nil
}

// GetByNumber looks up a ticket by its public ticket number.
func (s *Service) GetByNumber(ctx context.Context, callerID int64, ticketNumber string) (*SupportTicket, error) {
	t, err := s.repo.GetByNumber(ctx, ticketNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("support ticket not found")
		}
		return nil, errs.Wrap(errs.KindInternal, "get support ticket", err)
	}
	if !auth.Owns(callerID, t.PatientID) {
		return nil, errs.Forbidden("not authorized to access this ticket")
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, callerID int64, status string, limit, offset int) ([]*SupportTicket, int, error) {
	if status != "" && !validStatuses[status] {
		return nil, 0, errs.Newf(errs.KindInvalidInput, "invalid status: %s", status)
	}
	items, total, err := s.repo.ListByPatient(ctx, callerID, status, limit, offset)
	if err != nil {
		return nil, 0, errs.Wrap(errs.KindInternal, "list support tickets", err)
	}
	return items, total, nil
}

// Update applies the non-nil fields of req to the caller's ticket. A
// transition into resolved stamps resolved_at once.
func (s *Service) Update(ctx context.Context, callerID, id int64, req *UpdateTicketRequest) (*SupportTicket, error) {
	t, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if req.Priority != nil {
		if !validPriorities[*req.Priority] {
			return nil, errs.Newf(errs.KindInvalidInput, "invalid priority: %s", *req.Priority)
		}
		t.Priority = *req.Priority
	}
	if req.Status != nil {
		if !validStatuses[*req.Status] {
			return nil, errs.Newf(errs.KindInvalidInput, "invalid status: %s", *req.Status)
		}
		if *req.Status == StatusResolved && t.Status != StatusResolved {
			now := time.Now()
			t.ResolvedAt = &now
		}
		t.Status = *req.Status
	}
	if req.AssignedTo != nil {
		t.AssignedTo = req.AssignedTo
	}
	if req.ResolutionNotes != nil {
		t.ResolutionNotes = req.ResolutionNotes
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "update support ticket", err)
	}
	return t, nil
}
