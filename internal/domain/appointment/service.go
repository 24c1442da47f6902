package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/carely/portal/internal/platform/auth"
	"github.com/carely/portal/internal/platform/errs"
)

const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

	minDurationMinutes     = 15
	maxDurationMinutes     = 240
	defaultDurationMinutes = 30
)

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusConfirmed: true,
	StatusCompleted: true, StatusCancelled: true,
}

type Service struct {
	repo         Repository
	maxDaysAhead int
}

func NewService(repo Repository, maxDaysAhead int) *Service {
	return &Service{repo: repo, maxDaysAhead: maxDaysAhead}
}

func (s *Service) validateWindow(scheduled time.Time) error {
	now := time.Now()
	if scheduled.Before(now) {
		return errs.InvalidInput("cannot schedule appointments in the past")
	}
	if scheduled.After(now.AddDate(0, 0, s.maxDaysAhead)) {
		return errs.InvalidInput(fmt.Sprintf("appointments can only be scheduled up to %d days in advance", s.maxDaysAhead))
	}
	return nil
}

func validateDuration(minutes int) error {
	if minutes < minDurationMinutes || minutes > maxDurationMinutes {
		return errs.InvalidInput(fmt.Sprintf("duration_minutes must be between %d and %d", minDurationMinutes, maxDurationMinutes))
	}
	return nil
}

// Create books an appointment for the caller. Bookings for other
// patients are rejected before any validation of the slot itself.
func (s *Service) Create(ctx context.Context, callerID int64, req *CreateAppointmentRequest) (*Appointment, error) {
	if req.PatientID == 0 {
		req.PatientID = callerID
	}
	if !auth.Owns(callerID, req.PatientID) {
		return nil, errs.Forbidden("not authorized to create appointments for other patients")
	}
	if req.DoctorName == "" {
		return nil, errs.InvalidInput("doctor_name is required")
	}
	if req.AppointmentType == "" {
		return nil, errs.InvalidInput("appointment_type is required")
	}
	if req.ScheduledTime.IsZero() {
		return nil, errs.InvalidInput("scheduled_time is required")
	}
	if err := s.validateWindow(req.ScheduledTime); err != nil {
		return nil, err
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = defaultDurationMinutes
	}
	if err := validateDuration(req.DurationMinutes); err != nil {
		return nil, err
	}

	a := &Appointment{
		PatientID:       req.PatientID,
		DoctorName:      req.DoctorName,
		AppointmentType: req.AppointmentType,
		ScheduledTime:   req.ScheduledTime,
		DurationMinutes: req.DurationMinutes,
		Status:          StatusScheduled,
		Reason:          req.Reason,
		Notes:           req.Notes,
		Location:        req.Location,
		IsVirtual:       req.IsVirtual,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "create appointment", err)
	}
	return a, nil
}

// Get resolves an appointment and enforces ownership. Unknown ids
// report not-found before the ownership check.
func (s *Service) Get(ctx context.Context, callerID, id int64) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("appointment not found")
		}
		return nil, errs.Wrap(errs.KindInternal, "get appointment", err)
	}
	if !auth.Owns(callerID, a.PatientID) {
		return nil, errs.Forbidden("not authorized to access this appointment")
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, callerID int64, limit, offset int) ([]*Appointment, int, error) {
	items, total, err := s.repo.ListByPatient(ctx, callerID, limit, offset)
	if err != nil {
		return nil, 0, errs.Wrap(errs.KindInternal, "list appointments", err)
	}
	return items, total, nil
}

// Update applies the non-nil fields of req to the caller's appointment.
// A rescheduled time must fall inside the booking window again.
func (s *Service) Update(ctx context.Context, callerID, id int64, req *UpdateAppointmentRequest) (*Appointment, error) {
	a, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if req.ScheduledTime != nil {
		if err := s.validateWindow(*req.ScheduledTime); err != nil {
			return nil, err
		}
		a.ScheduledTime = *req.ScheduledTime
	}
	if req.DurationMinutes != nil {
		if err := validateDuration(*req.DurationMinutes); err != nil {
			return nil, err
		}
		a.DurationMinutes = *req.DurationMinutes
	}
	if req.Status != nil {
		if !validStatuses[*req.Status] {
			return nil, errs.Newf(errs.KindInvalidInput, "invalid status: %s", *req.Status)
		}
		a.Status = *req.Status
	}
	if req.Notes != nil {
		a.Notes = req.Notes
	}
	if req.IsVirtual != nil {
		a.IsVirtual = *req.IsVirtual
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "update appointment", err)
	}
	return a, nil
}

// Cancel soft-deletes by flipping the status; the row is kept.
func (s *Service) Cancel(ctx context.Context, callerID, id int64) error {
	a, err := s.Get(ctx, callerID, id)
	if err != nil {
		return err
	}
	a.Status = StatusCancelled
	if err := s.repo.Update(ctx, a); err != nil {
		return errs.Wrap(errs.KindInternal, "cancel appointment", err)
	}
	return nil
}
