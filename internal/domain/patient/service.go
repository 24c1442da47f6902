package patient

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/carely/portal/internal/platform/auth"
	"github.com/carely/portal/internal/platform/errs"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new patient account with a hashed password.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Patient, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		return nil, errs.InvalidInput("email is required")
	}
	if len(req.Password) < 8 {
		return nil, errs.InvalidInput("password must be at least 8 characters")
	}
	if req.FirstName == "" || req.LastName == "" {
		return nil, errs.InvalidInput("first_name and last_name are required")
	}
	if req.DateOfBirth.IsZero() {
		return nil, errs.InvalidInput("date_of_birth is required")
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, errs.InvalidInput("email already registered")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.Wrap(errs.KindInternal, "look up email", err)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "hash password", err)
	}

	lang := req.PreferredLanguage
	if lang == "" {
		lang = "en"
	}
	p := &Patient{
		Email:                 req.Email,
		HashedPassword:        hashed,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		DateOfBirth:           req.DateOfBirth,
		PhoneNumber:           req.PhoneNumber,
		Address:               req.Address,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		BloodType:             req.BloodType,
		Allergies:             req.Allergies,
		MedicalConditions:     req.MedicalConditions,
		Medications:           req.Medications,
		InsuranceProvider:     req.InsuranceProvider,
		InsurancePolicyNumber: req.InsurancePolicyNumber,
		PreferredLanguage:     lang,
		Status:                StatusActive,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "create patient", err)
	}
	return p, nil
}

// Authenticate verifies credentials and returns the matching patient.
// The error is identical for unknown email and wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Patient, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	p, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.Unauthorized("incorrect email or password")
		}
		return nil, errs.Wrap(errs.KindInternal, "look up email", err)
	}
	if !auth.CheckPassword(p.HashedPassword, password) {
		return nil, errs.Unauthorized("incorrect email or password")
	}
	return p, nil
}

// Get fetches a patient, enforcing that callers can only read their
// own profile. Unknown ids report not-found before the ownership check.
func (s *Service) Get(ctx context.Context, callerID, id int64) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("patient not found")
		}
		return nil, errs.Wrap(errs.KindInternal, "get patient", err)
	}
	if !auth.Owns(callerID, p.ID) {
		return nil, errs.Forbidden("not authorized to access this patient")
	}
	return p, nil
}

// Update applies the non-nil fields of req to the caller's own profile.
func (s *Service) Update(ctx context.Context, callerID, id int64, req *UpdatePatientRequest) (*Patient, error) {
	p, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		p.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		p.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		p.PhoneNumber = req.PhoneNumber
	}
	if req.Address != nil {
		p.Address = req.Address
	}
	if req.EmergencyContactName != nil {
		p.EmergencyContactName = req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		p.EmergencyContactPhone = req.EmergencyContactPhone
	}
	if req.Allergies != nil {
		p.Allergies = req.Allergies
	}
	if req.MedicalConditions != nil {
		p.MedicalConditions = req.MedicalConditions
	}
	if req.Medications != nil {
		p.Medications = req.Medications
	}
	if req.PreferredLanguage != nil {
		p.PreferredLanguage = *req.PreferredLanguage
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "update patient", err)
	}
	return p, nil
}

// Deactivate marks the caller's own account inactive. The row is kept.
func (s *Service) Deactivate(ctx context.Context, callerID, id int64) error {
	p, err := s.Get(ctx, callerID, id)
	if err != nil {
		return err
	}
	p.Status = StatusInactive
	if err := s.repo.Update(ctx, p); err != nil {
		return errs.Wrap(errs.KindInternal, "deactivate patient", err)
	}
	return nil
}
