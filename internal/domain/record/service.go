package record

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/carely/portal/internal/platform/auth"
	"github.com/carely/portal/internal/platform/errs"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a medical record for the caller. Patients can only
// file records against their own chart.
func (s *Service) Create(ctx context.Context, callerID int64, req *CreateRecordRequest) (*MedicalRecord, error) {
	if req.PatientID == 0 {
		req.PatientID = callerID
	}
	if !auth.Owns(callerID, req.PatientID) {
		return nil, errs.Forbidden("not authorized to create medical records for other patients")
	}
	if req.RecordType == "" {
		return nil, errs.InvalidInput("record_type is required")
	}
	if req.RecordDate.IsZero() {
		return nil, errs.InvalidInput("record_date is required")
	}
	if req.HeartRate != nil && (*req.HeartRate < 30 || *req.HeartRate > 250) {
		return nil, errs.InvalidInput("heart_rate must be between 30 and 250")
	}
	if req.Temperature != nil && (*req.Temperature < 30.0 || *req.Temperature > 45.0) {
		return nil, errs.InvalidInput("temperature must be between 30.0 and 45.0")
	}

	rec := &MedicalRecord{
		PatientID:             req.PatientID,
		RecordType:            req.RecordType,
		RecordDate:            req.RecordDate,
		DoctorName:            req.DoctorName,
		Diagnosis:             req.Diagnosis,
		Symptoms:              req.Symptoms,
		Treatment:             req.Treatment,
		MedicationsPrescribed: req.MedicationsPrescribed,
		LabResults:            req.LabResults,
		VitalSigns:            req.VitalSigns,
		HeightCM:              req.HeightCM,
		WeightKG:              req.WeightKG,
		BloodPressure:         req.BloodPressure,
		HeartRate:             req.HeartRate,
		Temperature:           req.Temperature,
		Notes:                 req.Notes,
		FollowUpRequired:      req.FollowUpRequired,
		FollowUpDate:          req.FollowUpDate,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "create medical record", err)
	}
	return rec, nil
}

// Get resolves a record and enforces ownership. Unknown ids report
// not-found before the ownership check.
func (s *Service) Get(ctx context.Context, callerID, id int64) (*MedicalRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("medical record not found")
		}
		return nil, errs.Wrap(errs.KindInternal, "get medical record", err)
	}
	if !auth.Owns(callerID, rec.PatientID) {
		return nil, errs.Forbidden("not authorized to access this medical record")
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context, callerID int64, limit, offset int) ([]*MedicalRecord, int, error) {
	items, total, err := s.repo.ListByPatient(ctx, callerID, limit, offset)
	if err != nil {
		return nil, 0, errs.Wrap(errs.KindInternal, "list medical records", err)
	}
	return items, total, nil
}

// Update applies the non-nil fields of req to the caller's record.
func (s *Service) Update(ctx context.Context, callerID, id int64, req *UpdateRecordRequest) (*MedicalRecord, error) {
	rec, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if req.Diagnosis != nil {
		rec.Diagnosis = req.Diagnosis
	}
	if req.Treatment != nil {
		rec.Treatment = req.Treatment
	}
	if req.MedicationsPrescribed != nil {
		rec.MedicationsPrescribed = req.MedicationsPrescribed
	}
	if req.Notes != nil {
		rec.Notes = req.Notes
	}
	if req.FollowUpRequired != nil {
		rec.FollowUpRequired = *req.FollowUpRequired
	}
	if req.FollowUpDate != nil {
		rec.FollowUpDate = req.FollowUpDate
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, errs.Wrap(errs.KindInternal, "update medical record", err)
	}
	return rec, nil
}

// Delete removes the record row permanently.
func (s *Service) Delete(ctx context.Context, callerID, id int64) error {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errs.Wrap(errs.KindInternal, "delete medical record", err)
	}
	return nil
}
