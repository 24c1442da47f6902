package record

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/carely/portal/internal/platform/errs"
)

// ── Mock Repository ──

type mockRepo struct {
	data   map[int64]*MedicalRecord
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{data: map[int64]*MedicalRecord{}, nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, rec *MedicalRecord) error {
	rec.ID = m.nextID
	m.nextID++
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = rec.CreatedAt
	cp := *rec
	m.data[rec.ID] = &cp
	return nil
}
func (m *mockRepo) GetByID(_ context.Context, id int64) (*MedicalRecord, error) {
	if rec, ok := m.data[id]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}
func (m *mockRepo) Update(_ context.Context, rec *MedicalRecord) error {
	if _, ok := m.data[rec.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *rec
	m.data[rec.ID] = &cp
	return nil
}
func (m *mockRepo) Delete(_ context.Context, id int64) error {
	delete(m.data, id)
	return nil
}
func (m *mockRepo) ListByPatient(_ context.Context, patientID int64, limit, offset int) ([]*MedicalRecord, int, error) {
	var out []*MedicalRecord
	for _, rec := range m.data {
		if rec.PatientID == patientID {
			out = append(out, rec)
		}
	}
	return out, len(out), nil
}

func validCreate() *CreateRecordRequest {
	return &CreateRecordRequest{
		PatientID:  1,
		RecordType: "lab_result",
		RecordDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate(t *testing.T) {
	svc := NewService(newMockRepo())
	rec, err := svc.Create(context.Background(), 1, validCreate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.ID == 0 {
		t.Error("expected assigned id")
	}
}

func TestCreate_ForeignPatient(t *testing.T) {
	svc := NewService(newMockRepo())
	req := validCreate()
	req.PatientID = 2
	if _, err := svc.Create(context.Background(), 1, req); !errs.IsKind(err, errs.KindForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMockRepo())
	hr := 300
	temp := 50.0
	cases := []struct {
		name   string
		mutate func(*CreateRecordRequest)
	}{
		{"missing type", func(r *CreateRecordRequest) { r.RecordType = "" }},
		{"missing date", func(r *CreateRecordRequest) { r.RecordDate = time.Time{} }},
		{"heart rate out of range", func(r *CreateRecordRequest) { r.HeartRate = &hr }},
		{"temperature out of range", func(r *CreateRecordRequest) { r.Temperature = &temp }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(req)
			if _, err := svc.Create(context.Background(), 1, req); !errs.IsKind(err, errs.KindInvalidInput) {
				t.Errorf("expected invalid-input, got %v", err)
			}
		})
	}
}

func TestGet_Ownership(t *testing.T) {
	svc := NewService(newMockRepo())
	rec, err := svc.Create(context.Background(), 1, validCreate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), 1, rec.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), 2, rec.ID); !errs.IsKind(err, errs.KindForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), 1, 999); !errs.IsKind(err, errs.KindNotFound) {
		t.Errorf("expected not-found, got %v", err)
	}
}

func TestUpdate_Sparse(t *testing.T) {
	svc := NewService(newMockRepo())
	req := validCreate()
	diag := "seasonal allergies"
	req.Diagnosis = &diag
	rec, err := svc.Create(context.Background(), 1, req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	notes := "retest in six weeks"
	followUp := true
	updated, err := svc.Update(context.Background(), 1, rec.ID, &UpdateRecordRequest{
		Notes:            &notes,
		FollowUpRequired: &followUp,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Notes == nil || *updated.Notes != notes {
		t.Error("notes not applied")
	}
	if !updated.FollowUpRequired {
		t.Error("follow_up_required not applied")
	}
	if updated.Diagnosis == nil || *updated.Diagnosis != diag {
		t.Error("nil field overwritten: diagnosis changed")
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	rec, err := svc.Create(context.Background(), 1, validCreate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), 1, rec.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), rec.ID); err == nil {
		t.Error("expected row to be gone")
	}
}

func TestDelete_Foreign(t *testing.T) {
	svc := NewService(newMockRepo())
	rec, err := svc.Create(context.Background(), 1, validCreate())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := svc.Delete(context.Background(), 2, rec.ID); !errs.IsKind(err, errs.KindForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestList_OwnerScoped(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Create(context.Background(), 1, validCreate()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	req := validCreate()
	req.PatientID = 2
	if _, err := svc.Create(context.Background(), 2, req); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	items, total, err := svc.List(context.Background(), 1, 20, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].PatientID != 1 {
		t.Errorf("expected only patient 1's records, got %d items total %d", len(items), total)
	}
}
