package patient

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/carely/portal/internal/platform/auth"
	"github.com/carely/portal/internal/platform/errs"
)

// ── Mock Repository ──

type mockRepo struct {
	data   map[int64]*Patient
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{data: map[int64]*Patient{}, nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = m.nextID
	m.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.data[p.ID] = p
	return nil
}
func (m *mockRepo) GetByID(_ context.Context, id int64) (*Patient, error) {
	if p, ok := m.data[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}
func (m *mockRepo) GetByEmail(_ context.Context, email string) (*Patient, error) {
	for _, p := range m.data {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}
func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.data[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *p
	m.data[p.ID] = &cp
	return nil
}

func validRegister() *RegisterRequest {
	return &RegisterRequest{
		Email:       "jane@example.com",
		Password:    "s3cret-pass",
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
	}
}

func TestRegister(t *testing.T) {
	svc := NewService(newMockRepo())
	p, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if p.ID == 0 {
		t.Error("expected assigned id")
	}
	if p.Status != StatusActive {
		t.Errorf("expected active status, got %s", p.Status)
	}
	if p.PreferredLanguage != "en" {
		t.Errorf("expected default language en, got %s", p.PreferredLanguage)
	}
	if p.HashedPassword == "s3cret-pass" {
		t.Error("password stored in plaintext")
	}
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc := NewService(newMockRepo())
	req := validRegister()
	req.Email = "  Jane@Example.COM "
	p, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if p.Email != "jane@example.com" {
		t.Errorf("expected normalized email, got %s", p.Email)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Register(context.Background(), validRegister()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), validRegister())
	if !errs.IsKind(err, errs.KindInvalidInput) {
		t.Fatalf("expected invalid-input error, got %v", err)
	}
	if errs.ClientMessage(err) != "email already registered" {
		t.Errorf("unexpected message: %s", errs.ClientMessage(err))
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(newMockRepo())
	cases := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"missing email", func(r *RegisterRequest) { r.Email = "" }},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }},
		{"missing first name", func(r *RegisterRequest) { r.FirstName = "" }},
		{"missing last name", func(r *RegisterRequest) { r.LastName = "" }},
		{"missing dob", func(r *RegisterRequest) { r.DateOfBirth = time.Time{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegister()
			tc.mutate(req)
			if _, err := svc.Register(context.Background(), req); !errs.IsKind(err, errs.KindInvalidInput) {
				t.Errorf("expected invalid-input error, got %v", err)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newMockRepo())
	reg, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	p, err := svc.Authenticate(context.Background(), "jane@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if p.ID != reg.ID {
		t.Errorf("expected patient %d, got %d", reg.ID, p.ID)
	}

	if _, err := svc.Authenticate(context.Background(), "jane@example.com", "wrong"); !errs.IsKind(err, errs.KindUnauthorized) {
		t.Errorf("expected unauthorized for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "s3cret-pass"); !errs.IsKind(err, errs.KindUnauthorized) {
		t.Errorf("expected unauthorized for unknown email, got %v", err)
	}
}

func TestAuthenticate_SameErrorForBothFailures(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Register(context.Background(), validRegister()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, errEmail := svc.Authenticate(context.Background(), "nobody@example.com", "s3cret-pass")
	_, errPass := svc.Authenticate(context.Background(), "jane@example.com", "wrong")
	if errs.ClientMessage(errEmail) != errs.ClientMessage(errPass) {
		t.Error("login failures must be indistinguishable")
	}
}

func TestGet_Ownership(t *testing.T) {
	svc := NewService(newMockRepo())
	p, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), p.ID, p.ID); err != nil {
		t.Errorf("owner read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID+1, p.ID); !errs.IsKind(err, errs.KindForbidden) {
		t.Errorf("expected forbidden for foreign caller, got %v", err)
	}
	if _, err := svc.Get(context.Background(), p.ID, p.ID+99); !errs.IsKind(err, errs.KindNotFound) {
		t.Errorf("expected not-found before ownership check, got %v", err)
	}
}

func TestUpdate_Sparse(t *testing.T) {
	svc := NewService(newMockRepo())
	p, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	phone := "+1-555-0100"
	updated, err := svc.Update(context.Background(), p.ID, p.ID, &UpdatePatientRequest{PhoneNumber: &phone})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.PhoneNumber == nil || *updated.PhoneNumber != phone {
		t.Error("phone_number not applied")
	}
	if updated.FirstName != "Jane" {
		t.Errorf("nil field overwritten: first_name = %s", updated.FirstName)
	}
	if updated.Email != "jane@example.com" {
		t.Error("email must not change via profile update")
	}
}

func TestUpdate_Forbidden(t *testing.T) {
	svc := NewService(newMockRepo())
	p, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	name := "Mallory"
	if _, err := svc.Update(context.Background(), p.ID+1, p.ID, &UpdatePatientRequest{FirstName: &name}); !errs.IsKind(err, errs.KindForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestDeactivate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	p, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.Deactivate(context.Background(), p.ID, p.ID); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), p.ID)
	if stored.Status != StatusInactive {
		t.Errorf("expected inactive status, got %s", stored.Status)
	}

	// Deactivated accounts can still log in.
	if _, err := svc.Authenticate(context.Background(), "jane@example.com", "s3cret-pass"); err != nil {
		t.Errorf("deactivated login failed: %v", err)
	}
}

func TestDeactivate_Foreign(t *testing.T) {
	svc := NewService(newMockRepo())
	p, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := svc.Deactivate(context.Background(), p.ID+1, p.ID); !errs.IsKind(err, errs.KindForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !auth.CheckPassword(hashed, "s3cret-pass") {
		t.Errorf("CheckPassword failed")
	}
}
