package patient

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

const patientCols = `id, email, hashed_password, first_name, last_name, date_of_birth,
	phone_number, address, emergency_contact_name, emergency_contact_phone,
	blood_type, allergies, medical_conditions, medications,
	insurance_provider, insurance_policy_number, preferred_language, status,
	created_at, updated_at`

func (r *repoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Email, &p.HashedPassword, &p.FirstName, &p.LastName, &p.DateOfBirth,
		&p.PhoneNumber, &p.Address, &p.EmergencyContactName, &p.EmergencyContactPhone,
		&p.BloodType, &p.Allergies, &p.MedicalConditions, &p.Medications,
		&p.InsuranceProvider, &p.InsurancePolicyNumber, &p.PreferredLanguage, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (email, hashed_password, first_name, last_name, date_of_birth,
			phone_number, address, emergency_contact_name, emergency_contact_phone,
			blood_type, allergies, medical_conditions, medications,
			insurance_provider, insurance_policy_number, preferred_language, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING id, created_at, updated_at`,
		p.Email, p.HashedPassword, p.FirstName, p.LastName, p.DateOfBirth,
		p.PhoneNumber, p.Address, p.EmergencyContactName, p.EmergencyContactPhone,
		p.BloodType, p.Allergies, p.MedicalConditions, p.Medications,
		p.InsuranceProvider, p.InsurancePolicyNumber, p.PreferredLanguage, p.Status).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE email = $1`, email))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE patients SET first_name=$2, last_name=$3, phone_number=$4, address=$5,
			emergency_contact_name=$6, emergency_contact_phone=$7, allergies=$8,
			medical_conditions=$9, medications=$10, preferred_language=$11, status=$12,
			updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.PhoneNumber, p.Address,
		p.EmergencyContactName, p.EmergencyContactPhone, p.Allergies,
		p.MedicalConditions, p.Medications, p.PreferredLanguage, p.Status)
	return err
}
