package record

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

const recordCols = `id, patient_id, record_type, record_date, doctor_name, diagnosis,
	symptoms, treatment, medications_prescribed, lab_results, vital_signs,
	height_cm, weight_kg, blood_pressure, heart_rate, temperature, notes,
	follow_up_required, follow_up_date, created_at, updated_at`

func (r *repoPG) scanRecord(row pgx.Row) (*MedicalRecord, error) {
	var rec MedicalRecord
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.RecordType, &rec.RecordDate, &rec.DoctorName, &rec.Diagnosis,
		&rec.Symptoms, &rec.Treatment, &rec.MedicationsPrescribed, &rec.LabResults, &rec.VitalSigns,
		&rec.HeightCM, &rec.WeightKG, &rec.BloodPressure, &rec.HeartRate, &rec.Temperature, &rec.Notes,
		&rec.FollowUpRequired, &rec.FollowUpDate, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repoPG) Create(ctx context.Context, rec *MedicalRecord) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medical_records (patient_id, record_type, record_date, doctor_name, diagnosis,
			symptoms, treatment, medications_prescribed, lab_results, vital_signs,
			height_cm, weight_kg, blood_pressure, heart_rate, temperature, notes,
			follow_up_required, follow_up_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		RETURNING id, created_at, updated_at`,
		rec.PatientID, rec.RecordType, rec.RecordDate, rec.DoctorName, rec.Diagnosis,
		rec.Symptoms, rec.Treatment, rec.MedicationsPrescribed, rec.LabResults, rec.VitalSigns,
		rec.HeightCM, rec.WeightKG, rec.BloodPressure, rec.HeartRate, rec.Temperature, rec.Notes,
		rec.FollowUpRequired, rec.FollowUpDate).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*MedicalRecord, error) {
	return r.scanRecord(r.conn(ctx).QueryRow(ctx, `SELECT `+recordCols+` FROM medical_records WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rec *MedicalRecord) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE medical_records SET diagnosis=$2, treatment=$3, medications_prescribed=$4,
			notes=$5, follow_up_required=$6, follow_up_date=$7, updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.Diagnosis, rec.Treatment, rec.MedicationsPrescribed,
		rec.Notes, rec.FollowUpRequired, rec.FollowUpDate)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM medical_records WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*MedicalRecord, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medical_records WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+recordCols+` FROM medical_records WHERE patient_id = $1 ORDER BY record_date DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*MedicalRecord
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, nil
}
