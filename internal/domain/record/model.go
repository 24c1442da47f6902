package record

import "time"

// MedicalRecord maps to the medical_records table.
type MedicalRecord struct {
	ID                    int64      `db:"id" json:"id"`
	PatientID             int64      `db:"patient_id" json:"patient_id"`
	RecordType            string     `db:"record_type" json:"record_type"`
	RecordDate            time.Time  `db:"record_date" json:"record_date"`
	DoctorName            *string    `db:"doctor_name" json:"doctor_name,omitempty"`
	Diagnosis             *string    `db:"diagnosis" json:"diagnosis,omitempty"`
	Symptoms              *string    `db:"symptoms" json:"symptoms,omitempty"`
	Treatment             *string    `db:"treatment" json:"treatment,omitempty"`
	MedicationsPrescribed *string    `db:"medications_prescribed" json:"medications_prescribed,omitempty"`
	LabResults            *string    `db:"lab_results" json:"lab_results,omitempty"`
	VitalSigns            *string    `db:"vital_signs" json:"vital_signs,omitempty"`
	HeightCM              *float64   `db:"height_cm" json:"height_cm,omitempty"`
	WeightKG              *float64   `db:"weight_kg" json:"weight_kg,omitempty"`
	BloodPressure         *string    `db:"blood_pressure" json:"blood_pressure,omitempty"`
	HeartRate             *int       `db:"heart_rate" json:"heart_rate,omitempty"`
	Temperature           *float64   `db:"temperature" json:"temperature,omitempty"`
	Notes                 *string    `db:"notes" json:"notes,omitempty"`
	FollowUpRequired      bool       `db:"follow_up_required" json:"follow_up_required"`
	FollowUpDate          *time.Time `db:"follow_up_date" json:"follow_up_date,omitempty"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}

// CreateRecordRequest is the creation payload.
type CreateRecordRequest struct {
	PatientID             int64      `json:"patient_id"`
	RecordType            string     `json:"record_type"`
	RecordDate            time.Time  `json:"record_date"`
	DoctorName            *string    `json:"doctor_name,omitempty"`
	Diagnosis             *string    `json:"diagnosis,omitempty"`
	Symptoms              *string    `json:"symptoms,omitempty"`
	Treatment             *string    `json:"treatment,omitempty"`
	MedicationsPrescribed *string    `json:"medications_prescribed,omitempty"`
	LabResults            *string    `json:"lab_results,omitempty"`
	VitalSigns            *string    `json:"vital_signs,omitempty"`
	HeightCM              *float64   `json:"height_cm,omitempty"`
	WeightKG              *float64   `json:"weight_kg,omitempty"`
	BloodPressure         *string    `json:"blood_pressure,omitempty"`
	HeartRate             *int       `json:"heart_rate,omitempty"`
	Temperature           *float64   `json:"temperature,omitempty"`
	Notes                 *string    `json:"notes,omitempty"`
	FollowUpRequired      bool       `json:"follow_up_required"`
	FollowUpDate          *time.Time `json:"follow_up_date,omitempty"`
}

// UpdateRecordRequest carries a sparse update. Nil fields are left
// untouched.
type UpdateRecordRequest struct {
	Diagnosis             *string    `json:"diagnosis,omitempty"`
	Treatment             *string    `json:"treatment,omitempty"`
	MedicationsPrescribed *string    `json:"medications_prescribed,omitempty"`
	Notes                 *string    `json:"notes,omitempty"`
	FollowUpRequired      *bool      `json:"follow_up_required,omitempty"`
	FollowUpDate          *time.Time `json:"follow_up_date,omitempty"`
}
