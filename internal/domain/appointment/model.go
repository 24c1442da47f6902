package appointment

import "time"

// Appointment maps to the appointments table.
type Appointment struct {
	ID              int64     `db:"id" json:"id"`
	PatientID       int64     `db:"patient_id" json:"patient_id"`
	DoctorName      string    `db:"doctor_name" json:"doctor_name"`
	AppointmentType string    `db:"appointment_type" json:"appointment_type"`
	ScheduledTime   time.Time `db:"scheduled_time" json:"scheduled_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Status          string    `db:"status" json:"status"`
	Reason          *string   `db:"reason" json:"reason,omitempty"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	Location        *string   `db:"location" json:"location,omitempty"`
	IsVirtual       bool      `db:"is_virtual" json:"is_virtual"`
	ReminderSent    bool      `db:"reminder_sent" json:"reminder_sent"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// CreateAppointmentRequest is the booking payload.
type CreateAppointmentRequest struct {
	PatientID       int64     `json:"patient_id"`
	DoctorName      string    `json:"doctor_name"`
	AppointmentType string    `json:"appointment_type"`
	ScheduledTime   time.Time `json:"scheduled_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Reason          *string   `json:"reason,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	Location        *string   `json:"location,omitempty"`
	IsVirtual       bool      `json:"is_virtual"`
}

// UpdateAppointmentRequest carries a sparse update. Nil fields are
// left untouched.
type UpdateAppointmentRequest struct {
	ScheduledTime   *time.Time `json:"scheduled_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	IsVirtual       *bool      `json:"is_virtual,omitempty"`
}
