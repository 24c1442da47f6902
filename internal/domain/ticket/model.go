package ticket

import "time"

// SupportTicket maps to the support_tickets table.
type SupportTicket struct {
	ID              int64      `db:"id" json:"id"`
	PatientID       int64      `db:"patient_id" json:"patient_id"`
	TicketNumber    string     `db:"ticket_number" json:"ticket_number"`
	Category        string     `db:"category" json:"category"`
	Priority        string     `db:"priority" json:"priority"`
	Status          string     `db:"status" json:"status"`
	Subject         string     `db:"subject" json:"subject"`
	Description     string     `db:"description" json:"description"`
	Language        string     `db:"language" json:"language"`
	AssignedTo      *string    `db:"assigned_to" json:"assigned_to,omitempty"`
	ContactEmail    *string    `db:"contact_email" json:"contact_email,omitempty"`
	ContactPhone    *string    `db:"contact_phone" json:"contact_phone,omitempty"`
	ResolutionNotes *string    `db:"resolution_notes" json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// CreateTicketRequest is the ticket submission payload.
type CreateTicketRequest struct {
	PatientID    int64   `json:"patient_id"`
	Category     string  `json:"category"`
	Priority     string  `json:"priority"`
	Subject      string  `json:"subject"`
	Description  string  `json:"description"`
	Language     string  `json:"language"`
	ContactEmail *string `json:"contact_email,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
}

// UpdateTicketRequest carries a sparse update. Nil fields are left
// untouched.
type UpdateTicketRequest struct {
	Priority        *string `json:"priority,omitempty"`
	Status          *string `json:"status,omitempty"`
	AssignedTo      *string `json:"assigned_to,omitempty"`
	ResolutionNotes *string `json:"resolution_notes,omitempty"`
}
