package patient

import "time"

// Patient maps to the patients table.
type Patient struct {
	ID                    int64      `db:"id" json:"id"`
	Email                 string     `db:"email" json:"email"`
	HashedPassword        string     `db:"hashed_password" json:"-"`
	FirstName             string     `db:"first_name" json:"first_name"`
	LastName              string     `db:"last_name" json:"last_name"`
	DateOfBirth           time.Time  `db:"date_of_birth" json:"date_of_birth"`
	PhoneNumber           *string    `db:"phone_number" json:"phone_number,omitempty"`
	Address               *string    `db:"address" json:"address,omitempty"`
	EmergencyContactName  *string    `db:"emergency_contact_name" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string    `db:"emergency_contact_phone" json:"emergency_contact_phone,omitempty"`
	BloodType             *string    `db:"blood_type" json:"blood_type,omitempty"`
	Allergies             *string    `db:"allergies" json:"allergies,omitempty"`
	MedicalConditions     *string    `db:"medical_conditions" json:"medical_conditions,omitempty"`
	Medications           *string    `db:"medications" json:"medications,omitempty"`
	InsuranceProvider     *string    `db:"insurance_provider" json:"insurance_provider,omitempty"`
	InsurancePolicyNumber *string    `db:"insurance_policy_number" json:"insurance_policy_number,omitempty"`
	PreferredLanguage     string     `db:"preferred_language" json:"preferred_language"`
	Status                string     `db:"status" json:"status"`
	CreatedAt             time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at" json:"updated_at"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email                 string    `json:"email"`
	Password              string    `json:"password"`
	FirstName             string    `json:"first_name"`
	LastName              string    `json:"last_name"`
	DateOfBirth           time.Time `json:"date_of_birth"`
	PhoneNumber           *string   `json:"phone_number,omitempty"`
	Address               *string   `json:"address,omitempty"`
	EmergencyContactName  *string   `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string   `json:"emergency_contact_phone,omitempty"`
	BloodType             *string   `json:"blood_type,omitempty"`
	Allergies             *string   `json:"allergies,omitempty"`
	MedicalConditions     *string   `json:"medical_conditions,omitempty"`
	Medications           *string   `json:"medications,omitempty"`
	InsuranceProvider     *string   `json:"insurance_provider,omitempty"`
	InsurancePolicyNumber *string   `json:"insurance_policy_number,omitempty"`
	PreferredLanguage     string    `json:"preferred_language"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdatePatientRequest carries a sparse profile update. Nil fields are
// left untouched.
type UpdatePatientRequest struct {
	FirstName             *string `json:"first_name,omitempty"`
	LastName              *string `json:"last_name,omitempty"`
	PhoneNumber           *string `json:"phone_number,omitempty"`
	Address               *string `json:"address,omitempty"`
	EmergencyContactName  *string `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string `json:"emergency_contact_phone,omitempty"`
	Allergies             *string `json:"allergies,omitempty"`
	MedicalConditions     *string `json:"medical_conditions,omitempty"`
	Medications           *string `json:"medications,omitempty"`
	PreferredLanguage     *string `json:"preferred_language,omitempty"`
}
