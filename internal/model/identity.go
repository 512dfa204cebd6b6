package model

// IdentityType discriminates the session pointer record.
type IdentityType string

const (
	IdentityPatient  IdentityType = "patient"
	IdentityHospital IdentityType = "hospital"
)

// Identity is the session pointer: a copy of the logged-in patient or
// hospital record, stored under the currentUser key. At most one exists.
type Identity struct {
	Type     IdentityType `json:"type"`
	Patient  *Patient     `json:"patient,omitempty"`
	Hospital *Hospital    `json:"hospital,omitempty"`
}

func PatientIdentity(p *Patient) *Identity {
	return &Identity{Type: IdentityPatient, Patient: p}
}

func HospitalIdentity(h *Hospital) *Identity {
	return &Identity{Type: IdentityHospital, Hospital: h}
}

type LoginPatientRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type LoginHospitalRequest struct {
	Code     string `form:"code" json:"code" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword     string `form:"old_password" json:"old_password" binding:"required"`
	NewPassword     string `form:"new_password" json:"new_password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" binding:"required"`
}
