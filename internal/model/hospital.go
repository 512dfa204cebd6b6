package model

// Hospital is the registered hospital record, stored under hospital_<code>.
// Rating is only set on the built-in directory entries.
type Hospital struct {
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Code     string   `json:"code"`
	Location string   `json:"location"`
	Branch   string   `json:"branch,omitempty"`
	Helpline string   `json:"helpline"`
	Password string   `json:"password,omitempty"`
	Rating   float64  `json:"rating,omitempty"`
	Doctors  []Doctor `json:"doctors"`
}

// Doctor belongs to exactly one hospital. IDs are derived from the
// wall clock at creation time.
type Doctor struct {
	ID                  int64   `json:"id"`
	Name                string  `json:"name"`
	Degree              string  `json:"degree"`
	Specialization      string  `json:"specialization"`
	Fees                float64 `json:"fees"`
	ReceptionistContact string  `json:"receptionistContact"`
}

type RegisterHospitalRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Code     string `form:"code" json:"code" binding:"required"`
	Location string `form:"location" json:"location" binding:"required"`
	Branch   string `form:"branch" json:"branch" binding:"required"`
	Helpline string `form:"helpline" json:"helpline" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type AddDoctorRequest struct {
	Name                string  `form:"name" json:"name" binding:"required"`
	Degree              string  `form:"degree" json:"degree" binding:"required"`
	Specialization      string  `form:"specialization" json:"specialization" binding:"required"`
	Fees                float64 `form:"fees" json:"fees" binding:"required"`
	ReceptionistContact string  `form:"receptionist_contact" json:"receptionist_contact" binding:"required"`
}
