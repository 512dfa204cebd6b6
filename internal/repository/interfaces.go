package repository

import "github.com/jwalitptl/opd-booking/internal/model"

// PatientRepository stores patient records keyed by username.
type PatientRepository interface {
	Put(patient *model.Patient) error
	Get(username string) (*model.Patient, error)
	Exists(username string) bool
	HasAny() bool
}

// HospitalRepository stores hospital records keyed by hospital code.
type HospitalRepository interface {
	Put(hospital *model.Hospital) error
	Get(code string) (*model.Hospital, error)
	Exists(code string) bool
	List() ([]*model.Hospital, error)
	HasAny() bool
}

// BookingRepository stores the append-only booking list of each patient.
type BookingRepository interface {
	List(username string) ([]model.Booking, error)
	Append(username string, booking model.Booking) error
}

// SessionRepository stores the single session pointer record.
type SessionRepository interface {
	Save(identity *model.Identity) error
	Load() (*model.Identity, error)
	Clear() error
}
