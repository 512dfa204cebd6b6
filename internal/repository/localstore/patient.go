package localstore

import (
	"errors"
	"fmt"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/kvstore"
)

type patientRepository struct {
	store *kvstore.Store
}

func NewPatientRepository(store *kvstore.Store) repository.PatientRepository {
	return &patientRepository{store: store}
}

func (r *patientRepository) Put(patient *model.Patient) error {
	patient.Type = string(model.IdentityPatient)
	if err := r.store.Put(patientKey(patient.Username), patient); err != nil {
		return fmt.Errorf("failed to store patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(username string) (*model.Patient, error) {
	var patient model.Patient
	err := r.store.Get(patientKey(username), &patient)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, apperrors.NotFound("username", err)
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Exists(username string) bool {
	var patient model.Patient
	return r.store.Get(patientKey(username), &patient) == nil
}

func (r *patientRepository) HasAny() bool {
	return r.store.HasPrefix(patientKeyPrefix)
}
