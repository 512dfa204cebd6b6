package localstore

import (
	"errors"
	"fmt"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/kvstore"
)

type hospitalRepository struct {
	store *kvstore.Store
}

func NewHospitalRepository(store *kvstore.Store) repository.HospitalRepository {
	return &hospitalRepository{store: store}
}

func (r *hospitalRepository) Put(hospital *model.Hospital) error {
	hospital.Type = string(model.IdentityHospital)
	if hospital.Doctors == nil {
		hospital.Doctors = []model.Doctor{}
	}
	if err := r.store.Put(hospitalKey(hospital.Code), hospital); err != nil {
		return fmt.Errorf("failed to store hospital: %w", err)
	}
	return nil
}

func (r *hospitalRepository) Get(code string) (*model.Hospital, error) {
	var hospital model.Hospital
	err := r.store.Get(hospitalKey(code), &hospital)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, apperrors.NotFound("hospital code", err)
	}
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) Exists(code string) bool {
	var hospital model.Hospital
	return r.store.Get(hospitalKey(code), &hospital) == nil
}

func (r *hospitalRepository) List() ([]*model.Hospital, error) {
	keys := r.store.Keys(hospitalKeyPrefix)
	hospitals := make([]*model.Hospital, 0, len(keys))
	for _, key := range keys {
		var hospital model.Hospital
		if err := r.store.Get(key, &hospital); err != nil {
			return nil, err
		}
		hospitals = append(hospitals, &hospital)
	}
	return hospitals, nil
}

func (r *hospitalRepository) HasAny() bool {
	return r.store.HasPrefix(hospitalKeyPrefix)
}
