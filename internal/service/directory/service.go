// Package directory lists and searches hospitals: the built-in seed
// entries plus everything registered through the app.
package directory

import (
	"fmt"
	"strings"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/logger"
)

// seed is the built-in demo hospital shown before anyone registers.
var seed = []*model.Hospital{
	{
		Type:     string(model.IdentityHospital),
		Name:     "City General Hospital",
		Code:     "CGH001",
		Location: "Downtown, Main Street",
		Helpline: "9876543210",
		Rating:   4.8,
		Doctors: []model.Doctor{
			{
				ID:                  101,
				Name:                "Dr. Sarah Johnson",
				Degree:              "MBBS, MD",
				Specialization:      "Cardiology",
				Fees:                800,
				ReceptionistContact: "9876543211",
			},
			{
				ID:                  102,
				Name:                "Dr. Michael Chen",
				Degree:              "MBBS, MS",
				Specialization:      "Orthopedics",
				Fees:                700,
				ReceptionistContact: "9876543212",
			},
		},
	},
}

type Service struct {
	repo repository.HospitalRepository
	log  *logger.Logger
}

func NewService(repo repository.HospitalRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns the seed hospitals followed by the registered ones.
func (s *Service) List() ([]*model.Hospital, error) {
	registered, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	hospitals := make([]*model.Hospital, 0, len(seed)+len(registered))
	hospitals = append(hospitals, seed...)
	hospitals = append(hospitals, registered...)
	return hospitals, nil
}

// Search returns every hospital whose name or location contains the
// query, case-insensitively. An empty query matches everything.
func (s *Service) Search(query string) ([]*model.Hospital, error) {
	hospitals, err := s.List()
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	matched := make([]*model.Hospital, 0, len(hospitals))
	for _, hospital := range hospitals {
		if strings.Contains(strings.ToLower(hospital.Name), query) ||
			strings.Contains(strings.ToLower(hospital.Location), query) {
			matched = append(matched, hospital)
		}
	}
	return matched, nil
}

// IsSeedCode reports whether code belongs to a built-in directory entry.
// Seed codes cannot be registered.
func IsSeedCode(code string) bool {
	for _, hospital := range seed {
		if hospital.Code == code {
			return true
		}
	}
	return false
}

// Get resolves a hospital by code, checking the seed before the store.
func (s *Service) Get(code string) (*model.Hospital, error) {
	for _, hospital := range seed {
		if hospital.Code == code {
			return hospital, nil
		}
	}
	return s.repo.Get(code)
}

// FindDoctor resolves a doctor on a hospital's roster.
func (s *Service) FindDoctor(hospital *model.Hospital, doctorID int64) (*model.Doctor, error) {
	for i := range hospital.Doctors {
		if hospital.Doctors[i].ID == doctorID {
			return &hospital.Doctors[i], nil
		}
	}
	return nil, apperrors.NotFound("doctor", nil)
}
