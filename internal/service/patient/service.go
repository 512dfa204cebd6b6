package patient

import (
	"fmt"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository"
	"github.com/jwalitptl/opd-booking/internal/session"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/logger"
)

type Service struct {
	repo repository.PatientRepository
	log  *logger.Logger
}

func NewService(repo repository.PatientRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Register creates a patient and signs them in. A taken username is
// rejected instead of overwritten.
func (s *Service) Register(sess *session.Session, req *model.RegisterPatientRequest) (*model.Patient, error) {
	if s.repo.Exists(req.Username) {
		return nil, apperrors.Conflict(fmt.Sprintf("username %q is already registered", req.Username))
	}

	patient := &model.Patient{
		Type:     string(model.IdentityPatient),
		Name:     req.Name,
		Age:      req.Age,
		Gender:   req.Gender,
		Mobile:   req.Mobile,
		Username: req.Username,
		Password: req.Password,
	}

	if err := s.repo.Put(patient); err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}
	if err := sess.SetIdentity(model.PatientIdentity(patient)); err != nil {
		return nil, fmt.Errorf("failed to store session pointer: %w", err)
	}

	s.log.Info("patient registered", "username", patient.Username)
	return patient, nil
}

// UpdateProfile rewrites the editable profile fields of the logged-in
// patient and refreshes the session pointer.
func (s *Service) UpdateProfile(sess *session.Session, req *model.UpdateProfileRequest) (*model.Patient, error) {
	current := sess.Patient()
	if current == nil {
		return nil, apperrors.Unauthorized("only a logged-in patient can edit a profile")
	}

	updated := *current
	updated.Name = req.Name
	updated.Age = req.Age
	updated.Gender = req.Gender
	updated.Mobile = req.Mobile

	if err := s.repo.Put(&updated); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if err := sess.SetIdentity(model.PatientIdentity(&updated)); err != nil {
		return nil, fmt.Errorf("failed to refresh session pointer: %w", err)
	}

	return &updated, nil
}

// Reload re-reads the logged-in patient's stored record into the session.
// The profile page triggers this every time it is entered.
func (s *Service) Reload(sess *session.Session) (*model.Patient, error) {
	current := sess.Patient()
	if current == nil {
		return nil, apperrors.Unauthorized("no patient is logged in")
	}
	stored, err := s.repo.Get(current.Username)
	if err != nil {
		return nil, err
	}
	if err := sess.SetIdentity(model.PatientIdentity(stored)); err != nil {
		return nil, fmt.Errorf("failed to refresh session pointer: %w", err)
	}
	return stored, nil
}

// HasAny reports whether any patient is registered; the options page
// shows the profile entry point only if so.
func (s *Service) HasAny() bool {
	return s.repo.HasAny()
}
