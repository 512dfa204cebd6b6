// Package auth implements login, logout and password change. This is a
// demo: passwords are stored and compared as plain strings, and the
// "session" is a stored pointer record, not a token.
package auth

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository"
	"github.com/jwalitptl/opd-booking/internal/session"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/logger"
)

// DefaultPasswordMinLength applies when no policy is configured.
const DefaultPasswordMinLength = 6

type Service struct {
	patients  repository.PatientRepository
	hospitals repository.HospitalRepository
	log       *logger.Logger
	validate  *validator.Validate

	passwordMinLength int
}

func NewService(patients repository.PatientRepository, hospitals repository.HospitalRepository, passwordMinLength int, log *logger.Logger) *Service {
	if passwordMinLength <= 0 {
		passwordMinLength = DefaultPasswordMinLength
	}
	validate := validator.New()
	// the request structs carry their rules in gin binding tags
	validate.SetTagName("binding")
	return &Service{
		patients:          patients,
		hospitals:         hospitals,
		log:               log,
		validate:          validate,
		passwordMinLength: passwordMinLength,
	}
}

// LoginPatient signs a patient in. The three outcomes are distinct:
// unknown username, wrong password, success. Identity only changes on
// success.
func (s *Service) LoginPatient(sess *session.Session, req *model.LoginPatientRequest) (*model.Patient, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	patient, err := s.patients.Get(req.Username)
	if err != nil {
		return nil, err
	}
	if patient.Password != req.Password {
		return nil, apperrors.InvalidCredential("invalid password")
	}

	if err := sess.SetIdentity(model.PatientIdentity(patient)); err != nil {
		return nil, fmt.Errorf("failed to store session pointer: %w", err)
	}
	s.log.Info("patient logged in", "username", patient.Username)
	return patient, nil
}

// LoginHospital signs a hospital in by code, with the same three
// outcomes as LoginPatient.
func (s *Service) LoginHospital(sess *session.Session, req *model.LoginHospitalRequest) (*model.Hospital, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	hospital, err := s.hospitals.Get(req.Code)
	if err != nil {
		return nil, err
	}
	if hospital.Password != req.Password {
		return nil, apperrors.InvalidCredential("invalid password")
	}

	if err := sess.SetIdentity(model.HospitalIdentity(hospital)); err != nil {
		return nil, fmt.Errorf("failed to store session pointer: %w", err)
	}
	s.log.Info("hospital logged in", "code", hospital.Code)
	return hospital, nil
}

// ChangePassword updates the password of whoever is logged in: the old
// password must match, the confirmation must match, and the new password
// must meet the minimum length. Both the session pointer and the stored
// record are rewritten.
func (s *Service) ChangePassword(sess *session.Session, req *model.ChangePasswordRequest) error {
	identity := sess.Identity()
	if identity == nil {
		return apperrors.Unauthorized("log in to change the password")
	}

	switch {
	case s.currentPassword(identity) != req.OldPassword:
		return apperrors.InvalidCredential("incorrect old password")
	case req.NewPassword != req.ConfirmPassword:
		return apperrors.Validation("new passwords do not match")
	case len(req.NewPassword) < s.passwordMinLength:
		return apperrors.Validation(fmt.Sprintf("password must be at least %d characters long", s.passwordMinLength))
	}

	switch identity.Type {
	case model.IdentityPatient:
		updated := *identity.Patient
		updated.Password = req.NewPassword
		if err := s.patients.Put(&updated); err != nil {
			return fmt.Errorf("failed to store patient: %w", err)
		}
		return sess.SetIdentity(model.PatientIdentity(&updated))
	case model.IdentityHospital:
		updated := *identity.Hospital
		updated.Password = req.NewPassword
		if err := s.hospitals.Put(&updated); err != nil {
			return fmt.Errorf("failed to store hospital: %w", err)
		}
		return sess.SetIdentity(model.HospitalIdentity(&updated))
	default:
		return apperrors.Internal(fmt.Errorf("unknown identity type %q", identity.Type))
	}
}

// Logout clears the stored session pointer and the in-memory session.
func (s *Service) Logout(sess *session.Session) error {
	if err := sess.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.log.Info("logged out")
	return nil
}

func (s *Service) currentPassword(identity *model.Identity) string {
	switch identity.Type {
	case model.IdentityPatient:
		return identity.Patient.Password
	case model.IdentityHospital:
		return identity.Hospital.Password
	}
	return ""
}
