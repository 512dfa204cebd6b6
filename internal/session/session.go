// Package session holds the state of the single interactive session:
// who is logged in, which hospital and doctor are selected, and the
// booking draft built between the booking form and payment confirmation.
// It replaces the implicit global state of the browser app with one
// explicit object handed to services.
package session

import (
	"sync"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository"
	"github.com/jwalitptl/opd-booking/pkg/logger"
)

// Session is shared by every request of the HTTP binding, so access to
// its fields is guarded the same way the backing store is.
type Session struct {
	repo repository.SessionRepository
	log  *logger.Logger

	mu       sync.RWMutex
	identity *model.Identity
	hospital *model.Hospital
	doctor   *model.Doctor
	draft    *model.Booking
}

func New(repo repository.SessionRepository, log *logger.Logger) *Session {
	return &Session{repo: repo, log: log}
}

// Rehydrate restores the logged-in identity from the stored session
// pointer. A malformed pointer is recoverable: it is logged, cleared, and
// the session starts signed out.
func (s *Session) Rehydrate() error {
	identity, err := s.repo.Load()
	if err != nil {
		s.log.Warn("resetting malformed session pointer", "error", err.Error())
		return s.repo.Clear()
	}
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
	return nil
}

// SetIdentity records who is logged in and persists the session pointer.
func (s *Session) SetIdentity(identity *model.Identity) error {
	if err := s.repo.Save(identity); err != nil {
		return err
	}
	s.mu.Lock()
	s.identity = identity
	s.mu.Unlock()
	return nil
}

func (s *Session) Identity() *model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Session) IsPatient() bool {
	identity := s.Identity()
	return identity != nil && identity.Type == model.IdentityPatient && identity.Patient != nil
}

func (s *Session) IsHospital() bool {
	identity := s.Identity()
	return identity != nil && identity.Type == model.IdentityHospital && identity.Hospital != nil
}

// Patient returns the logged-in patient, or nil.
func (s *Session) Patient() *model.Patient {
	identity := s.Identity()
	if identity == nil || identity.Type != model.IdentityPatient {
		return nil
	}
	return identity.Patient
}

// Hospital returns the logged-in hospital, or nil.
func (s *Session) Hospital() *model.Hospital {
	identity := s.Identity()
	if identity == nil || identity.Type != model.IdentityHospital {
		return nil
	}
	return identity.Hospital
}

func (s *Session) SelectHospital(hospital *model.Hospital) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hospital = hospital
	s.doctor = nil
}

func (s *Session) SelectedHospital() *model.Hospital {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hospital
}

func (s *Session) SelectDoctor(doctor *model.Doctor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doctor = doctor
}

func (s *Session) SelectedDoctor() *model.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doctor
}

func (s *Session) SetDraft(draft *model.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
}

func (s *Session) Draft() *model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

func (s *Session) ClearDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
}

// Clear signs the session out: identity, selections and draft are wiped
// and the stored session pointer removed.
func (s *Session) Clear() error {
	if err := s.repo.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	s.hospital = nil
	s.doctor = nil
	s.draft = nil
	return nil
}
