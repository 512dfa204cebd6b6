// Package booking builds appointment drafts and confirms them into the
// patient's booking list. A draft lives only in the session until payment
// is confirmed; the stored booking is a denormalized snapshot of the
// hospital and doctor at booking time.
package booking

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository"
	"github.com/jwalitptl/opd-booking/internal/session"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/logger"
)

type Service struct {
	bookings repository.BookingRepository
	log      *logger.Logger

	now  func() time.Time
	idMu sync.Mutex
	// lastID is guarded by idMu
	lastID int64
}

func NewService(bookings repository.BookingRepository, log *logger.Logger) *Service {
	return &Service{bookings: bookings, log: log, now: time.Now}
}

// Draft builds the pending booking from the form fields and the selected
// hospital and doctor. Nothing is persisted until Confirm.
func (s *Service) Draft(sess *session.Session, req *model.BookingRequest) (*model.Booking, error) {
	hospital := sess.SelectedHospital()
	doctor := sess.SelectedDoctor()
	if hospital == nil || doctor == nil {
		return nil, apperrors.MissingSelection("select a hospital and a doctor before booking")
	}

	if _, err := time.Parse(model.AppointmentDateLayout, req.AppointmentDate); err != nil {
		return nil, apperrors.Validation(fmt.Sprintf("appointment date must be in %s format", model.AppointmentDateLayout))
	}

	draft := &model.Booking{
		BookingID:        s.nextBookingID(),
		PatientName:      req.PatientName,
		PatientAge:       req.PatientAge,
		PatientGender:    req.PatientGender,
		PatientMobile:    req.PatientMobile,
		AppointmentDate:  req.AppointmentDate,
		Hospital:         hospital.Name,
		HospitalLocation: hospital.Location,
		Doctor:           doctor.Name,
		Specialization:   doctor.Specialization,
		Fees:             doctor.Fees,
		Helpline:         hospital.Helpline,
		Timestamp:        s.now(),
	}
	sess.SetDraft(draft)
	return draft, nil
}

// Confirm appends the pending draft to the logged-in patient's booking
// list with status successful. An anonymous session cannot confirm:
// nothing is saved and Unauthorized is returned.
func (s *Service) Confirm(sess *session.Session) (*model.Booking, error) {
	draft := sess.Draft()
	if draft == nil {
		return nil, apperrors.MissingSelection("no pending booking to confirm")
	}
	patient := sess.Patient()
	if patient == nil {
		return nil, apperrors.Unauthorized("log in as a patient to confirm the booking")
	}

	confirmed := *draft
	confirmed.Status = model.BookingStatusSuccessful
	if err := s.bookings.Append(patient.Username, confirmed); err != nil {
		return nil, fmt.Errorf("failed to store booking: %w", err)
	}
	sess.ClearDraft()

	s.log.Info("booking confirmed", "bookingId", confirmed.BookingID, "username", patient.Username)
	return &confirmed, nil
}

// ListForPatient returns the logged-in patient's bookings in insertion
// order.
func (s *Service) ListForPatient(sess *session.Session) ([]model.Booking, error) {
	patient := sess.Patient()
	if patient == nil {
		return nil, apperrors.Unauthorized("no patient is logged in")
	}
	return s.bookings.List(patient.Username)
}

// nextBookingID derives the id from the wall clock, bumping past the
// last issued one so ids stay unique within a millisecond and across
// overlapping requests.
func (s *Service) nextBookingID() string {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	ts := s.now().UnixMilli()
	if ts <= s.lastID {
		ts = s.lastID + 1
	}
	s.lastID = ts
	return model.BookingIDPrefix + strconv.FormatInt(ts, 10)
}
