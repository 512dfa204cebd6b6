package hospital

import (
	"fmt"
	"sync"
	"time"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository"
	"github.com/jwalitptl/opd-booking/internal/service/directory"
	"github.com/jwalitptl/opd-booking/internal/session"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/logger"
)

type Service struct {
	repo repository.HospitalRepository
	log  *logger.Logger

	now  func() time.Time
	idMu sync.Mutex
	// lastDoctorID is guarded by idMu
	lastDoctorID int64
}

func NewService(repo repository.HospitalRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Register creates a hospital with an empty roster and signs it in. A
// taken code is rejected instead of overwritten; that includes the
// built-in directory codes, which would otherwise shadow the seed.
func (s *Service) Register(sess *session.Session, req *model.RegisterHospitalRequest) (*model.Hospital, error) {
	if directory.IsSeedCode(req.Code) || s.repo.Exists(req.Code) {
		return nil, apperrors.Conflict(fmt.Sprintf("hospital code %q is already registered", req.Code))
	}

	hospital := &model.Hospital{
		Type:     string(model.IdentityHospital),
		Name:     req.Name,
		Code:     req.Code,
		Location: req.Location,
		Branch:   req.Branch,
		Helpline: req.Helpline,
		Password: req.Password,
		Doctors:  []model.Doctor{},
	}

	if err := s.repo.Put(hospital); err != nil {
		return nil, fmt.Errorf("failed to register hospital: %w", err)
	}
	if err := sess.SetIdentity(model.HospitalIdentity(hospital)); err != nil {
		return nil, fmt.Errorf("failed to store session pointer: %w", err)
	}

	s.log.Info("hospital registered", "code", hospital.Code)
	return hospital, nil
}

// AddDoctor appends a doctor to the logged-in hospital's roster and
// persists the whole record. Rosters are append-only.
func (s *Service) AddDoctor(sess *session.Session, req *model.AddDoctorRequest) (*model.Doctor, error) {
	current := sess.Hospital()
	if current == nil {
		return nil, apperrors.Unauthorized("only a logged-in hospital can add doctors")
	}

	stored, err := s.repo.Get(current.Code)
	if err != nil {
		return nil, err
	}

	doctor := model.Doctor{
		ID:                  s.nextDoctorID(),
		Name:                req.Name,
		Degree:              req.Degree,
		Specialization:      req.Specialization,
		Fees:                req.Fees,
		ReceptionistContact: req.ReceptionistContact,
	}
	stored.Doctors = append(stored.Doctors, doctor)

	if err := s.repo.Put(stored); err != nil {
		return nil, fmt.Errorf("failed to store roster: %w", err)
	}
	if err := sess.SetIdentity(model.HospitalIdentity(stored)); err != nil {
		return nil, fmt.Errorf("failed to refresh session pointer: %w", err)
	}

	s.log.Info("doctor added", "hospital", stored.Code, "doctor", doctor.Name)
	return &doctor, nil
}

// Roster returns the stored doctor list of the logged-in hospital.
func (s *Service) Roster(sess *session.Session) ([]model.Doctor, error) {
	current := sess.Hospital()
	if current == nil {
		return nil, apperrors.Unauthorized("no hospital is logged in")
	}
	stored, err := s.repo.Get(current.Code)
	if err != nil {
		return nil, err
	}
	return stored.Doctors, nil
}

// HasAny reports whether any hospital is registered; the options page
// shows the login entry point only if so.
func (s *Service) HasAny() bool {
	return s.repo.HasAny()
}

// nextDoctorID derives an id from the wall clock, bumping past the last
// issued one so two doctors added within the same millisecond, or from
// overlapping requests, still get distinct ids.
func (s *Service) nextDoctorID() int64 {
	s.idMu.Lock()
	defer s.idMu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastDoctorID {
		id = s.lastDoctorID + 1
	}
	s.lastDoctorID = id
	return id
}
