package booking

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository"
	"github.com/jwalitptl/opd-booking/internal/repository/localstore"
	"github.com/jwalitptl/opd-booking/internal/session"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/kvstore"
	"github.com/jwalitptl/opd-booking/pkg/logger"
)

func newFixture(t *testing.T) (*Service, *session.Session, repository.BookingRepository) {
	t.Helper()
	store, err := kvstore.New("")
	require.NoError(t, err)
	log := logger.NewLogger(nil)
	repo := localstore.NewBookingRepository(store)
	sess := session.New(localstore.NewSessionRepository(store), log)
	return NewService(repo, log), sess, repo
}

func selectCityGeneral(sess *session.Session) {
	sess.SelectHospital(&model.Hospital{
		Name: "City General Hospital", Location: "Downtown", Helpline: "9876543210",
	})
	sess.SelectDoctor(&model.Doctor{
		ID: 101, Name: "Dr. Sarah Johnson", Specialization: "Cardiology", Fees: 800,
	})
}

func bookingRequest() *model.BookingRequest {
	return &model.BookingRequest{
		PatientName:     "Asha",
		PatientAge:      30,
		PatientGender:   "female",
		PatientMobile:   "9876543210",
		AppointmentDate: "2026-09-05",
	}
}

func loginPatient(t *testing.T, sess *session.Session, username string) {
	t.Helper()
	require.NoError(t, sess.SetIdentity(model.PatientIdentity(&model.Patient{Username: username})))
}

func TestDraftRequiresSelections(t *testing.T) {
	svc, sess, _ := newFixture(t)

	_, err := svc.Draft(sess, bookingRequest())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrMissingSelection))

	sess.SelectHospital(&model.Hospital{Name: "City General Hospital"})
	_, err = svc.Draft(sess, bookingRequest())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrMissingSelection))
}

func TestDraftBuildsDenormalizedSnapshot(t *testing.T) {
	svc, sess, _ := newFixture(t)
	selectCityGeneral(sess)

	draft, err := svc.Draft(sess, bookingRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(draft.BookingID, "OPB"))
	assert.Equal(t, "City General Hospital", draft.Hospital)
	assert.Equal(t, "Dr. Sarah Johnson", draft.Doctor)
	assert.Equal(t, float64(800), draft.Fees)
	assert.Equal(t, "9876543210", draft.Helpline)
	assert.Empty(t, draft.Status)
	assert.Same(t, draft, sess.Draft())
}

func TestDraftRejectsBadDate(t *testing.T) {
	svc, sess, _ := newFixture(t)
	selectCityGeneral(sess)

	req := bookingRequest()
	req.AppointmentDate = "05/09/2026"
	_, err := svc.Draft(sess, req)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))
}

func TestConfirmAppendsExactlyOne(t *testing.T) {
	svc, sess, repo := newFixture(t)
	selectCityGeneral(sess)
	loginPatient(t, sess, "u1")

	_, err := svc.Draft(sess, bookingRequest())
	require.NoError(t, err)

	confirmed, err := svc.Confirm(sess)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusSuccessful, confirmed.Status)

	bookings, err := repo.List("u1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, confirmed.BookingID, bookings[0].BookingID)
	assert.Nil(t, sess.Draft())
}

func TestConfirmPreservesExistingBookings(t *testing.T) {
	svc, sess, repo := newFixture(t)
	selectCityGeneral(sess)
	loginPatient(t, sess, "u1")
	require.NoError(t, repo.Append("u1", model.Booking{BookingID: "OPB1"}))

	_, err := svc.Draft(sess, bookingRequest())
	require.NoError(t, err)
	_, err = svc.Confirm(sess)
	require.NoError(t, err)

	bookings, err := repo.List("u1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "OPB1", bookings[0].BookingID)
}

func TestConfirmWithoutDraft(t *testing.T) {
	svc, sess, _ := newFixture(t)
	loginPatient(t, sess, "u1")

	_, err := svc.Confirm(sess)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrMissingSelection))
}

func TestConfirmAnonymousRejected(t *testing.T) {
	svc, sess, repo := newFixture(t)
	selectCityGeneral(sess)

	_, err := svc.Draft(sess, bookingRequest())
	require.NoError(t, err)

	_, err = svc.Confirm(sess)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))

	bookings, err := repo.List("u1")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestBookingIDsUniquePerCall(t *testing.T) {
	svc, sess, _ := newFixture(t)
	selectCityGeneral(sess)
	frozen := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	a, err := svc.Draft(sess, bookingRequest())
	require.NoError(t, err)
	b, err := svc.Draft(sess, bookingRequest())
	require.NoError(t, err)
	assert.NotEqual(t, a.BookingID, b.BookingID)
}

func TestBookingIDsUniqueAcrossOverlappingCalls(t *testing.T) {
	svc, _, _ := newFixture(t)
	frozen := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }

	const callers = 64
	ids := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- svc.nextBookingID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, callers)
	for id := range ids {
		assert.False(t, seen[id], "duplicate booking id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, callers)
}

func TestListForPatient(t *testing.T) {
	svc, sess, repo := newFixture(t)

	_, err := svc.ListForPatient(sess)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrUnauthorized))

	loginPatient(t, sess, "u1")
	require.NoError(t, repo.Append("u1", model.Booking{BookingID: "OPB1"}))

	bookings, err := svc.ListForPatient(sess)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
