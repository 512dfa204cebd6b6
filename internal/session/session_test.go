package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository/localstore"
	"github.com/jwalitptl/opd-booking/pkg/kvstore"
	"github.com/jwalitptl/opd-booking/pkg/logger"
)

func newTestSession(t *testing.T) (*Session, *kvstore.Store) {
	t.Helper()
	store, err := kvstore.New("")
	require.NoError(t, err)
	return New(localstore.NewSessionRepository(store), logger.NewLogger(nil)), store
}

func TestRehydrateEmptyStore(t *testing.T) {
	sess, _ := newTestSession(t)
	require.NoError(t, sess.Rehydrate())
	assert.Nil(t, sess.Identity())
	assert.False(t, sess.IsPatient())
	assert.False(t, sess.IsHospital())
}

func TestSetIdentityPersistsAndRehydrates(t *testing.T) {
	store, err := kvstore.New("")
	require.NoError(t, err)
	repo := localstore.NewSessionRepository(store)
	log := logger.NewLogger(nil)

	sess := New(repo, log)
	patient := &model.Patient{Type: "patient", Name: "Asha", Username: "asha01"}
	require.NoError(t, sess.SetIdentity(model.PatientIdentity(patient)))

	fresh := New(repo, log)
	require.NoError(t, fresh.Rehydrate())
	require.True(t, fresh.IsPatient())
	assert.Equal(t, "asha01", fresh.Patient().Username)
}

func TestRehydrateMalformedPointerResets(t *testing.T) {
	sess, store := newTestSession(t)
	// a JSON string is valid storage but not a valid identity record
	require.NoError(t, store.Put("currentUser", "garbage"))

	require.NoError(t, sess.Rehydrate())
	assert.Nil(t, sess.Identity())
	assert.False(t, store.HasPrefix("currentUser"))
}

func TestClearWipesEverything(t *testing.T) {
	sess, store := newTestSession(t)
	require.NoError(t, sess.SetIdentity(model.PatientIdentity(&model.Patient{Username: "u1"})))
	sess.SelectHospital(&model.Hospital{Code: "H1"})
	sess.SelectDoctor(&model.Doctor{ID: 1})
	sess.SetDraft(&model.Booking{BookingID: "OPB1"})

	require.NoError(t, sess.Clear())
	assert.Nil(t, sess.Identity())
	assert.Nil(t, sess.SelectedHospital())
	assert.Nil(t, sess.SelectedDoctor())
	assert.Nil(t, sess.Draft())
	assert.False(t, store.HasPrefix("currentUser"))
}

func TestSessionOverlappingAccess(t *testing.T) {
	sess, _ := newTestSession(t)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.SelectHospital(&model.Hospital{Code: "H1"})
			sess.SelectDoctor(&model.Doctor{ID: 1})
			sess.SetDraft(&model.Booking{BookingID: "OPB1"})
			_ = sess.SelectedHospital()
			_ = sess.Draft()
			_ = sess.IsPatient()
		}()
	}
	wg.Wait()
	assert.NotNil(t, sess.SelectedHospital())
}

func TestSelectHospitalResetsDoctor(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.SelectHospital(&model.Hospital{Code: "H1"})
	sess.SelectDoctor(&model.Doctor{ID: 1})
	sess.SelectHospital(&model.Hospital{Code: "H2"})
	assert.Nil(t, sess.SelectedDoctor())
}
