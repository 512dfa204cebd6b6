package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/opd-booking/internal/model"
	"github.com/jwalitptl/opd-booking/internal/repository/localstore"
	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
	"github.com/jwalitptl/opd-booking/pkg/kvstore"
	"github.com/jwalitptl/opd-booking/pkg/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := kvstore.New("")
	require.NoError(t, err)
	return NewService(localstore.NewHospitalRepository(store), logger.NewLogger(nil))
}

func TestListIncludesSeedAndRegistered(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.repo.Put(&model.Hospital{
		Name: "Lakeside Clinic", Code: "LSC002", Location: "Lakeside, East End",
	}))

	hospitals, err := svc.List()
	require.NoError(t, err)
	require.Len(t, hospitals, 2)
	assert.Equal(t, "City General Hospital", hospitals[0].Name)
	assert.Equal(t, "Lakeside Clinic", hospitals[1].Name)
}

func TestSearchMatchesNameSubstringCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	for _, query := range []string{"city", "GENERAL", "ity gen"} {
		hospitals, err := svc.Search(query)
		require.NoError(t, err)
		require.Len(t, hospitals, 1, "query %q", query)
		assert.Equal(t, "City General Hospital", hospitals[0].Name)
	}
}

func TestSearchMatchesLocation(t *testing.T) {
	svc := newTestService(t)

	hospitals, err := svc.Search("downtown")
	require.NoError(t, err)
	require.Len(t, hospitals, 1)
}

func TestSearchExcludesNonMatching(t *testing.T) {
	svc := newTestService(t)

	hospitals, err := svc.Search("nowhere near")
	require.NoError(t, err)
	assert.Empty(t, hospitals)
}

func TestSearchEmptyQueryMatchesAll(t *testing.T) {
	svc := newTestService(t)

	hospitals, err := svc.Search("")
	require.NoError(t, err)
	assert.Len(t, hospitals, 1)
}

func TestGetResolvesSeedThenRegistered(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.repo.Put(&model.Hospital{Name: "Lakeside Clinic", Code: "LSC002"}))

	seeded, err := svc.Get("CGH001")
	require.NoError(t, err)
	assert.Equal(t, "City General Hospital", seeded.Name)

	registered, err := svc.Get("LSC002")
	require.NoError(t, err)
	assert.Equal(t, "Lakeside Clinic", registered.Name)

	_, err = svc.Get("NOPE")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestFindDoctor(t *testing.T) {
	svc := newTestService(t)
	hospital, err := svc.Get("CGH001")
	require.NoError(t, err)

	doctor, err := svc.FindDoctor(hospital, 102)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Michael Chen", doctor.Name)

	_, err = svc.FindDoctor(hospital, 999)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}
