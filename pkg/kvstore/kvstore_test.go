package kvstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/opd-booking/pkg/errors"
)

type record struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestPutGetRoundTrip(t *testing.T) {
	store, err := New("")
	require.NoError(t, err)

	require.NoError(t, store.Put("user_u1", record{Name: "Asha", Age: 30}))

	var got record
	require.NoError(t, store.Get("user_u1", &got))
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, 30, got.Age)
}

func TestGetMissingKey(t *testing.T) {
	store, err := New("")
	require.NoError(t, err)

	var got record
	assert.ErrorIs(t, store.Get("user_missing", &got), ErrKeyNotFound)
}

func TestPutOverwritesExisting(t *testing.T) {
	store, err := New("")
	require.NoError(t, err)

	require.NoError(t, store.Put("user_u1", record{Name: "Asha"}))
	require.NoError(t, store.Put("user_u1", record{Name: "Binod"}))

	var got record
	require.NoError(t, store.Get("user_u1", &got))
	assert.Equal(t, "Binod", got.Name)
}

func TestKeysAndHasPrefix(t *testing.T) {
	store, err := New("")
	require.NoError(t, err)

	require.NoError(t, store.Put("user_u1", record{}))
	require.NoError(t, store.Put("user_u2", record{}))
	require.NoError(t, store.Put("hospital_h1", record{}))

	assert.Equal(t, []string{"user_u1", "user_u2"}, store.Keys("user_"))
	assert.True(t, store.HasPrefix("hospital_"))
	assert.False(t, store.HasPrefix("bookings_"))
}

func TestDelete(t *testing.T) {
	store, err := New("")
	require.NoError(t, err)

	require.NoError(t, store.Put("currentUser", record{Name: "Asha"}))
	require.NoError(t, store.Delete("currentUser"))

	var got record
	assert.ErrorIs(t, store.Get("currentUser", &got), ErrKeyNotFound)
}

func TestSnapshotSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.Put("user_u1", record{Name: "Asha", Age: 30}))

	reloaded, err := New(path)
	require.NoError(t, err)

	var got record
	require.NoError(t, reloaded.Get("user_u1", &got))
	assert.Equal(t, "Asha", got.Name)
}

func TestMalformedValueReturnsDecodeError(t *testing.T) {
	store, err := New("")
	require.NoError(t, err)

	require.NoError(t, store.putRaw("user_u1", []byte("{not json")))

	var got record
	err = store.Get("user_u1", &got)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrDecode))
}
