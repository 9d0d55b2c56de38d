package localstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mboehm/travellog/internal/localstore"
)

func newStore(t *testing.T) *localstore.Store {
	t.Helper()
	s, err := localstore.New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStore_PutGetRoundTrip(t *testing.T) {
	s := newStore(t)

	type blob struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, s.Put(localstore.KeyIdentity, blob{Name: "Demo User", Count: 3}))

	var got blob
	ok, err := s.Get(localstore.KeyIdentity, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, blob{Name: "Demo User", Count: 3}, got)
}

func TestStore_GetMissingKey(t *testing.T) {
	s := newStore(t)

	var got map[string]any
	ok, err := s.Get("never-written", &got)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PutOverwrites(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Put(localstore.KeyDestinations, []string{"a"}))
	require.NoError(t, s.Put(localstore.KeyDestinations, []string{"b", "c"}))

	var got []string
	ok, err := s.Get(localstore.KeyDestinations, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c"}, got)
}

func TestStore_DeleteAbsentKeyIsNoOp(t *testing.T) {
	s := newStore(t)

	assert.NoError(t, s.Delete("never-written"))
}

func TestStore_WipeRemovesEverything(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Put(localstore.KeyIdentity, "user"))
	require.NoError(t, s.Put(localstore.KeyDestinations, []string{"a"}))

	require.NoError(t, s.Wipe())

	var ident string
	ok, err := s.Get(localstore.KeyIdentity, &ident)
	require.NoError(t, err)
	assert.False(t, ok)

	var dests []string
	ok, err = s.Get(localstore.KeyDestinations, &dests)
	require.NoError(t, err)
	assert.False(t, ok)
}
