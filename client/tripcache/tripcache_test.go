package tripcache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner/client/tripcache"
)

func newStore(t *testing.T) (*tripcache.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planner", "trip.json")
	return tripcache.NewAt(path), path
}

func TestStore_Get_EmptyCache(t *testing.T) {
	s, _ := newStore(t)

	id, ok, err := s.Get()

	// A missing cache file is the normal fresh-install state, not an error.
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestStore_SaveAndGet(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Save("e4b6a428-96e8-4a4e-8b86-7e0d6e3cbb24"))

	id, ok, err := s.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "e4b6a428-96e8-4a4e-8b86-7e0d6e3cbb24", id)
}

func TestStore_Save_Overwrites(t *testing.T) {
	s, _ := newStore(t)

	require.NoError(t, s.Save("first-trip"))
	require.NoError(t, s.Save("second-trip"))

	id, ok, err := s.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	// Single slot: the newer trip replaces the older one.
	assert.Equal(t, "second-trip", id)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Save("persisted-trip"))

	// A fresh Store over the same path sees what the previous one wrote,
	// just like a second CLI invocation would.
	id, ok, err := tripcache.NewAt(path).Get()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted-trip", id)
}

func TestStore_Remove(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.Save("doomed-trip"))

	require.NoError(t, s.Remove())

	_, ok, err := s.Get()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_Remove_MissingFile(t *testing.T) {
	s, _ := newStore(t)

	// Removing an empty cache must not error.
	assert.NoError(t, s.Remove())
}

func TestStore_Save_FilePermissions(t *testing.T) {
	s, path := newStore(t)
	require.NoError(t, s.Save("private-trip"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("PLANNER_TRIP_FILE", "/tmp/custom-trip.json")

	assert.Equal(t, "/tmp/custom-trip.json", tripcache.DefaultPath())
}

func TestDefaultPath_XDGConfigHome(t *testing.T) {
	t.Setenv("PLANNER_TRIP_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", "/home/ada/.config")

	assert.Equal(t, "/home/ada/.config/planner/trip.json", tripcache.DefaultPath())
}
