package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Memory)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_SecondOpenAppliesNothing(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir)
	require.NoError(t, err)
	before, err := first.AppliedMigrations()
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(dir)
	require.NoError(t, err)
	defer second.Close()
	after, err := second.AppliedMigrations()
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.FileExists(t, filepath.Join(dir, DBFile))
}

func TestAppliedMigrations_Ascending(t *testing.T) {
	versions, err := openTestStore(t).AppliedMigrations()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, versions)
}

func TestParseMigrationVersion(t *testing.T) {
	v, err := parseMigrationVersion("012_add_column.sql")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	_, err = parseMigrationVersion("profiles.sql")
	assert.Error(t, err)
}

func TestIndexesExist(t *testing.T) {
	s := openTestStore(t)

	for _, idx := range []string{"idx_profiles_updated", "idx_launches_started"} {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "index %s", idx)
	}
}

func TestProfileCRUD(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.SaveProfile(Profile{
		Name:       "speedrun",
		ConfigText: "screenwidth 640\n",
		EEPROM:     []byte{0x31, 0x44, 1, 0},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.GetProfile("speedrun")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "screenwidth 640\n", got.ConfigText)
	assert.Equal(t, []byte{0x31, 0x44, 1, 0}, got.EEPROM)

	_, err = s.GetProfile("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteProfile("speedrun"))
	assert.ErrorIs(t, s.DeleteProfile("speedrun"), ErrNotFound)
}

func TestSaveProfile_UpsertByName(t *testing.T) {
	s := openTestStore(t)

	first, err := s.SaveProfile(Profile{Name: "couch", ConfigText: "a 1\n"})
	require.NoError(t, err)

	second, err := s.SaveProfile(Profile{Name: "couch", Description: "gamepad", ConfigText: "a 2\n"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "upsert keeps the original ID")
	assert.Equal(t, "a 2\n", second.ConfigText)
	assert.Equal(t, "gamepad", second.Description)
	assert.Empty(t, second.EEPROM)

	list, err := s.ListProfiles()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestListProfiles(t *testing.T) {
	s := openTestStore(t)

	list, err := s.ListProfiles()
	require.NoError(t, err)
	assert.Empty(t, list)

	for _, name := range []string{"b", "a", "c"} {
		_, err := s.SaveProfile(Profile{Name: name})
		require.NoError(t, err)
	}
	list, err = s.ListProfiles()
	require.NoError(t, err)
	require.Len(t, list, 3)

	names := make(map[string]bool)
	for _, p := range list {
		names[p.Name] = true
	}
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, names)
}

func TestRecentLaunches(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, cmd := range []string{"calico-doom -skill 1", "calico-doom -skill 2", "calico-doom -skill 3"} {
		require.NoError(t, s.RecordLaunch(Launch{StartedAt: base.Add(time.Duration(i) * time.Minute), Command: cmd, ExitCode: i}))
	}
	require.NoError(t, s.RecordLaunch(Launch{StartedAt: base.Add(-time.Hour), Command: "calico-doom", ExitCode: 0x80, Error: "could not start the game"}))

	recent, err := s.RecentLaunches(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "calico-doom -skill 3", recent[0].Command)
	assert.Equal(t, 2, recent[0].ExitCode)
	assert.True(t, recent[0].StartedAt.Equal(base.Add(2*time.Minute)))
	assert.Equal(t, "calico-doom -skill 2", recent[1].Command)

	all, err := s.RecentLaunches(10)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, 0x80, all[3].ExitCode)
	assert.NotEmpty(t, all[3].ID)
}
