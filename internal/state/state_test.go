package state_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/state"
)

func TestLoadOrCreate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")

	s, err := state.LoadOrCreate(path)
	require.NoError(t, err)
	require.Equal(t, "/var/www/nextcloud/data", s.Nextcloud.DataDir)
	require.FileExists(t, path)

	// Reload after recording some progress.
	s.MarkFetched()
	require.NoError(t, s.MarkInitialized())
	require.NoError(t, s.Save())

	s, err = state.LoadOrCreate(path)
	require.NoError(t, err)
	require.True(t, s.Nextcloud.Fetched)
	require.True(t, s.Nextcloud.Initialized)
}

func TestLoadUpgradesVersionZero(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state.json")

	err := os.WriteFile(path, []byte(`{"nextcloud": {"fetched": true}}`), 0o600)
	require.NoError(t, err)

	s, err := state.LoadOrCreate(path)
	require.NoError(t, err)
	require.True(t, s.Nextcloud.Fetched)
	require.Equal(t, "/var/www/nextcloud/data", s.Nextcloud.DataDir)
}

func TestFirstUnmetOrder(t *testing.T) {
	t.Parallel()

	var s state.State

	condition, ok := s.FirstUnmet()
	require.False(t, ok)
	require.Equal(t, state.ConditionFetched, condition)
	require.Equal(t, "Nextcloud not fetched.", condition.Message())

	s.MarkFetched()

	condition, ok = s.FirstUnmet()
	require.False(t, ok)
	require.Equal(t, state.ConditionInitialized, condition)

	// Apache is reported before PHP and database once initialized.
	require.NoError(t, s.MarkInitialized())

	condition, ok = s.FirstUnmet()
	require.False(t, ok)
	require.Equal(t, state.ConditionApacheConfigured, condition)
	require.Equal(t, "Apache not configured.", condition.Message())

	s.MarkApacheConfigured()

	condition, ok = s.FirstUnmet()
	require.False(t, ok)
	require.Equal(t, state.ConditionPHPConfigured, condition)

	s.MarkPHPConfigured()

	condition, ok = s.FirstUnmet()
	require.False(t, ok)
	require.Equal(t, state.ConditionDatabaseAvailable, condition)

	s.SetDatabase("host=1.2.3.4 dbname=nextcloud", "postgresql://1.2.3.4/nextcloud", "nextcloud", "nc", "secret", "1.2.3.4", "5432")

	_, ok = s.FirstUnmet()
	require.True(t, ok)
}

func TestMarkInitializedRequiresFetched(t *testing.T) {
	t.Parallel()

	var s state.State

	require.ErrorIs(t, s.MarkInitialized(), state.ErrNotFetched)
	require.False(t, s.Nextcloud.Initialized)
}

func TestSetDatabaseClearsOnEmpty(t *testing.T) {
	t.Parallel()

	var s state.State

	s.SetDatabase("host=1.2.3.4 dbname=nextcloud", "postgresql://1.2.3.4/nextcloud", "nextcloud", "nc", "secret", "1.2.3.4", "5432")
	require.True(t, s.Database.Available)
	require.Equal(t, "pgsql", s.Database.Kind)

	s.SetDatabase("", "", "", "", "", "", "")
	require.False(t, s.Database.Available)
	require.Empty(t, s.Database.Host)
	require.Empty(t, s.Database.Password)
	require.Empty(t, s.Database.Kind)
}

func TestAdoptPeerConfiguration(t *testing.T) {
	t.Parallel()

	var s state.State

	require.ErrorIs(t, s.AdoptPeerConfiguration(), state.ErrNotFetched)

	s.MarkFetched()
	require.NoError(t, s.AdoptPeerConfiguration())
	require.True(t, s.Nextcloud.Initialized)
	require.True(t, s.Database.Available)
}

func TestDeferredEvents(t *testing.T) {
	t.Parallel()

	var s state.State

	s.DeferEvent("install")
	s.DeferEvent("db-relation-joined")
	s.DeferEvent("install")

	require.Equal(t, []string{"install", "db-relation-joined"}, s.TakeDeferredEvents())
	require.Empty(t, s.TakeDeferredEvents())
}
