package rest

import (
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	incusapi "github.com/lxc/incus/v6/shared/api"
	"github.com/stretchr/testify/require"

	"github.com/nextcloud-charmers/nextcloud-charm/api"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/state"
)

func TestAPIState(t *testing.T) {
	t.Parallel()

	st, err := state.LoadOrCreate(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	st.MarkFetched()
	require.NoError(t, st.MarkInitialized())
	st.SetDatabase("host=10.0.0.10 dbname=nextcloud password=sekrit", "postgresql://10.0.0.10/nextcloud", "nextcloud", "nc", "sekrit", "10.0.0.10", "5432")
	st.Nextcloud.Version = "18.0.3"

	server := &Server{state: st}

	recorder := httptest.NewRecorder()
	server.apiState(recorder, httptest.NewRequest("GET", "/1.0/state", nil))

	var resp incusapi.ResponseRaw

	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

	body, err := json.Marshal(resp.Metadata)
	require.NoError(t, err)

	var snapshot api.CharmState

	require.NoError(t, json.Unmarshal(body, &snapshot))
	require.True(t, snapshot.Fetched)
	require.True(t, snapshot.Initialized)
	require.True(t, snapshot.Database.Available)
	require.Equal(t, "18.0.3", snapshot.Version)

	// Credentials never leave the unit.
	require.NotContains(t, recorder.Body.String(), "sekrit")
}

func TestAPIRoot(t *testing.T) {
	t.Parallel()

	server := &Server{state: &state.State{}}

	recorder := httptest.NewRecorder()
	server.apiRoot(recorder, httptest.NewRequest("GET", "/", nil))
	require.Equal(t, 200, recorder.Code)

	recorder = httptest.NewRecorder()
	server.apiRoot(recorder, httptest.NewRequest("GET", "/bogus", nil))
	require.Equal(t, 404, recorder.Code)
}
