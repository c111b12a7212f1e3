package rest

import (
	"net/http"

	"github.com/nextcloud-charmers/nextcloud-charm/api"
	"github.com/nextcloud-charmers/nextcloud-charm/internal/rest/response"
)

// apiState exposes a sanitized snapshot of the unit's lifecycle state.
// Connection credentials are never included.
func (s *Server) apiState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		_ = response.ErrorResponse(http.StatusMethodNotAllowed, "method not allowed").Render(w)

		return
	}

	snapshot := api.CharmState{
		Fetched:          s.state.Nextcloud.Fetched,
		Initialized:      s.state.Nextcloud.Initialized,
		ApacheConfigured: s.state.Apache.Configured,
		PHPConfigured:    s.state.PHP.Configured,
		Version:          s.state.Nextcloud.Version,

		Database: api.DatabaseState{
			Available: s.state.Database.Available,
			Name:      s.state.Database.Name,
			Host:      s.state.Database.Host,
			Port:      s.state.Database.Port,
			Kind:      s.state.Database.Kind,
		},

		Cache: api.CacheState{
			Available: s.state.Cache.Available,
			Host:      s.state.Cache.Host,
			Port:      s.state.Cache.Port,
		},

		DeferredEvents: s.state.DeferredEvents,
	}

	_ = response.SyncResponse(snapshot).Render(w)
}
