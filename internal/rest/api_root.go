package rest

import (
	"net/http"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/rest/response"
)

func (*Server) apiRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		_ = response.NotFound().Render(w)

		return
	}

	_ = response.SyncResponse([]string{"/1.0"}).Render(w)
}

func (s *Server) apiRoot10(w http.ResponseWriter, _ *http.Request) {
	resp := map[string]any{
		"environment": map[string]any{
			"nextcloud_version": s.state.Nextcloud.Version,
		},
	}

	_ = response.SyncResponse(resp).Render(w)
}
