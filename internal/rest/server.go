// Package rest serves the charm's read-only introspection API over a local
// unix socket.
package rest

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/nextcloud-charmers/nextcloud-charm/internal/state"
)

// Server holds the internal state of the introspection API server.
type Server struct {
	socketPath string
	state      *state.State
}

// NewServer returns an introspection API server object.
func NewServer(_ context.Context, s *state.State, socketPath string) (*Server, error) {
	server := Server{
		socketPath: socketPath,
		state:      s,
	}

	// Create runtime path if missing.
	err := os.Mkdir(filepath.Dir(socketPath), 0o700)
	if err != nil && !os.IsExist(err) {
		return nil, err
	}

	return &server, nil
}

// Serve starts the introspection API server.
func (s *Server) Serve(ctx context.Context) error {
	// Setup listener.
	_ = os.Remove(s.socketPath)
	lc := &net.ListenConfig{}

	listener, err := lc.Listen(ctx, "unix", s.socketPath)
	if err != nil {
		return err
	}

	server := &http.Server{
		Handler: s.router(),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		_ = server.Close()
	}()

	return server.Serve(listener)
}

func (s *Server) router() http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("/", s.apiRoot)
	router.HandleFunc("/1.0", s.apiRoot10)
	router.HandleFunc("/1.0/state", s.apiState)

	return router
}
