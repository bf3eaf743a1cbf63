// README: API gateway; wires the router into an http.Server.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"tollsim/internal/modules/tracking"
	"tollsim/internal/realtime"
)

const shutdownTimeout = 5 * time.Second

type ServerDeps struct {
	Tracking *tracking.Service
	Feed     *realtime.Hub
}

type Server struct {
	tracking *tracking.Service
	feed     *realtime.Hub
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		tracking: deps.Tracking,
		feed:     deps.Feed,
	}
}

func (s *Server) Routes() http.Handler {
	return NewRouter(s.tracking, s.feed)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Routes()}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
