package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/agbru/grou/internal/logging"
)

// Server exposes a Prometheus recorder on /metrics.
type Server struct {
	srv    *http.Server
	logger logging.Logger
}

// NewServer builds a metrics server for p listening on addr.
func NewServer(addr string, p *Prometheus, logger logging.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", getOnly(p.Handler()))
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           securityHeaders(mux),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start listens on the configured address and serves in the background. It
// returns the bound address, which differs from the configured one when the
// port is 0.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return "", err
	}
	addr := ln.Addr().String()
	s.logger.Info("metrics server listening", logging.String("addr", addr))
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("metrics server stopped", err)
		}
	}()
	return addr, nil
}

// Shutdown stops the server, waiting for in-flight scrapes until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func getOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
