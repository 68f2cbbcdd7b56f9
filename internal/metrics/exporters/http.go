// Package exporters serves metrics over HTTP.
package exporters

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smazurov/gpioblink/internal/logging"
)

// HTTPHandler returns the Prometheus metrics HTTP handler.
// This collects all promauto-registered metrics automatically.
func HTTPHandler() http.Handler {
	return promhttp.Handler()
}

// Server exposes /metrics on a listen address.
type Server struct {
	srv    *http.Server
	ln     net.Listener
	logger logging.Logger
}

// Serve starts serving /metrics on addr in the background.
func Serve(addr string, logger logging.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", HTTPHandler())

	s := &Server{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:     ln,
		logger: logger,
	}

	go func() {
		if serveErr := s.srv.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("Metrics server stopped", "error", serveErr)
		}
	}()
	logger.Info("Metrics server listening", "addr", ln.Addr().String())
	return s, nil
}

// Addr returns the bound address, useful when addr used port 0.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Shutdown stops the server, waiting for in-flight scrapes until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
