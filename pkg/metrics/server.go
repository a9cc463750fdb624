package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/proofmine/proofmine-console/pkg/logging"
)

// Server exposes a collector's metrics endpoint over HTTP. It is only
// started for long-running commands; one-shot commands never bind a port.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
}

// NewServer creates a metrics HTTP server on the given address
func NewServer(addr string, collector *Collector, logger logging.Logger) *Server {
	router := mux.NewRouter()
	router.Handle("/metrics", collector.Handler()).Methods(http.MethodGet)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start begins serving in the background. Listen errors other than a
// clean shutdown are logged, not returned.
func (s *Server) Start() {
	go func() {
		s.logger.Infof("Starting metrics server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorf("Metrics server failed: %v", err)
		}
	}()
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
