package devbackend

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/dmitrijs2005/nearbyconnect/internal/logging"
)

type Server struct {
	cfg     *Config
	logger  logging.Logger
	handler *Handler
}

func NewServer(cfg *Config, logger logging.Logger, opts ...Option) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger.With("module", "http_server"),
		handler: NewHandler(cfg, logger, opts...),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.handler.Router()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGracePeriod)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
