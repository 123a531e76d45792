// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/vetfinder/internal/config"
	"github.com/MKhiriev/vetfinder/internal/logger"
)

// Server runs the emulator's HTTP server until a stop signal arrives.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

func NewServer(handler *Handler, cfg config.Server, logger *logger.Logger) *Server {
	logger.Info().Msg("creating new server...")
	return &Server{
		httpServer: NewHTTPServer(cfg.HTTPAddress, handler.Init(), cfg.RequestTimeout),
		logger:     logger,
	}
}

// Run serves requests and blocks until SIGTERM, SIGINT, or SIGQUIT, then
// shuts the server down gracefully.
func (s *Server) Run() error {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(idleConnectionsClosed)
	}()

	s.logger.Info().Str("address", s.httpServer.Addr).Msg("Launching HTTP server")
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("HTTP server ListenAndServe")
		}
	}()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}

func (s *Server) Shutdown() {
	if err := s.httpServer.Shutdown(context.Background()); err != nil {
		s.logger.Error().Err(err).Msg("HTTP server Shutdown")
	}
}
