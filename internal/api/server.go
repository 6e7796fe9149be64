package api

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	httpapi "github.com/schemacraft/schemacraft/internal/api/http"
	"github.com/schemacraft/schemacraft/internal/logger"
)

// Server manages the HTTP API server and the backing document store
type Server struct {
	documents  DocumentBackend
	httpServer *httpapi.Server
	log        zerolog.Logger
	ready      bool
	mu         sync.RWMutex
}

// DocumentBackend is the lifecycle surface of the document store
type DocumentBackend interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Ready() bool
}

// Config holds configuration for the API server
type Config struct {
	HTTPAddr string
}

// NewServer creates a new API server
func NewServer(cfg Config, deps httpapi.Deps) *Server {
	return &Server{
		documents:  deps.Documents,
		httpServer: httpapi.NewServer(cfg.HTTPAddr, deps),
		log:        logger.WithComponent("api"),
	}
}

// Start starts the document store and the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	s.log.Info().Msg("Starting API server")

	if err := s.documents.Start(ctx); err != nil {
		return err
	}

	if err := s.httpServer.Start(ctx); err != nil {
		s.documents.Stop(ctx)
		return err
	}

	s.ready = true
	s.log.Info().Msg("API server started")

	return nil
}

// Stop gracefully stops the HTTP server and the document store
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return nil
	}

	s.log.Info().Msg("Stopping API server")

	if err := s.httpServer.Stop(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Error stopping HTTP server")
	}

	if err := s.documents.Stop(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Error stopping document store")
	}

	s.ready = false
	s.log.Info().Msg("API server stopped")

	return nil
}

// Ready returns true if the server is ready
func (s *Server) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready && s.httpServer.Ready() && s.documents.Ready()
}
