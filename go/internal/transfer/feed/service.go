package feed

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Service wires the connection manager, handler and JetStream consumer
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	eventConsumer     *EventConsumer
}

// Config holds configuration for the market feed
type Config struct {
	ConnectionConfig ConnectionConfig
	JetStreamConfig  JetStreamConsumerConfig
}

// DefaultConfig returns default configuration for the market feed
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		JetStreamConfig:  DefaultJetStreamConsumerConfig(),
	}
}

// NewService creates a market feed bound to JetStream
func NewService(config Config) (*Service, error) {
	connectionManager := NewConnectionManager(config.ConnectionConfig)

	eventConsumer, err := NewEventConsumer(connectionManager, config.JetStreamConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create event consumer: %w", err)
	}

	return &Service{
		connectionManager: connectionManager,
		wsHandler:         NewWebSocketHandler(connectionManager),
		eventConsumer:     eventConsumer,
	}, nil
}

// Start runs the feed until ctx is done
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting market feed")

	go s.connectionManager.Start(ctx)
	go func() {
		if err := s.eventConsumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer failed")
		}
	}()

	<-ctx.Done()
	return s.Stop()
}

// Stop closes the consumer; the manager exits with its context.
func (s *Service) Stop() error {
	if err := s.eventConsumer.Stop(); err != nil {
		log.Error().Err(err).Msg("failed to stop event consumer")
	}
	log.Info().Msg("market feed stopped")
	return nil
}

// RegisterRoutes registers the feed routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	log.Info().Msg("market feed routes registered")
}

// GetStats returns connection statistics
func (s *Service) GetStats() Stats {
	return s.connectionManager.GetConnectionStats()
}
