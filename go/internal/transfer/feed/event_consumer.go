package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcdev12/transfermarket/go/internal/transfer/events"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

// JetStreamConsumerConfig holds configuration for the JetStream consumer
type JetStreamConsumerConfig struct {
	URL           string
	StreamName    string
	ConsumerName  string
	SubjectFilter string
	MaxDeliver    int
	AckWait       time.Duration
	MaxAckPending int
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultJetStreamConsumerConfig returns default JetStream consumer configuration
func DefaultJetStreamConsumerConfig() JetStreamConsumerConfig {
	return JetStreamConsumerConfig{
		URL:           nats.DefaultURL,
		StreamName:    "TRANSFER_EVENTS",
		ConsumerName:  "market-feed",
		SubjectFilter: "transfer.events.>",
		MaxDeliver:    5,
		AckWait:       30 * time.Second,
		MaxAckPending: 100,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

// Broadcaster receives decoded market events
type Broadcaster interface {
	Broadcast(env events.Envelope)
}

// EventConsumer consumes transfer events from JetStream and broadcasts them
type EventConsumer struct {
	broadcaster Broadcaster
	nc          *nats.Conn
	js          jetstream.JetStream
	consumer    jetstream.Consumer
	config      JetStreamConsumerConfig
}

// NewEventConsumer connects to NATS and binds the durable consumer
func NewEventConsumer(b Broadcaster, config JetStreamConsumerConfig) (*EventConsumer, error) {
	opts := []nats.Option{
		nats.Name("transfer-market-feed"),
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	ec := &EventConsumer{
		broadcaster: b,
		nc:          nc,
		js:          js,
		config:      config,
	}
	if err := ec.ensureConsumer(context.Background()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure consumer: %w", err)
	}
	return ec, nil
}

func (ec *EventConsumer) ensureConsumer(ctx context.Context) error {
	stream, err := ec.js.Stream(ctx, ec.config.StreamName)
	if err != nil {
		return fmt.Errorf("get stream: %w", err)
	}

	consumer, err := stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Name:          ec.config.ConsumerName,
		Durable:       ec.config.ConsumerName,
		Description:   "Market feed WebSocket consumer",
		FilterSubject: ec.config.SubjectFilter,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    ec.config.MaxDeliver,
		AckWait:       ec.config.AckWait,
		MaxAckPending: ec.config.MaxAckPending,
		ReplayPolicy:  jetstream.ReplayInstantPolicy,
	})
	if err != nil {
		return fmt.Errorf("create consumer: %w", err)
	}

	log.Info().
		Str("consumer", ec.config.ConsumerName).
		Str("stream", ec.config.StreamName).
		Msg("bound JetStream consumer")
	ec.consumer = consumer
	return nil
}

// Start consumes until ctx is done
func (ec *EventConsumer) Start(ctx context.Context) error {
	log.Info().
		Str("consumer", ec.config.ConsumerName).
		Msg("starting JetStream event consumer")

	messageCh := make(chan jetstream.Msg, 100)
	consumeCtx, err := ec.consumer.Consume(func(msg jetstream.Msg) {
		select {
		case messageCh <- msg:
		case <-ctx.Done():
			_ = msg.Nak()
		}
	})
	if err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}
	defer consumeCtx.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("event consumer shutting down")
			return nil
		case msg := <-messageCh:
			env, err := DecodeEnvelope(msg.Data())
			if err != nil {
				// A malformed message will never decode; drop it.
				log.Error().Err(err).Str("subject", msg.Subject()).Msg("dropping undecodable event")
				if termErr := msg.Term(); termErr != nil {
					log.Error().Err(termErr).Msg("failed to TERM message")
				}
				continue
			}
			ec.broadcaster.Broadcast(env)
			if ackErr := msg.Ack(); ackErr != nil {
				log.Error().Err(ackErr).Msg("failed to ACK message")
			}
		}
	}
}

// DecodeEnvelope parses and validates a published market event
func DecodeEnvelope(data []byte) (events.Envelope, error) {
	var env events.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return events.Envelope{}, fmt.Errorf("unmarshal event envelope: %w", err)
	}
	if !env.EventType.Valid() {
		return events.Envelope{}, fmt.Errorf("unknown event type: %q", env.EventType)
	}
	return env, nil
}

// Stop closes the NATS connection
func (ec *EventConsumer) Stop() error {
	log.Info().Msg("stopping event consumer")
	if ec.nc != nil {
		ec.nc.Close()
	}
	return nil
}
