package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/scorebook/pkg/eventbus"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// natsEventBus is the JetStream-backed eventbus.EventBus.
type natsEventBus struct {
	publisher      message.Publisher
	subscriber     message.Subscriber
	js             jetstream.JetStream
	natsConn       *nc.Conn
	logger         *slog.Logger
	createdStreams map[string]bool
	streamMutex    sync.Mutex
}

// NewEventBus connects to NATS and returns a JetStream event bus. appType names the durable
// consumers and queue group so replicas of one service share deliveries.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger, appType string) (eventbus.EventBus, error) {
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(time.Second),
		nc.Name(appType),
	}

	natsConn, err := nc.Connect(natsURL, options...)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to connect to NATS", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	wmLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         natsURL,
			NatsOptions: options,
			Marshaler:   marshaler,
			JetStream: nats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
				TrackMsgId:    true,
			},
			SubjectCalculator: nats.DefaultSubjectCalculator,
		},
		wmLogger,
	)
	if err != nil {
		natsConn.Close()
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              natsURL,
			QueueGroupPrefix: appType,
			CloseTimeout:     30 * time.Second,
			AckWaitTimeout:   30 * time.Second,
			NatsOptions:      options,
			Unmarshaler:      marshaler,
			JetStream: nats.JetStreamConfig{
				Disabled:         false,
				AutoProvision:    false,
				DurablePrefix:    appType,
				SubscribeOptions: []nc.SubOpt{nc.DeliverAll(), nc.AckExplicit()},
			},
			SubjectCalculator: nats.DefaultSubjectCalculator,
		},
		wmLogger,
	)
	if err != nil {
		_ = publisher.Close()
		natsConn.Close()
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	return &natsEventBus{
		publisher:      publisher,
		subscriber:     subscriber,
		js:             js,
		natsConn:       natsConn,
		logger:         logger,
		createdStreams: make(map[string]bool),
	}, nil
}

// Publish sends messages to topic, or to each message's topic metadata when topic is empty.
func (eb *natsEventBus) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
	}
	if topic == "" {
		return eventbus.PublishByMetadata(eb.publisher, messages...)
	}
	if err := eb.publisher.Publish(topic, messages...); err != nil {
		eb.logger.Error("Failed to publish message", slog.String("topic", topic), slog.Any("error", err))
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (eb *natsEventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	eb.logger.InfoContext(ctx, "Subscribing to topic", slog.String("topic", topic))
	return eb.subscriber.Subscribe(ctx, topic)
}

// CreateStream provisions a stream named streamName covering streamName.> subjects.
func (eb *natsEventBus) CreateStream(ctx context.Context, streamName string) error {
	eb.streamMutex.Lock()
	defer eb.streamMutex.Unlock()

	if eb.createdStreams[streamName] {
		return nil
	}

	subject := streamName + ".>"
	stream, err := eb.js.Stream(ctx, streamName)
	switch {
	case errors.Is(err, jetstream.ErrStreamNotFound):
		if _, err := eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:      streamName,
			Subjects:  []string{subject},
			Retention: jetstream.LimitsPolicy,
			MaxAge:    7 * 24 * time.Hour,
		}); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}
		eb.logger.InfoContext(ctx, "Stream created", "stream_name", streamName, "subject", subject)
	case err != nil:
		return fmt.Errorf("failed to check if stream exists: %w", err)
	default:
		info, err := stream.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stream info: %w", err)
		}
		if !containsSubject(info.Config.Subjects, subject) {
			info.Config.Subjects = append(info.Config.Subjects, subject)
			if _, err := eb.js.UpdateStream(ctx, info.Config); err != nil {
				return fmt.Errorf("failed to update stream with new subject: %w", err)
			}
			eb.logger.InfoContext(ctx, "Stream updated with new subject", "stream_name", streamName, "subject", subject)
		}
	}

	eb.createdStreams[streamName] = true
	return nil
}

// Close closes all NATS and Watermill resources.
func (eb *natsEventBus) Close() error {
	var errs []error
	if eb.publisher != nil {
		if err := eb.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}
	if eb.subscriber != nil {
		if err := eb.subscriber.Close(); err != nil {
			errs = append(errs, fmt.Errorf("subscriber: %w", err))
		}
	}
	if eb.natsConn != nil {
		eb.natsConn.Close()
	}
	return errors.Join(errs...)
}

func containsSubject(subjects []string, subject string) bool {
	for _, s := range subjects {
		if s == subject {
			return true
		}
	}
	return false
}
