package eventbus

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/scorebook/pkg/eventbus"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// memoryEventBus runs the same routers in-process. Used when no NATS URL is configured
// and by handler tests.
type memoryEventBus struct {
	*gochannel.GoChannel
}

func NewMemoryEventBus(logger *slog.Logger) eventbus.EventBus {
	return &memoryEventBus{
		GoChannel: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 256,
		}, watermill.NewSlogLogger(logger)),
	}
}

func (b *memoryEventBus) Publish(topic string, messages ...*message.Message) error {
	if topic == "" {
		return eventbus.PublishByMetadata(b.GoChannel, messages...)
	}
	return b.GoChannel.Publish(topic, messages...)
}

// CreateStream is a no-op; topics need no provisioning in memory.
func (b *memoryEventBus) CreateStream(context.Context, string) error {
	return nil
}
