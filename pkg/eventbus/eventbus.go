// Package eventbus defines the publish/subscribe surface modules depend on.
package eventbus

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// TopicMetadataKey is read when a message is published with an empty topic.
const TopicMetadataKey = "topic"

// EventBus is a watermill publisher and subscriber that can provision its streams.
type EventBus interface {
	message.Publisher
	message.Subscriber
	CreateStream(ctx context.Context, streamName string) error
}

// PublishByMetadata publishes each message to the topic named in its metadata. It backs
// routers that register handlers with an empty publish topic.
func PublishByMetadata(pub message.Publisher, messages ...*message.Message) error {
	for _, msg := range messages {
		topic := msg.Metadata.Get(TopicMetadataKey)
		if topic == "" {
			return fmt.Errorf("message %s has no topic metadata", msg.UUID)
		}
		if err := pub.Publish(topic, msg); err != nil {
			return fmt.Errorf("failed to publish %s: %w", topic, err)
		}
	}
	return nil
}
