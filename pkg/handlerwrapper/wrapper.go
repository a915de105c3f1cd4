// Package handlerwrapper adapts typed event handlers to watermill handler funcs.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/scorebook/pkg/observability/attr"
	"github.com/Black-And-White-Club/scorebook/pkg/observability/metrics"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/trace"
)

// TopicMetadataKey names the metadata field the event bus publishes to when the router
// hands it an empty topic.
const TopicMetadataKey = "topic"

// ReplyToMetadataKey carries a request/reply subject set by the caller.
const ReplyToMetadataKey = "reply_to"

type ctxKey string

// CtxKeyReplyTo exposes the incoming reply_to metadata to handlers.
const CtxKeyReplyTo ctxKey = "reply_to"

// Result is one outgoing event produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// WrapTransformingTyped decodes the message payload into T, runs handler and turns its
// results into messages addressed through the topic metadata key.
//
// Payloads that cannot be decoded are logged and acked. Handler errors nack the message.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	m metrics.OperationMetrics,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.NewNoop()
	}

	return func(msg *message.Message) ([]*message.Message, error) {
		start := time.Now()
		correlationID := middleware.MessageCorrelationID(msg)
		if correlationID == "" {
			correlationID = msg.UUID
		}

		ctx := attr.WithCorrelationID(msg.Context(), correlationID)
		if rt := msg.Metadata.Get(ReplyToMetadataKey); rt != "" {
			ctx = context.WithValue(ctx, CtxKeyReplyTo, rt)
		}
		if tracer != nil {
			var span trace.Span
			ctx, span = tracer.Start(ctx, handlerName)
			defer span.End()
		}

		m.RecordOperationAttempt(ctx, handlerName, "handler")
		defer func() {
			m.RecordOperationDuration(ctx, handlerName, "handler", time.Since(start))
		}()

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.WarnContext(ctx, "Dropping undecodable message",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			m.RecordOperationFailure(ctx, handlerName, "handler")
			return nil, nil
		}

		results, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Handler returned error",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(err),
			)
			m.RecordOperationFailure(ctx, handlerName, "handler")
			return nil, fmt.Errorf("%s: %w", handlerName, err)
		}

		out := make([]*message.Message, 0, len(results))
		for _, r := range results {
			outMsg, err := NewMessage(ctx, r)
			if err != nil {
				m.RecordOperationFailure(ctx, handlerName, "handler")
				return nil, fmt.Errorf("%s: %w", handlerName, err)
			}
			out = append(out, outMsg)
		}

		m.RecordOperationSuccess(ctx, handlerName, "handler")
		return out, nil
	}
}

// NewMessage marshals r into a watermill message carrying the correlation id from ctx.
func NewMessage(ctx context.Context, r Result) (*message.Message, error) {
	if r.Topic == "" {
		return nil, fmt.Errorf("result has no topic")
	}
	body, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload for %s: %w", r.Topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	for k, v := range r.Metadata {
		msg.Metadata.Set(k, v)
	}
	msg.Metadata.Set(TopicMetadataKey, r.Topic)
	if id := attr.CorrelationIDFromContext(ctx); id != "" {
		middleware.SetCorrelationID(id, msg)
	}
	return msg, nil
}
