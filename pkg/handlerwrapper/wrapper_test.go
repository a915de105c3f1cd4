package handlerwrapper

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/Black-And-White-Club/scorebook/pkg/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type ping struct {
	Name string `json:"name"`
}

type pong struct {
	Greeting string `json:"greeting"`
}

func TestWrapTransformingTyped(t *testing.T) {
	tracer := noop.NewTracerProvider().Tracer("test")

	tests := []struct {
		name       string
		payload    []byte
		replyTo    string
		handler    func(ctx context.Context, p *ping) ([]Result, error)
		wantErr    bool
		wantTopics []string
		check      func(t *testing.T, out []*message.Message)
	}{
		{
			name:    "decodes payload and publishes results",
			payload: []byte(`{"name":"ada"}`),
			handler: func(ctx context.Context, p *ping) ([]Result, error) {
				return []Result{{
					Topic:    "ping.answered.v1",
					Payload:  pong{Greeting: "hi " + p.Name},
					Metadata: map[string]string{"league_id": "l1"},
				}}, nil
			},
			wantTopics: []string{"ping.answered.v1"},
			check: func(t *testing.T, out []*message.Message) {
				var got pong
				require.NoError(t, json.Unmarshal(out[0].Payload, &got))
				assert.Equal(t, "hi ada", got.Greeting)
				assert.Equal(t, "l1", out[0].Metadata.Get("league_id"))
				assert.Equal(t, "corr-1", middleware.MessageCorrelationID(out[0]))
			},
		},
		{
			name:    "undecodable payload is acked without output",
			payload: []byte(`{not json`),
			handler: func(ctx context.Context, p *ping) ([]Result, error) {
				t.Fatal("handler must not run")
				return nil, nil
			},
		},
		{
			name:    "handler error nacks",
			payload: []byte(`{"name":"ada"}`),
			handler: func(ctx context.Context, p *ping) ([]Result, error) {
				return nil, errors.New("db down")
			},
			wantErr: true,
		},
		{
			name:    "reply_to and correlation reach the handler context",
			payload: []byte(`{}`),
			replyTo: "inbox.42",
			handler: func(ctx context.Context, p *ping) ([]Result, error) {
				assert.Equal(t, "inbox.42", ctx.Value(CtxKeyReplyTo))
				assert.Equal(t, "corr-1", attr.CorrelationIDFromContext(ctx))
				return nil, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := message.NewMessage("m-1", tt.payload)
			middleware.SetCorrelationID("corr-1", msg)
			if tt.replyTo != "" {
				msg.Metadata.Set(ReplyToMetadataKey, tt.replyTo)
			}

			h := WrapTransformingTyped("TestHandler", slog.Default(), tracer, nil, tt.handler)
			out, err := h(msg)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, out, len(tt.wantTopics))
			for i, topic := range tt.wantTopics {
				assert.Equal(t, topic, out[i].Metadata.Get(TopicMetadataKey))
			}
			if tt.check != nil {
				tt.check(t, out)
			}
		})
	}
}

func TestNewMessageRequiresTopic(t *testing.T) {
	_, err := NewMessage(context.Background(), Result{Payload: pong{}})
	assert.Error(t, err)
}

func TestMessageUUIDBecomesCorrelationID(t *testing.T) {
	msg := message.NewMessage("m-7", []byte(`{"name":"x"}`))
	h := WrapTransformingTyped("TestHandler", nil, nil, nil, func(ctx context.Context, p *ping) ([]Result, error) {
		return []Result{{Topic: "t", Payload: p}}, nil
	})
	out, err := h(msg)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "m-7", middleware.MessageCorrelationID(out[0]))
}
