package eventbus

import (
	"context"
	"fmt"
	"log/slog"

	leagueevents "github.com/Black-And-White-Club/scorebook/pkg/events/league"
	tournamentevents "github.com/Black-And-White-Club/scorebook/pkg/events/tournament"
	"github.com/Black-And-White-Club/scorebook/pkg/eventbus"
)

// InitializeStreams provisions every stream the modules publish to during startup.
func InitializeStreams(ctx context.Context, bus eventbus.EventBus, logger *slog.Logger) error {
	streams := append(leagueevents.Streams(), tournamentevents.Streams()...)
	for _, name := range streams {
		if err := bus.CreateStream(ctx, name); err != nil {
			logger.ErrorContext(ctx, "Failed to create stream", slog.String("stream", name), slog.Any("error", err))
			return fmt.Errorf("failed to create stream %s: %w", name, err)
		}
	}
	return nil
}
