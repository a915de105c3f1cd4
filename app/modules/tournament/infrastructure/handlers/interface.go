package tournamenthandlers

import (
	"context"

	leagueevents "github.com/Black-And-White-Club/scorebook/pkg/events/league"
	tournamentevents "github.com/Black-And-White-Club/scorebook/pkg/events/tournament"
	"github.com/Black-And-White-Club/scorebook/pkg/handlerwrapper"
)

// Handlers defines the interface for tournament event handlers.
type Handlers interface {
	// HandleGameRecordRequested credits one bracket game reported on the bus.
	HandleGameRecordRequested(ctx context.Context, payload *tournamentevents.GameRecordRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleSeasonCompleted seeds the season's tournament when auto creation is on.
	HandleSeasonCompleted(ctx context.Context, payload *leagueevents.SeasonCompletedPayloadV1) ([]handlerwrapper.Result, error)
}
