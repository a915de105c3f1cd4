package leaguehandlers

import (
	"context"

	leagueevents "github.com/Black-And-White-Club/scorebook/pkg/events/league"
	"github.com/Black-And-White-Club/scorebook/pkg/handlerwrapper"
)

// Handlers defines the interface for league event handlers.
type Handlers interface {
	// HandleMatchRecordRequested records a match reported on the bus.
	HandleMatchRecordRequested(ctx context.Context, payload *leagueevents.MatchRecordRequestedPayloadV1) ([]handlerwrapper.Result, error)

	// HandleStandingsRequested replies with the computed standings.
	HandleStandingsRequested(ctx context.Context, payload *leagueevents.StandingsRequestedPayloadV1) ([]handlerwrapper.Result, error)
}
