package tournamenthandlers

import (
	"context"
	"errors"
	"log/slog"

	tournamentservice "github.com/Black-And-White-Club/scorebook/app/modules/tournament/application"
	leagueevents "github.com/Black-And-White-Club/scorebook/pkg/events/league"
	tournamentevents "github.com/Black-And-White-Club/scorebook/pkg/events/tournament"
	"github.com/Black-And-White-Club/scorebook/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"go.opentelemetry.io/otel/trace"
)

// AutoTournament controls bracket creation when a season completes.
type AutoTournament struct {
	Enabled  bool
	MaxSeeds int
}

// TournamentHandlers implements the Handlers interface.
type TournamentHandlers struct {
	service tournamentservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	auto    AutoTournament
}

// NewTournamentHandlers creates a new TournamentHandlers instance.
func NewTournamentHandlers(
	service tournamentservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	auto AutoTournament,
) Handlers {
	return &TournamentHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		auto:    auto,
	}
}

// HandleGameRecordRequested records the game. The service publishes series and tournament
// completion; domain rejections are answered with game.record.failed.
func (h *TournamentHandlers) HandleGameRecordRequested(ctx context.Context, payload *tournamentevents.GameRecordRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleGameRecordRequested")
	defer span.End()

	recorded, err := h.service.RecordGame(ctx, payload.MatchID, payload.WinnerID)
	if err != nil {
		if results.IsFailure(err) {
			h.logger.WarnContext(ctx, "Bracket game rejected",
				slog.String("match_id", payload.MatchID.String()),
				slog.String("reason", err.Error()),
			)
			return []handlerwrapper.Result{{
				Topic: tournamentevents.GameRecordFailedV1,
				Payload: &tournamentevents.GameRecordFailedPayloadV1{
					MatchID: payload.MatchID,
					Reason:  err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	h.logger.InfoContext(ctx, "Bracket game recorded",
		slog.String("match_id", payload.MatchID.String()),
		slog.Int("player_a_wins", recorded.Outcome.Match.PlayerAWins),
		slog.Int("player_b_wins", recorded.Outcome.Match.PlayerBWins),
	)
	return nil, nil
}

// HandleSeasonCompleted creates the season's bracket. A season that already has one is
// left alone so redelivered events are harmless.
func (h *TournamentHandlers) HandleSeasonCompleted(ctx context.Context, payload *leagueevents.SeasonCompletedPayloadV1) ([]handlerwrapper.Result, error) {
	if !h.auto.Enabled {
		return nil, nil
	}

	ctx, span := h.tracer.Start(ctx, "TournamentHandlers.HandleSeasonCompleted")
	defer span.End()

	bracket, err := h.service.CreateTournament(ctx, payload.SeasonID, "", h.auto.MaxSeeds)
	if err != nil {
		if errors.Is(err, tournamentservice.ErrTournamentExists) {
			h.logger.InfoContext(ctx, "Season already has a tournament",
				slog.String("season_id", payload.SeasonID.String()),
			)
			return nil, nil
		}
		if results.IsFailure(err) {
			return []handlerwrapper.Result{{
				Topic: tournamentevents.TournamentCreateFailedV1,
				Payload: &tournamentevents.TournamentCreateFailedPayloadV1{
					SeasonID: payload.SeasonID,
					Reason:   err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	h.logger.InfoContext(ctx, "Tournament created for completed season",
		slog.String("season_id", payload.SeasonID.String()),
		slog.String("tournament_id", bracket.Tournament.ID.String()),
	)
	return nil, nil
}
