package leaguehandlers

import (
	"context"
	"log/slog"

	leagueservice "github.com/Black-And-White-Club/scorebook/app/modules/league/application"
	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	leagueevents "github.com/Black-And-White-Club/scorebook/pkg/events/league"
	"github.com/Black-And-White-Club/scorebook/pkg/handlerwrapper"
	"github.com/Black-And-White-Club/scorebook/pkg/results"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// LeagueHandlers implements the Handlers interface.
type LeagueHandlers struct {
	service leagueservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewLeagueHandlers creates a new LeagueHandlers instance.
func NewLeagueHandlers(
	service leagueservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &LeagueHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// HandleMatchRecordRequested records the match. The service publishes match.recorded on
// success; domain rejections are answered with match.record.failed.
func (h *LeagueHandlers) HandleMatchRecordRequested(ctx context.Context, payload *leagueevents.MatchRecordRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeagueHandlers.HandleMatchRecordRequested")
	defer span.End()

	cmd := leagueservice.RecordMatchCommand{
		LeagueID:  payload.LeagueID,
		SeasonID:  payload.SeasonID,
		Week:      payload.Week,
		IsMakeup:  payload.IsMakeup,
		Completed: payload.Completed,
	}
	for _, p := range payload.Participants {
		cmd.PlayerIDs = append(cmd.PlayerIDs, p.PlayerID)
		if p.IsWinner {
			cmd.WinnerIDs = append(cmd.WinnerIDs, p.PlayerID)
		}
	}

	match, err := h.service.RecordMatch(ctx, cmd)
	if err != nil {
		if results.IsFailure(err) {
			h.logger.WarnContext(ctx, "Match record rejected",
				slog.String("league_id", payload.LeagueID.String()),
				slog.String("reason", err.Error()),
			)
			return []handlerwrapper.Result{{
				Topic: leagueevents.MatchRecordFailedV1,
				Payload: &leagueevents.MatchRecordFailedPayloadV1{
					LeagueID: payload.LeagueID,
					Reason:   err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	h.logger.InfoContext(ctx, "Match recorded from event",
		slog.String("league_id", payload.LeagueID.String()),
		slog.String("match_id", match.ID.String()),
	)
	return nil, nil
}

// HandleStandingsRequested answers on the caller's reply_to subject when one is set.
func (h *LeagueHandlers) HandleStandingsRequested(ctx context.Context, payload *leagueevents.StandingsRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := h.tracer.Start(ctx, "LeagueHandlers.HandleStandingsRequested")
	defer span.End()

	if payload.LeagueID == uuid.Nil {
		h.logger.WarnContext(ctx, "Standings request without league id")
		return nil, nil
	}

	standings, err := h.service.GetStandings(ctx, payload.LeagueID, payload.SeasonID)
	if err != nil {
		if results.IsFailure(err) {
			return []handlerwrapper.Result{{
				Topic: replyTopic(ctx, leagueevents.StandingsFailedV1),
				Payload: &leagueevents.StandingsFailedPayloadV1{
					LeagueID: payload.LeagueID,
					Reason:   err.Error(),
				},
			}}, nil
		}
		return nil, err
	}

	return []handlerwrapper.Result{{
		Topic: replyTopic(ctx, leagueevents.StandingsRetrievedV1),
		Payload: &leagueevents.StandingsRetrievedPayloadV1{
			LeagueID:  payload.LeagueID,
			SeasonID:  payload.SeasonID,
			Standings: StandingEntries(standings),
		},
	}}, nil
}

// StandingEntries converts leaderboard rows into their wire form.
func StandingEntries(standings []leaguedomain.LeaderboardEntry) []leagueevents.StandingEntryV1 {
	out := make([]leagueevents.StandingEntryV1, 0, len(standings))
	for _, e := range standings {
		out = append(out, leagueevents.StandingEntryV1{
			Rank:          e.Rank,
			PlayerID:      e.PlayerID,
			PlayerName:    leaguedomain.Player{GivenName: e.GivenName, Surname: e.Surname}.DisplayName(),
			Wins:          e.Wins,
			Losses:        e.Losses,
			MatchesPlayed: e.GamesPlayed,
			WinPercentage: e.WinPercentage,
		})
	}
	return out
}

// replyTopic prefers a dynamic reply_to subject over the static topic.
func replyTopic(ctx context.Context, fallback string) string {
	if rt, ok := ctx.Value(handlerwrapper.CtxKeyReplyTo).(string); ok && rt != "" {
		return rt
	}
	return fallback
}
