package tournamentservice

import (
	"context"

	tournamentdomain "github.com/Black-And-White-Club/scorebook/app/modules/tournament/domain"
	"github.com/google/uuid"
)

// Service defines the contract for tournament operations.
type Service interface {
	// CreateTournament seeds a bracket from a completed season's standings. maxSeeds <= 0
	// seeds the whole roster; an empty name defaults to "<season> Playoffs".
	CreateTournament(ctx context.Context, seasonID uuid.UUID, name string, maxSeeds int) (tournamentdomain.Bracket, error)
	// RecordGame credits one game of a bracket series and advances the bracket.
	RecordGame(ctx context.Context, matchID, winnerID uuid.UUID) (GameRecorded, error)
	GetBracket(ctx context.Context, tournamentID uuid.UUID) (tournamentdomain.Bracket, error)
	ListTournaments(ctx context.Context, leagueID uuid.UUID) ([]tournamentdomain.Tournament, error)
	SeasonLeague(ctx context.Context, seasonID uuid.UUID) (uuid.UUID, error)
	MatchLeague(ctx context.Context, matchID uuid.UUID) (uuid.UUID, error)
}

var _ Service = (*TournamentService)(nil)
