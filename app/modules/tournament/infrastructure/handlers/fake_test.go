package tournamenthandlers

import (
	"context"

	tournamentservice "github.com/Black-And-White-Club/scorebook/app/modules/tournament/application"
	tournamentdomain "github.com/Black-And-White-Club/scorebook/app/modules/tournament/domain"
	"github.com/google/uuid"
)

type FakeTournamentService struct {
	calls []string

	CreateTournamentFunc func(ctx context.Context, seasonID uuid.UUID, name string, maxSeeds int) (tournamentdomain.Bracket, error)
	RecordGameFunc       func(ctx context.Context, matchID, winnerID uuid.UUID) (tournamentservice.GameRecorded, error)
}

func NewFakeTournamentService() *FakeTournamentService {
	return &FakeTournamentService{}
}

func (f *FakeTournamentService) CreateTournament(ctx context.Context, seasonID uuid.UUID, name string, maxSeeds int) (tournamentdomain.Bracket, error) {
	f.calls = append(f.calls, "CreateTournament")
	if f.CreateTournamentFunc != nil {
		return f.CreateTournamentFunc(ctx, seasonID, name, maxSeeds)
	}
	return tournamentdomain.Bracket{}, nil
}

func (f *FakeTournamentService) RecordGame(ctx context.Context, matchID, winnerID uuid.UUID) (tournamentservice.GameRecorded, error) {
	f.calls = append(f.calls, "RecordGame")
	if f.RecordGameFunc != nil {
		return f.RecordGameFunc(ctx, matchID, winnerID)
	}
	return tournamentservice.GameRecorded{}, nil
}

func (f *FakeTournamentService) GetBracket(ctx context.Context, tournamentID uuid.UUID) (tournamentdomain.Bracket, error) {
	f.calls = append(f.calls, "GetBracket")
	return tournamentdomain.Bracket{}, nil
}

func (f *FakeTournamentService) ListTournaments(ctx context.Context, leagueID uuid.UUID) ([]tournamentdomain.Tournament, error) {
	f.calls = append(f.calls, "ListTournaments")
	return nil, nil
}

func (f *FakeTournamentService) SeasonLeague(ctx context.Context, seasonID uuid.UUID) (uuid.UUID, error) {
	f.calls = append(f.calls, "SeasonLeague")
	return uuid.Nil, nil
}

func (f *FakeTournamentService) MatchLeague(ctx context.Context, matchID uuid.UUID) (uuid.UUID, error) {
	f.calls = append(f.calls, "MatchLeague")
	return uuid.Nil, nil
}

var _ tournamentservice.Service = (*FakeTournamentService)(nil)
