package leagueapi

import (
	"time"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	"github.com/google/uuid"
)

type createLeagueRequest struct {
	Name     string `json:"name"`
	GameType string `json:"game_type"`
	Format   string `json:"format"`
}

type registerPlayerRequest struct {
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
}

type startSeasonRequest struct {
	Name          string    `json:"name"`
	StartDate     time.Time `json:"start_date"`
	WeeksDuration int       `json:"weeks_duration"`
}

type attendanceRequest struct {
	PlayerIDs []uuid.UUID `json:"player_ids"`
}

type recordMatchRequest struct {
	LeagueID     uuid.UUID            `json:"league_id"`
	SeasonID     *uuid.UUID           `json:"season_id,omitempty"`
	Week         *int                 `json:"week,omitempty"`
	IsMakeup     bool                 `json:"is_makeup"`
	Completed    bool                 `json:"completed"`
	Participants []participantRequest `json:"participants"`
}

type participantRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
	Winner   bool      `json:"winner"`
}

type completeMatchRequest struct {
	WinnerIDs []uuid.UUID `json:"winner_ids"`
}

type leagueResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	GameType string    `json:"game_type"`
	Format   string    `json:"format"`
}

type playerResponse struct {
	ID          uuid.UUID `json:"id"`
	GivenName   string    `json:"given_name"`
	Surname     string    `json:"surname"`
	DisplayName string    `json:"display_name"`
}

type seasonResponse struct {
	ID            uuid.UUID `json:"id"`
	LeagueID      uuid.UUID `json:"league_id"`
	Name          string    `json:"name"`
	StartDate     time.Time `json:"start_date"`
	WeeksDuration int       `json:"weeks_duration"`
	CurrentWeek   int       `json:"current_week"`
	Status        string    `json:"status"`
}

type matchResponse struct {
	ID           uuid.UUID             `json:"id"`
	LeagueID     uuid.UUID             `json:"league_id"`
	SeasonID     *uuid.UUID            `json:"season_id,omitempty"`
	Week         *int                  `json:"week,omitempty"`
	IsMakeup     bool                  `json:"is_makeup"`
	Status       string                `json:"status"`
	Participants []participantResponse `json:"participants"`
	PlayedAt     time.Time             `json:"played_at"`
}

type participantResponse struct {
	PlayerID uuid.UUID `json:"player_id"`
	Winner   bool      `json:"winner"`
}

type pairingResponse struct {
	PlayerID     uuid.UUID `json:"player_id"`
	PlayerName   string    `json:"player_name"`
	OpponentID   uuid.UUID `json:"opponent_id"`
	OpponentName string    `json:"opponent_name"`
	Week         int       `json:"week"`
	IsMakeup     bool      `json:"is_makeup"`
}

func toLeagueResponse(l leaguedomain.League) leagueResponse {
	return leagueResponse{ID: l.ID, Name: l.Name, GameType: string(l.GameType), Format: string(l.Format)}
}

func toPlayerResponse(p leaguedomain.Player) playerResponse {
	return playerResponse{ID: p.ID, GivenName: p.GivenName, Surname: p.Surname, DisplayName: p.DisplayName()}
}

func toSeasonResponse(s leaguedomain.Season) seasonResponse {
	return seasonResponse{
		ID:            s.ID,
		LeagueID:      s.LeagueID,
		Name:          s.Name,
		StartDate:     s.StartDate,
		WeeksDuration: s.WeeksDuration,
		CurrentWeek:   s.CurrentWeek,
		Status:        string(s.Status),
	}
}

func toMatchResponse(m leaguedomain.Match) matchResponse {
	out := matchResponse{
		ID:           m.ID,
		LeagueID:     m.LeagueID,
		SeasonID:     m.SeasonID,
		Week:         m.Week,
		IsMakeup:     m.IsMakeup,
		Status:       string(m.Status),
		Participants: make([]participantResponse, 0, len(m.Participants)),
		PlayedAt:     m.PlayedAt,
	}
	for _, p := range m.Participants {
		out.Participants = append(out.Participants, participantResponse{PlayerID: p.PlayerID, Winner: p.Winner})
	}
	return out
}

func toPairingResponses(pairings []leaguedomain.Pairing) []pairingResponse {
	out := make([]pairingResponse, 0, len(pairings))
	for _, p := range pairings {
		out = append(out, pairingResponse{
			PlayerID:     p.PlayerID,
			PlayerName:   p.PlayerName,
			OpponentID:   p.OpponentID,
			OpponentName: p.OpponentName,
			Week:         p.Week,
			IsMakeup:     p.IsMakeup,
		})
	}
	return out
}
