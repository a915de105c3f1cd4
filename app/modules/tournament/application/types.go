package tournamentservice

import tournamentdomain "github.com/Black-And-White-Club/scorebook/app/modules/tournament/domain"

// GameRecorded is the bracket after one game, with what the game changed.
type GameRecorded struct {
	Bracket tournamentdomain.Bracket
	Outcome tournamentdomain.GameOutcome
}
