package leagueservice

import (
	"github.com/google/uuid"
)

// RecordMatchCommand describes a match to append to the league history.
//
// SeasonID is optional. When it is set and Week is nil the match is filed under the
// season's current week. IsMakeup matches carry the missed week in Week.
type RecordMatchCommand struct {
	LeagueID  uuid.UUID
	SeasonID  *uuid.UUID
	Week      *int
	IsMakeup  bool
	Completed bool
	PlayerIDs []uuid.UUID
	WinnerIDs []uuid.UUID
}
