package leaguequeue

import "github.com/google/uuid"

const queueName = "league"

// WeekRolloverJob fans out one WeekAdvanceJob per active season.
type WeekRolloverJob struct{}

// Kind returns the job type identifier for River
func (WeekRolloverJob) Kind() string { return "league_week_rollover" }

// WeekAdvanceJob advances one season from FromWeek. A job whose season has already moved
// past FromWeek is a no-op, so retries and duplicates never skip a week.
type WeekAdvanceJob struct {
	SeasonID uuid.UUID `json:"season_id"`
	FromWeek int       `json:"from_week"`
}

// Kind returns the job type identifier for River
func (WeekAdvanceJob) Kind() string { return "league_week_advance" }
