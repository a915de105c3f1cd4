package main

import (
	"fmt"
	"time"

	leaguequeue "github.com/Black-And-White-Club/scorebook/app/modules/league/infrastructure/queue"
	"github.com/Black-And-White-Club/scorebook/pkg/observability"
	"github.com/Black-And-White-Club/scorebook/pkg/seasondate"
	"github.com/urfave/cli/v2"
)

func seasonCommand() *cli.Command {
	return &cli.Command{
		Name:  "season",
		Usage: "manage league seasons",
		Subcommands: []*cli.Command{
			{
				Name:  "start",
				Usage: "start a new season for a league",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "league", Required: true, Usage: "league id"},
					&cli.StringFlag{Name: "name", Required: true, Usage: "season name"},
					&cli.StringFlag{Name: "start", Value: "next monday", Usage: `first day, e.g. "2026-11-02" or "next monday"`},
					&cli.StringFlag{Name: "timezone", Usage: "zone the start date is read in (default UTC)"},
					&cli.IntFlag{Name: "weeks", Value: 10, Usage: "number of weeks"},
				},
				Action: withSession(func(c *cli.Context, s *cliSession) error {
					leagueID, err := uuidFlag(c, "league")
					if err != nil {
						return err
					}
					parser, err := seasondate.NewParser(c.String("timezone"), nil)
					if err != nil {
						return err
					}
					start, err := parser.Parse(c.String("start"))
					if err != nil {
						return err
					}

					season, err := s.service.StartSeason(c.Context, leagueID, c.String("name"), start, c.Int("weeks"))
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Started season %s (%s) on %s for %d weeks\n",
						season.Name, season.ID, season.StartDate.Format(time.DateOnly), season.WeeksDuration)
					return nil
				}),
			},
			{
				Name:  "advance",
				Usage: "move a season to its next week",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "season", Required: true, Usage: "season id"},
				},
				Action: withSession(func(c *cli.Context, s *cliSession) error {
					seasonID, err := uuidFlag(c, "season")
					if err != nil {
						return err
					}
					season, err := s.service.AdvanceWeek(c.Context, seasonID)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Season %s is at week %d (%s)\n", season.ID, season.CurrentWeek, season.Status)
					return nil
				}),
			},
			{
				Name:  "end",
				Usage: "complete a season",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "season", Required: true, Usage: "season id"},
				},
				Action: withSession(func(c *cli.Context, s *cliSession) error {
					seasonID, err := uuidFlag(c, "season")
					if err != nil {
						return err
					}
					season, err := s.service.EndSeason(c.Context, seasonID)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Season %s is %s\n", season.ID, season.Status)
					return nil
				}),
			},
			{
				Name:  "rollover",
				Usage: "enqueue an immediate week rollover for every active season",
				Action: withSession(func(c *cli.Context, s *cliSession) error {
					queue, err := leaguequeue.NewService(c.Context, s.cfg.Postgres.DSN, s.service,
						rolloverInterval(s.cfg.League.WeekRolloverInterval), s.logger, observability.NewNoop().Registry.QueueMetrics)
					if err != nil {
						return err
					}
					defer func() { _ = queue.Stop(c.Context) }()

					if err := queue.TriggerRollover(c.Context); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "Week rollover enqueued")
					return nil
				}),
			},
		},
	}
}

// rolloverInterval keeps the periodic job valid when the server runs without one.
func rolloverInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return 7 * 24 * time.Hour
	}
	return d
}
