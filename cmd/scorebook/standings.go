package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"
)

func standingsCommand() *cli.Command {
	leagueFlags := []cli.Flag{
		&cli.StringFlag{Name: "league", Required: true, Usage: "league id"},
		&cli.StringFlag{Name: "season", Usage: "restrict to one season"},
	}

	return &cli.Command{
		Name:  "standings",
		Usage: "league standings",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the standings table",
				Flags: leagueFlags,
				Action: withSession(func(c *cli.Context, s *cliSession) error {
					leagueID, err := uuidFlag(c, "league")
					if err != nil {
						return err
					}
					seasonID, err := optionalUUIDFlag(c, "season")
					if err != nil {
						return err
					}
					standings, err := s.service.GetStandings(c.Context, leagueID, seasonID)
					if err != nil {
						return err
					}

					tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "RANK\tPLAYER\tW\tL\tGP\tWIN%")
					for _, e := range standings {
						fmt.Fprintf(tw, "%d\t%s %s\t%d\t%d\t%d\t%.1f\n",
							e.Rank, e.GivenName, e.Surname, e.Wins, e.Losses, e.GamesPlayed, e.WinPercentage)
					}
					return tw.Flush()
				}),
			},
			{
				Name:  "export",
				Usage: "write the standings to an XLSX workbook",
				Flags: append(leagueFlags,
					&cli.StringFlag{Name: "out", Value: "standings.xlsx", Usage: "output file"},
				),
				Action: withSession(func(c *cli.Context, s *cliSession) error {
					leagueID, err := uuidFlag(c, "league")
					if err != nil {
						return err
					}
					seasonID, err := optionalUUIDFlag(c, "season")
					if err != nil {
						return err
					}

					f, err := os.Create(c.String("out"))
					if err != nil {
						return fmt.Errorf("failed to create %s: %w", c.String("out"), err)
					}
					if err := s.service.ExportStandings(c.Context, leagueID, seasonID, f); err != nil {
						_ = f.Close()
						return err
					}
					if err := f.Close(); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Wrote %s\n", c.String("out"))
					return nil
				}),
			},
		},
	}
}
