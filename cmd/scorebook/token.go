package main

import (
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/scorebook/pkg/jwt"
	"github.com/urfave/cli/v2"
)

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "API access tokens",
		Subcommands: []*cli.Command{
			{
				Name:  "issue",
				Usage: "print a signed token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Required: true, Usage: "who the token is for"},
					&cli.StringFlag{Name: "league", Usage: "limit the token to one league"},
					&cli.StringFlag{Name: "role", Value: string(jwt.RoleOrganizer), Usage: "organizer or viewer"},
					&cli.DurationFlag{Name: "ttl", Usage: "lifetime (default from config)"},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					if cfg.JWT.Secret == "" {
						return errors.New("JWT secret is not configured")
					}

					role := jwt.Role(c.String("role"))
					if role != jwt.RoleOrganizer && role != jwt.RoleViewer {
						return fmt.Errorf("unknown role %q", role)
					}

					token, err := jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL).
						GenerateToken(c.String("subject"), c.String("league"), role, c.Duration("ttl"))
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, token)
					return nil
				},
			},
		},
	}
}
