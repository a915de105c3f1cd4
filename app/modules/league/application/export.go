package leagueservice

import (
	"context"
	"fmt"
	"io"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const standingsSheet = "Standings"

var standingsHeader = []any{"Rank", "Player", "Wins", "Losses", "Played", "Win %"}

// ExportStandings writes the standings as an XLSX workbook to w.
func (s *LeagueService) ExportStandings(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID, w io.Writer) error {
	standings, err := s.GetStandings(ctx, leagueID, seasonID)
	if err != nil {
		return err
	}
	return WriteStandingsXLSX(standings, w)
}

// WriteStandingsXLSX renders one row per entry under a bold header row.
func WriteStandingsXLSX(standings []leaguedomain.LeaderboardEntry, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", standingsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := standingsHeader
	if err := f.SetSheetRow(standingsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(standingsSheet, "A1", "F1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, e := range standings {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.Rank, displayName(e), e.Wins, e.Losses, e.GamesPlayed, e.WinPercentage}
		if err := f.SetSheetRow(standingsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(standingsSheet, "B", "B", 28); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
