package leagueservice

import (
	"bytes"
	"context"
	"fmt"

	leaguedomain "github.com/Black-And-White-Club/scorebook/app/modules/league/domain"
	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors used by rendered charts.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	Text       drawing.Color
}

// DefaultChartPalette is a light theme.
var DefaultChartPalette = ChartPalette{
	Background: drawing.ColorWhite,
	Bar:        drawing.ColorFromHex("2f6f4f"),
	Text:       drawing.ColorFromHex("222222"),
}

// StandingsChart renders the standings as a PNG bar chart of win percentage.
func (s *LeagueService) StandingsChart(ctx context.Context, leagueID uuid.UUID, seasonID *uuid.UUID) ([]byte, error) {
	standings, err := s.GetStandings(ctx, leagueID, seasonID)
	if err != nil {
		return nil, err
	}
	return GenerateStandingsChart(standings, DefaultChartPalette)
}

// GenerateStandingsChart draws one bar per leaderboard entry in rank order. An empty
// standings list yields a single blank bar labeled "No standings yet".
func GenerateStandingsChart(standings []leaguedomain.LeaderboardEntry, palette ChartPalette) ([]byte, error) {
	title := "Win %"
	bars := make([]chart.Value, 0, max(len(standings), 1))
	for _, e := range standings {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%d. %s", e.Rank, displayName(e)),
			Value: e.WinPercentage,
			Style: chart.Style{
				FillColor:   palette.Bar,
				StrokeColor: palette.Bar,
			},
		})
	}
	if len(bars) == 0 {
		// BarChart refuses to render without bars.
		title = "No standings yet"
		bars = append(bars, chart.Value{
			Label: title,
			Style: chart.Style{
				FillColor:   palette.Background,
				StrokeColor: palette.Background,
			},
		})
	}

	graph := chart.BarChart{
		Title:      title,
		TitleStyle: chart.Style{FontColor: palette.Text},
		Width:      max(400, 90*len(bars)),
		Height:     420,
		BarWidth:   50,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{FillColor: palette.Background},
		XAxis:  chart.Style{FontColor: palette.Text},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.Text},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}

	var buffer bytes.Buffer
	if err := graph.Render(chart.PNG, &buffer); err != nil {
		return nil, fmt.Errorf("failed to render standings chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func displayName(e leaguedomain.LeaderboardEntry) string {
	return leaguedomain.Player{GivenName: e.GivenName, Surname: e.Surname}.DisplayName()
}
