package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pfrederiksen/nfl-spreads/internal/dataset"
)

// csvHeader is the output column order. The home_away_discrepency
// spelling is kept as-is for compatibility with existing consumers of
// the dataset.
var csvHeader = []string{
	"hometeam",
	"awayteam",
	"week",
	"season",
	"game_date",
	"datetime",
	"points_home",
	"points_away",
	"yards_home",
	"yards_away",
	"turn_overs_home",
	"turn_overs_away",
	"pinnacle_spread",
	"betonline_spread",
	"bookmaker_spread",
	"pinnacle_over_under",
	"betonline_over_under",
	"bookmaker_over_under",
	"home_away_discrepency",
}

// WriteCSV writes the dataset rows as CSV, header first. Missing quotes
// (NaN) become empty cells.
func WriteCSV(w io.Writer, rows []dataset.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Home,
			r.Away,
			r.Week.String(),
			strconv.Itoa(r.Season),
			r.GameDate.Format("2006-01-02"),
			r.Quote.Time.Format("2006-01-02 15:04:05"),
			strconv.Itoa(r.PointsHome),
			strconv.Itoa(r.PointsAway),
			strconv.Itoa(r.YardsHome),
			strconv.Itoa(r.YardsAway),
			strconv.Itoa(r.TurnoversHome),
			strconv.Itoa(r.TurnoversAway),
			formatQuote(r.Quote.PinnacleSpread),
			formatQuote(r.Quote.BetOnlineSpread),
			formatQuote(r.Quote.BookmakerSpread),
			formatQuote(r.Quote.PinnacleOverUnder),
			formatQuote(r.Quote.BetOnlineOverUnder),
			formatQuote(r.Quote.BookmakerOverUnder),
			strconv.FormatBool(r.Discrepancy),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatQuote(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
