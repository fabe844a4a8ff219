package odds

import (
	"fmt"

	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
)

const matchupURLTemplate = "http://www.teamrankings.com/nfl/matchup/%s-%s-%s-%d"

// SpreadURL calculates the spread-movement URL for the given game.
func SpreadURL(home, away string, week nfl.Week, year int) string {
	return matchupURL(home, away, week, year) + "/spread-movement"
}

// OverUnderURL calculates the over-under-movement URL for the given game.
func OverUnderURL(home, away string, week nfl.Week, year int) string {
	return matchupURL(home, away, week, year) + "/over-under-movement"
}

func matchupURL(home, away string, week nfl.Week, year int) string {
	return fmt.Sprintf(matchupURLTemplate, home, away, week.PathSegment(), year)
}
