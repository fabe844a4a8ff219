// Package schedule downloads and normalizes a season's game results from
// pro-football-reference.com: one row per game with the final score,
// yardage, and turnovers attributed to the winner and loser roles the way
// the source reports them. Reattribution to home/away roles happens later,
// when the schedule is joined with the betting lines.
package schedule

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/nfl-spreads/internal/fetch"
	"github.com/pfrederiksen/nfl-spreads/internal/htmltable"
	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
)

const seasonURLTemplate = "http://www.pro-football-reference.com/years/%d/games.htm"

// SeasonGamesURL calculates the URL for the games in the season starting
// in year.
func SeasonGamesURL(year int) string {
	return fmt.Sprintf(seasonURLTemplate, year)
}

var gamesLocator = htmltable.Locator{ID: "games"}

// The schedule spells playoff rounds with its own labels.
var roundLabels = map[string]string{
	"WildCard":  nfl.WildCard,
	"Division":  nfl.Divisional,
	"ConfChamp": nfl.Conference,
	"SuperBowl": nfl.SuperBowl,
}

// Game is one normalized schedule row. Winner always equals Home or Away;
// the statistic fields follow the source's winner/loser attribution.
type Game struct {
	Week   nfl.Week
	Season int
	Date   time.Time

	Home   string
	Away   string
	Winner string

	WinnerPoints    int
	LoserPoints     int
	WinnerYards     int
	LoserYards      int
	WinnerTurnovers int
	LoserTurnovers  int
}

// SeasonGames downloads, parses, and cleans the table of games and scores
// for the season starting in year.
func SeasonGames(ctx context.Context, f fetch.Fetcher, year int) ([]Game, error) {
	page, err := f.Fetch(ctx, SeasonGamesURL(year))
	if err != nil {
		return nil, err
	}
	doc, err := htmltable.Parse(page)
	if err != nil {
		return nil, err
	}
	table, err := htmltable.Find(doc, gamesLocator)
	if err != nil {
		return nil, err
	}
	return parseSeason(table, year)
}

type seasonColumns struct {
	week, date, winner, marker, loser int
	ptsW, ptsL, ydsW, ydsL, toW, toL  int
}

func findColumns(table htmltable.Table) (seasonColumns, error) {
	var cols seasonColumns
	var err error
	for _, c := range []struct {
		name string
		dest *int
	}{
		{"Week", &cols.week},
		{"Date", &cols.date},
		{"Winner/tie", &cols.winner},
		{"Loser/tie", &cols.loser},
		{"PtsW", &cols.ptsW},
		{"PtsL", &cols.ptsL},
		{"YdsW", &cols.ydsW},
		{"YdsL", &cols.ydsL},
		{"TOW", &cols.toW},
		{"TOL", &cols.toL},
	} {
		if *c.dest, err = table.Column(c.name); err != nil {
			return cols, err
		}
	}

	// Two columns have blank headers: an always-blank one before the
	// winner and the venue marker between winner and loser. Only the
	// marker matters.
	cols.marker = -1
	for i, h := range table.Header {
		if h == "" && i > cols.winner && i < cols.loser {
			cols.marker = i
			break
		}
	}
	if cols.marker == -1 {
		return cols, fmt.Errorf("no venue marker column in header %v", table.Header)
	}
	return cols, nil
}

// parseSeason normalizes the raw schedule table. Unlike the betting-line
// tables, missing statistics are not expected here: any cell that fails to
// parse is a fatal error.
func parseSeason(table htmltable.Table, year int) ([]Game, error) {
	cols, err := findColumns(table)
	if err != nil {
		return nil, err
	}

	games := make([]Game, 0, len(table.Rows))
	for _, row := range table.Rows {
		weekLabel := table.Cell(row, cols.week)
		// Mid-table repeats of the header row and spacer rows.
		if weekLabel == "Week" || weekLabel == "" {
			continue
		}
		week, err := parseWeekLabel(weekLabel)
		if err != nil {
			return nil, err
		}

		date, err := parseGameDate(table.Cell(row, cols.date), year)
		if err != nil {
			return nil, err
		}

		winner, err := nfl.TeamFromCell(table.Cell(row, cols.winner))
		if err != nil {
			return nil, err
		}
		loser, err := nfl.TeamFromCell(table.Cell(row, cols.loser))
		if err != nil {
			return nil, err
		}

		g := Game{Week: week, Season: year, Date: date, Winner: winner}

		// The marker column holds "@" exactly when the listed winner was
		// the away team.
		if table.Cell(row, cols.marker) == "@" {
			g.Home, g.Away = loser, winner
		} else {
			g.Home, g.Away = winner, loser
		}

		for _, c := range []struct {
			idx  int
			dest *int
		}{
			{cols.ptsW, &g.WinnerPoints},
			{cols.ptsL, &g.LoserPoints},
			{cols.ydsW, &g.WinnerYards},
			{cols.ydsL, &g.LoserYards},
			{cols.toW, &g.WinnerTurnovers},
			{cols.toL, &g.LoserTurnovers},
		} {
			v, err := strconv.Atoi(table.Cell(row, c.idx))
			if err != nil {
				return nil, fmt.Errorf("parsing statistic for %s vs %s: %w", winner, loser, err)
			}
			*c.dest = v
		}

		games = append(games, g)
	}
	return games, nil
}

func parseWeekLabel(label string) (nfl.Week, error) {
	if round, ok := roundLabels[label]; ok {
		return nfl.WeekRound(round), nil
	}
	return nfl.ParseWeek(label)
}

// parseGameDate reconstructs a game date from a "Month D" cell, which
// omits the year. January and February games belong to the calendar year
// after the season year.
func parseGameDate(cell string, seasonYear int) (time.Time, error) {
	d, err := time.Parse("January 2, 2006", fmt.Sprintf("%s, %d", strings.TrimSpace(cell), seasonYear))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing game date %q: %w", cell, err)
	}
	if y := nfl.GameYear(seasonYear, d.Month()); y != d.Year() {
		d = time.Date(y, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return d, nil
}
