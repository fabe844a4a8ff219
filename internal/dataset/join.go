package dataset

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
	"github.com/pfrederiksen/nfl-spreads/internal/odds"
	"github.com/pfrederiksen/nfl-spreads/internal/schedule"
)

// Row is one row of the final home-team-centric table: one market quote of
// one game, with every statistic expressed in home/away roles and every
// spread re-signed so negative means the home team is favored.
type Row struct {
	Home     string
	Away     string
	Week     nfl.Week
	Season   int
	GameDate time.Time

	PointsHome     int
	PointsAway     int
	YardsHome      int
	YardsAway      int
	TurnoversHome  int
	TurnoversAway  int

	// Quote is the movement row with home-relative spread signs. Its Time
	// is the quote timestamp, distinct from GameDate.
	Quote odds.MovementRow

	// Discrepancy records that the schedule's venue orientation
	// disagreed with the odds source and the row follows the odds
	// source's confirmed orientation.
	Discrepancy bool
}

type gameKey struct {
	home, away string
	week       nfl.Week
}

func keyOf(g schedule.Game) gameKey {
	return gameKey{home: g.Home, away: g.Away, week: g.Week}
}

func countKeys(rows []Row) int {
	keys := make(map[gameKey]bool, len(rows))
	for _, r := range rows {
		keys[gameKey{home: r.Home, away: r.Away, week: r.Week}] = true
	}
	return len(keys)
}

// join merges the odds records onto the schedule on (home, away, week),
// producing one Row per movement row. A discrepancy-flagged record joins
// through the swapped key, and the whole row then follows the record's
// confirmed orientation.
func join(games []schedule.Game, records []*odds.Game) ([]Row, error) {
	byKey := make(map[gameKey]schedule.Game, len(games))
	for _, g := range games {
		byKey[keyOf(g)] = g
	}

	var rows []Row
	for _, rec := range records {
		key := gameKey{home: rec.Home, away: rec.Away, week: rec.Week}
		g, ok := byKey[key]
		if !ok && rec.Discrepancy {
			g, ok = byKey[gameKey{home: rec.Away, away: rec.Home, week: rec.Week}]
		}
		if !ok {
			return nil, fmt.Errorf("%w: no scheduled game for %s-%s %s", ErrIntegrity, rec.Home, rec.Away, rec.Week)
		}
		rows = append(rows, reorient(g, rec)...)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		if a.Week.Order() != b.Week.Order() {
			return a.Week.Order() < b.Week.Order()
		}
		if a.Home != b.Home {
			return a.Home < b.Home
		}
		if a.Away != b.Away {
			return a.Away < b.Away
		}
		return a.Quote.Time.Before(b.Quote.Time)
	})
	return rows, nil
}

// reorient converts one game's winner/loser statistics into home/away
// statistics and re-signs the spread quotes to the home team's point of
// view: unchanged when the home team is favored, negated when the away
// team is.
func reorient(g schedule.Game, rec *odds.Game) []Row {
	homeWon := rec.Home == g.Winner

	base := Row{
		Home:        rec.Home,
		Away:        rec.Away,
		Week:        rec.Week,
		Season:      g.Season,
		GameDate:    g.Date,
		Discrepancy: rec.Discrepancy,
	}
	if homeWon {
		base.PointsHome, base.PointsAway = g.WinnerPoints, g.LoserPoints
		base.YardsHome, base.YardsAway = g.WinnerYards, g.LoserYards
		base.TurnoversHome, base.TurnoversAway = g.WinnerTurnovers, g.LoserTurnovers
	} else {
		base.PointsHome, base.PointsAway = g.LoserPoints, g.WinnerPoints
		base.YardsHome, base.YardsAway = g.LoserYards, g.WinnerYards
		base.TurnoversHome, base.TurnoversAway = g.LoserTurnovers, g.WinnerTurnovers
	}

	awayFavored := rec.Favored == rec.Away

	rows := make([]Row, 0, len(rec.Rows))
	for _, quote := range rec.Rows {
		row := base
		row.Quote = quote
		if awayFavored {
			row.Quote.PinnacleSpread = negate(quote.PinnacleSpread)
			row.Quote.BetOnlineSpread = negate(quote.BetOnlineSpread)
			row.Quote.BookmakerSpread = negate(quote.BookmakerSpread)
		}
		rows = append(rows, row)
	}
	return rows
}

func negate(v float64) float64 {
	if math.IsNaN(v) || v == 0 {
		return v
	}
	return -v
}
