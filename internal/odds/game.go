package odds

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/nfl-spreads/internal/fetch"
	"github.com/pfrederiksen/nfl-spreads/internal/htmltable"
	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
)

// The spread page wraps its history table with id "table-000"; the
// over/under page distinguishes its history table only by cellspacing.
// Both carry three noise rows between the header and the data.
var (
	spreadLocator    = htmltable.Locator{ID: "table-000", Contains: "History", SkipRows: 3}
	overUnderLocator = htmltable.Locator{Attrs: map[string]string{"cellspacing": "0"}, Contains: "History", SkipRows: 3}
)

// Game is the normalized betting-line record for one game: the joined
// movement rows in chronological order plus the favored team.
//
// Favored always equals Home or Away. The spread quotes are expressed from
// the favored team's point of view, so they are generally non-positive.
type Game struct {
	Home string
	Away string
	Week nfl.Week
	Year int

	Favored string
	// Discrepancy is set by GameEitherOrientation when the requested
	// orientation had to be swapped to find the game.
	Discrepancy bool

	Rows []MovementRow
}

// FetchGame downloads, parses, and cleans the spread and over/under
// movement tables for one game with the given orientation.
//
// A zero-or-many table match surfaces htmltable.ErrCantFindTheRightTable
// and a broken favored landmark surfaces ErrFavoredNotFound; both mean the
// orientation hypothesis may be wrong. Transport errors pass through
// unwrapped by those sentinels.
func FetchGame(ctx context.Context, f fetch.Fetcher, home, away string, week nfl.Week, year int) (*Game, error) {
	spreadPage, err := f.Fetch(ctx, SpreadURL(home, away, week, year))
	if err != nil {
		return nil, err
	}
	spreadDoc, err := htmltable.Parse(spreadPage)
	if err != nil {
		return nil, err
	}
	spreadTable, err := htmltable.Find(spreadDoc, spreadLocator)
	if err != nil {
		return nil, err
	}
	spread, err := parseMovement(spreadTable, year)
	if err != nil {
		return nil, err
	}

	ouPage, err := f.Fetch(ctx, OverUnderURL(home, away, week, year))
	if err != nil {
		return nil, err
	}
	ouDoc, err := htmltable.Parse(ouPage)
	if err != nil {
		return nil, err
	}
	ouTable, err := htmltable.Find(ouDoc, overUnderLocator)
	if err != nil {
		return nil, err
	}
	overUnder, err := parseMovement(ouTable, year)
	if err != nil {
		return nil, err
	}

	rows, err := joinMovement(spread, overUnder)
	if err != nil {
		return nil, err
	}

	favored, err := favoredTeam(spreadDoc)
	if err != nil {
		return nil, err
	}
	if favored != home && favored != away {
		return nil, fmt.Errorf("%w: favored %q is neither %q nor %q",
			ErrFavoredNotFound, favored, home, away)
	}

	return &Game{
		Home:    home,
		Away:    away,
		Week:    week,
		Year:    year,
		Favored: favored,
		Rows:    rows,
	}, nil
}
