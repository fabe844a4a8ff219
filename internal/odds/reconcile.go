package odds

import (
	"context"
	"errors"

	"github.com/pfrederiksen/nfl-spreads/internal/fetch"
	"github.com/pfrederiksen/nfl-spreads/internal/htmltable"
	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
)

// GameEitherOrientation fetches a game when the home/away orientation is
// uncertain. It first tries teamA as the home team; if that fails because
// the table or the favored landmark could not be resolved (not on a
// transport failure), it retries exactly once with the teams swapped.
//
// The returned record carries the orientation that was confirmed by the
// source. When the swap was needed, Discrepancy is true: the requested
// orientation disagreed with the site's listing. A second failure
// propagates.
func GameEitherOrientation(ctx context.Context, f fetch.Fetcher, teamA, teamB string, week nfl.Week, year int) (*Game, error) {
	g, err := FetchGame(ctx, f, teamA, teamB, week, year)
	if err == nil {
		return g, nil
	}
	if !orientationError(err) {
		return nil, err
	}
	g, err = FetchGame(ctx, f, teamB, teamA, week, year)
	if err != nil {
		return nil, err
	}
	g.Discrepancy = true
	return g, nil
}

// orientationError reports whether err means "this home/away hypothesis
// may be wrong" rather than a transport problem.
func orientationError(err error) bool {
	return errors.Is(err, htmltable.ErrCantFindTheRightTable) ||
		errors.Is(err, ErrFavoredNotFound)
}
