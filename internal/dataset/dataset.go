package dataset

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/pfrederiksen/nfl-spreads/internal/fetch"
	"github.com/pfrederiksen/nfl-spreads/internal/logger"
	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
	"github.com/pfrederiksen/nfl-spreads/internal/odds"
	"github.com/pfrederiksen/nfl-spreads/internal/schedule"
)

// ErrIntegrity is returned when the joined table does not account for
// every requested game: a silent duplication or loss upstream, never a
// user error.
var ErrIntegrity = errors.New("joined game count mismatch")

// ErrDeadline marks per-game failures caused by the batch deadline
// elapsing before the game's fetch completed.
var ErrDeadline = errors.New("batch deadline exceeded")

// Failure records one game the fetcher could not retrieve, with its
// arguments so callers can retry or report it.
type Failure struct {
	Home string
	Away string
	Week nfl.Week
	Year int
	Err  error
}

func (f Failure) String() string {
	return fmt.Sprintf("(%s, %s, %s, %d): %v", f.Home, f.Away, f.Week, f.Year, f.Err)
}

// Options bound the season fetch.
type Options struct {
	// Week, when set, limits the fetch to the games of that week.
	Week *nfl.Week
	// Concurrency is the worker-pool width; zero means NumCPU.
	Concurrency int
	// Timeout, when positive, is a wall-clock deadline for the whole
	// batch. Games still in flight when it elapses are abandoned and
	// recorded as failures.
	Timeout time.Duration
}

func (o Options) concurrency() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return runtime.NumCPU()
}

// Season downloads, parses, joins, and reorients the scores and betting
// lines for all games in the season starting in year.
//
// Per-game failures do not abort their siblings; they come back in the
// failures list alongside whatever rows succeeded, and callers choose
// whether a non-empty list is fatal. The returned error is non-nil only
// for wholesale problems: the schedule itself failing, or the joined
// table failing the integrity check.
func Season(ctx context.Context, f fetch.Fetcher, year int, opts Options) ([]Row, []Failure, error) {
	games, err := schedule.SeasonGames(ctx, f, year)
	if err != nil {
		return nil, nil, fmt.Errorf("season %d schedule: %w", year, err)
	}
	if opts.Week != nil {
		filtered := games[:0]
		for _, g := range games {
			if g.Week == *opts.Week {
				filtered = append(filtered, g)
			}
		}
		games = filtered
	}

	logger.Debug("fetching season", logger.Fields{
		"year":        year,
		"games":       len(games),
		"concurrency": opts.concurrency(),
	})

	records, failures := fetchGames(ctx, f, games, opts)

	rows, err := join(games, records)
	if err != nil {
		return nil, failures, err
	}

	if distinct := countKeys(rows); distinct != len(games)-len(failures) {
		return nil, failures, fmt.Errorf("%w: expected %d games, got %d",
			ErrIntegrity, len(games)-len(failures), distinct)
	}
	return rows, failures, nil
}

// Seasons aggregates Season over multiple years, concatenating rows and
// failure lists.
func Seasons(ctx context.Context, f fetch.Fetcher, years []int, opts Options) ([]Row, []Failure, error) {
	var rows []Row
	var failures []Failure
	for _, year := range years {
		logger.Info("========== season ==========", logger.Fields{"year": year})
		r, fails, err := Season(ctx, f, year, opts)
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, r...)
		failures = append(failures, fails...)
	}
	return rows, failures, nil
}

type taskResult struct {
	game schedule.Game
	odds *odds.Game
	err  error
}

// fetchGames fans the per-game fetches out across a bounded worker pool.
// Tasks are independent; the only shared state is the results channel,
// consumed by this coordinator in completion order. Final ordering is
// re-established by the join key downstream, not by arrival order.
func fetchGames(ctx context.Context, f fetch.Fetcher, games []schedule.Game, opts Options) ([]*odds.Game, []Failure) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	jobs := make(chan schedule.Game, len(games))
	for _, g := range games {
		jobs <- g
	}
	close(jobs)

	results := make(chan taskResult, len(games))
	var wg sync.WaitGroup
	for i := 0; i < opts.concurrency(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for g := range jobs {
				start := time.Now()
				rec, err := odds.GameEitherOrientation(ctx, f, g.Home, g.Away, g.Week, g.Season)
				logger.RecordTiming("game.fetch", time.Since(start))
				results <- taskResult{game: g, odds: rec, err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var records []*odds.Game
	var failures []Failure
	collected := make(map[gameKey]bool, len(games))

collect:
	for range games {
		select {
		case res, ok := <-results:
			if !ok {
				break collect
			}
			collected[keyOf(res.game)] = true
			if res.err != nil {
				logger.Error("game failed", taskFields(res.game), res.err)
				logger.IncrCounter("games.failure")
				failures = append(failures, Failure{
					Home: res.game.Home, Away: res.game.Away,
					Week: res.game.Week, Year: res.game.Season,
					Err: res.err,
				})
				continue
			}
			logger.Info("game fetched", taskFields(res.game))
			logger.IncrCounter("games.success")
			records = append(records, res.odds)
		case <-ctx.Done():
			// Abandon the in-flight remainder. Workers drain on their
			// own; their late results land in the buffered channel and
			// are discarded.
			for _, g := range games {
				if !collected[keyOf(g)] {
					logger.IncrCounter("games.failure")
					failures = append(failures, Failure{
						Home: g.Home, Away: g.Away, Week: g.Week, Year: g.Season,
						Err: fmt.Errorf("%w: %v", ErrDeadline, ctx.Err()),
					})
				}
			}
			break collect
		}
	}
	return records, failures
}

func taskFields(g schedule.Game) logger.Fields {
	return logger.Fields{
		"hometeam": g.Home,
		"awayteam": g.Away,
		"week":     g.Week.String(),
		"season":   g.Season,
	}
}
