package odds

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/nfl-spreads/internal/htmltable"
	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
)

// Source cells encode "no quote" and "pick'em" as literals rather than
// numbers.
const (
	missingSentinel = "--"
	pickSentinel    = "(Pick)"
)

// MovementRow is one timestamped row of the joined spread and over/under
// line history. A book that published no quote at that timestamp carries
// NaN; a pick'em line carries 0.
type MovementRow struct {
	Time time.Time

	PinnacleSpread  float64
	BetOnlineSpread float64
	BookmakerSpread float64

	PinnacleOverUnder  float64
	BetOnlineOverUnder float64
	BookmakerOverUnder float64
}

// quoteRow is one row of a single movement table before the spread and
// over/under sides are joined.
type quoteRow struct {
	Time      time.Time
	Pinnacle  float64
	BetOnline float64
	Bookmaker float64
}

// parseMovement normalizes one raw movement table: timestamps get the
// season year appended (rolling January and February into the next
// calendar year), sentinel strings become NaN or 0, everything else must
// parse as a float.
func parseMovement(table htmltable.Table, year int) ([]quoteRow, error) {
	cols, err := quoteColumns(table)
	if err != nil {
		return nil, err
	}
	rows := make([]quoteRow, 0, len(table.Rows))
	for _, raw := range table.Rows {
		ts, err := parseQuoteTime(table.Cell(raw, cols.timestamp), year)
		if err != nil {
			return nil, err
		}
		row := quoteRow{Time: ts}
		for _, c := range []struct {
			idx  int
			dest *float64
		}{
			{cols.pinnacle, &row.Pinnacle},
			{cols.betonline, &row.BetOnline},
			{cols.bookmaker, &row.Bookmaker},
		} {
			v, err := parseQuote(table.Cell(raw, c.idx))
			if err != nil {
				return nil, err
			}
			*c.dest = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type movementColumns struct {
	timestamp, pinnacle, betonline, bookmaker int
}

// quoteColumns resolves the table's columns by case-folded header name.
// The timestamp column has a blank header on both movement pages.
func quoteColumns(table htmltable.Table) (movementColumns, error) {
	cols := movementColumns{timestamp: -1, pinnacle: -1, betonline: -1, bookmaker: -1}
	for i, h := range table.Header {
		switch strings.ToLower(h) {
		case "":
			if cols.timestamp == -1 {
				cols.timestamp = i
			}
		case "pinnacle":
			cols.pinnacle = i
		case "betonline":
			cols.betonline = i
		case "bookmaker":
			cols.bookmaker = i
		}
	}
	if cols.timestamp == -1 || cols.pinnacle == -1 || cols.betonline == -1 || cols.bookmaker == -1 {
		return cols, fmt.Errorf("unexpected movement table header %v", table.Header)
	}
	return cols, nil
}

// parseQuoteTime reconstructs a timestamp from a "M/D h:mm AM" cell. The
// source omits the year; playoff games dated in January or February belong
// to the calendar year after the season year.
func parseQuoteTime(cell string, seasonYear int) (time.Time, error) {
	datePart, timePart, ok := strings.Cut(strings.TrimSpace(cell), " ")
	if !ok {
		return time.Time{}, fmt.Errorf("malformed quote timestamp %q", cell)
	}
	monthStr, _, ok := strings.Cut(datePart, "/")
	if !ok {
		return time.Time{}, fmt.Errorf("malformed quote timestamp %q", cell)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed quote timestamp %q: %w", cell, err)
	}
	year := nfl.GameYear(seasonYear, time.Month(month))
	ts, err := time.Parse("1/2/2006 3:04 PM", fmt.Sprintf("%s/%d %s", datePart, year, timePart))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing quote timestamp %q: %w", cell, err)
	}
	return ts, nil
}

// parseQuote coerces one quote cell: "--" is a true missing value, never
// zero; "(Pick)" is exactly zero.
func parseQuote(cell string) (float64, error) {
	switch cell {
	case missingSentinel:
		return math.NaN(), nil
	case pickSentinel:
		return 0, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing quote %q: %w", cell, err)
	}
	return v, nil
}

// joinMovement outer-joins the spread and over/under rows on timestamp.
// The joined timestamp set must equal the union of both sides; a duplicate
// timestamp within one side would break that and is a correctness bug in
// the normalizer, not a property of the source.
func joinMovement(spread, overUnder []quoteRow) ([]MovementRow, error) {
	joined := make(map[time.Time]*MovementRow, len(spread)+len(overUnder))
	at := func(ts time.Time) *MovementRow {
		row, ok := joined[ts]
		if !ok {
			row = &MovementRow{
				Time:               ts,
				PinnacleSpread:     math.NaN(),
				BetOnlineSpread:    math.NaN(),
				BookmakerSpread:    math.NaN(),
				PinnacleOverUnder:  math.NaN(),
				BetOnlineOverUnder: math.NaN(),
				BookmakerOverUnder: math.NaN(),
			}
			joined[ts] = row
		}
		return row
	}

	seen := make(map[time.Time]bool, len(spread))
	for _, q := range spread {
		if seen[q.Time] {
			return nil, fmt.Errorf("duplicate spread timestamp %v", q.Time)
		}
		seen[q.Time] = true
		row := at(q.Time)
		row.PinnacleSpread = q.Pinnacle
		row.BetOnlineSpread = q.BetOnline
		row.BookmakerSpread = q.Bookmaker
	}
	seen = make(map[time.Time]bool, len(overUnder))
	for _, q := range overUnder {
		if seen[q.Time] {
			return nil, fmt.Errorf("duplicate over/under timestamp %v", q.Time)
		}
		seen[q.Time] = true
		row := at(q.Time)
		row.PinnacleOverUnder = q.Pinnacle
		row.BetOnlineOverUnder = q.BetOnline
		row.BookmakerOverUnder = q.Bookmaker
	}

	rows := make([]MovementRow, 0, len(joined))
	for _, row := range joined {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Time.Before(rows[j].Time) })
	return rows, nil
}
