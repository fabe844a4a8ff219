// Package dataset assembles the final table: it fans the per-game
// betting-line fetches of a season out across a bounded worker pool, joins
// the results with the season schedule on (home, away, week), and
// re-expresses every statistic and market quote relative to the home team.
package dataset
