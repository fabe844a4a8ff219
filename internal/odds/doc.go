// Package odds downloads and normalizes the per-game betting-line history
// from teamrankings.com: the spread-movement and over-under-movement
// tables, joined on their quote timestamps, plus the favored team read off
// the page's sub-heading.
//
// Games are identified by home team, away team, week, and season year.
// When the caller does not know which team the site lists as home,
// GameEitherOrientation probes one orientation and retries once with the
// teams swapped.
package odds
