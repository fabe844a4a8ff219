// Package cli implements the command-line interface for nfl-spreads.
//
// The cli package provides the Cobra-based CLI for building the spreads
// dataset: scope selection (season, week), config loading, flag
// overrides, and CSV output. It coordinates the fetch, schedule, odds,
// and dataset packages to scrape, join, and report the data.
package cli
