package nfl

import (
	"fmt"
	"strings"
)

// EarliestDataSeason is the first season for which both sources carry
// betting-line history.
const EarliestDataSeason = 2008

// Teams is the closed set of canonical team slugs, in alphabetical order.
var Teams = []string{
	"49ers", "bears", "bengals", "bills", "broncos", "browns", "buccaneers",
	"cardinals", "chargers", "chiefs", "colts", "cowboys", "dolphins", "eagles",
	"falcons", "giants", "jaguars", "jets", "lions", "packers", "panthers",
	"patriots", "raiders", "rams", "ravens", "redskins", "saints", "seahawks",
	"steelers", "texans", "titans", "vikings",
}

var teamSet = func() map[string]bool {
	m := make(map[string]bool, len(Teams))
	for _, t := range Teams {
		m[t] = true
	}
	return m
}()

// IsTeam reports whether slug is one of the 32 canonical team slugs.
func IsTeam(slug string) bool {
	return teamSet[slug]
}

// TeamFromCell reduces a "City Mascot" cell like "San Francisco 49ers" to
// its canonical slug. The mascot is always the last whitespace-delimited
// token and lowercases to the slug.
func TeamFromCell(cell string) (string, error) {
	fields := strings.Fields(cell)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty team cell")
	}
	slug := strings.ToLower(fields[len(fields)-1])
	if !IsTeam(slug) {
		return "", fmt.Errorf("unknown team %q in cell %q", slug, cell)
	}
	return slug, nil
}
