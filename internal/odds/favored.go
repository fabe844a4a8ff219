package odds

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrFavoredNotFound is returned when the favored-team landmark is absent
// or does not match the expected shape. Like a table-location failure it is
// a signal to try the swapped home/away orientation.
var ErrFavoredNotFound = errors.New("can't figure out who was favored")

// The matchup pages announce the line in a sub-heading like
// "Baltimore vs. Denver | Odds: Denver by 7,". The city can be multi-word
// and can carry a period ("St. Louis").
var favoredRE = regexp.MustCompile(`\|\s+Odds:\s+([a-zA-Z. ]+)\s+by\s+[0-9.]+,`)

// favoredTeam extracts the favored team's canonical slug from the spread
// page. The sub-heading names only the city, so the city phrase is slugged
// (spaces to hyphens, periods stripped, lowercased) and resolved against
// the team links inside the same landmark; the slug comes off the trailing
// path segment of the matching link.
func favoredTeam(doc *goquery.Document) (string, error) {
	landmark := doc.Find("p.h1-sub strong").First()
	if landmark.Length() == 0 {
		return "", fmt.Errorf("%w: no sub-heading landmark", ErrFavoredNotFound)
	}

	m := favoredRE.FindStringSubmatch(landmark.Text())
	if m == nil || m[1] == "" {
		return "", fmt.Errorf("%w: no odds pattern in %q", ErrFavoredNotFound, strings.TrimSpace(landmark.Text()))
	}
	city := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(m[1]), " ", "-"), ".", ""))

	var team string
	landmark.Find("a").EachWithBreak(func(i int, link *goquery.Selection) bool {
		href, ok := link.Attr("href")
		if !ok || !strings.Contains(href, city) {
			return true
		}
		segments := strings.Split(strings.Trim(href, "/"), "/")
		parts := strings.Split(segments[len(segments)-1], "-")
		team = parts[len(parts)-1]
		return false
	})
	if team == "" {
		return "", fmt.Errorf("%w: no team link matching city %q", ErrFavoredNotFound, city)
	}
	return team, nil
}
