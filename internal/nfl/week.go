package nfl

import (
	"fmt"
	"strconv"
	"time"
)

// Playoff round names, in chronological order. They sort after every
// regular-season week.
const (
	WildCard   = "wild-card"
	Divisional = "divisional"
	Conference = "conference"
	SuperBowl  = "super-bowl"
)

// Week identifies one week of an NFL season: a regular-season number in
// [1,17], or one of the four playoff rounds with Number zero.
type Week struct {
	Number int
	Round  string
}

// WeekNumber returns the regular-season week n.
func WeekNumber(n int) Week {
	return Week{Number: n}
}

// WeekRound returns the playoff-round week named by round.
func WeekRound(round string) Week {
	return Week{Round: round}
}

var roundOrder = map[string]int{
	WildCard:   18,
	Divisional: 19,
	Conference: 20,
	SuperBowl:  21,
}

// ParseWeek converts a user- or schedule-facing label into a Week. It
// accepts "1".."17" and the four round names.
func ParseWeek(label string) (Week, error) {
	if _, ok := roundOrder[label]; ok {
		return Week{Round: label}, nil
	}
	n, err := strconv.Atoi(label)
	if err != nil || n < 1 || n > 17 {
		return Week{}, fmt.Errorf("invalid week %q", label)
	}
	return Week{Number: n}, nil
}

// IsPlayoff reports whether the week is a playoff round.
func (w Week) IsPlayoff() bool {
	return w.Round != ""
}

// String renders the week the way it appears in the output dataset:
// "7" for regular-season weeks, the round name for playoffs.
func (w Week) String() string {
	if w.IsPlayoff() {
		return w.Round
	}
	return strconv.Itoa(w.Number)
}

// PathSegment renders the week the way matchup URLs spell it: "week-7"
// for regular-season weeks, the round name as-is for playoffs.
func (w Week) PathSegment() string {
	if w.IsPlayoff() {
		return w.Round
	}
	return "week-" + strconv.Itoa(w.Number)
}

// Order returns the week's position in the season's total ordering. All
// integer weeks precede wild-card, which precedes divisional, conference,
// and super-bowl.
func (w Week) Order() int {
	if w.IsPlayoff() {
		return roundOrder[w.Round]
	}
	return w.Number
}

// GameYear returns the calendar year a game in the given month of the
// season starting in seasonYear was played. Postseason games cross the new
// year, so January and February land in seasonYear+1.
func GameYear(seasonYear int, month time.Month) int {
	if month == time.January || month == time.February {
		return seasonYear + 1
	}
	return seasonYear
}

// LatestSeasonBefore returns the latest season that started before the
// given date, assuming seasons start at the beginning of September.
func LatestSeasonBefore(date time.Time) int {
	if date.Month() < time.September {
		return date.Year() - 1
	}
	return date.Year()
}
