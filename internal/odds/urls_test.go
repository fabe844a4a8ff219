package odds

import (
	"testing"

	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
)

func TestSpreadURL(t *testing.T) {
	got := SpreadURL("ravens", "broncos", nfl.WeekNumber(1), 2013)
	want := "http://www.teamrankings.com/nfl/matchup/ravens-broncos-week-1-2013/spread-movement"
	if got != want {
		t.Errorf("SpreadURL = %q, want %q", got, want)
	}

	got = SpreadURL("seahawks", "broncos", nfl.WeekRound(nfl.SuperBowl), 2013)
	want = "http://www.teamrankings.com/nfl/matchup/seahawks-broncos-super-bowl-2013/spread-movement"
	if got != want {
		t.Errorf("SpreadURL = %q, want %q", got, want)
	}
}

func TestOverUnderURL(t *testing.T) {
	got := OverUnderURL("ravens", "broncos", nfl.WeekNumber(1), 2013)
	want := "http://www.teamrankings.com/nfl/matchup/ravens-broncos-week-1-2013/over-under-movement"
	if got != want {
		t.Errorf("OverUnderURL = %q, want %q", got, want)
	}

	got = OverUnderURL("seahawks", "broncos", nfl.WeekRound(nfl.WildCard), 2013)
	want = "http://www.teamrankings.com/nfl/matchup/seahawks-broncos-wild-card-2013/over-under-movement"
	if got != want {
		t.Errorf("OverUnderURL = %q, want %q", got, want)
	}
}
