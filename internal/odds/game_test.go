package odds

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
)

// stubFetcher serves testdata fixtures keyed by URL. Unknown URLs get the
// "matchup not found" page, which carries no movement table, matching what
// the real site does for a wrong home/away orientation.
type stubFetcher struct {
	pages map[string]string
	errs  map[string]error
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if err, ok := s.errs[url]; ok {
		return nil, err
	}
	name, ok := s.pages[url]
	if !ok {
		name = "not_found.html"
	}
	return os.ReadFile(filepath.Join("testdata", name))
}

func ravensBroncosFetcher() *stubFetcher {
	week := nfl.WeekNumber(1)
	return &stubFetcher{pages: map[string]string{
		SpreadURL("ravens", "broncos", week, 2013):    "ravens_broncos_spread.html",
		OverUnderURL("ravens", "broncos", week, 2013): "ravens_broncos_over_under.html",
	}}
}

func TestFetchGame(t *testing.T) {
	g, err := FetchGame(context.Background(), ravensBroncosFetcher(), "ravens", "broncos", nfl.WeekNumber(1), 2013)
	if err != nil {
		t.Fatalf("FetchGame failed: %v", err)
	}

	if g.Home != "ravens" || g.Away != "broncos" {
		t.Errorf("orientation = %s/%s, want ravens/broncos", g.Home, g.Away)
	}
	if g.Favored != "broncos" {
		t.Errorf("Favored = %q, want broncos", g.Favored)
	}
	if g.Discrepancy {
		t.Error("Discrepancy should be false for a direct fetch")
	}
	if len(g.Rows) != 4 {
		t.Fatalf("expected 4 joined rows, got %d", len(g.Rows))
	}

	first := g.Rows[0]
	wantTime := time.Date(2013, 9, 5, 21, 5, 0, 0, time.UTC)
	if !first.Time.Equal(wantTime) {
		t.Errorf("first row time = %v, want %v", first.Time, wantTime)
	}
	if !math.IsNaN(first.PinnacleSpread) || !math.IsNaN(first.BetOnlineSpread) {
		t.Errorf("first row pinnacle/betonline spreads should be missing: %+v", first)
	}
	if first.BookmakerSpread != -7 {
		t.Errorf("first row BookmakerSpread = %v, want -7", first.BookmakerSpread)
	}
	if first.BookmakerOverUnder != 47.5 {
		t.Errorf("first row BookmakerOverUnder = %v, want 47.5", first.BookmakerOverUnder)
	}

	// Every quote year is the season year for a week-1 game.
	for _, row := range g.Rows {
		if row.Time.Year() != 2013 {
			t.Errorf("quote year = %d, want 2013", row.Time.Year())
		}
	}
}

func TestFetchGamePlayoffYearRollover(t *testing.T) {
	week := nfl.WeekRound(nfl.SuperBowl)
	f := &stubFetcher{pages: map[string]string{
		SpreadURL("seahawks", "broncos", week, 2013):    "seahawks_broncos_spread.html",
		OverUnderURL("seahawks", "broncos", week, 2013): "seahawks_broncos_over_under.html",
	}}

	g, err := FetchGame(context.Background(), f, "seahawks", "broncos", week, 2013)
	if err != nil {
		t.Fatalf("FetchGame failed: %v", err)
	}
	if g.Favored != "broncos" {
		t.Errorf("Favored = %q, want broncos", g.Favored)
	}
	if len(g.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(g.Rows))
	}
	row := g.Rows[0]
	wantTime := time.Date(2014, 2, 2, 18, 35, 0, 0, time.UTC)
	if !row.Time.Equal(wantTime) {
		t.Errorf("row time = %v, want %v", row.Time, wantTime)
	}
	if row.BookmakerSpread != -2 {
		t.Errorf("BookmakerSpread = %v, want -2", row.BookmakerSpread)
	}
	if row.BookmakerOverUnder != 47 {
		t.Errorf("BookmakerOverUnder = %v, want 47", row.BookmakerOverUnder)
	}
}

func TestFetchGameDottedCityFavored(t *testing.T) {
	// "St. Louis" carries a period and two words; the city slugging must
	// still find the st-louis-rams link.
	week := nfl.WeekNumber(1)
	f := &stubFetcher{pages: map[string]string{
		SpreadURL("cardinals", "rams", week, 2013):    "cardinals_rams_spread.html",
		OverUnderURL("cardinals", "rams", week, 2013): "cardinals_rams_over_under.html",
	}}

	g, err := FetchGame(context.Background(), f, "cardinals", "rams", week, 2013)
	if err != nil {
		t.Fatalf("FetchGame failed: %v", err)
	}
	if g.Favored != "rams" {
		t.Errorf("Favored = %q, want rams", g.Favored)
	}
	if g.Rows[0].BookmakerSpread != -3.5 {
		t.Errorf("BookmakerSpread = %v, want -3.5", g.Rows[0].BookmakerSpread)
	}
}

func TestFetchGameFavoredInvariant(t *testing.T) {
	// The fixture's favored team is the broncos; asking for a game between
	// two other teams at the same URLs must trip the membership check.
	week := nfl.WeekNumber(1)
	f := &stubFetcher{pages: map[string]string{
		SpreadURL("jets", "bills", week, 2013):    "ravens_broncos_spread.html",
		OverUnderURL("jets", "bills", week, 2013): "ravens_broncos_over_under.html",
	}}

	_, err := FetchGame(context.Background(), f, "jets", "bills", week, 2013)
	if !errors.Is(err, ErrFavoredNotFound) {
		t.Fatalf("expected ErrFavoredNotFound for out-of-game favored team, got %v", err)
	}
}

func TestFetchGameWrongOrientation(t *testing.T) {
	_, err := FetchGame(context.Background(), ravensBroncosFetcher(), "broncos", "ravens", nfl.WeekNumber(1), 2013)
	if err == nil {
		t.Fatal("expected failure for the swapped orientation")
	}
	if !orientationError(err) {
		t.Fatalf("expected an orientation error, got %v", err)
	}
}
