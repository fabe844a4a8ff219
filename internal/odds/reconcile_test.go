package odds

import (
	"context"
	"errors"
	"testing"

	"github.com/pfrederiksen/nfl-spreads/internal/nfl"
)

func TestGameEitherOrientationDirect(t *testing.T) {
	g, err := GameEitherOrientation(context.Background(), ravensBroncosFetcher(), "ravens", "broncos", nfl.WeekNumber(1), 2013)
	if err != nil {
		t.Fatalf("GameEitherOrientation failed: %v", err)
	}
	if g.Discrepancy {
		t.Error("Discrepancy should be false when the first orientation works")
	}
	if g.Home != "ravens" || g.Away != "broncos" {
		t.Errorf("orientation = %s/%s, want ravens/broncos", g.Home, g.Away)
	}
}

func TestGameEitherOrientationSwapped(t *testing.T) {
	// The caller thinks the broncos were home; the source only knows the
	// game as ravens-at-home. The record must come back in the confirmed
	// orientation with the discrepancy flagged.
	g, err := GameEitherOrientation(context.Background(), ravensBroncosFetcher(), "broncos", "ravens", nfl.WeekNumber(1), 2013)
	if err != nil {
		t.Fatalf("GameEitherOrientation failed: %v", err)
	}
	if !g.Discrepancy {
		t.Error("Discrepancy should be true after a swap retry")
	}
	if g.Home != "ravens" || g.Away != "broncos" {
		t.Errorf("orientation = %s/%s, want confirmed ravens/broncos", g.Home, g.Away)
	}
	if g.Favored != "broncos" {
		t.Errorf("Favored = %q, want broncos", g.Favored)
	}
	if g.Rows[0].BookmakerSpread != -7 {
		t.Errorf("BookmakerSpread = %v, want -7", g.Rows[0].BookmakerSpread)
	}
}

func TestGameEitherOrientationBothFail(t *testing.T) {
	f := &stubFetcher{} // every URL resolves to the not-found page
	_, err := GameEitherOrientation(context.Background(), f, "jets", "bills", nfl.WeekNumber(2), 2013)
	if err == nil {
		t.Fatal("expected error when both orientations fail")
	}
}

func TestGameEitherOrientationTransportErrorNotRetried(t *testing.T) {
	transportErr := errors.New("connection refused")
	week := nfl.WeekNumber(1)
	f := &stubFetcher{
		errs: map[string]error{
			SpreadURL("ravens", "broncos", week, 2013): transportErr,
		},
		pages: map[string]string{
			SpreadURL("broncos", "ravens", week, 2013):    "ravens_broncos_spread.html",
			OverUnderURL("broncos", "ravens", week, 2013): "ravens_broncos_over_under.html",
		},
	}

	_, err := GameEitherOrientation(context.Background(), f, "ravens", "broncos", week, 2013)
	if !errors.Is(err, transportErr) {
		t.Fatalf("transport error should propagate without a swap retry, got %v", err)
	}
}
