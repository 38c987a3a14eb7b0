package fixture

import (
	"context"
	"testing"
	"time"

	"wasup-chucks/internal/domain/meals"
	"wasup-chucks/internal/timeutil"
)

func TestFetchMenuCoversRequestedDays(t *testing.T) {
	p := New(3)
	p.now = func() time.Time {
		// 02:00 UTC on Sep 10 is still Sep 9 in the venue timezone.
		return time.Date(2024, 9, 10, 2, 0, 0, 0, time.UTC)
	}

	resp, err := p.FetchMenu(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	dates := resp.Dates()
	want := []string{"2024-09-09", "2024-09-10", "2024-09-11"}
	if len(dates) != len(want) {
		t.Fatalf("expected %v, got %v", want, dates)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, dates)
		}
	}
}

func TestFetchMenuIncludesHomeCookingAndAnytime(t *testing.T) {
	p := New(0)
	resp, _ := p.FetchMenu(context.Background())
	if len(resp) != defaultDays {
		t.Fatalf("expected %d days, got %d", defaultDays, len(resp))
	}

	day := resp.DayOf(time.Now().In(timeutil.VenueLocation()))
	var homeLunch, anytimeVenues int
	for _, v := range day {
		if v.Venue == "Home Cooking" && v.Slot == meals.SlotLunch {
			homeLunch++
		}
		if v.Slot == meals.SlotAnytime {
			anytimeVenues++
			if v.Meal != nil {
				t.Fatalf("expected anytime venue without meal label")
			}
		}
	}
	if homeLunch != 1 || anytimeVenues != 2 {
		t.Fatalf("unexpected fixture shape: home lunch %d, anytime %d", homeLunch, anytimeVenues)
	}
}
