package favorites

import (
	"testing"

	"wasup-chucks/internal/domain/meals"
	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/testutil"
)

func TestFindMatchesOrdersByDateThenSlot(t *testing.T) {
	resp := menus.Response{
		"2024-09-17": {
			testutil.Venue("Home Cooking", "lunch", "Pizza Bagel"),
		},
		"2024-09-16": {
			testutil.Venue("Home Cooking", "lunch", "Cheese Pizza", "Salad"),
			testutil.Venue("Home Cooking", "dinner", "Pot Roast"),
			testutil.Venue("Home Cooking", "breakfast", "Eggs"),
		},
	}
	set := NewSet([]string{"Pot Roast"}, []string{"pizza"})

	got := FindMatches(resp, set)
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %+v", got)
	}
	want := []struct {
		date  string
		phase meals.Phase
		item  string
	}{
		{"2024-09-16", meals.Dinner, "Pot Roast"},
		{"2024-09-16", meals.Lunch, "Cheese Pizza"},
		{"2024-09-17", meals.Lunch, "Pizza Bagel"},
	}
	for i, w := range want {
		m := got[i]
		if m.DateKey != w.date || m.Phase != w.phase || len(m.MatchedItems) != 1 || m.MatchedItems[0] != w.item {
			t.Fatalf("match %d: expected %+v, got %+v", i, w, m)
		}
	}
}

func TestFindMatchesSkipsAnytime(t *testing.T) {
	resp := menus.Response{
		"2024-09-16": {
			testutil.Venue("Deli", "anytime", "Turkey Sandwich"),
		},
	}
	set := NewSet([]string{"Turkey Sandwich"}, nil)
	if got := FindMatches(resp, set); len(got) != 0 {
		t.Fatalf("expected anytime items to be skipped, got %+v", got)
	}
}

func TestFindMatchesCollectsAcrossVenues(t *testing.T) {
	resp := menus.Response{
		"2024-09-16": {
			testutil.Venue("Home Cooking", "lunch", "Chicken Tenders"),
			testutil.Venue("Grill", "lunch", "Grilled Chicken"),
		},
	}
	got := FindMatches(resp, NewSet(nil, []string{"chicken"}))
	if len(got) != 1 || len(got[0].MatchedItems) != 2 {
		t.Fatalf("expected one lunch match with two items, got %+v", got)
	}
}

func TestFindMatchesEmptySet(t *testing.T) {
	if got := FindMatches(testutil.SampleMenu("2024-09-16"), NewSet(nil, nil)); got != nil {
		t.Fatalf("expected nil for empty set, got %+v", got)
	}
}
