package favorites

import (
	"testing"

	"wasup-chucks/internal/domain/menus"
)

func TestNewSetDropsBlankKeywords(t *testing.T) {
	s := NewSet([]string{"Pot Roast", ""}, []string{"  ", "", " pizza "})
	if len(s.Items) != 1 {
		t.Fatalf("expected one item, got %v", s.Items)
	}
	if len(s.Keywords) != 1 {
		t.Fatalf("expected one keyword, got %v", s.Keywords)
	}
	if _, ok := s.Keywords["pizza"]; !ok {
		t.Fatalf("expected trimmed keyword, got %v", s.Keywords)
	}
}

func TestEmpty(t *testing.T) {
	if !NewSet(nil, nil).Empty() {
		t.Fatalf("expected empty set")
	}
	if NewSet(nil, []string{"soup"}).Empty() {
		t.Fatalf("expected non-empty set")
	}
}

func TestIsFavorite(t *testing.T) {
	s := NewSet([]string{"Pot Roast"}, []string{"CHICKEN"})
	cases := map[string]bool{
		"Pot Roast":         true,
		"pot roast":         false,
		"Chicken Tenders":   true,
		"Buffalo chicken":   true,
		"Mashed Potatoes":   false,
		"Pot Roast Sliders": false,
	}
	for name, want := range cases {
		if got := s.IsFavorite(menus.Item{Name: name}); got != want {
			t.Fatalf("%q: expected %v, got %v", name, want, got)
		}
	}
}

func TestSortedAccessors(t *testing.T) {
	s := NewSet([]string{"b", "a"}, []string{"z", "y"})
	if got := s.SortedItems(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected items %v", got)
	}
	if got := s.SortedKeywords(); len(got) != 2 || got[0] != "y" || got[1] != "z" {
		t.Fatalf("unexpected keywords %v", got)
	}
}
