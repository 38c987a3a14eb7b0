// Package specials selects which venues and dishes to surface for a meal.
package specials

import (
	"sort"
	"time"

	"wasup-chucks/internal/domain/meals"
	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/status"
)

// HomeCookingVenue is the station whose dishes are shown as the meal's specials.
const HomeCookingVenue = "Home Cooking"

// ActiveSlotVenues returns the venues serving slot, sorted by venue name.
func ActiveSlotVenues(day []menus.VenueMenu, slot string) []menus.VenueMenu {
	out := make([]menus.VenueMenu, 0, len(day))
	for _, v := range day {
		if v.Slot == slot {
			out = append(out, v)
		}
	}
	sortByVenue(out)
	return out
}

// AlwaysAvailableVenues returns the venues serving all day, sorted by venue name.
func AlwaysAvailableVenues(day []menus.VenueMenu) []menus.VenueMenu {
	return ActiveSlotVenues(day, meals.SlotAnytime)
}

// SpecialsForPhase returns the Home Cooking dishes served during phase. Closed has none.
func SpecialsForPhase(day []menus.VenueMenu, phase meals.Phase) []menus.Item {
	slot := phase.APISlot()
	if slot == "" {
		return nil
	}
	var items []menus.Item
	for _, v := range ActiveSlotVenues(day, slot) {
		if v.Venue == HomeCookingVenue {
			items = append(items, v.Items...)
		}
	}
	return items
}

// SlotForStatus picks the slot to display for a status, defaulting to lunch.
func SlotForStatus(st status.Status) string {
	return status.DisplaySlot(st)
}

// Summary is the compact view used by small surfaces such as widgets.
type Summary struct {
	Status status.Status
	Phase  meals.Phase
	Venue  string
	Items  []menus.Item
}

// WidgetSummary resolves the meal worth showing at now and its specials from resp.
func WidgetSummary(resp menus.Response, now time.Time) Summary {
	st := status.Compute(now)
	phase, ok := meals.PhaseForSlot(status.DisplaySlot(st))
	if !ok {
		phase = meals.Lunch
	}
	return Summary{
		Status: st,
		Phase:  phase,
		Venue:  HomeCookingVenue,
		Items:  SpecialsForPhase(resp.DayOf(now), phase),
	}
}

func sortByVenue(venues []menus.VenueMenu) {
	sort.SliceStable(venues, func(i, j int) bool {
		return venues[i].Venue < venues[j].Venue
	})
}
