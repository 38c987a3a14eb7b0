package favorites

import (
	"sort"

	"wasup-chucks/internal/domain/meals"
	"wasup-chucks/internal/domain/menus"
)

// Match lists the favorite dishes served during one meal on one day.
type Match struct {
	DateKey      string
	Phase        meals.Phase
	MatchedItems []string
}

// FindMatches scans every day and meal slot in resp for favorites.
// Slots without a meal phase, such as "anytime", are skipped.
// Days come out in date order and meals in slot-name order.
func FindMatches(resp menus.Response, set Set) []Match {
	if set.Empty() {
		return nil
	}

	dates := make([]string, 0, len(resp))
	for date := range resp {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var matches []Match
	for _, date := range dates {
		bySlot := make(map[string][]menus.VenueMenu)
		for _, v := range resp[date] {
			bySlot[v.Slot] = append(bySlot[v.Slot], v)
		}

		slots := make([]string, 0, len(bySlot))
		for slot := range bySlot {
			slots = append(slots, slot)
		}
		sort.Strings(slots)

		for _, slot := range slots {
			phase, ok := meals.PhaseForSlot(slot)
			if !ok {
				continue
			}
			var names []string
			for _, v := range bySlot[slot] {
				for _, item := range v.Items {
					if set.matches(item.Name) {
						names = append(names, item.Name)
					}
				}
			}
			if len(names) > 0 {
				matches = append(matches, Match{DateKey: date, Phase: phase, MatchedItems: names})
			}
		}
	}
	return matches
}
