package menus

import (
	"sort"
	"strings"
	"time"

	"wasup-chucks/internal/timeutil"
)

// Item is a single dish served at a venue.
type Item struct {
	Name      string     `json:"name"`
	Allergens []Allergen `json:"allergens"`
}

// ID identifies an item by name and allergen codes so same-named dishes with different allergens stay distinct.
func (i Item) ID() string {
	var b strings.Builder
	b.WriteString(i.Name)
	b.WriteByte('-')
	for _, a := range i.Allergens {
		b.WriteString(a.Alt)
	}
	return b.String()
}

// VenueMenu lists what one serving station offers during a slot.
type VenueMenu struct {
	Venue string  `json:"venue"`
	Meal  *string `json:"meal"`
	Slot  string  `json:"slot"`
	Items []Item  `json:"items"`
}

// ID identifies a venue menu by venue, slot and meal label.
func (v VenueMenu) ID() string {
	meal := ""
	if v.Meal != nil {
		meal = *v.Meal
	}
	return v.Venue + "-" + v.Slot + "-" + meal
}

// Response is the full multi-day document keyed by YYYY-MM-DD venue-local dates.
type Response map[string][]VenueMenu

// Day returns the venue menus for a date key, or nil when the day is absent.
func (r Response) Day(dateKey string) []VenueMenu {
	if r == nil {
		return nil
	}
	return r[dateKey]
}

// DayOf returns the venue menus for the venue-local calendar day containing t.
func (r Response) DayOf(t time.Time) []VenueMenu {
	return r.Day(timeutil.DateKey(t))
}

// Dates returns the parseable date keys in ascending order.
func (r Response) Dates() []string {
	dates := make([]string, 0, len(r))
	for key := range r {
		if _, err := timeutil.ParseDate(key); err != nil {
			continue
		}
		dates = append(dates, key)
	}
	sort.Strings(dates)
	return dates
}

// Snapshot is a menu document together with the time it was fetched.
type Snapshot struct {
	Menu      Response
	FetchedAt time.Time
}

// Age returns how long ago the snapshot was fetched relative to now.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}
