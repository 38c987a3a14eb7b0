package timeutil

import (
	"sync"
	"time"

	// Embedded zone database so venue time resolves on hosts without tzdata.
	_ "time/tzdata"
)

// DateLayout defines the canonical date format (YYYY-MM-DD) used for menu day keys.
const DateLayout = "2006-01-02"

// VenueTimezone is the IANA zone all meal times are expressed in.
const VenueTimezone = "America/New_York"

var (
	venueOnce sync.Once
	venueLoc  *time.Location
)

// VenueLocation returns the dining hall's location, falling back to UTC if the zone cannot be loaded.
func VenueLocation() *time.Location {
	venueOnce.Do(func() {
		venueLoc = ResolveLocation(VenueTimezone)
	})
	return venueLoc
}

// ResolveLocation loads a location by name, returning UTC for empty or unknown names.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseDateIn parses a YYYY-MM-DD date string as midnight in loc.
func ParseDateIn(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, loc)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateKey formats the venue-local calendar day of t.
func DateKey(t time.Time) string {
	return FormatDate(t.In(VenueLocation()))
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
