package testutil

import (
	"testing"
	"time"

	"wasup-chucks/internal/timeutil"
)

// NowAt returns a clock frozen at t.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// VenueTime returns hour:minute on date ("2006-01-02") in the dining hall's timezone.
func VenueTime(t *testing.T, date string, hour, minute int) time.Time {
	t.Helper()
	day, err := timeutil.ParseDateIn(date, timeutil.VenueLocation())
	if err != nil {
		t.Fatalf("parse %s: %v", date, err)
	}
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}
