// Package status computes whether the dining hall is open and what comes next.
package status

import (
	"time"

	"wasup-chucks/internal/domain/meals"
	"wasup-chucks/internal/timeutil"
)

// Status is a point-in-time view of the dining hall derived from the clock and the weekly schedule.
type Status struct {
	CurrentPhase   meals.Phase
	TimeRemaining  *time.Duration
	NextPhase      *meals.Phase
	NextPhaseStart *time.Time
	IsOpen         bool
	CurrentMealEnd *time.Time
}

type scheduleFunc func(time.Weekday) []meals.Period

// Compute evaluates the status at now in venue time. Callers pass now in any location.
func Compute(now time.Time) Status {
	return compute(now, timeutil.VenueLocation(), meals.ScheduleFor)
}

// ComputeIn evaluates the status with meal times interpreted in loc.
func ComputeIn(now time.Time, loc *time.Location) Status {
	return compute(now, loc, meals.ScheduleFor)
}

func compute(now time.Time, loc *time.Location, scheduleFor scheduleFunc) Status {
	local := now.In(loc)
	periods := scheduleFor(local.Weekday())
	current := local.Hour()*60 + local.Minute()

	for i, p := range periods {
		if p.Contains(current) {
			end := p.EndOn(local)
			st := Status{
				CurrentPhase:   p.Phase,
				TimeRemaining:  durationPtr(end.Sub(now)),
				IsOpen:         true,
				CurrentMealEnd: &end,
			}
			if i+1 < len(periods) {
				next := periods[i+1]
				st.NextPhase = phasePtr(next.Phase)
				st.NextPhaseStart = timePtr(next.StartOn(local))
			} else {
				st.NextPhase = phasePtr(meals.Closed)
			}
			return st
		}

		if current < p.StartMinutes() {
			start := p.StartOn(local)
			return Status{
				CurrentPhase:   meals.Closed,
				TimeRemaining:  durationPtr(start.Sub(now)),
				NextPhase:      phasePtr(p.Phase),
				NextPhaseStart: &start,
			}
		}
	}

	tomorrow := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	upcoming := scheduleFor(tomorrow.Weekday())
	if len(upcoming) == 0 {
		return Status{CurrentPhase: meals.Closed}
	}

	first := upcoming[0]
	nextStart := first.StartOn(tomorrow)
	if !nextStart.After(now) {
		nextStart = nextStart.AddDate(0, 0, 1)
	}
	return Status{
		CurrentPhase:   meals.Closed,
		TimeRemaining:  durationPtr(nextStart.Sub(now)),
		NextPhase:      phasePtr(first.Phase),
		NextPhaseStart: &nextStart,
	}
}

func durationPtr(d time.Duration) *time.Duration { return &d }

func phasePtr(p meals.Phase) *meals.Phase { return &p }

func timePtr(t time.Time) *time.Time { return &t }

// DisplaySlot returns the API slot worth showing: the current meal while open, the next meal while
// closed, and lunch when nothing is coming up.
func DisplaySlot(st Status) string {
	if st.IsOpen {
		if slot := st.CurrentPhase.APISlot(); slot != "" {
			return slot
		}
	}
	if st.NextPhase != nil {
		if slot := st.NextPhase.APISlot(); slot != "" {
			return slot
		}
	}
	return meals.SlotLunch
}
