package meals

import "time"

// Period is one serving window of a day, in venue-local wall-clock time.
type Period struct {
	Phase       Phase
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// StartMinutes returns the period start as minutes past midnight.
func (p Period) StartMinutes() int {
	return p.StartHour*60 + p.StartMinute
}

// EndMinutes returns the period end as minutes past midnight.
func (p Period) EndMinutes() int {
	return p.EndHour*60 + p.EndMinute
}

// Contains reports whether minutes past midnight fall in [start, end).
func (p Period) Contains(minutes int) bool {
	return minutes >= p.StartMinutes() && minutes < p.EndMinutes()
}

// StartOn returns the period start on day's calendar date, in day's location.
func (p Period) StartOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), p.StartHour, p.StartMinute, 0, 0, day.Location())
}

// EndOn returns the period end on day's calendar date, in day's location.
func (p Period) EndOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), p.EndHour, p.EndMinute, 0, 0, day.Location())
}

// Hot and continental breakfast are served back to back on weekdays and are treated as one period.
var weekdaySchedule = []Period{
	{Phase: Breakfast, StartHour: 7, StartMinute: 0, EndHour: 9, EndMinute: 30},
	{Phase: Lunch, StartHour: 10, StartMinute: 30, EndHour: 14, EndMinute: 30},
	{Phase: Dinner, StartHour: 16, StartMinute: 30, EndHour: 19, EndMinute: 30},
}

var saturdaySchedule = []Period{
	{Phase: Breakfast, StartHour: 8, StartMinute: 0, EndHour: 9, EndMinute: 0},
	{Phase: Lunch, StartHour: 11, StartMinute: 0, EndHour: 13, EndMinute: 0},
	{Phase: Dinner, StartHour: 16, StartMinute: 30, EndHour: 18, EndMinute: 30},
}

var sundaySchedule = []Period{
	{Phase: Breakfast, StartHour: 8, StartMinute: 0, EndHour: 9, EndMinute: 0},
	{Phase: Lunch, StartHour: 11, StartMinute: 30, EndHour: 14, EndMinute: 0},
	{Phase: Dinner, StartHour: 17, StartMinute: 0, EndHour: 19, EndMinute: 30},
}

// ScheduleFor returns the ordered periods served on the given weekday.
// The returned slice is a copy; the tables themselves are fixed.
func ScheduleFor(day time.Weekday) []Period {
	var table []Period
	switch day {
	case time.Sunday:
		table = sundaySchedule
	case time.Saturday:
		table = saturdaySchedule
	default:
		table = weekdaySchedule
	}
	return append([]Period(nil), table...)
}

// ScheduleForDate returns the periods for date's weekday in date's location.
func ScheduleForDate(date time.Time) []Period {
	return ScheduleFor(date.Weekday())
}

// PeriodFor finds the period serving phase on the given weekday.
func PeriodFor(day time.Weekday, phase Phase) (Period, bool) {
	for _, p := range ScheduleFor(day) {
		if p.Phase == phase {
			return p, true
		}
	}
	return Period{}, false
}
