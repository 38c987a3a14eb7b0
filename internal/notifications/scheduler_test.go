package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wasup-chucks/internal/domain/meals"
	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/favorites"
	"wasup-chucks/internal/metrics"
	"wasup-chucks/internal/testutil"
)

type recordingNotifier struct {
	scheduled []Reminder
	cancelled []string
	failIDs   map[string]bool
	cancelErr error
}

func (n *recordingNotifier) Schedule(ctx context.Context, r Reminder) error {
	if n.failIDs[r.ID] {
		return errors.New("boom")
	}
	n.scheduled = append(n.scheduled, r)
	return nil
}

func (n *recordingNotifier) CancelAll(ctx context.Context, tag string) error {
	n.cancelled = append(n.cancelled, tag)
	return n.cancelErr
}

func newTestScheduler(n Notifier, now time.Time) (*Scheduler, *metrics.Recorder) {
	rec := metrics.NewRecorder()
	s := NewScheduler(n, nil, rec)
	s.now = testutil.NowAt(now)
	return s, rec
}

func TestRescheduleSchedulesOneHourBeforeMeal(t *testing.T) {
	// 2024-09-16 is a Monday; lunch opens 10:30.
	n := &recordingNotifier{}
	s, rec := newTestScheduler(n, testutil.VenueTime(t, "2024-09-16", 6, 0))
	resp := menus.Response{
		"2024-09-16": {testutil.Venue("Home Cooking", "lunch", "Chicken Tenders")},
	}

	res, err := s.Reschedule(context.Background(), resp, favorites.NewSet(nil, []string{"chicken"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Scheduled != 1 || res.Skipped != 0 || res.Failed != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(n.cancelled) != 1 || n.cancelled[0] != Tag {
		t.Fatalf("expected cancel of %q first, got %v", Tag, n.cancelled)
	}

	r := n.scheduled[0]
	if want := testutil.VenueTime(t, "2024-09-16", 9, 30); !r.FireAt.Equal(want) {
		t.Fatalf("expected fire at %v, got %v", want, r.FireAt)
	}
	if r.ID != "2024-09-16-LUNCH" {
		t.Fatalf("unexpected id %q", r.ID)
	}
	if r.Title != "Lunch has your favorites!" {
		t.Fatalf("unexpected title %q", r.Title)
	}
	if r.Body != "Chicken Tenders at Chuck's today." {
		t.Fatalf("unexpected body %q", r.Body)
	}
	if r.Tag != Tag {
		t.Fatalf("unexpected tag %q", r.Tag)
	}
	if got := rec.Reminders().Scheduled; got != 1 {
		t.Fatalf("expected scheduled metric 1, got %d", got)
	}
}

func TestRescheduleSkipsPastDueReminders(t *testing.T) {
	n := &recordingNotifier{}
	// 09:30 exactly is not strictly before lunch's reminder time.
	s, _ := newTestScheduler(n, testutil.VenueTime(t, "2024-09-16", 9, 30))
	resp := menus.Response{
		"2024-09-16": {
			testutil.Venue("Home Cooking", "breakfast", "Pancakes"),
			testutil.Venue("Home Cooking", "lunch", "Pancake Bar"),
			testutil.Venue("Home Cooking", "dinner", "Pancake Supper"),
		},
	}

	res, err := s.Reschedule(context.Background(), resp, favorites.NewSet(nil, []string{"pancake"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Scheduled != 1 || res.Skipped != 2 {
		t.Fatalf("expected dinner only, got %+v", res)
	}
	if n.scheduled[0].ID != "2024-09-16-DINNER" {
		t.Fatalf("unexpected reminder %+v", n.scheduled[0])
	}
}

func TestRescheduleUsesWeekendSchedule(t *testing.T) {
	// 2024-09-15 is a Sunday; dinner opens 17:00.
	n := &recordingNotifier{}
	s, _ := newTestScheduler(n, testutil.VenueTime(t, "2024-09-14", 12, 0))
	resp := menus.Response{
		"2024-09-15": {testutil.Venue("Home Cooking", "dinner", "Pot Roast")},
	}
	if _, err := s.Reschedule(context.Background(), resp, favorites.NewSet([]string{"Pot Roast"}, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := testutil.VenueTime(t, "2024-09-15", 16, 0); !n.scheduled[0].FireAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, n.scheduled[0].FireAt)
	}
}

func TestRescheduleEmptySetOnlyCancels(t *testing.T) {
	n := &recordingNotifier{}
	s, _ := newTestScheduler(n, testutil.VenueTime(t, "2024-09-16", 6, 0))
	res, err := s.Reschedule(context.Background(), testutil.SampleMenu("2024-09-16"), favorites.NewSet(nil, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != (Result{}) || len(n.scheduled) != 0 || len(n.cancelled) != 1 {
		t.Fatalf("expected cancel only, got res=%+v scheduled=%v cancelled=%v", res, n.scheduled, n.cancelled)
	}
}

func TestRescheduleContinuesPastFailures(t *testing.T) {
	n := &recordingNotifier{failIDs: map[string]bool{"2024-09-16-LUNCH": true}}
	s, rec := newTestScheduler(n, testutil.VenueTime(t, "2024-09-16", 6, 0))
	resp := menus.Response{
		"2024-09-16": {
			testutil.Venue("Home Cooking", "lunch", "Pot Roast"),
			testutil.Venue("Home Cooking", "dinner", "Pot Roast"),
		},
	}
	res, err := s.Reschedule(context.Background(), resp, favorites.NewSet([]string{"Pot Roast"}, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Scheduled != 1 || res.Failed != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := rec.Reminders().Failed; got != 1 {
		t.Fatalf("expected failed metric 1, got %d", got)
	}
}

func TestRescheduleCancelFailureAborts(t *testing.T) {
	n := &recordingNotifier{cancelErr: errors.New("offline")}
	s, _ := newTestScheduler(n, testutil.VenueTime(t, "2024-09-16", 6, 0))
	_, err := s.Reschedule(context.Background(), testutil.SampleMenu("2024-09-16"), favorites.NewSet([]string{"Bacon"}, nil))
	if err == nil || !strings.Contains(err.Error(), "offline") {
		t.Fatalf("expected cancel error, got %v", err)
	}
	if len(n.scheduled) != 0 {
		t.Fatalf("expected nothing scheduled, got %v", n.scheduled)
	}
}

func TestBody(t *testing.T) {
	cases := []struct {
		items []string
		want  string
	}{
		{[]string{"A"}, "A at Chuck's today."},
		{[]string{"A", "B", "C"}, "A, B, C at Chuck's today."},
		{[]string{"A", "B", "C", "D", "E"}, "A, B, C +2 more at Chuck's today."},
	}
	for _, tc := range cases {
		if got := Body(tc.items); got != tc.want {
			t.Fatalf("Body(%v): expected %q, got %q", tc.items, tc.want, got)
		}
	}
}

func TestTitleAndID(t *testing.T) {
	if got := Title(meals.Breakfast); got != "Breakfast has your favorites!" {
		t.Fatalf("unexpected title %q", got)
	}
	if got := ReminderID("2024-09-16", meals.Dinner); got != "2024-09-16-DINNER" {
		t.Fatalf("unexpected id %q", got)
	}
}
