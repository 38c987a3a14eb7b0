package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wasup-chucks/internal/domain/meals"
	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/favorites"
	"wasup-chucks/internal/logging"
	"wasup-chucks/internal/metrics"
	"wasup-chucks/internal/timeutil"
)

const (
	// LeadTime is how long before a meal opens its reminder fires.
	LeadTime = time.Hour

	maxListedItems = 3
)

// Result summarises one Reschedule pass.
type Result struct {
	Scheduled int
	Skipped   int
	Failed    int
}

// Scheduler keeps the notifier's reminders in line with the current menu and favorites.
type Scheduler struct {
	notifier Notifier
	logger   *slog.Logger
	metrics  *metrics.Recorder
	loc      *time.Location
	now      func() time.Time
}

// NewScheduler builds a scheduler. Reminder times are computed in the venue timezone.
func NewScheduler(notifier Notifier, logger *slog.Logger, recorder *metrics.Recorder) *Scheduler {
	return &Scheduler{
		notifier: notifier,
		logger:   logger,
		metrics:  recorder,
		loc:      timeutil.VenueLocation(),
		now:      time.Now,
	}
}

// Reschedule cancels every favorites reminder and schedules one per upcoming matching meal.
// Individual failures are logged and counted; only a failed cancel aborts the pass.
func (s *Scheduler) Reschedule(ctx context.Context, resp menus.Response, set favorites.Set) (Result, error) {
	var res Result
	logger := logging.FromContext(ctx, s.logger)

	if err := s.notifier.CancelAll(ctx, Tag); err != nil {
		return res, fmt.Errorf("cancel reminders: %w", err)
	}
	if set.Empty() {
		return res, nil
	}

	now := s.now()
	for _, m := range favorites.FindMatches(resp, set) {
		day, err := timeutil.ParseDateIn(m.DateKey, s.loc)
		if err != nil {
			logging.Warn(logger, "skipping reminder for unparseable date", logging.FieldDate, m.DateKey, "error", err)
			s.record(m.Phase, "failed")
			res.Failed++
			continue
		}
		period, ok := meals.PeriodFor(day.Weekday(), m.Phase)
		if !ok {
			s.record(m.Phase, "skipped")
			res.Skipped++
			continue
		}

		fireAt := period.StartOn(day).Add(-LeadTime)
		if !fireAt.After(now) {
			s.record(m.Phase, "skipped")
			res.Skipped++
			continue
		}

		r := Reminder{
			ID:     ReminderID(m.DateKey, m.Phase),
			FireAt: fireAt,
			Title:  Title(m.Phase),
			Body:   Body(m.MatchedItems),
			Tag:    Tag,
		}
		if err := s.notifier.Schedule(ctx, r); err != nil {
			logging.Warn(logger, "reminder schedule failed",
				logging.FieldReminderID, r.ID,
				logging.FieldPhase, string(m.Phase),
				"error", err,
			)
			s.record(m.Phase, "failed")
			res.Failed++
			continue
		}
		s.record(m.Phase, "scheduled")
		res.Scheduled++
	}

	logging.Info(logger, "reminders rescheduled",
		"scheduled", res.Scheduled,
		"skipped", res.Skipped,
		"failed", res.Failed,
	)
	return res, nil
}

func (s *Scheduler) record(phase meals.Phase, outcome string) {
	s.metrics.RecordReminder(string(phase), outcome)
}

// ReminderID is stable per day and meal so a reschedule replaces the previous reminder.
func ReminderID(dateKey string, phase meals.Phase) string {
	return dateKey + "-" + string(phase)
}

// Title names the meal the reminder is for.
func Title(phase meals.Phase) string {
	return phase.DisplayName() + " has your favorites!"
}

// Body lists up to three matched dishes, then how many more were matched.
func Body(items []string) string {
	listed := items
	if len(listed) > maxListedItems {
		listed = listed[:maxListedItems]
	}
	var b strings.Builder
	b.WriteString(strings.Join(listed, ", "))
	if extra := len(items) - len(listed); extra > 0 {
		fmt.Fprintf(&b, " +%d more", extra)
	}
	b.WriteString(" at Chuck's today.")
	return b.String()
}
