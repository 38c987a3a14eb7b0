// Package notifications turns favorite matches into meal reminders.
package notifications

import (
	"context"
	"log/slog"
	"time"

	"wasup-chucks/internal/logging"
)

// Tag groups every reminder this package schedules so they can be cancelled together.
const Tag = "favorites"

// Reminder is a single notification to deliver at FireAt.
type Reminder struct {
	ID     string
	FireAt time.Time
	Title  string
	Body   string
	Tag    string
}

// Notifier delivers reminders. Scheduling an ID that already exists replaces it.
type Notifier interface {
	Schedule(ctx context.Context, r Reminder) error
	CancelAll(ctx context.Context, tag string) error
}

// LogNotifier writes reminders to a logger instead of delivering them.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Schedule(ctx context.Context, r Reminder) error {
	logging.Info(logging.FromContext(ctx, n.Logger), "reminder scheduled",
		logging.FieldReminderID, r.ID,
		"fire_at", r.FireAt.Format(time.RFC3339),
		"title", r.Title,
		"body", r.Body,
	)
	return nil
}

func (n LogNotifier) CancelAll(ctx context.Context, tag string) error {
	logging.Info(logging.FromContext(ctx, n.Logger), "reminders cancelled", "tag", tag)
	return nil
}
