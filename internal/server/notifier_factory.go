package server

import (
	"log/slog"

	"wasup-chucks/internal/logging"
	"wasup-chucks/internal/notifications"
)

// buildNotifier posts reminders to sinkURL when set and otherwise logs them.
func buildNotifier(sinkURL string, logger *slog.Logger) notifications.Notifier {
	if sinkURL == "" {
		return notifications.LogNotifier{Logger: logger}
	}
	n, err := notifications.NewCloudEventsNotifier(sinkURL, nil)
	if err != nil {
		logging.Warn(logger, "notification sink unusable, logging reminders instead", slog.String("sink", sinkURL), "error", err)
		return notifications.LogNotifier{Logger: logger}
	}
	return n
}
