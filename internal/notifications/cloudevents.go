package notifications

import (
	"context"
	"fmt"
	"net/http"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

const (
	EventReminderScheduled = "edu.cedarville.chucks.reminder.scheduled"
	EventReminderCancelled = "edu.cedarville.chucks.reminder.cancelled"

	eventSource = "wasup-chucks/refresher"
)

// ReminderEvent is the payload of a scheduled reminder event.
type ReminderEvent struct {
	ID     string    `json:"id"`
	FireAt time.Time `json:"fireAt"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
	Tag    string    `json:"tag"`
}

// CancelEvent is the payload of a cancellation event.
type CancelEvent struct {
	Tag string `json:"tag"`
}

// CloudEventsNotifier posts reminders to an HTTP sink as CloudEvents. The sink owns delivery timing.
type CloudEventsNotifier struct {
	client cloudevents.Client
	now    func() time.Time
}

// NewCloudEventsNotifier builds a notifier targeting sinkURL. httpClient may be nil.
func NewCloudEventsNotifier(sinkURL string, httpClient *http.Client) (*CloudEventsNotifier, error) {
	opts := []cloudevents.HTTPOption{cloudevents.WithTarget(sinkURL)}
	if httpClient != nil {
		opts = append(opts, cloudevents.WithClient(*httpClient))
	}
	c, err := cloudevents.NewClientHTTP(opts...)
	if err != nil {
		return nil, fmt.Errorf("cloudevents client: %w", err)
	}
	return &CloudEventsNotifier{client: c, now: time.Now}, nil
}

func (n *CloudEventsNotifier) Schedule(ctx context.Context, r Reminder) error {
	return n.send(ctx, EventReminderScheduled, r.ID, ReminderEvent{
		ID:     r.ID,
		FireAt: r.FireAt,
		Title:  r.Title,
		Body:   r.Body,
		Tag:    r.Tag,
	})
}

func (n *CloudEventsNotifier) CancelAll(ctx context.Context, tag string) error {
	return n.send(ctx, EventReminderCancelled, tag, CancelEvent{Tag: tag})
}

func (n *CloudEventsNotifier) send(ctx context.Context, eventType, subject string, data any) error {
	event := cloudevents.NewEvent()
	event.SetID(uuid.NewString())
	event.SetType(eventType)
	event.SetSource(eventSource)
	event.SetSubject(subject)
	event.SetTime(n.now())
	if err := event.SetData(cloudevents.ApplicationJSON, data); err != nil {
		return fmt.Errorf("encode %s: %w", eventType, err)
	}

	if result := n.client.Send(ctx, event); !cloudevents.IsACK(result) {
		return fmt.Errorf("send %s: %w", eventType, result)
	}
	return nil
}
