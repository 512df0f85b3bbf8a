package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"beyondborders/internal/events"

	"github.com/rs/zerolog"
)

// Worker consumes booking lifecycle events off an in-process queue and hands
// them to a Sender with exponential backoff. Enqueueing never blocks the
// request path: when the queue is full the event is dropped and logged.
type Worker struct {
	sender Sender
	retry  RetryPolicy
	queue  chan *events.Event
	logger *zerolog.Logger
	wg     sync.WaitGroup
}

func NewWorker(sender Sender, retry RetryPolicy, queueSize int, logger *zerolog.Logger) *Worker {
	if queueSize <= 0 {
		queueSize = 1000
	}
	return &Worker{
		sender: sender,
		retry:  retry,
		queue:  make(chan *events.Event, queueSize),
		logger: logger,
	}
}

// HandleEvent is the events.EventHandler the worker subscribes with.
func (w *Worker) HandleEvent(event *events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn().Str("event_type", event.Type).Msg("notify queue full, dropping event")
	}
	return nil
}

// Start launches the delivery loop. It runs until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-w.queue:
				w.process(ctx, event)
			}
		}
	}()
}

// Wait blocks until the delivery loop has exited.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) process(ctx context.Context, event *events.Event) {
	var payload events.BookingEventPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		w.logger.Error().Err(err).Str("event_type", event.Type).Msg("malformed event payload")
		return
	}

	notification := Notification{
		Event:      event.Type,
		BookingID:  payload.BookingID,
		OwnerID:    payload.OwnerID,
		GuestEmail: payload.GuestEmail,
		Status:     payload.Status,
	}

	var err error
	for attempt := 1; ; attempt++ {
		err = w.sender.Send(ctx, notification)
		if err == nil {
			return
		}
		if attempt > w.retry.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retry.NextDelay(attempt)):
		}
	}

	w.logger.Error().Err(err).
		Str("event_type", event.Type).
		Str("booking_id", payload.BookingID).
		Msg("notification delivery failed")
}
