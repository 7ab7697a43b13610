// Package notify hands successfully committed bookings off to downstream
// collaborators (email rendering, CRM enrichment). The engine's only
// obligation is the handoff itself: a committed booking plus the raw answer
// payload. Delivery failures never affect booking correctness.
package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/advisorkit/scheduler/internal/models"
)

type Event struct {
	Booking models.Booking
	Answers []models.BookingAnswer
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// LogNotifier is the default sink: it records the handoff and nothing else.
// Real integrations implement Notifier behind the same dispatcher.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notify").Logger()}
}

func (n *LogNotifier) Notify(_ context.Context, ev Event) error {
	n.log.Info().
		Str("reference", ev.Booking.Reference).
		Str("email", ev.Booking.Email).
		Time("scheduled_time", ev.Booking.ScheduledTime).
		Msg("booking committed")
	return nil
}

type Dispatcher struct {
	notifier Notifier
	log      zerolog.Logger
	queue    chan Event
}

func NewDispatcher(notifier Notifier, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		log:      log.With().Str("component", "notify").Logger(),
		queue:    make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := d.notifier.Notify(ctx, ev); err != nil {
			d.log.Error().Err(err).
				Str("reference", ev.Booking.Reference).
				Msg("notification handoff failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn().
			Str("reference", ev.Booking.Reference).
			Msg("notify queue full, dropping event")
	}
}
