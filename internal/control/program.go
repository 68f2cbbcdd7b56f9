// Package control runs the polling loops that map button presses to LED modes.
package control

import (
	"context"
	"fmt"
	"time"

	"github.com/smazurov/gpioblink/internal/events"
	"github.com/smazurov/gpioblink/internal/logging"
)

// Program is one polling loop body.
type Program interface {
	Name() string
	// Step runs one iteration: poll inputs, update modes, drive outputs.
	Step(now time.Time) error
	// Close drives every output low.
	Close() error
}

// Announcer is implemented by programs that publish their starting modes
// before the first step.
type Announcer interface {
	Announce(now time.Time)
}

// Publisher receives state change events. *events.Bus satisfies it.
type Publisher interface {
	Publish(ev events.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(events.Event) {}

func publisherOrNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// Run steps the program, sleeping interval between iterations, until ctx is
// cancelled. A failing step stops the loop and returns its error.
func Run(ctx context.Context, p Program, interval time.Duration, logger logging.Logger) error {
	logger.Info("Control loop started", "program", p.Name(), "interval", interval)
	if a, ok := p.(Announcer); ok {
		a.Announce(time.Now())
	}

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Control loop stopped", "program", p.Name())
			return nil
		case now := <-timer.C:
			if err := p.Step(now); err != nil {
				return fmt.Errorf("%s step: %w", p.Name(), err)
			}
			timer.Reset(interval)
		}
	}
}

func timestamp(now time.Time) string {
	return now.Format(time.RFC3339Nano)
}
