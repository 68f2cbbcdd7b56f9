package metrics

import (
	"github.com/smazurov/gpioblink/internal/events"
)

// Subscriber is the part of events.Bus the Recorder needs.
type Subscriber interface {
	Subscribe(handler any) func()
}

// Recorder turns bus events into metric updates.
type Recorder struct {
	unsubs []func()
}

// NewRecorder subscribes to mode, flash and line events on bus.
func NewRecorder(bus Subscriber) *Recorder {
	r := &Recorder{}
	r.unsubs = append(r.unsubs,
		bus.Subscribe(func(e events.ModeChangedEvent) {
			if e.Initial {
				SetModeValue(e.Program, e.Mode, e.Index)
				return
			}
			SetMode(e.Program, e.Mode, e.Index)
		}),
		bus.Subscribe(func(e events.FlashToggledEvent) {
			IncFlashToggles(e.Program)
		}),
		bus.Subscribe(func(e events.LineWrittenEvent) {
			IncGPIOWrites(e.Pin)
		}),
	)
	return r
}

// Close unsubscribes from the bus.
func (r *Recorder) Close() {
	for _, unsub := range r.unsubs {
		unsub()
	}
	r.unsubs = nil
}
