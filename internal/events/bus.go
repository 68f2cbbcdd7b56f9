package events

import (
	"github.com/kelindar/event"
)

// Bus fans out events to typed subscribers through a kelindar/event
// dispatcher. Handlers run on the dispatcher's goroutines, so Publish never
// waits on them and a slow subscriber cannot stall a control loop.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates an event bus.
func New() *Bus {
	return &Bus{dispatcher: event.NewDispatcher()}
}

// Publish delivers ev to every subscriber of its concrete type. Events of
// unknown types are dropped.
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case ModeChangedEvent:
		event.Publish(b.dispatcher, e)
	case FlashToggledEvent:
		event.Publish(b.dispatcher, e)
	case LineWrittenEvent:
		event.Publish(b.dispatcher, e)
	case ButtonReleasedEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers handler for the event type named by its parameter,
// for example func(ModeChangedEvent). It returns the unsubscribe function,
// which is a no-op for unsupported handler types.
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(ModeChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(FlashToggledEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LineWrittenEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ButtonReleasedEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

// Close stops delivery to all subscribers.
func (b *Bus) Close() error {
	return b.dispatcher.Close()
}
