package control

import (
	"time"

	"github.com/smazurov/gpioblink/internal/events"
	"github.com/smazurov/gpioblink/internal/led"
)

// BlinkProgram is the program name reported in events and logs.
const BlinkProgram = "blink"

// Blinker flips every LED in its bank on each step.
type Blinker struct {
	leds *led.Bank
	on   bool
	pub  Publisher
}

// NewBlinker builds a blinker. The LEDs start off, so the first step turns them on.
func NewBlinker(leds *led.Bank, pub Publisher) *Blinker {
	return &Blinker{leds: leds, pub: publisherOrNop(pub)}
}

// Name implements Program.
func (b *Blinker) Name() string { return BlinkProgram }

// Step implements Program.
func (b *Blinker) Step(now time.Time) error {
	b.on = !b.on
	b.pub.Publish(events.FlashToggledEvent{
		Program:   BlinkProgram,
		Phase:     b.on,
		Timestamp: timestamp(now),
	})
	return b.leds.SetAll(b.on)
}

// Close implements Program.
func (b *Blinker) Close() error {
	return b.leds.Release()
}
