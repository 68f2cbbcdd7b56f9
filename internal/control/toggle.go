package control

import (
	"time"

	"github.com/smazurov/gpioblink/internal/button"
	"github.com/smazurov/gpioblink/internal/events"
	"github.com/smazurov/gpioblink/internal/led"
	"github.com/smazurov/gpioblink/internal/logging"
)

// ToggleProgram is the program name reported in events and logs.
const ToggleProgram = "toggle"

// Toggle switches a bank of LEDs on and off together, one press-release
// cycle at a time.
type Toggle struct {
	leds *led.Bank
	btn  *button.Button
	on   bool

	pub    Publisher
	logger logging.Logger
}

// NewToggle builds a toggle program. The LEDs start off.
func NewToggle(leds *led.Bank, btn *button.Button, pub Publisher, logger logging.Logger) *Toggle {
	return &Toggle{
		leds:   leds,
		btn:    btn,
		pub:    publisherOrNop(pub),
		logger: logger,
	}
}

// Name implements Program.
func (t *Toggle) Name() string { return ToggleProgram }

// IsOn returns the current mode.
func (t *Toggle) IsOn() bool { return t.on }

// Step implements Program.
func (t *Toggle) Step(now time.Time) error {
	if t.btn.IsPressedUp() {
		t.on = !t.on
		if t.logger != nil {
			t.logger.Debug("Mode changed", "mode", "power", "value", powerValue(t.on), "pin", t.btn.Pin())
		}
		t.pub.Publish(events.ButtonReleasedEvent{Program: ToggleProgram, Pin: t.btn.Pin()})
		t.pub.Publish(t.powerEvent(now))
	}
	t.btn.Update()

	return t.leds.SetAll(t.on)
}

// Announce implements Announcer.
func (t *Toggle) Announce(now time.Time) {
	ev := t.powerEvent(now)
	ev.Initial = true
	t.pub.Publish(ev)
}

// Close implements Program.
func (t *Toggle) Close() error {
	return t.leds.Release()
}

func (t *Toggle) powerEvent(now time.Time) events.ModeChangedEvent {
	return events.ModeChangedEvent{
		Program:   ToggleProgram,
		Mode:      "power",
		Value:     powerValue(t.on),
		Index:     boolIndex(t.on),
		Timestamp: timestamp(now),
	}
}

func powerValue(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
