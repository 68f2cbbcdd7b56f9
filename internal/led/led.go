// Package led drives LEDs attached to GPIO output lines.
package led

import (
	"github.com/smazurov/gpioblink/internal/gpio"
)

// WriteHook is called after every physical write.
type WriteHook func(pin int, high bool)

// Option configures a Led.
type Option func(*Led)

// WithWriteHook registers a hook called after each physical write.
func WithWriteHook(hook WriteHook) Option {
	return func(l *Led) {
		l.onWrite = hook
	}
}

// Led is an output line that only touches hardware when its state changes.
type Led struct {
	line    *gpio.Line
	isOn    bool
	onWrite WriteHook
}

// New wraps an acquired line. The line is assumed to be driven low, which is
// what gpio.OpenOutput leaves it at.
func New(line *gpio.Line, opts ...Option) *Led {
	l := &Led{line: line}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Set drives the LED to on. Repeated calls with the current state do nothing.
func (l *Led) Set(on bool) error {
	if l.isOn == on {
		return nil
	}
	if err := l.line.Write(on); err != nil {
		return err
	}
	l.isOn = on
	if l.onWrite != nil {
		l.onWrite(l.line.Pin(), on)
	}
	return nil
}

// IsOn returns the last driven state.
func (l *Led) IsOn() bool {
	return l.isOn
}

// Pin returns the BCM number of the underlying line.
func (l *Led) Pin() int {
	return l.line.Pin()
}
