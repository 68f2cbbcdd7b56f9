package led

import (
	"fmt"

	"github.com/smazurov/gpioblink/internal/gpio"
	"github.com/smazurov/gpioblink/internal/logging"
)

// Bank is an ordered group of LEDs acquired together.
type Bank struct {
	leds   []*Led
	lines  []*gpio.Line
	logger logging.Logger
}

// OpenBank acquires every pin as an output. If any pin fails, lines acquired
// so far are released before returning the error.
func OpenBank(chip gpio.Chip, pins []int, logger logging.Logger, opts ...Option) (*Bank, error) {
	b := &Bank{logger: logger}
	for _, pin := range pins {
		line, err := gpio.OpenOutput(chip, pin)
		if err != nil {
			if relErr := b.Release(); relErr != nil && logger != nil {
				logger.Warn("Failed to release LED lines", "error", relErr)
			}
			return nil, err
		}
		b.lines = append(b.lines, line)
		b.leds = append(b.leds, New(line, opts...))
	}
	if logger != nil {
		logger.Debug("LED bank acquired", "pins", pins)
	}
	return b, nil
}

// Len returns the number of LEDs in the bank.
func (b *Bank) Len() int {
	return len(b.leds)
}

// At returns the LED at index i.
func (b *Bank) At(i int) *Led {
	return b.leds[i]
}

// Set drives each LED to the matching entry of states.
func (b *Bank) Set(states ...bool) error {
	if len(states) != len(b.leds) {
		return fmt.Errorf("bank has %d leds, got %d states", len(b.leds), len(states))
	}
	for i, on := range states {
		if err := b.leds[i].Set(on); err != nil {
			return fmt.Errorf("set led on gpio%d: %w", b.leds[i].Pin(), err)
		}
	}
	return nil
}

// SetAll drives every LED to the same state.
func (b *Bank) SetAll(on bool) error {
	for _, l := range b.leds {
		if err := l.Set(on); err != nil {
			return fmt.Errorf("set led on gpio%d: %w", l.Pin(), err)
		}
	}
	return nil
}

// Release drives every acquired line low.
func (b *Bank) Release() error {
	err := gpio.Release(b.lines...)
	for _, l := range b.leds {
		l.isOn = false
	}
	return err
}
