// Package button reads active-low push buttons on pulled-up GPIO inputs.
package button

import (
	"github.com/smazurov/gpioblink/internal/gpio"
)

// Button latches whether its line was active at the last Update.
// There is no debounce: contact bounce shows up as extra press-release cycles.
type Button struct {
	line    *gpio.Line
	pressed bool
}

// Open acquires pin as a pulled-up input.
func Open(chip gpio.Chip, pin int) (*Button, error) {
	line, err := gpio.OpenInput(chip, pin)
	if err != nil {
		return nil, err
	}
	return New(line), nil
}

// New wraps an acquired input line.
func New(line *gpio.Line) *Button {
	return &Button{line: line}
}

// Update samples the line and latches whether it is pulled low.
func (b *Button) Update() {
	b.pressed = !b.line.Read()
}

// IsPressed returns the latched state.
func (b *Button) IsPressed() bool {
	return b.pressed
}

// IsPressedUp reports a completed press-release cycle: the latch says pressed
// but the line reads released now. Call it before Update.
func (b *Button) IsPressedUp() bool {
	return b.pressed && b.line.Read()
}

// Pin returns the BCM number of the underlying line.
func (b *Button) Pin() int {
	return b.line.Pin()
}
