// Package gpio acquires digital lines on a single-board computer by BCM number.
package gpio

import (
	"errors"
	"fmt"
)

// Direction is the configured direction of a line.
type Direction int

// Line directions.
const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

var (
	// ErrDirectionMismatch is matched by errors returned when writing to an input line.
	ErrDirectionMismatch = errors.New("line direction mismatch")
	// ErrPinNotFound is returned when the chip has no line with the requested number.
	ErrPinNotFound = errors.New("pin not found")
	// ErrDeviceInfo is returned when the board model cannot be determined.
	ErrDeviceInfo = errors.New("device info unavailable")
)

// DirectionError reports an operation that needs a different line direction.
type DirectionError struct {
	Pin       int
	Direction Direction
	Op        string
}

func (e *DirectionError) Error() string {
	return fmt.Sprintf("gpio%d: cannot %s a line configured as %s", e.Pin, e.Op, e.Direction)
}

// Is reports ErrDirectionMismatch as a match.
func (e *DirectionError) Is(target error) bool {
	return target == ErrDirectionMismatch
}

// Driver is the hardware side of a single line.
type Driver interface {
	// Out configures the line as output and drives it.
	Out(high bool) error
	// In configures the line as input with the internal pull-up enabled.
	In() error
	// Read samples the current logic level.
	Read() bool
}

// Chip hands out drivers for lines by BCM number.
type Chip interface {
	Name() string
	Line(pin int) (Driver, error)
	// BoardModel returns the human readable board model.
	BoardModel() (string, error)
}

// Line is an acquired line with a fixed direction.
type Line struct {
	pin int
	dir Direction
	drv Driver
}

// OpenOutput acquires pin as an output and drives it low.
func OpenOutput(chip Chip, pin int) (*Line, error) {
	drv, err := chip.Line(pin)
	if err != nil {
		return nil, fmt.Errorf("acquire gpio%d: %w", pin, err)
	}
	if err := drv.Out(false); err != nil {
		return nil, fmt.Errorf("configure gpio%d as output: %w", pin, err)
	}
	return &Line{pin: pin, dir: Output, drv: drv}, nil
}

// OpenInput acquires pin as a pulled-up input.
func OpenInput(chip Chip, pin int) (*Line, error) {
	drv, err := chip.Line(pin)
	if err != nil {
		return nil, fmt.Errorf("acquire gpio%d: %w", pin, err)
	}
	if err := drv.In(); err != nil {
		return nil, fmt.Errorf("configure gpio%d as input: %w", pin, err)
	}
	return &Line{pin: pin, dir: Input, drv: drv}, nil
}

// Pin returns the BCM number of the line.
func (l *Line) Pin() int { return l.pin }

// Direction returns the direction the line was acquired with.
func (l *Line) Direction() Direction { return l.dir }

// Write drives an output line.
func (l *Line) Write(high bool) error {
	if l.dir != Output {
		return &DirectionError{Pin: l.pin, Direction: l.dir, Op: "write"}
	}
	return l.drv.Out(high)
}

// Read samples the line level.
func (l *Line) Read() bool {
	return l.drv.Read()
}

// Release drives output lines low. Input lines are left untouched.
func Release(lines ...*Line) error {
	var errs []error
	for _, l := range lines {
		if l == nil || l.dir != Output {
			continue
		}
		if err := l.drv.Out(false); err != nil {
			errs = append(errs, fmt.Errorf("release gpio%d: %w", l.pin, err))
		}
	}
	return errors.Join(errs...)
}
