package control

import "time"

// Lighting selects the flash rate. Off leaves every LED dark.
type Lighting int

// Lighting modes, cycled in order by the rate button.
const (
	LightingOff Lighting = iota
	LightingOne
	LightingTwo
	LightingThree

	lightingCount
)

// Next returns the following lighting mode, wrapping after Three.
func (l Lighting) Next() Lighting {
	return (l + 1) % lightingCount
}

// Threshold is how long each flash phase lasts for this mode.
func (l Lighting) Threshold(step time.Duration) time.Duration {
	return time.Duration(l) * step
}

func (l Lighting) String() string {
	switch l {
	case LightingOff:
		return "off"
	case LightingOne:
		return "one"
	case LightingTwo:
		return "two"
	case LightingThree:
		return "three"
	default:
		return "unknown"
	}
}

// Color selects which LED flashes.
type Color int

// Colors, cycled in order by the color button.
const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorWhite
	ColorAll

	colorCount
)

// Next returns the following color, wrapping after All.
func (c Color) Next() Color {
	return (c + 1) % colorCount
}

// Mask reports which of the red, green, blue and white LEDs follow the flash
// phase. The rest stay off.
func (c Color) Mask() [4]bool {
	switch c {
	case ColorRed:
		return [4]bool{true, false, false, false}
	case ColorGreen:
		return [4]bool{false, true, false, false}
	case ColorBlue:
		return [4]bool{false, false, true, false}
	case ColorWhite:
		return [4]bool{false, false, false, true}
	case ColorAll:
		return [4]bool{true, true, true, true}
	default:
		return [4]bool{}
	}
}

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorWhite:
		return "white"
	case ColorAll:
		return "all"
	default:
		return "unknown"
	}
}

// Flasher flips a boolean phase once its threshold has elapsed.
type Flasher struct {
	phase bool
	last  time.Time
}

// NewFlasher starts a flasher whose first window opens at now.
func NewFlasher(now time.Time) *Flasher {
	return &Flasher{last: now}
}

// Tick flips the phase if at least threshold passed since the last flip and
// reports whether it did.
func (f *Flasher) Tick(now time.Time, threshold time.Duration) bool {
	if now.Sub(f.last) < threshold {
		return false
	}
	f.phase = !f.phase
	f.last = now
	return true
}

// Phase returns the current flash phase.
func (f *Flasher) Phase() bool {
	return f.phase
}
