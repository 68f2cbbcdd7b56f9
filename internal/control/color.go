package control

import (
	"fmt"
	"time"

	"github.com/smazurov/gpioblink/internal/button"
	"github.com/smazurov/gpioblink/internal/events"
	"github.com/smazurov/gpioblink/internal/led"
	"github.com/smazurov/gpioblink/internal/logging"
)

// ColorProgram is the program name reported in events and logs.
const ColorProgram = "color"

// DefaultFlashStep is the flash threshold per lighting level.
const DefaultFlashStep = 100 * time.Millisecond

// ColorOptions configures a ColorController.
type ColorOptions struct {
	// FlashStep multiplied by the lighting level gives the flash threshold.
	FlashStep time.Duration
	// Start opens the first flash window. Zero means time.Now().
	Start     time.Time
	Publisher Publisher
	Logger    logging.Logger
}

// ColorController flashes one of four LEDs. The rate button cycles Lighting,
// the color button cycles Color.
type ColorController struct {
	leds     *led.Bank
	colorBtn *button.Button
	rateBtn  *button.Button

	lighting Lighting
	color    Color
	flasher  *Flasher
	step     time.Duration

	pub    Publisher
	logger logging.Logger
}

// NewColorController builds the controller. leds must hold red, green, blue
// and white in that order.
func NewColorController(leds *led.Bank, colorBtn, rateBtn *button.Button, opts ColorOptions) (*ColorController, error) {
	if leds.Len() != 4 {
		return nil, fmt.Errorf("color controller needs 4 leds, got %d", leds.Len())
	}
	step := opts.FlashStep
	if step <= 0 {
		step = DefaultFlashStep
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now()
	}
	return &ColorController{
		leds:     leds,
		colorBtn: colorBtn,
		rateBtn:  rateBtn,
		lighting: LightingOff,
		color:    ColorAll,
		flasher:  NewFlasher(start),
		step:     step,
		pub:      publisherOrNop(opts.Publisher),
		logger:   opts.Logger,
	}, nil
}

// Name implements Program.
func (c *ColorController) Name() string { return ColorProgram }

// Lighting returns the current lighting mode.
func (c *ColorController) Lighting() Lighting { return c.lighting }

// Color returns the current color.
func (c *ColorController) Color() Color { return c.color }

// Step implements Program.
func (c *ColorController) Step(now time.Time) error {
	if c.rateBtn.IsPressedUp() {
		c.lighting = c.lighting.Next()
		c.modeChanged(now, c.rateBtn, "lighting", c.lighting.String(), int(c.lighting))
	}
	if c.colorBtn.IsPressedUp() {
		c.color = c.color.Next()
		c.modeChanged(now, c.colorBtn, "color", c.color.String(), int(c.color))
	}
	c.rateBtn.Update()
	c.colorBtn.Update()

	if c.lighting == LightingOff {
		return c.leds.SetAll(false)
	}

	if c.flasher.Tick(now, c.lighting.Threshold(c.step)) {
		c.pub.Publish(events.FlashToggledEvent{
			Program:   ColorProgram,
			Phase:     c.flasher.Phase(),
			Timestamp: timestamp(now),
		})
	}

	phase := c.flasher.Phase()
	mask := c.color.Mask()
	return c.leds.Set(mask[0] && phase, mask[1] && phase, mask[2] && phase, mask[3] && phase)
}

// Announce implements Announcer.
func (c *ColorController) Announce(now time.Time) {
	for _, ev := range []events.ModeChangedEvent{
		{Mode: "lighting", Value: c.lighting.String(), Index: int(c.lighting)},
		{Mode: "color", Value: c.color.String(), Index: int(c.color)},
	} {
		ev.Program = ColorProgram
		ev.Initial = true
		ev.Timestamp = timestamp(now)
		c.pub.Publish(ev)
	}
}

// Close implements Program.
func (c *ColorController) Close() error {
	return c.leds.Release()
}

func (c *ColorController) modeChanged(now time.Time, b *button.Button, mode, value string, index int) {
	if c.logger != nil {
		c.logger.Debug("Mode changed", "mode", mode, "value", value, "pin", b.Pin())
	}
	c.pub.Publish(events.ButtonReleasedEvent{Program: ColorProgram, Pin: b.Pin()})
	c.pub.Publish(events.ModeChangedEvent{
		Program:   ColorProgram,
		Mode:      mode,
		Value:     value,
		Index:     index,
		Timestamp: timestamp(now),
	})
}
