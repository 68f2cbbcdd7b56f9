package cmd

import (
	"time"

	"github.com/smazurov/gpioblink/internal/button"
	"github.com/smazurov/gpioblink/internal/control"
	"github.com/smazurov/gpioblink/internal/led"
	"github.com/smazurov/gpioblink/internal/logging"
)

// ColorPins are the GPIO lines of the color program.
type ColorPins struct {
	Red, Green, Blue, White int
	ColorButton, RateButton int
}

// NewColorProgram acquires the four LEDs and both buttons. Anything acquired
// before a failure is released again.
func NewColorProgram(rt *Runtime, pins ColorPins, flashStep time.Duration) (control.Program, error) {
	gpioLogger := logging.GetLogger("gpio")

	leds, err := led.OpenBank(rt.Chip,
		[]int{pins.Red, pins.Green, pins.Blue, pins.White},
		gpioLogger, rt.LedOptions()...)
	if err != nil {
		return nil, err
	}

	release := func() {
		if releaseErr := leds.Release(); releaseErr != nil {
			gpioLogger.Warn("Failed to release leds", "error", releaseErr)
		}
	}

	colorBtn, err := button.Open(rt.Chip, pins.ColorButton)
	if err != nil {
		release()
		return nil, err
	}
	rateBtn, err := button.Open(rt.Chip, pins.RateButton)
	if err != nil {
		release()
		return nil, err
	}

	program, err := control.NewColorController(leds, colorBtn, rateBtn, control.ColorOptions{
		FlashStep: flashStep,
		Publisher: rt.Bus,
		Logger:    logging.GetLogger("control"),
	})
	if err != nil {
		release()
		return nil, err
	}
	return program, nil
}
