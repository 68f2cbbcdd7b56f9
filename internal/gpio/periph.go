package gpio

import (
	"fmt"
	"os"
	"strings"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// periphChip implements Chip on top of periph.io host drivers.
type periphChip struct {
	modelPath string
}

// periphLine adapts a periph pin to Driver.
type periphLine struct {
	pin gpio.PinIO
}

// NewPeriph initializes the periph host drivers and returns a hardware chip.
func NewPeriph() (Chip, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("initialize periph host: %w", err)
	}
	return &periphChip{modelPath: deviceTreeModelPath}, nil
}

func (c *periphChip) Name() string {
	return "periph"
}

func (c *periphChip) Line(pin int) (Driver, error) {
	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if p == nil {
		return nil, fmt.Errorf("GPIO%d: %w", pin, ErrPinNotFound)
	}
	return &periphLine{pin: p}, nil
}

// BoardModel reads the device tree model to identify the board.
func (c *periphChip) BoardModel() (string, error) {
	return readModel(c.modelPath)
}

func readModel(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDeviceInfo, err)
	}

	// Device tree model contains null bytes, trim them
	model := strings.TrimSpace(strings.TrimRight(string(data), "\x00"))
	if model == "" {
		return "", fmt.Errorf("%w: empty model in %s", ErrDeviceInfo, path)
	}
	return model, nil
}

func (l *periphLine) Out(high bool) error {
	return l.pin.Out(gpio.Level(high))
}

func (l *periphLine) In() error {
	return l.pin.In(gpio.PullUp, gpio.NoEdge)
}

func (l *periphLine) Read() bool {
	return l.pin.Read() == gpio.High
}
