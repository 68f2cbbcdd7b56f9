package gpio

import "github.com/smazurov/gpioblink/internal/logging"

// SimulatorModel is the board model reported by the simulated chip.
const SimulatorModel = "simulator"

// Open returns the simulated chip when simulate is set, the periph hardware
// chip otherwise.
func Open(simulate bool, logger logging.Logger) (Chip, error) {
	if simulate {
		if logger != nil {
			logger.Info("Using simulated GPIO chip")
		}
		return NewSim(SimulatorModel), nil
	}

	chip, err := NewPeriph()
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Debug("Initialized GPIO chip", "chip", chip.Name())
	}
	return chip, nil
}
