// Package metrics provides Prometheus metrics for the control programs and
// the GPIO lines they drive.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "gpioblink"

var (
	controlMode = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "control",
		Name:      "mode",
		Help:      "Index of the current mode value per program",
	}, []string{"program", "mode"})

	controlModeChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "control",
		Name:      "mode_changes_total",
		Help:      "Mode changes caused by button press-release cycles",
	}, []string{"program", "mode"})

	controlFlashToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "control",
		Name:      "flash_toggles_total",
		Help:      "Flash phase flips",
	}, []string{"program"})

	gpioWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "gpio",
		Name:      "writes_total",
		Help:      "Physical writes to output lines",
	}, []string{"pin"})
)

// SetMode records the current index of a program's mode and counts the change.
func SetMode(program, mode string, index int) {
	SetModeValue(program, mode, index)
	controlModeChanges.WithLabelValues(program, mode).Inc()
}

// SetModeValue records the current mode index without counting a change.
func SetModeValue(program, mode string, index int) {
	controlMode.WithLabelValues(program, mode).Set(float64(index))
}

// IncFlashToggles counts one flash phase flip.
func IncFlashToggles(program string) {
	controlFlashToggles.WithLabelValues(program).Inc()
}

// IncGPIOWrites counts one physical write to pin.
func IncGPIOWrites(pin int) {
	gpioWrites.WithLabelValues(strconv.Itoa(pin)).Inc()
}

// DeleteProgram removes the per-program series, used when a program exits.
func DeleteProgram(program string) {
	controlMode.DeletePartialMatch(prometheus.Labels{"program": program})
	controlModeChanges.DeletePartialMatch(prometheus.Labels{"program": program})
	controlFlashToggles.DeleteLabelValues(program)
}
