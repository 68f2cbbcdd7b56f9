package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/smazurov/gpioblink/internal/config"
	"github.com/smazurov/gpioblink/internal/control"
	"github.com/smazurov/gpioblink/internal/events"
	"github.com/smazurov/gpioblink/internal/gpio"
	"github.com/smazurov/gpioblink/internal/led"
	"github.com/smazurov/gpioblink/internal/logging"
	"github.com/smazurov/gpioblink/internal/metrics"
	"github.com/smazurov/gpioblink/internal/metrics/exporters"
	"github.com/smazurov/gpioblink/internal/systemd"
)

// RuntimeOptions configures the process-wide pieces every program shares.
type RuntimeOptions struct {
	Simulate    bool
	MetricsAddr string
	// Out receives the startup banner. Nil means os.Stdout.
	Out io.Writer
	// Chip replaces the chip Simulate would select.
	Chip gpio.Chip
}

// Runtime owns the GPIO chip, the event bus and the metrics plumbing around
// a control program.
type Runtime struct {
	Chip gpio.Chip
	Bus  *events.Bus

	recorder   *metrics.Recorder
	metricsSrv *exporters.Server
	unsubs     []func()
	logger     *slog.Logger
	closeOnce  sync.Once
}

// StartRuntime opens the chip, prints the board banner and starts metrics.
// A board model that cannot be read is fatal to the caller.
func StartRuntime(opts RuntimeOptions) (*Runtime, error) {
	logger := logging.GetLogger("main")

	chip := opts.Chip
	if chip == nil {
		var err error
		chip, err = gpio.Open(opts.Simulate, logging.GetLogger("gpio"))
		if err != nil {
			return nil, fmt.Errorf("open gpio chip: %w", err)
		}
	}

	model, err := chip.BoardModel()
	if err != nil {
		return nil, err
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "Blinking an LED on a %s.\n", model)

	r := &Runtime{
		Chip:   chip,
		Bus:    events.New(),
		logger: logger,
	}
	r.recorder = metrics.NewRecorder(r.Bus)
	r.unsubs = append(r.unsubs, r.Bus.Subscribe(func(e events.ModeChangedEvent) {
		if _, notifyErr := systemd.Status(fmt.Sprintf("%s %s=%s", e.Program, e.Mode, e.Value)); notifyErr != nil {
			logger.Debug("Failed to update systemd status", "error", notifyErr)
		}
	}))

	if opts.MetricsAddr != "" {
		srv, serveErr := exporters.Serve(opts.MetricsAddr, logging.GetLogger("metrics"))
		if serveErr != nil {
			r.Close()
			return nil, fmt.Errorf("start metrics server: %w", serveErr)
		}
		r.metricsSrv = srv
	}

	return r, nil
}

// LedOptions returns the options that publish every physical LED write.
func (r *Runtime) LedOptions() []led.Option {
	return []led.Option{
		led.WithWriteHook(func(pin int, high bool) {
			r.Bus.Publish(events.LineWrittenEvent{Pin: pin, High: high})
		}),
	}
}

// Run drives p until ctx is cancelled or a step fails, then drives its
// outputs low. A step error takes precedence over a release error.
func (r *Runtime) Run(ctx context.Context, p control.Program, interval time.Duration) error {
	if _, err := systemd.Ready(); err != nil {
		r.logger.Warn("Failed to notify systemd", "error", err)
	}

	runErr := control.Run(ctx, p, interval, logging.GetLogger("control"))

	if _, err := systemd.Stopping(); err != nil {
		r.logger.Debug("Failed to notify systemd", "error", err)
	}
	if closeErr := p.Close(); closeErr != nil {
		r.logger.Error("Failed to release outputs", "program", p.Name(), "error", closeErr)
		if runErr == nil {
			runErr = closeErr
		}
	}
	metrics.DeleteProgram(p.Name())
	return runErr
}

// Close stops metrics and the event bus. It is safe to call more than once.
func (r *Runtime) Close() {
	r.closeOnce.Do(func() {
		for _, unsub := range r.unsubs {
			unsub()
		}
		r.recorder.Close()
		if err := r.Bus.Close(); err != nil {
			r.logger.Debug("Failed to close event bus", "error", err)
		}
		if r.metricsSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := r.metricsSrv.Shutdown(ctx); err != nil {
				r.logger.Warn("Failed to stop metrics server", "error", err)
			}
		}
	})
}

// ParseInterval parses a duration flag, rejecting non-positive values.
func ParseInterval(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", name, value)
	}
	return d, nil
}

// programFactory builds a program on an opened runtime.
type programFactory func(rt *Runtime) (control.Program, error)

// runStandalone is the body shared by the subcommands: it starts the runtime,
// builds the program and runs it until SIGINT or SIGTERM. It returns the
// process exit code.
func runStandalone(ctx context.Context, opts RuntimeOptions, interval time.Duration, build programFactory) int {
	logger := logging.GetLogger("main")

	rt, err := StartRuntime(opts)
	if err != nil {
		logger.Error("Failed to start", "error", err)
		return 1
	}
	defer rt.Close()

	p, err := build(rt)
	if err != nil {
		logger.Error("Failed to set up program", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rt.Run(ctx, p, interval); err != nil {
		logger.Error("Program stopped", "program", p.Name(), "error", err)
		return 1
	}
	return 0
}

// initLogging applies the [logging] table of configPath, forcing JSON output
// when logJSON is set.
func initLogging(configPath string, logJSON bool) {
	cfg := config.LoadLoggingConfig(configPath)
	if logJSON {
		cfg.Format = "json"
	}
	logging.Initialize(cfg)
}
