package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/gpioblink/cmd"
	"github.com/smazurov/gpioblink/internal/config"
	"github.com/smazurov/gpioblink/internal/logging"
	"github.com/smazurov/gpioblink/internal/version"
	"github.com/spf13/cobra"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"gpioblink.toml"`

	// Pin settings
	PinRed         int `help:"GPIO line of the red LED" default:"14" toml:"pins.red" env:"PINS_RED"`
	PinGreen       int `help:"GPIO line of the green LED" default:"15" toml:"pins.green" env:"PINS_GREEN"`
	PinBlue        int `help:"GPIO line of the blue LED" default:"18" toml:"pins.blue" env:"PINS_BLUE"`
	PinWhite       int `help:"GPIO line of the white LED" default:"23" toml:"pins.white" env:"PINS_WHITE"`
	PinColorButton int `help:"GPIO line of the color button" default:"2" toml:"pins.color_button" env:"PINS_COLOR_BUTTON"`
	PinRateButton  int `help:"GPIO line of the rate button" default:"3" toml:"pins.rate_button" env:"PINS_RATE_BUTTON"`

	// Loop settings
	PollInterval string `help:"Time between polls" default:"10ms" toml:"loop.poll_interval" env:"LOOP_POLL_INTERVAL"`
	FlashStep    string `help:"Flash threshold per lighting level" default:"100ms" toml:"loop.flash_step" env:"LOOP_FLASH_STEP"`

	// Runtime settings
	Simulate    bool   `help:"Use the simulated GPIO chip" default:"false" toml:"gpio.simulate" env:"GPIO_SIMULATE"`
	MetricsAddr string `help:"Serve Prometheus metrics on this address" default:"" toml:"metrics.addr" env:"METRICS_ADDR"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingControl string `help:"Control loop logging level" default:"info" toml:"logging.control" env:"LOGGING_CONTROL"`
	LoggingGpio    string `help:"GPIO logging level" default:"info" toml:"logging.gpio" env:"LOGGING_GPIO"`
	LoggingMetrics string `help:"Metrics logging level" default:"info" toml:"logging.metrics" env:"LOGGING_METRICS"`
}

func main() {
	var root *cobra.Command

	// Create Huma CLI
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.LoadConfig(opts, root); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Initialize logging system
		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"control": opts.LoggingControl,
				"gpio":    opts.LoggingGpio,
				"metrics": opts.LoggingMetrics,
			},
		})

		logger := logging.GetLogger("main")
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})

		// Subcommands share this parse step, so GPIO is only touched once
		// the root command itself starts.
		hooks.OnStart(func() {
			defer close(done)
			logger.Info("Starting gpioblink", "version", version.String())

			pollInterval, err := cmd.ParseInterval("poll-interval", opts.PollInterval)
			if err != nil {
				logger.Error("Invalid configuration", "error", err)
				os.Exit(1)
			}
			flashStep, err := cmd.ParseInterval("flash-step", opts.FlashStep)
			if err != nil {
				logger.Error("Invalid configuration", "error", err)
				os.Exit(1)
			}

			rt, err := cmd.StartRuntime(cmd.RuntimeOptions{
				Simulate:    opts.Simulate,
				MetricsAddr: opts.MetricsAddr,
			})
			if err != nil {
				logger.Error("Failed to start", "error", err)
				os.Exit(1)
			}
			defer rt.Close()

			program, err := cmd.NewColorProgram(rt, cmd.ColorPins{
				Red:         opts.PinRed,
				Green:       opts.PinGreen,
				Blue:        opts.PinBlue,
				White:       opts.PinWhite,
				ColorButton: opts.PinColorButton,
				RateButton:  opts.PinRateButton,
			}, flashStep)
			if err != nil {
				rt.Close()
				logger.Error("Failed to set up GPIO", "error", err)
				os.Exit(1)
			}

			// Pick up logging level changes without a restart
			watcher := config.NewConfigWatcher(opts.Config, config.ReadLoggingConfig, logging.GetLogger("config"))
			watcher.OnReload(logging.Reconfigure)
			if watchErr := watcher.Start(); watchErr != nil {
				logger.Debug("Config hot reload disabled", "path", opts.Config, "error", watchErr)
			}
			defer func() {
				if stopErr := watcher.Stop(); stopErr != nil {
					logger.Warn("Error stopping config watcher", "error", stopErr)
				}
			}()

			if runErr := rt.Run(ctx, program, pollInterval); runErr != nil {
				logger.Error("Control loop failed", "error", runErr)
				rt.Close()
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down")
			cancel()
			<-done
		})
	})

	root = cli.Root()
	root.Use = "gpioblink"
	root.Short = "Flash four LEDs in a color and rate chosen by two buttons"
	root.Version = version.String()

	root.AddCommand(cmd.CreateBlinkCmd())
	root.AddCommand(cmd.CreateToggleCmd())
	root.AddCommand(cmd.CreateVersionCmd())

	// Run the CLI
	cli.Run()
}
