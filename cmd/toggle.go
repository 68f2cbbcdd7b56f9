package cmd

import (
	"os"

	"github.com/smazurov/gpioblink/internal/button"
	"github.com/smazurov/gpioblink/internal/config"
	"github.com/smazurov/gpioblink/internal/control"
	"github.com/smazurov/gpioblink/internal/led"
	"github.com/smazurov/gpioblink/internal/logging"
	"github.com/spf13/cobra"
)

// ToggleOptions are the flags of the toggle command.
type ToggleOptions struct {
	Config       string
	PinRed       int    `toml:"pins.red" env:"PINS_RED"`
	PinGreen     int    `toml:"pins.green" env:"PINS_GREEN"`
	PinBlue      int    `toml:"pins.blue" env:"PINS_BLUE"`
	PinWhite     int    `toml:"pins.white" env:"PINS_WHITE"`
	PinButton    int    `toml:"toggle.button" env:"TOGGLE_BUTTON"`
	PollInterval string `toml:"loop.poll_interval" env:"LOOP_POLL_INTERVAL"`
	Simulate     bool   `toml:"gpio.simulate" env:"GPIO_SIMULATE"`
	MetricsAddr  string `toml:"metrics.addr" env:"METRICS_ADDR"`
}

// CreateToggleCmd creates the toggle command.
func CreateToggleCmd() *cobra.Command {
	opts := &ToggleOptions{}
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "toggle",
		Short: "Toggle four LEDs with one button",
		Long: `Polls a single button and switches four LEDs on or off together on every ` +
			`press-release cycle. The LEDs start off and are left off on exit.`,
		Args: cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			initLogging(opts.Config, logJSON)
			logger := logging.GetLogger("main")

			if err := config.LoadConfig(opts, c); err != nil {
				logger.Warn("Failed to load config", "error", err)
			}
			interval, err := ParseInterval("poll-interval", opts.PollInterval)
			if err != nil {
				logger.Error("Invalid configuration", "error", err)
				os.Exit(1)
			}

			pins := []int{opts.PinRed, opts.PinGreen, opts.PinBlue, opts.PinWhite}
			logger.Info("Starting toggle", "leds", pins, "button", opts.PinButton)
			code := runStandalone(c.Context(), RuntimeOptions{
				Simulate:    opts.Simulate,
				MetricsAddr: opts.MetricsAddr,
			}, interval, func(rt *Runtime) (control.Program, error) {
				gpioLogger := logging.GetLogger("gpio")
				leds, openErr := led.OpenBank(rt.Chip, pins, gpioLogger, rt.LedOptions()...)
				if openErr != nil {
					return nil, openErr
				}
				btn, openErr := button.Open(rt.Chip, opts.PinButton)
				if openErr != nil {
					if releaseErr := leds.Release(); releaseErr != nil {
						gpioLogger.Warn("Failed to release leds", "error", releaseErr)
					}
					return nil, openErr
				}
				return control.NewToggle(leds, btn, rt.Bus, logging.GetLogger("control")), nil
			})
			os.Exit(code)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "gpioblink.toml", "Path to configuration file")
	cmd.Flags().IntVar(&opts.PinRed, "pin-red", 14, "GPIO line of the first LED")
	cmd.Flags().IntVar(&opts.PinGreen, "pin-green", 15, "GPIO line of the second LED")
	cmd.Flags().IntVar(&opts.PinBlue, "pin-blue", 18, "GPIO line of the third LED")
	cmd.Flags().IntVar(&opts.PinWhite, "pin-white", 23, "GPIO line of the fourth LED")
	cmd.Flags().IntVar(&opts.PinButton, "pin-button", 2, "GPIO line of the button")
	cmd.Flags().StringVar(&opts.PollInterval, "poll-interval", "10ms", "Time between polls")
	cmd.Flags().BoolVar(&opts.Simulate, "simulate", false, "Use the simulated GPIO chip")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Output logs in JSON format")

	return cmd
}
