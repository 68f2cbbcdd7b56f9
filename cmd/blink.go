package cmd

import (
	"os"

	"github.com/smazurov/gpioblink/internal/config"
	"github.com/smazurov/gpioblink/internal/control"
	"github.com/smazurov/gpioblink/internal/led"
	"github.com/smazurov/gpioblink/internal/logging"
	"github.com/spf13/cobra"
)

// BlinkOptions are the flags of the blink command.
type BlinkOptions struct {
	Config      string
	Pin         int    `toml:"blink.pin" env:"BLINK_PIN"`
	Interval    string `toml:"blink.interval" env:"BLINK_INTERVAL"`
	Simulate    bool   `toml:"gpio.simulate" env:"GPIO_SIMULATE"`
	MetricsAddr string `toml:"metrics.addr" env:"METRICS_ADDR"`
}

// CreateBlinkCmd creates the blink command.
func CreateBlinkCmd() *cobra.Command {
	opts := &BlinkOptions{}
	var logJSON bool

	cmd := &cobra.Command{
		Use:   "blink",
		Short: "Blink a single LED",
		Long:  `Drives one LED on and off at a fixed interval until interrupted. The LED is left off on exit.`,
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			initLogging(opts.Config, logJSON)
			logger := logging.GetLogger("main")

			if err := config.LoadConfig(opts, c); err != nil {
				logger.Warn("Failed to load config", "error", err)
			}
			interval, err := ParseInterval("interval", opts.Interval)
			if err != nil {
				logger.Error("Invalid configuration", "error", err)
				os.Exit(1)
			}

			logger.Info("Starting blink", "pin", opts.Pin, "interval", interval)
			code := runStandalone(c.Context(), RuntimeOptions{
				Simulate:    opts.Simulate,
				MetricsAddr: opts.MetricsAddr,
			}, interval, func(rt *Runtime) (control.Program, error) {
				leds, openErr := led.OpenBank(rt.Chip, []int{opts.Pin}, logging.GetLogger("gpio"), rt.LedOptions()...)
				if openErr != nil {
					return nil, openErr
				}
				return control.NewBlinker(leds, rt.Bus), nil
			})
			os.Exit(code)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "gpioblink.toml", "Path to configuration file")
	cmd.Flags().IntVar(&opts.Pin, "pin", 23, "GPIO line of the LED")
	cmd.Flags().StringVar(&opts.Interval, "interval", "1s", "Time between flips")
	cmd.Flags().BoolVar(&opts.Simulate, "simulate", false, "Use the simulated GPIO chip")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Output logs in JSON format")

	return cmd
}
