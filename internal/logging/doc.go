// Package logging provides slog loggers with per-module levels.
//
// Call Initialize once at startup, then ask for a logger per module:
//
//	logging.Initialize(logging.Config{
//		Level:   "info",
//		Format:  "text",
//		Modules: map[string]string{"control": "debug"},
//	})
//	logger := logging.GetLogger("control")
//	logger.Debug("Mode changed", "mode", "lighting", "value", "Two")
//
// Records go to stdout when it is a terminal, pipe, socket or file, and to
// the systemd journal when journald is reachable. With both present a
// MultiHandler writes to each. Journal entries carry SYSLOG_IDENTIFIER
// gpioblink and one upper-case field per attribute:
//
//	journalctl -t gpioblink MODULE=control PROGRAM=color
//
// Module levels live in the [logging] table of the config file. Any key
// other than level and format names a module:
//
//	[logging]
//	level = "info"
//	format = "text"
//	gpio = "warn"
//
// Reconfigure swaps levels on existing loggers, which is how the config
// watcher applies edits without a restart. The format is fixed once
// Initialize has run.
package logging
