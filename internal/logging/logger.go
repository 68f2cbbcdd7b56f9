package logging

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
)

// Identifier tags every journal entry written by this process.
const Identifier = "gpioblink"

// Logger is a duck-typed interface satisfied by *slog.Logger.
// Use this interface instead of *slog.Logger to decouple from the concrete type.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	moduleLoggers   = make(map[string]*slog.Logger)
	moduleLevelVars = make(map[string]*slog.LevelVar)
	moduleHandlers  = make(map[string]*atomic.Pointer[handlerRef])
	globalConfig    Config
	globalLevelVar  = &slog.LevelVar{} // default level
	isInitialized   bool
	mutex           sync.RWMutex
)

// Config represents logging configuration.
type Config struct {
	Level   string            `toml:"level"`
	Format  string            `toml:"format"`
	Modules map[string]string `toml:"modules"`
}

// Initialize sets up the logging system.
func Initialize(config Config) {
	mutex.Lock()
	defer mutex.Unlock()

	globalConfig = config
	isInitialized = true
	globalLevelVar.Set(globalLevel(config))

	// Loggers handed out before Initialize were built with the text format.
	// Swap the handler behind them so callers holding one see the new format.
	for module, levelVar := range moduleLevelVars {
		levelVar.Set(moduleLevel(config, module))
		moduleHandlers[module].Store(moduleHandler(module, config.Format, levelVar))
	}

	slog.SetDefault(slog.New(createHandler(config.Format, globalLevelVar)))
}

// Reconfigure applies new levels to every existing logger without rebuilding
// handlers. The output format is fixed at Initialize.
func Reconfigure(config Config) {
	mutex.Lock()
	defer mutex.Unlock()

	config.Format = globalConfig.Format
	globalConfig = config
	globalLevelVar.Set(globalLevel(config))

	for module, levelVar := range moduleLevelVars {
		levelVar.Set(moduleLevel(config, module))
	}
}

// GetLogger returns a logger for the specified module, creating it if needed.
func GetLogger(module string) *slog.Logger {
	mutex.RLock()
	if logger, exists := moduleLoggers[module]; exists {
		mutex.RUnlock()
		return logger
	}
	mutex.RUnlock()

	mutex.Lock()
	defer mutex.Unlock()

	// Double-check in case another goroutine created it
	if logger, exists := moduleLoggers[module]; exists {
		return logger
	}

	// Each module gets its own LevelVar so level can be changed at runtime
	levelVar := &slog.LevelVar{}

	format := "text"
	if isInitialized {
		levelVar.Set(moduleLevel(globalConfig, module))
		format = globalConfig.Format
	} else {
		levelVar.Set(slog.LevelInfo)
	}

	base := &atomic.Pointer[handlerRef]{}
	base.Store(moduleHandler(module, format, levelVar))

	logger := slog.New(&swapHandler{base: base})
	moduleLoggers[module] = logger
	moduleLevelVars[module] = levelVar
	moduleHandlers[module] = base
	return logger
}

func moduleHandler(module, format string, level slog.Leveler) *handlerRef {
	h := createHandler(format, level).WithAttrs([]slog.Attr{slog.String("module", module)})
	return &handlerRef{h: h}
}

type handlerRef struct {
	h slog.Handler
}

// swapHandler forwards to whatever handler base currently holds, replaying
// the WithAttrs and WithGroup calls made on it. Module loggers therefore
// stay valid when Initialize replaces their handler.
type swapHandler struct {
	base *atomic.Pointer[handlerRef]
	ops  []func(slog.Handler) slog.Handler
}

func (s *swapHandler) current() slog.Handler {
	h := s.base.Load().h
	for _, op := range s.ops {
		h = op(h)
	}
	return h
}

func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return s.current().Enabled(ctx, level)
}

func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.current().Handle(ctx, r)
}

func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (s *swapHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	return s.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (s *swapHandler) with(op func(slog.Handler) slog.Handler) *swapHandler {
	return &swapHandler{base: s.base, ops: append(slices.Clip(s.ops), op)}
}

// globalLevel returns the configured global level, info if unset or invalid.
func globalLevel(config Config) slog.Level {
	if parsed := parseLevel(config.Level); parsed != nil {
		return *parsed
	}
	return slog.LevelInfo
}

// moduleLevel returns the module override if valid, the global level otherwise.
func moduleLevel(config Config, module string) slog.Level {
	if levelStr, exists := config.Modules[module]; exists {
		if parsed := parseLevel(levelStr); parsed != nil {
			return *parsed
		}
	}
	return globalLevel(config)
}

// createHandler creates a slog handler with the specified format and level.
// Logs to stdout and to the journal when available.
// Level can be slog.Level or *slog.LevelVar for dynamic level changes.
func createHandler(format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	var stdoutHandler slog.Handler
	if format == "json" {
		stdoutHandler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		stdoutHandler = slog.NewTextHandler(os.Stdout, opts)
	}

	var handlers []slog.Handler
	if isStdoutAvailable() {
		handlers = append(handlers, stdoutHandler)
	}
	if IsJournalAvailable() {
		handlers = append(handlers, NewJournalHandler(level))
	}

	switch len(handlers) {
	case 0:
		return stdoutHandler // Fallback
	case 1:
		return handlers[0]
	default:
		return NewMultiHandler(handlers...)
	}
}

// isStdoutAvailable checks if stdout is connected to a terminal, pipe, socket, or file.
func isStdoutAvailable() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	mode := fi.Mode()
	// Available if terminal, pipe, socket, or regular file (not /dev/null which is ModeDevice)
	return (mode&os.ModeCharDevice) != 0 || (mode&os.ModeNamedPipe) != 0 || (mode&os.ModeSocket) != 0 || mode.IsRegular()
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) *slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		l := slog.LevelDebug
		return &l
	case "info":
		l := slog.LevelInfo
		return &l
	case "warn", "warning":
		l := slog.LevelWarn
		return &l
	case "error":
		l := slog.LevelError
		return &l
	default:
		return nil
	}
}
