package logging

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/journal"
)

// journalSend is swapped in tests.
var journalSend = journal.Send

// JournalHandler is a slog.Handler that writes structured entries to the
// systemd journal. Attribute keys become upper-case journal fields, so
// logger.Info("Line written", "pin", 14) is queryable as PIN=14.
type JournalHandler struct {
	level  slog.Leveler
	attrs  []groupedAttr
	groups []string
}

// groupedAttr remembers the groups that were open when WithAttrs was called.
type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

// NewJournalHandler creates a journal handler. level may be a *slog.LevelVar
// so that Reconfigure reaches the journal as well as stdout.
func NewJournalHandler(level slog.Leveler) *JournalHandler {
	return &JournalHandler{level: level}
}

// Enabled implements slog.Handler.
func (h *JournalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *JournalHandler) Handle(_ context.Context, r slog.Record) error {
	priority := mapLevelToPriority(r.Level)

	fields := map[string]string{
		"PRIORITY":          strconv.Itoa(int(priority)),
		"SYSLOG_IDENTIFIER": Identifier,
	}
	for _, ga := range h.attrs {
		addAttrToFields(fields, ga.attr, ga.groups)
	}
	r.Attrs(func(attr slog.Attr) bool {
		addAttrToFields(fields, attr, h.groups)
		return true
	})

	return journalSend(r.Message, priority, fields)
}

// WithAttrs implements slog.Handler.
func (h *JournalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	grouped := slices.Clip(h.attrs)
	for _, attr := range attrs {
		grouped = append(grouped, groupedAttr{groups: h.groups, attr: attr})
	}
	return &JournalHandler{
		level:  h.level,
		attrs:  grouped,
		groups: h.groups,
	}
}

// WithGroup implements slog.Handler.
func (h *JournalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &JournalHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: append(slices.Clip(h.groups), name),
	}
}

// mapLevelToPriority maps slog levels to journal priorities.
func mapLevelToPriority(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

// addAttrToFields flattens attr into fields, joining group names with '_'.
func addAttrToFields(fields map[string]string, attr slog.Attr, groups []string) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}

	key := strings.ToUpper(attr.Key)
	if len(groups) > 0 {
		key = strings.ToUpper(strings.Join(groups, "_")) + "_" + key
	}

	switch attr.Value.Kind() {
	case slog.KindGroup:
		nested := append(slices.Clip(groups), attr.Key)
		for _, a := range attr.Value.Group() {
			addAttrToFields(fields, a, nested)
		}
	case slog.KindInt64:
		fields[key] = strconv.FormatInt(attr.Value.Int64(), 10)
	case slog.KindUint64:
		fields[key] = strconv.FormatUint(attr.Value.Uint64(), 10)
	case slog.KindFloat64:
		fields[key] = strconv.FormatFloat(attr.Value.Float64(), 'f', -1, 64)
	case slog.KindBool:
		fields[key] = strconv.FormatBool(attr.Value.Bool())
	case slog.KindTime:
		fields[key] = attr.Value.Time().Format(time.RFC3339Nano)
	default:
		fields[key] = attr.Value.String()
	}
}

// IsJournalAvailable checks if systemd journal is available.
func IsJournalAvailable() bool {
	return journal.Enabled()
}
