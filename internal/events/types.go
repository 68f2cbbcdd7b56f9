package events

// Event type constants for kelindar/event.
const (
	TypeModeChanged uint32 = iota + 1
	TypeFlashToggled
	TypeLineWritten
	TypeButtonReleased
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// ModeChangedEvent is published when a press-release cycle advances a mode.
// Initial marks the starting value announced when a program begins running.
type ModeChangedEvent struct {
	Program   string `json:"program"`
	Mode      string `json:"mode"`
	Value     string `json:"value"`
	Index     int    `json:"index"`
	Initial   bool   `json:"initial,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Type returns the event type identifier for ModeChangedEvent.
func (e ModeChangedEvent) Type() uint32 { return TypeModeChanged }

// FlashToggledEvent is published when the flash phase flips.
type FlashToggledEvent struct {
	Program   string `json:"program"`
	Phase     bool   `json:"phase"`
	Timestamp string `json:"timestamp"`
}

// Type returns the event type identifier for FlashToggledEvent.
func (e FlashToggledEvent) Type() uint32 { return TypeFlashToggled }

// LineWrittenEvent is published after a physical write to an output line.
type LineWrittenEvent struct {
	Pin  int  `json:"pin"`
	High bool `json:"high"`
}

// Type returns the event type identifier for LineWrittenEvent.
func (e LineWrittenEvent) Type() uint32 { return TypeLineWritten }

// ButtonReleasedEvent is published when a full press-release cycle completes.
type ButtonReleasedEvent struct {
	Program string `json:"program"`
	Pin     int    `json:"pin"`
}

// Type returns the event type identifier for ButtonReleasedEvent.
func (e ButtonReleasedEvent) Type() uint32 { return TypeButtonReleased }
