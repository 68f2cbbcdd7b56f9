package gpio

import (
	"fmt"
	"sync"
)

// Sim is an in-memory Chip. Inputs idle high as if pulled up, outputs record
// every write. It backs --simulate runs and tests.
type Sim struct {
	mu      sync.Mutex
	model   string
	lines   map[int]*simLine
	missing map[int]bool
	failOut map[int]error
}

type simLine struct {
	sim    *Sim
	pin    int
	level  bool
	writes []bool
}

// NewSim creates a simulated chip reporting the given board model.
func NewSim(model string) *Sim {
	return &Sim{
		model:   model,
		lines:   make(map[int]*simLine),
		missing: make(map[int]bool),
		failOut: make(map[int]error),
	}
}

// Name implements Chip.
func (s *Sim) Name() string {
	return "simulator"
}

// BoardModel implements Chip.
func (s *Sim) BoardModel() (string, error) {
	if s.model == "" {
		return "", ErrDeviceInfo
	}
	return s.model, nil
}

// Line implements Chip.
func (s *Sim) Line(pin int) (Driver, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.missing[pin] {
		return nil, fmt.Errorf("GPIO%d: %w", pin, ErrPinNotFound)
	}
	l, ok := s.lines[pin]
	if !ok {
		l = &simLine{sim: s, pin: pin, level: true}
		s.lines[pin] = l
	}
	return l, nil
}

// Remove makes later acquisitions of pin fail.
func (s *Sim) Remove(pin int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missing[pin] = true
}

// FailWrites makes every write to pin return err.
func (s *Sim) FailWrites(pin int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOut[pin] = err
}

// SetLevel forces the level an input line reads.
func (s *Sim) SetLevel(pin int, high bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.lines[pin]; ok {
		l.level = high
		return
	}
	s.lines[pin] = &simLine{sim: s, pin: pin, level: high}
}

// Press pulls an active-low input line low.
func (s *Sim) Press(pin int) { s.SetLevel(pin, false) }

// Release lets an active-low input line return high.
func (s *Sim) Release(pin int) { s.SetLevel(pin, true) }

// Level returns the current level of pin.
func (s *Sim) Level(pin int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.lines[pin]; ok {
		return l.level
	}
	return true
}

// Writes returns a copy of every value written to pin, in order.
func (s *Sim) Writes(pin int) []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lines[pin]
	if !ok {
		return nil
	}
	out := make([]bool, len(l.writes))
	copy(out, l.writes)
	return out
}

func (l *simLine) Out(high bool) error {
	l.sim.mu.Lock()
	defer l.sim.mu.Unlock()
	if err := l.sim.failOut[l.pin]; err != nil {
		return err
	}
	l.level = high
	l.writes = append(l.writes, high)
	return nil
}

func (l *simLine) In() error {
	return nil
}

func (l *simLine) Read() bool {
	l.sim.mu.Lock()
	defer l.sim.mu.Unlock()
	return l.level
}
