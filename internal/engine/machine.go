package engine

import (
	"sync"

	"calcpad/internal/logging"

	"github.com/google/uuid"
)

// Transition records one applied event.
type Transition struct {
	Seq    uint64
	Event  Event
	Before State
	After  State
}

// Snapshot is the machine state plus everything the presentation layer derives
// from it.
type Snapshot struct {
	SessionID        string   `json:"session"`
	Seq              uint64   `json:"seq"`
	Display          string   `json:"display"`
	Accumulator      string   `json:"accumulator,omitempty"`
	Pending          Operator `json:"operator"`
	ResetOnNextDigit bool     `json:"reset_on_next_digit"`
	ClearLabel       string   `json:"clear_label"`

	State State `json:"-"`
}

// IsOperatorActive reports whether op is highlighted in this snapshot.
func (s Snapshot) IsOperatorActive(op Operator) bool {
	return s.State.IsOperatorActive(op)
}

// Observer is notified after every transition.
type Observer func(Transition)

// Machine owns a State and serializes transitions applied to it. It is safe
// for concurrent use.
type Machine struct {
	mu        sync.Mutex
	id        string
	state     State
	seq       uint64
	observers []Observer
}

// Option configures a Machine.
type Option func(*Machine)

// WithState starts the machine from s instead of Initial().
func WithState(s State) Option {
	return func(m *Machine) { m.state = s }
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(m *Machine) { m.id = id }
}

// WithObserver registers an observer at construction time.
func WithObserver(fn Observer) Option {
	return func(m *Machine) { m.observers = append(m.observers, fn) }
}

// NewMachine creates a machine in the initial state.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		id:    uuid.NewString(),
		state: Initial(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger().Debug("machine created display=%q", m.state.display())
	return m
}

// SessionID returns the machine's correlation ID.
func (m *Machine) SessionID() string {
	return m.id
}

// logger is resolved per call so a machine keeps logging across
// logging.Initialize and logging.CloseAll.
func (m *Machine) logger() *logging.Logger {
	return logging.WithSession(logging.CategoryEngine, m.id)
}

// Subscribe registers fn to be called after every subsequent transition.
// Observers run while the machine is locked, in dispatch order; they must not
// call back into the machine.
func (m *Machine) Subscribe(fn Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Dispatch applies e and returns the resulting snapshot.
func (m *Machine) Dispatch(e Event) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(e)
	return m.snapshotLocked()
}

// DispatchAll applies events in order as one uninterrupted batch.
func (m *Machine) DispatchAll(events ...Event) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range events {
		m.apply(e)
	}
	return m.snapshotLocked()
}

// Snapshot returns the current state without changing it.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) apply(e Event) {
	before := m.state
	m.state = Reduce(before, e)
	m.seq++

	m.logger().Debug("seq=%d event=%s display=%q->%q pending=%s",
		m.seq, e, before.display(), m.state.display(), m.state.Pending)

	t := Transition{Seq: m.seq, Event: e, Before: before, After: m.state}
	for _, fn := range m.observers {
		fn(t)
	}
}

func (m *Machine) snapshotLocked() Snapshot {
	s := m.state
	snap := Snapshot{
		SessionID:        m.id,
		Seq:              m.seq,
		Display:          s.display(),
		Pending:          s.Pending,
		ResetOnNextDigit: s.ResetOnNextDigit,
		ClearLabel:       s.ClearLabel(),
		State:            s,
	}
	if s.HasAccumulator {
		snap.Accumulator = FormatNumber(s.Accumulator)
	}
	return snap
}
