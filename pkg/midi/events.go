package midi

import (
	"sort"

	"midistate/pkg/debug"
)

// ControlEvent is one controller value change at a sample offset within the
// block currently being processed.
type ControlEvent struct {
	Delay int // sample offset from the block start
	Value float32
}

// defaultEvents is the shared sequence handed out for out-of-range lane
// queries. Callers must treat returned event slices as read-only.
var defaultEvents = []ControlEvent{{Delay: 0, Value: 0}}

// Events is a delay-ordered run of values for one continuous signal (a CC
// lane, pitch bend, or channel aftertouch). Delays are strictly ascending
// with at most one entry per delay. After Reset the run is never empty: the
// first entry carries the value in effect since the start of the block.
type Events struct {
	events []ControlEvent
}

// Insert records value at the given sample offset, keeping the run ordered.
// A second insert at the same delay overwrites the earlier value. Once
// Reserve has sized the backing storage to the block length, Insert never
// allocates. The caller guarantees 0 <= delay < samplesPerBlock; a negative
// delay is clamped to 0.
func (e *Events) Insert(delay int, value float32) {
	debug.Assert(delay >= 0, "midi: negative event delay")
	if delay < 0 {
		delay = 0
	}
	i := sort.Search(len(e.events), func(k int) bool {
		return e.events[k].Delay >= delay
	})
	if i < len(e.events) && e.events[i].Delay == delay {
		e.events[i].Value = value
		return
	}
	e.events = append(e.events, ControlEvent{})
	copy(e.events[i+1:], e.events[i:])
	e.events[i] = ControlEvent{Delay: delay, Value: value}
}

// Current returns the value in effect at the end of the block so far, i.e.
// the value of the highest-delay entry.
func (e *Events) Current() float32 {
	debug.Assert(len(e.events) > 0, "midi: current value of empty event run")
	if len(e.events) == 0 {
		return 0
	}
	return e.events[len(e.events)-1].Value
}

// Advance collapses the run to a single entry {0, lastValue}, carrying the
// final value of the just-completed block forward as the starting value of
// the next one. The run must not be empty.
func (e *Events) Advance() {
	debug.Assert(len(e.events) > 0, "midi: advance on empty event run")
	if len(e.events) == 0 {
		return
	}
	last := e.events[len(e.events)-1].Value
	e.events = e.events[:1]
	e.events[0] = ControlEvent{Delay: 0, Value: last}
}

// Reserve reallocates the backing storage to hold capacity entries so that
// steady-state Insert calls stay allocation-free. Only safe outside the
// real-time processing window.
func (e *Events) Reserve(capacity int) {
	if capacity < len(e.events) {
		capacity = len(e.events)
	}
	if capacity < 1 {
		capacity = 1
	}
	events := make([]ControlEvent, len(e.events), capacity)
	copy(events, e.events)
	e.events = events
}

// Reset clears the run to the single entry {0, value}. Capacity is kept.
func (e *Events) Reset(value float32) {
	e.events = e.events[:0]
	e.events = append(e.events, ControlEvent{Delay: 0, Value: value})
}

// All returns the ordered events of the current (not yet advanced) block.
// The slice is a view into internal storage: read-only, valid until the next
// mutation.
func (e *Events) All() []ControlEvent {
	return e.events
}

// Len returns the number of entries in the run.
func (e *Events) Len() int {
	return len(e.events)
}
