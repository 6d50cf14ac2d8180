package midi

import "midistate/pkg/debug"

// Fixed channel dimensions. Note and lane indices are validated against
// these bounds before every array access.
const (
	NumNotes = 128
	NumCCs   = 128
)

// Defaults applied by New until the host configures the stream.
const (
	DefaultSampleRate      = 48000.0
	DefaultSamplesPerBlock = 1024
)

// State tracks the full control state of one MIDI channel: per-note velocity
// and on/off timestamps, one timed event run per CC lane, pitch bend and
// channel aftertouch, and the sample clock that stamps them.
//
// Exactly one real-time thread owns a State for the duration of a block: it
// applies all incoming events tagged with their intra-block delay, performs
// all queries for that block, then calls AdvanceTime once before the next
// block begins. No mutation or query on that path locks or allocates.
type State struct {
	lastVelocities [NumNotes]float32
	noteOnTimes    [NumNotes]int64
	noteOffTimes   [NumNotes]int64
	lastNotePlayed int
	activeNotes    int

	cc         [NumCCs]Events
	pitch      Events
	aftertouch Events

	clock           int64
	sampleRate      float64
	samplesPerBlock int
}

// New returns a fully reset State with default stream settings. Call
// SetSampleRate and SetSamplesPerBlock during stream configuration to match
// the host.
func New() *State {
	s := &State{
		sampleRate:      DefaultSampleRate,
		samplesPerBlock: DefaultSamplesPerBlock,
	}
	s.Reset()
	s.reserveAll(DefaultSamplesPerBlock)
	return s
}

// ControlChange records a CC value for the given lane at the given
// intra-block delay. Values are normalized to [0, 1]. An out-of-range lane
// leaves the state unchanged.
func (s *State) ControlChange(delay, cc int, value float32) {
	debug.Assert(cc >= 0 && cc < NumCCs, "midi: cc lane out of range")
	debug.Assert(value >= 0 && value <= 1, "midi: cc value out of range")
	if cc < 0 || cc >= NumCCs {
		return
	}
	s.cc[cc].Insert(delay, value)
}

// PitchBend records a pitch bend value in [-1, 1] at the given delay.
func (s *State) PitchBend(delay int, value float32) {
	debug.Assert(value >= -1 && value <= 1, "midi: pitch bend out of range")
	s.pitch.Insert(delay, value)
}

// ChannelAftertouch records a channel pressure value in [-1, 1] at the
// given delay.
func (s *State) ChannelAftertouch(delay int, value float32) {
	debug.Assert(value >= -1 && value <= 1, "midi: aftertouch out of range")
	s.aftertouch.Insert(delay, value)
}

// ResetAllControllers emits a zero-value event at delay on every CC lane and
// on pitch bend, mirroring the MIDI "reset all controllers" message. As in
// the wire protocol, channel aftertouch and note state are left untouched.
func (s *State) ResetAllControllers(delay int) {
	for cc := 0; cc < NumCCs; cc++ {
		s.ControlChange(delay, cc, 0)
	}
	s.PitchBend(delay, 0)
}

// SetSampleRate stores the stream sample rate. The sample clock restarts at
// zero and all note timestamps are cleared: elapsed-time computations from
// the previous rate are discarded, not rescaled.
func (s *State) SetSampleRate(rate float64) {
	s.sampleRate = rate
	s.clock = 0
	s.noteOnTimes = [NumNotes]int64{}
	s.noteOffTimes = [NumNotes]int64{}
}

// SetSamplesPerBlock stores the block length and re-reserves every event run
// to that capacity so steady-state inserts never reallocate. Setup-time
// only.
func (s *State) SetSamplesPerBlock(n int) {
	s.samplesPerBlock = n
	s.reserveAll(n)
}

// AdvanceTime moves the sample clock past the just-completed block and
// collapses every event run to its carried-forward value. Call it exactly
// once per processed block, after all events and queries for that block.
func (s *State) AdvanceTime(numSamples int) {
	s.clock += int64(numSamples)
	for cc := range s.cc {
		s.cc[cc].Advance()
	}
	s.pitch.Advance()
	s.aftertouch.Advance()
}

// Reset reinitializes everything: velocities, timestamps, counters, the
// sample clock, and every event run (CC, pitch bend and aftertouch all
// return to a single {0, 0} entry).
func (s *State) Reset() {
	s.lastVelocities = [NumNotes]float32{}
	s.noteOnTimes = [NumNotes]int64{}
	s.noteOffTimes = [NumNotes]int64{}
	for cc := range s.cc {
		s.cc[cc].Reset(0)
	}
	s.pitch.Reset(0)
	s.aftertouch.Reset(0)
	s.activeNotes = 0
	s.lastNotePlayed = 0
	s.clock = 0
}

// CCValue returns the current value of a CC lane: the value in effect at the
// end of the block so far. Out-of-range lanes read as 0.
func (s *State) CCValue(cc int) float32 {
	debug.Assert(cc >= 0 && cc < NumCCs, "midi: cc lane out of range")
	if cc < 0 || cc >= NumCCs {
		return 0
	}
	return s.cc[cc].Current()
}

// PitchBendValue returns the current pitch bend in [-1, 1].
func (s *State) PitchBendValue() float32 {
	return s.pitch.Current()
}

// ChannelAftertouchValue returns the current channel pressure in [-1, 1].
func (s *State) ChannelAftertouchValue() float32 {
	return s.aftertouch.Current()
}

// CCEvents returns the ordered events of a CC lane for the current block,
// for per-sample interpolation by the rendering layer. Out-of-range lanes
// share a default single-entry sequence. Read-only, valid until the next
// mutation.
func (s *State) CCEvents(cc int) []ControlEvent {
	if cc < 0 || cc >= NumCCs {
		return defaultEvents
	}
	return s.cc[cc].All()
}

// PitchBendEvents returns the ordered pitch bend events of the current
// block. Read-only, valid until the next mutation.
func (s *State) PitchBendEvents() []ControlEvent {
	return s.pitch.All()
}

// ChannelAftertouchEvents returns the ordered aftertouch events of the
// current block. Read-only, valid until the next mutation.
func (s *State) ChannelAftertouchEvents() []ControlEvent {
	return s.aftertouch.All()
}

// SampleRate returns the configured stream sample rate.
func (s *State) SampleRate() float64 {
	return s.sampleRate
}

// SamplesPerBlock returns the configured block length.
func (s *State) SamplesPerBlock() int {
	return s.samplesPerBlock
}

// Clock returns the number of samples processed since the last Reset or
// sample-rate change.
func (s *State) Clock() int64 {
	return s.clock
}

func (s *State) reserveAll(capacity int) {
	for cc := range s.cc {
		s.cc[cc].Reserve(capacity)
	}
	s.pitch.Reserve(capacity)
	s.aftertouch.Reserve(capacity)
}
