package midi

import "midistate/pkg/debug"

// NoteOn records a note start: velocity, on-timestamp (clock + delay), the
// last-played index, and the active-note count. Velocity is normalized to
// [0, 1]. An out-of-range note number leaves the state unchanged.
func (s *State) NoteOn(delay, note int, velocity float32) {
	debug.Assert(note >= 0 && note < NumNotes, "midi: note number out of range")
	debug.Assert(velocity >= 0 && velocity <= 1, "midi: velocity out of range")
	if note < 0 || note >= NumNotes {
		return
	}
	s.lastVelocities[note] = velocity
	s.noteOnTimes[note] = s.clock + int64(delay)
	s.lastNotePlayed = note
	s.activeNotes++
}

// NoteOff records a note end at clock + delay. The velocity argument is
// accepted for protocol symmetry; release velocity is not modeled. The
// active-note count never drops below zero.
func (s *State) NoteOff(delay, note int, velocity float32) {
	debug.Assert(delay >= 0, "midi: negative event delay")
	debug.Assert(note >= 0 && note < NumNotes, "midi: note number out of range")
	debug.Assert(velocity >= 0 && velocity <= 1, "midi: velocity out of range")
	if note < 0 || note >= NumNotes {
		return
	}
	s.noteOffTimes[note] = s.clock + int64(delay)
	if s.activeNotes > 0 {
		s.activeNotes--
	}
}

// AllNotesOff applies a zero-velocity NoteOff to every note at the given
// delay.
func (s *State) AllNotesOff(delay int) {
	for note := 0; note < NumNotes; note++ {
		s.NoteOff(delay, note, 0)
	}
}

// NoteDuration returns how long the note has been sounding, in seconds, as
// of clock + delay. A note whose on-timestamp and off-timestamp are both set
// with the on-timestamp later reads as 0. A note that was never touched has
// both timestamps at zero and reads as elapsed time since clock zero; the
// on/off ordering, not a flag, is what decides.
func (s *State) NoteDuration(note, delay int) float64 {
	debug.Assert(note >= 0 && note < NumNotes, "midi: note number out of range")
	if note < 0 || note >= NumNotes {
		return 0
	}
	on, off := s.noteOnTimes[note], s.noteOffTimes[note]
	if on != 0 && off != 0 && on > off {
		return 0
	}
	return float64(s.clock+int64(delay)-on) / s.sampleRate
}

// NoteVelocity returns the last velocity recorded for the note, or 0 for an
// out-of-range note number.
func (s *State) NoteVelocity(note int) float32 {
	debug.Assert(note >= 0 && note < NumNotes, "midi: note number out of range")
	if note < 0 || note >= NumNotes {
		return 0
	}
	return s.lastVelocities[note]
}

// LastVelocity returns the velocity of the most recently played note.
func (s *State) LastVelocity() float32 {
	return s.lastVelocities[s.lastNotePlayed]
}

// LastNotePlayed returns the note number of the most recent NoteOn.
func (s *State) LastNotePlayed() int {
	return s.lastNotePlayed
}

// ActiveNotes returns the count of notes currently considered sounding.
func (s *State) ActiveNotes() int {
	return s.activeNotes
}
