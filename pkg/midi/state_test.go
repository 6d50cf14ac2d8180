package midi

import (
	"math"
	"testing"
)

func TestNewStateIsReset(t *testing.T) {
	s := New()

	if s.ActiveNotes() != 0 {
		t.Errorf("Expected 0 active notes, got %d", s.ActiveNotes())
	}
	if s.Clock() != 0 {
		t.Errorf("Expected clock 0, got %d", s.Clock())
	}
	for note := 0; note < NumNotes; note++ {
		if v := s.NoteVelocity(note); v != 0 {
			t.Fatalf("Note %d: expected velocity 0, got %f", note, v)
		}
	}
	for cc := 0; cc < NumCCs; cc++ {
		if v := s.CCValue(cc); v != 0 {
			t.Fatalf("CC %d: expected 0 on fresh state, got %f", cc, v)
		}
		events := s.CCEvents(cc)
		if len(events) != 1 || events[0].Delay != 0 || events[0].Value != 0 {
			t.Fatalf("CC %d: expected singleton {0, 0}, got %+v", cc, events)
		}
	}
	if s.PitchBendValue() != 0 || s.ChannelAftertouchValue() != 0 {
		t.Error("Expected pitch bend and aftertouch to start at 0")
	}
}

func TestNoteOnRecordsState(t *testing.T) {
	s := New()

	s.NoteOn(3, 60, 0.8)

	if got := s.NoteVelocity(60); got != 0.8 {
		t.Errorf("Expected velocity 0.8, got %f", got)
	}
	if got := s.LastVelocity(); got != 0.8 {
		t.Errorf("Expected last velocity 0.8, got %f", got)
	}
	if got := s.LastNotePlayed(); got != 60 {
		t.Errorf("Expected last note 60, got %d", got)
	}
	if got := s.ActiveNotes(); got != 1 {
		t.Errorf("Expected 1 active note, got %d", got)
	}
}

func TestNoteDurationOneSecond(t *testing.T) {
	s := New()
	s.SetSampleRate(48000)

	s.NoteOn(0, 60, 0.8)
	s.AdvanceTime(48000)

	got := s.NoteDuration(60, 0)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Expected duration 1.0s, got %f", got)
	}
}

func TestNoteDurationGrowsWithDelay(t *testing.T) {
	s := New()
	s.SetSampleRate(48000)

	s.NoteOn(0, 64, 0.5)
	s.AdvanceTime(24000)

	got := s.NoteDuration(64, 12000)
	if math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Expected duration 0.75s, got %f", got)
	}
}

func TestNoteDurationZeroWhenOnAfterOff(t *testing.T) {
	s := New()
	s.SetSampleRate(48000)

	// Off-timestamp lands first, on-timestamp later: both nonzero with
	// onTime > offTime reads as zero duration.
	s.AdvanceTime(1000)
	s.NoteOff(0, 60, 0)
	s.AdvanceTime(1000)
	s.NoteOn(0, 60, 0.8)
	s.AdvanceTime(1000)

	if got := s.NoteDuration(60, 0); got != 0 {
		t.Errorf("Expected duration 0 for onTime > offTime, got %f", got)
	}
}

func TestNoteDurationSoundingAfterRelease(t *testing.T) {
	s := New()
	s.SetSampleRate(48000)

	s.AdvanceTime(1000)
	s.NoteOn(0, 60, 0.8)
	s.AdvanceTime(1000)
	s.NoteOff(0, 60, 0)
	s.AdvanceTime(1000)

	// offTime > onTime: the ordering rule still measures from the on
	// timestamp.
	got := s.NoteDuration(60, 0)
	want := 2000.0 / 48000.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected duration %f, got %f", want, got)
	}
}

func TestNoteDurationOutOfRange(t *testing.T) {
	s := New()
	if got := s.NoteDuration(-1, 0); got != 0 {
		t.Errorf("Expected 0 for note -1, got %f", got)
	}
	if got := s.NoteDuration(128, 0); got != 0 {
		t.Errorf("Expected 0 for note 128, got %f", got)
	}
}

func TestActiveNotesNeverNegative(t *testing.T) {
	s := New()

	s.NoteOff(0, 60, 0)
	if got := s.ActiveNotes(); got != 0 {
		t.Errorf("Expected 0 active notes after stray note off, got %d", got)
	}

	s.NoteOn(0, 60, 0.5)
	s.NoteOn(0, 64, 0.5)
	s.AllNotesOff(0)
	if got := s.ActiveNotes(); got != 0 {
		t.Errorf("Expected 0 active notes after all notes off, got %d", got)
	}
}

func TestControlChangeSameDelayLastWins(t *testing.T) {
	s := New()

	s.ControlChange(5, 64, 0.5)
	s.ControlChange(5, 64, 0.8)

	events := s.CCEvents(64)
	count := 0
	for _, ev := range events {
		if ev.Delay == 5 {
			count++
			if ev.Value != 0.8 {
				t.Errorf("Expected 0.8 at delay 5, got %f", ev.Value)
			}
		}
	}
	if count != 1 {
		t.Errorf("Expected one entry at delay 5, got %d", count)
	}
	if got := s.CCValue(64); got != 0.8 {
		t.Errorf("Expected current CC value 0.8, got %f", got)
	}
}

func TestControlChangeOutOfRangeLane(t *testing.T) {
	s := New()

	s.ControlChange(0, 127, 0.5) // highest valid lane
	s.ControlChange(0, NumCCs, 0.9)
	s.ControlChange(0, -1, 0.9)

	if got := s.CCValue(127); got != 0.5 {
		t.Errorf("Expected lane 127 to accept value, got %f", got)
	}
	for cc := 0; cc < NumCCs; cc++ {
		if cc == 127 {
			continue
		}
		if got := s.CCValue(cc); got != 0 {
			t.Fatalf("Lane %d changed by out-of-range write: %f", cc, got)
		}
	}

	events := s.CCEvents(NumCCs)
	if len(events) != 1 || events[0].Delay != 0 || events[0].Value != 0 {
		t.Errorf("Expected shared default sequence for bad lane, got %+v", events)
	}
}

func TestAdvanceTimeCollapsesAllRuns(t *testing.T) {
	s := New()

	s.ControlChange(10, 1, 0.3)
	s.ControlChange(20, 1, 0.6)
	s.PitchBend(15, -0.5)
	s.ChannelAftertouch(30, 0.4)

	s.AdvanceTime(512)

	if s.Clock() != 512 {
		t.Errorf("Expected clock 512, got %d", s.Clock())
	}
	for _, tc := range []struct {
		name   string
		events []ControlEvent
		value  float32
	}{
		{"cc1", s.CCEvents(1), 0.6},
		{"pitch", s.PitchBendEvents(), -0.5},
		{"aftertouch", s.ChannelAftertouchEvents(), 0.4},
	} {
		if len(tc.events) != 1 {
			t.Errorf("%s: expected single carried entry, got %d", tc.name, len(tc.events))
			continue
		}
		if tc.events[0].Delay != 0 || tc.events[0].Value != tc.value {
			t.Errorf("%s: expected {0, %f}, got %+v", tc.name, tc.value, tc.events[0])
		}
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	s := New()

	s.NoteOn(0, 60, 0.8)
	s.ControlChange(5, 7, 0.9)
	s.PitchBend(5, 0.5)
	s.ChannelAftertouch(5, 0.5)
	s.AdvanceTime(512)

	s.Reset()

	if s.ActiveNotes() != 0 || s.Clock() != 0 || s.LastNotePlayed() != 0 {
		t.Error("Reset left counters set")
	}
	if s.NoteVelocity(60) != 0 {
		t.Error("Reset left a velocity set")
	}
	if s.CCValue(7) != 0 || s.PitchBendValue() != 0 || s.ChannelAftertouchValue() != 0 {
		t.Error("Reset left controller values set")
	}
	if got := s.NoteDuration(60, 0); got != 0 {
		t.Errorf("Expected duration 0 from clock 0 after reset, got %f", got)
	}
}

func TestSetSampleRateClearsTimestamps(t *testing.T) {
	s := New()
	s.SetSampleRate(44100)

	s.AdvanceTime(1000)
	s.NoteOn(0, 60, 0.8)

	s.SetSampleRate(96000)

	if s.Clock() != 0 {
		t.Errorf("Expected clock 0 after rate change, got %d", s.Clock())
	}
	// Timestamps discarded: duration counts from clock zero again.
	if got := s.NoteDuration(60, 0); got != 0 {
		t.Errorf("Expected duration 0 after rate change, got %f", got)
	}
	// Velocity survives a rate change; only timing state is invalidated.
	if got := s.NoteVelocity(60); got != 0.8 {
		t.Errorf("Expected velocity kept, got %f", got)
	}
}

func TestResetAllControllersLeavesAftertouch(t *testing.T) {
	s := New()

	s.ControlChange(0, 7, 0.9)
	s.ControlChange(0, 64, 1.0)
	s.PitchBend(0, 0.5)
	s.ChannelAftertouch(0, 0.7)

	s.ResetAllControllers(8)

	if got := s.CCValue(7); got != 0 {
		t.Errorf("Expected CC 7 reset to 0, got %f", got)
	}
	if got := s.CCValue(64); got != 0 {
		t.Errorf("Expected CC 64 reset to 0, got %f", got)
	}
	if got := s.PitchBendValue(); got != 0 {
		t.Errorf("Expected pitch bend reset to 0, got %f", got)
	}
	// Channel aftertouch is excluded, matching the wire-protocol message.
	if got := s.ChannelAftertouchValue(); got != 0.7 {
		t.Errorf("Expected aftertouch untouched at 0.7, got %f", got)
	}

	events := s.CCEvents(7)
	last := events[len(events)-1]
	if last.Delay != 8 || last.Value != 0 {
		t.Errorf("Expected zero event at delay 8, got %+v", last)
	}
}

func TestSetSamplesPerBlockReserves(t *testing.T) {
	s := New()
	s.SetSamplesPerBlock(256)

	if got := s.SamplesPerBlock(); got != 256 {
		t.Errorf("Expected block size 256, got %d", got)
	}
	for cc := range s.cc {
		if cap(s.cc[cc].events) < 256 {
			t.Fatalf("CC %d: capacity %d below block size", cc, cap(s.cc[cc].events))
		}
	}
	if cap(s.pitch.events) < 256 || cap(s.aftertouch.events) < 256 {
		t.Error("Pitch/aftertouch runs not reserved to block size")
	}
}

func TestPitchBendAndAftertouchValues(t *testing.T) {
	s := New()

	s.PitchBend(0, -1)
	s.PitchBend(100, 0.5)
	s.ChannelAftertouch(50, 0.25)

	if got := s.PitchBendValue(); got != 0.5 {
		t.Errorf("Expected pitch bend 0.5, got %f", got)
	}
	if got := s.ChannelAftertouchValue(); got != 0.25 {
		t.Errorf("Expected aftertouch 0.25, got %f", got)
	}
}
