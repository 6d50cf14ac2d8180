// Package decode translates wire-format MIDI messages into timed mutations
// of a midi.State. It sits between a transport (live input, a Standard MIDI
// File, a plugin host event list) and the tracker: the transport stamps each
// message with its sample offset inside the current block, decode picks the
// message apart and normalizes its 7-bit and 14-bit payloads.
package decode

import (
	gomidi "gitlab.com/gomidi/midi/v2"

	"midistate/pkg/midi"
)

// Decoder dispatches decoded MIDI messages into one State.
type Decoder struct {
	state *midi.State
}

// New returns a Decoder feeding the given state.
func New(state *midi.State) *Decoder {
	return &Decoder{state: state}
}

// Message applies one MIDI message at the given intra-block sample offset.
// Note-ons with velocity zero count as note-offs. Channel mode controllers
// (all sound off, reset all controllers, all notes off) are given their
// channel-wide meaning; every other message type the tracker does not model
// is ignored.
func (d *Decoder) Message(delay int, msg gomidi.Message) {
	var channel, key, velocity uint8
	var controller, value uint8
	var relative int16
	var absolute uint16
	var pressure uint8

	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		d.state.NoteOn(delay, int(key), Normalize7(velocity))
	case msg.GetNoteEnd(&channel, &key):
		d.state.NoteOff(delay, int(key), 0)
	case msg.GetControlChange(&channel, &controller, &value):
		d.controlChange(delay, int(controller), value)
	case msg.GetPitchBend(&channel, &relative, &absolute):
		d.state.PitchBend(delay, NormalizeBend(relative))
	case msg.GetAfterTouch(&channel, &pressure):
		d.state.ChannelAftertouch(delay, Normalize7(pressure))
	}
}

func (d *Decoder) controlChange(delay, controller int, value uint8) {
	switch controller {
	case midi.CCResetAll:
		d.state.ResetAllControllers(delay)
	case midi.CCAllNotesOff, midi.CCAllSoundOff:
		d.state.AllNotesOff(delay)
	default:
		d.state.ControlChange(delay, controller, Normalize7(value))
	}
}

// Normalize7 maps a 7-bit MIDI value onto [0, 1].
func Normalize7(v uint8) float32 {
	return float32(v) / 127.0
}

// NormalizeBend maps a signed 14-bit pitch bend (-8192..8191) onto [-1, 1].
// The positive half tops out just below 1, matching the wire format.
func NormalizeBend(v int16) float32 {
	bend := float32(v) / 8192.0
	if bend > 1 {
		bend = 1
	}
	if bend < -1 {
		bend = -1
	}
	return bend
}
