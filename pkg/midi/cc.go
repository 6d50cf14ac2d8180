package midi

import (
	"fmt"
	"math"
)

// Standard MIDI controller numbers for the CC lanes tracked by State.
const (
	CCBankSelect     = 0
	CCModWheel       = 1
	CCBreath         = 2
	CCFoot           = 4
	CCPortamentoTime = 5
	CCVolume         = 7
	CCBalance        = 8
	CCPan            = 10
	CCExpression     = 11
	CCSustain        = 64
	CCPortamento     = 65
	CCSostenuto      = 66
	CCSoft           = 67
	CCLegato         = 68
	CCHold2          = 69

	// Channel mode messages. These arrive as control changes but carry
	// channel-wide semantics rather than a lane value.
	CCAllSoundOff   = 120
	CCResetAll      = 121
	CCLocalControl  = 122
	CCAllNotesOff   = 123
	CCOmniModeOff   = 124
	CCOmniModeOn    = 125
	CCMonoModeOn    = 126
	CCPolyModeOn    = 127
)

// NoteToFrequency converts a MIDI note number to its frequency in Hz using
// equal temperament around the given A4 tuning. A tuningA4 of 0 defaults to
// 440 Hz.
func NoteToFrequency(note int, tuningA4 float64) float64 {
	if tuningA4 == 0 {
		tuningA4 = 440.0
	}
	return tuningA4 * math.Exp2((float64(note)-69.0)/12.0)
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteNumberToName returns the conventional name of a MIDI note number,
// e.g. 60 -> "C4".
func NoteNumberToName(note int) string {
	if note < 0 || note >= NumNotes {
		return ""
	}
	octave := note/12 - 1
	return fmt.Sprintf("%s%d", noteNames[note%12], octave)
}
