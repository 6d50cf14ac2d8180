// Package midi tracks the control state of a MIDI channel with sample
// accuracy for use inside a real-time synthesis engine.
//
// The tracker records note velocities and timestamps, continuous controller
// values, pitch bend and channel aftertouch, each tagged with its sample
// offset inside the audio block currently being processed. A voice or DSP
// layer can then ask for the value of any controller at any offset within
// the block, in sorted order, while the block is rendered.
//
// The package is built for exactly one real-time thread per block: no
// locking, no allocation and no panics on the block-processing path.
// Storage grows only in the setup operations (SetSamplesPerBlock, Reset),
// which must be called outside the processing window.
package midi
