// Package decoder implements the batch and streaming Morse decoders
// (spec.md §4.E, §4.F) plus the shared duration-event and timed-character
// data model (spec.md §3) that the encoder, synthesizer, and envelope
// detector all produce or consume.
package decoder

// Event is a single on/off duration, in seconds, as produced by the
// envelope/edge detector (component C) or the encoder (component G).
// Sequences alternate in logical intent but a consumer must tolerate
// consecutive same-polarity events (spec.md §3).
type Event struct {
	Duration float64
	IsOn     bool
}

// TimedChar pairs a decoded character (or the word-separator " ") with the
// cumulative audio time, in seconds, at which its terminating gap ended
// (spec.md §3).
type TimedChar struct {
	Text    string
	EndTime float64
}
