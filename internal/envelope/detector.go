// Package envelope implements the peak-hold envelope follower and
// glitch-debounced edge detector described in spec.md §4.C. The overall
// shape — instant attack, slow exponential decay, a debounce guard against
// spurious transitions — mirrors the attack/decay tracking in
// audio_extensions/morse/signal_processing.go's EnvelopeDetector, adapted
// from that file's Goertzel/SNR approach to the simpler rectify-and-hold
// model spec.md §4.C specifies.
package envelope

import (
	"fmt"
	"math"

	"github.com/cerkit/cw-companion/internal/decoder"
)

// Default thresholds named in spec.md §4.C / §6.
const (
	DefaultLiveThreshold = 0.01
	DefaultBulkThreshold = 0.05
	ReleaseTau           = 0.005 // seconds
	MinEventDuration     = 0.005 // seconds; glitch suppression floor
)

// Detector tracks the magnitude envelope of a single-channel audio stream
// and emits on/off duration events as the signal crosses threshold.
type Detector struct {
	sampleRateHz float64
	threshold    float64
	decay        float64

	envelope            float64
	isSignalOn          bool
	stateDurationFrames uint64
	glitchCount         uint64
}

// New creates a Detector for the given sample rate and amplitude
// threshold. Use envelope.DefaultLiveThreshold or
// envelope.DefaultBulkThreshold for the conventional live/bulk defaults.
func New(sampleRateHz, threshold float64) (*Detector, error) {
	if sampleRateHz <= 0 || math.IsNaN(sampleRateHz) {
		return nil, fmt.Errorf("envelope: invalid sample rate %v", sampleRateHz)
	}
	if threshold <= 0 || math.IsNaN(threshold) {
		return nil, fmt.Errorf("envelope: invalid threshold %v", threshold)
	}
	return &Detector{
		sampleRateHz: sampleRateHz,
		threshold:    threshold,
		decay:        math.Exp(-1.0 / (sampleRateHz * ReleaseTau)),
	}, nil
}

// Reset clears envelope and run-state, used when a new stream begins.
func (d *Detector) Reset() {
	d.envelope = 0
	d.isSignalOn = false
	d.stateDurationFrames = 0
	d.glitchCount = 0
}

// Process feeds one sample through the envelope follower and edge
// detector. It returns a closed duration event and ok=true whenever a
// confirmed (non-glitch) polarity transition occurs; otherwise ok=false.
func (d *Detector) Process(x float64) (decoder.Event, bool) {
	a := math.Abs(x)
	if a > d.envelope {
		d.envelope = a
	} else {
		d.envelope *= d.decay
	}

	nowOn := d.envelope > d.threshold

	if nowOn == d.isSignalOn {
		d.stateDurationFrames++
		return decoder.Event{}, false
	}

	duration := float64(d.stateDurationFrames) / d.sampleRateHz
	if duration > MinEventDuration {
		ev := decoder.Event{Duration: duration, IsOn: d.isSignalOn}
		d.isSignalOn = nowOn
		d.stateDurationFrames = 1
		return ev, true
	}

	// Glitch: too short a run to trust the transition. Ignore it and keep
	// accumulating under the current polarity.
	d.glitchCount++
	d.stateDurationFrames++
	return decoder.Event{}, false
}

// GlitchCount reports, for metrics reporting, how many samples since the
// last Reset disagreed with the current state without closing it, because
// the run they would have closed was not longer than MinEventDuration.
// One suppressed transition usually counts once per sample it lasts.
func (d *Detector) GlitchCount() uint64 {
	return d.glitchCount
}

// ProcessBuffer runs Process over an entire buffer and appends a final
// event for the trailing run, per spec.md §4.C's batch-mode contract.
func (d *Detector) ProcessBuffer(samples []float32) []decoder.Event {
	events := make([]decoder.Event, 0, len(samples)/8+1)
	for _, s := range samples {
		if ev, ok := d.Process(float64(s)); ok {
			events = append(events, ev)
		}
	}
	if d.stateDurationFrames > 0 {
		duration := float64(d.stateDurationFrames) / d.sampleRateHz
		events = append(events, decoder.Event{Duration: duration, IsOn: d.isSignalOn})
	}
	return events
}

// CurrentSilenceDuration reports the in-progress run length, in seconds,
// when the detector is currently in the "off" state. Live pipelines use
// this to drive the streaming decoder's timeout path (spec.md §4.C,
// §4.K step 3) without closing the run.
func (d *Detector) CurrentSilenceDuration() (float64, bool) {
	if d.isSignalOn {
		return 0, false
	}
	return float64(d.stateDurationFrames) / d.sampleRateHz, true
}

// Envelope returns the current envelope value, for diagnostics/metrics.
func (d *Detector) Envelope() float64 {
	return d.envelope
}
