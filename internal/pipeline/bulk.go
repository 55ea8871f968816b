// Package pipeline wires biquad filtering, envelope detection, WPM
// estimation, and Morse decoding into the bulk and live pipelines
// (spec.md §4.J, §4.K). The overall shape — own a filter + envelope
// detector + decoder, feed samples through in sequence, accumulate
// decoded text — is grounded on audio_extensions/morse/decoder.go's
// MorseDecoder, generalized from that file's Goertzel/SNR-driven state
// machine to the biquad+peak-hold model spec.md §4.B/§4.C specify.
package pipeline

import (
	"fmt"
	"math"

	"github.com/cerkit/cw-companion/internal/biquad"
	"github.com/cerkit/cw-companion/internal/decoder"
	"github.com/cerkit/cw-companion/internal/envelope"
	"github.com/cerkit/cw-companion/internal/wpm"
)

// BulkResult is the outcome of running the bulk pipeline over a complete
// audio buffer (spec.md §4.J).
type BulkResult struct {
	Text       string
	TimedChars []decoder.TimedChar
	EstimatedW float64
	Events     []decoder.Event
}

// RunBulk implements spec.md §4.J: filter the entire buffer through the
// bandpass, run it through the envelope/edge detector to get an event
// list, estimate WPM from that list, then decode it.
func RunBulk(samples []float32, sampleRateHz, centerHz, q, threshold float64) (BulkResult, error) {
	if sampleRateHz <= 0 || math.IsNaN(sampleRateHz) {
		return BulkResult{}, fmt.Errorf("pipeline: invalid sample rate %v", sampleRateHz)
	}

	filt, err := biquad.New(centerHz, sampleRateHz, q)
	if err != nil {
		return BulkResult{}, fmt.Errorf("pipeline: %w", err)
	}
	det, err := envelope.New(sampleRateHz, threshold)
	if err != nil {
		return BulkResult{}, fmt.Errorf("pipeline: %w", err)
	}

	filtered := make([]float32, len(samples))
	for i, s := range samples {
		filtered[i] = float32(filt.Process(float64(s)))
	}

	events := det.ProcessBuffer(filtered)

	var onDurations []float64
	for _, ev := range events {
		if ev.IsOn {
			onDurations = append(onDurations, ev.Duration)
		}
	}
	w := wpm.Estimate(onDurations)

	timed := decoder.DecodeEventsTimed(events, w)
	var text string
	for _, tc := range timed {
		text += tc.Text
	}

	return BulkResult{
		Text:       text,
		TimedChars: timed,
		EstimatedW: w,
		Events:     events,
	}, nil
}
