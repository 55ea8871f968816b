// Package synth renders an encoder event sequence to mono 16-bit PCM
// (spec.md §4.H): a continuous-phase sine tone during on-events, linear
// 5ms attack/release ramps at each on-event's edges, and silence during
// off-events. Grounded on encoder's duration-event model and the
// sine-generation style used throughout madpsy-ka9q_ubersdr (e.g.
// audio_extensions/wefax/decoder.go's math.Sin(2*math.Pi*phase) mixers).
package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/cerkit/cw-companion/internal/decoder"
)

// DefaultFrequencyHz and DefaultSampleRateHz are the synthesizer's default
// tone parameters (spec.md §4.H).
const (
	DefaultFrequencyHz  = 600.0
	DefaultSampleRateHz = 44100.0

	rampSeconds = 0.005
	headroom    = 32000.0
	maxAmp      = 32767

	// maxTotalFrames bounds the allocated sample buffer well below where a
	// frame count derived from float64 duration*rate arithmetic could
	// overflow a platform int or exhaust memory on a bad input.
	maxTotalFrames = 1 << 31
)

// ErrSynthesisOverflow is returned by Synthesize when the event sequence's
// computed total frame count is too large to allocate safely.
var ErrSynthesisOverflow = errors.New("synth: total frame count overflow")

// Synthesize renders events to mono 16-bit PCM samples at the given tone
// frequency and sample rate (spec.md §4.H). A single running frame counter
// is carried across every event, on or off, so the sine phase is
// continuous across tone events and adjacent dots/dashes don't click.
func Synthesize(events []decoder.Event, frequencyHz, sampleRateHz float64) ([]int16, error) {
	if frequencyHz <= 0 || math.IsNaN(frequencyHz) {
		return nil, fmt.Errorf("synth: invalid frequency %v", frequencyHz)
	}
	if sampleRateHz <= 0 || math.IsNaN(sampleRateHz) {
		return nil, fmt.Errorf("synth: invalid sample rate %v", sampleRateHz)
	}

	totalFrames := 0
	frameCounts := make([]int, len(events))
	for i, ev := range events {
		framesF := math.Round(ev.Duration * sampleRateHz)
		if framesF < 0 || framesF > maxTotalFrames {
			return nil, fmt.Errorf("synth: event %d: %w", i, ErrSynthesisOverflow)
		}
		n := int(framesF)
		frameCounts[i] = n
		totalFrames += n
		if totalFrames > maxTotalFrames {
			return nil, fmt.Errorf("synth: %w", ErrSynthesisOverflow)
		}
	}

	samples := make([]int16, totalFrames)

	var currentFrame int
	pos := 0
	for i, ev := range events {
		n := frameCounts[i]
		if ev.IsOn {
			if err := writeTone(samples[pos:pos+n], n, currentFrame, frequencyHz, sampleRateHz); err != nil {
				return nil, err
			}
		}
		// Off events are left zero-valued by make().
		pos += n
		currentFrame += n
	}

	return samples, nil
}

// writeTone fills dst (len == n) with a ramped sine tone, where the phase
// at dst[0] corresponds to frame startFrame in the overall output.
func writeTone(dst []int16, n, startFrame int, frequencyHz, sampleRateHz float64) error {
	rampFrames := int(math.Round(rampSeconds * sampleRateHz))
	if half := n / 2; rampFrames > half {
		rampFrames = half
	}

	for i := 0; i < n; i++ {
		s := math.Sin(2 * math.Pi * frequencyHz * float64(startFrame+i) / sampleRateHz)

		amplitude := 1.0
		switch {
		case rampFrames > 0 && i < rampFrames:
			amplitude = float64(i) / float64(rampFrames)
		case rampFrames > 0 && i > n-rampFrames:
			amplitude = float64(n-i) / float64(rampFrames)
		}

		sample := math.Round(s * amplitude * headroom)
		if sample > maxAmp {
			sample = maxAmp
		} else if sample < -maxAmp-1 {
			sample = -maxAmp - 1
		}
		dst[i] = int16(sample)
	}
	return nil
}
