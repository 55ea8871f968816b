// Package wpm implements the adaptive words-per-minute estimator from
// spec.md §4.D: the 25th-percentile of on-durations is taken as the
// dot-length proxy, inverted through the Paris-timing unit formula, and
// clamped to [5, 60]. Grounded on
// audio_extensions/morse/decoder.go's updateWPM smoothing logic for the
// overall "classify a mark, invert to WPM, clamp" shape, but computes the
// percentile with gonum.org/v1/gonum/stat rather than a hand index pick.
package wpm

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Default WPM returned for empty input (spec.md §4.D).
const DefaultWPM = 20.0

// Min and Max are the WPM clamp bounds applied by Clamp and Estimate
// (spec.md §3, §4.D).
const (
	Min = 5.0
	Max = 60.0
)

// Estimate infers the sender's speed from a slice of on-durations (dots
// and dashes intermixed), in seconds. Empty input returns DefaultWPM.
func Estimate(onDurations []float64) float64 {
	if len(onDurations) == 0 {
		return DefaultWPM
	}

	sorted := make([]float64, len(onDurations))
	copy(sorted, onDurations)
	sort.Float64s(sorted)

	tDot := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	if tDot <= 0 {
		return DefaultWPM
	}

	return Clamp(1.2 / tDot)
}

// Clamp restricts a raw WPM value to [Min, Max].
func Clamp(w float64) float64 {
	if w < Min {
		return Min
	}
	if w > Max {
		return Max
	}
	return w
}

// UnitTime returns the Paris-timing unit duration, in seconds, for a WPM
// value: unit = 1.2 / wpm.
func UnitTime(w float64) float64 {
	return 1.2 / w
}

// EstimateWindowed re-estimates WPM from only the most recent window of
// on-durations, rather than the whole run. A sender's speed can drift
// over a long transmission; re-deriving the estimate from a trailing
// window tracks that drift instead of averaging it away across the
// entire history. Grounded on sussman-decoder-bot's cw-decode.go
// getTokenPipe, which recomputes its unit duration from groups of the 20
// most recent events rather than the whole stream; windowSize plays the
// same role that file's fixed group-of-20 does, made a parameter instead
// of a hardcoded constant. This is additive: it does not replace Estimate,
// which remains the whole-buffer estimator spec.md §4.D specifies.
func EstimateWindowed(onDurations []float64, windowSize int) float64 {
	if windowSize <= 0 || len(onDurations) == 0 {
		return DefaultWPM
	}
	if len(onDurations) <= windowSize {
		return Estimate(onDurations)
	}
	return Estimate(onDurations[len(onDurations)-windowSize:])
}
