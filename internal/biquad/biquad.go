// Package biquad implements a second-order IIR bandpass filter using the
// RBJ audio cookbook coefficients. Grounded on
// audio_extensions/navtex/biquad.go's BiQuadFilter, narrowed to the
// constant-0dB-peak-gain bandpass form spec.md §4.B requires, with
// reconfigure-without-reset semantics added.
package biquad

import (
	"fmt"
	"math"
)

// Filter is a Direct-Form-I biquad bandpass filter with persistent
// per-sample history. Coefficients are stored normalized by a0.
type Filter struct {
	b0, b1, b2 float64
	a1, a2     float64

	x1, x2 float64
	y1, y2 float64
}

// New creates a Filter configured for the given center frequency, sample
// rate, and Q. The default instantiation used by the pipelines is
// center=600 Hz, Q=5.0 (spec.md §4.B).
func New(centerHz, sampleRateHz, q float64) (*Filter, error) {
	f := &Filter{}
	if err := f.Configure(centerHz, sampleRateHz, q); err != nil {
		return nil, err
	}
	return f, nil
}

// Configure (re)computes the filter coefficients from (frequency, sample
// rate, Q) using the RBJ cookbook bandpass (constant 0 dB peak gain) form.
// Per spec.md §4.B, reconfigure never resets filter history; call Reset
// explicitly when a new stream begins.
func (f *Filter) Configure(centerHz, sampleRateHz, q float64) error {
	if sampleRateHz <= 0 || math.IsNaN(sampleRateHz) {
		return fmt.Errorf("biquad: invalid sample rate %v", sampleRateHz)
	}
	if centerHz <= 0 || math.IsNaN(centerHz) {
		return fmt.Errorf("biquad: invalid center frequency %v", centerHz)
	}
	if q <= 0 || math.IsNaN(q) {
		return fmt.Errorf("biquad: invalid Q %v", q)
	}

	w0 := 2.0 * math.Pi * centerHz / sampleRateHz
	sinW0 := math.Sin(w0)
	cosW0 := math.Cos(w0)
	alpha := sinW0 / (2.0 * q)

	b0 := alpha
	b1 := 0.0
	b2 := -alpha
	a0 := 1.0 + alpha
	a1 := -2.0 * cosW0
	a2 := 1.0 - alpha

	f.b0 = b0 / a0
	f.b1 = b1 / a0
	f.b2 = b2 / a0
	f.a1 = a1 / a0
	f.a2 = a2 / a0

	return nil
}

// Reset clears the filter's sample history. Coefficients are untouched.
func (f *Filter) Reset() {
	f.x1, f.x2 = 0, 0
	f.y1, f.y2 = 0, 0
}

// Process filters a single sample using the Direct Form I recurrence
// y = b0*x + b1*x1 + b2*x2 - a1*y1 - a2*y2, then shifts history.
func (f *Filter) Process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2

	f.x2 = f.x1
	f.x1 = x
	f.y2 = f.y1
	f.y1 = y

	return y
}
