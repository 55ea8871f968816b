package decoder

import (
	"fmt"
	"math"

	"github.com/cerkit/cw-companion/internal/morsetable"
)

// StreamingDecoder incrementally decodes Morse elements event-by-event,
// emitting characters and spaces as they become certain (spec.md §4.F).
//
// Word-space emission is implemented per spec.md §4.F's corrected design
// rather than the original repo's acknowledged bug: a word_space_pending
// flag guards the " " append in both ProcessEvent (a closed off-event
// crossing the word threshold) and CheckTimeout (growing in-progress
// silence crossing it), so whichever path closes the gap first emits the
// space exactly once; the flag is cleared on the next confirmed
// on-transition. Without the guard in both places, a word gap that
// straddles a live-pipeline buffer boundary — CheckTimeout fires mid-gap,
// then the next chunk delivers the closed event for the same gap — would
// emit the space twice.
type StreamingDecoder struct {
	currentSymbol string
	unitTime      float64
	thresholds    Thresholds

	wordSpacePending bool
}

// NewStreamingDecoder creates a StreamingDecoder at the given initial WPM.
func NewStreamingDecoder(w float64) (*StreamingDecoder, error) {
	if w <= 0 || math.IsNaN(w) {
		return nil, fmt.Errorf("decoder: invalid wpm %v", w)
	}
	d := &StreamingDecoder{}
	d.SetWPM(w)
	return d, nil
}

// SetWPM recomputes the derived timing thresholds without touching
// currentSymbol (spec.md §4.F).
func (d *StreamingDecoder) SetWPM(w float64) {
	d.thresholds = NewThresholds(w)
	d.unitTime = d.thresholds.Unit
}

// WPM-derived thresholds currently in effect, for callers that want to
// inspect them (e.g. metrics).
func (d *StreamingDecoder) Thresholds() Thresholds {
	return d.thresholds
}

// ProcessEvent is called only on confirmed state transitions (produced by
// the envelope/edge detector). It returns text to append, which may be
// empty.
func (d *StreamingDecoder) ProcessEvent(duration float64, isOn bool) string {
	if isOn {
		d.wordSpacePending = false
		if duration < d.thresholds.DotLimit {
			d.currentSymbol += "."
		} else {
			d.currentSymbol += "-"
		}
		return ""
	}

	switch {
	case duration > d.thresholds.WordSpaceLimit:
		out := d.flush()
		if !d.wordSpacePending {
			out += " "
			d.wordSpacePending = true
		}
		return out
	case duration > d.thresholds.SymbolSpaceLimit:
		return d.flush()
	default:
		return ""
	}
}

// CheckTimeout is called periodically while silence continues, reporting
// the in-progress silence duration. It flushes a pending symbol as a
// character once the silence crosses the symbol-space threshold, and
// additionally emits a trailing word space — exactly once per silence
// run — once the silence crosses the word-space threshold, even after
// currentSymbol has already drained to empty.
func (d *StreamingDecoder) CheckTimeout(silenceDuration float64) string {
	var out string

	if silenceDuration > d.thresholds.SymbolSpaceLimit {
		out += d.flush()
	}

	if silenceDuration > d.thresholds.WordSpaceLimit && !d.wordSpacePending {
		out += " "
		d.wordSpacePending = true
	}

	return out
}

// flush converts the accumulated Morse elements to a character, if
// mapped, and clears currentSymbol. Unmapped symbols are silently
// dropped per spec.md §3/§4.F.
func (d *StreamingDecoder) flush() string {
	if d.currentSymbol == "" {
		return ""
	}
	symbol := d.currentSymbol
	d.currentSymbol = ""

	if ch, ok := morsetable.Decode(symbol); ok {
		return string(ch)
	}
	return ""
}
