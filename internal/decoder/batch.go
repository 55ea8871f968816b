package decoder

import (
	"github.com/cerkit/cw-companion/internal/morsetable"
	"github.com/cerkit/cw-companion/internal/wpm"
)

// Thresholds holds the derived timing boundaries for a given WPM,
// shared by the batch and streaming decoders (spec.md §4.E):
//
//	unit               = 1.2 / wpm
//	DotLimit           = 1.5 * unit   (on-duration below this = dot)
//	SymbolSpaceLimit   = 2.0 * unit   (off below this = intra-char)
//	WordSpaceLimit     = 5.0 * unit   (off above this = word boundary)
type Thresholds struct {
	Unit             float64
	DotLimit         float64
	SymbolSpaceLimit float64
	WordSpaceLimit   float64
}

// NewThresholds derives the timing thresholds for a given WPM.
func NewThresholds(w float64) Thresholds {
	unit := wpm.UnitTime(w)
	return Thresholds{
		Unit:             unit,
		DotLimit:         1.5 * unit,
		SymbolSpaceLimit: 2.0 * unit,
		WordSpaceLimit:   5.0 * unit,
	}
}

// BatchResult pairs decoded text with the per-character timing that
// DecodeEventsTimed returns: for each character, the cumulative audio time
// at which it was finalized.
type BatchResult struct {
	Text       string
	TimedChars []TimedChar
}

// DecodeEvents consumes a finite event sequence at a fixed WPM and returns
// the decoded text (spec.md §4.E). It is a projection of
// DecodeEventsTimed that concatenates only the character strings.
func DecodeEvents(events []Event, w float64) string {
	var text string
	for _, tc := range DecodeEventsTimed(events, w) {
		text += tc.Text
	}
	return text
}

// DecodeEventsTimed consumes a finite event sequence at a fixed WPM and
// returns decoded characters paired with their cumulative end time
// (spec.md §4.E).
func DecodeEventsTimed(events []Event, w float64) []TimedChar {
	th := NewThresholds(w)

	var (
		currentSymbol string
		accumulated   float64
		out           []TimedChar
		lastWasSpace  = true // suppress a leading word-space
	)

	flush := func() {
		if currentSymbol == "" {
			return
		}
		if ch, ok := morsetable.Decode(currentSymbol); ok {
			out = append(out, TimedChar{Text: string(ch), EndTime: accumulated})
			lastWasSpace = false
		}
		currentSymbol = ""
	}

	for _, ev := range events {
		accumulated += ev.Duration

		if ev.IsOn {
			if ev.Duration < th.DotLimit {
				currentSymbol += "."
			} else {
				currentSymbol += "-"
			}
			continue
		}

		switch {
		case ev.Duration > th.WordSpaceLimit:
			flush()
			if !lastWasSpace {
				out = append(out, TimedChar{Text: " ", EndTime: accumulated})
				lastWasSpace = true
			}
		case ev.Duration > th.SymbolSpaceLimit:
			flush()
		default:
			// Intra-character gap: no action.
		}
	}
	flush()

	return out
}
