// Package encoder implements the Morse text encoder (spec.md §4.G),
// turning text into a duration-event sequence at standard Paris timing.
// Grounded on doismellburning-samoyed's src/morse.go morse_send /
// morse_units_str (same 1/3/1/3/7-unit model), adapted from that file's
// audio-sample-count accounting to spec.md §4.G's duration-event output.
package encoder

import (
	"fmt"
	"math"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cerkit/cw-companion/internal/decoder"
	"github.com/cerkit/cw-companion/internal/morsetable"
)

var lowerCaser = cases.Lower(language.Und)

// EncodeText converts text into an event sequence at the given WPM
// (spec.md §4.G). Input is normalized to lowercase before lookup;
// unmapped characters (other than space) are silently skipped.
func EncodeText(text string, w float64) ([]decoder.Event, error) {
	if w <= 0 || math.IsNaN(w) {
		return nil, fmt.Errorf("encoder: invalid wpm %v", w)
	}
	unit := 1.2 / w
	normalized := lowerCaser.String(text)

	var events []decoder.Event
	for _, r := range normalized {
		if r == ' ' {
			// Combines with the inter-character gap already appended by
			// the previous character into a single 7-unit word gap; see
			// appendEvent.
			events = appendEvent(events, unit*4, false)
			continue
		}

		// morsetable is keyed by uppercase rune; re-casing the already
		// lowercase-normalized rune just selects the table entry, since
		// Morse code itself carries no case.
		code, ok := morsetable.Encode(unicode.ToUpper(r))
		if !ok {
			continue
		}

		for i, sym := range code {
			if sym == '.' {
				events = appendEvent(events, unit, true)
			} else {
				events = appendEvent(events, 3*unit, true)
			}
			if i == len(code)-1 {
				// Inter-character gap: 3 units after the last symbol.
				events = appendEvent(events, 3*unit, false)
			} else {
				// Intra-character gap: 1 unit between symbols.
				events = appendEvent(events, unit, false)
			}
		}
	}

	return events, nil
}

// appendEvent appends a new duration event, merging it into the previous
// event when both share the same polarity. The decoder model composes
// consecutive same-polarity events (spec.md §3); merging here keeps the
// encoder's output in the same normal form a live envelope detector would
// produce, where a single continuous run is always one event.
func appendEvent(events []decoder.Event, d float64, on bool) []decoder.Event {
	if n := len(events); n > 0 && events[n-1].IsOn == on {
		events[n-1].Duration += d
		return events
	}
	return append(events, decoder.Event{Duration: d, IsOn: on})
}
