package encoder

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cerkit/cw-companion/internal/decoder"
)

func TestEncodeTextRejectsInvalidWPM(t *testing.T) {
	_, err := EncodeText("E", 0)
	assert.Error(t, err)
}

func TestEncodeTextEmptyYieldsEmpty(t *testing.T) {
	events, err := EncodeText("", 20)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEncodeSingleE(t *testing.T) {
	events, err := EncodeText("E", 60) // unit = 1.2/60 = 0.02s
	require.NoError(t, err)

	require.Len(t, events, 2)
	unit := 1.2 / 60.0
	assert.InDelta(t, unit, events[0].Duration, 1e-9)
	assert.True(t, events[0].IsOn)
	assert.InDelta(t, 3*unit, events[1].Duration, 1e-9)
	assert.False(t, events[1].IsOn)
}

func TestEncodeSkipsUnmappedCharacters(t *testing.T) {
	events, err := EncodeText("E#E", 20)
	require.NoError(t, err)
	assert.Equal(t, decoder.DecodeEvents(events, 20), "EE")
}

var collapseSpaces = regexp.MustCompile(" +")

// normalize mirrors what DecodeEvents actually recovers from EncodeText's
// output: uppercase, runs of spaces collapsed to one. Leading spaces are
// dropped entirely (DecodeEventsTimed seeds lastWasSpace=true specifically
// to suppress a word-space with no preceding character), but a *trailing*
// space is preserved as long as at least one character came before it: the
// off-event is just as long either way (the prior character's own 3-unit
// gap plus the space's 4 units), so it crosses WordSpaceLimit and is
// emitted like any other inter-word gap.
func normalize(s string) string {
	upper := strings.ToUpper(s)
	trimmed := strings.TrimLeft(upper, " ")
	return collapseSpaces.ReplaceAllString(trimmed, " ")
}

const supportedAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789.,?/-() "

func TestEncodeDecodeLeadingSpaceDropped(t *testing.T) {
	events, err := EncodeText("  A", 20)
	require.NoError(t, err)
	assert.Equal(t, "A", decoder.DecodeEvents(events, 20))
}

func TestEncodeDecodeTrailingSpacePreserved(t *testing.T) {
	events, err := EncodeText("A  ", 20)
	require.NoError(t, err)
	assert.Equal(t, "A ", decoder.DecodeEvents(events, 20))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringOfN(rapid.SampledFrom([]rune(supportedAlphabet)), 0, 12, -1).Draw(rt, "text")
		w := rapid.Float64Range(5, 60).Draw(rt, "wpm")

		events, err := EncodeText(text, w)
		require.NoError(rt, err)

		got := decoder.DecodeEvents(events, w)
		want := normalize(text)
		assert.Equal(rt, want, got)
	})
}

func TestEncodeDecodeTimedMatchesDecodeCharByChar(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringOfN(rapid.SampledFrom([]rune(supportedAlphabet)), 0, 12, -1).Draw(rt, "text")
		w := rapid.Float64Range(5, 60).Draw(rt, "wpm")

		events, err := EncodeText(text, w)
		require.NoError(rt, err)

		timed := decoder.DecodeEventsTimed(events, w)
		var fromTimed string
		for _, tc := range timed {
			fromTimed += tc.Text
		}
		assert.Equal(rt, decoder.DecodeEvents(events, w), fromTimed)
	})
}

func TestEncodeSumOfDurationsMatchesParisUnitCount(t *testing.T) {
	w := 20.0
	unit := 1.2 / w
	events, err := EncodeText("SOS", w)
	require.NoError(t, err)

	var total float64
	for _, ev := range events {
		total += ev.Duration
	}

	// S O S: each letter is 3 elements of 1 unit + 2 intra gaps of 1 unit
	// = 5 units, plus a 3-unit inter-character gap after each letter
	// except trailing behavior is "3 units after every character" per
	// spec.md §4.G (including the last). O is "---": 3 dashes (3*3=9
	// units) + 2 intra gaps (2 units) = 11 units, + 3-unit char gap.
	sExpectedUnits := 5.0 + 3.0
	oExpectedUnits := 11.0 + 3.0
	expectedUnits := sExpectedUnits + oExpectedUnits + sExpectedUnits
	assert.InDelta(t, expectedUnits*unit, total, 1e-9)
}
