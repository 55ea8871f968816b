package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewRegistersDistinctInstances(t *testing.T) {
	a := New()
	b := New()

	a.DecodedCharsTotal.Add(3)
	b.DecodedCharsTotal.Add(7)

	assert.Equal(t, float64(3), testutil.ToFloat64(a.DecodedCharsTotal))
	assert.Equal(t, float64(7), testutil.ToFloat64(b.DecodedCharsTotal))
}

func TestGaugeAndCounterUpdates(t *testing.T) {
	m := New()

	m.EstimatedWPM.Set(18.5)
	m.EnvelopeGlitches.Add(2)
	m.BuffersProcessed.Inc()
	m.SynthesizedFrames.Add(640)

	assert.Equal(t, 18.5, testutil.ToFloat64(m.EstimatedWPM))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.EnvelopeGlitches))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BuffersProcessed))
	assert.Equal(t, float64(640), testutil.ToFloat64(m.SynthesizedFrames))
}
