package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerkit/cw-companion/internal/encoder"
	"github.com/cerkit/cw-companion/internal/metrics"
	"github.com/cerkit/cw-companion/internal/synth"
)

func TestNewLivePipelineAssignsDistinctStreamIDs(t *testing.T) {
	a, err := NewLivePipeline(600, 5, 0.01, 20, nil)
	require.NoError(t, err)
	b, err := NewLivePipeline(600, 5, 0.01, 20, nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.StreamID, b.StreamID)
}

func TestNewLivePipelineRejectsInvalidWPM(t *testing.T) {
	_, err := NewLivePipeline(600, 5, 0.01, 0, nil)
	assert.Error(t, err)
}

func TestProcessBufferLiveEndToEndChunked(t *testing.T) {
	const wpm = 20.0
	events, err := encoder.EncodeText("HI THERE", wpm)
	require.NoError(t, err)

	const fs = 44100.0
	pcm, err := synth.Synthesize(events, synth.DefaultFrequencyHz, fs)
	require.NoError(t, err)

	samples := make([]float32, len(pcm))
	for i, s := range pcm {
		samples[i] = float32(s) / 32768.0
	}

	m := metrics.New()
	p, err := NewLivePipeline(synth.DefaultFrequencyHz, 5.0, 0.01, wpm, m)
	require.NoError(t, err)

	var out string
	const chunkSize = 512
	for i := 0; i < len(samples); i += chunkSize {
		end := i + chunkSize
		if end > len(samples) {
			end = len(samples)
		}
		text, err := p.ProcessBufferLive(samples[i:end], fs)
		require.NoError(t, err)
		out += text
	}
	// Flush any trailing pending character past end-of-stream with a
	// final long silence check, mirroring what a caller does on stream
	// close. A silence that long also crosses the word-space threshold, so
	// the decoded text ends with a word space.
	out += p.streamDec.CheckTimeout(1.0)

	assert.Equal(t, "HI THERE ", out)
	assert.Greater(t, testCounterValue(t, m), 0.0)
}

func testCounterValue(t *testing.T, m *metrics.Metrics) float64 {
	t.Helper()
	mf, err := m.Registry.Gather()
	require.NoError(t, err)
	for _, f := range mf {
		if f.GetName() == "cw_buffers_processed_total" {
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func TestProcessBufferLiveRejectsInvalidSampleRate(t *testing.T) {
	p, err := NewLivePipeline(600, 5, 0.01, 20, nil)
	require.NoError(t, err)
	_, err = p.ProcessBufferLive([]float32{0}, 0)
	assert.Error(t, err)
}

func TestResetClearsFilterAndEnvelopeHistory(t *testing.T) {
	p, err := NewLivePipeline(600, 5, 0.01, 20, nil)
	require.NoError(t, err)

	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = 0.5
	}
	_, err = p.ProcessBufferLive(samples, 44100)
	require.NoError(t, err)

	p.Reset()
	assert.Equal(t, 0.0, p.filt.Process(0))
}
