package wav

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestWriteMatchesCanonicalLayout reproduces spec.md §8 scenario #5:
// write_wav([0, 16384, -16384, 0], fs=8000) -> 44-byte header + 8 bytes
// payload; first 4 bytes "RIFF"; bytes 36-39 "data"; data size field
// (bytes 40-43) = 8.
func TestWriteMatchesCanonicalLayout(t *testing.T) {
	var buf bytes.Buffer
	samples := []int16{0, 16384, -16384, 0}
	require.NoError(t, Write(&buf, samples, 8000))

	out := buf.Bytes()
	require.Len(t, out, 44+8)
	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, "WAVE", string(out[8:12]))
	assert.Equal(t, "fmt ", string(out[12:16]))
	assert.Equal(t, "data", string(out[36:40]))

	dataSize := uint32(out[40]) | uint32(out[41])<<8 | uint32(out[42])<<16 | uint32(out[43])<<24
	assert.Equal(t, uint32(8), dataSize)
}

func TestWriteRejectsInvalidSampleRate(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, []int16{0}, 0))
}

func TestWriteEmptySamplesYieldsHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, 44100))
	assert.Len(t, buf.Bytes(), 44)
}

// TestRoundTrip validates spec.md §8 property 3: parse(write_wav(s,
// fs)).samples == s and .sample_rate == fs.
func TestRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(rt, "n")
		samples := make([]int16, n)
		for i := range samples {
			samples[i] = int16(rapid.IntRange(-32768, 32767).Draw(rt, "sample"))
		}
		sampleRate := rapid.IntRange(1, 192000).Draw(rt, "sampleRate")

		var buf bytes.Buffer
		require.NoError(rt, Write(&buf, samples, sampleRate))

		parsed, err := Read(&buf)
		require.NoError(rt, err)
		assert.Equal(rt, sampleRate, parsed.SampleRateHz)
		assert.Equal(rt, samples, parsed.Samples)
	})
}

func TestReadRejectsNonRIFF(t *testing.T) {
	_, err := Read(bytes.NewReader(make([]byte, 44)))
	assert.Error(t, err)
}
