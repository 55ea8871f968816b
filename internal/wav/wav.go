// Package wav writes canonical RIFF/WAVE containers around mono 16-bit
// PCM sample buffers (spec.md §4.I). Grounded directly on
// madpsy-ka9q_ubersdr's decoder_wav.go WAVWriter/WAVHeader, adapted from
// that file's seekable-file, header-then-patch approach to a single
// one-shot io.Writer call: spec.md's core never performs file I/O, so the
// header size is computed up front instead of seeked back to.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	bitsPerSample = 16
	channels      = 1
	fmtChunkSize  = 16
	pcmFormat     = 1
)

// header mirrors the canonical 44-byte RIFF/WAVE PCM header, little-endian
// throughout (spec.md §4.I).
type header struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// Write encodes samples as a mono 16-bit PCM WAVE file at sampleRateHz and
// writes it to w. Equal inputs always produce byte-identical output: the
// header is derived purely from sampleRateHz and len(samples).
func Write(w io.Writer, samples []int16, sampleRateHz int) error {
	if sampleRateHz <= 0 {
		return fmt.Errorf("wav: invalid sample rate %d", sampleRateHz)
	}

	dataSize := uint32(len(samples) * bitsPerSample / 8)
	byteRate := uint32(sampleRateHz * channels * bitsPerSample / 8)
	blockAlign := uint16(channels * bitsPerSample / 8)

	h := header{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: fmtChunkSize,
		AudioFormat:   pcmFormat,
		NumChannels:   channels,
		SampleRate:    uint32(sampleRateHz),
		ByteRate:      byteRate,
		BlockAlign:    blockAlign,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("wav: writing header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("wav: writing samples: %w", err)
	}
	return nil
}

// Parsed holds the result of Read: the mono 16-bit samples and the sample
// rate declared in the fmt sub-chunk.
type Parsed struct {
	Samples      []int16
	SampleRateHz int
}

// Read parses a mono 16-bit PCM WAVE container written by Write. It is the
// inverse used to validate the round-trip property (spec.md §8 property
// 3): only the single-fmt-chunk, single-data-chunk canonical layout Write
// produces is supported.
func Read(r io.Reader) (Parsed, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return Parsed{}, fmt.Errorf("wav: reading header: %w", err)
	}

	if h.ChunkID != [4]byte{'R', 'I', 'F', 'F'} || h.Format != [4]byte{'W', 'A', 'V', 'E'} {
		return Parsed{}, fmt.Errorf("wav: not a RIFF/WAVE stream")
	}
	if h.Subchunk1ID != [4]byte{'f', 'm', 't', ' '} || h.AudioFormat != pcmFormat {
		return Parsed{}, fmt.Errorf("wav: unsupported fmt chunk")
	}
	if h.Subchunk2ID != [4]byte{'d', 'a', 't', 'a'} {
		return Parsed{}, fmt.Errorf("wav: unsupported data chunk")
	}
	if h.BitsPerSample != bitsPerSample || h.NumChannels != channels {
		return Parsed{}, fmt.Errorf("wav: unsupported format (bits=%d channels=%d)", h.BitsPerSample, h.NumChannels)
	}

	numSamples := h.Subchunk2Size / (bitsPerSample / 8)
	samples := make([]int16, numSamples)
	if err := binary.Read(r, binary.LittleEndian, samples); err != nil {
		return Parsed{}, fmt.Errorf("wav: reading samples: %w", err)
	}

	return Parsed{Samples: samples, SampleRateHz: int(h.SampleRate)}, nil
}
