package pipeline

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cerkit/cw-companion/internal/biquad"
	"github.com/cerkit/cw-companion/internal/decoder"
	"github.com/cerkit/cw-companion/internal/envelope"
	"github.com/cerkit/cw-companion/internal/metrics"
)

// LivePipeline implements spec.md §4.K: filter state and envelope state
// persist across calls to ProcessBufferLive, and the biquad is configured
// lazily from the first chunk's sample rate. StreamID exists purely as a
// correlation handle for callers that fan multiple concurrent streams
// into shared logs or metrics labels — the decoding algorithm itself
// never inspects it.
type LivePipeline struct {
	StreamID uuid.UUID

	centerHz  float64
	q         float64
	threshold float64

	filt       *biquad.Filter
	det        *envelope.Detector
	streamDec  *decoder.StreamingDecoder
	configured bool

	reportedGlitches uint64
	metrics          *metrics.Metrics
}

// NewLivePipeline creates a LivePipeline with the given bandpass center
// frequency/Q, envelope threshold, and initial WPM estimate. The biquad
// and envelope detector are not yet configured to a sample rate; that
// happens on the first call to ProcessBufferLive (spec.md §4.K step 1).
// m may be nil if the caller doesn't want metrics recorded.
func NewLivePipeline(centerHz, q, threshold, initialWPM float64, m *metrics.Metrics) (*LivePipeline, error) {
	sd, err := decoder.NewStreamingDecoder(initialWPM)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return &LivePipeline{
		StreamID:  uuid.New(),
		centerHz:  centerHz,
		q:         q,
		threshold: threshold,
		streamDec: sd,
		metrics:   m,
	}, nil
}

// ProcessBufferLive consumes one chunk of mono float32 PCM at the given
// sample rate and returns the text decoded from it (spec.md §4.K). The
// biquad is configured from the first chunk's sample rate and reused
// as-is on subsequent chunks, matching the spec's "(re)configure on the
// first chunk" contract.
func (p *LivePipeline) ProcessBufferLive(samples []float32, sampleRateHz float64) (string, error) {
	if sampleRateHz <= 0 || math.IsNaN(sampleRateHz) {
		return "", fmt.Errorf("pipeline: invalid sample rate %v", sampleRateHz)
	}

	if !p.configured {
		filt, err := biquad.New(p.centerHz, sampleRateHz, p.q)
		if err != nil {
			return "", fmt.Errorf("pipeline: %w", err)
		}
		det, err := envelope.New(sampleRateHz, p.threshold)
		if err != nil {
			return "", fmt.Errorf("pipeline: %w", err)
		}
		p.filt = filt
		p.det = det
		p.configured = true
	}

	var out string
	for _, s := range samples {
		filtered := p.filt.Process(float64(s))
		if ev, ok := p.det.Process(filtered); ok {
			out += p.streamDec.ProcessEvent(ev.Duration, ev.IsOn)
		}
	}

	if silence, isOff := p.det.CurrentSilenceDuration(); isOff {
		out += p.streamDec.CheckTimeout(silence)
	}

	if p.metrics != nil {
		p.metrics.BuffersProcessed.Inc()
		p.metrics.DecodedCharsTotal.Add(float64(len(out)))
		total := p.det.GlitchCount()
		p.metrics.EnvelopeGlitches.Add(float64(total - p.reportedGlitches))
		p.reportedGlitches = total
	}

	return out, nil
}

// SetWPM updates the streaming decoder's timing thresholds without
// resetting any in-progress symbol (spec.md §4.F).
func (p *LivePipeline) SetWPM(w float64) {
	p.streamDec.SetWPM(w)
	if p.metrics != nil {
		p.metrics.EstimatedWPM.Set(w)
	}
}

// Reset clears filter history, envelope state, and the decoder's
// in-progress symbol, as if the stream were starting fresh (spec.md §5
// "cancellation"). The biquad/envelope configuration (sample rate,
// center frequency, Q) is preserved; only the signal history is cleared.
func (p *LivePipeline) Reset() {
	if p.filt != nil {
		p.filt.Reset()
	}
	if p.det != nil {
		p.det.Reset()
	}
	// A fresh decoder at the same WPM drops any in-progress symbol and
	// pending word-space state.
	if sd, err := decoder.NewStreamingDecoder(1.2 / p.streamDec.Thresholds().Unit); err == nil {
		p.streamDec = sd
	}
	p.reportedGlitches = 0
}
