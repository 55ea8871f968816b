// Package metrics exposes cwcore's Prometheus instrumentation, grounded
// on madpsy-ka9q_ubersdr's prometheus.go NewPrometheusMetrics
// (promauto.NewGaugeVec/NewCounterVec collector construction). Unlike
// that file's single process-lifetime instance registered against the
// global default registerer, each Metrics here owns a private
// prometheus.Registry so multiple pipelines (and tests) can construct
// independent instances without colliding on collector names.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors cwcore's pipelines update as they decode
// and synthesize audio.
type Metrics struct {
	Registry *prometheus.Registry

	EstimatedWPM      prometheus.Gauge
	DecodedCharsTotal prometheus.Counter
	EnvelopeGlitches  prometheus.Counter
	BuffersProcessed  prometheus.Counter
	SynthesizedFrames prometheus.Counter
}

// New constructs a Metrics instance with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		EstimatedWPM: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cw_estimated_wpm",
			Help: "Most recently estimated words-per-minute for the pipeline.",
		}),
		DecodedCharsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "cw_decoded_chars_total",
			Help: "Total number of characters (including spaces) decoded.",
		}),
		EnvelopeGlitches: factory.NewCounter(prometheus.CounterOpts{
			Name: "cw_envelope_glitches_total",
			Help: "Total number of samples on which the envelope detector suppressed a sub-debounce transition.",
		}),
		BuffersProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "cw_buffers_processed_total",
			Help: "Total number of audio buffers processed by the live pipeline.",
		}),
		SynthesizedFrames: factory.NewCounter(prometheus.CounterOpts{
			Name: "cw_synthesized_frames_total",
			Help: "Total number of PCM frames produced by the synthesizer.",
		}),
	}
}
