// Command cwcore is a CLI front end for the CW decoding/encoding core:
// encode text to a WAV tone, or decode a WAV recording back to text.
// Grounded on madpsy-ka9q_ubersdr's main.go flag/config/metrics wiring,
// adapted to this module's pflag-based POSIX flags (as used throughout
// doismellburning-samoyed's src/appserver.go and src/atest.go) in place
// of that file's stdlib flag package.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"

	"github.com/cerkit/cw-companion/internal/config"
	"github.com/cerkit/cw-companion/internal/encoder"
	"github.com/cerkit/cw-companion/internal/metrics"
	"github.com/cerkit/cw-companion/internal/pipeline"
	"github.com/cerkit/cw-companion/internal/synth"
	"github.com/cerkit/cw-companion/internal/wav"
)

func main() {
	var (
		mode        = pflag.StringP("mode", "m", "", "Operation: \"encode\" or \"decode\".")
		text        = pflag.StringP("text", "t", "", "Text to encode (encode mode).")
		wpm         = pflag.Float64P("wpm", "w", 20.0, "Sending speed in words per minute.")
		inPath      = pflag.StringP("in", "i", "", "Input WAV file (decode mode).")
		outPath     = pflag.StringP("out", "o", "", "Output WAV file (encode mode).")
		configPath  = pflag.StringP("config", "c", "", "Path to a cwcore YAML config file; built-in defaults used if omitted.")
		metricsAddr = pflag.String("metrics-addr", "", "If set, serve Prometheus metrics on this address (e.g. :9090) instead of exiting after the operation.")
		help        = pflag.BoolP("help", "h", false, "Display help text.")
	)

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cwcore --mode encode --text \"HI\" --out hi.wav\n")
		fmt.Fprintf(os.Stderr, "       cwcore --mode decode --in hi.wav\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("cwcore: %v", err)
		}
	}

	m := metrics.New()
	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, m)
	}

	switch *mode {
	case "encode":
		if err := runEncode(*text, *wpm, *outPath, cfg, m); err != nil {
			log.Fatalf("cwcore: %v", err)
		}
	case "decode":
		if err := runDecode(*inPath, cfg, m); err != nil {
			log.Fatalf("cwcore: %v", err)
		}
	default:
		pflag.Usage()
		os.Exit(2)
	}
}

func serveMetrics(addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	log.Printf("cwcore: serving metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("cwcore: metrics server stopped: %v", err)
	}
}

func runEncode(text string, w float64, outPath string, cfg config.Config, m *metrics.Metrics) error {
	if outPath == "" {
		return fmt.Errorf("encode mode requires --out")
	}

	events, err := encoder.EncodeText(text, w)
	if err != nil {
		return err
	}

	samples, err := synth.Synthesize(events, cfg.Synth.FrequencyHz, cfg.Synth.SampleRateHz)
	if err != nil {
		return err
	}
	m.SynthesizedFrames.Add(float64(len(samples)))

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()

	if err := wav.Write(f, samples, int(cfg.Synth.SampleRateHz)); err != nil {
		return err
	}

	log.Printf("cwcore: wrote %d frames to %s", len(samples), outPath)
	return nil
}

func runDecode(inPath string, cfg config.Config, m *metrics.Metrics) error {
	if inPath == "" {
		return fmt.Errorf("decode mode requires --in")
	}

	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inPath, err)
	}
	defer f.Close()

	parsed, err := wav.Read(f)
	if err != nil {
		return err
	}

	samples := make([]float32, len(parsed.Samples))
	for i, s := range parsed.Samples {
		samples[i] = float32(s) / 32768.0
	}

	result, err := pipeline.RunBulk(samples, float64(parsed.SampleRateHz), cfg.Biquad.CenterHz, cfg.Biquad.Q, cfg.Decoder.BulkThreshold)
	if err != nil {
		return err
	}

	m.EstimatedWPM.Set(result.EstimatedW)
	m.DecodedCharsTotal.Add(float64(len(result.Text)))

	fmt.Println(result.Text)
	log.Printf("cwcore: decoded %d chars at an estimated %.1f WPM", len(result.Text), result.EstimatedW)
	return nil
}
