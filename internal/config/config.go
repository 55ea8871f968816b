// Package config loads cwcore's YAML configuration, grounded on
// madpsy-ka9q_ubersdr's config.go LoadConfig/struct-tag pattern (same
// gopkg.in/yaml.v3 dependency, same read-file-then-unmarshal shape).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is cwcore's top-level configuration.
type Config struct {
	Biquad  BiquadConfig  `yaml:"biquad"`
	Decoder DecoderConfig `yaml:"decoder"`
	Synth   SynthConfig   `yaml:"synth"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// BiquadConfig holds the bandpass filter's default center frequency and Q
// (spec.md §4.B), used by cmd/cwcore's decode mode for the bulk pipeline.
type BiquadConfig struct {
	CenterHz float64 `yaml:"center_hz"`
	Q        float64 `yaml:"q"`
}

// DecoderConfig holds envelope and WPM defaults shared by the bulk and
// live pipelines (spec.md §4.C, §4.D).
type DecoderConfig struct {
	LiveThreshold float64 `yaml:"live_threshold"`
	BulkThreshold float64 `yaml:"bulk_threshold"`
	InitialWPM    float64 `yaml:"initial_wpm"`
}

// SynthConfig holds default synthesis parameters (spec.md §4.H).
type SynthConfig struct {
	FrequencyHz  float64 `yaml:"frequency_hz"`
	SampleRateHz float64 `yaml:"sample_rate_hz"`
}

// MetricsConfig holds Prometheus exposure settings. It is loaded with the
// rest of the file, but cmd/cwcore does not read it: the registry is
// served only when the --metrics-addr flag is set.
type MetricsConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns cwcore's built-in configuration (spec.md defaults:
// 600Hz synth tone, 44100Hz sample rate, 20 WPM initial estimate).
func Default() Config {
	return Config{
		Biquad: BiquadConfig{
			CenterHz: 600.0,
			Q:        5.0,
		},
		Decoder: DecoderConfig{
			LiveThreshold: 0.01,
			BulkThreshold: 0.05,
			InitialWPM:    20.0,
		},
		Synth: SynthConfig{
			FrequencyHz:  600.0,
			SampleRateHz: 44100.0,
		},
		Metrics: MetricsConfig{
			Enabled:    false,
			ListenAddr: ":9090",
		},
	}
}

// Load reads and parses a YAML configuration file, starting from Default
// so any field the file omits keeps its built-in value.
func Load(filename string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", filename, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configuration values that would make a pipeline
// unusable (spec.md §4.K's "configuration errors ... MUST be surfaced").
func (c Config) Validate() error {
	if c.Biquad.CenterHz <= 0 {
		return fmt.Errorf("config: biquad.center_hz must be > 0, got %v", c.Biquad.CenterHz)
	}
	if c.Biquad.Q <= 0 {
		return fmt.Errorf("config: biquad.q must be > 0, got %v", c.Biquad.Q)
	}
	if c.Decoder.InitialWPM <= 0 {
		return fmt.Errorf("config: decoder.initial_wpm must be > 0, got %v", c.Decoder.InitialWPM)
	}
	if c.Synth.FrequencyHz <= 0 {
		return fmt.Errorf("config: synth.frequency_hz must be > 0, got %v", c.Synth.FrequencyHz)
	}
	if c.Synth.SampleRateHz <= 0 {
		return fmt.Errorf("config: synth.sample_rate_hz must be > 0, got %v", c.Synth.SampleRateHz)
	}
	return nil
}
