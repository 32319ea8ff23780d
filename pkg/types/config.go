// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "tacred-tools/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the distribution endpoint partition files are fetched from.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// DownloadDelay is the delay between consecutive downloads (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`

	// CorpusDir is the base directory for corpus data (contains raw/, json/, index/).
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`
}

// ConvertConfig holds settings for format conversion.
type ConvertConfig struct {
	// OutputDir is the directory converted files are written to. Empty
	// writes next to the input file.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Indent enables indented JSON output.
	Indent bool `json:"indent" yaml:"indent"`
}

// ScoreConfig holds settings for the scoring stage.
type ScoreConfig struct {
	// Verbose enables the per-relation breakdown table.
	Verbose bool `json:"verbose" yaml:"verbose"`

	// ConfusionLimit caps the number of gold/guess error pairs reported
	// (default 10).
	ConfusionLimit int `json:"confusion_limit" yaml:"confusion_limit"`
}

// CorpusConfig holds settings for the corpus index.
type CorpusConfig struct {
	// CorpusDir is the base directory for corpus data (contains raw/, index/).
	CorpusDir string `json:"corpus_dir" yaml:"corpus_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// SampleConfig holds settings for the sampling stage.
type SampleConfig struct {
	// Seed fixes the random source for reproducible samples. Zero seeds
	// from the current time.
	Seed int64 `json:"seed" yaml:"seed"`

	// Stratify draws the sample proportionally per relation label.
	Stratify bool `json:"stratify" yaml:"stratify"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Score   ScoreConfig   `json:"score" yaml:"score"`
	Corpus  CorpusConfig  `json:"corpus" yaml:"corpus"`
	Sample  SampleConfig  `json:"sample" yaml:"sample"`
}
