package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that fetch catalog pages.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "uhcatalog/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retry attempts for rate-limited or
	// temporarily unavailable pages (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ScrapeConfig holds settings for the scrape stage.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageDelay is the politeness delay between consecutive page fetches
	// within one campus (default 500ms).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`

	// MaxParallel bounds how many campuses are scraped concurrently
	// (default 4). Campuses are independent; pages within a campus are
	// fetched sequentially.
	MaxParallel int `json:"max_parallel" yaml:"max_parallel"`

	// MaxPages caps index pagination per campus. Zero means no cap.
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// DataDir is the pipeline data root (contains raw/, clean/, combined/, csv/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ConvertConfig holds settings for the PDF conversion stage.
type ConvertConfig struct {
	HTTPConfig `yaml:",inline"`

	// Runtime selects the container runtime ("docker", "podman", or ""
	// for auto-detection).
	Runtime string `json:"runtime" yaml:"runtime"`

	// Image is the container image providing pdftotext.
	Image string `json:"image" yaml:"image"`

	// ConvertTimeout bounds a single PDF conversion.
	ConvertTimeout time.Duration `json:"convert_timeout" yaml:"convert_timeout"`

	// DataDir is the pipeline data root (contains pdf/, raw/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// CleanConfig holds settings for the clean stage.
type CleanConfig struct {
	// DropIncomplete discards records missing prefix, number, or title
	// instead of passing them through (default true).
	DropIncomplete bool `json:"drop_incomplete" yaml:"drop_incomplete"`

	// DataDir is the pipeline data root (contains raw/, clean/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// DefaultTopN is the default length of the leading-prefix and
// leading-department tables in the stats report.
const DefaultTopN = 15

// StatsConfig holds settings for the stats stage.
type StatsConfig struct {
	// TopN is how many leading prefixes and departments the report lists
	// (default 15).
	TopN int `json:"top_n" yaml:"top_n"`

	// DataDir is the pipeline data root (contains combined/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Scrape  ScrapeConfig  `json:"scrape" yaml:"scrape"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Clean   CleanConfig   `json:"clean" yaml:"clean"`
	Stats   StatsConfig   `json:"stats" yaml:"stats"`
}
