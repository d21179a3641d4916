// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every EDGAR request.
	// EDGAR's access policy requires a name and contact address
	// (e.g. "Jane Doe jane@example.com").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FilingRequest names one filing type and how many index entries to request.
type FilingRequest struct {
	Type  FilingType `json:"type" yaml:"type" mapstructure:"type"`
	Count int        `json:"count" yaml:"count" mapstructure:"count"`
}

// DefaultFilingRequests returns the quarterly and annual requests used
// when no configuration overrides them.
func DefaultFilingRequests() []FilingRequest {
	return []FilingRequest{
		{Type: FilingQuarterly, Count: 9},
		{Type: FilingAnnual, Count: 3},
	}
}

// LocatorConfig holds settings for the filing locator.
type LocatorConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the EDGAR site root (default "https://www.sec.gov").
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// DownloadConfig holds settings for the filing downloader.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutputDir is the directory under which the per-ticker folders are created.
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ExtractionBackend identifies the HTML-to-text implementation.
type ExtractionBackend string

const (
	BackendGoquery   ExtractionBackend = "goquery"
	BackendHTML2Text ExtractionBackend = "html2text"
)

// ExtractionConfig holds settings for the text extraction stage.
type ExtractionConfig struct {
	// Backend selects the HTML-to-text implementation: goquery or html2text.
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// Dir is the directory scanned for *_{TYPE}_Filings folders.
	Dir string `json:"dir" yaml:"dir"`

	// Types lists the filing types whose folders are scanned.
	Types []FilingType `json:"types" yaml:"types"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Filings    []FilingRequest  `json:"filings" yaml:"filings"`
	Locator    LocatorConfig    `json:"locator" yaml:"locator"`
	Download   DownloadConfig   `json:"download" yaml:"download"`
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
}
