// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// FilingType is an EDGAR form tag such as "10-Q" or "10-K".
type FilingType string

const (
	FilingQuarterly FilingType = "10-Q"
	FilingAnnual    FilingType = "10-K"
)

// String returns the form tag.
func (t FilingType) String() string { return string(t) }

// Filing describes one entry of a company's EDGAR filing index. The
// Locator builds it and the Downloader consumes it; it is never written
// to disk.
type Filing struct {
	// FilingDate is the filing date as reported by the index (e.g. "2024-01-01").
	FilingDate string `json:"filing_date" yaml:"filing_date"`

	// AccessionNumber is EDGAR's unique submission identifier.
	AccessionNumber string `json:"accession_number" yaml:"accession_number"`

	// FilingURL is the filing detail (index) page.
	FilingURL string `json:"filing_url" yaml:"filing_url"`

	// DocumentLink is the direct URL of the primary document. Empty when
	// no document could be resolved from the detail page.
	DocumentLink string `json:"document_link,omitempty" yaml:"document_link,omitempty"`
}

// HasDocument reports whether a primary document link was resolved.
func (f Filing) HasDocument() bool {
	return strings.TrimSpace(f.DocumentLink) != ""
}
