// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/filing-fetcher/pkg/types"
)

// FolderName returns the per-ticker, per-type folder name,
// e.g. "ACME_10-Q_Filings".
func FolderName(ticker string, filingType types.FilingType) string {
	return fmt.Sprintf("%s_%s_Filings", strings.ToUpper(ticker), filingType)
}

// FileName returns the local filename for a filing document,
// e.g. "ACME_10-Q_2024-01-01.htm".
func FileName(ticker string, filingType types.FilingType, filingDate, documentURL string) string {
	return fmt.Sprintf("%s_%s_%s.%s", strings.ToUpper(ticker), filingType, filingDate, Extension(documentURL))
}

// Extension maps a document URL to the saved file extension. HTML and
// unknown documents become "htm", PDFs "pdf". The response content type
// is not consulted.
func Extension(documentURL string) string {
	p := documentURL
	if u, err := url.Parse(documentURL); err == nil && u.Path != "" {
		p = u.Path
	}
	switch {
	case strings.HasSuffix(p, ".htm"), strings.HasSuffix(p, ".html"):
		return "htm"
	case strings.HasSuffix(p, ".pdf"):
		return "pdf"
	default:
		return "htm"
	}
}
