// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert extracts plain text from saved filing documents. It
// rediscovers documents on disk rather than receiving them from the
// downloader, so it can run as an independent later pass.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// textExt is the extension of the sibling text file written next to each document.
const textExt = ".txt"

// Converter renders an HTML document as plain text. Different backends
// (goquery, html2text) implement this interface.
type Converter interface {
	// Convert returns the visible text of the HTML document in html.
	Convert(html []byte) (string, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int

	// Outputs lists the text files written, in input order.
	Outputs []string
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// TextPath returns the sibling text path for a document path.
func TextPath(docPath string) string {
	return strings.TrimSuffix(docPath, filepath.Ext(docPath)) + textExt
}

// ConvertFile converts one document and writes its text to the sibling
// text file, replacing any previous output. It returns the output path.
func ConvertFile(c Converter, docPath string) (string, error) {
	raw, err := os.ReadFile(docPath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", docPath, err)
	}

	text, err := c.Convert(raw)
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", filepath.Base(docPath), err)
	}

	out := TextPath(docPath)
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", out, err)
	}
	return out, nil
}

// ConvertBatch converts each document, printing per-file status to w. A
// failure on one document is reported and does not stop the batch.
func ConvertBatch(c Converter, docPaths []string, w io.Writer, logger *zap.Logger) BatchResult {
	if logger == nil {
		logger = zap.NewNop()
	}

	var result BatchResult
	for _, p := range docPaths {
		fmt.Fprintf(w, "Converting: %s\n", filepath.Base(p))
		out, err := ConvertFile(c, p)
		if err != nil {
			fmt.Fprintf(w, "  ✗ Failed: %v\n\n", err)
			logger.Warn("conversion failed", zap.String("path", p), zap.Error(err))
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "  → Created: %s\n\n", filepath.Base(out))
		result.Converted++
		result.Outputs = append(result.Outputs, out)
	}
	return result
}
