// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/filing-fetcher/pkg/types"
)

var htmlExts = []string{".htm", ".html"}

// Patterns returns the glob patterns, relative to a root directory, that
// match saved HTML documents of the given filing types.
func Patterns(filingTypes []types.FilingType) []string {
	var patterns []string
	for _, ft := range filingTypes {
		for _, ext := range htmlExts {
			patterns = append(patterns, filepath.Join("*_"+ft.String()+"_Filings", "*"+ext))
		}
	}
	return patterns
}

// Discover returns the HTML documents under root that live in a
// *_{TYPE}_Filings folder, grouped by filing type in the given order.
func Discover(root string, filingTypes []types.FilingType) ([]string, error) {
	var paths []string
	for _, pattern := range Patterns(filingTypes) {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// Run discovers documents under root and converts each. When nothing is
// found it reports so on w and returns an empty result without error.
func Run(c Converter, root string, filingTypes []types.FilingType, w io.Writer, logger *zap.Logger) (BatchResult, error) {
	paths, err := Discover(root, filingTypes)
	if err != nil {
		return BatchResult{}, err
	}

	if len(paths) == 0 {
		folders := make([]string, len(filingTypes))
		for i, ft := range filingTypes {
			folders[i] = "*_" + ft.String() + "_Filings"
		}
		abs, _ := filepath.Abs(root)
		fmt.Fprintf(w, "No HTML files found in %s folders\n", strings.Join(folders, " or "))
		fmt.Fprintf(w, "Current directory: %s\n", abs)
		return BatchResult{}, nil
	}

	fmt.Fprintf(w, "Found %d HTML files\n\n", len(paths))
	result := ConvertBatch(c, paths, w, logger)
	if result.HasFailures() {
		fmt.Fprintf(w, "Done with errors: %d converted, %d failed\n", result.Converted, result.Failed)
	} else {
		fmt.Fprintln(w, "Done! All HTML files have been converted to .txt files")
	}
	return result, nil
}
