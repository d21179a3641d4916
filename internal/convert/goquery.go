// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// nonVisible lists elements whose contents are never rendered.
const nonVisible = "script, style, noscript, template"

// GoqueryConverter returns the concatenated text nodes of a document with
// scripts and styles removed. Whitespace is kept as it appears in the
// source; no structure is reconstructed.
type GoqueryConverter struct{}

// Convert implements Converter.
func (GoqueryConverter) Convert(html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(Decode(html)))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	doc.Find(nonVisible).Remove()
	return doc.Text(), nil
}
