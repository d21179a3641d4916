// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "github.com/k3a/html2text"

// HTML2TextConverter renders documents with k3a/html2text, which turns
// block elements and <br> into line breaks and unescapes entities.
type HTML2TextConverter struct{}

// Convert implements Converter.
func (HTML2TextConverter) Convert(html []byte) (string, error) {
	return html2text.HTML2TextWithOptions(Decode(html), html2text.WithUnixLineBreaks()), nil
}
