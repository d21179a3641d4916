// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package edgar

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// EDGAR company-browse Atom feed. Filing fields live under <content>;
// top-level variants are accepted as a fallback.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Content   atomContent `xml:"content"`
	FilingDt  string      `xml:"filing-date"`
	Accession string      `xml:"accession-number"`
	Links     []atomLink  `xml:"link"`
}

type atomContent struct {
	FilingDate      string `xml:"filing-date"`
	AccessionNumber string `xml:"accession-number"`
	FilingHref      string `xml:"filing-href"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
}

// feedEntry is a decoded index entry before document resolution.
type feedEntry struct {
	FilingDate      string
	AccessionNumber string
	FilingURL       string
}

// parseFeed decodes an EDGAR Atom index response. EDGAR declares
// ISO-8859-1, so non-UTF-8 declarations are decoded via charset labels.
func parseFeed(r io.Reader) ([]feedEntry, error) {
	var feed atomFeed
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing EDGAR index feed: %w", err)
	}

	entries := make([]feedEntry, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		fe := feedEntry{
			FilingDate:      firstNonEmpty(e.Content.FilingDate, e.FilingDt),
			AccessionNumber: firstNonEmpty(e.Content.AccessionNumber, e.Accession),
		}
		if len(e.Links) > 0 {
			fe.FilingURL = strings.TrimSpace(e.Links[0].Href)
		}
		if fe.FilingURL == "" {
			fe.FilingURL = strings.TrimSpace(e.Content.FilingHref)
		}
		entries = append(entries, fe)
	}
	return entries, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
