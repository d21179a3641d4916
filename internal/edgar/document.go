// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package edgar

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/filing-fetcher/pkg/types"
)

// ErrNoDocument means the detail page had no documents table or no row
// matching the filing type.
var ErrNoDocument = errors.New("no matching document in filing index")

// DocumentResult is the outcome of resolving one filing's primary document.
type DocumentResult struct {
	URL string
	Err error
}

// Link collapses the result to the document URL, or "" when resolution failed.
func (r DocumentResult) Link() string {
	if r.Err != nil {
		return ""
	}
	return r.URL
}

// documentsTable is the selector of the documents table on a filing detail page.
const documentsTable = "table.tableFile"

// Column positions in the documents table: Seq | Description | Document | Type | Size.
const (
	colDocument = 2
	colType     = 3
	minColumns  = 4
)

// inlineViewerMarker identifies links that open a document in EDGAR's
// inline XBRL viewer instead of pointing at the raw file.
const inlineViewerMarker = "/ix?doc="

var inlineViewerDoc = regexp.MustCompile(`doc=(/Archives/edgar/data/\S+)`)

// SelectDocumentHref scans the documents table for the first row whose
// type cell contains filingType (case-insensitive) and does not contain
// "graphic", and returns the href of that row's document link. Rows are
// considered in table order; the header row is skipped.
func SelectDocumentHref(doc *goquery.Document, filingType types.FilingType) (string, error) {
	table := doc.Find(documentsTable).First()
	if table.Length() == 0 {
		return "", ErrNoDocument
	}

	rows := table.Find("tr")
	if rows.Length() < 2 {
		return "", ErrNoDocument
	}

	want := strings.ToLower(filingType.String())
	var href string
	rows.Slice(1, goquery.ToEnd).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cols := row.Find("td")
		if cols.Length() < minColumns {
			return true
		}
		docType := strings.ToLower(strings.TrimSpace(cols.Eq(colType).Text()))
		if !strings.Contains(docType, want) || strings.Contains(docType, "graphic") {
			return true
		}
		a := cols.Eq(colDocument).Find("a").First()
		if h, ok := a.Attr("href"); ok && h != "" {
			href = h
			return false
		}
		return true
	})

	if href == "" {
		return "", ErrNoDocument
	}
	return href, nil
}

// ResolveHref turns a documents-table href into a direct document URL.
// Inline-viewer links ("/ix?doc=/Archives/...") are unwrapped to the
// archive path they wrap.
func ResolveHref(baseURL, href string) string {
	full := href
	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		full = strings.TrimSuffix(baseURL, "/") + href
	}
	if strings.Contains(full, inlineViewerMarker) {
		if m := inlineViewerDoc.FindStringSubmatch(full); m != nil {
			return strings.TrimSuffix(baseURL, "/") + m[1]
		}
	}
	return full
}
