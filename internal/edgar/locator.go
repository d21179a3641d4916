// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package edgar locates filings in the SEC EDGAR archive: it queries a
// company's filing index and resolves each entry to its primary document.
package edgar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/pdiddy/filing-fetcher/internal/httputil"
	"github.com/pdiddy/filing-fetcher/pkg/types"
)

// DefaultBaseURL is the EDGAR site root.
const DefaultBaseURL = "https://www.sec.gov"

const browsePath = "/cgi-bin/browse-edgar"

// Locator queries the EDGAR filing index.
type Locator struct {
	client *http.Client
	cfg    types.LocatorConfig
	logger *zap.Logger
}

// NewLocator returns a Locator. An empty BaseURL defaults to
// DefaultBaseURL; a nil logger discards diagnostics.
func NewLocator(client *http.Client, cfg types.LocatorConfig, logger *zap.Logger) *Locator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Locator{client: client, cfg: cfg, logger: logger}
}

// IndexURL returns the atom index query for a ticker and filing type.
func (l *Locator) IndexURL(ticker string, filingType types.FilingType, count int) string {
	q := url.Values{}
	q.Set("action", "getcompany")
	q.Set("CIK", ticker)
	q.Set("type", filingType.String())
	q.Set("count", fmt.Sprint(count))
	q.Set("owner", "exclude")
	q.Set("output", "atom")
	return l.cfg.BaseURL + browsePath + "?" + q.Encode()
}

// Locate fetches up to count index entries for ticker and filingType and
// resolves each to its primary document. A failure of the index request
// itself is returned; a failure to resolve one entry's document leaves
// that filing's DocumentLink empty and is reported on w.
func (l *Locator) Locate(ctx context.Context, ticker string, filingType types.FilingType, count int, w io.Writer) ([]types.Filing, error) {
	indexURL := l.IndexURL(ticker, filingType, count)
	l.logger.Debug("querying filing index", zap.String("url", indexURL))

	body, err := httputil.GetBytes(ctx, l.client, indexURL, l.cfg.UserAgent)
	if err != nil {
		return nil, fmt.Errorf("querying %s index for %s: %w", filingType, ticker, err)
	}

	entries, err := parseFeed(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	filings := make([]types.Filing, 0, len(entries))
	for _, e := range entries {
		res := l.ResolveDocument(ctx, e.FilingURL, filingType)
		if res.Err != nil {
			if errors.Is(res.Err, ErrNoDocument) {
				l.logger.Debug("no document row", zap.String("accession", e.AccessionNumber))
			} else {
				fmt.Fprintf(w, "Error fetching document link for %s: %v\n", e.AccessionNumber, res.Err)
				l.logger.Warn("resolving document failed",
					zap.String("accession", e.AccessionNumber),
					zap.String("filing_url", e.FilingURL),
					zap.Error(res.Err))
			}
		}
		filings = append(filings, types.Filing{
			FilingDate:      e.FilingDate,
			AccessionNumber: e.AccessionNumber,
			FilingURL:       e.FilingURL,
			DocumentLink:    res.Link(),
		})
	}
	return filings, nil
}

// ResolveDocument fetches a filing detail page and returns the direct URL
// of the document whose type matches filingType.
func (l *Locator) ResolveDocument(ctx context.Context, filingURL string, filingType types.FilingType) DocumentResult {
	if filingURL == "" {
		return DocumentResult{Err: ErrNoDocument}
	}

	resp, err := httputil.Get(ctx, l.client, filingURL, l.cfg.UserAgent)
	if err != nil {
		return DocumentResult{Err: err}
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return DocumentResult{Err: fmt.Errorf("parsing filing page: %w", err)}
	}

	href, err := SelectDocumentHref(doc, filingType)
	if err != nil {
		return DocumentResult{Err: err}
	}

	link := ResolveHref(l.cfg.BaseURL, href)
	l.logger.Debug("resolved document", zap.String("filing_url", filingURL), zap.String("document", link))
	return DocumentResult{URL: link}
}
