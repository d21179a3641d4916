// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/filing-fetcher/internal/convert"
	"github.com/pdiddy/filing-fetcher/internal/secrets"
	"github.com/pdiddy/filing-fetcher/pkg/types"
)

const acmeFeed = `<?xml version="1.0" encoding="ISO-8859-1" ?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <content type="text/xml">
      <accession-number>0000000001-24-000001</accession-number>
      <filing-date>2024-01-01</filing-date>
    </content>
    <link href="%s/Archives/edgar/data/1/000000000124000001/0000000001-24-000001-index.htm" rel="alternate" type="text/html"/>
  </entry>
</feed>`

const emptyFeed = `<?xml version="1.0" encoding="ISO-8859-1" ?>
<feed xmlns="http://www.w3.org/2005/Atom"></feed>`

const acmeDetail = `<html><body><table class="tableFile">
<tr><th>Seq</th><th>Description</th><th>Document</th><th>Type</th><th>Size</th></tr>
<tr><td>1</td><td>10-Q</td><td><a href="/ix?doc=/Archives/edgar/data/1/000000000124000001/acme-20231231.htm">acme-20231231.htm</a></td><td>10-Q</td><td>1000</td></tr>
</table></body></html>`

const acmeDocument = `<html><head><script>track()</script></head><body><h1>ACME Corp</h1><p>Quarterly <i>report</i></p></body></html>`

// newEDGARServer fakes the EDGAR index, detail page, and document for ACME
// 10-Q filings; 10-K queries return an empty feed.
func newEDGARServer(t *testing.T) *httptest.Server {
	t.Helper()
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/cgi-bin/browse-edgar" && r.URL.Query().Get("type") == "10-Q":
			fmt.Fprintf(w, acmeFeed, ts.URL)
		case r.URL.Path == "/cgi-bin/browse-edgar":
			fmt.Fprint(w, emptyFeed)
		case strings.HasSuffix(r.URL.Path, "-index.htm"):
			fmt.Fprint(w, acmeDetail)
		case strings.HasSuffix(r.URL.Path, "acme-20231231.htm"):
			fmt.Fprint(w, acmeDocument)
		default:
			http.NotFound(w, r)
		}
	}))
	return ts
}

func testPipelineConfig(baseURL, dir string) types.PipelineConfig {
	httpCfg := types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "filing-fetcher-test test@example.com"}
	return types.PipelineConfig{
		Filings:  types.DefaultFilingRequests(),
		Locator:  types.LocatorConfig{HTTPConfig: httpCfg, BaseURL: baseURL},
		Download: types.DownloadConfig{HTTPConfig: httpCfg, OutputDir: dir},
		Extraction: types.ExtractionConfig{
			Dir:   dir,
			Types: []types.FilingType{types.FilingQuarterly, types.FilingAnnual},
		},
	}
}

func TestFetchThenConvert(t *testing.T) {
	ts := newEDGARServer(t)
	defer ts.Close()

	dir := t.TempDir()
	cfg := testPipelineConfig(ts.URL, dir)

	var out bytes.Buffer
	require.NoError(t, fetchFilings(context.Background(), "ACME", cfg, &out, zap.NewNop()))

	doc := filepath.Join(dir, "ACME_10-Q_Filings", "ACME_10-Q_2024-01-01.htm")
	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, acmeDocument, string(data))

	log := out.String()
	assert.Contains(t, log, "Found 1 10-Q filings")
	assert.Contains(t, log, "No 10-K filings found for ACME")
	assert.Contains(t, log, "Download complete!")
	assert.NoDirExists(t, filepath.Join(dir, "ACME_10-K_Filings"))

	var convLog bytes.Buffer
	result, err := convert.Run(convert.GoqueryConverter{}, dir, cfg.Extraction.Types, &convLog, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Converted)

	text, err := os.ReadFile(filepath.Join(dir, "ACME_10-Q_Filings", "ACME_10-Q_2024-01-01.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ACME CorpQuarterly report", string(text))
}

func TestFetchFilings_IndexFailureAborts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	dir := t.TempDir()
	err := fetchFilings(context.Background(), "ACME", testPipelineConfig(ts.URL, dir), &bytes.Buffer{}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 503")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestPromptTicker(t *testing.T) {
	var out bytes.Buffer
	got, err := promptTicker(strings.NewReader("  acme \n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "acme", got)
	assert.Equal(t, "Enter stock ticker: ", out.String())

	got, err = promptTicker(strings.NewReader("msft"), &out)
	require.NoError(t, err)
	assert.Equal(t, "msft", got)
}

func TestPipelineConfig_Defaults(t *testing.T) {
	cfg, err := pipelineConfig()
	require.NoError(t, err)

	assert.Equal(t, types.DefaultFilingRequests(), cfg.Filings)
	assert.Equal(t, "https://www.sec.gov", cfg.Locator.BaseURL)
	assert.Equal(t, ".", cfg.Download.OutputDir)
	assert.Equal(t, 60*time.Second, cfg.Download.Timeout)
	assert.NotEmpty(t, cfg.Locator.UserAgent)
	assert.Equal(t, cfg.Locator.UserAgent, cfg.Download.UserAgent)
	assert.Equal(t, []types.FilingType{types.FilingQuarterly, types.FilingAnnual}, cfg.Extraction.Types)
}

func TestPipelineConfig_UserAgentPrecedence(t *testing.T) {
	cfg, err := pipelineConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultUserAgent, cfg.Locator.UserAgent)

	loadedSecrets = secrets.Secrets{secrets.UserAgentKey: "Secret Agent secret@example.com"}
	t.Cleanup(func() { loadedSecrets = nil })

	cfg, err = pipelineConfig()
	require.NoError(t, err)
	assert.Equal(t, "Secret Agent secret@example.com", cfg.Locator.UserAgent)

	viper.Set("user_agent", "Flag Agent flag@example.com")
	t.Cleanup(func() { viper.Set("user_agent", "") })

	cfg, err = pipelineConfig()
	require.NoError(t, err)
	assert.Equal(t, "Flag Agent flag@example.com", cfg.Locator.UserAgent)
}

func TestPipelineConfig_UserAgentWithoutContact(t *testing.T) {
	viper.Set("user_agent", "Mozilla/5.0")
	t.Cleanup(func() { viper.Set("user_agent", "") })

	_, err := pipelineConfig()
	assert.ErrorIs(t, err, secrets.ErrNoContact)

	viper.Set("user_agent", "")
	loadedSecrets = secrets.Secrets{secrets.UserAgentKey: "Jane Doe"}
	t.Cleanup(func() { loadedSecrets = nil })

	_, err = pipelineConfig()
	assert.ErrorIs(t, err, secrets.ErrNoContact)
}

func TestStageClients(t *testing.T) {
	cfg := testPipelineConfig("http://edgar.test", t.TempDir())
	cfg.Locator.Timeout = 7 * time.Second
	cfg.Download.Timeout = 11 * time.Second

	locatorClient, downloadClient := stageClients(cfg)
	assert.Equal(t, 7*time.Second, locatorClient.Timeout)
	assert.Zero(t, downloadClient.Timeout)
	transport, ok := downloadClient.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 11*time.Second, transport.ResponseHeaderTimeout)
}

func TestPipelineConfig_YAML(t *testing.T) {
	cfg, err := pipelineConfig()
	require.NoError(t, err)

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: https://www.sec.gov")
	assert.Contains(t, string(data), "type: 10-Q")
}
