// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/filing-fetcher/internal/acquire"
	"github.com/pdiddy/filing-fetcher/internal/edgar"
	"github.com/pdiddy/filing-fetcher/internal/httputil"
	"github.com/pdiddy/filing-fetcher/pkg/types"
)

var banner = strings.Repeat("=", 60)

var fetchCmd = &cobra.Command{
	Use:   "fetch [ticker]",
	Short: "Download recent 10-Q and 10-K filings for a ticker",
	Long: `Fetch queries the EDGAR filing index for the ticker, resolves each filing
to its primary document, and saves the documents as
{TICKER}_{TYPE}_Filings/{TICKER}_{TYPE}_{date}.{htm|pdf}.

When no ticker is given, fetch prompts for one on standard input.
Existing files with the same name are overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("output-dir", "", "directory under which filing folders are created (default .)")
	fetchCmd.Flags().String("base-url", "", "EDGAR site root (default https://www.sec.gov)")
	viperBind(fetchCmd, "output_dir", "output-dir")
	viperBind(fetchCmd, "edgar.base_url", "base-url")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var ticker string
	if len(args) == 1 {
		ticker = args[0]
	} else {
		t, err := promptTicker(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		ticker = t
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return fmt.Errorf("a ticker is required")
	}

	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	logger := newLogger()
	defer logger.Sync()

	return fetchFilings(cmd.Context(), ticker, cfg, out, logger)
}

// promptTicker asks for a ticker on in and returns the trimmed answer.
func promptTicker(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter stock ticker: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading ticker: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// stageClients returns the locator's client, whose timeout covers each
// whole index or detail-page request, and the downloader's client, whose
// timeout covers only the wait for response headers.
func stageClients(cfg types.PipelineConfig) (*http.Client, *http.Client) {
	return httputil.NewClient(cfg.Locator.Timeout), httputil.NewDownloadClient(cfg.Download.Timeout)
}

// fetchFilings runs locate then download for every configured filing
// type. A failed index query aborts the run; per-filing failures do not.
func fetchFilings(ctx context.Context, ticker string, cfg types.PipelineConfig, out io.Writer, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	locatorClient, downloadClient := stageClients(cfg)
	locator := edgar.NewLocator(locatorClient, cfg.Locator, logger)
	downloader := acquire.NewDownloader(downloadClient, cfg.Download, logger)

	fmt.Fprintf(out, "\n%s\n", banner)
	fmt.Fprintf(out, "Downloading filings for %s\n", ticker)
	fmt.Fprintln(out, banner)

	var downloaded, failed int
	for _, req := range cfg.Filings {
		fmt.Fprintf(out, "\n--- Searching for %s filings ---\n", req.Type)

		filings, err := locator.Locate(ctx, ticker, req.Type, req.Count, out)
		if err != nil {
			return err
		}
		if len(filings) == 0 {
			fmt.Fprintf(out, "No %s filings found for %s\n", req.Type, ticker)
			continue
		}
		fmt.Fprintf(out, "Found %d %s filings\n\n", len(filings), req.Type)

		result, err := downloader.DownloadBatch(ctx, filings, ticker, req.Type, out)
		if err != nil {
			return err
		}
		downloaded += result.Downloaded
		failed += result.Failed

		folder, absErr := filepath.Abs(result.Folder)
		if absErr != nil {
			folder = result.Folder
		}
		fmt.Fprintf(out, "\n%s files saved to: %s\n", req.Type, folder)
	}

	fmt.Fprintf(out, "\n%s\n", banner)
	fmt.Fprintln(out, "Download complete!")
	fmt.Fprintln(out, banner)
	logger.Debug("fetch finished",
		zap.String("ticker", ticker),
		zap.Int("downloaded", downloaded),
		zap.Int("failed", failed),
		zap.String("elapsed", elapsed(start)))
	return nil
}
