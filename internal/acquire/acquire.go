// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads located filing documents into per-ticker folders.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/filing-fetcher/internal/httputil"
	"github.com/pdiddy/filing-fetcher/pkg/types"
)

// BatchResult holds the outcome of a batch download run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int

	// Folder is the destination folder of the batch.
	Folder string

	// Paths lists the files written, in filing order.
	Paths []string
}

// Total returns the total number of filings processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any download failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Downloader saves filing documents to disk.
type Downloader struct {
	client *http.Client
	cfg    types.DownloadConfig
	logger *zap.Logger
}

// NewDownloader returns a Downloader writing under cfg.OutputDir (the
// current directory when empty). A nil logger discards diagnostics.
func NewDownloader(client *http.Client, cfg types.DownloadConfig, logger *zap.Logger) *Downloader {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Downloader{client: client, cfg: cfg, logger: logger}
}

// Folder returns the destination folder for ticker and filingType.
func (d *Downloader) Folder(ticker string, filingType types.FilingType) string {
	return filepath.Join(d.cfg.OutputDir, FolderName(ticker, filingType))
}

// DownloadBatch ensures the destination folder exists and saves every
// filing that has a document link. Filings without a link are skipped.
// A failed download is reported on w and does not stop the batch; only a
// failure to create the folder is returned as an error.
func (d *Downloader) DownloadBatch(ctx context.Context, filings []types.Filing, ticker string, filingType types.FilingType, w io.Writer) (BatchResult, error) {
	folder := d.Folder(ticker, filingType)
	result := BatchResult{Folder: folder}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return result, fmt.Errorf("creating directory %s: %w", folder, err)
	}

	for _, f := range filings {
		if !f.HasDocument() {
			fmt.Fprintf(w, "Skipping %s - no document found\n", f.FilingDate)
			result.Skipped++
			continue
		}

		name := FileName(ticker, filingType, f.FilingDate, f.DocumentLink)
		dest := filepath.Join(folder, name)

		fmt.Fprintf(w, "Downloading: %s\n", name)
		if err := d.downloadFile(ctx, f.DocumentLink, dest); err != nil {
			fmt.Fprintf(w, "  ✗ Failed: %v\n", err)
			d.logger.Warn("download failed",
				zap.String("accession", f.AccessionNumber),
				zap.String("url", f.DocumentLink),
				zap.Error(err))
			result.Failed++
			continue
		}
		fmt.Fprintln(w, "  ✓ Successfully downloaded")
		result.Downloaded++
		result.Paths = append(result.Paths, dest)
	}

	d.logger.Debug("batch finished",
		zap.String("folder", folder),
		zap.Int("downloaded", result.Downloaded),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result, nil
}

// downloadFile streams url into destPath through a temporary file in the
// same directory, replacing any existing file on success.
func (d *Downloader) downloadFile(ctx context.Context, url, destPath string) error {
	resp, err := httputil.Get(ctx, d.client, url, d.cfg.UserAgent)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
