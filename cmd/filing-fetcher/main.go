// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the filing-fetcher CLI.
// The fetch subcommand locates and downloads 10-Q/10-K filings from EDGAR;
// the convert subcommand turns saved HTML filings into plain text.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/filing-fetcher/internal/edgar"
	"github.com/pdiddy/filing-fetcher/internal/httputil"
	"github.com/pdiddy/filing-fetcher/internal/logging"
	"github.com/pdiddy/filing-fetcher/internal/secrets"
	"github.com/pdiddy/filing-fetcher/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// defaultUserAgent is sent when no User-Agent is configured. EDGAR
// rejects anonymous clients, so users should override it.
const defaultUserAgent = "filing-fetcher admin@example.com"

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the filing-fetcher CLI.
var rootCmd = &cobra.Command{
	Use:   "filing-fetcher",
	Short: "Download SEC 10-Q/10-K filings and convert them to text",
	Long: `filing-fetcher retrieves quarterly (10-Q) and annual (10-K) filings for a
ticker from SEC EDGAR and saves them under {TICKER}_{TYPE}_Filings/ folders.

The convert subcommand is a separate pass: it scans the current directory
for saved HTML filings and writes a plain-text .txt file next to each one.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", newLogger())
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := s.Keys()
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./filing-fetcher.yaml or ~/.config/filing-fetcher/config.yaml)")
	rootCmd.PersistentFlags().String("user-agent", "", `User-Agent sent to EDGAR, e.g. "Jane Doe jane@example.com"`)
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "write diagnostic logs to stderr")

	viper.BindPFlag("user_agent", rootCmd.PersistentFlags().Lookup("user-agent"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	// A missing .env is normal; variables already in the environment win.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("filing-fetcher")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "filing-fetcher"))
		}
	}

	viper.SetEnvPrefix("FILING_FETCHER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the effective configuration from flags,
// environment, config file, secrets, and defaults, in that order.
func pipelineConfig() (types.PipelineConfig, error) {
	timeout := viper.GetDuration("timeout")
	if timeout == 0 {
		timeout = httputil.DefaultTimeout
	}
	userAgent, err := resolveUserAgent()
	if err != nil {
		return types.PipelineConfig{}, err
	}
	httpCfg := types.HTTPConfig{Timeout: timeout, UserAgent: userAgent}

	var filings []types.FilingRequest
	if err := viper.UnmarshalKey("filings", &filings); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("parsing filings config: %w", err)
	}
	if len(filings) == 0 {
		filings = types.DefaultFilingRequests()
	}

	baseURL := viper.GetString("edgar.base_url")
	if baseURL == "" {
		baseURL = edgar.DefaultBaseURL
	}
	outputDir := viper.GetString("output_dir")
	if outputDir == "" {
		outputDir = "."
	}

	convertDir := viper.GetString("convert.dir")
	if convertDir == "" {
		convertDir = outputDir
	}

	convertTypes := make([]types.FilingType, 0, len(filings))
	for _, f := range filings {
		convertTypes = append(convertTypes, f.Type)
	}

	return types.PipelineConfig{
		Filings: filings,
		Locator: types.LocatorConfig{
			HTTPConfig: httpCfg,
			BaseURL:    strings.TrimSuffix(baseURL, "/"),
		},
		Download: types.DownloadConfig{
			HTTPConfig: httpCfg,
			OutputDir:  outputDir,
		},
		Extraction: types.ExtractionConfig{
			Backend: types.ExtractionBackend(viper.GetString("convert.backend")),
			Dir:     convertDir,
			Types:   convertTypes,
		},
	}, nil
}

// resolveUserAgent picks the EDGAR User-Agent from flag, environment or
// config file first, then the edgar-user-agent secret, then the default.
// Whatever is chosen must carry a contact address.
func resolveUserAgent() (string, error) {
	ua := viper.GetString("user_agent")
	if ua == "" {
		fromSecret, err := loadedSecrets.UserAgent()
		if err != nil {
			return "", err
		}
		ua = fromSecret
	}
	if ua == "" {
		return defaultUserAgent, nil
	}
	if err := secrets.ValidateUserAgent(ua); err != nil {
		return "", fmt.Errorf("user agent: %w", err)
	}
	return ua, nil
}

// newLogger returns the diagnostic logger selected by --verbose.
func newLogger() *zap.Logger {
	return logging.New(viper.GetBool("verbose"), os.Stderr)
}

// elapsed formats a run duration for summaries.
func elapsed(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
