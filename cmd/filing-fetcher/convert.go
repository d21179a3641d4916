// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/filing-fetcher/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert saved HTML filings to plain text",
	Long: `Convert scans the directory for *_10-Q_Filings/ and *_10-K_Filings/
folders, and for every .htm or .html document writes the document's visible
text to a .txt file with the same name. Existing .txt files are replaced.

Backends: goquery (raw text of the document, default) and html2text
(line-aware rendering).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipelineConfig()
		if err != nil {
			return err
		}
		c, err := convert.New(cfg.Extraction.Backend)
		if err != nil {
			return err
		}
		logger := newLogger()
		defer logger.Sync()

		_, err = convert.Run(c, cfg.Extraction.Dir, cfg.Extraction.Types, cmd.OutOrStdout(), logger)
		return err
	},
}

func init() {
	convertCmd.Flags().String("backend", "", "conversion backend: goquery or html2text (default goquery)")
	convertCmd.Flags().String("dir", "", "directory containing the filing folders (default .)")
	viperBind(convertCmd, "convert.backend", "backend")
	viperBind(convertCmd, "convert.dir", "dir")

	rootCmd.AddCommand(convertCmd)
}

// viperBind binds a command flag to a viper key.
func viperBind(cmd *cobra.Command, key, flag string) {
	viper.BindPFlag(key, cmd.Flags().Lookup(flag))
}
