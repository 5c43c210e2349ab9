package main

import (
	"encoding/json"
	"fmt"

	"compliance/ecfr"
	"compliance/types"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <part>...",
	Short: "Fetch eCFR summaries for regulation parts",
	Long: `summary fetches the eCFR page of each part (for example 191 192 195)
concurrently and prints the extracted summaries as JSON. A part that cannot be
fetched is reported with an error and fallback URL.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parts := make([]types.Part, len(args))
		for i, a := range args {
			parts[i] = types.Part(a)
		}

		extractor := ecfr.NewExtractor(ecfr.Config{
			BaseURL:     cfg.ECFRBaseURL,
			Timeout:     cfg.ECFRTimeout,
			UserAgent:   cfg.ECFRUserAgent,
			Concurrency: cfg.FetchConcurrency,
		}, logger)

		out, err := json.MarshalIndent(extractor.FetchAll(cmd.Context(), parts), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
