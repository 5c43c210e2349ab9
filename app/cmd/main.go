package main

import (
	"log/slog"
	"os"

	"compliance/config"

	"github.com/spf13/cobra"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "compliance",
	Short: "PHMSA pipeline-safety compliance assistant",
	Long: `compliance serves the three-step compliance wizard API: select the
applicable 49 CFR parts (191, 192, 195), describe the pipeline segment, and get
the regulation sections that apply. Part summaries are scraped from eCFR.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		loaded, err := config.Load(envFile)
		if err != nil {
			return err
		}
		cfg = loaded
		logger = cfg.Logger(os.Stderr)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
