package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"compliance/rules"
	"compliance/types"

	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Show which sections apply to an operator profile",
	Example: `  compliance filter --parts 191,192 --profile '{"pipelineType":"Transmission","locationClass":"2"}'
  compliance filter --parts 195 --profile-file profile.json --rules custom.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		partsFlag, _ := cmd.Flags().GetString("parts")
		profileFlag, _ := cmd.Flags().GetString("profile")
		profileFile, _ := cmd.Flags().GetString("profile-file")
		rulesFile, _ := cmd.Flags().GetString("rules")

		var parts []types.Part
		for _, p := range strings.Split(partsFlag, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, types.Part(p))
			}
		}
		if len(parts) == 0 {
			return fmt.Errorf("--parts is required")
		}

		raw := []byte(profileFlag)
		if profileFile != "" {
			b, err := os.ReadFile(profileFile)
			if err != nil {
				return fmt.Errorf("read profile: %w", err)
			}
			raw = b
		}
		profile := types.OperatorProfile{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &profile); err != nil {
				return fmt.Errorf("decode profile: %w", err)
			}
		}

		filter := rules.Default()
		if rulesFile != "" {
			b, err := os.ReadFile(rulesFile)
			if err != nil {
				return fmt.Errorf("read rules: %w", err)
			}
			if filter, err = rules.Load(b); err != nil {
				return err
			}
		}

		out, err := json.MarshalIndent(filter.GetApplicableSections(parts, profile), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	filterCmd.Flags().String("parts", "", "comma-separated regulation parts (191,192,195)")
	filterCmd.Flags().String("profile", "", "operator profile as a JSON object")
	filterCmd.Flags().String("profile-file", "", "read the operator profile from a JSON file")
	filterCmd.Flags().String("rules", "", "YAML rule catalog replacing the built-in one")
	rootCmd.AddCommand(filterCmd)
}
