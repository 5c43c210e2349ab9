package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"compliance/rules"
	"compliance/types"
	"compliance/wizard"

	"github.com/spf13/cobra"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Walk through the compliance wizard in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard(cmd.InOrStdin(), cmd.OutOrStdout(), rules.Default())
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(in io.Reader, out io.Writer, applicator wizard.Applicator) error {
	scanner := bufio.NewScanner(in)
	session := wizard.NewSession()

	for session.Step() == wizard.StepSelect {
		fmt.Fprintln(out, "Step 1: choose your regulation part(s) by number, e.g. \"2\" or \"1 3\"")
		for _, o := range wizard.Options() {
			fmt.Fprintf(out, "  %d. %s - %s\n", o.ID, o.Title, o.Description)
		}
		line, ok := readLine(scanner, out, "> ")
		if !ok {
			return io.ErrUnexpectedEOF
		}
		if err := session.Select(parseOptions(line)); err != nil {
			fmt.Fprintln(out, err)
		}
	}

	for session.Step() == wizard.StepProfile {
		fmt.Fprintln(out, "Step 2: operator profile")
		profile := types.OperatorProfile{}
		for _, q := range session.Questions() {
			prompt := q.Label
			if len(q.Options) > 0 {
				prompt += " [" + strings.Join(q.Options, ", ") + "]"
			}
			answer, ok := readLine(scanner, out, prompt+": ")
			if !ok {
				return io.ErrUnexpectedEOF
			}
			if answer == "" {
				continue
			}
			if q.Type == wizard.QuestionNumber {
				if n, err := strconv.ParseFloat(answer, 64); err == nil {
					profile[q.Key] = n
					continue
				}
			}
			profile[q.Key] = answer
		}
		if err := session.SubmitProfile(profile, applicator); err != nil {
			fmt.Fprintln(out, err)
		}
	}

	fmt.Fprintln(out, "Step 3: applicable sections")
	result, err := json.MarshalIndent(session.Result(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(result))
	return err
}

func readLine(scanner *bufio.Scanner, out io.Writer, prompt string) (string, bool) {
	fmt.Fprint(out, prompt)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// parseOptions reads "1 and 3", "1,3" or "2"; anything that is not a number
// is ignored, an unknown number is kept so validation can reject it.
func parseOptions(line string) []int {
	var ids []int
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for _, f := range fields {
		if n, err := strconv.Atoi(f); err == nil {
			ids = append(ids, n)
		}
	}
	return ids
}
