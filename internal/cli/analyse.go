package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/roadwatch/triage/internal/engine"
	"github.com/spf13/cobra"
)

var (
	analyseOut    string
	analysePretty bool
)

// analyseCmd represents the analyse command
var analyseCmd = &cobra.Command{
	Use:   "analyse [file]",
	Short: "Analyse a single incident report",
	Long: `Analyse reads one incident payload as JSON and prints the full
assessment:
- Authenticity score, label, signals, and per-label confidence
- Quality score and signals
- Red flags
- Moderator recommendation and reasoning

The payload is read from the given file, or from stdin when no file is
supplied.

Example:
  triage analyse incident.json
  echo '{"description": "Accident near exit 3", "severity": "high"}' | triage analyse
  triage analyse incident.json --out analysis.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyse,
}

func init() {
	rootCmd.AddCommand(analyseCmd)

	analyseCmd.Flags().StringVar(&analyseOut, "out", "", "write the analysis to this path instead of stdout")
	analyseCmd.Flags().BoolVar(&analysePretty, "pretty", true, "indent the JSON output")
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error

	if len(args) == 1 {
		raw, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read incident: %w", err)
		}
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("parse incident: %w", err)
	}

	eng := engine.New()
	if verbose {
		fmt.Fprintf(os.Stderr, "Engine: %s\n", eng.Status().Message)
	}

	analysis, err := eng.Analyse(payload)
	if err != nil {
		return fmt.Errorf("analyse incident: %w", err)
	}

	var body []byte
	if analysePretty {
		body, err = json.MarshalIndent(analysis, "", "  ")
	} else {
		body, err = json.Marshal(analysis)
	}
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	body = append(body, '\n')

	if analyseOut != "" {
		if err := os.WriteFile(analyseOut, body, 0644); err != nil {
			return fmt.Errorf("write analysis: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote analysis to %s\n", analyseOut)
		}
		return nil
	}

	_, err = os.Stdout.Write(body)
	return err
}
