package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/roadwatch/triage/internal/engine"
	"github.com/roadwatch/triage/internal/model"
	"github.com/roadwatch/triage/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchConcurrency int
	batchOut         string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyse many incidents from a JSONL file in parallel",
	Long: `Batch analyses a file of incident payloads, one JSON object per
line, fanning the work out over a pool of workers. Results come back in
input order, one analysis per line, paired with the line index so failed
entries can be traced back to their input.

Example:
  triage batch incidents.jsonl
  triage batch incidents.jsonl --concurrency 16 --out analyses.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	defaults := model.DefaultConfig()
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", defaults.Batch.Workers, "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write results to this path instead of stdout")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", batchConcurrency)
	}

	processor := worker.NewBatchProcessor(engine.New(), batchConcurrency)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	out := os.Stdout
	if batchOut != "" {
		f, err := os.Create(batchOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	successCount := 0
	failureCount := 0

	enc := json.NewEncoder(out)
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			line := map[string]any{
				"index": result.Index,
				"error": result.Error.Error(),
			}
			if err := enc.Encode(line); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
			continue
		}

		successCount++
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}

	if verbose || failureCount > 0 {
		fmt.Fprintf(os.Stderr, "Analysed %d incidents: %d ok, %d failed\n", len(results), successCount, failureCount)
	}

	return nil
}
