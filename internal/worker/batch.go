package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/roadwatch/triage/internal/model"
)

// Analyser runs a single incident analysis.
type Analyser interface {
	Analyse(payload any) (*model.Analysis, error)
}

// AnalyseJob is one incident from a batch input.
type AnalyseJob struct {
	Index    int
	Payload  any
	Analyser Analyser
}

// Execute runs the analysis for this job.
func (j *AnalyseJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &AnalyseResult{Index: j.Index, Error: err}
	}

	analysis, err := j.Analyser.Analyse(j.Payload)
	return &AnalyseResult{
		Index:    j.Index,
		Analysis: analysis,
		Error:    err,
	}
}

// AnalyseResult pairs an analysis (or its error) with the input line it
// came from.
type AnalyseResult struct {
	Index    int             `json:"index"`
	Analysis *model.Analysis `json:"analysis,omitempty"`
	Error    error           `json:"-"`
}

// GetError returns the error from the analysis, if any.
func (r *AnalyseResult) GetError() error {
	return r.Error
}

// BatchProcessor fans incident payloads out over a worker pool.
type BatchProcessor struct {
	analyser    Analyser
	concurrency int
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(analyser Analyser, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyser:    analyser,
		concurrency: concurrency,
	}
}

// ProcessPayloads analyses payloads concurrently. Results come back sorted
// by input index regardless of completion order.
func (b *BatchProcessor) ProcessPayloads(ctx context.Context, payloads []any) []*AnalyseResult {
	if len(payloads) == 0 {
		return []*AnalyseResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for i, payload := range payloads {
		pool.Submit(&AnalyseJob{
			Index:    i,
			Payload:  payload,
			Analyser: b.analyser,
		})
	}

	results := pool.Wait()

	analyseResults := make([]*AnalyseResult, 0, len(results))
	for _, result := range results {
		analyseResults = append(analyseResults, result.(*AnalyseResult))
	}
	sort.Slice(analyseResults, func(i, j int) bool {
		return analyseResults[i].Index < analyseResults[j].Index
	})

	return analyseResults
}

// ProcessFile reads incident payloads from a JSONL file and analyses them
// concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyseResult, error) {
	payloads, err := ReadPayloadsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read payloads: %w", err)
	}

	return b.ProcessPayloads(ctx, payloads), nil
}

// ReadPayloadsFromFile reads one JSON incident payload per line, skipping
// blank lines. Lines that are not valid JSON fail the whole read; lines
// that decode to a non-object are kept so the analyser can report the
// validation error for that entry.
func ReadPayloadsFromFile(filePath string) ([]any, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var payloads []any
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var payload any
		if err := json.Unmarshal([]byte(line), &payload); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		payloads = append(payloads, payload)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return payloads, nil
}
