package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/roadwatch/triage/internal/model"
)

// countingAnalyser records how many analyses ran and fails on demand.
type countingAnalyser struct {
	calls int32
}

func (a *countingAnalyser) Analyse(payload any) (*model.Analysis, error) {
	atomic.AddInt32(&a.calls, 1)
	if _, ok := payload.(map[string]any); !ok {
		return nil, errors.New("incident payload must be an object")
	}
	return &model.Analysis{Recommendation: "ok"}, nil
}

func TestBatchProcessor_ResultsKeepInputOrder(t *testing.T) {
	analyser := &countingAnalyser{}
	processor := NewBatchProcessor(analyser, 4)

	payloads := make([]any, 9)
	for i := range payloads {
		payloads[i] = map[string]any{"description": "incident"}
	}
	// Line 5 is malformed.
	payloads[4] = "not an object"

	results := processor.ProcessPayloads(context.Background(), payloads)

	if len(results) != len(payloads) {
		t.Fatalf("expected %d results, got %d", len(payloads), len(results))
	}
	for i, result := range results {
		if result.Index != i {
			t.Errorf("expected result %d to carry index %d, got %d", i, i, result.Index)
		}
	}
	if results[4].GetError() == nil {
		t.Error("expected the malformed payload to carry an error")
	}
	if results[3].GetError() != nil {
		t.Errorf("expected no error for valid payload, got %v", results[3].GetError())
	}
	if atomic.LoadInt32(&analyser.calls) != int32(len(payloads)) {
		t.Errorf("expected %d analyses, got %d", len(payloads), analyser.calls)
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	processor := NewBatchProcessor(&countingAnalyser{}, 2)

	results := processor.ProcessPayloads(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results for empty input, got %d", len(results))
	}
}

func TestReadPayloadsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incidents.jsonl")
	content := `{"description":"crash on lane 2","severity":"high"}

"just a string"
{"description":"flooding"}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	payloads, err := ReadPayloadsFromFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(payloads) != 3 {
		t.Fatalf("expected 3 payloads (blank line skipped), got %d", len(payloads))
	}
	if _, ok := payloads[0].(map[string]any); !ok {
		t.Errorf("expected first payload to decode as object, got %T", payloads[0])
	}
	// Non-object lines are kept; the analyser reports them.
	if _, ok := payloads[1].(string); !ok {
		t.Errorf("expected second payload to stay a string, got %T", payloads[1])
	}
}

func TestReadPayloadsFromFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := ReadPayloadsFromFile(path); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}
