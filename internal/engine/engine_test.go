package engine

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/roadwatch/triage/internal/model"
	"github.com/roadwatch/triage/internal/normalize"
)

func TestAnalyse_RejectsNonObjectPayload(t *testing.T) {
	eng := New()

	for _, payload := range []any{"a string", []any{1.0, 2.0}, 5.0, nil} {
		_, err := eng.Analyse(payload)
		if !errors.Is(err, normalize.ErrInvalidPayload) {
			t.Errorf("Expected ErrInvalidPayload for %T, got %v", payload, err)
		}
	}
}

func TestAnalyse_UncertainSevereReport(t *testing.T) {
	eng := New()

	analysis, err := eng.Analyse(map[string]any{
		"description": "maybe an accident idk",
		"severity":    "high",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if analysis.Authenticity.Score != 36 {
		t.Errorf("Expected authenticity score 36, got %d", analysis.Authenticity.Score)
	}
	if analysis.Authenticity.Label != model.LabelSuspicious {
		t.Errorf("Expected label %q, got %q", model.LabelSuspicious, analysis.Authenticity.Label)
	}

	wantFlags := []string{
		"Multiple uncertainty phrases detected in the report",
		"High severity incident described with five words or fewer",
		"Severe incident reported without supporting media",
	}
	if !reflect.DeepEqual(analysis.RedFlags, wantFlags) {
		t.Errorf("Expected red flags %v, got %v", wantFlags, analysis.RedFlags)
	}

	if analysis.Recommendation != "Escalate for manual verification before any action." {
		t.Errorf("Unexpected recommendation: %q", analysis.Recommendation)
	}
}

func TestAnalyse_StrongReport(t *testing.T) {
	eng := New()

	analysis, err := eng.Analyse(map[string]any{
		"description": "Accident near Orchard Road exit 3, two cars involved",
		"photo_url":   "http://x/img.jpg",
		"severity":    "medium",
		"tags":        "verified",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if analysis.Authenticity.Score != 86 {
		t.Errorf("Expected authenticity score 86, got %d", analysis.Authenticity.Score)
	}
	if analysis.Authenticity.Label != model.LabelLikelyAuthentic {
		t.Errorf("Expected label %q, got %q", model.LabelLikelyAuthentic, analysis.Authenticity.Label)
	}
	if len(analysis.RedFlags) != 0 {
		t.Errorf("Expected no red flags, got %v", analysis.RedFlags)
	}
	if analysis.Recommendation != "Approve and publish the incident to drivers." {
		t.Errorf("Unexpected recommendation: %q", analysis.Recommendation)
	}
	if !strings.HasPrefix(analysis.Reasoning, "Photo evidence increases confidence.") {
		t.Errorf("Expected photo sentence first, got %q", analysis.Reasoning)
	}
}

func TestAnalyse_EmptyDescription(t *testing.T) {
	eng := New()

	analysis, err := eng.Analyse(map[string]any{"description": ""})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if analysis.FeatureSummary.WordCount != 0 {
		t.Errorf("Expected word count 0, got %d", analysis.FeatureSummary.WordCount)
	}
	if analysis.FeatureSummary.Severity != "medium" {
		t.Errorf("Expected default severity, got %q", analysis.FeatureSummary.Severity)
	}
	if analysis.Authenticity.Score != 58 {
		t.Errorf("Expected base authenticity score, got %d", analysis.Authenticity.Score)
	}
	if len(analysis.Authenticity.Signals) != 0 {
		t.Errorf("Expected no authenticity signals, got %v", analysis.Authenticity.Signals)
	}
	// Quality takes only the short-description penalty.
	if analysis.Quality.Score != 47 {
		t.Errorf("Expected quality score 47, got %d", analysis.Quality.Score)
	}
	if !strings.HasPrefix(analysis.Reasoning, "No media was attached.") {
		t.Errorf("Expected no-media sentence, got %q", analysis.Reasoning)
	}
	if strings.Contains(analysis.Reasoning, "Description length") {
		t.Errorf("Expected length sentence omitted, got %q", analysis.Reasoning)
	}
}

func TestAnalyse_Idempotent(t *testing.T) {
	eng := New()

	payload := map[string]any{
		"description": "Flooded lane towards the bridge, maybe blocked",
		"severity":    "high",
		"tags":        []any{"Verified", " urgent "},
	}

	first, err := eng.Analyse(payload)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := eng.Analyse(payload)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical results for identical payloads")
	}
}

func TestAnalyse_PhotoNeverLowersScores(t *testing.T) {
	eng := New()

	payloads := []map[string]any{
		{"description": "maybe an accident idk", "severity": "high"},
		{"description": ""},
		{"description": "Accident near Orchard Road exit 3", "severity": "critical"},
		{"description": "heavy traffic on the expressway towards the junction", "severity": "low"},
	}

	for i, payload := range payloads {
		without, err := eng.Analyse(payload)
		if err != nil {
			t.Fatalf("case %d: expected no error, got %v", i, err)
		}

		withPhoto := make(map[string]any, len(payload)+1)
		for k, v := range payload {
			withPhoto[k] = v
		}
		withPhoto["photo_url"] = "http://x/img.jpg"

		with, err := eng.Analyse(withPhoto)
		if err != nil {
			t.Fatalf("case %d: expected no error, got %v", i, err)
		}

		if with.Authenticity.Score < without.Authenticity.Score {
			t.Errorf("case %d: photo lowered authenticity %d -> %d", i, without.Authenticity.Score, with.Authenticity.Score)
		}
		if with.Quality.Score < without.Quality.Score {
			t.Errorf("case %d: photo lowered quality %d -> %d", i, without.Quality.Score, with.Quality.Score)
		}
	}
}

func TestAnalyse_ScoresStayInRange(t *testing.T) {
	eng := New()

	payloads := []map[string]any{
		{},
		{"description": strings.Repeat("maybe idk unsure rumour ", 10), "severity": "critical"},
		{
			"description":         "Verified photo attached of accident on lane 2 of the expressway towards exit 14 near the bridge junction with video evidence",
			"photo_url":           "http://x/a.jpg",
			"severity":            "low",
			"tags":                "verified",
			"reporter_reputation": 0.95,
			"created_at":          "2024-03-01T08:00:00Z",
		},
		{"description": "crash", "severity": "critical", "reporter_reputation": 0.05},
	}

	for i, payload := range payloads {
		analysis, err := eng.Analyse(payload)
		if err != nil {
			t.Fatalf("case %d: expected no error, got %v", i, err)
		}

		if analysis.Authenticity.Score < 0 || analysis.Authenticity.Score > 100 {
			t.Errorf("case %d: authenticity score out of range: %d", i, analysis.Authenticity.Score)
		}
		if analysis.Quality.Score < 0 || analysis.Quality.Score > 100 {
			t.Errorf("case %d: quality score out of range: %d", i, analysis.Quality.Score)
		}

		sum := 0.0
		for _, label := range model.ResponseLabels {
			value := analysis.Authenticity.Confidence[label]
			if value < 0 {
				t.Errorf("case %d: negative confidence for %q", i, label)
			}
			sum += value
		}
		if math.Abs(sum-1.0) > 0.01 {
			t.Errorf("case %d: confidence sum %v not within 0.01 of 1.0", i, sum)
		}
	}
}

func TestAnalyse_UnparseableTimestampIsAbsorbed(t *testing.T) {
	eng := New()

	analysis, err := eng.Analyse(map[string]any{
		"description": "queue building up on the avenue",
		"created_at":  "yesterday",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if analysis.FeatureSummary.RecencyHours != nil {
		t.Errorf("Expected nil recency, got %v", *analysis.FeatureSummary.RecencyHours)
	}
	for _, signal := range analysis.Quality.Signals {
		if strings.Contains(signal, "hours") {
			t.Errorf("Expected no recency signal, got %q", signal)
		}
	}
}

func TestEngine_Status(t *testing.T) {
	eng := New()

	status := eng.Status()
	if !status.Ready {
		t.Error("Expected engine to report ready")
	}
	if status.Message == "" {
		t.Error("Expected a status message")
	}
}
