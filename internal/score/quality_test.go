package score

import (
	"reflect"
	"testing"

	"github.com/roadwatch/triage/internal/model"
)

func TestQuality_Baseline(t *testing.T) {
	scorer := NewQualityScorer()

	// Word count in the neutral 8-19 band, nothing else triggers.
	result := scorer.Score(model.Features{
		WordCount:    10,
		Severity:     "medium",
		SeverityRank: 1,
	})

	if result.Score != 55 {
		t.Errorf("Expected base score 55, got %d", result.Score)
	}
	if len(result.Signals) != 0 {
		t.Errorf("Expected no signals, got %v", result.Signals)
	}
}

func TestQuality_DetailedReport(t *testing.T) {
	scorer := NewQualityScorer()

	recency := 1.0
	result := scorer.Score(model.Features{
		WordCount:     25,
		ConcreteTerms: 3,
		HasPhoto:      true,
		EvidenceTerms: 1,
		SeverityRank:  1,
		RecencyHours:  &recency,
	})

	// 55 + 8 + 6 + 10 + 4 + 5 = 88.
	if result.Score != 88 {
		t.Errorf("Expected score 88, got %d", result.Score)
	}

	wantSignals := []string{
		"Detailed description (>20 words)",
		"Contains concrete location cues",
		"Includes supporting photo evidence",
		"Mentions attached media",
		"Reported within the last 3 hours",
	}
	if !reflect.DeepEqual(result.Signals, wantSignals) {
		t.Errorf("Expected signals %v, got %v", wantSignals, result.Signals)
	}
}

func TestQuality_ShortUncertainReport(t *testing.T) {
	scorer := NewQualityScorer()

	result := scorer.Score(model.Features{
		WordCount:        4,
		UncertaintyTerms: 2,
		SeverityRank:     2,
	})

	// 55 - 8 - 8 = 39.
	if result.Score != 39 {
		t.Errorf("Expected score 39, got %d", result.Score)
	}
}

func TestQuality_UncertaintyPenaltyCapped(t *testing.T) {
	scorer := NewQualityScorer()

	result := scorer.Score(model.Features{
		WordCount:        10,
		UncertaintyTerms: 5,
		SeverityRank:     1,
	})

	// Penalty caps at 12 even though 5*4 would be 20.
	if result.Score != 43 {
		t.Errorf("Expected score 43, got %d", result.Score)
	}
}

func TestQuality_RecencyBands(t *testing.T) {
	scorer := NewQualityScorer()

	cases := []struct {
		name      string
		recency   *float64
		wantScore int
	}{
		{"fresh", ptr(2), 60},
		{"neutral window", ptr(12), 55},
		{"stale", ptr(30), 51},
		{"no timestamp", nil, 55},
	}

	for _, tc := range cases {
		result := scorer.Score(model.Features{
			WordCount:    10,
			SeverityRank: 1,
			RecencyHours: tc.recency,
		})
		if result.Score != tc.wantScore {
			t.Errorf("%s: expected score %d, got %d", tc.name, tc.wantScore, result.Score)
		}
	}
}

func TestQuality_WordCountBandsAreExclusive(t *testing.T) {
	scorer := NewQualityScorer()

	cases := map[int]int{
		0:  47, // short penalty
		7:  47,
		8:  55, // neutral band
		19: 55,
		20: 63, // detailed bonus
	}

	for wordCount, want := range cases {
		result := scorer.Score(model.Features{WordCount: wordCount, SeverityRank: 1})
		if result.Score != want {
			t.Errorf("word count %d: expected score %d, got %d", wordCount, want, result.Score)
		}
	}
}
