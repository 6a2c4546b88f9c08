package score

import (
	"math"

	"github.com/roadwatch/triage/internal/model"
)

const qualityBase = 55.0

// qualityRule is one completeness adjustment. Paired rules (the two word
// count branches, the two recency branches) have mutually exclusive
// conditions, so the flat ordered list stays additive.
type qualityRule struct {
	applies func(f model.Features) bool
	delta   func(f model.Features) float64
	signal  string
}

var qualityRules = []qualityRule{
	{
		applies: func(f model.Features) bool { return f.WordCount >= 20 },
		delta:   func(model.Features) float64 { return 8 },
		signal:  "Detailed description (>20 words)",
	},
	{
		applies: func(f model.Features) bool { return f.WordCount < 8 },
		delta:   func(model.Features) float64 { return -8 },
		signal:  "Very short description (<8 words)",
	},
	{
		applies: func(f model.Features) bool { return f.ConcreteTerms >= 2 },
		delta:   func(model.Features) float64 { return 6 },
		signal:  "Contains concrete location cues",
	},
	{
		applies: func(f model.Features) bool { return f.HasPhoto },
		delta:   func(model.Features) float64 { return 10 },
		signal:  "Includes supporting photo evidence",
	},
	{
		applies: func(f model.Features) bool { return f.EvidenceTerms > 0 },
		delta:   func(model.Features) float64 { return 4 },
		signal:  "Mentions attached media",
	},
	{
		applies: func(f model.Features) bool { return f.UncertaintyTerms > 0 },
		delta: func(f model.Features) float64 {
			return -math.Min(12, float64(f.UncertaintyTerms)*4)
		},
		signal: "Uses uncertainty language",
	},
	{
		applies: func(f model.Features) bool { return f.RecencyHours != nil && *f.RecencyHours <= 3 },
		delta:   func(model.Features) float64 { return 5 },
		signal:  "Reported within the last 3 hours",
	},
	{
		applies: func(f model.Features) bool { return f.RecencyHours != nil && *f.RecencyHours > 24 },
		delta:   func(model.Features) float64 { return -4 },
		signal:  "Report is older than 24 hours",
	},
}

// QualityScorer estimates how complete and useful a report is,
// independently of its authenticity.
type QualityScorer struct{}

// NewQualityScorer creates a new quality scorer.
func NewQualityScorer() *QualityScorer {
	return &QualityScorer{}
}

// Score folds the rule table into the base score and clamps the result.
func (s *QualityScorer) Score(f model.Features) model.Quality {
	score := qualityBase
	signals := []string{}

	for _, rule := range qualityRules {
		if !rule.applies(f) {
			continue
		}
		score += rule.delta(f)
		signals = append(signals, rule.signal)
	}

	return model.Quality{
		Score:   clampScore(score),
		Signals: signals,
	}
}
