package score

import (
	"math"

	"github.com/roadwatch/triage/internal/model"
)

const authenticityBase = 58.0

// baseWeighting is the starting confidence distribution before any rule
// fires.
func baseWeighting() map[string]float64 {
	return map[string]float64{
		model.LabelLikelyAuthentic: 0.33,
		model.LabelNeedsReview:     0.34,
		model.LabelSuspicious:      0.33,
	}
}

// confidenceShift is one label adjustment contributed by a triggered rule.
type confidenceShift struct {
	label string
	delta float64
}

// authenticityRule is a single independent adjustment. When it triggers it
// contributes a score delta, a signal string, and optional confidence
// shifts. Rules are purely additive, so the fixed order only determines
// how the signal list reads, never the arithmetic.
type authenticityRule struct {
	applies func(f model.Features) bool
	delta   func(f model.Features) float64
	signal  string
	shifts  []confidenceShift
}

var authenticityRules = []authenticityRule{
	{
		applies: func(f model.Features) bool { return f.HasPhoto },
		delta:   func(model.Features) float64 { return 12 },
		signal:  "Photo evidence provided",
		shifts: []confidenceShift{
			{model.LabelLikelyAuthentic, 0.10},
			{model.LabelSuspicious, -0.05},
		},
	},
	{
		applies: func(f model.Features) bool { return f.HasDigits || f.ConcreteTerms >= 2 },
		delta:   func(model.Features) float64 { return 10 },
		signal:  "Specific details detected in description",
		shifts: []confidenceShift{
			{model.LabelLikelyAuthentic, 0.06},
			{model.LabelNeedsReview, -0.03},
		},
	},
	{
		applies: func(f model.Features) bool { return f.UncertaintyTerms > 0 },
		delta: func(f model.Features) float64 {
			return -math.Min(18, float64(f.UncertaintyTerms)*6)
		},
		signal: "Uncertainty language used",
		shifts: []confidenceShift{
			{model.LabelSuspicious, 0.08},
			{model.LabelLikelyAuthentic, -0.04},
		},
	},
	{
		applies: func(f model.Features) bool { return f.SeverityRank >= 2 && f.WordCount < 12 },
		delta:   func(model.Features) float64 { return -10 },
		signal:  "Severe incident reported with little context",
		shifts: []confidenceShift{
			{model.LabelSuspicious, 0.05},
		},
	},
	{
		applies: func(f model.Features) bool { return f.HasVerifiedTag },
		delta:   func(model.Features) float64 { return 6 },
		signal:  "Previously verified by moderators",
		shifts: []confidenceShift{
			{model.LabelLikelyAuthentic, 0.05},
		},
	},
	// The two reputation rules cannot both fire; reputations between 0.3
	// and 0.7 trigger neither.
	{
		applies: func(f model.Features) bool {
			return f.ReporterReputation != nil && *f.ReporterReputation >= 0.7
		},
		delta:  func(model.Features) float64 { return 5 },
		signal: "Reporter has strong reputation",
	},
	{
		applies: func(f model.Features) bool {
			return f.ReporterReputation != nil && *f.ReporterReputation <= 0.3
		},
		delta:  func(model.Features) float64 { return -7 },
		signal: "Reporter flagged with low reputation",
	},
}

// AuthenticityScorer estimates how likely a report is genuine.
type AuthenticityScorer struct{}

// NewAuthenticityScorer creates a new authenticity scorer.
func NewAuthenticityScorer() *AuthenticityScorer {
	return &AuthenticityScorer{}
}

// Score folds the rule table into the base score and confidence weighting,
// then clamps, labels, and renormalises the weights.
func (s *AuthenticityScorer) Score(f model.Features) model.Authenticity {
	score := authenticityBase
	weighting := baseWeighting()
	signals := []string{}

	for _, rule := range authenticityRules {
		if !rule.applies(f) {
			continue
		}
		score += rule.delta(f)
		signals = append(signals, rule.signal)
		for _, shift := range rule.shifts {
			weighting[shift.label] += shift.delta
		}
	}

	final := clampScore(score)

	label := model.LabelNeedsReview
	switch {
	case final >= 75:
		label = model.LabelLikelyAuthentic
	case final <= 45:
		label = model.LabelSuspicious
	}

	var normaliser float64
	for _, value := range weighting {
		normaliser += value
	}
	if normaliser == 0 {
		normaliser = 1.0
	}

	confidence := make(map[string]float64, len(weighting))
	for key, value := range weighting {
		confidence[key] = math.Max(0, round3(value/normaliser))
	}

	return model.Authenticity{
		Score:      final,
		Label:      label,
		Signals:    signals,
		Confidence: confidence,
	}
}

// clampScore rounds to the nearest integer and clamps to [0, 100].
func clampScore(score float64) int {
	rounded := math.Round(score)
	if rounded < 0 {
		rounded = 0
	}
	if rounded > 100 {
		rounded = 100
	}
	return int(rounded)
}

// round3 rounds to three decimal places. The renormalised weights need not
// sum to exactly 1.0 afterwards; callers tolerate the rounding drift.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
