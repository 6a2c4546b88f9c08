package score

import "github.com/roadwatch/triage/internal/model"

// redFlag pairs an independent predicate with its warning text. Several
// flags can fire for the same report; the list order is fixed.
type redFlag struct {
	applies func(f model.Features) bool
	message string
}

var redFlagRules = []redFlag{
	{
		applies: func(f model.Features) bool { return f.UncertaintyTerms >= 2 },
		message: "Multiple uncertainty phrases detected in the report",
	},
	{
		// The message says five words, the threshold is six. Inherited
		// from the upstream rule set; keep the threshold, not the prose.
		applies: func(f model.Features) bool { return f.SeverityRank >= 2 && f.WordCount <= 6 },
		message: "High severity incident described with five words or fewer",
	},
	{
		applies: func(f model.Features) bool { return !f.HasPhoto && f.SeverityRank >= 2 },
		message: "Severe incident reported without supporting media",
	},
	{
		applies: func(f model.Features) bool {
			return f.ReporterReputation != nil && *f.ReporterReputation <= 0.2
		},
		message: "Reporter reputation is flagged as very low",
	},
}

// RedFlagDetector emits discrete warnings for suspicious patterns.
type RedFlagDetector struct{}

// NewRedFlagDetector creates a new red-flag detector.
func NewRedFlagDetector() *RedFlagDetector {
	return &RedFlagDetector{}
}

// Detect evaluates every flag predicate independently.
func (d *RedFlagDetector) Detect(f model.Features) []string {
	flags := []string{}
	for _, rule := range redFlagRules {
		if rule.applies(f) {
			flags = append(flags, rule.message)
		}
	}
	return flags
}
