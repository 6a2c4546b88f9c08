package advise

import (
	"fmt"
	"strings"

	"github.com/roadwatch/triage/internal/model"
)

// Advisor turns scoring output into an actionable moderation
// recommendation and a human-readable reasoning narrative.
type Advisor struct{}

// NewAdvisor creates a new advisor.
func NewAdvisor() *Advisor {
	return &Advisor{}
}

// Recommend walks the decision table top to bottom; the first matching row
// wins.
func (a *Advisor) Recommend(authenticity model.Authenticity, redFlags []string) string {
	switch {
	case authenticity.Score >= 80 && len(redFlags) == 0:
		return "Approve and publish the incident to drivers."
	case authenticity.Score <= 40:
		return "Escalate for manual verification before any action."
	case authenticity.Label == model.LabelNeedsReview || len(redFlags) > 0:
		return "Hold for moderator review and request additional evidence if possible."
	default:
		return "Proceed with caution and monitor for corroborating reports."
	}
}

// Reasoning assembles the narrative from its fragments in fixed order:
// photo evidence, description length (only when there are words), then the
// three signal lists (only when non-empty).
func (a *Advisor) Reasoning(features model.Features, authenticity model.Authenticity, quality model.Quality, redFlags []string) string {
	var fragments []string

	if features.HasPhoto {
		fragments = append(fragments, "Photo evidence increases confidence.")
	} else {
		fragments = append(fragments, "No media was attached.")
	}

	if features.WordCount > 0 {
		fragments = append(fragments, fmt.Sprintf(
			"Description length: %d words with %d location cues.",
			features.WordCount, features.ConcreteTerms))
	}

	if len(authenticity.Signals) > 0 {
		fragments = append(fragments, "Authenticity signals: "+strings.Join(authenticity.Signals, ", "))
	}

	if len(quality.Signals) > 0 {
		fragments = append(fragments, "Quality observations: "+strings.Join(quality.Signals, ", "))
	}

	if len(redFlags) > 0 {
		fragments = append(fragments, "Red flags: "+strings.Join(redFlags, "; "))
	}

	return strings.Join(fragments, " ")
}
