package extract

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/roadwatch/triage/internal/model"
)

// nowFunc is the clock used for recency calculation (injectable for tests).
var nowFunc = func() time.Time { return time.Now().UTC() }

// Extractor derives the flat feature mapping shared by all scorers.
type Extractor struct{}

// NewExtractor creates a new feature extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract is a pure, total function of the canonical record; it has no
// failure modes.
func (e *Extractor) Extract(incident *model.Incident) model.Features {
	description := incident.Description
	lowered := strings.ToLower(description)

	severityRank, known := severityOrder[incident.Severity]
	if !known {
		severityRank = 1
	}

	hasVerified := false
	for _, tag := range incident.Tags {
		if strings.EqualFold(tag, "verified") {
			hasVerified = true
			break
		}
	}

	location := incident.Location
	if location == "" {
		location = incident.FullAddress
	}

	var recency *float64
	if incident.CreatedAt != nil {
		hours := nowFunc().Sub(*incident.CreatedAt).Hours()
		if hours < 0 {
			hours = 0
		}
		recency = &hours
	}

	return model.Features{
		Description:        description,
		WordCount:          len(strings.Fields(description)),
		CharCount:          utf8.RuneCountInString(description),
		UncertaintyTerms:   countTerms(lowered, uncertaintyTerms),
		EvidenceTerms:      countTerms(lowered, mediaHintTerms),
		ConcreteTerms:      countTerms(lowered, concreteDetailTerms),
		HasDigits:          containsDigit(description),
		HasPhoto:           incident.HasPhoto(),
		Severity:           incident.Severity,
		SeverityRank:       severityRank,
		Type:               incident.Type,
		Location:           location,
		HasTags:            len(incident.Tags) > 0,
		HasVerifiedTag:     hasVerified,
		ReporterReputation: incident.ReporterReputation,
		RecencyHours:       recency,
	}
}

// countTerms sums substring occurrences of every vocabulary term over the
// already-lowered text.
func countTerms(lowered string, terms []string) int {
	total := 0
	for _, term := range terms {
		total += strings.Count(lowered, term)
	}
	return total
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
