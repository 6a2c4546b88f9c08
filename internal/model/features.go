package model

// Features is the flat signal mapping derived once per incident and shared
// by all scorers. It is a pure function of the canonical record, so two
// identical reports always produce identical features (modulo recency,
// which depends on the clock).
type Features struct {
	Description        string   `json:"description"`
	WordCount          int      `json:"word_count"`
	CharCount          int      `json:"char_count"`
	UncertaintyTerms   int      `json:"uncertainty_terms"`
	EvidenceTerms      int      `json:"evidence_terms"`
	ConcreteTerms      int      `json:"concrete_terms"`
	HasDigits          bool     `json:"has_digits"`
	HasPhoto           bool     `json:"has_photo"`
	Severity           string   `json:"severity"`
	SeverityRank       int      `json:"severity_rank"`
	Type               string   `json:"type"`
	Location           string   `json:"location"`
	HasTags            bool     `json:"has_tags"`
	HasVerifiedTag     bool     `json:"has_verified_tag"`
	ReporterReputation *float64 `json:"reporter_reputation"`
	RecencyHours       *float64 `json:"recency_hours"`
}
