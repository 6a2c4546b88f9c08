package model

// Labels assigned by the authenticity scorer.
const (
	LabelSuspicious      = "Suspicious"
	LabelNeedsReview     = "Needs Review"
	LabelLikelyAuthentic = "Likely Authentic"
)

// ResponseLabels lists every label the scorer can assign, in ascending
// order of trust.
var ResponseLabels = []string{LabelSuspicious, LabelNeedsReview, LabelLikelyAuthentic}

// Authenticity is the result of the authenticity scorer: a 0-100 score,
// the selected label, the triggered rule signals in evaluation order, and
// a normalised confidence weighting over all three labels.
type Authenticity struct {
	Score      int                `json:"score"`
	Label      string             `json:"label"`
	Signals    []string           `json:"signals"`
	Confidence map[string]float64 `json:"confidence"`
}

// Quality is the result of the completeness scorer.
type Quality struct {
	Score   int      `json:"score"`
	Signals []string `json:"signals"`
}

// ModelStatus is the static readiness marker exposed by the engine and the
// health endpoint.
type ModelStatus struct {
	Ready   bool   `json:"ready"`
	Message string `json:"message"`
}

// Analysis is the assembled result returned for one incident.
type Analysis struct {
	ModelStatus    ModelStatus  `json:"model_status"`
	Authenticity   Authenticity `json:"authenticity"`
	Quality        Quality      `json:"quality"`
	RedFlags       []string     `json:"red_flags"`
	Recommendation string       `json:"recommendation"`
	Reasoning      string       `json:"reasoning"`
	FeatureSummary Features     `json:"feature_summary"`
}
