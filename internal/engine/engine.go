package engine

import (
	"github.com/roadwatch/triage/internal/advise"
	"github.com/roadwatch/triage/internal/extract"
	"github.com/roadwatch/triage/internal/model"
	"github.com/roadwatch/triage/internal/normalize"
	"github.com/roadwatch/triage/internal/score"
)

// Engine sequences the full analysis: normalise the payload, extract
// features, run the three scorers off the same feature mapping, then
// derive the recommendation and reasoning. The computation is pure and
// synchronous, so one engine is safe to share across concurrent requests.
type Engine struct {
	extractor    *extract.Extractor
	authenticity *score.AuthenticityScorer
	quality      *score.QualityScorer
	redFlags     *score.RedFlagDetector
	advisor      *advise.Advisor
	status       model.ModelStatus
}

// New creates an engine with the standard rule set.
func New() *Engine {
	return &Engine{
		extractor:    extract.NewExtractor(),
		authenticity: score.NewAuthenticityScorer(),
		quality:      score.NewQualityScorer(),
		redFlags:     score.NewRedFlagDetector(),
		advisor:      advise.NewAdvisor(),
		status: model.ModelStatus{
			Ready:   true,
			Message: "Heuristic scoring engine initialised.",
		},
	}
}

// Status returns the static readiness marker.
func (e *Engine) Status() model.ModelStatus {
	return e.status
}

// Analyse runs the full pipeline over a decoded incident payload. The only
// failure mode is normalize.ErrInvalidPayload; the heuristics themselves
// never fail on missing or malformed optional fields.
func (e *Engine) Analyse(payload any) (*model.Analysis, error) {
	incident, err := normalize.Normalise(payload)
	if err != nil {
		return nil, err
	}

	features := e.extractor.Extract(incident)

	authenticity := e.authenticity.Score(features)
	quality := e.quality.Score(features)
	redFlags := e.redFlags.Detect(features)

	recommendation := e.advisor.Recommend(authenticity, redFlags)
	reasoning := e.advisor.Reasoning(features, authenticity, quality, redFlags)

	return &model.Analysis{
		ModelStatus:    e.status,
		Authenticity:   authenticity,
		Quality:        quality,
		RedFlags:       redFlags,
		Recommendation: recommendation,
		Reasoning:      reasoning,
		FeatureSummary: features,
	}, nil
}
