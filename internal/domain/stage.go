package domain

import (
	"time"

	pkgerrors "treasury/pkg/errors"
)

// Stage identifies one pipeline stage. The order of PipelineStages is the
// execution order and is load-bearing: the trail enforces it and the audit
// hash folds the checklist in this order.
type Stage string

const (
	StageIntent    Stage = "intent_classification"
	StageRisk      Stage = "risk_assessment"
	StagePolicy    Stage = "policy_validation"
	StageLiquidity Stage = "liquidity_check"
	StageDecision  Stage = "final_decision"
)

// PipelineStages lists the evidence-producing stages in execution order.
var PipelineStages = []Stage{
	StageIntent,
	StageRisk,
	StagePolicy,
	StageLiquidity,
	StageDecision,
}

// StageResult is one stage's verdict. Payload holds the stage-specific
// structured output; Commentary is optional enrichment text that never
// affects the verdict. Results are append-only once produced.
type StageResult struct {
	Stage      Stage     `json:"stage"`
	Payload    any       `json:"payload"`
	Commentary string    `json:"commentary,omitempty"`
	ProducedAt time.Time `json:"produced_at"`
}

// EvidenceTrail is the ordered sequence of stage results for one
// transaction run. It is owned exclusively by the pipeline for the
// duration of the run; there is no sharing across concurrent runs.
type EvidenceTrail struct {
	results []StageResult
}

// Append records a stage result, enforcing pipeline order and the
// one-result-per-stage invariant.
func (t *EvidenceTrail) Append(result StageResult) error {
	next := len(t.results)
	if next >= len(PipelineStages) {
		return pkgerrors.New(pkgerrors.CodeInternal, "evidence trail is complete")
	}
	if result.Stage != PipelineStages[next] {
		return pkgerrors.Newf(pkgerrors.CodeInternal,
			"stage %s out of order, expected %s", result.Stage, PipelineStages[next])
	}
	t.results = append(t.results, result)
	return nil
}

// Results returns a copy of the recorded stage results in pipeline order.
func (t *EvidenceTrail) Results() []StageResult {
	return append([]StageResult{}, t.results...)
}

// Find returns the result for a stage, if it has been produced.
func (t *EvidenceTrail) Find(stage Stage) (StageResult, bool) {
	for _, r := range t.results {
		if r.Stage == stage {
			return r, true
		}
	}
	return StageResult{}, false
}

// Complete reports whether every pipeline stage has produced a result.
func (t *EvidenceTrail) Complete() bool {
	return len(t.results) == len(PipelineStages)
}
