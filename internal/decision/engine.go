// Package decision combines the four upstream stage verdicts into the
// final approve/reject/escalate outcome. The engine is a pure function of
// its inputs: no hidden state, no randomness, no clock. That purity is a
// hard requirement for auditability.
package decision

import (
	"fmt"

	"treasury/internal/intent"
	"treasury/internal/liquidity"
	"treasury/internal/policy"
	"treasury/internal/risk"
)

// Verdict is the final pipeline outcome.
type Verdict string

const (
	VerdictApprove  Verdict = "approve"
	VerdictReject   Verdict = "reject"
	VerdictEscalate Verdict = "escalate"
)

// Input bundles the four upstream stage results, read-only.
type Input struct {
	Intent    intent.Classification
	Risk      risk.Assessment
	Policy    policy.Validation
	Liquidity liquidity.Report
}

// StageScores summarizes each stage's headline number for the outcome.
type StageScores struct {
	IntentConfidence float64 `json:"intent_confidence"`
	RiskScore        float64 `json:"risk_score"`
	ComplianceScore  float64 `json:"compliance_score"`
	ReserveCushion   float64 `json:"reserve_cushion"`
}

// Outcome is the decision stage verdict.
type Outcome struct {
	Decision       Verdict     `json:"decision"`
	FastTrack      bool        `json:"fast_track"`
	Confidence     float64     `json:"confidence"`
	Scores         StageScores `json:"stage_scores"`
	BlockingIssues []string    `json:"blocking_issues"`
	GreenLights    []string    `json:"green_lights"`
	NextSteps      []string    `json:"next_steps"`
	Reasoning      string      `json:"reasoning"`
}

// Engine applies the decision rule chain. Upstream recommendations (the
// risk scorer's advisory string in particular) are inputs to the trail,
// not to the rules: this engine holds sole authority over the verdict.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Decide applies the priority-ordered rule chain; the first matching rule
// wins.
// Rule priority:
//  1. Reject - risk level high or critical
//  2. Reject - policy failed with a critical violation
//  3. Reject - not financially viable
//  4. Escalate - risk level medium
//  5. Escalate - policy failed on curable (non-critical) violations
//  6. Escalate - policy warnings combined with elevated risk
//  7. Escalate - low intent confidence
//  8. Approve (fast-track when urgent, low-risk, and policy-clean)
func (e *Engine) Decide(input Input) Outcome {
	blocking, green := signals(input)

	switch {
	case input.Risk.Level == risk.LevelHigh || input.Risk.Level == risk.LevelCritical:
		return build(VerdictReject, input, blocking, green,
			fmt.Sprintf("risk level %s is above the automatic approval ceiling", input.Risk.Level),
			[]string{"notify sender of rejection", "file risk report"})

	case !input.Policy.Passed && input.Policy.HasCritical():
		return build(VerdictReject, input, blocking, green,
			"policy validation failed with a critical violation",
			[]string{"notify sender of rejection", "record compliance breach"})

	case !input.Liquidity.FinanciallyViable:
		return build(VerdictReject, input, blocking, green,
			"transaction is not financially viable for the paying account",
			[]string{"notify sender of rejection", "review account funding"})

	case input.Risk.Level == risk.LevelMedium:
		return build(VerdictEscalate, input, blocking, green,
			"medium risk requires human review",
			[]string{"route to risk officer", "hold funds pending review"})

	case !input.Policy.Passed:
		return build(VerdictEscalate, input, blocking, green,
			"policy violations are curable with the required approvals",
			[]string{"obtain missing approvals", "resubmit for review"})

	case len(input.Policy.Warnings) > 0 && input.Risk.Score >= 0.25:
		return build(VerdictEscalate, input, blocking, green,
			"policy warnings combined with elevated risk require review",
			[]string{"route to compliance officer"})

	case input.Intent.Confidence <= 0.50:
		return build(VerdictEscalate, input, blocking, green,
			"intent classification confidence too low for automatic approval",
			[]string{"request purpose clarification from sender"})

	default:
		out := build(VerdictApprove, input, blocking, green,
			"all stages green within automatic approval thresholds",
			[]string{"execute transaction", "archive audit record"})
		out.FastTrack = input.Intent.Urgency == intent.UrgencyHigh &&
			input.Risk.Level == risk.LevelLow &&
			input.Policy.Passed && len(input.Policy.Warnings) == 0
		if out.FastTrack {
			out.NextSteps = append([]string{"fast-track execution"}, out.NextSteps...)
		}
		return out
	}
}

// signals collects the explainability lists: which upstream facts block
// approval and which support it.
func signals(input Input) (blocking, green []string) {
	if input.Risk.Level == risk.LevelHigh || input.Risk.Level == risk.LevelCritical {
		blocking = append(blocking, fmt.Sprintf("risk_level_%s", input.Risk.Level))
	} else {
		green = append(green, fmt.Sprintf("risk_level_%s", input.Risk.Level))
	}

	if input.Policy.Passed {
		green = append(green, "policy_passed")
	} else {
		for _, violation := range input.Policy.Violations {
			blocking = append(blocking, "policy_violation_"+violation.Code)
		}
	}

	if input.Liquidity.FinanciallyViable {
		green = append(green, "financially_viable")
	} else {
		blocking = append(blocking, "not_financially_viable")
	}

	if input.Intent.Confidence > 0.50 {
		green = append(green, "intent_confidence_ok")
	} else {
		blocking = append(blocking, "intent_confidence_low")
	}
	return blocking, green
}

func build(verdict Verdict, input Input, blocking, green []string, reason string, nextSteps []string) Outcome {
	return Outcome{
		Decision:   verdict,
		Confidence: confidenceFor(verdict, input),
		Scores: StageScores{
			IntentConfidence: input.Intent.Confidence,
			RiskScore:        input.Risk.Score,
			ComplianceScore:  input.Policy.ComplianceScore,
			ReserveCushion:   input.Liquidity.ReserveCushion,
		},
		BlockingIssues: blocking,
		GreenLights:    green,
		NextSteps:      nextSteps,
		Reasoning:      reason,
	}
}

// confidenceFor derives a deterministic confidence from the verdict path.
// Rejections are confident by construction (a hard rule fired); approvals
// discount for outstanding warnings; escalations are deliberately low
// because the whole point is handing off to a human.
func confidenceFor(verdict Verdict, input Input) float64 {
	switch verdict {
	case VerdictReject:
		return 0.90
	case VerdictEscalate:
		return 0.60
	default:
		if len(input.Policy.Warnings) > 0 {
			return 0.85
		}
		return 0.95
	}
}
