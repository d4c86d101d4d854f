// Package policy validates a transaction against spending limits, approval
// authority tiers, blocklists, and the global daily cap. Violations carry a
// severity so the decision engine can distinguish hard compliance failures
// from curable approval gaps.
package policy

import (
	"fmt"
	"strings"

	"treasury/internal/intent"
)

// Severity grades a violation. Critical violations force rejection;
// high-severity violations route to escalation for sign-off.
type Severity string

const (
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Violation codes.
const (
	CodeSpendingLimit     = "spending_limit"
	CodeMissingApproval   = "missing_approval"
	CodeMissingDirector   = "missing_director_signoff"
	CodeDualAuthorization = "dual_authorization"
	CodeBlockedReceiver   = "blocked_receiver"
	CodeDailyLimit        = "daily_limit"
)

// Violation is one detected policy breach.
type Violation struct {
	Code        string   `json:"code"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// ApprovalTier names the approval authority a transaction requires.
type ApprovalTier string

const (
	TierStandard ApprovalTier = "standard"
	TierManager  ApprovalTier = "manager"
	TierDirector ApprovalTier = "director"
	TierDualAuth ApprovalTier = "dual_authorization"
)

// Validation is the policy stage verdict.
type Validation struct {
	Passed          bool         `json:"policy_passed"`
	Violations      []Violation  `json:"violations"`
	Warnings        []string     `json:"warnings"`
	ApplicableLimit float64      `json:"applicable_limit"`
	RequiredTier    ApprovalTier `json:"approval_level_required"`
	ComplianceScore float64      `json:"compliance_score"`
	Reasoning       string       `json:"reasoning"`
}

// HasCritical reports whether any violation is severity critical.
func (v Validation) HasCritical() bool {
	for _, violation := range v.Violations {
		if violation.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// ApprovalAuthority answers whether the transaction's sender holds a given
// approval role. Inferring roles from display names is a known weakness;
// keeping it behind this interface lets a real role system replace the
// substring heuristic without touching the validator.
type ApprovalAuthority interface {
	HasManagerApproval(sender string) bool
	HasDirectorApproval(sender string) bool
}

// SenderNameAuthority is the default heuristic: role markers embedded in
// the sender identifier.
type SenderNameAuthority struct{}

func (SenderNameAuthority) HasManagerApproval(sender string) bool {
	s := strings.ToLower(sender)
	return strings.Contains(s, "approved") || strings.Contains(s, "manager")
}

func (SenderNameAuthority) HasDirectorApproval(sender string) bool {
	return strings.Contains(strings.ToLower(sender), "director")
}

// spendingLimits caps amounts per intent category.
var spendingLimits = map[intent.Category]float64{
	intent.CategoryRefund:     15000,
	intent.CategoryVendor:     30000,
	intent.CategoryPayroll:    150000,
	intent.CategoryInvestment: 100000,
	intent.CategoryEmergency:  50000,
	intent.CategoryTax:        200000,
	intent.CategoryLoan:       75000,
}

// defaultSpendingLimit applies to general or unrecognized intents.
const defaultSpendingLimit = 5000

// dailyTransactionCap is the global per-transaction ceiling, checked
// independently of the intent-specific limit.
const dailyTransactionCap = 200000

// blockedReceiverKeywords make a receiver an unconditional violation.
var blockedReceiverKeywords = []string{"sanctioned", "blacklist", "blocked"}

// Validator applies the policy rule set.
type Validator struct {
	authority ApprovalAuthority
}

func NewValidator(authority ApprovalAuthority) *Validator {
	if authority == nil {
		authority = SenderNameAuthority{}
	}
	return &Validator{authority: authority}
}

// Validate evaluates every rule independently; each unmet rule appends its
// own violation. Warnings never block.
func (v *Validator) Validate(amount float64, category intent.Category, sender, receiver string, urgency intent.Urgency) Validation {
	var violations []Violation
	var warnings []string

	limit, ok := spendingLimits[category]
	if !ok {
		limit = defaultSpendingLimit
	}
	if amount > limit {
		violations = append(violations, Violation{
			Code:        CodeSpendingLimit,
			Severity:    SeverityCritical,
			Description: fmt.Sprintf("exceeds %s spending limit of %.2f (requested %.2f)", category, limit, amount),
		})
	}

	if amount > 10000 && !v.authority.HasManagerApproval(sender) {
		violations = append(violations, Violation{
			Code:        CodeMissingApproval,
			Severity:    SeverityHigh,
			Description: "requires management pre-approval for amounts over 10000",
		})
	}
	if amount > 50000 && !v.authority.HasDirectorApproval(sender) {
		violations = append(violations, Violation{
			Code:        CodeMissingDirector,
			Severity:    SeverityHigh,
			Description: "requires director authorization for amounts over 50000",
		})
	}
	// Dual authorization cannot be proven from a single sender field, so
	// this tier always demands a second signer.
	if amount > 100000 {
		violations = append(violations, Violation{
			Code:        CodeDualAuthorization,
			Severity:    SeverityCritical,
			Description: "requires dual authorization (two signatures) for amounts over 100000",
		})
	}

	receiverLower := strings.ToLower(receiver)
	for _, kw := range blockedReceiverKeywords {
		if strings.Contains(receiverLower, kw) {
			violations = append(violations, Violation{
				Code:        CodeBlockedReceiver,
				Severity:    SeverityCritical,
				Description: "receiver is on blocked/sanctioned list",
			})
			break
		}
	}

	if amount > dailyTransactionCap {
		violations = append(violations, Violation{
			Code:        CodeDailyLimit,
			Severity:    SeverityCritical,
			Description: fmt.Sprintf("exceeds daily transaction limit of %.2f", float64(dailyTransactionCap)),
		})
	}

	if urgency == intent.UrgencyHigh && amount > 25000 {
		warnings = append(warnings, "high urgency + high amount transactions require post-payment audit")
	}
	if amount > 10000 {
		warnings = append(warnings, "transaction requires AML/KYC documentation per regulatory requirements")
	}

	passed := len(violations) == 0
	return Validation{
		Passed:          passed,
		Violations:      violations,
		Warnings:        warnings,
		ApplicableLimit: limit,
		RequiredTier:    tierFor(amount),
		ComplianceScore: complianceScore(passed, len(warnings)),
		Reasoning: fmt.Sprintf(
			"policy passed=%t with %d violation(s), %d warning(s) against %s limit %.2f",
			passed, len(violations), len(warnings), category, limit,
		),
	}
}

func tierFor(amount float64) ApprovalTier {
	switch {
	case amount > 100000:
		return TierDualAuth
	case amount > 50000:
		return TierDirector
	case amount > 10000:
		return TierManager
	default:
		return TierStandard
	}
}

func complianceScore(passed bool, warnings int) float64 {
	switch {
	case passed && warnings == 0:
		return 1.0
	case passed:
		return 0.7
	default:
		return 0.0
	}
}
