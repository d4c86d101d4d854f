// Package liquidity checks whether executing a transaction leaves the
// paying account within safe balance and limit bounds. The check is pure
// over a ledger snapshot: identical inputs always yield identical output.
package liquidity

import (
	"context"
	"errors"
	"fmt"

	"treasury/internal/intent"
	"treasury/internal/ledger"
)

// CashFlowImpact categorizes how hard the transaction hits cash flow.
type CashFlowImpact string

const (
	ImpactHighPriority CashFlowImpact = "high_priority"
	ImpactSignificant  CashFlowImpact = "significant"
	ImpactModerate     CashFlowImpact = "moderate"
	ImpactMinimal      CashFlowImpact = "minimal"
)

// Health grades the post-transaction balance against the reserve.
type Health string

const (
	HealthExcellent    Health = "excellent"
	HealthGood         Health = "good"
	HealthAdequate     Health = "adequate"
	HealthInsufficient Health = "insufficient"
)

// Report is the liquidity stage verdict.
type Report struct {
	SufficientFunds        bool           `json:"sufficient_funds"`
	FinanciallyViable      bool           `json:"financially_viable"`
	CurrentBalance         float64        `json:"current_balance"`
	RemainingBalance       float64        `json:"remaining_balance"`
	MinimumReserve         float64        `json:"minimum_reserve"`
	ReserveCushion         float64        `json:"reserve_cushion"`
	DailyLimit             float64        `json:"daily_limit"`
	WithinDailyLimit       bool           `json:"within_daily_limit"`
	MonthlyBudgetRemaining float64        `json:"monthly_budget_remaining"`
	WithinBudget           bool           `json:"within_budget"`
	Warnings               []string       `json:"warnings"`
	Concerns               []string       `json:"concerns"`
	CashFlowImpact         CashFlowImpact `json:"cash_flow_impact"`
	Health                 Health         `json:"liquidity_health"`
}

// Checker evaluates feasibility against an injected ledger. The ledger is
// the run's only shared resource; the checker reads one snapshot and never
// writes.
type Checker struct {
	ledger ledger.Ledger
}

func NewChecker(l ledger.Ledger) *Checker {
	return &Checker{ledger: l}
}

// Check looks up the account snapshot and evaluates it. Unknown accounts
// fall back to the default snapshot; real lookup failures propagate.
func (c *Checker) Check(ctx context.Context, amount float64, accountID string, category intent.Category) (Report, error) {
	snapshot, err := c.ledger.Lookup(ctx, accountID)
	if err != nil {
		if !errors.Is(err, ledger.ErrNotFound) {
			return Report{}, err
		}
		snapshot = ledger.DefaultSnapshot(accountID)
	}
	return Evaluate(amount, snapshot, category), nil
}

// Evaluate is the pure core: feasibility of one amount against one
// snapshot.
func Evaluate(amount float64, snapshot ledger.Snapshot, category intent.Category) Report {
	remaining := snapshot.Balance - amount
	sufficient := remaining >= snapshot.MinimumReserve
	withinDaily := amount <= snapshot.DailyLimit
	withinBudget := amount <= snapshot.MonthlyBudgetRemaining

	var warnings, concerns []string
	if remaining < snapshot.MinimumReserve {
		concerns = append(concerns, fmt.Sprintf(
			"transaction would breach minimum reserve requirement of %.2f", snapshot.MinimumReserve))
	}
	if remaining < snapshot.MinimumReserve*1.2 {
		warnings = append(warnings, "balance would fall close to minimum reserve threshold")
	}
	if amount > snapshot.Balance*0.5 {
		warnings = append(warnings, "transaction represents >50% of available balance")
	}
	if !withinDaily {
		concerns = append(concerns, fmt.Sprintf(
			"exceeds daily transaction limit of %.2f", snapshot.DailyLimit))
	}

	cushion := 0.0
	if sufficient {
		cushion = remaining - snapshot.MinimumReserve
	}

	return Report{
		SufficientFunds:        sufficient,
		FinanciallyViable:      sufficient && withinDaily && withinBudget,
		CurrentBalance:         snapshot.Balance,
		RemainingBalance:       remaining,
		MinimumReserve:         snapshot.MinimumReserve,
		ReserveCushion:         cushion,
		DailyLimit:             snapshot.DailyLimit,
		WithinDailyLimit:       withinDaily,
		MonthlyBudgetRemaining: snapshot.MonthlyBudgetRemaining,
		WithinBudget:           withinBudget,
		Warnings:               warnings,
		Concerns:               concerns,
		CashFlowImpact:         impactFor(amount, category),
		Health:                 healthFor(remaining, snapshot.MinimumReserve, sufficient),
	}
}

func impactFor(amount float64, category intent.Category) CashFlowImpact {
	switch {
	case category == intent.CategoryEmergency:
		return ImpactHighPriority
	case amount > 50000:
		return ImpactSignificant
	case amount > 10000:
		return ImpactModerate
	default:
		return ImpactMinimal
	}
}

func healthFor(remaining, reserve float64, sufficient bool) Health {
	switch {
	case remaining > reserve*3:
		return HealthExcellent
	case remaining > reserve*2:
		return HealthGood
	case sufficient:
		return HealthAdequate
	default:
		return HealthInsufficient
	}
}
