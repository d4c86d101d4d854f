package policy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"treasury/internal/intent"
)

type ValidatorSuite struct {
	suite.Suite
	validator *Validator
}

func (s *ValidatorSuite) SetupTest() {
	s.validator = NewValidator(SenderNameAuthority{})
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) codes(v Validation) []string {
	out := make([]string, 0, len(v.Violations))
	for _, violation := range v.Violations {
		out = append(out, violation.Code)
	}
	return out
}

// TestSpendingLimits verifies the per-category caps with exact-boundary
// behavior: an amount equal to the limit passes, one cent over fails.
func (s *ValidatorSuite) TestSpendingLimits() {
	s.Run("amount equal to the limit passes", func() {
		got := s.validator.Validate(15000, intent.CategoryRefund, "manager-approved ops", "Acme", intent.UrgencyMedium)
		s.NotContains(s.codes(got), CodeSpendingLimit)
	})

	s.Run("one cent over the limit is a critical violation", func() {
		got := s.validator.Validate(15000.01, intent.CategoryRefund, "manager-approved ops", "Acme", intent.UrgencyMedium)
		s.Require().Contains(s.codes(got), CodeSpendingLimit)
		s.True(got.HasCritical())
		s.False(got.Passed)
	})

	s.Run("unrecognized category gets the default limit", func() {
		got := s.validator.Validate(5001, intent.CategoryGeneral, "ops", "Acme", intent.UrgencyMedium)
		s.Contains(s.codes(got), CodeSpendingLimit)
		s.InDelta(5000, got.ApplicableLimit, 1e-9)
	})

	s.Run("each category enforces its own cap", func() {
		cases := map[intent.Category]float64{
			intent.CategoryRefund:     15000,
			intent.CategoryVendor:     30000,
			intent.CategoryPayroll:    150000,
			intent.CategoryInvestment: 100000,
			intent.CategoryEmergency:  50000,
			intent.CategoryTax:        200000,
			intent.CategoryLoan:       75000,
		}
		for category, limit := range cases {
			got := s.validator.Validate(limit+1, category, "director", "Acme", intent.UrgencyMedium)
			s.Contains(s.codes(got), CodeSpendingLimit, string(category))
			s.InDelta(limit, got.ApplicableLimit, 1e-9, string(category))
		}
	})
}

// TestApprovalRules verifies the threshold ladder and the name-marker
// authority heuristic.
func (s *ValidatorSuite) TestApprovalRules() {
	s.Run("over 10000 without manager marker", func() {
		got := s.validator.Validate(12000, intent.CategoryVendor, "ops-team", "Acme", intent.UrgencyMedium)
		s.Contains(s.codes(got), CodeMissingApproval)
		s.False(got.HasCritical())
	})

	s.Run("manager marker satisfies the 10000 tier", func() {
		for _, sender := range []string{"Manager Finance", "approved by finance"} {
			got := s.validator.Validate(12000, intent.CategoryVendor, sender, "Acme", intent.UrgencyMedium)
			s.NotContains(s.codes(got), CodeMissingApproval, sender)
		}
	})

	s.Run("over 50000 needs a director even with manager approval", func() {
		got := s.validator.Validate(60000, intent.CategoryLoan, "approved manager", "Acme", intent.UrgencyMedium)
		s.Contains(s.codes(got), CodeMissingDirector)
	})

	s.Run("director marker satisfies both lower tiers", func() {
		got := s.validator.Validate(60000, intent.CategoryLoan, "Finance Director", "Acme", intent.UrgencyMedium)
		s.NotContains(s.codes(got), CodeMissingDirector)
		s.Contains(s.codes(got), CodeMissingApproval) // director marker is not a manager marker
	})

	s.Run("over 100000 always demands dual authorization", func() {
		got := s.validator.Validate(110000, intent.CategoryPayroll, "approved manager director", "Acme", intent.UrgencyMedium)
		s.Contains(s.codes(got), CodeDualAuthorization)
		s.True(got.HasCritical())
	})
}

// TestBlocklistAndDailyCap verifies the unconditional rules.
func (s *ValidatorSuite) TestBlocklistAndDailyCap() {
	s.Run("blocked receiver keyword is critical", func() {
		for _, receiver := range []string{"Sanctioned Entity", "blacklist partner", "BLOCKED llc"} {
			got := s.validator.Validate(100, intent.CategoryVendor, "ops", receiver, intent.UrgencyMedium)
			s.Contains(s.codes(got), CodeBlockedReceiver, receiver)
			s.True(got.HasCritical(), receiver)
		}
	})

	s.Run("over the daily cap is critical", func() {
		got := s.validator.Validate(200001, intent.CategoryTax, "approved manager director", "HMRC", intent.UrgencyMedium)
		s.Contains(s.codes(got), CodeDailyLimit)
	})
}

// TestWarningsAndScore verifies that warnings never block and the
// compliance score reflects pass state and warning count.
func (s *ValidatorSuite) TestWarningsAndScore() {
	s.Run("clean transaction scores 1.0", func() {
		got := s.validator.Validate(2000, intent.CategoryVendor, "ops", "Acme", intent.UrgencyMedium)
		s.True(got.Passed)
		s.Empty(got.Warnings)
		s.InDelta(1.0, got.ComplianceScore, 1e-9)
	})

	s.Run("warnings alone still pass with score 0.7", func() {
		got := s.validator.Validate(12000, intent.CategoryVendor, "approved manager", "Acme", intent.UrgencyMedium)
		s.True(got.Passed)
		s.Contains(got.Warnings, "transaction requires AML/KYC documentation per regulatory requirements")
		s.InDelta(0.7, got.ComplianceScore, 1e-9)
	})

	s.Run("high urgency over 25000 adds the audit warning", func() {
		got := s.validator.Validate(26000, intent.CategoryVendor, "approved manager", "Acme", intent.UrgencyHigh)
		s.Contains(got.Warnings, "high urgency + high amount transactions require post-payment audit")
	})

	s.Run("any violation scores 0.0", func() {
		got := s.validator.Validate(5001, intent.CategoryGeneral, "ops", "Acme", intent.UrgencyMedium)
		s.False(got.Passed)
		s.InDelta(0.0, got.ComplianceScore, 1e-9)
	})
}

// TestApprovalTier verifies the tier ladder reported to reviewers.
func (s *ValidatorSuite) TestApprovalTier() {
	cases := []struct {
		amount float64
		want   ApprovalTier
	}{
		{10000, TierStandard},
		{10001, TierManager},
		{50001, TierDirector},
		{100001, TierDualAuth},
	}
	for _, tc := range cases {
		got := s.validator.Validate(tc.amount, intent.CategoryPayroll, "approved manager director", "Acme", intent.UrgencyMedium)
		s.Equal(tc.want, got.RequiredTier, "amount %.2f", tc.amount)
	}
}

// TestNilAuthorityFallback verifies the constructor defaults to the name
// heuristic.
func (s *ValidatorSuite) TestNilAuthorityFallback() {
	v := NewValidator(nil)
	got := v.Validate(12000, intent.CategoryVendor, "approved manager", "Acme", intent.UrgencyMedium)
	s.NotContains(s.codes(got), CodeMissingApproval)
}
