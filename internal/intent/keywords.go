package intent

// Category is the inferred business purpose of a transaction.
type Category string

const (
	CategoryRefund     Category = "refund"
	CategoryPayroll    Category = "payroll"
	CategoryVendor     Category = "vendor"
	CategoryInvestment Category = "investment"
	CategoryEmergency  Category = "emergency"
	CategoryTax        Category = "tax"
	CategoryLoan       Category = "loan"
	CategoryGeneral    Category = "general"
)

// categoryKeywords is the classification table. Order is a first-class
// configuration artifact: categories are scanned top to bottom and the
// first category with at least one keyword hit wins, so "Urgent refund"
// classifies as refund, not emergency.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryRefund, []string{"refund", "return", "reimbursement", "reversal"}},
	{CategoryPayroll, []string{"salary", "wage", "payroll", "compensation", "bonus"}},
	{CategoryVendor, []string{"vendor", "supplier", "invoice", "payment", "purchase"}},
	{CategoryInvestment, []string{"investment", "equity", "acquisition", "stake"}},
	{CategoryEmergency, []string{"urgent", "emergency", "critical", "immediate"}},
	{CategoryTax, []string{"tax", "vat", "hmrc", "duty"}},
	{CategoryLoan, []string{"loan", "credit", "financing", "borrowing"}},
}

// urgencyKeywords escalate urgency to high when present in the purpose.
var urgencyKeywords = []string{"urgent", "emergency", "immediate", "asap", "critical"}
