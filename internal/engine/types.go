package engine

// DealInputs is the raw snapshot of a prospective flip deal. It is owned by
// the caller, mutated field-by-field as the user edits, and passed by value
// into Recompute after every change.
type DealInputs struct {
	PurchasePrice    float64
	ClosingCosts     float64
	RehabCost        float64
	AfterRepairValue float64
	InteriorSqft     float64

	// TaxRate is a decimal fraction (0.25 = 25%).
	TaxRate float64

	// MonthsHeld is the projected holding period used to prorate the annual
	// holding costs. It is edited by the user in 0.5 month increments and is
	// independent of RehabDurationMonths.
	MonthsHeld float64

	// RehabDurationMonths comes from the property record and drives ROI
	// annualization only. Do not substitute MonthsHeld for it.
	RehabDurationMonths float64

	// Holding costs, each stored as an annual amount regardless of how the
	// presentation layer displays it.
	PropertyTaxesAnnual       float64
	InsuranceCostsAnnual      float64
	HOAFeesAnnual             float64
	UtilitiesCostsAnnual      float64
	AccountingLegalFeesAnnual float64
	OtherHoldingFeesAnnual    float64

	IsFinancing bool

	// Financing terms, meaningful only when IsFinancing is set.
	DownPaymentPercentage      float64 // 0-100
	AnnualInterestRate         float64 // percent, e.g. 7.5
	LoanTermYears              float64
	UnderwritingProcessingFees float64
	AppraisalFee               float64
	ProjectedLoanExtensionFees float64
	ClosingLoanFees            float64

	// Debt-service inputs for the DTI metric.
	MonthlyIncome    float64
	OtherMonthlyDebt float64
}

// SeventyPercentRule is the output of the 70% purchase-price heuristic.
type SeventyPercentRule struct {
	MaxPurchasePrice float64
	Passes           bool
}

// BreakEvenAnalysis holds the ARV at which total profit is exactly zero
// given the deal's fixed costs, plus each cost's margin relative to ARV.
type BreakEvenAnalysis struct {
	BreakEvenARV         float64
	RehabCostsMargin     float64
	HoldingCostsMargin   float64
	FinancingCostsMargin float64
}

// AnalysisResult is the complete derived state for one DealInputs snapshot.
// It is replaced wholesale on every recompute and never patched in place.
type AnalysisResult struct {
	// Cash-flow chain.
	SellingCosts    float64
	SaleProceeds    float64
	DownPayment     float64
	TotalInvestment float64 // cash invested
	CapitalNeeded   float64
	HoldingCosts    float64
	FinancingCosts  float64
	LoanAmount      float64
	TotalProfit     float64
	PostTaxProfit   float64

	// Return metrics. All ratios are decimal fractions (0.15 = 15%).
	TotalROI      float64
	AnnualizedROI float64

	// Loan metrics. TotalInterestPaid is the holding-period simple interest
	// (the flip's cost of capital), not the full-term amortized figure.
	MonthlyMortgagePayment float64
	TotalInterestPaid      float64
	TotalLoanCosts         float64
	LoanToValueRatio       float64
	DebtToIncomeRatio      float64
	LoanToCostRatio        float64
	ReturnOnEquity         float64

	// Risk and threshold metrics.
	SeventyPercentRule SeventyPercentRule
	BreakEven          BreakEvenAnalysis
}

// Profitable reports whether the deal clears its break-even point, i.e.
// total profit is non-negative.
func (r AnalysisResult) Profitable() bool {
	return r.TotalProfit >= 0
}
