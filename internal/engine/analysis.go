package engine

// Recompute derives the full AnalysisResult from a DealInputs snapshot.
//
// It is a stateless pure transform: callers re-run it in full after any
// input edit, and the returned result completely replaces the previous one.
// The step order below is a correctness requirement, each step feeds later
// ones. Recompute never fails; all division guards live in the formulas.
func Recompute(in DealInputs) AnalysisResult {
	downPaymentRate := in.DownPaymentPercentage / 100
	interestRate := in.AnnualInterestRate / 100

	// 1-2. Sale side of the ledger.
	sellingCosts := SellingCosts(in.AfterRepairValue, DefaultSellingCostRate)
	saleProceeds := SaleProceeds(in.AfterRepairValue, sellingCosts)

	// 3. Down payment, computed unconditionally; it also feeds the
	// cash-invested figure used by return on equity.
	downPayment := DownPayment(in.PurchasePrice, downPaymentRate)

	// 4. Financed deals tie up only the down payment; cash deals tie up the
	// full price plus closing costs.
	var totalInvestment, capitalNeeded float64
	if in.IsFinancing {
		totalInvestment = downPayment
		capitalNeeded = downPayment
	} else {
		totalInvestment = in.PurchasePrice + in.ClosingCosts
		capitalNeeded = in.PurchasePrice
	}

	// 5. Straight-line proration of the annual holding costs by months
	// held. Not calendar-aware.
	annualHolding := in.PropertyTaxesAnnual +
		in.InsuranceCostsAnnual +
		in.HOAFeesAnnual +
		in.UtilitiesCostsAnnual +
		in.AccountingLegalFeesAnnual +
		in.OtherHoldingFeesAnnual
	holdingCosts := (in.MonthsHeld / 12) * annualHolding

	// 6. Loan principal, computed unconditionally; used only when financing.
	loanAmount := LoanAmount(in.PurchasePrice, downPaymentRate)

	// 7. Cost of capital while flipping: simple interest over the holding
	// period plus lender fees. This is intentionally not the amortized
	// mortgage interest computed below; a flip exits long before the
	// amortization schedule matters.
	loanFees := in.UnderwritingProcessingFees +
		in.AppraisalFee +
		in.ProjectedLoanExtensionFees +
		in.ClosingLoanFees
	var financingCosts float64
	if in.IsFinancing {
		financingCosts = HoldingPeriodSimpleInterest(loanAmount, interestRate, in.MonthsHeld) + loanFees
	}

	// 8. Profit, branched on the financing mode. On a financed deal the
	// sale must repay the principal on top of the sponsor's own outlays.
	var totalProfit float64
	if in.IsFinancing {
		totalProfit = saleProceeds - loanAmount - downPayment - in.RehabCost - holdingCosts - financingCosts
	} else {
		totalProfit = saleProceeds - in.RehabCost - totalInvestment - holdingCosts - financingCosts
	}

	// 9. ROI family. Annualization runs on the property's rehab duration,
	// not the MonthsHeld slider that prorated the holding costs.
	totalROI := TotalROI(totalProfit, totalInvestment)
	annualizedROI := AnnualizedROI(totalROI, in.RehabDurationMonths)

	// 10-11. Tax and the 70% heuristic.
	postTaxProfit := PostTaxProfit(totalProfit, in.TaxRate)
	seventyPercent := CheckSeventyPercentRule(in.AfterRepairValue, in.RehabCost, in.PurchasePrice)

	// 12. Full-term amortized payment, independent of the holding period.
	monthlyPayment := MonthlyMortgagePayment(loanAmount, interestRate, in.LoanTermYears)

	// 13-14. The displayed interest figure is the holding-period simple
	// interest, zero on cash deals; loan costs stack the fees on top.
	var totalInterestPaid float64
	if in.IsFinancing {
		totalInterestPaid = HoldingPeriodSimpleInterest(loanAmount, interestRate, in.MonthsHeld)
	}
	totalLoanCosts := TotalLoanCosts(totalInterestPaid, loanFees)

	// 15. Risk ratios and break-even. Cash invested here includes rehab and
	// closing costs on top of the down payment, distinct from
	// totalInvestment above.
	cashInvested := downPayment + in.RehabCost + in.ClosingCosts
	breakEven := ComputeBreakEven(
		in.AfterRepairValue,
		in.PurchasePrice,
		in.RehabCost,
		holdingCosts,
		financingCosts,
		sellingCosts,
		in.IsFinancing,
	)

	return AnalysisResult{
		SellingCosts:    sellingCosts,
		SaleProceeds:    saleProceeds,
		DownPayment:     downPayment,
		TotalInvestment: totalInvestment,
		CapitalNeeded:   capitalNeeded,
		HoldingCosts:    holdingCosts,
		FinancingCosts:  financingCosts,
		LoanAmount:      loanAmount,
		TotalProfit:     totalProfit,
		PostTaxProfit:   postTaxProfit,

		TotalROI:      totalROI,
		AnnualizedROI: annualizedROI,

		MonthlyMortgagePayment: monthlyPayment,
		TotalInterestPaid:      totalInterestPaid,
		TotalLoanCosts:         totalLoanCosts,
		LoanToValueRatio:       LoanToValueRatio(loanAmount, in.AfterRepairValue),
		DebtToIncomeRatio:      DebtToIncomeRatio(in.OtherMonthlyDebt, monthlyPayment, in.MonthlyIncome),
		LoanToCostRatio:        LoanToCostRatio(loanAmount, in.PurchasePrice, in.RehabCost),
		ReturnOnEquity:         ReturnOnEquity(totalProfit, cashInvested),

		SeventyPercentRule: seventyPercent,
		BreakEven:          breakEven,
	}
}
