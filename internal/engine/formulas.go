// Package engine implements the flip financial analysis engine: a library of
// pure numeric formulas and the orchestrator that composes them into a full
// investment analysis.
//
// Every formula is total and deterministic. The single failure mode in this
// domain is a degenerate division, and every ratio-producing formula guards
// it the same way: a zero denominator yields 0, never NaN or Inf. Negative
// or implausible inputs are not rejected; they propagate arithmetically and
// flagging them is the presentation layer's problem.
package engine

import "math"

// Default rates applied when the user has not overridden them.
const (
	DefaultSellingCostRate  = 0.06 // agent commissions + closing, 6% of ARV
	DefaultDownPaymentRate  = 0.20
	DefaultRehabCostPerSqft = 50.0
	DefaultTaxRate          = 0.25
	DefaultLoanTermYears    = 30.0

	daysPerMonth = 30.0
)

// SellingCosts estimates the cost of selling at the given after-repair
// value: arv * rate.
func SellingCosts(arv, rate float64) float64 {
	return arv * rate
}

// SaleProceeds is the net received from the sale: arv - sellingCosts.
func SaleProceeds(arv, sellingCosts float64) float64 {
	return arv - sellingCosts
}

// TotalProfit is saleProceeds - totalInvestment.
func TotalProfit(saleProceeds, totalInvestment float64) float64 {
	return saleProceeds - totalInvestment
}

// TotalROI is profit / investment, or 0 when nothing was invested.
func TotalROI(profit, investment float64) float64 {
	if investment == 0 {
		return 0
	}
	return profit / investment
}

// AnnualizedROI scales a holding-period ROI to a yearly rate:
// totalROI / (months/12). A zero duration yields 0.
func AnnualizedROI(totalROI, months float64) float64 {
	if months == 0 {
		return 0
	}
	return totalROI / (months / 12)
}

// DownPayment is price * rate, with rate a decimal fraction.
func DownPayment(price, rate float64) float64 {
	return price * rate
}

// CapitalNeeded is the cash shortfall after the down payment:
// investment - downPayment.
func CapitalNeeded(investment, downPayment float64) float64 {
	return investment - downPayment
}

// RehabDurationMonths converts a rehab estimate in days to months using a
// flat 30-day month.
func RehabDurationMonths(days float64) float64 {
	return days / daysPerMonth
}

// RehabCost estimates renovation cost from interior square footage:
// sqft * costPerSqft.
func RehabCost(sqft, costPerSqft float64) float64 {
	return sqft * costPerSqft
}

// PostTaxProfit is profit * (1 - taxRate).
func PostTaxProfit(profit, taxRate float64) float64 {
	return profit * (1 - taxRate)
}

// CheckSeventyPercentRule applies the 70% heuristic: the maximum defensible
// purchase price is 0.70*ARV - repairs, and the deal passes when the asking
// price does not exceed it. The equal-boundary case passes.
func CheckSeventyPercentRule(arv, repairs, price float64) SeventyPercentRule {
	maxPrice := arv*0.70 - repairs
	return SeventyPercentRule{
		MaxPurchasePrice: maxPrice,
		Passes:           price <= maxPrice,
	}
}

// LoanAmount is the financed principal: price * (1 - downPaymentRate).
func LoanAmount(price, downPaymentRate float64) float64 {
	return price * (1 - downPaymentRate)
}

// MonthlyMortgagePayment computes the standard amortizing-loan payment
//
//	P = loan * r*(1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate and n the number of payments. annualRate is a
// decimal fraction. A zero loan or zero rate yields 0; the interior
// zero-monthly-rate branch falls back to straight-line loan/n.
func MonthlyMortgagePayment(loan, annualRate, years float64) float64 {
	if loan == 0 || annualRate == 0 {
		return 0
	}
	monthlyRate := annualRate / 12
	n := years * 12
	if monthlyRate == 0 {
		return loan / n
	}
	factor := math.Pow(1+monthlyRate, n)
	return loan * monthlyRate * factor / (factor - 1)
}

// AmortizedTotalInterest is the interest paid over the full loan term:
// monthlyPayment*years*12 - loan. This is the long-term mortgage figure;
// it is deliberately distinct from HoldingPeriodSimpleInterest and the two
// must never be merged, they answer different questions.
func AmortizedTotalInterest(monthlyPayment, years, loan float64) float64 {
	return monthlyPayment*years*12 - loan
}

// HoldingPeriodSimpleInterest approximates the cost of carrying the loan
// for a short flip: loan * annualRate * (months/12). annualRate is a
// decimal fraction. No amortization is applied; a flipper pays interest on
// the full principal until the sale.
func HoldingPeriodSimpleInterest(loan, annualRate, months float64) float64 {
	return loan * annualRate * (months / 12)
}

// TotalLoanCosts is interest + fees.
func TotalLoanCosts(interest, fees float64) float64 {
	return interest + fees
}

// LoanToValueRatio is loan / value, or 0 when value is 0.
func LoanToValueRatio(loan, value float64) float64 {
	if value == 0 {
		return 0
	}
	return loan / value
}

// DebtToIncomeRatio is (otherDebt + mortgagePayment) / income, or 0 when
// income is 0.
func DebtToIncomeRatio(otherDebt, mortgagePayment, income float64) float64 {
	if income == 0 {
		return 0
	}
	return (otherDebt + mortgagePayment) / income
}

// LoanToCostRatio is loan / (price + rehab), or 0 when the project cost
// is 0.
func LoanToCostRatio(loan, price, rehab float64) float64 {
	cost := price + rehab
	if cost == 0 {
		return 0
	}
	return loan / cost
}

// ReturnOnEquity is profit / cashInvested, or 0 when no cash was put in.
func ReturnOnEquity(profit, cashInvested float64) float64 {
	if cashInvested == 0 {
		return 0
	}
	return profit / cashInvested
}

// ComputeBreakEven finds the ARV at which total profit is exactly zero for
// the deal's fixed costs, together with each cost's margin relative to the
// projected ARV. Financing costs count only on financed deals. A zero ARV
// yields the zero-valued struct.
func ComputeBreakEven(arv, price, rehab, holding, financing, selling float64, isFinancing bool) BreakEvenAnalysis {
	if arv == 0 {
		return BreakEvenAnalysis{}
	}
	breakEven := price + rehab + holding + selling
	if isFinancing {
		breakEven += financing
	}
	return BreakEvenAnalysis{
		BreakEvenARV:         breakEven,
		RehabCostsMargin:     rehab / arv,
		HoldingCostsMargin:   holding / arv,
		FinancingCostsMargin: financing / arv,
	}
}
