package engine

import (
	"math"
	"testing"
)

const tolerance = 0.01

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestCashFlowFormulas(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"selling costs at default 6%", SellingCosts(200000, DefaultSellingCostRate), 12000},
		{"sale proceeds", SaleProceeds(200000, 12000), 188000},
		{"total profit", TotalProfit(188000, 150000), 38000},
		{"down payment at default 20%", DownPayment(300000, DefaultDownPaymentRate), 60000},
		{"capital needed", CapitalNeeded(150000, 60000), 90000},
		{"rehab duration 90 days", RehabDurationMonths(90), 3},
		{"rehab cost at default $50/sqft", RehabCost(2000, DefaultRehabCostPerSqft), 100000},
		{"post-tax profit at default 25%", PostTaxProfit(40000, DefaultTaxRate), 30000},
		{"negative profit propagates", TotalProfit(100000, 150000), -50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !almostEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestReturnFormulas(t *testing.T) {
	if got := TotalROI(38000, 150000); math.Abs(got-0.2533) > 0.0001 {
		t.Errorf("TotalROI = %v, want 0.2533", got)
	}
	if got := AnnualizedROI(0.24, 6); !almostEqual(got, 0.48) {
		t.Errorf("AnnualizedROI = %v, want 0.48", got)
	}
	if got := ReturnOnEquity(26500, 110000); math.Abs(got-0.2409) > 0.0001 {
		t.Errorf("ReturnOnEquity = %v, want 0.2409", got)
	}
}

// Every ratio-producing formula returns 0 on a zero denominator, never
// NaN or Inf.
func TestZeroDenominatorGuards(t *testing.T) {
	tests := []struct {
		name string
		got  float64
	}{
		{"TotalROI", TotalROI(100, 0)},
		{"AnnualizedROI", AnnualizedROI(0.5, 0)},
		{"LoanToValueRatio", LoanToValueRatio(200000, 0)},
		{"DebtToIncomeRatio", DebtToIncomeRatio(500, 1400, 0)},
		{"LoanToCostRatio", LoanToCostRatio(200000, 0, 0)},
		{"ReturnOnEquity", ReturnOnEquity(10000, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != 0 {
				t.Errorf("got %v, want 0", tt.got)
			}
			if math.IsNaN(tt.got) || math.IsInf(tt.got, 0) {
				t.Errorf("got non-finite value %v", tt.got)
			}
		})
	}

	be := ComputeBreakEven(0, 250000, 50000, 1000, 2500, 21000, true)
	if be != (BreakEvenAnalysis{}) {
		t.Errorf("ComputeBreakEven with zero ARV = %+v, want zero struct", be)
	}
}

// sellingCosts(arv, p) must be exactly arv * p across the valid range.
func TestSellingCostsLinearity(t *testing.T) {
	arvs := []float64{0, 1, 99999.99, 200000, 1250000}
	rates := []float64{0, 0.01, 0.06, 0.5, 1.0}
	for _, arv := range arvs {
		for _, rate := range rates {
			if got := SellingCosts(arv, rate); got != arv*rate {
				t.Errorf("SellingCosts(%v, %v) = %v, want %v", arv, rate, got, arv*rate)
			}
		}
	}
}

func TestMonthlyMortgagePayment(t *testing.T) {
	tests := []struct {
		name       string
		loan       float64
		annualRate float64
		years      float64
		want       float64
		tol        float64
	}{
		{"200k at 7.5% over 30y", 200000, 0.075, 30, 1398.43, 0.5},
		{"100k at 6% over 15y", 100000, 0.06, 15, 843.86, 0.5},
		{"zero loan", 0, 0.075, 30, 0, 0},
		{"zero rate", 200000, 0, 30, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyMortgagePayment(tt.loan, tt.annualRate, tt.years)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// The amortized full-term figure and the holding-period simple-interest
// figure are different quantities and must stay that way.
func TestInterestVariantsDiffer(t *testing.T) {
	loan := 200000.0
	rate := 0.075
	payment := MonthlyMortgagePayment(loan, rate, 30)

	amortized := AmortizedTotalInterest(payment, 30, loan)
	simple := HoldingPeriodSimpleInterest(loan, rate, 2)

	// 30 years of amortized interest on 200k at 7.5% is roughly 303k.
	if amortized < 250000 || amortized > 350000 {
		t.Errorf("AmortizedTotalInterest = %v, out of plausible range", amortized)
	}
	if !almostEqual(simple, 2500) {
		t.Errorf("HoldingPeriodSimpleInterest = %v, want 2500", simple)
	}
	if almostEqual(amortized, simple) {
		t.Error("amortized and simple interest collapsed to the same value")
	}
}

func TestLoanRatios(t *testing.T) {
	if got := LoanAmount(250000, 0.20); !almostEqual(got, 200000) {
		t.Errorf("LoanAmount = %v, want 200000", got)
	}
	if got := LoanToValueRatio(200000, 350000); math.Abs(got-0.5714) > 0.0001 {
		t.Errorf("LoanToValueRatio = %v, want 0.5714", got)
	}
	if got := LoanToCostRatio(200000, 250000, 50000); math.Abs(got-0.6667) > 0.0001 {
		t.Errorf("LoanToCostRatio = %v, want 0.6667", got)
	}
	if got := DebtToIncomeRatio(500, 1400, 8000); math.Abs(got-0.2375) > 0.0001 {
		t.Errorf("DebtToIncomeRatio = %v, want 0.2375", got)
	}
	if got := TotalLoanCosts(2500, 1850); !almostEqual(got, 4350) {
		t.Errorf("TotalLoanCosts = %v, want 4350", got)
	}
}

func TestCheckSeventyPercentRule(t *testing.T) {
	tests := []struct {
		name       string
		arv        float64
		repairs    float64
		price      float64
		wantMax    float64
		wantPasses bool
	}{
		{"comfortably under", 300000, 10000, 150000, 200000, true},
		{"exactly at boundary", 300000, 10000, 200000, 200000, true},
		{"just over boundary", 300000, 10000, 200000.01, 200000, false},
		{"repairs exceed the cap", 100000, 80000, 5000, -10000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckSeventyPercentRule(tt.arv, tt.repairs, tt.price)
			if !almostEqual(got.MaxPurchasePrice, tt.wantMax) {
				t.Errorf("MaxPurchasePrice = %v, want %v", got.MaxPurchasePrice, tt.wantMax)
			}
			if got.Passes != tt.wantPasses {
				t.Errorf("Passes = %v, want %v", got.Passes, tt.wantPasses)
			}
			// The contract is exact: passes iff price <= arv*0.70 - repairs.
			if want := tt.price <= tt.arv*0.70-tt.repairs; got.Passes != want {
				t.Errorf("Passes = %v, contradicts exact boundary %v", got.Passes, want)
			}
		})
	}
}

func TestComputeBreakEven(t *testing.T) {
	be := ComputeBreakEven(350000, 250000, 50000, 1000, 2500, 21000, true)
	if !almostEqual(be.BreakEvenARV, 324500) {
		t.Errorf("BreakEvenARV = %v, want 324500", be.BreakEvenARV)
	}
	if math.Abs(be.RehabCostsMargin-50000.0/350000) > 0.0001 {
		t.Errorf("RehabCostsMargin = %v", be.RehabCostsMargin)
	}
	if math.Abs(be.HoldingCostsMargin-1000.0/350000) > 0.0001 {
		t.Errorf("HoldingCostsMargin = %v", be.HoldingCostsMargin)
	}
	if math.Abs(be.FinancingCostsMargin-2500.0/350000) > 0.0001 {
		t.Errorf("FinancingCostsMargin = %v", be.FinancingCostsMargin)
	}

	// Cash deal: financing costs do not move the break-even point.
	cash := ComputeBreakEven(350000, 250000, 50000, 1000, 2500, 21000, false)
	if !almostEqual(cash.BreakEvenARV, 322000) {
		t.Errorf("cash BreakEvenARV = %v, want 322000", cash.BreakEvenARV)
	}
}
