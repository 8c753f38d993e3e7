package products

import "github.com/shopspring/decimal"

const baseScore = 50

var (
	dec5   = decimal.NewFromInt(5)
	dec20  = decimal.NewFromInt(20)
	dec25  = decimal.NewFromInt(25)
	dec50  = decimal.NewFromInt(50)
	dec100 = decimal.NewFromInt(100)
	dec200 = decimal.NewFromInt(200)
	dec500 = decimal.NewFromInt(500)
)

// profitBands is walked top-down; only the first matching band applies.
var profitBands = []struct {
	above decimal.Decimal
	adj   int
}{
	{dec500, 20},
	{dec200, 15},
	{dec100, 10},
	{dec50, 5},
}

// HealthScore composes the four dimension adjustments onto the base score
// and clamps to [0,100]. The ladders are non-stacking: each dimension
// contributes exactly one adjustment, decided by the highest threshold it
// clears.
func HealthScore(r *ProductRecord) int {
	score := baseScore
	score += profitAdjustment(r.NetProfit)
	score += velocityAdjustment(r.UnitsSold)
	score += roiAdjustment(r.ROIPct)
	score += marginAdjustment(r.MarginPct)
	return clampScore(score)
}

func profitAdjustment(netProfit decimal.Decimal) int {
	for _, band := range profitBands {
		if netProfit.GreaterThan(band.above) {
			return band.adj
		}
	}
	if netProfit.IsNegative() {
		return -15
	}
	return 0
}

func velocityAdjustment(units int64) int {
	switch {
	case units > 50:
		return 15
	case units > 25:
		return 10
	case units > 10:
		return 5
	case units == 0:
		return -10
	}
	return 0
}

func roiAdjustment(roiPct decimal.Decimal) int {
	switch {
	case roiPct.GreaterThan(dec50):
		return 10
	case roiPct.GreaterThan(dec25):
		return 5
	case roiPct.IsNegative():
		return -10
	}
	return 0
}

func marginAdjustment(marginPct decimal.Decimal) int {
	switch {
	case marginPct.GreaterThan(dec20):
		return 5
	case marginPct.LessThan(dec5):
		return -5
	}
	return 0
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
