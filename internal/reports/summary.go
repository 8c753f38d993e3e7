package reports

import (
	"github.com/franklinle/skumetrics/internal/products"
	"github.com/shopspring/decimal"
)

// PortfolioSummary aggregates the headline numbers across all enriched
// records.
type PortfolioSummary struct {
	ActiveSKUs     int             `json:"active_skus"`
	TotalUnits     int64           `json:"total_units"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	AvgMarginPct   decimal.Decimal `json:"avg_margin_pct"`
	AvgDailyProfit decimal.Decimal `json:"avg_daily_profit"`
}

// Summarize totals units, revenue and profit and derives the aggregate
// margin. days is the length of the covered daily sequence; when it is
// unknown (<= 0) the average daily profit reports zero.
func Summarize(records []*products.ProductRecord, days int) PortfolioSummary {
	summary := PortfolioSummary{
		ActiveSKUs:     len(records),
		TotalRevenue:   decimal.Zero,
		TotalProfit:    decimal.Zero,
		AvgMarginPct:   decimal.Zero,
		AvgDailyProfit: decimal.Zero,
	}
	for _, record := range records {
		summary.TotalUnits += record.UnitsSold
		summary.TotalRevenue = summary.TotalRevenue.Add(record.Revenue)
		summary.TotalProfit = summary.TotalProfit.Add(record.NetProfit)
	}
	if !summary.TotalRevenue.IsZero() {
		summary.AvgMarginPct = summary.TotalProfit.Div(summary.TotalRevenue).Mul(hundred)
	}
	if days > 0 {
		summary.AvgDailyProfit = summary.TotalProfit.Div(decimal.NewFromInt(int64(days)))
	}
	return summary
}
