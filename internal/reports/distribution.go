package reports

import (
	"sort"

	"github.com/franklinle/skumetrics/internal/products"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DistributionRow is one group's share of the portfolio.
type DistributionRow struct {
	Label          string          `json:"label"`
	Count          int             `json:"count"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	PctOfPortfolio decimal.Decimal `json:"pct_of_portfolio"`
	PctOfProfit    decimal.Decimal `json:"pct_of_profit"`
}

type groupAccumulator struct {
	count  int
	profit decimal.Decimal
}

// ByTier computes each performance tier's share of record count and profit.
// Rows come out in tier order, best first; tiers with no records are omitted.
func ByTier(records []*products.ProductRecord) []DistributionRow {
	groups := collect(records, func(r *products.ProductRecord) string {
		return string(r.Tier)
	})
	rows := share(groups, records)

	order := map[string]int{}
	for i, tier := range products.Tiers {
		order[string(tier)] = i
	}
	sort.Slice(rows, func(i, j int) bool {
		return order[rows[i].Label] < order[rows[j].Label]
	})
	return rows
}

// ByCategory computes each category's share of record count and profit.
// Rows are ordered by profit, highest first, with the label as tie-break.
func ByCategory(records []*products.ProductRecord) []DistributionRow {
	groups := collect(records, func(r *products.ProductRecord) string {
		return r.Category
	})
	rows := share(groups, records)

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].NetProfit.Equal(rows[j].NetProfit) {
			return rows[i].NetProfit.GreaterThan(rows[j].NetProfit)
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// collect is pass one: per-group count and profit sums.
func collect(records []*products.ProductRecord, labelOf func(*products.ProductRecord) string) map[string]*groupAccumulator {
	groups := map[string]*groupAccumulator{}
	for _, record := range records {
		label := labelOf(record)
		group, ok := groups[label]
		if !ok {
			group = &groupAccumulator{profit: decimal.Zero}
			groups[label] = group
		}
		group.count++
		group.profit = group.profit.Add(record.NetProfit)
	}
	return groups
}

// share is pass two: divide each group by grand totals computed over the
// same record set, so the group percentages sum to 100.
func share(groups map[string]*groupAccumulator, records []*products.ProductRecord) []DistributionRow {
	totalCount := decimal.NewFromInt(int64(len(records)))
	totalProfit := decimal.Zero
	for _, record := range records {
		totalProfit = totalProfit.Add(record.NetProfit)
	}

	rows := make([]DistributionRow, 0, len(groups))
	for label, group := range groups {
		row := DistributionRow{
			Label:          label,
			Count:          group.count,
			NetProfit:      group.profit,
			PctOfPortfolio: decimal.Zero,
			PctOfProfit:    decimal.Zero,
		}
		if !totalCount.IsZero() {
			row.PctOfPortfolio = decimal.NewFromInt(int64(group.count)).Div(totalCount).Mul(hundred)
		}
		if !totalProfit.IsZero() {
			row.PctOfProfit = group.profit.Div(totalProfit).Mul(hundred)
		}
		rows = append(rows, row)
	}
	return rows
}
