package products

import (
	"github.com/franklinle/skumetrics/pkg/validate"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Derive validates a raw record and returns the enriched ProductRecord.
// Every ratio with a zero denominator resolves to exactly zero; downstream
// aggregation relies on that, so none of the derived fields are ever
// undefined.
func Derive(raw RawProductRecord) (*ProductRecord, error) {
	if err := validate.Struct(raw); err != nil {
		return nil, err
	}

	record := &ProductRecord{
		SKU:       raw.SKU,
		Category:  raw.Category,
		UnitsSold: raw.UnitsSold,
		Refunds:   raw.Refunds,
		Revenue:   raw.Revenue,
		COGS:      raw.COGS,
		Fees:      raw.Fees,
		Sessions:  raw.Sessions,
	}

	record.NetProfit = raw.Revenue.Sub(raw.COGS).Sub(raw.Fees)
	record.MarginPct = percentOf(record.NetProfit, raw.Revenue)
	record.ROIPct = percentOf(record.NetProfit, raw.COGS.Abs())

	units := decimal.NewFromInt(raw.UnitsSold)
	record.RefundRatePct = percentOf(decimal.NewFromInt(raw.Refunds), units)
	record.ProfitPerUnit = ratioOf(record.NetProfit, units)
	record.AvgSalePrice = ratioOf(raw.Revenue, units)

	record.HealthScore = HealthScore(record)
	record.Tier = TierFor(record.HealthScore)

	return record, nil
}

func percentOf(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Mul(hundred)
}

func ratioOf(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator)
}
