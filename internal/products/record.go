package products

import (
	"github.com/franklinle/skumetrics/pkg/validate"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Tier classifies a product by its health score.
type Tier string

const (
	TierStar    Tier = "Star"
	TierStrong  Tier = "Strong"
	TierAverage Tier = "Average"
	TierWeak    Tier = "Weak"
)

// Tiers lists all tiers in display order, best first.
var Tiers = []Tier{TierStar, TierStrong, TierAverage, TierWeak}

// RawProductRecord is one already-parsed product row as delivered by the
// ingestion collaborator. Category arrives resolved; no classification
// happens here.
type RawProductRecord struct {
	SKU       string          `json:"sku" validate:"required"`
	Category  string          `json:"category" validate:"required"`
	UnitsSold int64           `json:"units_sold" validate:"gte=0"`
	Refunds   int64           `json:"refunds" validate:"gte=0"`
	Revenue   decimal.Decimal `json:"revenue"`
	COGS      decimal.Decimal `json:"cogs"`
	Fees      decimal.Decimal `json:"fees"`
	Sessions  int64           `json:"sessions" validate:"gte=0"`
}

func init() {
	validate.RegisterStructValidation(rawProductRules, RawProductRecord{})
}

// rawProductRules covers what field tags cannot: decimal sign checks and
// the refunds ≤ units invariant.
func rawProductRules(sl validator.StructLevel) {
	raw := sl.Current().Interface().(RawProductRecord)
	if raw.Revenue.IsNegative() {
		sl.ReportError(raw.Revenue, "revenue", "Revenue", "nonnegative", "")
	}
	if raw.COGS.IsNegative() {
		sl.ReportError(raw.COGS, "cogs", "COGS", "nonnegative", "")
	}
	if raw.Fees.IsNegative() {
		sl.ReportError(raw.Fees, "fees", "Fees", "nonnegative", "")
	}
	if raw.Refunds > raw.UnitsSold {
		sl.ReportError(raw.Refunds, "refunds", "Refunds", "refunds_lte_units", "")
	}
}

// ProductRecord is an enriched product row. Derived fields are computed once
// by Derive and never mutated afterwards.
type ProductRecord struct {
	SKU       string          `json:"sku"`
	Category  string          `json:"category"`
	UnitsSold int64           `json:"units_sold"`
	Refunds   int64           `json:"refunds"`
	Revenue   decimal.Decimal `json:"revenue"`
	COGS      decimal.Decimal `json:"cogs"`
	Fees      decimal.Decimal `json:"fees"`
	Sessions  int64           `json:"sessions"`

	NetProfit     decimal.Decimal `json:"net_profit"`
	MarginPct     decimal.Decimal `json:"margin_pct"`
	ROIPct        decimal.Decimal `json:"roi_pct"`
	RefundRatePct decimal.Decimal `json:"refund_rate_pct"`
	ProfitPerUnit decimal.Decimal `json:"profit_per_unit"`
	AvgSalePrice  decimal.Decimal `json:"avg_sale_price"`
	HealthScore   int             `json:"health_score"`
	Tier          Tier            `json:"performance_tier"`
}
