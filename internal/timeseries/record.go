package timeseries

import (
	"time"

	"github.com/franklinle/skumetrics/pkg/validate"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FeeBreakdown itemizes the fees charged against a day's revenue.
type FeeBreakdown struct {
	Platform decimal.Decimal `json:"platform"`
	Shipping decimal.Decimal `json:"shipping"`
	Other    decimal.Decimal `json:"other"`
}

// Total sums the fee components.
func (f FeeBreakdown) Total() decimal.Decimal {
	return f.Platform.Add(f.Shipping).Add(f.Other)
}

// RawDailyRecord is one already-parsed day of sales as delivered by the
// ingestion collaborator.
type RawDailyRecord struct {
	Date      time.Time       `json:"date" validate:"required"`
	Revenue   decimal.Decimal `json:"revenue"`
	COGS      decimal.Decimal `json:"cogs"`
	Fees      FeeBreakdown    `json:"fees"`
	UnitsSold int64           `json:"units_sold" validate:"gte=0"`
	Orders    int64           `json:"orders" validate:"gte=0"`
	Refunds   int64           `json:"refunds" validate:"gte=0"`
	Sessions  int64           `json:"sessions" validate:"gte=0"`
}

func init() {
	validate.RegisterStructValidation(rawDailyRules, RawDailyRecord{})
}

func rawDailyRules(sl validator.StructLevel) {
	raw := sl.Current().Interface().(RawDailyRecord)
	if raw.Revenue.IsNegative() {
		sl.ReportError(raw.Revenue, "revenue", "Revenue", "nonnegative", "")
	}
	if raw.COGS.IsNegative() {
		sl.ReportError(raw.COGS, "cogs", "COGS", "nonnegative", "")
	}
	if raw.Fees.Platform.IsNegative() || raw.Fees.Shipping.IsNegative() || raw.Fees.Other.IsNegative() {
		sl.ReportError(raw.Fees, "fees", "Fees", "nonnegative", "")
	}
}

// DailyRecord is an enriched day. Derived fields are computed once when the
// series is built; window-dependent values (moving averages, running totals)
// live on report rows, not here, because they are only valid for a complete
// ordered sequence.
type DailyRecord struct {
	Date      time.Time       `json:"date"`
	Revenue   decimal.Decimal `json:"revenue"`
	COGS      decimal.Decimal `json:"cogs"`
	Fees      FeeBreakdown    `json:"fees"`
	UnitsSold int64           `json:"units_sold"`
	Orders    int64           `json:"orders"`
	Refunds   int64           `json:"refunds"`
	Sessions  int64           `json:"sessions"`

	NetProfit         decimal.Decimal `json:"net_profit"`
	MarginPct         decimal.Decimal `json:"margin_pct"`
	ConversionRatePct decimal.Decimal `json:"conversion_rate_pct"`
	ISOYear           int             `json:"iso_year"`
	ISOWeek           int             `json:"iso_week"`
	Weekday           string          `json:"day_of_week"`
}

func deriveDaily(raw RawDailyRecord) DailyRecord {
	record := DailyRecord{
		Date:      raw.Date,
		Revenue:   raw.Revenue,
		COGS:      raw.COGS,
		Fees:      raw.Fees,
		UnitsSold: raw.UnitsSold,
		Orders:    raw.Orders,
		Refunds:   raw.Refunds,
		Sessions:  raw.Sessions,
	}
	record.NetProfit = raw.Revenue.Sub(raw.COGS).Sub(raw.Fees.Total())
	record.MarginPct = percentOf(record.NetProfit, raw.Revenue)
	record.ConversionRatePct = percentOf(decimal.NewFromInt(raw.Orders), decimal.NewFromInt(raw.Sessions))
	record.ISOYear, record.ISOWeek = raw.Date.ISOWeek()
	record.Weekday = raw.Date.Weekday().String()
	return record
}

func percentOf(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Mul(hundred)
}
