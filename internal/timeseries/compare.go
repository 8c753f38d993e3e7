package timeseries

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeekDelta is the week-over-week change for one bucket relative to the
// immediately preceding bucket in (year, week) order.
type WeekDelta struct {
	ISOYear   int              `json:"iso_year"`
	ISOWeek   int              `json:"iso_week"`
	StartDate time.Time        `json:"start_date"`
	NetProfit decimal.Decimal  `json:"net_profit"`
	ChangePct *decimal.Decimal `json:"change_pct"`
}

// WeekOverWeek computes percent change = (curr - prev) / |prev| * 100 for
// each bucket. The first bucket, and any bucket whose predecessor closed at
// exactly zero profit, reports a nil change rather than a division result.
func WeekOverWeek(buckets []WeekBucket) []WeekDelta {
	deltas := make([]WeekDelta, 0, len(buckets))
	for i, bucket := range buckets {
		delta := WeekDelta{
			ISOYear:   bucket.ISOYear,
			ISOWeek:   bucket.ISOWeek,
			StartDate: bucket.StartDate,
			NetProfit: bucket.NetProfit,
		}
		if i > 0 && !buckets[i-1].NetProfit.IsZero() {
			prev := buckets[i-1].NetProfit
			change := bucket.NetProfit.Sub(prev).Div(prev.Abs()).Mul(hundred)
			delta.ChangePct = &change
		}
		deltas = append(deltas, delta)
	}
	return deltas
}

// weekdayOrder fixes report ordering Monday through Sunday regardless of the
// input scan order.
var weekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// WeekdayRow carries per-weekday means across the whole series.
type WeekdayRow struct {
	Weekday          string          `json:"day_of_week"`
	Days             int             `json:"days"`
	AvgProfit        decimal.Decimal `json:"avg_profit"`
	AvgUnits         decimal.Decimal `json:"avg_units"`
	AvgRevenue       decimal.Decimal `json:"avg_revenue"`
	AvgConversionPct decimal.Decimal `json:"avg_conversion_pct"`
}

// WeekdayPattern groups the series by weekday and averages profit, units,
// revenue and conversion per label. Rows come out Monday→Sunday; weekdays
// absent from the data are omitted.
func WeekdayPattern(s *Series) []WeekdayRow {
	type acc struct {
		days       int
		profit     decimal.Decimal
		units      decimal.Decimal
		revenue    decimal.Decimal
		conversion decimal.Decimal
	}
	groups := map[time.Weekday]*acc{}

	for _, record := range s.Records() {
		weekday := record.Date.Weekday()
		group, ok := groups[weekday]
		if !ok {
			group = &acc{
				profit:     decimal.Zero,
				units:      decimal.Zero,
				revenue:    decimal.Zero,
				conversion: decimal.Zero,
			}
			groups[weekday] = group
		}
		group.days++
		group.profit = group.profit.Add(record.NetProfit)
		group.units = group.units.Add(decimal.NewFromInt(record.UnitsSold))
		group.revenue = group.revenue.Add(record.Revenue)
		group.conversion = group.conversion.Add(record.ConversionRatePct)
	}

	rows := make([]WeekdayRow, 0, len(groups))
	for _, weekday := range weekdayOrder {
		group, ok := groups[weekday]
		if !ok {
			continue
		}
		divisor := decimal.NewFromInt(int64(group.days))
		rows = append(rows, WeekdayRow{
			Weekday:          weekday.String(),
			Days:             group.days,
			AvgProfit:        group.profit.Div(divisor),
			AvgUnits:         group.units.Div(divisor),
			AvgRevenue:       group.revenue.Div(divisor),
			AvgConversionPct: group.conversion.Div(divisor),
		})
	}
	return rows
}
