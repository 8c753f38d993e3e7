package timeseries

import (
	"sort"
	"time"

	pkgerrors "github.com/franklinle/skumetrics/pkg/errors"
	"github.com/franklinle/skumetrics/pkg/validate"
	"github.com/shopspring/decimal"
)

// Series is a validated, strictly chronological sequence of daily records.
// Construction is the only way to obtain one, so every aggregation method
// can rely on the ordering invariant.
type Series struct {
	records []DailyRecord
}

// NewSeries validates the raw days and enforces strictly increasing dates.
// Duplicate dates and out-of-order dates are both ORDERING_ERRORs, reported
// distinctly; the caller must re-sort or de-duplicate and retry.
func NewSeries(raws []RawDailyRecord) (*Series, error) {
	records := make([]DailyRecord, 0, len(raws))
	for i, raw := range raws {
		if err := validate.Struct(raw); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid daily record").
				WithDetails(map[string]any{
					"index": i,
					"date":  raw.Date.Format(time.DateOnly),
				})
		}
		if i > 0 {
			prev, curr := dayOf(raws[i-1].Date), dayOf(raw.Date)
			if curr.Equal(prev) {
				return nil, pkgerrors.New(pkgerrors.CodeOrdering, "duplicate date in daily sequence").
					WithDetails(map[string]string{"date": curr.Format(time.DateOnly)})
			}
			if curr.Before(prev) {
				return nil, pkgerrors.New(pkgerrors.CodeOrdering, "dates not in chronological order").
					WithDetails(map[string]string{"date": curr.Format(time.DateOnly)})
			}
		}
		records = append(records, deriveDaily(raw))
	}
	return &Series{records: records}, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Records returns the derived daily records in chronological order.
func (s *Series) Records() []DailyRecord {
	return s.records
}

// Len returns the number of days in the series.
func (s *Series) Len() int {
	return len(s.records)
}

// RunningTotalRow carries the cumulative net profit through each day.
type RunningTotalRow struct {
	Date             time.Time       `json:"date"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	CumulativeProfit decimal.Decimal `json:"cumulative_profit"`
}

// RunningTotals returns the cumulative profit per day. The first row's
// cumulative value equals that day's own profit.
func (s *Series) RunningTotals() []RunningTotalRow {
	rows := make([]RunningTotalRow, 0, len(s.records))
	total := decimal.Zero
	for _, record := range s.records {
		total = total.Add(record.NetProfit)
		rows = append(rows, RunningTotalRow{
			Date:             record.Date,
			NetProfit:        record.NetProfit,
			CumulativeProfit: total,
		})
	}
	return rows
}

// MovingAverageRow carries the trailing means for one day.
type MovingAverageRow struct {
	Date       time.Time       `json:"date"`
	ProfitMA   decimal.Decimal `json:"profit_ma"`
	UnitsMA    decimal.Decimal `json:"units_ma"`
	RevenueMA  decimal.Decimal `json:"revenue_ma"`
	WindowUsed int             `json:"window_used"`
}

// MovingAverages computes trailing means of profit, units and revenue over
// the given window. Days with fewer than window predecessors average over
// the available prefix, so the first window-1 rows use a shorter window
// rather than being undefined.
func (s *Series) MovingAverages(window int) ([]MovingAverageRow, error) {
	if window < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "moving average window must be >= 1").
			WithDetails(map[string]int{"window": window})
	}

	rows := make([]MovingAverageRow, 0, len(s.records))
	profitSum, unitsSum, revenueSum := decimal.Zero, decimal.Zero, decimal.Zero
	for i, record := range s.records {
		profitSum = profitSum.Add(record.NetProfit)
		unitsSum = unitsSum.Add(decimal.NewFromInt(record.UnitsSold))
		revenueSum = revenueSum.Add(record.Revenue)
		if i >= window {
			leaving := s.records[i-window]
			profitSum = profitSum.Sub(leaving.NetProfit)
			unitsSum = unitsSum.Sub(decimal.NewFromInt(leaving.UnitsSold))
			revenueSum = revenueSum.Sub(leaving.Revenue)
		}

		used := window
		if i+1 < window {
			used = i + 1
		}
		divisor := decimal.NewFromInt(int64(used))
		rows = append(rows, MovingAverageRow{
			Date:       record.Date,
			ProfitMA:   profitSum.Div(divisor),
			UnitsMA:    unitsSum.Div(divisor),
			RevenueMA:  revenueSum.Div(divisor),
			WindowUsed: used,
		})
	}
	return rows, nil
}

// WeekBucket is one ISO week's rollup.
type WeekBucket struct {
	ISOYear   int             `json:"iso_year"`
	ISOWeek   int             `json:"iso_week"`
	StartDate time.Time       `json:"start_date"`
	NetProfit decimal.Decimal `json:"net_profit"`
	Revenue   decimal.Decimal `json:"revenue"`
	Units     int64           `json:"units"`
	Days      int             `json:"days"`
}

// WeekBuckets groups the series by (ISO year, ISO week), keyed on both so a
// span crossing a year boundary cannot collide week 1 with week 52. Buckets
// are ordered by that pair; each carries its earliest date as the start.
func (s *Series) WeekBuckets() []WeekBucket {
	type key struct{ year, week int }
	buckets := map[key]*WeekBucket{}
	order := []key{}

	for _, record := range s.records {
		k := key{record.ISOYear, record.ISOWeek}
		bucket, ok := buckets[k]
		if !ok {
			bucket = &WeekBucket{
				ISOYear:   record.ISOYear,
				ISOWeek:   record.ISOWeek,
				StartDate: record.Date,
				NetProfit: decimal.Zero,
				Revenue:   decimal.Zero,
			}
			buckets[k] = bucket
			order = append(order, k)
		}
		if record.Date.Before(bucket.StartDate) {
			bucket.StartDate = record.Date
		}
		bucket.NetProfit = bucket.NetProfit.Add(record.NetProfit)
		bucket.Revenue = bucket.Revenue.Add(record.Revenue)
		bucket.Units += record.UnitsSold
		bucket.Days++
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].year != order[j].year {
			return order[i].year < order[j].year
		}
		return order[i].week < order[j].week
	})

	rows := make([]WeekBucket, 0, len(order))
	for _, k := range order {
		rows = append(rows, *buckets[k])
	}
	return rows
}
