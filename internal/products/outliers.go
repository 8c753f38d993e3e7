package products

import (
	"math"

	pkgerrors "github.com/franklinle/skumetrics/pkg/errors"
	"github.com/shopspring/decimal"
)

// RefundOutlier flags a product whose refund rate exceeds the statistical
// threshold computed over the non-zero-rate baseline.
type RefundOutlier struct {
	SKU           string          `json:"sku"`
	Category      string          `json:"category"`
	RefundRatePct decimal.Decimal `json:"refund_rate_pct"`
	Threshold     decimal.Decimal `json:"threshold"`
}

// RefundOutliers returns the records whose refund rate exceeds
// mean + multiplier*stddev of the refund rates of records that have any
// refunds at all. Stddev is the population definition. Fewer than 2
// baseline records yields an INSUFFICIENT_DATA error; callers that can
// degrade map it to "no outliers".
func RefundOutliers(records []*ProductRecord, multiplier float64) ([]RefundOutlier, error) {
	baseline := make([]float64, 0, len(records))
	for _, record := range records {
		if record.RefundRatePct.IsPositive() {
			baseline = append(baseline, record.RefundRatePct.InexactFloat64())
		}
	}
	if len(baseline) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientData, "fewer than 2 records with refunds").
			WithDetails(map[string]int{"baseline_records": len(baseline)})
	}

	mean := meanOf(baseline)
	threshold := decimal.NewFromFloat(mean + multiplier*populationStddev(baseline, mean))

	outliers := make([]RefundOutlier, 0)
	for _, record := range records {
		if record.RefundRatePct.GreaterThan(threshold) {
			outliers = append(outliers, RefundOutlier{
				SKU:           record.SKU,
				Category:      record.Category,
				RefundRatePct: record.RefundRatePct,
				Threshold:     threshold,
			})
		}
	}
	return outliers, nil
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStddev(values []float64, mean float64) float64 {
	var sumSquares float64
	for _, v := range values {
		delta := v - mean
		sumSquares += delta * delta
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}
