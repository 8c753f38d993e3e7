package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/franklinle/skumetrics/internal/products"
	"github.com/franklinle/skumetrics/internal/reports"
	"github.com/franklinle/skumetrics/internal/timeseries"
	"github.com/franklinle/skumetrics/pkg/config"
	pkgerrors "github.com/franklinle/skumetrics/pkg/errors"
	"github.com/franklinle/skumetrics/pkg/logger"
	"github.com/franklinle/skumetrics/pkg/metrics"
	"github.com/google/uuid"
)

// Service runs the derivation and aggregation pipeline over in-memory
// record collections.
type Service interface {
	// EnrichProducts derives metrics, score and tier per record. Invalid
	// records are rejected individually; the batch never aborts on them.
	EnrichProducts(ctx context.Context, raws []products.RawProductRecord) (*EnrichResult, error)
	// DailyReport builds every time-series report over an ordered daily
	// sequence. Ordering violations are fatal to the call.
	DailyReport(ctx context.Context, raws []timeseries.RawDailyRecord) (*DailyReport, error)
	// Distributions builds the tier/category shares, the portfolio summary
	// and the refund-rate outlier flags. days sizes the average-daily-profit
	// figure and may be zero when no daily sequence accompanies the records.
	Distributions(ctx context.Context, records []*products.ProductRecord, days int) (*DistributionReport, error)
}

type service struct {
	cfg     config.AnalyticsConfig
	logg    *logger.Logger
	metrics *metrics.PipelineMetrics
}

// NewService builds the analytics service. Metrics may be nil; logging may
// not.
func NewService(cfg config.AnalyticsConfig, logg *logger.Logger, pipelineMetrics *metrics.PipelineMetrics) (Service, error) {
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.MovingAverageWindow < 1 {
		return nil, fmt.Errorf("moving average window must be >= 1, got %d", cfg.MovingAverageWindow)
	}
	if cfg.OutlierStddevMultiplier <= 0 {
		return nil, fmt.Errorf("outlier stddev multiplier must be positive, got %f", cfg.OutlierStddevMultiplier)
	}
	return &service{
		cfg:     cfg,
		logg:    logg,
		metrics: pipelineMetrics,
	}, nil
}

// RejectedRecord reports one record that failed validation.
type RejectedRecord struct {
	SKU     string `json:"sku"`
	Reason  string `json:"reason"`
	Details any    `json:"details,omitempty"`
}

// EnrichResult carries the enriched records plus the per-record rejects.
type EnrichResult struct {
	Records  []*products.ProductRecord `json:"records"`
	Rejected []RejectedRecord          `json:"rejected,omitempty"`
}

func (s *service) EnrichProducts(ctx context.Context, raws []products.RawProductRecord) (*EnrichResult, error) {
	ctx = s.logg.WithRunID(ctx, uuid.NewString())

	result := &EnrichResult{Records: make([]*products.ProductRecord, 0, len(raws))}
	for _, raw := range raws {
		record, err := products.Derive(raw)
		if err != nil {
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				s.logg.Error(ctx, "derive failed", err)
				return nil, err
			}
			s.metrics.IncRejected(string(typed.Code()))
			s.logg.Warn(s.logg.WithSKU(ctx, raw.SKU), "record rejected by validation")
			result.Rejected = append(result.Rejected, RejectedRecord{
				SKU:     raw.SKU,
				Reason:  typed.Message(),
				Details: typed.Details(),
			})
			continue
		}
		s.metrics.IncDerived()
		result.Records = append(result.Records, record)
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"enriched": len(result.Records),
		"rejected": len(result.Rejected),
	}), "product enrichment complete")
	return result, nil
}

// DailyReport bundles every report over one daily sequence.
type DailyReport struct {
	Days           int                           `json:"days"`
	Window         int                           `json:"window"`
	Daily          []timeseries.DailyRecord      `json:"daily"`
	RunningTotals  []timeseries.RunningTotalRow  `json:"running_totals"`
	MovingAverages []timeseries.MovingAverageRow `json:"moving_averages"`
	WeekBuckets    []timeseries.WeekBucket       `json:"week_buckets"`
	WeekOverWeek   []timeseries.WeekDelta        `json:"week_over_week"`
	WeekdayPattern []timeseries.WeekdayRow       `json:"weekday_pattern"`
}

func (s *service) DailyReport(ctx context.Context, raws []timeseries.RawDailyRecord) (*DailyReport, error) {
	ctx = s.logg.WithRunID(ctx, uuid.NewString())
	start := time.Now()

	series, err := timeseries.NewSeries(raws)
	if err != nil {
		s.logg.Error(ctx, "daily sequence rejected", err)
		return nil, err
	}

	averages, err := series.MovingAverages(s.cfg.MovingAverageWindow)
	if err != nil {
		return nil, err
	}

	buckets := series.WeekBuckets()
	report := &DailyReport{
		Days:           series.Len(),
		Window:         s.cfg.MovingAverageWindow,
		Daily:          series.Records(),
		RunningTotals:  series.RunningTotals(),
		MovingAverages: averages,
		WeekBuckets:    buckets,
		WeekOverWeek:   timeseries.WeekOverWeek(buckets),
		WeekdayPattern: timeseries.WeekdayPattern(series),
	}

	s.metrics.ObserveReportDuration("daily", time.Since(start))
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"days":  report.Days,
		"weeks": len(report.WeekBuckets),
	}), "daily report built")
	return report, nil
}

// DistributionReport bundles the share-of-whole views over enriched records.
type DistributionReport struct {
	ByTier         []reports.DistributionRow `json:"by_tier"`
	ByCategory     []reports.DistributionRow `json:"by_category"`
	Summary        reports.PortfolioSummary  `json:"summary"`
	RefundOutliers []products.RefundOutlier  `json:"refund_outliers"`
}

func (s *service) Distributions(ctx context.Context, records []*products.ProductRecord, days int) (*DistributionReport, error) {
	ctx = s.logg.WithRunID(ctx, uuid.NewString())
	start := time.Now()

	outliers, err := products.RefundOutliers(records, s.cfg.OutlierStddevMultiplier)
	if err != nil {
		if !pkgerrors.HasCode(err, pkgerrors.CodeInsufficientData) {
			return nil, err
		}
		// Too few refunded records to establish a baseline: no outliers.
		s.logg.Info(ctx, "refund outlier baseline too small, reporting none")
		outliers = []products.RefundOutlier{}
	}

	report := &DistributionReport{
		ByTier:         reports.ByTier(records),
		ByCategory:     reports.ByCategory(records),
		Summary:        reports.Summarize(records, days),
		RefundOutliers: outliers,
	}

	s.metrics.ObserveReportDuration("distribution", time.Since(start))
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"records":  len(records),
		"outliers": len(outliers),
	}), "distribution report built")
	return report, nil
}
