package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/franklinle/skumetrics/internal/analytics"
	"github.com/franklinle/skumetrics/internal/products"
	"github.com/franklinle/skumetrics/internal/timeseries"
	"github.com/franklinle/skumetrics/pkg/config"
	pkgerrors "github.com/franklinle/skumetrics/pkg/errors"
	"github.com/franklinle/skumetrics/pkg/logger"
	"github.com/franklinle/skumetrics/pkg/metrics"
)

// input is the already-parsed record batch handed over by the ingestion
// side. Serialization stays out here at the caller boundary; the core only
// sees structured records.
type input struct {
	Products []products.RawProductRecord `json:"products"`
	Daily    []timeseries.RawDailyRecord `json:"daily"`
}

type output struct {
	Products      *analytics.EnrichResult       `json:"products"`
	Daily         *analytics.DailyReport        `json:"daily,omitempty"`
	Distributions *analytics.DistributionReport `json:"distributions"`
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "skumetrics"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "skumetrics",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})

	inputPath := flag.String("input", "", "path to the JSON batch; stdin when empty")
	flag.Parse()

	pipelineMetrics := metrics.NewPipelineMetrics(prometheus.DefaultRegisterer)
	service, err := analytics.NewService(cfg.Analytics, logg, pipelineMetrics)
	requireResource(ctx, logg, "analytics service", err)

	batch, err := readBatch(*inputPath)
	requireResource(ctx, logg, "input batch", err)

	enriched, err := service.EnrichProducts(ctx, batch.Products)
	requireResource(ctx, logg, "product enrichment", err)

	result := output{Products: enriched}

	days := 0
	if len(batch.Daily) > 0 {
		daily, err := service.DailyReport(ctx, batch.Daily)
		requireResource(ctx, logg, "daily report", err)
		result.Daily = daily
		days = daily.Days
	}

	distributions, err := service.Distributions(ctx, enriched.Records, days)
	requireResource(ctx, logg, "distribution report", err)
	result.Distributions = distributions

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		logg.Error(ctx, "failed to encode report", err)
		os.Exit(1)
	}
}

func readBatch(path string) (*input, error) {
	var reader io.Reader = os.Stdin
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader = file
	}

	var batch input
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

func requireResource(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	ctx = logg.WithFields(ctx, map[string]any{
		"resource":  name,
		"retryable": exitCodeFor(err) == exitCodeRetryable,
	})
	logg.Error(ctx, "startup requirement failed", err)
	os.Exit(exitCodeFor(err))
}

const (
	exitCodeFailure   = 1
	exitCodeRetryable = 2
)

// exitCodeFor distinguishes failures worth retrying after the caller fixes
// the input (re-sort, de-duplicate) from terminal ones, per the error
// code's metadata.
func exitCodeFor(err error) int {
	if typed := pkgerrors.As(err); typed != nil && pkgerrors.MetadataFor(typed.Code()).Retryable {
		return exitCodeRetryable
	}
	return exitCodeFailure
}
