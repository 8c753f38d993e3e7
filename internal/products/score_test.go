package products

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func scoreRecord(profit string, units int64, roi, margin string) *ProductRecord {
	return &ProductRecord{
		NetProfit: decimal.RequireFromString(profit),
		UnitsSold: units,
		ROIPct:    decimal.RequireFromString(roi),
		MarginPct: decimal.RequireFromString(margin),
	}
}

func TestProfitLadderFirstMatchWins(t *testing.T) {
	tests := []struct {
		name   string
		profit string
		adj    int
	}{
		{"above top band", "500.01", 20},
		{"exactly 500 drops to next band", "500", 15},
		{"above 200", "201", 15},
		{"exactly 200 drops to next band", "200", 10},
		{"above 100", "150", 10},
		{"exactly 100 drops to next band", "100", 5},
		{"above 50", "51", 5},
		{"exactly 50 contributes nothing", "50", 0},
		{"between 0 and 50 contributes nothing", "10", 0},
		{"zero contributes nothing", "0", 0},
		{"negative penalized", "-0.01", -15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.adj, profitAdjustment(decimal.RequireFromString(tt.profit)))
		})
	}
}

func TestVelocityLadder(t *testing.T) {
	tests := []struct {
		units int64
		adj   int
	}{
		{51, 15},
		{50, 10},
		{26, 10},
		{25, 5},
		{11, 5},
		{10, 0},
		{1, 0},
		{0, -10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.adj, velocityAdjustment(tt.units), "units=%d", tt.units)
	}
}

func TestROILadder(t *testing.T) {
	tests := []struct {
		roi string
		adj int
	}{
		{"50.5", 10},
		{"50", 5},
		{"25.5", 5},
		{"25", 0},
		{"0", 0},
		{"-1", -10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.adj, roiAdjustment(decimal.RequireFromString(tt.roi)), "roi=%s", tt.roi)
	}
}

func TestMarginLadder(t *testing.T) {
	tests := []struct {
		margin string
		adj    int
	}{
		{"20.5", 5},
		{"20", 0},
		{"5", 0},
		{"4.99", -5},
		{"-3", -5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.adj, marginAdjustment(decimal.RequireFromString(tt.margin)), "margin=%s", tt.margin)
	}
}

func TestHealthScoreExtremes(t *testing.T) {
	best := scoreRecord("600", 60, "60", "25")
	assert.Equal(t, 100, HealthScore(best))

	worst := scoreRecord("-10", 0, "-5", "-5")
	assert.Equal(t, 10, HealthScore(worst))
}

func TestHealthScoreAlwaysInRange(t *testing.T) {
	profits := []string{"-100", "0", "60", "150", "250", "600"}
	units := []int64{0, 5, 15, 30, 60}
	rois := []string{"-20", "0", "30", "60"}
	margins := []string{"-5", "3", "10", "25"}

	for _, p := range profits {
		for _, u := range units {
			for _, r := range rois {
				for _, m := range margins {
					score := HealthScore(scoreRecord(p, u, r, m))
					assert.GreaterOrEqual(t, score, 0)
					assert.LessOrEqual(t, score, 100)
				}
			}
		}
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, clampScore(-5))
	assert.Equal(t, 100, clampScore(105))
	assert.Equal(t, 42, clampScore(42))
}
