package timeseries

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucket(year, week int, profit string) WeekBucket {
	return WeekBucket{
		ISOYear:   year,
		ISOWeek:   week,
		NetProfit: decimal.RequireFromString(profit),
	}
}

func TestWeekOverWeekDeltas(t *testing.T) {
	deltas := WeekOverWeek([]WeekBucket{
		bucket(2025, 14, "100"),
		bucket(2025, 15, "150"),
		bucket(2025, 16, "0"),
		bucket(2025, 17, "50"),
	})
	require.Len(t, deltas, 4)

	assert.Nil(t, deltas[0].ChangePct, "first week has no predecessor")

	require.NotNil(t, deltas[1].ChangePct)
	assert.True(t, deltas[1].ChangePct.Equal(decimal.RequireFromString("50")), "change %s", deltas[1].ChangePct)

	require.NotNil(t, deltas[2].ChangePct)
	assert.True(t, deltas[2].ChangePct.Equal(decimal.RequireFromString("-100")), "change %s", deltas[2].ChangePct)

	assert.Nil(t, deltas[3].ChangePct, "zero-profit predecessor must yield nil, not a division")
}

func TestWeekOverWeekNegativeBaseline(t *testing.T) {
	deltas := WeekOverWeek([]WeekBucket{
		bucket(2025, 14, "-100"),
		bucket(2025, 15, "-50"),
	})
	require.NotNil(t, deltas[1].ChangePct)
	// (-50 - -100) / |-100| * 100 = +50: recovering toward break-even is an
	// improvement.
	assert.True(t, deltas[1].ChangePct.Equal(decimal.RequireFromString("50")), "change %s", deltas[1].ChangePct)
}

func TestWeekOverWeekEmpty(t *testing.T) {
	assert.Empty(t, WeekOverWeek(nil))
}

func TestWeekdayPatternOrderedMondayToSunday(t *testing.T) {
	// Ten days starting on a Wednesday; every weekday appears at least once
	// and the scan starts mid-week.
	raws := []RawDailyRecord{}
	days := []string{
		"2025-04-02", "2025-04-03", "2025-04-04", "2025-04-05", "2025-04-06",
		"2025-04-07", "2025-04-08", "2025-04-09", "2025-04-10", "2025-04-11",
	}
	for i, day := range days {
		raws = append(raws, RawDailyRecord{
			Date:    date(t, day),
			Revenue: decimal.NewFromInt(int64((i + 1) * 10)),
		})
	}
	series, err := NewSeries(raws)
	require.NoError(t, err)

	rows := WeekdayPattern(series)
	require.Len(t, rows, 7)
	want := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, row := range rows {
		assert.Equal(t, want[i], row.Weekday)
	}

	// Wednesdays were 2025-04-02 (profit 10) and 2025-04-09 (profit 80).
	var wednesday WeekdayRow
	for _, row := range rows {
		if row.Weekday == "Wednesday" {
			wednesday = row
		}
	}
	assert.Equal(t, 2, wednesday.Days)
	assert.True(t, wednesday.AvgProfit.Equal(decimal.RequireFromString("45")), "avg %s", wednesday.AvgProfit)
}

func TestWeekdayPatternOmitsAbsentDays(t *testing.T) {
	series, err := NewSeries([]RawDailyRecord{
		profitDay(t, "2025-04-08", "100"), // Tuesday
		profitDay(t, "2025-04-10", "200"), // Thursday
	})
	require.NoError(t, err)

	rows := WeekdayPattern(series)
	require.Len(t, rows, 2)
	assert.Equal(t, "Tuesday", rows[0].Weekday)
	assert.Equal(t, "Thursday", rows[1].Weekday)
}

func TestWeekdayPatternAveragesConversion(t *testing.T) {
	series, err := NewSeries([]RawDailyRecord{
		{Date: date(t, "2025-04-07"), Orders: 10, Sessions: 100, UnitsSold: 4},
		{Date: date(t, "2025-04-14"), Orders: 30, Sessions: 100, UnitsSold: 6},
	})
	require.NoError(t, err)

	rows := WeekdayPattern(series)
	require.Len(t, rows, 1)
	assert.Equal(t, "Monday", rows[0].Weekday)
	assert.True(t, rows[0].AvgConversionPct.Equal(decimal.RequireFromString("20")), "conversion %s", rows[0].AvgConversionPct)
	assert.True(t, rows[0].AvgUnits.Equal(decimal.RequireFromString("5")))
}
