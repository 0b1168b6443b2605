package decompose

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearSplitsEvenly(t *testing.T) {
	months := Year(1_200_000, 2024)
	require.Len(t, months, 12)

	var total float64
	for i, m := range months {
		assert.Equal(t, i+1, m.Month)
		assert.InDelta(t, 100_000, m.Monthly, 1e-9)
		total += m.Monthly
	}
	assert.InDelta(t, 1_200_000, total, 1e-6)
}

func TestJanuaryFigures(t *testing.T) {
	months := Year(1_200_000, 2024)
	jan := months[0]

	assert.Equal(t, 31, jan.Days)
	require.Len(t, jan.Weeks, 5)
	assert.InDelta(t, 20_000, jan.Weekly, 1e-9)
	assert.InDelta(t, 100_000.0/31, jan.Daily, 1e-9)
}

func TestWeeksPartitionDays(t *testing.T) {
	jan := Year(1_200_000, 2024)[0]

	next := 1
	for i, w := range jan.Weeks {
		assert.Equal(t, i+1, w.Week)
		assert.InDelta(t, jan.Weekly, w.Target, 1e-9)
		for _, d := range w.Days {
			assert.Equal(t, next, d.Day)
			assert.InDelta(t, jan.Daily, d.Target, 1e-9)
			next++
		}
	}
	assert.Equal(t, jan.Days+1, next)

	// Full weeks carry 7 days, the final week takes the remainder.
	for _, w := range jan.Weeks[:4] {
		assert.Len(t, w.Days, 7)
	}
	assert.Len(t, jan.Weeks[4].Days, 3)
}

func TestDailySumsToMonthly(t *testing.T) {
	for _, m := range Year(1_200_000, 2024) {
		var byDays, byWeeks float64
		for _, w := range m.Weeks {
			byWeeks += w.Target
			for _, d := range w.Days {
				byDays += d.Target
			}
		}
		assert.InDelta(t, m.Monthly, byDays, 1e-6)
		assert.InDelta(t, m.Monthly, byWeeks, 1e-6)
	}
}

func TestShortFinalWeekMismatch(t *testing.T) {
	jan := Year(1_200_000, 2024)[0]

	// January's fifth planning week covers only 3 calendar days, so the
	// day figures for that week fall well short of the weekly quota.
	final := jan.Weeks[len(jan.Weeks)-1]
	require.Len(t, final.Days, 3)

	var finalWeekByDays float64
	for _, d := range final.Days {
		finalWeekByDays += d.Target
	}
	assert.InDelta(t, 9_677.42, finalWeekByDays, 0.01)
	assert.NotEqual(t, final.Target, finalWeekByDays)
}

func TestFebruaryLeapYear(t *testing.T) {
	leap := Year(1_200_000, 2024)[1]
	assert.Equal(t, 29, leap.Days)
	assert.Len(t, leap.Weeks, 5)
	assert.InDelta(t, 100_000.0/29, leap.Daily, 1e-9)

	common := Year(1_200_000, 2023)[1]
	assert.Equal(t, 28, common.Days)
	assert.Len(t, common.Weeks, 4)
	assert.InDelta(t, 25_000, common.Weekly, 1e-9)
}

func TestRedecompositionIsStable(t *testing.T) {
	first, err := json.Marshal(Year(1_200_000, 2024))
	require.NoError(t, err)
	second, err := json.Marshal(Year(1_200_000, 2024))
	require.NoError(t, err)

	// Recomputing from the same inputs must reproduce the stored
	// document exactly, byte for byte.
	assert.Equal(t, first, second)
}

func TestZeroTarget(t *testing.T) {
	for _, m := range Year(0, 2024) {
		assert.Zero(t, m.Monthly)
		assert.Zero(t, m.Weekly)
		assert.Zero(t, m.Daily)
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, DaysInMonth(2024, time.December))
	assert.Equal(t, 30, DaysInMonth(2024, time.April))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
}
