package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleseda/internal/errors"
	"saleseda/pkg/contracts/domain"
)

func TestSummaryStatistics(t *testing.T) {
	table := mustTable(t, [][]string{
		{"name", "value", "count"},
		{"a", "1", "10"},
		{"b", "2", "10"},
		{"c", "3", "10"},
		{"d", "4", "NA"},
	})

	stats := SummaryStatistics(table)

	require.Contains(t, stats, "value")
	require.Contains(t, stats, "count")
	assert.NotContains(t, stats, "name")

	v := stats["value"]
	assert.Equal(t, 4, v.Count)
	assert.InDelta(t, 2.5, v.Mean, 1e-12)
	assert.InDelta(t, 1.2909944487, v.Std, 1e-9)
	assert.Equal(t, 1.0, v.Min)
	assert.InDelta(t, 1.75, v.P25, 1e-12)
	assert.InDelta(t, 2.5, v.P50, 1e-12)
	assert.InDelta(t, 3.25, v.P75, 1e-12)
	assert.Equal(t, 4.0, v.Max)
	assert.InDelta(t, 0.0, v.Skew, 1e-12)

	c := stats["count"]
	assert.Equal(t, 3, c.Count)
	assert.Equal(t, 0.0, c.Std)
	assert.True(t, isNaN(c.Skew))
}

func TestSummaryStatistics_Sample(t *testing.T) {
	table := normalizedSample(t, sampleRows)
	stats := SummaryStatistics(table)

	assert.Equal(t, []string{"unit_price", "quantity", "total", "hour"}, NumericColumns(table))

	for _, column := range []string{"unit_price", "quantity", "total", "hour"} {
		s := stats[column]
		assert.Equal(t, sampleRows, s.Count, column)
		assert.LessOrEqual(t, s.Min, s.P25, column)
		assert.LessOrEqual(t, s.P25, s.P50, column)
		assert.LessOrEqual(t, s.P50, s.P75, column)
		assert.LessOrEqual(t, s.P75, s.Max, column)
	}

	assert.Equal(t, 1.0, stats["quantity"].Min)
	assert.Equal(t, 4.0, stats["quantity"].Max)
	assert.Greater(t, stats["unit_price"].Skew, 0.0)
	assert.Greater(t, stats["total"].Skew, 0.0)
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"single value", []float64{7}, 0.5, 7},
		{"exact rank", []float64{1, 2, 3}, 0.5, 2},
		{"interpolated", []float64{10, 20}, 0.25, 12.5},
		{"lower bound", []float64{1, 5, 9}, 0, 1},
		{"upper bound", []float64{1, 5, 9}, 1, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, percentile(tt.sorted, tt.p), 1e-12)
		})
	}

	assert.True(t, isNaN(percentile(nil, 0.5)))
}

func TestUniqueValueReport(t *testing.T) {
	table := mustTable(t, [][]string{
		{"payment_type"},
		{"cash"},
		{"card"},
		{"e-wallet"},
		{"card"},
		{"NA"},
		{"cash"},
		{"debit"},
	})

	report, err := UniqueValueReport(table, "payment_type")
	require.NoError(t, err)

	assert.Equal(t, 4, report.UniqueCount)
	assert.Equal(t, 1, report.Missing)
	assert.Equal(t, 7, report.Rows)
	assert.Equal(t, 6, report.Total())

	// ties keep first appearance order
	assert.Equal(t, []ValueCount{
		{"cash", 2},
		{"card", 2},
		{"e-wallet", 1},
		{"debit", 1},
	}, report.Frequencies)

	assert.Equal(t, []ValueCount{{"cash", 2}}, report.Top(1))
	assert.Equal(t, []ValueCount{{"e-wallet", 1}, {"debit", 1}}, report.Bottom(2))
	assert.Len(t, report.Top(100), 4)

	n, ok := report.Count("card")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	_, ok = report.Count("cheque")
	assert.False(t, ok)
}

func TestUniqueValueReport_SingleValue(t *testing.T) {
	table := mustTable(t, [][]string{
		{"category"},
		{"fruit"},
		{"fruit"},
		{"fruit"},
	})

	report, err := UniqueValueReport(table, "category")
	require.NoError(t, err)

	assert.Equal(t, 1, report.UniqueCount)
	assert.Equal(t, []ValueCount{{"fruit", 3}}, report.Frequencies)
}

func TestUniqueValueReport_Sample(t *testing.T) {
	table := normalizedSample(t, sampleRows)

	ids, err := UniqueValueReport(table, domain.ColumnTransactionID)
	require.NoError(t, err)
	assert.Equal(t, sampleRows, ids.UniqueCount)

	products, err := UniqueValueReport(table, domain.ColumnProductID)
	require.NoError(t, err)
	assert.Equal(t, sampleProducts, products.UniqueCount)
	assert.Equal(t, sampleRows, products.Total())

	hours, err := UniqueValueReport(table, domain.ColumnHour)
	require.NoError(t, err)
	assert.Equal(t, sampleRows, hours.Total())

	stamps, err := UniqueValueReport(table, domain.ColumnTimestamp)
	require.NoError(t, err)
	n, ok := stamps.Count("2022-03-01 10:00:45")
	assert.True(t, ok)
	assert.GreaterOrEqual(t, n, 1)
}

func TestUniqueValueReport_AbsentColumn(t *testing.T) {
	_, err := UniqueValueReport(mustTable(t, [][]string{{"a"}, {"1"}}), "b")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeColumn))
}

func TestInfoAndHead(t *testing.T) {
	table := mustTable(t, [][]string{
		{"name", "price", "qty"},
		{"a", "1.5", "1"},
		{"b", "NA", "2"},
		{"c", "2.25", "3"},
	})

	assert.Equal(t, []ColumnInfo{
		{Name: "name", Kind: KindString, NonNull: 3},
		{Name: "price", Kind: KindFloat, NonNull: 2},
		{Name: "qty", Kind: KindInt, NonNull: 3},
	}, Info(table))

	assert.Equal(t, [][]string{
		{"name", "price", "qty"},
		{"a", "1.5", "1"},
		{"b", "NaN", "2"},
	}, Head(table, 2))

	assert.Len(t, Head(table, 10), 4)
}

func TestCategoryOrder(t *testing.T) {
	table := mustTable(t, [][]string{
		{"hour", "category"},
		{"16", "fruit"},
		{"9", "meat"},
		{"11", "fruit"},
		{"9", "dairy"},
	})

	hours, err := CategoryOrder(table, "hour")
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "11", "16"}, hours)

	categories, err := CategoryOrder(table, "category")
	require.NoError(t, err)
	assert.Equal(t, []string{"fruit", "meat", "dairy"}, categories)
}
