package dataprocessing

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleseda/internal/errors"
	"saleseda/pkg/contracts/domain"
)

func TestNewSummarizer(t *testing.T) {
	tests := []struct {
		name        string
		logger      *slog.Logger
		config      SummarizerConfig
		wantHead    int
		wantColumns []string
	}{
		{
			name:        "defaults",
			config:      SummarizerConfig{},
			wantHead:    5,
			wantColumns: DefaultReportColumns(),
		},
		{
			name:        "custom config",
			logger:      slog.Default(),
			config:      SummarizerConfig{HeadRows: 3, ReportColumns: []string{"category"}},
			wantHead:    3,
			wantColumns: []string{"category"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSummarizer(tt.logger, tt.config)
			assert.NotNil(t, s.logger)
			assert.Equal(t, tt.wantHead, s.headRows)
			assert.Equal(t, tt.wantColumns, s.reportColumns)
		})
	}
}

func TestSummarizer_Summarize(t *testing.T) {
	table := normalizedSample(t, sampleRows)

	results, err := NewSummarizer(nil, SummarizerConfig{}).Summarize(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, sampleRows, results.Rows)
	assert.Equal(t, 10, results.Columns)
	assert.Len(t, results.Info, 10)
	assert.Len(t, results.Head, 6)
	assert.Equal(t, []string{"unit_price", "quantity", "total", "hour"}, results.NumericColumns)
	assert.Equal(t, DefaultReportColumns(), results.ReportColumns)
	assert.Equal(t, sampleProducts, results.Reports[domain.ColumnProductID].UniqueCount)
	assert.Equal(t, len(sampleCategories), results.Reports[domain.ColumnCategory].UniqueCount)

	assert.Equal(t, time.Date(2022, 3, 1, 9, 0, 0, 0, time.UTC).Format("2006-01-02"),
		results.FirstSeen.Format("2006-01-02"))
	assert.True(t, results.LastSeen.After(results.FirstSeen))
}

func TestSummarizer_SkipsAbsentColumns(t *testing.T) {
	table := mustTable(t, [][]string{{"category"}, {"fruit"}})

	results, err := NewSummarizer(nil, SummarizerConfig{}).Summarize(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, []string{"category"}, results.ReportColumns)
	assert.True(t, results.FirstSeen.IsZero())
}

func TestSummarizer_RenamedTimestampColumn(t *testing.T) {
	table := mustTable(t, [][]string{
		{"sold_at", "category"},
		{"2022-03-04 08:00:00", "fruit"},
		{"2022-03-02 17:30:00", "dairy"},
	})
	table, err := ParseDatetime(table, "sold_at", domain.TimestampLayout)
	require.NoError(t, err)

	results, err := NewSummarizer(nil, SummarizerConfig{
		ReportColumns:   []string{"category", "sold_at"},
		TimestampColumn: "sold_at",
	}).Summarize(context.Background(), table)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2022, 3, 2, 17, 30, 0, 0, time.UTC), results.FirstSeen)
	assert.Equal(t, time.Date(2022, 3, 4, 8, 0, 0, 0, time.UTC), results.LastSeen)
	assert.Equal(t, 2, results.Reports["sold_at"].UniqueCount)
}

func TestToRecords(t *testing.T) {
	table := normalizedSample(t, 25)

	records, err := ToRecords(table)
	require.NoError(t, err)
	require.Len(t, records, 25)

	first := records[0]
	assert.Equal(t, 10, first.Hour)
	assert.Equal(t, "prod-000", first.ProductID)
	assert.GreaterOrEqual(t, first.Quantity, 1)
	assert.InDelta(t, first.UnitPrice*float64(first.Quantity), first.Total, 0.006)

	_, err = ToRecords(mustTable(t, sampleRecords(3)))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeColumn))
}

func TestBuildInsights(t *testing.T) {
	table := normalizedSample(t, sampleRows)
	results, err := NewSummarizer(nil, SummarizerConfig{}).Summarize(context.Background(), table)
	require.NoError(t, err)
	results.Correlation = CorrelationMatrix(table)

	insights := BuildInsights(results)
	text := strings.Join(insights.Observations, "\n")

	assert.Contains(t, text, "7829 transactions from 2022-03-01")
	assert.Contains(t, text, "unit_price is positively skewed")
	assert.Contains(t, text, "transaction_id is unique on every row (7829 values)")
	assert.Contains(t, text, "product_id has 300 unique values")
	assert.Contains(t, text, "The busiest hours of the day are")
	assert.Contains(t, text, "between unit_price and total")
	assert.Len(t, insights.Conclusions, 3)
}
