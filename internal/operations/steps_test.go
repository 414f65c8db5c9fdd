package operations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleseda/internal/config"
	"saleseda/internal/errors"
	"saleseda/internal/validation"
)

var (
	categories    = []string{"fruit", "dairy", "meat", "baking", "snacks"}
	customerTypes = []string{"gold", "basic", "premium", "non-member"}
	paymentTypes  = []string{"cash", "credit card", "e-wallet", "debit card"}
)

// writeSample writes a small sales export with a leading index column. Row 6
// repeats the id of row 2 and row 8 carries a total that does not add up.
func writeSample(t *testing.T, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(",transaction_id,timestamp,product_id,category,customer_type,unit_price,quantity,total,payment_type\n")
	for i := 0; i < rows; i++ {
		id := fmt.Sprintf("tx-%03d", i)
		if i == 5 {
			id = "tx-001"
		}
		price := 0.5 + float64((i*37)%200)/10
		quantity := 1 + i%4
		total := price * float64(quantity)
		if i == 7 {
			total += 1
		}
		fmt.Fprintf(&b, "%d,%s,2022-03-%02d %02d:%02d:00,prod-%02d,%s,%s,%.2f,%d,%.2f,%s\n",
			i, id, 1+i%7, 9+i%11, (i*7)%60, i%13,
			categories[i%len(categories)], customerTypes[i%len(customerTypes)],
			price, quantity, total, paymentTypes[i%len(paymentTypes)])
	}

	path := filepath.Join(t.TempDir(), "sample_sales_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}

func runAnalysis(t *testing.T, cfg *config.Config) (*OperationState, error) {
	t.Helper()
	paths, err := config.NewPaths(cfg.Output.Dir)
	require.NoError(t, err)

	m := NewManager(nil, nil, nil)
	for _, step := range NewAnalysisSteps(Dependencies{}) {
		require.NoError(t, m.RegisterStep(step))
	}
	state := NewOperationState("run-test", cfg, paths)
	return state, m.Execute(context.Background(), state)
}

func testConfig(t *testing.T, input string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Input.Path = input
	cfg.Output.Dir = filepath.Join(t.TempDir(), "reports")
	cfg.Output.FigureWidth = 4
	cfg.Output.FigureHeight = 3
	return cfg
}

func TestAnalysisSteps_FullRun(t *testing.T) {
	cfg := testConfig(t, writeSample(t, 60))

	state, err := runAnalysis(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, OperationStatusCompleted, state.Status)

	for _, id := range []string{StepIDLoad, StepIDNormalize, StepIDSummarize, StepIDCorrelate,
		StepIDQuality, StepIDVisualize, StepIDInsights, StepIDExport} {
		assert.Equal(t, StepStatusCompleted, state.GetStep(id).GetStatus(), "step %s", id)
	}

	// index column dropped, hour derived
	assert.Equal(t, 10, state.Table.Ncol())
	assert.True(t, state.Table.HasColumn("hour"))
	assert.Equal(t, 60, state.Results.Rows)

	require.NotNil(t, state.Quality)
	counts := state.Quality.Counts()
	assert.Equal(t, 1, counts[validation.FindingDuplicateID])
	assert.Equal(t, 1, counts[validation.FindingTotalMismatch])

	require.NotNil(t, state.Insights)
	assert.NotEmpty(t, state.Insights.Observations)
	assert.Len(t, state.Insights.Conclusions, 3)

	assert.Len(t, state.Figures, 7)
	for _, f := range state.Figures {
		assert.FileExists(t, f)
	}

	paths := state.Paths
	for _, f := range []string{paths.SummaryReport, paths.StatisticsCSV, paths.CorrelationCSV,
		paths.Workbook, paths.FrequencyCSVPath("category"), paths.DistributionFigurePath("unit_price"),
		paths.CountFigurePath("hour")} {
		assert.FileExists(t, f)
		assert.Contains(t, state.Outputs, f)
	}
	assert.NoFileExists(t, paths.DistributionFigurePath("transaction_id"))
}

func TestAnalysisSteps_DisabledOutputs(t *testing.T) {
	cfg := testConfig(t, writeSample(t, 20))
	cfg.Output.Figures = false
	cfg.Output.Workbook = false

	state, err := runAnalysis(t, cfg)
	require.NoError(t, err)

	assert.Equal(t, StepStatusSkipped, state.GetStep(StepIDVisualize).GetStatus())
	assert.Empty(t, state.Figures)
	assert.NoFileExists(t, state.Paths.Workbook)
	assert.FileExists(t, state.Paths.SummaryReport)
}

func TestAnalysisSteps_Failures(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantStep string
		wantType errors.ErrorType
	}{
		{
			name:     "bad timestamp",
			content:  ",transaction_id,timestamp,product_id,category,customer_type,unit_price,quantity,total,payment_type\n0,t1,2022-03-01 09:00:00,p1,fruit,gold,1.5,2,3.0,cash\n1,t2,yesterday,p1,fruit,gold,1.5,2,3.0,cash\n",
			wantStep: StepIDNormalize,
			wantType: errors.ErrTypeParse,
		},
		{
			name:     "missing column",
			content:  ",transaction_id,timestamp,product_id,category,unit_price,quantity,total,payment_type\n0,t1,2022-03-01 09:00:00,p1,fruit,1.5,2,3.0,cash\n",
			wantStep: StepIDNormalize,
			wantType: errors.ErrTypeColumn,
		},
		{
			name:     "header only",
			content:  ",transaction_id,timestamp\n",
			wantStep: StepIDLoad,
			wantType: errors.ErrTypeRead,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sample.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			state, err := runAnalysis(t, testConfig(t, path))
			require.Error(t, err)
			assert.Equal(t, tt.wantStep, FailedStep(err))
			assert.True(t, errors.IsType(err, tt.wantType), "got %v", err)
			assert.Equal(t, StepStatusSkipped, state.GetStep(StepIDExport).GetStatus())
			assert.NoFileExists(t, state.Paths.SummaryReport)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := runAnalysis(t, testConfig(t, filepath.Join(t.TempDir(), "absent.csv")))
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrTypeRead))
	})
}

func TestLoadStep_RequiresInput(t *testing.T) {
	err := NewLoadStep(Dependencies{}).Validate(NewOperationState("run", config.Default(), nil))
	require.Error(t, err)
	assert.Equal(t, ErrorTypeInvalidState, GetErrorType(err))
}
